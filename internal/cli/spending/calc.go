package spending

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/tivlo/internal/calculator"
	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/ledger"
	"github.com/julianstephens/tivlo/internal/models"
)

var severityLabels = map[calculator.Severity][3]string{
	calculator.SeverityTrivial:  {"apróság", "trivial", "Kleinigkeit"},
	calculator.SeverityModerate: {"megfontolandó", "worth a thought", "überlegenswert"},
	calculator.SeveritySerious:  {"komoly", "serious", "ernst"},
	calculator.SeveritySevere:   {"nagyon drága", "severe", "sehr teuer"},
}

func severityLabel(s calculator.Severity, lang content.Language) string {
	labels := severityLabels[s]
	if !lang.Valid() {
		lang = content.Hungarian
	}
	return labels[lang]
}

// CalcCmd prices something in working hours and optionally records the decision.
type CalcCmd struct {
	Price  string `arg:"" help:"Price of the item."`
	Name   string `help:"Product name." short:"n"`
	Record string `help:"Record the decision (bought, saved, or coin to let a coin flip decide)." enum:",bought,saved,coin" default:""`
}

var flipCoin = calculator.FlipCoin

func (c *CalcCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.ReadyProfile()
	if err != nil {
		return err
	}

	price, err := parsePrice(c.Price)
	if err != nil {
		return err
	}
	res, err := calculator.Calculate(price, profile)
	if err != nil {
		return err
	}

	lang := ctx.Lang()
	label := c.Name
	if label == "" {
		label = calculator.FormatMoney(price, profile.Currency, lang)
	}
	ctx.Printf("%s = %d h %d min (%s h)\n", label, res.Hours, res.Minutes, calculator.FormatHours(res.TotalHoursDecimal, lang))
	ctx.Printf("Severity: %s\n", severityLabel(calculator.SeverityOf(res.TotalHoursDecimal), lang))
	if ref, ok := content.PriceReference(price, lang); ok {
		ctx.Printf("About the price of: %s\n", ref)
	}

	if c.Record == "" {
		return nil
	}
	led, err := ctx.Ledger()
	if err != nil {
		return err
	}
	decision := models.Decision(c.Record)
	if c.Record == "coin" {
		side := flipCoin()
		decision = side.Suggestion()
		ctx.Printf("🪙 %s\n", side.Verdict(lang))
	}
	item, err := led.Record(ledger.Entry{ProductName: c.Name, Price: price, Decision: decision}, profile)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Recorded %s as %s (%s)\n", item.ProductName, item.Decision, shortID(item.ID))
	if item.AdviceUsed != "" {
		ctx.Println(item.AdviceUsed)
	}
	return nil
}

// parsePrice applies the same input sanitizing as the interactive form.
func parsePrice(input string) (float64, error) {
	clean := calculator.SanitizePriceInput(input)
	price, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", calculator.ErrInvalidPrice, input)
	}
	return price, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
