package spending

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/julianstephens/tivlo/internal/calculator"
	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/gamification"
	"github.com/julianstephens/tivlo/internal/ledger"
	"github.com/julianstephens/tivlo/internal/models"
)

const nameColumnWidth = 32

type HistoryListCmd struct {
	Limit int `help:"Show at most this many rows (0 for all)." default:"20"`
}

func (c *HistoryListCmd) Run(ctx *cli.Context) error {
	led, err := ctx.Ledger()
	if err != nil {
		return err
	}
	items, err := led.List()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		ctx.Println("No decisions recorded yet.")
		return nil
	}
	if c.Limit > 0 && len(items) > c.Limit {
		items = items[:c.Limit]
	}

	lang := ctx.Lang()
	loc := ctx.Location()
	ctx.Printf("%-8s  %-10s  %s  %-7s  %8s  %s\n", "ID", "DATE", pad("ITEM", nameColumnWidth), "CHOICE", "HOURS", "PRICE")
	for _, item := range items {
		ctx.Printf("%-8s  %-10s  %s  %-7s  %8s  %s\n",
			shortID(item.ID),
			datekey.FromTime(item.Date.In(loc)),
			pad(runewidth.Truncate(item.ProductName, nameColumnWidth, "…"), nameColumnWidth),
			item.Decision,
			calculator.FormatHours(item.TotalHoursDecimal, lang),
			calculator.FormatMoney(item.Price, item.Currency, lang),
		)
	}
	return nil
}

// pad right-fills s to width display columns.
func pad(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

type HistoryAddCmd struct {
	Name     string `arg:"" help:"Product name."`
	Price    string `arg:"" help:"Price of the item."`
	Decision string `arg:"" help:"bought or saved." enum:"bought,saved"`
}

func (c *HistoryAddCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.ReadyProfile()
	if err != nil {
		return err
	}
	price, err := parsePrice(c.Price)
	if err != nil {
		return err
	}
	led, err := ctx.Ledger()
	if err != nil {
		return err
	}
	item, err := led.Record(ledger.Entry{ProductName: c.Name, Price: price, Decision: models.Decision(c.Decision)}, profile)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Recorded %s: %s h (%s)\n", item.ProductName, calculator.FormatHours(item.TotalHoursDecimal, ctx.Lang()), shortID(item.ID))
	if item.AdviceUsed != "" {
		ctx.Println(item.AdviceUsed)
	}
	return nil
}

// HistoryEditCmd replaces an entry. Unset flags keep the current values.
type HistoryEditCmd struct {
	ID       string `arg:"" help:"Item id or unique id prefix."`
	Name     string `help:"New product name."`
	Price    string `help:"New price."`
	Decision string `help:"New decision (bought or saved)." enum:",bought,saved" default:""`
}

func (c *HistoryEditCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.ReadyProfile()
	if err != nil {
		return err
	}
	led, err := ctx.Ledger()
	if err != nil {
		return err
	}
	current, err := led.Get(c.ID)
	if err != nil {
		return err
	}

	entry := ledger.Entry{ProductName: current.ProductName, Price: current.Price, Decision: current.Decision}
	if c.Name != "" {
		entry.ProductName = c.Name
	}
	if c.Price != "" {
		if entry.Price, err = parsePrice(c.Price); err != nil {
			return err
		}
	}
	if c.Decision != "" {
		entry.Decision = models.Decision(c.Decision)
	}

	item, err := led.Edit(current.ID, entry, profile)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Updated %s (new id %s)\n", item.ProductName, shortID(item.ID))
	return nil
}

type HistoryClearCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *HistoryClearCmd) Run(ctx *cli.Context) error {
	led, err := ctx.Ledger()
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.Confirm("Delete your whole spending history?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	n, err := led.Clear()
	if err != nil {
		return err
	}
	ctx.Printf("✓ Deleted %d item(s)\n", n)
	return nil
}

type HistoryStatsCmd struct {
	From string `help:"First day (YYYY-MM-DD). Defaults to 30 days ago."`
	To   string `help:"Last day (YYYY-MM-DD). Defaults to today."`
}

func (c *HistoryStatsCmd) Run(ctx *cli.Context) error {
	r, err := c.parseRange(ctx.Today())
	if err != nil {
		return err
	}
	led, err := ctx.Ledger()
	if err != nil {
		return err
	}
	items, err := led.List()
	if err != nil {
		return err
	}
	profile, _, err := ctx.Profile()
	if err != nil {
		return err
	}

	lang := ctx.Lang()
	s := gamification.Summarize(items, r, ctx.Location())
	ctx.Printf("%s .. %s\n", r.From, r.To)
	ctx.Printf("Decisions:   %d\n", s.Decisions)
	ctx.Printf("Saved:       %s h (%s)\n", calculator.FormatHours(s.SavedHours, lang), calculator.FormatMoney(s.SavedMoney, profile.Currency, lang))
	ctx.Printf("Spent:       %s h (%s)\n", calculator.FormatHours(s.SpentHours, lang), calculator.FormatMoney(s.SpentMoney, profile.Currency, lang))
	ctx.Printf("Saved share: %.0f%%\n", s.SavedPercent)
	if ref, ok := content.PriceReference(s.SavedMoney, lang); ok {
		ctx.Printf("You kept the price of: %s\n", ref)
	}
	return nil
}

func (c *HistoryStatsCmd) parseRange(today datekey.DateKey) (gamification.Range, error) {
	r := gamification.DefaultRange(today)
	if c.From != "" {
		d, err := datekey.Parse(c.From)
		if err != nil {
			return r, fmt.Errorf("invalid --from: %w", err)
		}
		r.From = d
	}
	if c.To != "" {
		d, err := datekey.Parse(c.To)
		if err != nil {
			return r, fmt.Errorf("invalid --to: %w", err)
		}
		r.To = d
	}
	if r.From.After(r.To) {
		return r, fmt.Errorf("--from %s is after --to %s", r.From, r.To)
	}
	return r, nil
}
