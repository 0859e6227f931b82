package calculator

import (
	"golang.org/x/text/message"

	"github.com/julianstephens/tivlo/internal/content"
)

// FormatMoney renders an amount with the grouping rules of lang.
func FormatMoney(amount float64, currency string, lang content.Language) string {
	p := message.NewPrinter(lang.Tag())
	return p.Sprintf("%.0f %s", amount, currency)
}

// FormatHours renders a decimal hour count with one fractional digit.
func FormatHours(hours float64, lang content.Language) string {
	p := message.NewPrinter(lang.Tag())
	return p.Sprintf("%.1f", hours)
}
