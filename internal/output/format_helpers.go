package output

import (
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dustin/go-humanize"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
	stddec "github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as euros with thousands grouping, e.g. €1,234.56
func FormatCurrency(amount decimal.Money) string {
	rounded := amount.Round()
	whole, cents, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	grouped := whole
	if err == nil {
		grouped = humanize.Comma(n)
	}
	out := "€" + grouped + "." + cents
	if rounded.IsNegative() {
		return "-" + out
	}
	return out
}

// FormatPercentage formats a percentage figure with 2 decimals.
func FormatPercentage(amount stddec.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatDate renders a calendar date as "30 September 2025"
func FormatDate(d civil.Date) string {
	if !d.IsValid() {
		return "-"
	}
	return d.In(time.UTC).Format("2 January 2006")
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
