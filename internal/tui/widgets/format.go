// ABOUTME: Display formatting for money amounts and timestamps
// ABOUTME: VND amounts use Vietnamese digit grouping; times render relative to now

package widgets

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/igvshop/igv-admin/internal/client"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var vnd = message.NewPrinter(language.Vietnamese)

// VND formats an amount in Vietnamese dong, e.g. "150.000 ₫"
func VND(amount client.Decimal) string {
	return vnd.Sprintf("%d ₫", int64(math.Round(amount.Float64())))
}

// Relative renders t as "3 minutes ago" or "in 5 minutes"; zero times are "--"
func Relative(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return humanize.Time(t)
}

// Timestamp renders t in local time, e.g. "2026-01-02 10:04"
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Local().Format("2006-01-02 15:04")
}
