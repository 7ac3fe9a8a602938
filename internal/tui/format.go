package tui

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/unleaded-cli/unleaded/internal/schema"
)

// numPrinter formats grouped numbers ("23,500").
//
//nolint:gochecknoglobals // message printers are immutable and cheap to share
var numPrinter = message.NewPrinter(language.English)

const truncateSuffix = "..."

// truncate shortens value to width columns, appending an ellipsis when it
// was cut.
func truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(value) <= width {
		return value
	}
	limit := width - len(truncateSuffix)
	if limit < 0 {
		limit = 0
	}
	return value[:limit] + truncateSuffix
}

// formatPrice renders a listing price, or "?" when the dealer did not
// disclose one.
func formatPrice(price *float64) string {
	if price == nil {
		return "?"
	}
	return numPrinter.Sprintf("$%d", int64(*price))
}

// formatMiles renders odometer miles, or "?" when unknown.
func formatMiles(miles *float64) string {
	if miles == nil {
		return "?"
	}
	return numPrinter.Sprintf("%d", int64(*miles))
}

// formatCount renders an optional small count (accidents, owners).
func formatCount(n *int) string {
	if n == nil {
		return "?"
	}
	return strconv.Itoa(*n)
}

// formatCpo renders the certified-pre-owned flag.
func formatCpo(l schema.Listing) string {
	if l.IsCpo() {
		return "Yes"
	}
	return "No"
}

// formatListedAge renders how long ago the listing was created, relative to
// now ("3d ago"). Unparseable timestamps render as "?".
func formatListedAge(createdAt string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return "?"
	}
	age := now.Sub(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	case age < 365*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	default:
		return fmt.Sprintf("%dy ago", int(age.Hours()/(24*365)))
	}
}

// hyperlink wraps text in an OSC 8 terminal hyperlink when stdout is a TTY;
// otherwise the plain text is returned so piped output stays clean.
func hyperlink(url, text string) string {
	if url == "" || !isTTY() {
		return text
	}
	return "\x1b]8;;" + url + "\x07" + text + "\x1b]8;;\x07"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func isTTY() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
