package datatable

import (
	"math"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	nt "portal/entity"
	"portal/style"
)

// FormatFunc renders a value for a custom formatted column.
type FormatFunc func(nt.Value) string

// Formatters resolves custom formatters by name.
type Formatters map[string]FormatFunc

// format returns the display text of a cell and the style to draw it with
func (fmts Formatters) format(col nt.Column, val nt.Value) (string, lipgloss.Style) {

	switch col.Format.Kind {
	case nt.Badge:
		text := val.String()
		if text == "active" {
			return text, style.BadgeStyle
		}
		return text, style.BadgeMutedStyle

	case nt.Currency:
		amount, err := val.Float()
		if err != nil {
			return val.String(), style.UnStyle
		}
		return formatCurrency(amount), style.UnStyle

	case nt.Custom:
		fn, ok := fmts[col.Format.Name]
		if ok {
			return fn(val), style.UnStyle
		}
	}

	return val.String(), style.UnStyle
}

// formatCurrency renders dollars with thousands separators, e.g. "$1,234.50"
func formatCurrency(amount float64) string {

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	whole := strconv.FormatInt(cents/100, 10)

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	frac := strconv.FormatInt(cents%100, 10)
	if len(frac) == 1 {
		frac = "0" + frac
	}

	return sign + "$" + grouped.String() + "." + frac
}

// truncate shortens in to width terminal cells, ending with an ellipsis
func truncate(in string, width int) string {

	if width <= 0 {
		return in
	}
	return ansi.Truncate(in, width, "…")
}

// pad fills in with spaces out to width terminal cells
func pad(in string, width int) string {
	return in + strings.Repeat(" ", max(width-ansi.StringWidth(in), 0))
}
