package portal

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"portal/style"
)

// RenderFooter renders a footer with the current page and the data source.
func RenderFooter(current, total int, source string, width int) string {

	left := fmt.Sprintf("page %d/%d", current, total)
	right := source

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return style.MutedStyle.Render(left + strings.Repeat(" ", padding) + right)
}
