// Package detail shows every field of one row, scrollable.
package detail

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	nt "portal/entity"
	"portal/style"
)

// Panel handles the full row view display state
type Panel struct {
	columns []nt.Column

	row          nt.Row
	contentLines []string // Rendered content split into lines (cached)

	width        int
	height       int
	ScrollOffset int // Line offset for scrolling content
}

func New(columns []nt.Column) Panel {
	return Panel{
		columns: columns,
	}
}

func (pnl Panel) Update(msg tea.Msg) (Panel, tea.Cmd) {

	switch msg := msg.(type) {

	case RowMsg:
		pnl.row = msg.Row
		pnl.contentLines = contentLines(msg.Row, pnl.columns)
		pnl.ScrollOffset = 0

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height
		pnl.ScrollOffset = 0

	case tea.KeyPressMsg:
		pnl = pnl.Key(msg.String())
	}

	return pnl, nil
}

// Key scrolls the content.
func (pnl Panel) Key(key string) Panel {

	maxScroll := 0
	if pnl.height > 0 {
		maxScroll = max(len(pnl.contentLines)-pnl.height, 0)
	}

	switch key {
	case "up", "k":
		if pnl.ScrollOffset > 0 {
			pnl.ScrollOffset--
		}
	case "down", "j":
		if pnl.ScrollOffset < maxScroll {
			pnl.ScrollOffset++
		}
	case "home", "g":
		pnl.ScrollOffset = 0
	case "end", "G":
		pnl.ScrollOffset = maxScroll
	}

	return pnl
}

// Render draws the visible portion of the row.
func (pnl Panel) Render() string {

	if pnl.contentLines == nil {
		return style.MutedStyle.Render("Nothing selected.")
	}

	visibleLines := pnl.contentLines[pnl.ScrollOffset:]
	if pnl.height > 0 && len(visibleLines) > pnl.height {
		visibleLines = visibleLines[:pnl.height]
	}

	return strings.Join(visibleLines, "\n")
}

// unexported

// contentLines lists the columns by header, then the whole row as JSON
func contentLines(row nt.Row, columns []nt.Column) []string {

	if row == nil {
		return nil
	}

	width := 0
	for _, col := range columns {
		width = max(width, len(col.Header))
	}

	lines := []string{style.TitleStyle.Render("Item " + row.Id()), ""}
	for _, col := range columns {
		lines = append(lines, fmt.Sprintf("%-*s  %s", width, col.Header, row.Value(col.Key()).String()))
	}

	lines = append(lines, "", style.MutedStyle.Render("All fields"))
	data, err := prettyJson(row)
	if err != nil {
		return append(lines, style.ErrorStyle.Render("Error pretty-printing JSON: "+err.Error()))
	}
	return append(lines, data...)
}

func prettyJson(row nt.Row) (lines []string, err error) {

	var buf strings.Builder
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	err = encoder.Encode(map[string]any(row))
	if err != nil {
		return
	}

	content := strings.TrimSuffix(buf.String(), "\n")
	lines = strings.Split(content, "\n")
	return
}
