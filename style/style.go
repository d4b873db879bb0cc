package style

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	TableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Subtle warm grey border
	HeaderStyle      = lipgloss.NewStyle().Bold(true)
	HlRowStyle       = lipgloss.NewStyle().Background(lipgloss.Color("235")) // Very subtle warm grey row
	HlCellStyle      = lipgloss.NewStyle().Background(lipgloss.Color("237")).Bold(true)
	MutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("246")) // Warm muted grey text
	ActiveStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	ErrorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	TitleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	FocusStyle       = lipgloss.NewStyle().Background(lipgloss.Color("240"))
	UnStyle          = lipgloss.NewStyle()

	BadgeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("63"))
	BadgeMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238"))

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(60)
	DangerDialogStyle = DialogStyle.BorderForeground(lipgloss.Color("203"))

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	UpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	DownStyle = ErrorStyle
	BarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

// RowStyler returns a StyleFunc that highlights the selected row and cell
func RowStyler(selectedRow, selectedCol int) func(row, col int) lipgloss.Style {
	return func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			if col == selectedCol {
				return HeaderStyle.Underline(true)
			}
			return HeaderStyle
		}
		if row == selectedRow {
			if col == selectedCol {
				return HlCellStyle
			}
			return HlRowStyle
		}
		return UnStyle
	}
}

// StyleTable applies consistent table styling for borders and separators
func StyleTable(tbl *table.Table) {
	tbl.Border(lipgloss.Border{
		Top:         "─", // Horizontal parts of separator
		Middle:      "─", // Between columns in separator
		MiddleLeft:  "─", // Left edge of separator
		MiddleRight: "─", // Right edge of separator
	}).
		BorderTop(false).    // Disable top border
		BorderBottom(false). // Disable bottom border
		BorderLeft(false).   // Disable left border
		BorderRight(false).  // Disable right border
		BorderColumn(false). // Disable column separators
		BorderStyle(TableBorderStyle)
}

// Dialog centers content in a bordered box within width x height
func Dialog(box lipgloss.Style, content string, width, height int) string {

	dialog := box.Render(content)
	if width <= 0 || height <= 0 {
		return dialog
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}
