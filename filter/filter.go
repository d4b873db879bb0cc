// Package filter is the panel for editing per-column filters of a table.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	nt "portal/entity"
	"portal/form"
	"portal/style"
)

// opList is the cycle order of the operator input
var opList = []nt.FilterOp{
	nt.Eq,
	nt.Ne,
	nt.Contains,
	nt.Match,
	nt.Gt,
	nt.Gte,
	nt.Lt,
	nt.Lte,
}

var opStrings, opFromString = func() ([]string, map[string]nt.FilterOp) {
	names := make([]string, len(opList))
	byName := make(map[string]nt.FilterOp, len(opList))
	for i, op := range opList {
		names[i] = op.String()
		byName[op.String()] = op
	}
	return names, byName
}()

type fieldType int

const (
	fieldEnabled fieldType = iota
	fieldOperator
	fieldValue
)

// filterRow edits the filter of one column
type filterRow struct {
	column  nt.Column
	enabled form.Input
	op      form.Input
	value   form.Input
}

// Panel displays a modal dialog for editing filters
type Panel struct {
	rows          []filterRow
	selected      int       // Which row is selected
	selectedField fieldType // Which field within row is selected
}

// New builds a panel with one row per column, seeded from current filters.
func New(columns []nt.Column, current map[string]nt.Filter) Panel {

	var rows []filterRow
	for _, col := range columns {
		flt, ok := current[col.Id]
		if !ok {
			flt = nt.Filter{Op: nt.Eq}
		}

		value := ""
		if flt.Value != nil {
			value = nt.Value{Raw: flt.Value}.String()
		}

		rows = append(rows, filterRow{
			column:  col,
			enabled: form.NewCheckbox(flt.Enabled),
			op:      form.NewChoiceOf(opStrings, flt.Op.String()),
			value:   form.NewTextInput(value, 0),
		})
	}

	return Panel{rows: rows}
}

// Key moves between rows and fields, or edits the selected field.
func (pnl Panel) Key(key string) Panel {

	if len(pnl.rows) == 0 {
		return pnl
	}

	switch key {
	case "up":
		if pnl.selected > 0 {
			pnl.selected--
		}
		return pnl
	case "down":
		if pnl.selected < len(pnl.rows)-1 {
			pnl.selected++
		}
		return pnl
	case "tab":
		pnl.selectedField = (pnl.selectedField + 1) % 3
		return pnl
	case "shift+tab":
		pnl.selectedField = (pnl.selectedField + 2) % 3
		return pnl
	}

	rows := make([]filterRow, len(pnl.rows))
	copy(rows, pnl.rows)
	row := &rows[pnl.selected]

	switch pnl.selectedField {
	case fieldEnabled:
		row.enabled = row.enabled.Key(key)
	case fieldOperator:
		row.op = row.op.Key(key)
	case fieldValue:
		before := row.value.Value()
		row.value = row.value.Key(key)
		if row.value.Value() != before {
			// editing a value switches its filter on
			row.enabled = form.NewCheckbox(row.value.Value() != "")
		}
	}

	pnl.rows = rows
	return pnl
}

// Filters returns the enabled filters keyed by column id.
func (pnl Panel) Filters() map[string]nt.Filter {

	filters := map[string]nt.Filter{}
	for _, row := range pnl.rows {
		if row.enabled.Value() != "true" {
			continue
		}

		filters[row.column.Id] = nt.Filter{
			Op:      opFromString[row.op.Value()],
			Field:   row.column.Key(),
			Value:   parseValue(row.value.Value()),
			Enabled: true,
		}
	}

	return filters
}

// Render lists one filter per line with the selected field highlighted.
func (pnl Panel) Render() string {

	var content strings.Builder
	content.WriteString(style.TitleStyle.Render("Filters") + "\n\n")

	width := 0
	for _, row := range pnl.rows {
		width = max(width, len(row.column.Header))
	}

	for i, row := range pnl.rows {
		isSelected := i == pnl.selected

		enabledStr := row.enabled.Render()
		opStr := fmt.Sprintf("%-10s", row.op.Value())
		valStr := row.value.Render()

		if isSelected {
			switch pnl.selectedField {
			case fieldEnabled:
				enabledStr = style.FocusStyle.Render(enabledStr)
			case fieldOperator:
				opStr = style.FocusStyle.Render(opStr)
			case fieldValue:
				valStr = style.FocusStyle.Render(valStr + " ")
			}
		}

		rowPrefix := "  "
		if isSelected {
			rowPrefix = "> "
		}

		content.WriteString(fmt.Sprintf("%s%s %-*s %s %s\n", rowPrefix, enabledStr, width, row.column.Header, opStr, valStr))
	}

	// Context-aware help text
	var helpText string
	switch pnl.selectedField {
	case fieldEnabled:
		helpText = "t: toggle  Tab: next field  ↑↓: change row  Enter: apply  Esc: cancel"
	case fieldOperator:
		helpText = "←→: change  Tab: next field  ↑↓: change row  Enter: apply  Esc: cancel"
	case fieldValue:
		helpText = "type to edit  Tab: next field  ↑↓: change row  Enter: apply  Esc: cancel"
	}
	content.WriteString("\n" + style.MutedStyle.Render(helpText))

	return content.String()
}

// parseValue keeps numbers numeric so range operators compare as numbers
func parseValue(raw string) any {
	num, err := strconv.ParseFloat(raw, 64)
	if err == nil {
		return num
	}
	return raw
}
