package datatable

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"portal/dialog"
	nt "portal/entity"
	"portal/style"
)

const (
	defaultColumnWidth = 10
	helpText           = "/: search  s: sort  f: filter  n/p: page  +/-: rows  a: add  e: edit  d: delete"
)

// Render draws the table, or the open dialog or filter panel in its place.
func (ctl Controller) Render() string {

	st := ctl.state
	switch {
	case st.Dialog.Open():
		box := style.DialogStyle
		if st.Dialog.State() == dialog.DeleteConfirm {
			box = style.DangerDialogStyle
		}
		return style.Dialog(box, ctl.renderDialog(), ctl.width, ctl.height)
	case st.Filtering:
		return style.Dialog(style.DialogStyle, st.Panel.Render(), ctl.width, ctl.height)
	}

	var sections []string
	if ctl.cfg.Title != "" {
		sections = append(sections, style.TitleStyle.Render(ctl.cfg.Title))
	}
	if ctl.cfg.Description != "" {
		sections = append(sections, style.MutedStyle.Render(ctl.cfg.Description))
	}

	sections = append(sections,
		ctl.renderSearch(),
		ctl.renderTable(),
		ctl.renderFooter(),
		ctl.renderStatus(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (ctl Controller) renderSearch() string {

	st := ctl.state
	query := st.Search.Query
	if st.Searching {
		query = style.FocusStyle.Render(query + " ")
	} else if query == "" {
		query = style.MutedStyle.Render("Search...")
	}

	line := "Search: " + query
	if len(st.Filters) > 0 {
		line += style.MutedStyle.Render(fmt.Sprintf("   %d filter(s)", len(st.Filters)))
	}
	return line
}

func (ctl Controller) renderTable() string {

	st := ctl.state
	columns := ctl.cfg.Columns

	tbl := table.New()
	style.StyleTable(tbl)

	headers := make([]string, len(columns))
	for i, col := range columns {
		header := col.Header + st.Sort.Indicator(col.Id)
		headers[i] = pad(header, columnWidth(col)+1)
	}
	tbl.Headers(headers...)

	switch {
	case st.Loading:
		return tbl.Render() + "\n" + style.MutedStyle.Render("Loading data...")
	case len(st.Rows) == 0:
		return tbl.Render() + "\n" + style.MutedStyle.Render("No results found.")
	}

	for _, row := range st.Rows {
		tbl.Row(ctl.cells(row)...)
	}
	tbl.StyleFunc(style.RowStyler(st.Cursor, st.Column))

	return tbl.Render()
}

// cells formats a row per column
func (ctl Controller) cells(row nt.Row) []string {

	cells := make([]string, len(ctl.cfg.Columns))
	for i, col := range ctl.cfg.Columns {
		text, cellStyle := ctl.formatters.format(col, row.Value(col.Key()))
		cells[i] = cellStyle.Render(truncate(text, columnWidth(col)))
	}
	return cells
}

func (ctl Controller) renderFooter() string {

	st := ctl.state
	left := fmt.Sprintf("Showing %d of %d items", st.PageSize, st.TotalItems)
	right := ctl.Window().Render()

	padding := max(ctl.width-lipgloss.Width(left)-lipgloss.Width(right), 2)
	return style.MutedStyle.Render(left) + strings.Repeat(" ", padding) + right
}

func (ctl Controller) renderStatus() string {

	st := ctl.state
	switch {
	case st.Err != nil:
		return style.ErrorStyle.Render(st.Err.Error())
	case st.Pending != nil:
		return style.MutedStyle.Render(fmt.Sprintf("waiting on %s…", st.Pending))
	}
	return style.MutedStyle.Render(helpText)
}

func (ctl Controller) renderDialog() string {

	st := ctl.state

	var title, description, help string
	switch st.Dialog.State() {
	case dialog.CreateOpen:
		title = "Create New Item"
		description = "Fill in the details to create a new item."
		help = "Tab: next field  Enter: create  Esc: cancel"
	case dialog.EditOpen:
		title = "Edit Item"
		description = "Update the details of the selected item."
		help = "Tab: next field  Enter: save changes  Esc: cancel"
	case dialog.DeleteConfirm:
		title = "Are you sure?"
		description = "This action cannot be undone. This will permanently delete the selected item and remove the data from our servers."
		help = "y/Enter: delete  n/Esc: cancel"
	}

	sections := []string{
		style.TitleStyle.Render(title),
		style.MutedStyle.Render(description),
		"",
	}

	if st.Dialog.State() == dialog.DeleteConfirm {
		target := st.Dialog.Target()
		sections = append(sections, fmt.Sprintf("%s %s", target.Id(), target.Value("name")))
	} else {
		sections = append(sections, st.Form.Render())
	}

	if st.Err != nil {
		sections = append(sections, "", style.ErrorStyle.Render(st.Err.Error()))
	}
	sections = append(sections, "", style.MutedStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func columnWidth(col nt.Column) int {
	if col.Width > 0 {
		return col.Width
	}
	return max(lipgloss.Width(col.Header)+2, defaultColumnWidth)
}
