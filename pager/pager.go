// Package pager computes the window of page links shown under a table.
package pager

import (
	"fmt"
	"strings"

	"portal/style"
)

// WindowSize is the most page links shown at once.
const WindowSize = 5

// Window is the set of page controls to render.
type Window struct {
	Pages    []int // Direct links, ascending
	Current  int
	Total    int
	Prev     bool // Previous enabled
	Next     bool // Next enabled
	Ellipsis bool // Ellipsis and a link to Total follow Pages
}

// TotalPages returns ceil(totalItems/pageSize), never less than 1.
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 || totalItems <= 0 {
		return 1
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Clamp bounds page to [1, totalPages].
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	return min(max(page, 1), totalPages)
}

// New computes the window for current of total pages.
func New(current, total int) Window {

	if total < 1 {
		total = 1
	}
	current = Clamp(current, total)

	var first int
	switch {
	case total <= WindowSize:
		first = 1
	case current <= 3:
		first = 1
	case current >= total-2:
		first = total - WindowSize + 1
	default:
		first = current - 2
	}

	count := min(WindowSize, total)
	pages := make([]int, count)
	for i := range pages {
		pages[i] = first + i
	}

	return Window{
		Pages:    pages,
		Current:  current,
		Total:    total,
		Prev:     current > 1,
		Next:     current < total,
		Ellipsis: total > WindowSize && current < total-2,
	}
}

// Render renders the window as a single line, e.g. "‹ 1 2 [3] 4 5 … 10 ›".
func (win Window) Render() string {

	parts := []string{control("‹", win.Prev)}
	for _, page := range win.Pages {
		if page == win.Current {
			parts = append(parts, style.ActiveStyle.Render(fmt.Sprintf("[%d]", page)))
			continue
		}
		parts = append(parts, fmt.Sprintf("%d", page))
	}
	if win.Ellipsis {
		parts = append(parts, style.MutedStyle.Render("…"), fmt.Sprintf("%d", win.Total))
	}
	parts = append(parts, control("›", win.Next))

	return strings.Join(parts, " ")
}

func control(label string, enabled bool) string {
	if !enabled {
		return style.MutedStyle.Render(label)
	}
	return label
}
