package message

import nt "portal/entity"

// Intent is a one-way request from the table for a data-affecting action.
type Intent interface {
	isIntent()
}

func (PageChangeMsg) isIntent()  {}
func (RowsPerPageMsg) isIntent() {}
func (SearchMsg) isIntent()      {}
func (SortMsg) isIntent()        {}
func (FilterMsg) isIntent()      {}
func (CreateItemMsg) isIntent()  {}
func (EditItemMsg) isIntent()    {}
func (DeleteItemMsg) isIntent()  {}

// PageChangeMsg requests a page, always within [1, total pages]
type PageChangeMsg struct {
	Page int
}

// RowsPerPageMsg requests a new page size
type RowsPerPageMsg struct {
	Size int
}

// SearchMsg forwards the raw search box contents
type SearchMsg struct {
	Term string
}

// SortMsg requests ordering by a column
type SortMsg struct {
	Column    string
	Direction nt.Direction
}

// FilterMsg carries filters keyed by column id
type FilterMsg struct {
	Filters map[string]nt.Filter
}

// CreateItemMsg asks the provider to create a row from captured values
type CreateItemMsg struct {
	Op     Op
	Values map[string]any
}

// EditItemMsg asks the provider to update Row with Values
type EditItemMsg struct {
	Op     Op
	Row    nt.Row
	Values map[string]any
}

// DeleteItemMsg asks the provider to delete Row
type DeleteItemMsg struct {
	Op  Op
	Row nt.Row
}

// ErrorMsg contains an error
type ErrorMsg struct {
	Err error
}

// ResultMsg reports completion of a submitted Op
type ResultMsg struct {
	Op  Op
	Err error
}
