package datatable

import nt "portal/entity"

type TableMsg interface {
	isTableMsg()
}

func (SizeMsg) isTableMsg()      {}
func (PageMsg) isTableMsg()      {}
func (LoadingMsg) isTableMsg()   {}
func (SortStateMsg) isTableMsg() {}

type SizeMsg struct {
	Width  int
	Height int
}

// PageMsg supplies the rows for the current page, search and sort
type PageMsg struct {
	Rows        []nt.Row
	TotalItems  int
	CurrentPage int
	PageSize    int
}

// LoadingMsg reports whether the provider is working on a request
type LoadingMsg struct {
	Loading bool
}

// SortStateMsg puts back the sort in effect, after the provider turned one down
type SortStateMsg struct {
	Sort SortState
}
