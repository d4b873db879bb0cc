package datatable

import nt "portal/entity"

// SortState is the active sort column and direction.
// The zero value is unsorted, ascending.
type SortState struct {
	Column    string
	Direction nt.Direction
}

// Toggle flips direction when column is already active, else starts column ascending.
func (ss SortState) Toggle(column string) SortState {

	if column == ss.Column && ss.Direction == nt.Asc {
		return SortState{Column: column, Direction: nt.Desc}
	}
	return SortState{Column: column, Direction: nt.Asc}
}

// Indicator returns the header arrow for column
func (ss SortState) Indicator(column string) string {
	switch {
	case column != ss.Column:
		return ""
	case ss.Direction == nt.Desc:
		return " ↓"
	}
	return " ↑"
}
