package detail

import nt "portal/entity"

type DetailMsg interface {
	isDetailMsg()
}

func (SizeMsg) isDetailMsg() {}
func (RowMsg) isDetailMsg()  {}

type SizeMsg struct {
	Width  int
	Height int
}

// RowMsg sets the row shown.
type RowMsg struct {
	Row nt.Row
}
