package portal

import "portal/datatable"

// fetchedMsg contains a loaded page, tagged with the fetch that asked for it
type fetchedMsg struct {
	seq  int
	page datatable.PageMsg
}

// fetchFailedMsg reports a fetch error, tagged like fetchedMsg
type fetchFailedMsg struct {
	seq int
	err error
}
