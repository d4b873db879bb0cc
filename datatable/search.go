package datatable

import (
	"unicode/utf8"

	"portal/message"
)

// Search is the local echo of the search box.
type Search struct {
	Query string
}

// Change replaces the query and returns the intent forwarding it unmodified.
func (srch Search) Change(text string) (Search, message.SearchMsg) {
	return Search{Query: text}, message.SearchMsg{Term: text}
}

// edit applies a key to the query, reporting whether it changed
func (srch Search) edit(key string) (text string, changed bool) {

	text = srch.Query
	switch key {
	case "backspace":
		if text == "" {
			return
		}
		_, size := utf8.DecodeLastRuneInString(text)
		text = text[:len(text)-size]
	case "ctrl+u":
		if text == "" {
			return
		}
		text = ""
	case "space":
		text += " "
	default:
		if utf8.RuneCountInString(key) != 1 {
			return
		}
		text += key
	}

	changed = true
	return
}
