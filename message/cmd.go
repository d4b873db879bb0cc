package message

import tea "charm.land/bubbletea/v2"

// ErrorCmd returns a command delivering err as an ErrorMsg
func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// IntentCmd returns a command delivering an intent
func IntentCmd(intent Intent) tea.Cmd {
	if intent == nil {
		return nil
	}
	return func() tea.Msg {
		return intent
	}
}
