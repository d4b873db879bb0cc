// Package dialog sequences the create, edit and delete flows of a table.
// At most one dialog is open, and a target row is held only while an edit
// or delete is open.
package dialog

import (
	"github.com/pkg/errors"

	nt "portal/entity"
	"portal/message"
)

// ErrTransition is returned for a move the current state does not allow.
var ErrTransition = errors.New("dialog transition not allowed")

// State is which dialog, if any, is open.
type State int

const (
	Idle State = iota
	CreateOpen
	EditOpen
	DeleteConfirm
)

var stateNames = map[State]string{
	Idle:          "idle",
	CreateOpen:    "create",
	EditOpen:      "edit",
	DeleteConfirm: "delete",
}

func (state State) String() string {
	name, ok := stateNames[state]
	if !ok {
		return "unknown"
	}
	return name
}

// Selection holds the row an edit or delete acts on.
type Selection struct {
	Target nt.Row
}

// Empty reports whether no row is targeted.
func (sel Selection) Empty() bool {
	return sel.Target == nil
}

// Dialog is the orchestrator; the zero value is Idle.
type Dialog struct {
	state     State
	selection Selection
}

// State returns the open dialog.
func (dlg Dialog) State() State {
	return dlg.state
}

// Target returns the row being edited or deleted, nil otherwise.
func (dlg Dialog) Target() nt.Row {
	return dlg.selection.Target
}

// Open reports whether any dialog is showing.
func (dlg Dialog) Open() bool {
	return dlg.state != Idle
}

func (dlg Dialog) OpenCreate() (Dialog, error) {
	if dlg.state != Idle {
		return dlg, errors.Wrapf(ErrTransition, "open create from %s", dlg.state)
	}
	return Dialog{state: CreateOpen}, nil
}

func (dlg Dialog) OpenEdit(row nt.Row) (Dialog, error) {
	return dlg.openWith(EditOpen, row)
}

func (dlg Dialog) OpenDelete(row nt.Row) (Dialog, error) {
	return dlg.openWith(DeleteConfirm, row)
}

func (dlg Dialog) openWith(state State, row nt.Row) (Dialog, error) {
	if dlg.state != Idle {
		return dlg, errors.Wrapf(ErrTransition, "open %s from %s", state, dlg.state)
	}
	if row == nil {
		return dlg, errors.Wrapf(ErrTransition, "open %s without a row", state)
	}
	return Dialog{state: state, selection: Selection{Target: row}}, nil
}

// Cancel closes whatever is open and drops the target.
func (dlg Dialog) Cancel() Dialog {
	return Dialog{}
}

// Confirm closes the open dialog and returns its intent.
// Values are the captured form values; delete ignores them.
func (dlg Dialog) Confirm(op message.Op, values map[string]any) (Dialog, message.Intent, error) {

	switch dlg.state {
	case CreateOpen:
		return Dialog{}, message.CreateItemMsg{Op: op, Values: userValues(values)}, nil
	case EditOpen:
		return Dialog{}, message.EditItemMsg{Op: op, Row: dlg.selection.Target, Values: userValues(values)}, nil
	case DeleteConfirm:
		return Dialog{}, message.DeleteItemMsg{Op: op, Row: dlg.selection.Target}, nil
	}

	return dlg, nil, errors.Wrapf(ErrTransition, "confirm from %s", dlg.state)
}

// OpKind returns the kind of submission Confirm would make.
func (dlg Dialog) OpKind() message.OpKind {
	switch dlg.state {
	case CreateOpen:
		return message.CreateOp
	case EditOpen:
		return message.EditOp
	case DeleteConfirm:
		return message.DeleteOp
	}
	return 0
}

// userValues drops provider managed keys
func userValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, val := range values {
		if nt.Managed(key) {
			continue
		}
		out[key] = val
	}
	return out
}
