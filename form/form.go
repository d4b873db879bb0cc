// Package form renders a declarative list of fields as keyboard-driven inputs.
package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/pkg/errors"

	nt "portal/entity"
	"portal/style"
)

// ValidationError reports a field that cannot be submitted as entered.
type ValidationError struct {
	Field  nt.Field
	Reason string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", ve.Field.Label, ve.Reason)
}

// Form is a vertical list of labelled inputs with one focused.
type Form struct {
	fields []nt.Field
	inputs []Input
	focus  int
}

// New creates a form for fields, prefilled from row when not nil.
func New(fields []nt.Field, row nt.Row) Form {

	inputs := make([]Input, len(fields))
	for i, field := range fields {
		inputs[i] = newInput(field, row.Value(field.Key))
	}

	return Form{
		fields: fields,
		inputs: inputs,
	}
}

// Key routes navigation keys to the form and everything else to the focused input.
func (frm Form) Key(key string) Form {

	if len(frm.inputs) == 0 {
		return frm
	}

	switch key {
	case "tab", "down":
		frm = frm.NextField()
	case "shift+tab", "up":
		frm = frm.PrevField()
	default:
		inputs := make([]Input, len(frm.inputs))
		copy(inputs, frm.inputs)
		inputs[frm.focus] = inputs[frm.focus].Key(key)
		frm.inputs = inputs
	}

	return frm
}

// NextField moves focus down, wrapping to the first field
func (frm Form) NextField() Form {
	if len(frm.inputs) == 0 {
		return frm
	}
	frm.focus = (frm.focus + 1) % len(frm.inputs)
	return frm
}

// PrevField moves focus up, wrapping to the last field
func (frm Form) PrevField() Form {
	if len(frm.inputs) == 0 {
		return frm
	}
	frm.focus = (frm.focus - 1 + len(frm.inputs)) % len(frm.inputs)
	return frm
}

// Focused returns the field that has focus
func (frm Form) Focused() (field nt.Field, ok bool) {
	if frm.focus < 0 || frm.focus >= len(frm.fields) {
		return
	}
	return frm.fields[frm.focus], true
}

// Fields returns the fields the form was built from
func (frm Form) Fields() []nt.Field {
	return frm.fields
}

// Raw returns the entered text of a field
func (frm Form) Raw(key string) string {
	for i, field := range frm.fields {
		if field.Key == key {
			return frm.inputs[i].Value()
		}
	}
	return ""
}

// Values validates the form and returns typed values keyed by field.
// The first offending field is returned as a *ValidationError.
func (frm Form) Values() (values map[string]any, err error) {

	values = map[string]any{}
	for i, field := range frm.fields {
		raw := frm.inputs[i].Value()

		if field.Required && strings.TrimSpace(raw) == "" {
			err = &ValidationError{Field: field, Reason: "is required"}
			return
		}

		switch field.Kind {
		case nt.NumberInput:
			if strings.TrimSpace(raw) == "" {
				values[field.Key] = nil
				continue
			}
			var num float64
			num, err = strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				err = &ValidationError{Field: field, Reason: "must be a number"}
				return
			}
			values[field.Key] = num
		case nt.BoolInput:
			values[field.Key] = raw == "true"
		default:
			values[field.Key] = raw
		}
	}

	return
}

// Render lays the fields out one per line, label right aligned.
func (frm Form) Render() string {

	width := 0
	for _, field := range frm.fields {
		width = max(width, ansi.StringWidth(field.Label))
	}

	var lines []string
	for i, field := range frm.fields {
		label := strings.Repeat(" ", width-ansi.StringWidth(field.Label)) + field.Label
		if field.Required {
			label += "*"
		} else {
			label += " "
		}

		value := frm.inputs[i].Render()
		if i == frm.focus {
			value = style.FocusStyle.Render(value + " ")
		}
		lines = append(lines, fmt.Sprintf("%s  %s", label, value))
	}

	return strings.Join(lines, "\n")
}

// IsValidation reports whether err is a *ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
