package form

import (
	"strings"
	"unicode/utf8"

	nt "portal/entity"
)

// Input is one editable cell of a form, driven by key names.
type Input interface {
	Key(key string) Input
	Render() string
	Value() string
}

// TextInput is an editable text field
type TextInput struct {
	value     []rune
	cursor    int
	maxLength int
	masked    bool
}

func NewTextInput(value string, maxLength int) TextInput {
	if maxLength <= 0 {
		maxLength = 100 // Default max length
	}
	runes := []rune(value)
	return TextInput{
		value:     runes,
		cursor:    len(runes),
		maxLength: maxLength,
	}
}

// NewPasswordInput is a TextInput that renders masked
func NewPasswordInput(maxLength int) TextInput {
	ti := NewTextInput("", maxLength)
	ti.masked = true
	return ti
}

func (ti TextInput) Key(key string) Input {

	// copy so earlier Form values stay untouched
	ti.value = append([]rune(nil), ti.value...)

	switch key {
	case "backspace":
		if ti.cursor > 0 {
			ti.value = append(ti.value[:ti.cursor-1], ti.value[ti.cursor:]...)
			ti.cursor--
		}
	case "delete":
		if ti.cursor < len(ti.value) {
			ti.value = append(ti.value[:ti.cursor], ti.value[ti.cursor+1:]...)
		}
	case "left":
		if ti.cursor > 0 {
			ti.cursor--
		}
	case "right":
		if ti.cursor < len(ti.value) {
			ti.cursor++
		}
	case "home", "ctrl+a":
		ti.cursor = 0
	case "end", "ctrl+e":
		ti.cursor = len(ti.value)
	case "ctrl+u":
		ti.value = ti.value[:0]
		ti.cursor = 0
	case "space":
		ti = ti.insert(' ')
	default:
		// Insert character if it's a single rune and under max length
		if utf8.RuneCountInString(key) == 1 {
			r, _ := utf8.DecodeRuneInString(key)
			ti = ti.insert(r)
		}
	}

	return ti
}

func (ti TextInput) insert(r rune) TextInput {
	if len(ti.value) >= ti.maxLength {
		return ti
	}
	ti.value = append(ti.value[:ti.cursor], append([]rune{r}, ti.value[ti.cursor:]...)...)
	ti.cursor++
	return ti
}

func (ti TextInput) Value() string {
	return string(ti.value)
}

func (ti TextInput) Cursor() int {
	return ti.cursor
}

func (ti TextInput) Render() string {
	if ti.masked {
		return strings.Repeat("•", len(ti.value))
	}
	return string(ti.value)
}

// Checkbox is a toggleable checkbox cell
type Checkbox struct {
	checked bool
}

func NewCheckbox(checked bool) Checkbox {
	return Checkbox{checked: checked}
}

func (cb Checkbox) Key(key string) Input {
	if key == "t" || key == "space" || key == " " {
		cb.checked = !cb.checked
	}
	return cb
}

func (cb Checkbox) Checked() bool {
	return cb.checked
}

func (cb Checkbox) Render() string {
	if cb.checked {
		return "[x]"
	}
	return "[ ]"
}

func (cb Checkbox) Value() string {
	if cb.checked {
		return "true"
	}
	return "false"
}

// Choice cycles through a list of options
type Choice struct {
	options  []string
	selected int
}

func NewChoice(options []string, selected int) Choice {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return Choice{
		options:  options,
		selected: selected,
	}
}

// NewChoiceOf selects the option equal to value, defaulting to the first
func NewChoiceOf(options []string, value string) Choice {
	for i, opt := range options {
		if opt == value {
			return NewChoice(options, i)
		}
	}
	return NewChoice(options, 0)
}

func (ch Choice) Key(key string) Input {
	if len(ch.options) == 0 {
		return ch
	}
	switch key {
	case "left", "h":
		ch.selected--
		if ch.selected < 0 {
			ch.selected = len(ch.options) - 1
		}
	case "right", "l", "space":
		ch.selected++
		if ch.selected >= len(ch.options) {
			ch.selected = 0
		}
	}
	return ch
}

func (ch Choice) Selected() int {
	return ch.selected
}

func (ch Choice) Render() string {
	if ch.selected < 0 || ch.selected >= len(ch.options) {
		return "?"
	}
	return "‹ " + ch.options[ch.selected] + " ›"
}

func (ch Choice) Value() string {
	if ch.selected < 0 || ch.selected >= len(ch.options) {
		return ""
	}
	return ch.options[ch.selected]
}

// newInput builds the input for a field, prefilled from val
func newInput(field nt.Field, val nt.Value) Input {
	switch field.Kind {
	case nt.BoolInput:
		checked, _ := val.Bool()
		return NewCheckbox(checked)
	case nt.ChoiceInput:
		return NewChoiceOf(field.Options, val.String())
	case nt.PasswordInput:
		return NewPasswordInput(0)
	}
	return NewTextInput(val.String(), 0)
}
