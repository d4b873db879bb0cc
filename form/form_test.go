package form

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "portal/entity"
)

func fields() []nt.Field {
	return []nt.Field{
		{Key: "name", Label: "Name", Kind: nt.TextInput, Required: true},
		{Key: "status", Label: "Status", Kind: nt.ChoiceInput, Options: []string{"active", "inactive", "pending"}},
		{Key: "price", Label: "Price", Kind: nt.NumberInput},
		{Key: "featured", Label: "Featured", Kind: nt.BoolInput},
	}
}

func typeIn(frm Form, text string) Form {
	for _, r := range text {
		frm = frm.Key(string(r))
	}
	return frm
}

func TestFormValues(t *testing.T) {

	frm := New(fields(), nil)
	frm = typeIn(frm, "Widget")
	frm = frm.Key("tab").Key("right")
	frm = typeIn(frm.Key("tab"), "12.5")
	frm = frm.Key("tab").Key("space")

	values, err := frm.Values()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":     "Widget",
		"status":   "inactive",
		"price":    12.5,
		"featured": true,
	}, values)
}

func TestFormRequired(t *testing.T) {

	frm := New(fields(), nil)

	_, err := frm.Values()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "Name is required", err.Error())
}

func TestFormNumber(t *testing.T) {

	frm := typeIn(New(fields(), nil), "Widget")
	frm = typeIn(frm.Key("tab").Key("tab"), "lots")

	_, err := frm.Values()
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "price", ve.Field.Key)
}

func TestFormPrefill(t *testing.T) {

	row := nt.Row{"id": "7", "name": "Item 7", "status": "pending", "price": 3.0, "featured": true}
	frm := New(fields(), row)

	assert.Equal(t, "Item 7", frm.Raw("name"))
	assert.Equal(t, "pending", frm.Raw("status"))
	assert.Equal(t, "3", frm.Raw("price"))
	assert.Equal(t, "true", frm.Raw("featured"))

	frm = frm.Key("backspace").Key("X")
	assert.Equal(t, "Item X", frm.Raw("name"))
	assert.Equal(t, "Item 7", row["name"])
}

func TestFormFocusWraps(t *testing.T) {

	frm := New(fields(), nil)

	field, ok := frm.Focused()
	require.True(t, ok)
	assert.Equal(t, "name", field.Key)

	frm = frm.Key("shift+tab")
	field, _ = frm.Focused()
	assert.Equal(t, "featured", field.Key)

	frm = frm.Key("tab")
	field, _ = frm.Focused()
	assert.Equal(t, "name", field.Key)
}

func TestTextInputEditing(t *testing.T) {

	var in Input = NewTextInput("abc", 5)
	in = in.Key("left").Key("left").Key("X")
	assert.Equal(t, "aXbc", in.Value())

	in = in.Key("end").Key("d").Key("e")
	assert.Equal(t, "aXbcd", in.Value(), "max length caps input")

	in = in.Key("home").Key("delete")
	assert.Equal(t, "Xbcd", in.Value())

	in = in.Key("ctrl+u")
	assert.Equal(t, "", in.Value())
}

func TestPasswordMasked(t *testing.T) {

	var in Input = NewPasswordInput(0)
	in = in.Key("s").Key("3").Key("c")

	assert.Equal(t, "s3c", in.Value())
	assert.Equal(t, "•••", in.Render())
}

func TestChoiceCycles(t *testing.T) {

	var in Input = NewChoice([]string{"a", "b"}, 0)
	assert.Equal(t, "b", in.Key("right").Value())
	assert.Equal(t, "b", in.Key("left").Value())
	assert.Equal(t, "a", in.Key("right").Key("right").Value())
}

func TestRenderAlignsWideLabels(t *testing.T) {

	frm := New([]nt.Field{
		{Key: "name", Label: "名前", Kind: nt.TextInput, Required: true},
		{Key: "price", Label: "Price", Kind: nt.NumberInput},
	}, nil)

	lines := strings.Split(ansi.Strip(frm.Render()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], " 名前*  "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Price   "), lines[1])
}
