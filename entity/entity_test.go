package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateColumns(t *testing.T) {

	assert.NoError(t, ValidateColumns(DefaultColumns()))
	assert.Error(t, ValidateColumns([]Column{{Id: ""}}))
	assert.Error(t, ValidateColumns([]Column{{Id: "name"}, {Id: "name"}}))
}

func TestColumnKey(t *testing.T) {

	assert.Equal(t, "price", Column{Id: "price"}.Key())
	assert.Equal(t, "amount", Column{Id: "price", AccessorKey: "amount"}.Key())
}

func TestFieldsFromColumns(t *testing.T) {

	fields := FieldsFromColumns(DefaultColumns())
	assert.Equal(t, []Field{
		{Key: "name", Label: "Name", Kind: TextInput},
		{Key: "status", Label: "Status", Kind: TextInput},
	}, fields)
}

func TestCombined(t *testing.T) {

	view := View{}
	assert.Equal(t, Filter{}, view.Combined())

	one := Filter{Op: Eq, Field: "status", Value: "active", Enabled: true}
	off := Filter{Op: Gt, Field: "price", Value: 10.0}
	view.Filters = map[string]Filter{"status": one, "price": off}
	assert.Equal(t, one, view.Combined())

	name := Filter{Op: Contains, Field: "name", Value: "a", Enabled: true}
	view.Filters["name"] = name
	assert.Equal(t, Filter{Op: And, Children: []Filter{name, one}}, view.Combined())
}

func TestValueString(t *testing.T) {

	cases := []struct {
		raw  any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{7, "7"},
		{12.5, "12.5"},
		{3.0, "3"},
		{true, "true"},
		{time.Date(2023, 5, 1, 9, 30, 0, 0, time.UTC), "2023-05-01"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Value{Raw: tc.raw}.String())
	}
}

func TestValueFloat(t *testing.T) {

	f, err := Value{Raw: "12.5"}.Float()
	require.NoError(t, err)
	assert.Equal(t, 12.5, f)

	f, err = Value{Raw: int64(3)}.Float()
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	_, err = Value{Raw: "abc"}.Float()
	assert.Error(t, err)
}

func TestRowId(t *testing.T) {

	assert.Equal(t, "42", Row{"id": 42}.Id())
	assert.Equal(t, "", Row{"name": "x"}.Id())
}
