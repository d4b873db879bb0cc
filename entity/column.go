package entity

import (
	"github.com/pkg/errors"
)

// FormatKind names how a column renders its values.
type FormatKind string

const (
	Plain    FormatKind = "plain"
	Badge    FormatKind = "badge"
	Currency FormatKind = "currency"
	Custom   FormatKind = "custom"
)

// Formatter is a serializable cell formatter.
// Custom formatters are resolved by Name from a registry at render time.
type Formatter struct {
	Kind FormatKind `yaml:"kind"`
	Name string     `yaml:"name,omitempty"`
}

type Column struct {
	Id          string    `yaml:"id"`
	Header      string    `yaml:"header"`
	AccessorKey string    `yaml:"accessor"`
	Format      Formatter `yaml:"format,omitempty"`
	Width       int       `yaml:"width,omitempty"`
}

// Key returns the row field a column reads, falling back to its id.
func (col Column) Key() string {
	if col.AccessorKey == "" {
		return col.Id
	}
	return col.AccessorKey
}

// ValidateColumns checks that ids are present and unique.
func ValidateColumns(columns []Column) (err error) {

	seen := map[string]bool{}
	for i, col := range columns {
		if col.Id == "" {
			err = errors.Errorf("column %d has no id", i)
			return
		}
		if seen[col.Id] {
			err = errors.Errorf("duplicate column id %q", col.Id)
			return
		}
		seen[col.Id] = true
	}

	return
}

// DefaultColumns is the stock id/name/status/createdAt layout.
func DefaultColumns() []Column {
	return []Column{
		{Id: "id", Header: "ID", AccessorKey: "id", Width: 8},
		{Id: "name", Header: "Name", AccessorKey: "name", Width: 20},
		{Id: "status", Header: "Status", AccessorKey: "status", Format: Formatter{Kind: Badge}, Width: 12},
		{Id: "createdAt", Header: "Created At", AccessorKey: "createdAt", Width: 12},
	}
}
