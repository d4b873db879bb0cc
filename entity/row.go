package entity

// Row is an opaque record keyed by field name.
// Only the "id" field is interpreted, for identity.
type Row map[string]any

// Id returns the row's id field as a string, or "" when absent.
func (row Row) Id() string {
	return row.Value("id").String()
}

// Value returns the named field.
func (row Row) Value(key string) Value {
	return Value{Raw: row[key]}
}
