package entity

// InputKind is the kind of input a form field takes.
type InputKind string

const (
	TextInput     InputKind = "text"
	NumberInput   InputKind = "number"
	BoolInput     InputKind = "bool"
	ChoiceInput   InputKind = "choice"
	PasswordInput InputKind = "password"
)

// Field declares one input of a create or edit form.
type Field struct {
	Key      string    `yaml:"key"`
	Label    string    `yaml:"label"`
	Kind     InputKind `yaml:"kind,omitempty"`
	Options  []string  `yaml:"options,omitempty"`
	Required bool      `yaml:"required,omitempty"`
}

// Managed reports whether a key is owned by the provider rather than the user.
func Managed(key string) bool {
	return key == "id" || key == "createdAt"
}

// FieldsFromColumns derives text fields from columns, skipping managed ones.
func FieldsFromColumns(columns []Column) (fields []Field) {

	for _, col := range columns {
		if Managed(col.Id) || Managed(col.Key()) {
			continue
		}
		fields = append(fields, Field{
			Key:   col.Key(),
			Label: col.Header,
			Kind:  TextInput,
		})
	}

	return
}
