// Package contact handles the contact form: its fields, the asynchronous
// submission and the transient status message shown afterwards.
package contact

import "strings"

// Field is a named form value.
type Field struct {
	Name      string
	Label     string
	Value     string
	Required  bool
	Multiline bool
}

// Form is an ordered set of fields.
type Form struct {
	fields []Field
}

// NewForm creates a form with the given empty fields.
func NewForm(fields ...Field) *Form {
	f := &Form{fields: make([]Field, len(fields))}
	copy(f.fields, fields)
	return f
}

// DefaultForm is the portfolio contact form.
func DefaultForm() *Form {
	return NewForm(
		Field{Name: "name", Label: "Name", Required: true},
		Field{Name: "email", Label: "Email", Required: true},
		Field{Name: "message", Label: "Message", Required: true, Multiline: true},
	)
}

// Len returns the number of fields.
func (f *Form) Len() int {
	return len(f.fields)
}

// Field returns field i.
func (f *Form) Field(i int) Field {
	return f.fields[i]
}

// Value returns the value of the named field.
func (f *Form) Value(name string) string {
	for _, fl := range f.fields {
		if fl.Name == name {
			return fl.Value
		}
	}
	return ""
}

// Set replaces the value of the named field. Unknown names are ignored.
func (f *Form) Set(name, value string) {
	for i := range f.fields {
		if f.fields[i].Name == name {
			f.fields[i].Value = value
			return
		}
	}
}

// Append adds text to field i.
func (f *Form) Append(i int, s string) {
	f.fields[i].Value += s
}

// Backspace removes the last rune of field i.
func (f *Form) Backspace(i int) {
	r := []rune(f.fields[i].Value)
	if len(r) > 0 {
		f.fields[i].Value = string(r[:len(r)-1])
	}
}

// Reset clears every value.
func (f *Form) Reset() {
	for i := range f.fields {
		f.fields[i].Value = ""
	}
}

// Missing returns the labels of required fields that are blank.
func (f *Form) Missing() []string {
	var out []string
	for _, fl := range f.fields {
		if fl.Required && strings.TrimSpace(fl.Value) == "" {
			out = append(out, fl.Label)
		}
	}
	return out
}

// Snapshot returns a copy of the fields for submission.
func (f *Form) Snapshot() []Field {
	out := make([]Field, len(f.fields))
	copy(out, f.fields)
	return out
}
