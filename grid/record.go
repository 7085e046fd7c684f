package grid

import (
	"fmt"

	"github.com/google/uuid"
)

// Record is one person row
type Record struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Position  string `json:"position"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// Field identifies one editable column of a Record.
type Field int

const (
	FirstName Field = iota
	LastName
	Position
	Phone
	Email
)

// Fields lists the editable columns in display order.
var Fields = []Field{FirstName, LastName, Position, Phone, Email}

var fieldNames = [...]string{"firstName", "lastName", "position", "phone", "email"}

var fieldLabels = [...]string{"First Name", "Last Name", "Position", "Phone", "Email"}

func (f Field) valid() bool { return f >= FirstName && f <= Email }

// String returns the field's JSON name, e.g. "firstName".
func (f Field) String() string {
	if !f.valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Label returns the column header text.
func (f Field) Label() string {
	if !f.valid() {
		return f.String()
	}
	return fieldLabels[f]
}

// ParseField maps a JSON field name back to its Field.
func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Get returns the value of field f.
func (r Record) Get(f Field) string {
	switch f {
	case FirstName:
		return r.FirstName
	case LastName:
		return r.LastName
	case Position:
		return r.Position
	case Phone:
		return r.Phone
	case Email:
		return r.Email
	}
	return ""
}

// Set assigns value to field f. Unknown fields are ignored.
func (r *Record) Set(f Field, value string) {
	switch f {
	case FirstName:
		r.FirstName = value
	case LastName:
		r.LastName = value
	case Position:
		r.Position = value
	case Phone:
		r.Phone = value
	case Email:
		r.Email = value
	}
}

// NewID returns a fresh random row identifier.
func NewID() string { return uuid.NewString() }

// SeedRecords returns the built-in rows the grid starts with.
func SeedRecords() []Record {
	return []Record{
		{ID: NewID(), FirstName: "John", LastName: "Doe", Position: "Developer", Phone: "(626) 555-1234", Email: "john_doe@example.com"},
		{ID: NewID(), FirstName: "Jane", LastName: "Doe", Position: "Designer", Phone: "(626) 512-1563", Email: "jane_doe@example.com"},
		{ID: NewID(), FirstName: "Bob", LastName: "Smith", Position: "Manager", Phone: "(626) 545-7542", Email: "bob_smith@example.com"},
	}
}
