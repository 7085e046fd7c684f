package grid

import (
	"regexp"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	phoneMaxLen = 20

	// DefaultMemoSize bounds the number of cached (field, value) verdicts.
	DefaultMemoSize = 4096
)

// space is the whitespace set of ECMAScript \s. RE2's \s is ASCII only,
// which would let a no-break or em space through an email.
const space = `\t\n\x{0B}\f\r\x{FEFF}\x{2028}\x{2029}\p{Zs}`

var (
	emailRe = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
	phoneRe = regexp.MustCompile(`^[\d` + space + `()-]+$`)
)

const (
	msgInvalidEmail = "Invalid email address"
	msgPhonePattern = "Phone number can only contain digits, spaces, dashes, and parentheses."
	msgPhoneLength  = "Phone number cannot exceed 20 characters"
)

// CellError is a failed validation anchored to one cell.
type CellError struct {
	RowID   string
	Field   Field
	Message string
}

func (e CellError) Error() string {
	return e.Field.String() + ": " + e.Message
}

type memoKey struct {
	field Field
	value string
}

// Validator applies the per-field rules. A value's verdict never changes,
// so results are cached by (field, value).
type Validator struct {
	memo *lru.Cache[memoKey, string]
}

// NewValidator returns a Validator caching up to size verdicts. size <= 0
// disables the cache.
func NewValidator(size int) *Validator {
	v := &Validator{}
	if size > 0 {
		// lru.New only fails for a non-positive size.
		v.memo, _ = lru.New[memoKey, string](size)
	}
	return v
}

// Check returns ("", true) when value is acceptable for f, otherwise the
// message to show next to the cell.
func (v *Validator) Check(f Field, value string) (string, bool) {
	if v.memo == nil {
		msg := checkField(f, value)
		return msg, msg == ""
	}
	k := memoKey{field: f, value: value}
	if msg, ok := v.memo.Get(k); ok {
		return msg, msg == ""
	}
	msg := checkField(f, value)
	v.memo.Add(k, msg)
	return msg, msg == ""
}

// checkField runs the rules in order: required, length, pattern.
func checkField(f Field, value string) string {
	if value == "" {
		return f.String() + " cannot be empty"
	}
	switch f {
	case Phone:
		if utf8.RuneCountInString(value) > phoneMaxLen {
			return msgPhoneLength
		}
		if !phoneRe.MatchString(value) {
			return msgPhonePattern
		}
	case Email:
		if !emailRe.MatchString(value) {
			return msgInvalidEmail
		}
	}
	return ""
}
