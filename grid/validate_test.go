package grid

import (
	"strings"
	"testing"
)

func TestCheckField(t *testing.T) {
	cases := []struct {
		name  string
		field Field
		value string
		want  string
	}{
		{"email ok", Email, "a@b.com", ""},
		{"email no tld", Email, "a@b", msgInvalidEmail},
		{"email with space", Email, "a b@c.com", msgInvalidEmail},
		{"email no at", Email, "abc", msgInvalidEmail},
		{"email double at", Email, "a@b@c.com", msgInvalidEmail},
		{"email no-break space", Email, "a\u00a0b@c.com", msgInvalidEmail},
		{"email em space", Email, "a\u2003b@c.com", msgInvalidEmail},
		{"email byte order mark", Email, "a@b\ufeff.com", msgInvalidEmail},
		{"email line separator", Email, "a@b.c\u2028om", msgInvalidEmail},
		{"email vertical tab", Email, "a\vb@c.com", msgInvalidEmail},
		{"email empty", Email, "", "email cannot be empty"},
		{"phone ok", Phone, "(626) 555-1234", ""},
		{"phone letters", Phone, "555-CALL", msgPhonePattern},
		{"phone no-break space", Phone, "(626)\u00a0555-1234", ""},
		{"phone ideographic space", Phone, "626\u3000555\u30001234", ""},
		{"phone zero width space", Phone, "626\u200b5551234", msgPhonePattern},
		{"phone unicode digits", Phone, "\u0661\u0662\u0663", msgPhonePattern},
		{"phone 20 digits", Phone, strings.Repeat("1", 20), ""},
		{"phone 21 digits", Phone, strings.Repeat("1", 21), msgPhoneLength},
		{"phone long with letters", Phone, strings.Repeat("x", 25), msgPhoneLength},
		{"phone empty", Phone, "", "phone cannot be empty"},
		{"first name any text", FirstName, "  ", ""},
		{"first name empty", FirstName, "", "firstName cannot be empty"},
		{"last name empty", LastName, "", "lastName cannot be empty"},
		{"position free form", Position, "VP, R&D", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := checkField(tc.field, tc.value); got != tc.want {
				t.Fatalf("checkField(%v, %q) = %q, want %q", tc.field, tc.value, got, tc.want)
			}
		})
	}
}

func TestValidatorMemoMatchesUncached(t *testing.T) {
	cached := NewValidator(2)
	plain := NewValidator(0)
	values := []string{"a@b.com", "abc", "", "x@y.z", "a@b.com", "abc", "q w@e.rt"}
	for round := 0; round < 3; round++ {
		for _, v := range values {
			for _, f := range Fields {
				m1, ok1 := cached.Check(f, v)
				m2, ok2 := plain.Check(f, v)
				if m1 != m2 || ok1 != ok2 {
					t.Fatalf("round %d %v %q: cached (%q, %v) plain (%q, %v)", round, f, v, m1, ok1, m2, ok2)
				}
			}
		}
	}
	if cached.memo.Len() > 2 {
		t.Fatalf("memo grew past its bound: %d", cached.memo.Len())
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(f.String())
		if err != nil || got != f {
			t.Fatalf("ParseField(%q) = %v, %v", f.String(), got, err)
		}
	}
	if _, err := ParseField("salary"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
	if Phone.Label() != "Phone" || FirstName.Label() != "First Name" {
		t.Fatalf("unexpected labels %q %q", Phone.Label(), FirstName.Label())
	}
}
