package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fengguoheng/shopauth/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "User@Example.COM", "user@example.com"},
		{"trims whitespace", "  user@example.com ", "user@example.com"},
		{"collapses dots in local part", "u..ser@example.com", "u.ser@example.com"},
		{"strips leading and trailing dots", ".user.@example.com", "user@example.com"},
		{"non-email passed through lowercased", "Not An Email", "not an email"},
		{"empty stays empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitizer.NormalizeEmail(tc.input))
		})
	}
}
