package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidNIP(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1234563218", true},
		{"123-456-32-18", true},
		{"123 456 32 18", true},
		{"1234563217", false},
		{"123456321", false},
		{"12345632180", false},
		{"12345a3218", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidNIP(tt.in), tt.in)
	}
}

func TestFieldCheck(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value string
		want  string
	}{
		{"required empty", Field{Label: "Company", Required: true}, "  ", "Company is required"},
		{"optional empty", Field{Label: "City"}, "", ""},
		{"optional empty skips rule", Field{Label: "Postal code", Validate: "postcode_iso3166_alpha2=PL"}, "", ""},
		{"email ok", Field{Label: "E-mail", Validate: "email"}, "jan@example.pl", ""},
		{"email bad", Field{Label: "E-mail", Validate: "email"}, "jan@", "E-mail must be an e-mail address"},
		{"nip ok", Field{Label: "NIP", Validate: "nip"}, "123-456-32-18", ""},
		{"nip bad", Field{Label: "NIP", Validate: "nip"}, "1234563217", "NIP must be a valid NIP"},
		{"postcode ok", Field{Label: "Postal code", Validate: "postcode_iso3166_alpha2=PL"}, "00-950", ""},
		{"postcode bad", Field{Label: "Postal code", Validate: "postcode_iso3166_alpha2=PL"}, "00950", "Postal code must be a postal code like 00-950"},
		{"number ok", Field{Label: "Capacity", Validate: "number"}, "120", ""},
		{"number bad", Field{Label: "Capacity", Validate: "number"}, "12.5", "Capacity must be a whole number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.field.Check(tt.value)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.want)
		})
	}
}
