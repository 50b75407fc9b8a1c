package form

import "sort"

// Field describes one input of a form.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Required    bool
	// Forced limits the value to the field's options.
	Forced bool
	Secret bool
	// Source names where the options come from: "dict:<name>" or "calendars".
	Source string
	// Validate is a validator tag checked against non-empty values.
	Validate string
}

// Definition is a form layout.
type Definition struct {
	Kind   string
	Title  string
	Fields []Field
}

var definitions = map[string]Definition{
	"exhibitor": {
		Kind:  "exhibitor",
		Title: "New exhibitor",
		Fields: []Field{
			{Key: "name", Label: "Company", Placeholder: "Registered name", Required: true},
			{Key: "nip", Label: "NIP", Placeholder: "123-456-32-18", Required: true, Validate: "nip"},
			{Key: "postal_code", Label: "Postal code", Placeholder: "00-000", Validate: "postcode_iso3166_alpha2=PL"},
			{Key: "city", Label: "City"},
			{Key: "country", Label: "Country", Required: true, Forced: true, Source: "dict:countries"},
			{Key: "hall", Label: "Trade hall", Forced: true, Source: "dict:halls"},
			{Key: "category", Label: "Category", Placeholder: "Pick or type", Source: "dict:categories"},
		},
	},
	"event": {
		Kind:  "event",
		Title: "New event",
		Fields: []Field{
			{Key: "name", Label: "Name", Required: true},
			{Key: "hall", Label: "Trade hall", Required: true, Forced: true, Source: "dict:halls"},
			{Key: "calendar", Label: "Calendar", Forced: true, Source: "calendars"},
			{Key: "status", Label: "Status", Required: true, Forced: true, Source: "dict:event_status"},
		},
	},
	"user": {
		Kind:  "user",
		Title: "New user",
		Fields: []Field{
			{Key: "email", Label: "E-mail", Placeholder: "name@example.com", Required: true, Validate: "email"},
			{Key: "role", Label: "Role", Required: true, Forced: true, Source: "dict:roles"},
			{Key: "password", Label: "Password", Required: true, Secret: true},
		},
	},
	"hall": {
		Kind:  "hall",
		Title: "New trade hall",
		Fields: []Field{
			{Key: "name", Label: "Name", Required: true},
			{Key: "capacity", Label: "Capacity", Placeholder: "Stands", Validate: "number"},
			{Key: "parent", Label: "Parent hall", Forced: true, Source: "dict:halls"},
		},
	},
}

// Lookup returns the form definition for kind.
func Lookup(kind string) (Definition, bool) {
	def, ok := definitions[kind]
	return def, ok
}

// Kinds lists the known form kinds.
func Kinds() []string {
	kinds := make([]string, 0, len(definitions))
	for k := range definitions {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
