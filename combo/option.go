// Package combo implements a combo input: a text field that can restrict its
// value to a set of options, navigate a dropdown list from the keyboard or
// mouse and place that list above or below itself depending on free space.
//
// The widget never owns the value it edits. The owner hands in a
// Value accessor and receives every change through its Set method.
package combo

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Option is a single entry of the dropdown list.
type Option struct {
	Value       any    `json:"value" toml:"value"`
	Label       string `json:"label" toml:"label"`
	Description string `json:"description,omitempty" toml:"description"`
}

// Key returns the string form of the option value, which is its identity.
func (o Option) Key() string {
	return ValueString(o.Value)
}

// ValueString converts a primitive option value to the string form used for
// comparisons. Values of different types with the same string form compare
// equal, so 1 and "1" name the same option. Unsupported kinds fall back to
// fmt.Sprint.
func ValueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// IndexOf returns the index of the option whose value matches value, or -1.
func IndexOf(value string, options []Option) int {
	for i, opt := range options {
		if opt.Key() == value {
			return i
		}
	}
	return -1
}

// IsAllowedValue reports whether value is the string form of some option
// value. An empty option list places no restriction.
func IsAllowedValue(value string, options []Option) bool {
	if len(options) == 0 {
		return true
	}
	return IndexOf(value, options) >= 0
}

// MatchesPrefix reports whether at least one option label starts with text,
// ignoring case. An empty option list places no restriction.
func MatchesPrefix(text string, options []Option) bool {
	if len(options) == 0 {
		return true
	}
	fold := cases.Fold()
	prefix := fold.String(text)
	for _, opt := range options {
		if strings.HasPrefix(fold.String(opt.Label), prefix) {
			return true
		}
	}
	return false
}

// DisplayValue is the text shown in the input. With forced selection and a
// non-empty option list it is the label of the option matching value, or
// "" when nothing matches. Otherwise it is value itself.
func DisplayValue(value string, options []Option, forced bool) string {
	if !forced || len(options) == 0 {
		return value
	}
	if i := IndexOf(value, options); i >= 0 {
		return options[i].Label
	}
	return ""
}
