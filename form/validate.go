package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

var messages = map[string]string{
	"required":                "is required",
	"email":                   "must be an e-mail address",
	"nip":                     "must be a valid NIP",
	"postcode_iso3166_alpha2": "must be a postal code like 00-950",
	"number":                  "must be a whole number",
	"forced":                  "must be one of the listed options",
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("nip", func(fl validator.FieldLevel) bool {
		return ValidNIP(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

var nipWeights = [9]int{6, 5, 7, 2, 3, 4, 5, 6, 7}

// ValidNIP reports whether s is a Polish tax number with a correct check
// digit. Dashes and spaces are ignored.
func ValidNIP(s string) bool {
	digits := strings.NewReplacer("-", "", " ", "").Replace(s)
	if len(digits) != 10 {
		return false
	}
	sum := 0
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
		if i < 9 {
			sum += int(digits[i]-'0') * nipWeights[i]
		}
	}
	check := sum % 11
	return check != 10 && check == int(digits[9]-'0')
}

// Check validates value against the field rules. Empty optional values pass.
func (f Field) Check(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		if f.Required {
			return fieldError(f, "required")
		}
		return nil
	}
	if f.Validate == "" {
		return nil
	}
	if err := validate.Var(value, f.Validate); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(f, verrs[0].Tag())
		}
		return fmt.Errorf("%s: %w", f.Label, err)
	}
	return nil
}

func fieldError(f Field, tag string) error {
	msg, ok := messages[tag]
	if !ok {
		msg = "is invalid"
	}
	return fmt.Errorf("%s %s", f.Label, msg)
}
