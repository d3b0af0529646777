package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	nonDigitRegex = regexp.MustCompile(`[^0-9]`)
)

// TagName is the struct tag shared by gin binding and the usecase validator.
const TagName = "binding"

// New returns a validator configured like gin's binding engine, with the custom
// rules registered.
func New() *validator.Validate {
	v := validator.New()
	v.SetTagName(TagName)
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("cep_format", CEPFormat)

	// Report JSON field names so error keys match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// NormalizeCEP strips every non-digit character.
func NormalizeCEP(raw string) string {
	return nonDigitRegex.ReplaceAllString(raw, "")
}

// CEPFormat requires at least one digit once the mask is stripped. Length and
// existence are the directory's call.
func CEPFormat(fl validator.FieldLevel) bool {
	val := strings.TrimSpace(fl.Field().String())
	if val == "" {
		return true // Optional, use required if needed
	}
	return NormalizeCEP(val) != ""
}
