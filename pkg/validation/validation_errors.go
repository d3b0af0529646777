package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps JSON field names to user-facing labels
var FieldLabels = map[string]string{
	"nome":     "Nome",
	"email":    "E-mail",
	"telefone": "Telefone",
	"cep":      "CEP",
	"estado":   "Estado",
	"cidade":   "Cidade",
	"bairro":   "Bairro",
	"endereco": "Endereço",
	"numero":   "Número",
}

// FieldErrors converts validator.ValidationErrors into messages keyed by field.
// ok is false when err is not a validation error.
func FieldErrors(err error) (fields map[string][]string, ok bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	fields = make(map[string][]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = append(fields[e.Field()], formatSingleError(e))
	}
	return fields, true
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: Campo obrigatório", label)
	case "max":
		return fmt.Sprintf("%s: Máximo de %s caracteres", label, param)
	case "min":
		return fmt.Sprintf("%s: Mínimo de %s caracteres", label, param)
	case "email":
		return fmt.Sprintf("%s: Formato de e-mail inválido", label)
	case "cep_format":
		return fmt.Sprintf("%s: Formato de CEP inválido", label)
	default:
		return fmt.Sprintf("%s: Validação falhou (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return strings.ReplaceAll(fieldName, "_", " ")
}

// FieldOrder is the request body order, used to pick a stable summary message.
var FieldOrder = []string{"nome", "email", "telefone", "cep", "estado", "cidade", "bairro", "endereco", "numero"}

// Summary returns the first message in field order, noting how many more exist.
func Summary(fields map[string][]string) string {
	total := 0
	for _, msgs := range fields {
		total += len(msgs)
	}
	if total == 0 {
		return "Dados inválidos"
	}

	first := ""
	for _, name := range FieldOrder {
		if msgs := fields[name]; len(msgs) > 0 {
			first = msgs[0]
			break
		}
	}
	if first == "" {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if len(fields[k]) > 0 {
				first = fields[k][0]
				break
			}
		}
	}

	switch rest := total - 1; {
	case rest == 1:
		return first + " (e mais 1 erro)"
	case rest > 1:
		return fmt.Sprintf("%s (e mais %d erros)", first, rest)
	default:
		return first
	}
}
