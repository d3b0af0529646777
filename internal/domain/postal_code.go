package domain

import (
	"context"
	"errors"
)

var ErrInvalidPostalCode = errors.New("the zip code is invalid")

// Address is the directory's answer for a postal code.
type Address struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento,omitempty"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	IBGE        string `json:"ibge,omitempty"`
}

// PostalCodeValidator checks a raw postal code against the external directory.
// It returns ErrInvalidPostalCode when the code cannot be confirmed.
type PostalCodeValidator interface {
	Validate(ctx context.Context, raw string) (*Address, error)
}
