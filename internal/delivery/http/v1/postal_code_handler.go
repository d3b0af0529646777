package v1

import (
	"errors"
	"net/http"

	"go-contacts-backend/internal/domain"
	"go-contacts-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PostalCodeHandler struct {
	validator domain.PostalCodeValidator
}

// NewPostalCodeHandler registers the address lookup used by the form autofill.
func NewPostalCodeHandler(group *gin.RouterGroup, validator domain.PostalCodeValidator) {
	handler := &PostalCodeHandler{validator: validator}
	group.GET("/:cep", handler.Lookup)
}

// Lookup godoc
// @Summary      Consultar endereço por CEP
// @Description  Consulta o ViaCEP (com cache de 2 horas) e devolve o endereço.
// @Tags         CEP
// @Produce      json
// @Param        cep  path      string  true  "CEP, com ou sem máscara"
// @Success      200  {object}  domain.Address
// @Failure      422  {object}  response.ValidationBody
// @Router       /postal-codes/{cep} [get]
func (h *PostalCodeHandler) Lookup(c *gin.Context) {
	addr, err := h.validator.Validate(c.Request.Context(), c.Param("cep"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPostalCode) {
			c.Error(apperror.FieldInvalid("cep", "The zip code is invalid"))
			return
		}
		c.Error(apperror.Internal(err))
		return
	}
	c.JSON(http.StatusOK, addr)
}
