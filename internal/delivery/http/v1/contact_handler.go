package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go-contacts-backend/internal/delivery/http/response"
	"go-contacts-backend/internal/domain"
	"go-contacts-backend/pkg/apperror"
	"go-contacts-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
	exportUC  domain.ExportUsecase
}

// NewContactHandler registers the contact routes on group.
func NewContactHandler(group *gin.RouterGroup, contactUC domain.ContactUsecase, exportUC domain.ExportUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
		exportUC:  exportUC,
	}

	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/export", handler.Export)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}

// List godoc
// @Summary      Listar contatos (paginado)
// @Description  Lista contatos não excluídos, do mais recente para o mais antigo. A busca compara nome, e-mail, telefone, cidade e estado.
// @Tags         Contatos
// @Produce      json
// @Param        page      query     int     false  "Página (padrão: 1)"
// @Param        per_page  query     int     false  "Itens por página (padrão: 10, máximo: 100)"
// @Param        search    query     string  false  "Texto de busca"
// @Success      200       {object}  response.Paginator{data=[]domain.Contact}
// @Failure      500       {object}  response.ErrorBody
// @Router       /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))

	result, err := h.contactUC.List(c.Request.Context(), page, perPage, c.Query("search"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.NewPaginator(c.Request, result.Items, len(result.Items), result.Total, result.Page, result.PerPage))
}

// Get godoc
// @Summary      Buscar um contato pelo ID
// @Tags         Contatos
// @Produce      json
// @Param        id   path      int  true  "ID do contato"
// @Success      200  {object}  domain.Contact
// @Failure      404  {object}  response.ErrorBody
// @Failure      500  {object}  response.ErrorBody
// @Router       /contacts/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	contact, err := h.contactUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// Create godoc
// @Summary      Criar um novo contato
// @Description  O CEP é validado no ViaCEP antes da gravação. Um e-mail de aviso é enfileirado após a criação.
// @Tags         Contatos
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactInput  true  "Dados do contato"
// @Success      201      {object}  domain.Contact
// @Failure      400      {object}  response.ErrorBody
// @Failure      422      {object}  response.ValidationBody
// @Failure      500      {object}  response.ErrorBody
// @Router       /contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	input, ok := bindContact(c)
	if !ok {
		return
	}

	contact, err := h.contactUC.Create(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// Update godoc
// @Summary      Atualizar um contato existente
// @Description  Substitui todos os campos editáveis; o CEP é validado novamente.
// @Tags         Contatos
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "ID do contato"
// @Param        contact  body      domain.ContactInput  true  "Dados do contato"
// @Success      200      {object}  domain.Contact
// @Failure      404      {object}  response.ErrorBody
// @Failure      422      {object}  response.ValidationBody
// @Failure      500      {object}  response.ErrorBody
// @Router       /contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}
	input, ok := bindContact(c)
	if !ok {
		return
	}

	contact, err := h.contactUC.Update(c.Request.Context(), id, input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// Delete godoc
// @Summary      Excluir um contato pelo ID
// @Tags         Contatos
// @Param        id   path  int  true  "ID do contato"
// @Success      204
// @Failure      404  {object}  response.ErrorBody
// @Failure      500  {object}  response.ErrorBody
// @Router       /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	if err := h.contactUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export godoc
// @Summary      Exportar contatos selecionados
// @Description  IDs separados por vírgula; se omitido, exporta todos. IDs não numéricos são ignorados.
// @Tags         Contatos
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        ids     query     string  false  "IDs, ex.: 1,2,3"
// @Param        format  query     string  false  "csv (padrão) ou xlsx"
// @Success      200     {file}    file
// @Failure      400     {object}  response.ErrorBody
// @Failure      500     {object}  response.ErrorBody
// @Router       /contacts/export [get]
func (h *ContactHandler) Export(c *gin.Context) {
	raw := c.Query("ids")
	ids := ParseIDs(raw)
	if strings.TrimSpace(raw) != "" && len(ids) == 0 {
		c.Error(apperror.BadRequest("Nenhum ID válido informado"))
		return
	}

	artifact, err := h.exportUC.Export(c.Request.Context(), ids, strings.ToLower(c.Query("format")))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, artifact.FileName))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Body)
}

// ParseIDs reads a comma-separated id list, skipping anything that is not a
// positive integer. Duplicates are dropped.
func ParseIDs(raw string) []int64 {
	var ids []int64
	seen := map[int64]bool{}
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// contactID parses the :id path segment. Anything that is not a positive
// integer cannot name a contact, so it is reported as not found.
func contactID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.NotFound("Contato não encontrado."))
		return 0, false
	}
	return id, true
}

// bindContact decodes the JSON body. Rule violations become a 422 keyed by field.
func bindContact(c *gin.Context) (*domain.ContactInput, bool) {
	var input domain.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if fields, ok := validation.FieldErrors(err); ok {
			c.Error(apperror.Validation(validation.Summary(fields), fields))
			return nil, false
		}
		c.Error(apperror.BadRequest("Corpo da requisição inválido"))
		return nil, false
	}
	return &input, true
}
