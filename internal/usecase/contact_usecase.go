package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-contacts-backend/internal/domain"
	"go-contacts-backend/pkg/apperror"
	"go-contacts-backend/pkg/logger"
	"go-contacts-backend/pkg/validation"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100

	msgEmailTaken      = "E-mail: Já cadastrado"
	msgInvalidCEP      = "The zip code is invalid"
	msgContactNotFound = "Contato não encontrado."
)

type contactUsecase struct {
	repo        domain.ContactRepository
	postalCodes domain.PostalCodeValidator
	notifier    domain.ContactNotifier
	validate    *validator.Validate
}

func NewContactUsecase(repo domain.ContactRepository, postalCodes domain.PostalCodeValidator, notifier domain.ContactNotifier) domain.ContactUsecase {
	return &contactUsecase{
		repo:        repo,
		postalCodes: postalCodes,
		notifier:    notifier,
		validate:    validation.New(),
	}
}

// SanitizeListParams coerces paging input: page >= 1, perPage in [1, MaxPerPage]
// defaulting to DefaultPerPage, search trimmed.
func SanitizeListParams(page, perPage int, search string) domain.ListParams {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return domain.ListParams{Page: page, PerPage: perPage, Search: strings.TrimSpace(search)}
}

func (u *contactUsecase) List(ctx context.Context, page, perPage int, search string) (*domain.ContactPage, error) {
	params := SanitizeListParams(page, perPage, search)

	items, total, err := u.repo.List(ctx, params)
	if err != nil {
		return nil, u.internal("list", "Erro ao listar contatos.", err, "page", params.Page, "search", params.Search)
	}
	return &domain.ContactPage{Items: items, Total: total, Page: params.Page, PerPage: params.PerPage}, nil
}

func (u *contactUsecase) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	contact, err := u.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(msgContactNotFound)
		}
		return nil, u.internal("get", "Erro ao buscar contato.", err, "id", id)
	}
	return contact, nil
}

func (u *contactUsecase) Create(ctx context.Context, input *domain.ContactInput) (*domain.Contact, error) {
	if err := u.check(ctx, input, 0); err != nil {
		return nil, err
	}

	contact := toContact(input)
	err := u.repo.Transaction(ctx, func(tx domain.ContactRepository) error {
		return tx.Insert(ctx, contact)
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, apperror.FieldInvalid("email", msgEmailTaken)
		}
		return nil, u.internal("create", "Erro ao criar contato.", err, "email", contact.Email)
	}

	// Committed: delivery problems are logged, never surfaced.
	if err := u.notifier.NotifyCreated(context.WithoutCancel(ctx), contact); err != nil {
		logger.Log.Error("contact notification failed", "id", contact.ID, "error", err)
	}
	return contact, nil
}

func (u *contactUsecase) Update(ctx context.Context, id int64, input *domain.ContactInput) (*domain.Contact, error) {
	if _, err := u.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := u.check(ctx, input, id); err != nil {
		return nil, err
	}

	updated, err := u.repo.Update(ctx, id, toContact(input))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, apperror.NotFound(msgContactNotFound)
		case errors.Is(err, domain.ErrEmailTaken):
			return nil, apperror.FieldInvalid("email", msgEmailTaken)
		}
		return nil, u.internal("update", "Erro ao atualizar contato.", err, "id", id)
	}
	return updated, nil
}

func (u *contactUsecase) Delete(ctx context.Context, id int64) error {
	deleted, err := u.repo.SoftDelete(ctx, id)
	if err != nil {
		return u.internal("delete", "Erro ao excluir contato.", err, "id", id)
	}
	if !deleted {
		return apperror.NotFound(msgContactNotFound)
	}
	return nil
}

// check runs every input rule and reports all failing fields at once. The
// uniqueness and directory checks only run for fields that are well-formed.
func (u *contactUsecase) check(ctx context.Context, input *domain.ContactInput, exceptID int64) error {
	trim(input)

	fields := map[string][]string{}
	if err := u.validate.Struct(input); err != nil {
		fe, ok := validation.FieldErrors(err)
		if !ok {
			return u.internal("validate", "Erro ao validar contato.", err)
		}
		fields = fe
	}

	if _, bad := fields["email"]; !bad {
		taken, err := u.repo.EmailTaken(ctx, input.Email, exceptID)
		if err != nil {
			return u.internal("email_taken", "Erro ao validar contato.", err, "id", exceptID)
		}
		if taken {
			fields["email"] = []string{msgEmailTaken}
		}
	}

	if _, bad := fields["cep"]; !bad {
		if _, err := u.postalCodes.Validate(ctx, input.CEP); err != nil {
			fields["cep"] = []string{msgInvalidCEP}
		}
	}

	if len(fields) > 0 {
		return apperror.Validation(validation.Summary(fields), fields)
	}
	return nil
}

// internal logs err with the operation context and hides it behind message.
func (u *contactUsecase) internal(op, message string, err error, attrs ...any) error {
	logger.Log.Error("contact operation failed", append([]any{"op", op, "error", err}, attrs...)...)
	return apperror.InternalMsg(message, err)
}

func trim(in *domain.ContactInput) {
	for _, f := range []*string{&in.Nome, &in.Email, &in.Telefone, &in.CEP, &in.Estado, &in.Cidade, &in.Bairro, &in.Endereco, &in.Numero} {
		*f = strings.TrimSpace(*f)
	}
}

// toContact maps input onto a row. Empty optional fields are stored as NULL and
// the postal code is stored as digits only.
func toContact(in *domain.ContactInput) *domain.Contact {
	return &domain.Contact{
		Nome:     in.Nome,
		Email:    in.Email,
		Telefone: nullable(in.Telefone),
		CEP:      validation.NormalizeCEP(in.CEP),
		Estado:   nullable(in.Estado),
		Cidade:   nullable(in.Cidade),
		Bairro:   nullable(in.Bairro),
		Endereco: nullable(in.Endereco),
		Numero:   nullable(in.Numero),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
