package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound   = errors.New("resource not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Contact is one person's contact details. DeletedAt marks a soft-deleted row.
type Contact struct {
	ID        int64      `json:"id" db:"id"`
	Nome      string     `json:"nome" db:"nome"`
	Email     string     `json:"email" db:"email"`
	Telefone  *string    `json:"telefone" db:"telefone"`
	CEP       string     `json:"cep" db:"cep"`
	Estado    *string    `json:"estado" db:"estado"`
	Cidade    *string    `json:"cidade" db:"cidade"`
	Bairro    *string    `json:"bairro" db:"bairro"`
	Endereco  *string    `json:"endereco" db:"endereco"`
	Numero    *string    `json:"numero" db:"numero"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// ContactInput holds the mutable fields of a contact, used for both create and
// full-replace update.
type ContactInput struct {
	Nome     string `json:"nome" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Telefone string `json:"telefone" binding:"omitempty,max=20"`
	CEP      string `json:"cep" binding:"required,cep_format"`
	Estado   string `json:"estado" binding:"omitempty,max=100"`
	Cidade   string `json:"cidade" binding:"omitempty,max=100"`
	Bairro   string `json:"bairro" binding:"omitempty,max=100"`
	Endereco string `json:"endereco" binding:"omitempty,max=255"`
	Numero   string `json:"numero" binding:"omitempty,max=50"`
}

// ListParams drives paginated listing. Search is matched case-insensitively as a
// substring of nome, email, telefone, cidade or estado.
type ListParams struct {
	Page    int
	PerPage int
	Search  string
}

// ContactPage is one page of a listing plus the total number of matching rows.
type ContactPage struct {
	Items   []Contact
	Total   int64
	Page    int
	PerPage int
}

// ContactRepository is the persistence boundary. Every method ignores
// soft-deleted rows.
type ContactRepository interface {
	List(ctx context.Context, params ListParams) ([]Contact, int64, error)
	Find(ctx context.Context, id int64) (*Contact, error)
	Insert(ctx context.Context, contact *Contact) error
	Update(ctx context.Context, id int64, contact *Contact) (*Contact, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
	ListForExport(ctx context.Context, ids []int64) ([]Contact, error)
	// Transaction runs fn against a repository bound to a single transaction.
	// It commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(repo ContactRepository) error) error
}

type ContactUsecase interface {
	List(ctx context.Context, page, perPage int, search string) (*ContactPage, error)
	Get(ctx context.Context, id int64) (*Contact, error)
	Create(ctx context.Context, input *ContactInput) (*Contact, error)
	Update(ctx context.Context, id int64, input *ContactInput) (*Contact, error)
	Delete(ctx context.Context, id int64) error
}

// ContactNotifier announces contact lifecycle events. Implementations must not
// block on delivery.
type ContactNotifier interface {
	NotifyCreated(ctx context.Context, contact *Contact) error
}
