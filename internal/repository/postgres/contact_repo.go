package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go-contacts-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

const contactColumns = `id, nome, email, telefone, cep, estado, cidade, bairro, endereco, numero, created_at, updated_at, deleted_at`

// querier is satisfied by both *sqlx.DB and *sqlx.Tx.
type querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type contactRepo struct {
	db *sqlx.DB
	q  querier
}

func NewContactRepository(db *sqlx.DB) domain.ContactRepository {
	return &contactRepo{db: db, q: db}
}

// searchClause builds the OR-ed ILIKE filter. LIKE wildcards in the user's text
// are escaped so they match literally.
func searchClause(search string, argPos int) (string, interface{}) {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	pattern := "%" + replacer.Replace(search) + "%"
	p := fmt.Sprintf("$%d", argPos)
	clause := ` AND (nome ILIKE ` + p + ` OR email ILIKE ` + p + ` OR telefone ILIKE ` + p +
		` OR cidade ILIKE ` + p + ` OR estado ILIKE ` + p + `)`
	return clause, pattern
}

func (r *contactRepo) List(ctx context.Context, params domain.ListParams) ([]domain.Contact, int64, error) {
	where := `WHERE deleted_at IS NULL`
	var args []interface{}
	if params.Search != "" {
		clause, pattern := searchClause(params.Search, 1)
		where += clause
		args = append(args, pattern)
	}

	var total int64
	if err := r.q.GetContext(ctx, &total, `SELECT COUNT(*) FROM contatos `+where, args...); err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.PerPage
	query := fmt.Sprintf(`SELECT %s FROM contatos %s ORDER BY id DESC LIMIT $%d OFFSET $%d`,
		contactColumns, where, len(args)+1, len(args)+2)
	args = append(args, params.PerPage, offset)

	contacts := []domain.Contact{}
	if err := r.q.SelectContext(ctx, &contacts, query, args...); err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

func (r *contactRepo) Find(ctx context.Context, id int64) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.q.GetContext(ctx, &contact,
		`SELECT `+contactColumns+` FROM contatos WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepo) Insert(ctx context.Context, contact *domain.Contact) error {
	query := `INSERT INTO contatos (nome, email, telefone, cep, estado, cidade, bairro, endereco, numero)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
              RETURNING id, created_at, updated_at`
	err := r.q.QueryRowxContext(ctx, query,
		contact.Nome, contact.Email, contact.Telefone, contact.CEP,
		contact.Estado, contact.Cidade, contact.Bairro, contact.Endereco, contact.Numero,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
	return mapError(err)
}

func (r *contactRepo) Update(ctx context.Context, id int64, contact *domain.Contact) (*domain.Contact, error) {
	query := `UPDATE contatos
              SET nome = $2, email = $3, telefone = $4, cep = $5, estado = $6,
                  cidade = $7, bairro = $8, endereco = $9, numero = $10, updated_at = NOW()
              WHERE id = $1 AND deleted_at IS NULL
              RETURNING ` + contactColumns

	var updated domain.Contact
	err := r.q.QueryRowxContext(ctx, query, id,
		contact.Nome, contact.Email, contact.Telefone, contact.CEP,
		contact.Estado, contact.Cidade, contact.Bairro, contact.Endereco, contact.Numero,
	).StructScan(&updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapError(err)
	}
	return &updated, nil
}

func (r *contactRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	result, err := r.q.ExecContext(ctx,
		`UPDATE contatos SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *contactRepo) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var exists bool
	err := r.q.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM contatos WHERE LOWER(email) = LOWER($1) AND id <> $2 AND deleted_at IS NULL)`,
		email, exceptID)
	return exists, err
}

func (r *contactRepo) ListForExport(ctx context.Context, ids []int64) ([]domain.Contact, error) {
	contacts := []domain.Contact{}
	var err error
	if len(ids) == 0 {
		err = r.q.SelectContext(ctx, &contacts,
			`SELECT `+contactColumns+` FROM contatos WHERE deleted_at IS NULL ORDER BY id ASC`)
	} else {
		err = r.q.SelectContext(ctx, &contacts,
			`SELECT `+contactColumns+` FROM contatos WHERE deleted_at IS NULL AND id = ANY($1) ORDER BY id ASC`,
			pq.Array(ids))
	}
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepo) Transaction(ctx context.Context, fn func(repo domain.ContactRepository) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op once committed

	if err := fn(&contactRepo{db: r.db, q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// mapError translates driver errors into domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrEmailTaken
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return domain.ErrEmailTaken
	}
	return err
}
