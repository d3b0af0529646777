package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-contacts-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contactColumnNames = []string{
	"id", "nome", "email", "telefone", "cep", "estado", "cidade", "bairro", "endereco", "numero",
	"created_at", "updated_at", "deleted_at",
}

var createdAt = time.Date(2024, time.March, 2, 14, 5, 0, 0, time.UTC)

// createMockRepo builds a repository on top of a mock database handle.
func createMockRepo(t *testing.T) (domain.ContactRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContactRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func contactRow(rows *sqlmock.Rows, id int64, nome, email, cidade string) *sqlmock.Rows {
	return rows.AddRow(id, nome, email, "11999999999", "01001000", "SP", cidade, "Sé", "Praça da Sé", "100",
		createdAt, createdAt, nil)
}

func TestListWithoutSearch(t *testing.T) {
	repo, mock := createMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contatos WHERE deleted_at IS NULL$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	rows := sqlmock.NewRows(contactColumnNames)
	contactRow(rows, 12, "Carla", "carla@example.com", "Campinas")
	contactRow(rows, 11, "Bruno", "bruno@example.com", "Santos")
	mock.ExpectQuery(`FROM contatos WHERE deleted_at IS NULL ORDER BY id DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 10).
		WillReturnRows(rows)

	contacts, total, err := repo.List(context.Background(), domain.ListParams{Page: 2, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, contacts, 2)
	assert.Equal(t, int64(12), contacts[0].ID)
	assert.Equal(t, "Campinas", *contacts[0].Cidade)
	assert.Nil(t, contacts[0].DeletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithSearch(t *testing.T) {
	repo, mock := createMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contatos WHERE deleted_at IS NULL AND \(nome ILIKE \$1 OR email ILIKE \$1 OR telefone ILIKE \$1 OR cidade ILIKE \$1 OR estado ILIKE \$1\)`).
		WithArgs("%sao paulo%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	rows := sqlmock.NewRows(contactColumnNames)
	contactRow(rows, 3, "Ana", "ana@example.com", "Sao Paulo")
	mock.ExpectQuery(`ILIKE \$1\) ORDER BY id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("%sao paulo%", 10, 0).
		WillReturnRows(rows)

	contacts, total, err := repo.List(context.Background(), domain.ListParams{Page: 1, PerPage: 10, Search: "sao paulo"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ana", contacts[0].Nome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchEscapesWildcards(t *testing.T) {
	_, pattern := searchClause(`50%_off\`, 1)
	assert.Equal(t, `%50\%\_off\\%`, pattern)
}

func TestFind(t *testing.T) {
	repo, mock := createMockRepo(t)

	rows := sqlmock.NewRows(contactColumnNames)
	contactRow(rows, 29, "Erika", "erika@example.com", "Recife")
	mock.ExpectQuery(`FROM contatos WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs(int64(29)).
		WillReturnRows(rows)

	contact, err := repo.Find(context.Background(), 29)
	require.NoError(t, err)
	assert.Equal(t, "erika@example.com", contact.Email)
	assert.Equal(t, createdAt, contact.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindNotFound(t *testing.T) {
	repo, mock := createMockRepo(t)

	mock.ExpectQuery(`FROM contatos WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs(int64(9999)).
		WillReturnRows(sqlmock.NewRows(contactColumnNames))

	_, err := repo.Find(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertInsideTransaction(t *testing.T) {
	repo, mock := createMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO contatos`).
		WithArgs("Vitor Teste", "vitor@example.com", nil, "01001000", nil, nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, createdAt, createdAt))
	mock.ExpectCommit()

	contact := &domain.Contact{Nome: "Vitor Teste", Email: "vitor@example.com", CEP: "01001000"}
	err := repo.Transaction(context.Background(), func(tx domain.ContactRepository) error {
		return tx.Insert(context.Background(), contact)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), contact.ID)
	assert.Equal(t, createdAt, contact.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRollsBackOnError(t *testing.T) {
	repo, mock := createMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO contatos`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Transaction(context.Background(), func(tx domain.ContactRepository) error {
		return tx.Insert(context.Background(), &domain.Contact{Nome: "Dup", Email: "dup@example.com", CEP: "01001000"})
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	repo, mock := createMockRepo(t)

	phone := "11988888888"
	rows := sqlmock.NewRows(contactColumnNames).
		AddRow(5, "Novo Nome", "novo@example.com", phone, "01310930", nil, nil, nil, nil, nil, createdAt, createdAt.Add(time.Hour), nil)
	mock.ExpectQuery(`UPDATE contatos\s+SET nome = \$2`).
		WithArgs(int64(5), "Novo Nome", "novo@example.com", &phone, "01310930", nil, nil, nil, nil, nil).
		WillReturnRows(rows)

	updated, err := repo.Update(context.Background(), 5, &domain.Contact{
		Nome: "Novo Nome", Email: "novo@example.com", Telefone: &phone, CEP: "01310930",
	})
	require.NoError(t, err)
	assert.Equal(t, "Novo Nome", updated.Nome)
	assert.Equal(t, createdAt.Add(time.Hour), updated.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotFound(t *testing.T) {
	repo, mock := createMockRepo(t)

	mock.ExpectQuery(`UPDATE contatos`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 77, &domain.Contact{Nome: "X", Email: "x@example.com", CEP: "01001000"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDelete(t *testing.T) {
	repo, mock := createMockRepo(t)

	mock.ExpectExec(`UPDATE contatos SET deleted_at = NOW\(\) WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE contatos SET deleted_at = NOW\(\)`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.SoftDelete(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.SoftDelete(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailTaken(t *testing.T) {
	repo, mock := createMockRepo(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("vitor@example.com", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.EmailTaken(context.Background(), "vitor@example.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListForExport(t *testing.T) {
	repo, mock := createMockRepo(t)

	rows := sqlmock.NewRows(contactColumnNames)
	contactRow(rows, 2, "B", "b@example.com", "Santos")
	contactRow(rows, 5, "E", "e@example.com", "Santos")
	mock.ExpectQuery(`WHERE deleted_at IS NULL AND id = ANY\(\$1\) ORDER BY id ASC`).
		WithArgs("{2,5}").
		WillReturnRows(rows)

	contacts, err := repo.ListForExport(context.Background(), []int64{2, 5})
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, int64(2), contacts[0].ID)
	assert.Equal(t, int64(5), contacts[1].ID)

	mock.ExpectQuery(`WHERE deleted_at IS NULL ORDER BY id ASC`).
		WillReturnError(errors.New("connection reset"))
	_, err = repo.ListForExport(context.Background(), nil)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
