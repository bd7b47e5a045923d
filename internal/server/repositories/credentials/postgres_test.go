package credentials

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/cortex-chat/cortex-server/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var credColumns = []string{
	"id", "user_id", "provider", "name", "encrypted_data", "iv",
	"created_at", "updated_at",
}

func credRow(id string) []driver.Value {
	now := time.Now()
	return []driver.Value{id, "u-1", "openai", "default", "blob", "iv-1", now, now}
}

func TestList_NewestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+id,.*FROM\s+credentials\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC`

	rows := sqlmock.NewRows(credColumns).AddRow(credRow("c-2")...).AddRow(credRow("c-1")...)
	mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.List(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c-2" {
		t.Fatalf("unexpected credentials: %+v", got)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)INSERT\s+INTO\s+credentials\s*\(id,\s*user_id,\s*provider,\s*name,\s*encrypted_data,\s*iv\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+created_at,\s*updated_at`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now)
	mock.ExpectQuery(q).
		WithArgs("c-1", "u-1", "openai", "default", "blob", "iv-1").
		WillReturnRows(rows)

	cred := &models.Credential{
		ID: "c-1", UserID: "u-1", Provider: "openai", Name: "default",
		EncryptedData: "blob", IV: "iv-1",
	}
	got, err := repo.Create(context.Background(), cred)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "c-1" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected credential: %+v", got)
	}
}

func TestReplace_FullOverwrite(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)UPDATE\s+credentials\s+SET\s+provider\s*=\s*\$3,\s*name\s*=\s*\$4,\s*encrypted_data\s*=\s*\$5,\s*iv\s*=\s*\$6,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s+RETURNING`

	rows := sqlmock.NewRows(credColumns).AddRow(credRow("c-1")...)
	mock.ExpectQuery(q).
		WithArgs("c-1", "u-1", "anthropic", "work", "blob2", "iv-2").
		WillReturnRows(rows)

	params := ReplaceParams{Provider: "anthropic", Name: "work", EncryptedData: "blob2", IV: "iv-2"}
	got, err := repo.Replace(context.Background(), "u-1", "c-1", params)
	if err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	if got.ID != "c-1" {
		t.Fatalf("unexpected credential: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReplace_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)UPDATE\s+credentials\s+SET`

	mock.ExpectQuery(q).
		WithArgs("c-404", "u-1", "anthropic", "work", "blob2", "iv-2").
		WillReturnError(sql.ErrNoRows)

	params := ReplaceParams{Provider: "anthropic", Name: "work", EncryptedData: "blob2", IV: "iv-2"}
	_, err := repo.Replace(context.Background(), "u-1", "c-404", params)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)DELETE\s+FROM\s+credentials\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`

	mock.ExpectExec(q).
		WithArgs("c-404", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "u-1", "c-404")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
