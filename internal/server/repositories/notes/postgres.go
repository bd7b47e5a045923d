// Package notes provides a PostgreSQL-backed repository for encrypted notes.
// Every query is scoped by the owning user id; fetching by note id alone is
// not expressible through this interface.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/cortex-chat/cortex-server/internal/dbx"
	"github.com/cortex-chat/cortex-server/internal/server/models"
)

const allColumns = `id, user_id, encrypted_title, title_nonce,
		encrypted_content, content_nonce, folder_id, pinned, archived,
		created_at, updated_at`

// PostgresRepository implements note storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanNote(scan func(dest ...any) error) (*models.Note, error) {
	note := &models.Note{}
	err := scan(
		&note.ID, &note.UserID, &note.EncryptedTitle, &note.TitleNonce,
		&note.EncryptedContent, &note.ContentNonce, &note.FolderID,
		&note.Pinned, &note.Archived, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// List returns the user's notes matching filter, most recently updated
// first.
func (r *PostgresRepository) List(ctx context.Context, userID string, filter ListFilter) ([]*models.Note, error) {
	query := `SELECT ` + allColumns + ` FROM notes WHERE user_id = $1 AND archived = $2`
	args := []any{userID, filter.Archived}

	if filter.FolderID != nil {
		args = append(args, *filter.FolderID)
		query += fmt.Sprintf(" AND folder_id = $%d", len(args))
	}
	query += " ORDER BY updated_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		note, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns the note or common.ErrorNotFound when it is absent or owned
// by a different user; the two cases are indistinguishable to the caller.
func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Note, error) {
	query := `SELECT ` + allColumns + ` FROM notes WHERE id = $1 AND user_id = $2`

	note, err := scanNote(r.db.QueryRowContext(ctx, query, id, userID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

// Create inserts the note with server-assigned timestamps. A duplicate id
// (client retry racing itself) returns common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	now := time.Now().UnixMilli()
	note.CreatedAt = now
	note.UpdatedAt = now

	query := `
		INSERT INTO notes (id, user_id, encrypted_title, title_nonce,
			encrypted_content, content_nonce, folder_id, pinned, archived,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		note.ID, note.UserID, note.EncryptedTitle, note.TitleNonce,
		note.EncryptedContent, note.ContentNonce, note.FolderID,
		note.Pinned, note.Archived, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

// Update applies only the fields present in params as one atomic UPDATE,
// bumps updated_at, and returns the full row. Ownership is enforced by the
// WHERE clause; zero rows means common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, userID, id string, params UpdateParams) (*models.Note, error) {
	args := []any{id, userID, time.Now().UnixMilli()}
	set := []string{"updated_at = $3"}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.EncryptedTitle.Set {
		add("encrypted_title", params.EncryptedTitle.Value)
	}
	if params.TitleNonce.Set {
		add("title_nonce", params.TitleNonce.Value)
	}
	if params.EncryptedContent.Set {
		add("encrypted_content", params.EncryptedContent.Value)
	}
	if params.ContentNonce.Set {
		add("content_nonce", params.ContentNonce.Value)
	}
	if params.FolderID.Set {
		add("folder_id", params.FolderID.Value)
	}
	if params.Pinned.Set {
		add("pinned", params.Pinned.Value)
	}
	if params.Archived.Set {
		add("archived", params.Archived.Value)
	}

	query := `UPDATE notes SET ` + strings.Join(set, ", ") +
		` WHERE id = $1 AND user_id = $2 RETURNING ` + allColumns

	note, err := scanNote(r.db.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

// Delete hard-deletes the note under the same ownership rule as Get.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
