// Package folders provides a PostgreSQL-backed repository for folder
// organization. Folder membership is soft: deleting a folder leaves its
// contents in place with a dangling folder_id.
package folders

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

const allColumns = `id, user_id, name, parent_id, created_at, updated_at`

// PostgresRepository implements folder storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanFolder(scan func(dest ...any) error) (*models.Folder, error) {
	folder := &models.Folder{}
	err := scan(
		&folder.ID, &folder.UserID, &folder.Name, &folder.ParentID,
		&folder.CreatedAt, &folder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return folder, nil
}

// List returns the user's folders ordered alphabetically by name, a
// deliberate difference from the updated-first ordering of other resources.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Folder, error) {
	query := `SELECT ` + allColumns + ` FROM folders WHERE user_id = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Folder
	for rows.Next() {
		folder, err := scanFolder(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns the folder or common.ErrorNotFound under the ownership rule.
func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Folder, error) {
	query := `SELECT ` + allColumns + ` FROM folders WHERE id = $1 AND user_id = $2`

	folder, err := scanFolder(r.db.QueryRowContext(ctx, query, id, userID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return folder, nil
}

// Create inserts the folder with server-assigned timestamps.
func (r *PostgresRepository) Create(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	now := time.Now().UnixMilli()
	folder.CreatedAt = now
	folder.UpdatedAt = now

	query := `
		INSERT INTO folders (id, user_id, name, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		folder.ID, folder.UserID, folder.Name, folder.ParentID,
		folder.CreatedAt, folder.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return folder, nil
}

// Update applies only the fields present in params as one atomic UPDATE.
func (r *PostgresRepository) Update(ctx context.Context, userID, id string, params UpdateParams) (*models.Folder, error) {
	args := []any{id, userID, time.Now().UnixMilli()}
	set := []string{"updated_at = $3"}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Name.Set {
		add("name", params.Name.Value)
	}
	if params.ParentID.Set {
		add("parent_id", params.ParentID.Value)
	}

	query := `UPDATE folders SET ` + strings.Join(set, ", ") +
		` WHERE id = $1 AND user_id = $2 RETURNING ` + allColumns

	folder, err := scanFolder(r.db.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return folder, nil
}

// Delete removes the folder only. Notes and chats referencing it keep their
// folder_id; orphaning is the documented policy, not a bug.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM folders WHERE id = $1 AND user_id = $2`

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
