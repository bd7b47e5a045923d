// Package prompts provides a PostgreSQL-backed repository for prompt
// templates.
package prompts

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

const allColumns = `id, user_id, name, description, content, created_at, updated_at`

// PostgresRepository implements prompt storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanPrompt(scan func(dest ...any) error) (*models.Prompt, error) {
	prompt := &models.Prompt{}
	err := scan(
		&prompt.ID, &prompt.UserID, &prompt.Name, &prompt.Description,
		&prompt.Content, &prompt.CreatedAt, &prompt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return prompt, nil
}

// List returns the user's prompts, most recently updated first.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Prompt, error) {
	query := `SELECT ` + allColumns + ` FROM prompts WHERE user_id = $1 ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Prompt
	for rows.Next() {
		prompt, err := scanPrompt(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, prompt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns the prompt or common.ErrorNotFound under the ownership rule.
func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Prompt, error) {
	query := `SELECT ` + allColumns + ` FROM prompts WHERE id = $1 AND user_id = $2`

	prompt, err := scanPrompt(r.db.QueryRowContext(ctx, query, id, userID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return prompt, nil
}

// Create inserts the prompt with server-assigned timestamps.
func (r *PostgresRepository) Create(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error) {
	now := time.Now().UnixMilli()
	prompt.CreatedAt = now
	prompt.UpdatedAt = now

	query := `
		INSERT INTO prompts (id, user_id, name, description, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		prompt.ID, prompt.UserID, prompt.Name, prompt.Description,
		prompt.Content, prompt.CreatedAt, prompt.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return prompt, nil
}

// Update applies only the fields present in params as one atomic UPDATE.
func (r *PostgresRepository) Update(ctx context.Context, userID, id string, params UpdateParams) (*models.Prompt, error) {
	args := []any{id, userID, time.Now().UnixMilli()}
	set := []string{"updated_at = $3"}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Name.Set {
		add("name", params.Name.Value)
	}
	if params.Description.Set {
		add("description", params.Description.Value)
	}
	if params.Content.Set {
		add("content", params.Content.Value)
	}

	query := `UPDATE prompts SET ` + strings.Join(set, ", ") +
		` WHERE id = $1 AND user_id = $2 RETURNING ` + allColumns

	prompt, err := scanPrompt(r.db.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return prompt, nil
}

// Delete hard-deletes the prompt under the ownership rule.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM prompts WHERE id = $1 AND user_id = $2`

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
