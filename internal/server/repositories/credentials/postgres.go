// Package credentials provides a PostgreSQL-backed repository for encrypted
// third-party API credentials.
package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/cortex-chat/cortex-server/internal/dbx"
	"github.com/cortex-chat/cortex-server/internal/server/models"
)

const allColumns = `id, user_id, provider, name, encrypted_data, iv, created_at, updated_at`

// PostgresRepository implements credential storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanCredential(scan func(dest ...any) error) (*models.Credential, error) {
	cred := &models.Credential{}
	err := scan(
		&cred.ID, &cred.UserID, &cred.Provider, &cred.Name,
		&cred.EncryptedData, &cred.IV, &cred.CreatedAt, &cred.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return cred, nil
}

// List returns the user's credentials, newest first.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Credential, error) {
	query := `SELECT ` + allColumns + ` FROM credentials WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Credential
	for rows.Next() {
		cred, err := scanCredential(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, cred)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns the credential or common.ErrorNotFound under the ownership rule.
func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Credential, error) {
	query := `SELECT ` + allColumns + ` FROM credentials WHERE id = $1 AND user_id = $2`

	cred, err := scanCredential(r.db.QueryRowContext(ctx, query, id, userID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cred, nil
}

// Create inserts the credential; timestamps come from column defaults.
func (r *PostgresRepository) Create(ctx context.Context, cred *models.Credential) (*models.Credential, error) {
	query := `
		INSERT INTO credentials (id, user_id, provider, name, encrypted_data, iv)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		cred.ID, cred.UserID, cred.Provider, cred.Name,
		cred.EncryptedData, cred.IV).Scan(&cred.CreatedAt, &cred.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cred, nil
}

// Replace overwrites the credential's provider, name and envelope in one
// atomic UPDATE and returns the full row.
func (r *PostgresRepository) Replace(ctx context.Context, userID, id string, params ReplaceParams) (*models.Credential, error) {
	query := `
		UPDATE credentials
		SET provider = $3, name = $4, encrypted_data = $5, iv = $6, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + allColumns

	cred, err := scanCredential(r.db.QueryRowContext(ctx, query,
		id, userID, params.Provider, params.Name, params.EncryptedData, params.IV).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cred, nil
}

// Delete hard-deletes the credential under the ownership rule.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM credentials WHERE id = $1 AND user_id = $2`

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
