// Package userkeys provides the PostgreSQL-backed key-custody store: one
// row per user of wrapped key material the server cannot interpret.
package userkeys

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/cortex-chat/cortex-server/internal/dbx"
	"github.com/cortex-chat/cortex-server/internal/server/models"
)

const allColumns = `user_id, kek_salt, kek_ops_limit, kek_mem_limit,
		encrypted_master_key, master_key_nonce,
		public_key, encrypted_private_key, private_key_nonce,
		encrypted_recovery_key, recovery_key_nonce,
		master_key_recovery, master_key_recovery_nonce,
		created_at, updated_at`

// PostgresRepository implements key-custody storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanKeys(row *sql.Row) (*models.UserKeys, error) {
	keys := &models.UserKeys{}
	err := row.Scan(
		&keys.UserID, &keys.KekSalt, &keys.KekOpsLimit, &keys.KekMemLimit,
		&keys.EncryptedMasterKey, &keys.MasterKeyNonce,
		&keys.PublicKey, &keys.EncryptedPrivateKey, &keys.PrivateKeyNonce,
		&keys.EncryptedRecoveryKey, &keys.RecoveryKeyNonce,
		&keys.MasterKeyRecovery, &keys.MasterKeyRecoveryNonce,
		&keys.CreatedAt, &keys.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Exists reports whether a key-custody record exists for userID.
func (r *PostgresRepository) Exists(ctx context.Context, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_keys WHERE user_id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// Get returns the full wrapped bundle or common.ErrorNotFound. The bundle
// is never partial and never decrypted.
func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.UserKeys, error) {
	query := `SELECT ` + allColumns + ` FROM user_keys WHERE user_id = $1`

	keys, err := scanKeys(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return keys, nil
}

// Create stores the one-time key bundle verbatim. The user_id primary key
// makes the existence check and the insert a single atomic statement: a
// second insert for the same user yields no row and common.ErrorAlreadyExists,
// even under concurrent setup races.
func (r *PostgresRepository) Create(ctx context.Context, keys *models.UserKeys) (*models.UserKeys, error) {
	query := `
		INSERT INTO user_keys (user_id, kek_salt, kek_ops_limit, kek_mem_limit,
			encrypted_master_key, master_key_nonce,
			public_key, encrypted_private_key, private_key_nonce,
			encrypted_recovery_key, recovery_key_nonce,
			master_key_recovery, master_key_recovery_nonce)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING ` + allColumns

	created, err := scanKeys(r.db.QueryRowContext(ctx, query,
		keys.UserID, keys.KekSalt, keys.KekOpsLimit, keys.KekMemLimit,
		keys.EncryptedMasterKey, keys.MasterKeyNonce,
		keys.PublicKey, keys.EncryptedPrivateKey, keys.PrivateKeyNonce,
		keys.EncryptedRecoveryKey, keys.RecoveryKeyNonce,
		keys.MasterKeyRecovery, keys.MasterKeyRecoveryNonce,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

// RotateMasterKeyWrapping updates only the KEK params and the re-wrapped
// master key in a single UPDATE, leaving the keypair and recovery wrappings
// byte-identical. Returns common.ErrorNotFound if no record exists.
func (r *PostgresRepository) RotateMasterKeyWrapping(ctx context.Context, userID string, params RotateParams) (*models.UserKeys, error) {
	set := []string{"updated_at = now()"}
	args := []any{userID}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.KekSalt.Set {
		add("kek_salt", params.KekSalt.Value)
	}
	if params.KekOpsLimit.Set {
		add("kek_ops_limit", params.KekOpsLimit.Value)
	}
	if params.KekMemLimit.Set {
		add("kek_mem_limit", params.KekMemLimit.Value)
	}
	if params.EncryptedMasterKey.Set {
		add("encrypted_master_key", params.EncryptedMasterKey.Value)
	}
	if params.MasterKeyNonce.Set {
		add("master_key_nonce", params.MasterKeyNonce.Value)
	}

	query := `UPDATE user_keys SET ` + strings.Join(set, ", ") +
		` WHERE user_id = $1 RETURNING ` + allColumns

	keys, err := scanKeys(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return keys, nil
}
