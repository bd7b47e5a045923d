// Package chats provides a PostgreSQL-backed repository for encrypted chat
// transcripts. List omits the transcript body so chat pickers stay cheap.
package chats

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

const allColumns = `id, user_id, encrypted_chat_key, chat_key_nonce,
		encrypted_title, title_nonce, encrypted_chat, chat_nonce,
		folder_id, pinned, archived, created_at, updated_at`

// PostgresRepository implements chat storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanChat(scan func(dest ...any) error) (*models.Chat, error) {
	chat := &models.Chat{}
	err := scan(
		&chat.ID, &chat.UserID, &chat.EncryptedChatKey, &chat.ChatKeyNonce,
		&chat.EncryptedTitle, &chat.TitleNonce, &chat.EncryptedChat, &chat.ChatNonce,
		&chat.FolderID, &chat.Pinned, &chat.Archived,
		&chat.CreatedAt, &chat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// List returns the user's chats, most recently updated first, without the
// encrypted transcript body (EncryptedChat and ChatNonce stay empty).
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Chat, error) {
	query := `
		SELECT id, user_id, encrypted_chat_key, chat_key_nonce,
			encrypted_title, title_nonce, folder_id, pinned, archived,
			created_at, updated_at
		FROM chats WHERE user_id = $1 ORDER BY updated_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Chat
	for rows.Next() {
		chat := &models.Chat{}
		if err := rows.Scan(
			&chat.ID, &chat.UserID, &chat.EncryptedChatKey, &chat.ChatKeyNonce,
			&chat.EncryptedTitle, &chat.TitleNonce, &chat.FolderID,
			&chat.Pinned, &chat.Archived, &chat.CreatedAt, &chat.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns the full chat or common.ErrorNotFound under the ownership rule.
func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Chat, error) {
	query := `SELECT ` + allColumns + ` FROM chats WHERE id = $1 AND user_id = $2`

	chat, err := scanChat(r.db.QueryRowContext(ctx, query, id, userID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return chat, nil
}

// Create inserts the chat with server-assigned timestamps. A duplicate id
// returns common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, chat *models.Chat) (*models.Chat, error) {
	now := time.Now().UnixMilli()
	chat.CreatedAt = now
	chat.UpdatedAt = now

	query := `
		INSERT INTO chats (id, user_id, encrypted_chat_key, chat_key_nonce,
			encrypted_title, title_nonce, encrypted_chat, chat_nonce,
			folder_id, pinned, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		chat.ID, chat.UserID, chat.EncryptedChatKey, chat.ChatKeyNonce,
		chat.EncryptedTitle, chat.TitleNonce, chat.EncryptedChat, chat.ChatNonce,
		chat.FolderID, chat.Pinned, chat.Archived, chat.CreatedAt, chat.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return chat, nil
}

// Update applies only the fields present in params as one atomic UPDATE.
func (r *PostgresRepository) Update(ctx context.Context, userID, id string, params UpdateParams) (*models.Chat, error) {
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
	if params.EncryptedChat.Set {
		add("encrypted_chat", params.EncryptedChat.Value)
	}
	if params.ChatNonce.Set {
		add("chat_nonce", params.ChatNonce.Value)
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

	query := `UPDATE chats SET ` + strings.Join(set, ", ") +
		` WHERE id = $1 AND user_id = $2 RETURNING ` + allColumns

	chat, err := scanChat(r.db.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return chat, nil
}

// Delete hard-deletes the chat under the ownership rule.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM chats WHERE id = $1 AND user_id = $2`

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
