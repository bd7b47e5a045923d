package chats

import (
	"context"

	"github.com/cortex-chat/cortex-server/internal/patch"
	"github.com/cortex-chat/cortex-server/internal/server/models"
)

// UpdateParams carries partial-update fields. The wrapped per-chat key
// (encrypted_chat_key) is deliberately not updatable: it is fixed at
// creation together with the chat it protects.
type UpdateParams struct {
	EncryptedTitle patch.Field[string]
	TitleNonce     patch.Field[string]
	EncryptedChat  patch.Field[string]
	ChatNonce      patch.Field[string]
	FolderID       patch.Field[*string]
	Pinned         patch.Field[bool]
	Archived       patch.Field[bool]
}

type Repository interface {
	List(ctx context.Context, userID string) ([]*models.Chat, error)
	Get(ctx context.Context, userID, id string) (*models.Chat, error)
	Create(ctx context.Context, chat *models.Chat) (*models.Chat, error)
	Update(ctx context.Context, userID, id string, params UpdateParams) (*models.Chat, error)
	Delete(ctx context.Context, userID, id string) error
}
