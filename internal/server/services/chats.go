package services

import (
	"context"
	"database/sql"

	"github.com/cortex-chat/cortex-server/internal/server/models"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/chats"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ChatService exposes owner-scoped CRUD over encrypted chats.
type ChatService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewChatService constructs a ChatService.
func NewChatService(db *sql.DB, m repomanager.RepositoryManager) *ChatService {
	return &ChatService{db: db, repomanager: m}
}

func (s *ChatService) List(ctx context.Context, userID string) ([]*models.Chat, error) {
	return s.repomanager.Chats(s.db).List(ctx, userID)
}

func (s *ChatService) Get(ctx context.Context, userID, id string) (*models.Chat, error) {
	return s.repomanager.Chats(s.db).Get(ctx, userID, id)
}

func (s *ChatService) Create(ctx context.Context, userID string, chat *models.Chat) (*models.Chat, error) {
	if chat.ID == "" {
		chat.ID = uuid.NewString()
	}
	chat.UserID = userID
	return s.repomanager.Chats(s.db).Create(ctx, chat)
}

func (s *ChatService) Update(ctx context.Context, userID, id string, params chats.UpdateParams) (*models.Chat, error) {
	return s.repomanager.Chats(s.db).Update(ctx, userID, id, params)
}

func (s *ChatService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Chats(s.db).Delete(ctx, userID, id)
}
