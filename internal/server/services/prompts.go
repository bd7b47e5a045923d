package services

import (
	"context"
	"database/sql"

	"github.com/cortex-chat/cortex-server/internal/server/models"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/prompts"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PromptService exposes owner-scoped CRUD over prompt templates.
type PromptService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewPromptService constructs a PromptService.
func NewPromptService(db *sql.DB, m repomanager.RepositoryManager) *PromptService {
	return &PromptService{db: db, repomanager: m}
}

func (s *PromptService) List(ctx context.Context, userID string) ([]*models.Prompt, error) {
	return s.repomanager.Prompts(s.db).List(ctx, userID)
}

func (s *PromptService) Get(ctx context.Context, userID, id string) (*models.Prompt, error) {
	return s.repomanager.Prompts(s.db).Get(ctx, userID, id)
}

func (s *PromptService) Create(ctx context.Context, userID string, prompt *models.Prompt) (*models.Prompt, error) {
	if prompt.ID == "" {
		prompt.ID = uuid.NewString()
	}
	prompt.UserID = userID
	return s.repomanager.Prompts(s.db).Create(ctx, prompt)
}

func (s *PromptService) Update(ctx context.Context, userID, id string, params prompts.UpdateParams) (*models.Prompt, error) {
	return s.repomanager.Prompts(s.db).Update(ctx, userID, id, params)
}

func (s *PromptService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Prompts(s.db).Delete(ctx, userID, id)
}
