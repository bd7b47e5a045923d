package services

import (
	"context"
	"database/sql"

	"github.com/cortex-chat/cortex-server/internal/server/models"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/credentials"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// CredentialService exposes owner-scoped CRUD over encrypted API
// credentials.
type CredentialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewCredentialService constructs a CredentialService.
func NewCredentialService(db *sql.DB, m repomanager.RepositoryManager) *CredentialService {
	return &CredentialService{db: db, repomanager: m}
}

func (s *CredentialService) List(ctx context.Context, userID string) ([]*models.Credential, error) {
	return s.repomanager.Credentials(s.db).List(ctx, userID)
}

func (s *CredentialService) Create(ctx context.Context, userID string, cred *models.Credential) (*models.Credential, error) {
	if cred.ID == "" {
		cred.ID = uuid.NewString()
	}
	cred.UserID = userID
	return s.repomanager.Credentials(s.db).Create(ctx, cred)
}

func (s *CredentialService) Replace(ctx context.Context, userID, id string, params credentials.ReplaceParams) (*models.Credential, error) {
	return s.repomanager.Credentials(s.db).Replace(ctx, userID, id, params)
}

func (s *CredentialService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Credentials(s.db).Delete(ctx, userID, id)
}
