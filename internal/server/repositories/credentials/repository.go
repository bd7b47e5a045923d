package credentials

import (
	"context"

	"github.com/cortex-chat/cortex-server/internal/server/models"
)

// ReplaceParams carries the full replacement payload for a credential
// update. Unlike the other resources this is not a partial patch: the
// API replaces provider, name, and the envelope in one shot.
type ReplaceParams struct {
	Provider      string
	Name          string
	EncryptedData string
	IV            string
}

type Repository interface {
	List(ctx context.Context, userID string) ([]*models.Credential, error)
	Get(ctx context.Context, userID, id string) (*models.Credential, error)
	Create(ctx context.Context, cred *models.Credential) (*models.Credential, error)
	Replace(ctx context.Context, userID, id string, params ReplaceParams) (*models.Credential, error)
	Delete(ctx context.Context, userID, id string) error
}
