package prompts

import (
	"context"

	"github.com/cortex-chat/cortex-server/internal/patch"
	"github.com/cortex-chat/cortex-server/internal/server/models"
)

// UpdateParams carries partial-update fields; a present Description may be
// nil to clear it.
type UpdateParams struct {
	Name        patch.Field[string]
	Description patch.Field[*string]
	Content     patch.Field[string]
}

type Repository interface {
	List(ctx context.Context, userID string) ([]*models.Prompt, error)
	Get(ctx context.Context, userID, id string) (*models.Prompt, error)
	Create(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error)
	Update(ctx context.Context, userID, id string, params UpdateParams) (*models.Prompt, error)
	Delete(ctx context.Context, userID, id string) error
}
