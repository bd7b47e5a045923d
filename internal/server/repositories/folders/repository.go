package folders

import (
	"context"

	"github.com/cortex-chat/cortex-server/internal/patch"
	"github.com/cortex-chat/cortex-server/internal/server/models"
)

// UpdateParams carries partial-update fields; a present ParentID may be nil
// to move the folder to the top level.
type UpdateParams struct {
	Name     patch.Field[string]
	ParentID patch.Field[*string]
}

type Repository interface {
	List(ctx context.Context, userID string) ([]*models.Folder, error)
	Get(ctx context.Context, userID, id string) (*models.Folder, error)
	Create(ctx context.Context, folder *models.Folder) (*models.Folder, error)
	Update(ctx context.Context, userID, id string, params UpdateParams) (*models.Folder, error)
	Delete(ctx context.Context, userID, id string) error
}
