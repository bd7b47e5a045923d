package notes

import (
	"context"

	"github.com/cortex-chat/cortex-server/internal/patch"
	"github.com/cortex-chat/cortex-server/internal/server/models"
)

// ListFilter narrows a user's note listing. Archived defaults to false at
// the API layer, so unarchived notes are what clients see unless they ask
// otherwise.
type ListFilter struct {
	FolderID *string
	Archived bool
}

// UpdateParams carries partial-update fields. Absent fields are not touched;
// a present FolderID may be nil to detach the note from its folder.
type UpdateParams struct {
	EncryptedTitle   patch.Field[string]
	TitleNonce       patch.Field[string]
	EncryptedContent patch.Field[string]
	ContentNonce     patch.Field[string]
	FolderID         patch.Field[*string]
	Pinned           patch.Field[bool]
	Archived         patch.Field[bool]
}

type Repository interface {
	List(ctx context.Context, userID string, filter ListFilter) ([]*models.Note, error)
	Get(ctx context.Context, userID, id string) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Update(ctx context.Context, userID, id string, params UpdateParams) (*models.Note, error)
	Delete(ctx context.Context, userID, id string) error
}
