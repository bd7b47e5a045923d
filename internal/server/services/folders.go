package services

import (
	"context"
	"database/sql"

	"github.com/cortex-chat/cortex-server/internal/server/models"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/folders"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// FolderService exposes owner-scoped CRUD over folders. Deleting a folder
// never touches its contents.
type FolderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewFolderService constructs a FolderService.
func NewFolderService(db *sql.DB, m repomanager.RepositoryManager) *FolderService {
	return &FolderService{db: db, repomanager: m}
}

func (s *FolderService) List(ctx context.Context, userID string) ([]*models.Folder, error) {
	return s.repomanager.Folders(s.db).List(ctx, userID)
}

func (s *FolderService) Get(ctx context.Context, userID, id string) (*models.Folder, error) {
	return s.repomanager.Folders(s.db).Get(ctx, userID, id)
}

func (s *FolderService) Create(ctx context.Context, userID string, folder *models.Folder) (*models.Folder, error) {
	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}
	folder.UserID = userID
	return s.repomanager.Folders(s.db).Create(ctx, folder)
}

func (s *FolderService) Update(ctx context.Context, userID, id string, params folders.UpdateParams) (*models.Folder, error) {
	return s.repomanager.Folders(s.db).Update(ctx, userID, id, params)
}

func (s *FolderService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Folders(s.db).Delete(ctx, userID, id)
}
