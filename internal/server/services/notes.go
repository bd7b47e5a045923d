package services

import (
	"context"
	"database/sql"

	"github.com/cortex-chat/cortex-server/internal/server/models"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/notes"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// NoteService exposes owner-scoped CRUD over encrypted notes.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewNoteService constructs a NoteService.
func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

func (s *NoteService) List(ctx context.Context, userID string, filter notes.ListFilter) ([]*models.Note, error) {
	return s.repomanager.Notes(s.db).List(ctx, userID, filter)
}

func (s *NoteService) Get(ctx context.Context, userID, id string) (*models.Note, error) {
	return s.repomanager.Notes(s.db).Get(ctx, userID, id)
}

// Create honors a client-supplied id (idempotent retries, offline-first
// clients) and generates one otherwise. The owner always comes from the
// authenticated caller, never from the payload.
func (s *NoteService) Create(ctx context.Context, userID string, note *models.Note) (*models.Note, error) {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	note.UserID = userID
	return s.repomanager.Notes(s.db).Create(ctx, note)
}

func (s *NoteService) Update(ctx context.Context, userID, id string, params notes.UpdateParams) (*models.Note, error) {
	return s.repomanager.Notes(s.db).Update(ctx, userID, id, params)
}

func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Notes(s.db).Delete(ctx, userID, id)
}
