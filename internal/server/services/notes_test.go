package services

import (
	"context"
	"errors"
	"testing"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/cortex-chat/cortex-server/internal/server/models"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/notes"
)

func TestNoteCreate_GeneratesID(t *testing.T) {
	repo := &fakeNotesRepo{}
	s := NewNoteService(nil, &fakeRepoManager{notes: repo})

	got, err := s.Create(context.Background(), "u-1", &models.Note{EncryptedTitle: "x"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" {
		t.Fatal("expected generated id")
	}
	if got.UserID != "u-1" {
		t.Fatalf("owner not assigned: %+v", got)
	}
}

func TestNoteCreate_KeepsClientID(t *testing.T) {
	repo := &fakeNotesRepo{}
	s := NewNoteService(nil, &fakeRepoManager{notes: repo})

	got, err := s.Create(context.Background(), "u-1", &models.Note{ID: "n1"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "n1" {
		t.Fatalf("client id not honored: %q", got.ID)
	}
}

// The owner always comes from the authenticated caller; a spoofed UserID in
// the payload must be overwritten.
func TestNoteCreate_OwnerForcedFromCaller(t *testing.T) {
	repo := &fakeNotesRepo{}
	s := NewNoteService(nil, &fakeRepoManager{notes: repo})

	got, err := s.Create(context.Background(), "u-1", &models.Note{UserID: "u-evil"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.UserID != "u-1" {
		t.Fatalf("payload owner not overwritten: %q", got.UserID)
	}
}

func TestNoteList_ForwardsFilter(t *testing.T) {
	repo := &fakeNotesRepo{}
	s := NewNoteService(nil, &fakeRepoManager{notes: repo})

	folderID := "f-1"
	_, err := s.List(context.Background(), "u-1", notes.ListFilter{FolderID: &folderID, Archived: true})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if repo.listIn.FolderID == nil || *repo.listIn.FolderID != "f-1" || !repo.listIn.Archived {
		t.Fatalf("filter not forwarded: %+v", repo.listIn)
	}
}

func TestNoteGet_NotFound(t *testing.T) {
	repo := &fakeNotesRepo{getErr: common.ErrorNotFound}
	s := NewNoteService(nil, &fakeRepoManager{notes: repo})

	_, err := s.Get(context.Background(), "u-1", "n-404")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestNoteDelete_NotFound(t *testing.T) {
	repo := &fakeNotesRepo{deleteErr: common.ErrorNotFound}
	s := NewNoteService(nil, &fakeRepoManager{notes: repo})

	if err := s.Delete(context.Background(), "u-1", "n-404"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
