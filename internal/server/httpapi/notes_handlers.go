package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/cortex-chat/cortex-server/internal/patch"
	"github.com/cortex-chat/cortex-server/internal/server/models"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/notes"
)

type createNoteRequest struct {
	ID               string  `json:"id"`
	EncryptedTitle   string  `json:"encrypted_title"`
	TitleNonce       string  `json:"title_nonce"`
	EncryptedContent string  `json:"encrypted_content"`
	ContentNonce     string  `json:"content_nonce"`
	FolderID         *string `json:"folder_id"`
	Pinned           bool    `json:"pinned"`
	Archived         bool    `json:"archived"`
}

type updateNoteRequest struct {
	EncryptedTitle   patch.Field[string]  `json:"encrypted_title"`
	TitleNonce       patch.Field[string]  `json:"title_nonce"`
	EncryptedContent patch.Field[string]  `json:"encrypted_content"`
	ContentNonce     patch.Field[string]  `json:"content_nonce"`
	FolderID         patch.Field[*string] `json:"folder_id"`
	Pinned           patch.Field[bool]    `json:"pinned"`
	Archived         patch.Field[bool]    `json:"archived"`
}

type noteResponse struct {
	ID               string  `json:"id"`
	EncryptedTitle   string  `json:"encrypted_title"`
	TitleNonce       string  `json:"title_nonce"`
	EncryptedContent string  `json:"encrypted_content"`
	ContentNonce     string  `json:"content_nonce"`
	FolderID         *string `json:"folder_id"`
	Pinned           bool    `json:"pinned"`
	Archived         bool    `json:"archived"`
	CreatedAt        int64   `json:"created_at"`
	UpdatedAt        int64   `json:"updated_at"`
}

func toNoteResponse(n *models.Note) noteResponse {
	return noteResponse{
		ID:               n.ID,
		EncryptedTitle:   n.EncryptedTitle,
		TitleNonce:       n.TitleNonce,
		EncryptedContent: n.EncryptedContent,
		ContentNonce:     n.ContentNonce,
		FolderID:         n.FolderID,
		Pinned:           n.Pinned,
		Archived:         n.Archived,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
	}
}

func (s *Server) listNotes(c echo.Context) error {
	user := currentUser(c)

	// Archived notes are hidden unless explicitly requested.
	filter := notes.ListFilter{
		Archived: c.QueryParam("archived") == "true",
	}
	if folderID := c.QueryParam("folder_id"); folderID != "" {
		filter.FolderID = &folderID
	}

	items, err := s.notes.List(c.Request().Context(), user.ID, filter)
	if err != nil {
		s.logger.Error(c.Request().Context(), "list notes failed", "error", err.Error())
		return httpError(err)
	}

	resp := make([]noteResponse, 0, len(items))
	for _, n := range items {
		resp = append(resp, toNoteResponse(n))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) getNote(c echo.Context) error {
	user := currentUser(c)

	note, err := s.notes.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

func (s *Server) createNote(c echo.Context) error {
	user := currentUser(c)

	req := &createNoteRequest{}
	if err := c.Bind(req); err != nil {
		return httpError(common.ErrorValidation)
	}

	note := &models.Note{
		ID:               req.ID,
		EncryptedTitle:   req.EncryptedTitle,
		TitleNonce:       req.TitleNonce,
		EncryptedContent: req.EncryptedContent,
		ContentNonce:     req.ContentNonce,
		FolderID:         req.FolderID,
		Pinned:           req.Pinned,
		Archived:         req.Archived,
	}

	created, err := s.notes.Create(c.Request().Context(), user.ID, note)
	if err != nil {
		s.logger.Error(c.Request().Context(), "create note failed", "error", err.Error())
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toNoteResponse(created))
}

func (s *Server) updateNote(c echo.Context) error {
	user := currentUser(c)

	req := &updateNoteRequest{}
	if err := c.Bind(req); err != nil {
		return httpError(common.ErrorValidation)
	}

	params := notes.UpdateParams{
		EncryptedTitle:   req.EncryptedTitle,
		TitleNonce:       req.TitleNonce,
		EncryptedContent: req.EncryptedContent,
		ContentNonce:     req.ContentNonce,
		FolderID:         req.FolderID,
		Pinned:           req.Pinned,
		Archived:         req.Archived,
	}

	note, err := s.notes.Update(c.Request().Context(), user.ID, c.Param("id"), params)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

func (s *Server) deleteNote(c echo.Context) error {
	user := currentUser(c)

	if err := s.notes.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
