package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/cortex-chat/cortex-server/internal/patch"
	"github.com/cortex-chat/cortex-server/internal/server/models"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/folders"
)

type createFolderRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

type updateFolderRequest struct {
	Name     patch.Field[string]  `json:"name"`
	ParentID patch.Field[*string] `json:"parent_id"`
}

type folderResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ParentID  *string `json:"parent_id"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

func toFolderResponse(f *models.Folder) folderResponse {
	return folderResponse{
		ID:        f.ID,
		Name:      f.Name,
		ParentID:  f.ParentID,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (s *Server) listFolders(c echo.Context) error {
	user := currentUser(c)

	items, err := s.folders.List(c.Request().Context(), user.ID)
	if err != nil {
		s.logger.Error(c.Request().Context(), "list folders failed", "error", err.Error())
		return httpError(err)
	}

	resp := make([]folderResponse, 0, len(items))
	for _, f := range items {
		resp = append(resp, toFolderResponse(f))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) getFolder(c echo.Context) error {
	user := currentUser(c)

	folder, err := s.folders.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toFolderResponse(folder))
}

func (s *Server) createFolder(c echo.Context) error {
	user := currentUser(c)

	req := &createFolderRequest{}
	if err := c.Bind(req); err != nil {
		return httpError(common.ErrorValidation)
	}
	if req.Name == "" {
		return httpError(common.ErrorValidation)
	}

	folder := &models.Folder{
		ID:       req.ID,
		Name:     req.Name,
		ParentID: req.ParentID,
	}

	created, err := s.folders.Create(c.Request().Context(), user.ID, folder)
	if err != nil {
		s.logger.Error(c.Request().Context(), "create folder failed", "error", err.Error())
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toFolderResponse(created))
}

func (s *Server) updateFolder(c echo.Context) error {
	user := currentUser(c)

	req := &updateFolderRequest{}
	if err := c.Bind(req); err != nil {
		return httpError(common.ErrorValidation)
	}

	params := folders.UpdateParams{
		Name:     req.Name,
		ParentID: req.ParentID,
	}

	folder, err := s.folders.Update(c.Request().Context(), user.ID, c.Param("id"), params)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toFolderResponse(folder))
}

// deleteFolder removes the folder only. Notes and subfolders keep their
// reference to the deleted id; clients treat those as top-level.
func (s *Server) deleteFolder(c echo.Context) error {
	user := currentUser(c)

	if err := s.folders.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
