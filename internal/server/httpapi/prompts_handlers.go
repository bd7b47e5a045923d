package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/cortex-chat/cortex-server/internal/patch"
	"github.com/cortex-chat/cortex-server/internal/server/models"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/prompts"
)

type createPromptRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Content     string  `json:"content"`
}

type updatePromptRequest struct {
	Name        patch.Field[string]  `json:"name"`
	Description patch.Field[*string] `json:"description"`
	Content     patch.Field[string]  `json:"content"`
}

type promptResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Content     string  `json:"content"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
}

func toPromptResponse(p *models.Prompt) promptResponse {
	return promptResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Content:     p.Content,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (s *Server) listPrompts(c echo.Context) error {
	user := currentUser(c)

	items, err := s.prompts.List(c.Request().Context(), user.ID)
	if err != nil {
		s.logger.Error(c.Request().Context(), "list prompts failed", "error", err.Error())
		return httpError(err)
	}

	resp := make([]promptResponse, 0, len(items))
	for _, p := range items {
		resp = append(resp, toPromptResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) getPrompt(c echo.Context) error {
	user := currentUser(c)

	prompt, err := s.prompts.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toPromptResponse(prompt))
}

func (s *Server) createPrompt(c echo.Context) error {
	user := currentUser(c)

	req := &createPromptRequest{}
	if err := c.Bind(req); err != nil {
		return httpError(common.ErrorValidation)
	}
	if req.Name == "" {
		return httpError(common.ErrorValidation)
	}

	prompt := &models.Prompt{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
	}

	created, err := s.prompts.Create(c.Request().Context(), user.ID, prompt)
	if err != nil {
		s.logger.Error(c.Request().Context(), "create prompt failed", "error", err.Error())
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toPromptResponse(created))
}

func (s *Server) updatePrompt(c echo.Context) error {
	user := currentUser(c)

	req := &updatePromptRequest{}
	if err := c.Bind(req); err != nil {
		return httpError(common.ErrorValidation)
	}

	params := prompts.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
	}

	prompt, err := s.prompts.Update(c.Request().Context(), user.ID, c.Param("id"), params)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toPromptResponse(prompt))
}

func (s *Server) deletePrompt(c echo.Context) error {
	user := currentUser(c)

	if err := s.prompts.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
