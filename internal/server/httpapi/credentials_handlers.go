package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/cortex-chat/cortex-server/internal/server/models"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/credentials"
)

type credentialRequest struct {
	ID            string `json:"id"`
	Provider      string `json:"provider"`
	Name          string `json:"name"`
	EncryptedData string `json:"encrypted_data"`
	IV            string `json:"iv"`
}

type credentialResponse struct {
	ID            string `json:"id"`
	Provider      string `json:"provider"`
	Name          string `json:"name"`
	EncryptedData string `json:"encrypted_data"`
	IV            string `json:"iv"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func toCredentialResponse(cr *models.Credential) credentialResponse {
	return credentialResponse{
		ID:            cr.ID,
		Provider:      cr.Provider,
		Name:          cr.Name,
		EncryptedData: cr.EncryptedData,
		IV:            cr.IV,
		CreatedAt:     cr.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     cr.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *Server) listCredentials(c echo.Context) error {
	user := currentUser(c)

	items, err := s.credentials.List(c.Request().Context(), user.ID)
	if err != nil {
		s.logger.Error(c.Request().Context(), "list credentials failed", "error", err.Error())
		return httpError(err)
	}

	resp := make([]credentialResponse, 0, len(items))
	for _, cr := range items {
		resp = append(resp, toCredentialResponse(cr))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) createCredential(c echo.Context) error {
	user := currentUser(c)

	req := &credentialRequest{}
	if err := c.Bind(req); err != nil {
		return httpError(common.ErrorValidation)
	}
	if req.Provider == "" || req.Name == "" || req.EncryptedData == "" || req.IV == "" {
		return httpError(common.ErrorValidation)
	}

	cred := &models.Credential{
		ID:            req.ID,
		Provider:      req.Provider,
		Name:          req.Name,
		EncryptedData: req.EncryptedData,
		IV:            req.IV,
	}

	created, err := s.credentials.Create(c.Request().Context(), user.ID, cred)
	if err != nil {
		s.logger.Error(c.Request().Context(), "create credential failed", "error", err.Error())
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toCredentialResponse(created))
}

// updateCredential replaces provider, name, and the encrypted envelope in
// one shot. This is a full replace, not a partial patch.
func (s *Server) updateCredential(c echo.Context) error {
	user := currentUser(c)

	req := &credentialRequest{}
	if err := c.Bind(req); err != nil {
		return httpError(common.ErrorValidation)
	}
	if req.Provider == "" || req.Name == "" || req.EncryptedData == "" || req.IV == "" {
		return httpError(common.ErrorValidation)
	}

	params := credentials.ReplaceParams{
		Provider:      req.Provider,
		Name:          req.Name,
		EncryptedData: req.EncryptedData,
		IV:            req.IV,
	}

	cred, err := s.credentials.Replace(c.Request().Context(), user.ID, c.Param("id"), params)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toCredentialResponse(cred))
}

func (s *Server) deleteCredential(c echo.Context) error {
	user := currentUser(c)

	if err := s.credentials.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
