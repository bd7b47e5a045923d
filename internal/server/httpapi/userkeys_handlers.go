package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/cortex-chat/cortex-server/internal/patch"
	"github.com/cortex-chat/cortex-server/internal/server/models"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/userkeys"
)

type userKeysRequest struct {
	KekSalt                string `json:"kek_salt"`
	KekOpsLimit            int64  `json:"kek_ops_limit"`
	KekMemLimit            int64  `json:"kek_mem_limit"`
	EncryptedMasterKey     string `json:"encrypted_master_key"`
	MasterKeyNonce         string `json:"master_key_nonce"`
	PublicKey              string `json:"public_key"`
	EncryptedPrivateKey    string `json:"encrypted_private_key"`
	PrivateKeyNonce        string `json:"private_key_nonce"`
	EncryptedRecoveryKey   string `json:"encrypted_recovery_key"`
	RecoveryKeyNonce       string `json:"recovery_key_nonce"`
	MasterKeyRecovery      string `json:"master_key_recovery"`
	MasterKeyRecoveryNonce string `json:"master_key_recovery_nonce"`
}

// userKeysUpdateRequest covers the password-change path only: the client
// re-wraps its master key under a KEK derived from the new password.
// No other custody field is updatable over the API.
type userKeysUpdateRequest struct {
	KekSalt            patch.Field[string] `json:"kek_salt"`
	KekOpsLimit        patch.Field[int64]  `json:"kek_ops_limit"`
	KekMemLimit        patch.Field[int64]  `json:"kek_mem_limit"`
	EncryptedMasterKey patch.Field[string] `json:"encrypted_master_key"`
	MasterKeyNonce     patch.Field[string] `json:"master_key_nonce"`
}

type userKeysResponse struct {
	KekSalt                string `json:"kek_salt"`
	KekOpsLimit            int64  `json:"kek_ops_limit"`
	KekMemLimit            int64  `json:"kek_mem_limit"`
	EncryptedMasterKey     string `json:"encrypted_master_key"`
	MasterKeyNonce         string `json:"master_key_nonce"`
	PublicKey              string `json:"public_key"`
	EncryptedPrivateKey    string `json:"encrypted_private_key"`
	PrivateKeyNonce        string `json:"private_key_nonce"`
	EncryptedRecoveryKey   string `json:"encrypted_recovery_key"`
	RecoveryKeyNonce       string `json:"recovery_key_nonce"`
	MasterKeyRecovery      string `json:"master_key_recovery"`
	MasterKeyRecoveryNonce string `json:"master_key_recovery_nonce"`
}

type hasKeysResponse struct {
	HasKeys bool `json:"has_keys"`
}

func toUserKeysResponse(k *models.UserKeys) userKeysResponse {
	return userKeysResponse{
		KekSalt:                k.KekSalt,
		KekOpsLimit:            k.KekOpsLimit,
		KekMemLimit:            k.KekMemLimit,
		EncryptedMasterKey:     k.EncryptedMasterKey,
		MasterKeyNonce:         k.MasterKeyNonce,
		PublicKey:              k.PublicKey,
		EncryptedPrivateKey:    k.EncryptedPrivateKey,
		PrivateKeyNonce:        k.PrivateKeyNonce,
		EncryptedRecoveryKey:   k.EncryptedRecoveryKey,
		RecoveryKeyNonce:       k.RecoveryKeyNonce,
		MasterKeyRecovery:      k.MasterKeyRecovery,
		MasterKeyRecoveryNonce: k.MasterKeyRecoveryNonce,
	}
}

func (s *Server) checkUserKeys(c echo.Context) error {
	user := currentUser(c)

	hasKeys, err := s.keys.HasKeys(c.Request().Context(), user.ID)
	if err != nil {
		s.logger.Error(c.Request().Context(), "key existence check failed", "error", err.Error())
		return httpError(err)
	}
	return c.JSON(http.StatusOK, hasKeysResponse{HasKeys: hasKeys})
}

func (s *Server) getUserKeys(c echo.Context) error {
	user := currentUser(c)

	keys, err := s.keys.GetKeys(c.Request().Context(), user.ID)
	if err != nil {
		// Absent keys are a normal state before onboarding completes.
		if errors.Is(err, common.ErrorNotFound) {
			return c.JSON(http.StatusOK, nil)
		}
		s.logger.Error(c.Request().Context(), "get keys failed", "error", err.Error())
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toUserKeysResponse(keys))
}

func (s *Server) createUserKeys(c echo.Context) error {
	user := currentUser(c)

	req := &userKeysRequest{}
	if err := c.Bind(req); err != nil {
		return httpError(common.ErrorValidation)
	}
	if req.KekSalt == "" || req.EncryptedMasterKey == "" || req.MasterKeyNonce == "" ||
		req.PublicKey == "" || req.EncryptedPrivateKey == "" || req.PrivateKeyNonce == "" ||
		req.EncryptedRecoveryKey == "" || req.RecoveryKeyNonce == "" ||
		req.MasterKeyRecovery == "" || req.MasterKeyRecoveryNonce == "" {
		return httpError(common.ErrorValidation)
	}

	keys := &models.UserKeys{
		UserID:                 user.ID,
		KekSalt:                req.KekSalt,
		KekOpsLimit:            req.KekOpsLimit,
		KekMemLimit:            req.KekMemLimit,
		EncryptedMasterKey:     req.EncryptedMasterKey,
		MasterKeyNonce:         req.MasterKeyNonce,
		PublicKey:              req.PublicKey,
		EncryptedPrivateKey:    req.EncryptedPrivateKey,
		PrivateKeyNonce:        req.PrivateKeyNonce,
		EncryptedRecoveryKey:   req.EncryptedRecoveryKey,
		RecoveryKeyNonce:       req.RecoveryKeyNonce,
		MasterKeyRecovery:      req.MasterKeyRecovery,
		MasterKeyRecoveryNonce: req.MasterKeyRecoveryNonce,
	}

	created, err := s.keys.CreateKeys(c.Request().Context(), keys)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return echo.NewHTTPError(http.StatusBadRequest, "user keys already exist")
		}
		s.logger.Error(c.Request().Context(), "create keys failed", "error", err.Error())
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toUserKeysResponse(created))
}

func (s *Server) updateUserKeys(c echo.Context) error {
	user := currentUser(c)

	req := &userKeysUpdateRequest{}
	if err := c.Bind(req); err != nil {
		return httpError(common.ErrorValidation)
	}

	params := userkeys.RotateParams{
		KekSalt:            req.KekSalt,
		KekOpsLimit:        req.KekOpsLimit,
		KekMemLimit:        req.KekMemLimit,
		EncryptedMasterKey: req.EncryptedMasterKey,
		MasterKeyNonce:     req.MasterKeyNonce,
	}

	keys, err := s.keys.RotateMasterKeyWrapping(c.Request().Context(), user.ID, params)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user keys not found")
		}
		s.logger.Error(c.Request().Context(), "rotate key wrapping failed", "error", err.Error())
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toUserKeysResponse(keys))
}
