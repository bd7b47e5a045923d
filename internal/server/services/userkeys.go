package services

import (
	"context"
	"database/sql"

	"github.com/cortex-chat/cortex-server/internal/server/models"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/repomanager"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/userkeys"
)

// KeysService manages the per-user key-custody record. It is a passive
// custodian: every field it stores was wrapped client-side and the server
// performs no cryptographic validation, because it cannot — correctness of
// the wrappings is only verifiable by the holder of the password or the
// recovery key.
type KeysService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewKeysService constructs a KeysService.
func NewKeysService(db *sql.DB, m repomanager.RepositoryManager) *KeysService {
	return &KeysService{db: db, repomanager: m}
}

// HasKeys reports whether the user has completed key setup. Clients use it
// to choose between the onboarding and normal login flows.
func (s *KeysService) HasKeys(ctx context.Context, userID string) (bool, error) {
	return s.repomanager.UserKeys(s.db).Exists(ctx, userID)
}

// GetKeys returns the full wrapped bundle or common.ErrorNotFound.
func (s *KeysService) GetKeys(ctx context.Context, userID string) (*models.UserKeys, error) {
	return s.repomanager.UserKeys(s.db).Get(ctx, userID)
}

// CreateKeys stores the one-time key bundle. Key setup happens exactly once
// per account; a second call returns common.ErrorAlreadyExists.
func (s *KeysService) CreateKeys(ctx context.Context, keys *models.UserKeys) (*models.UserKeys, error) {
	return s.repomanager.UserKeys(s.db).Create(ctx, keys)
}

// RotateMasterKeyWrapping is the password-change path: the client re-derives
// a KEK from the new password and re-wraps its already-decrypted master key;
// the server rewrites only the ciphertext and KEK params and learns nothing
// about the key. Returns common.ErrorNotFound if setup never happened.
func (s *KeysService) RotateMasterKeyWrapping(ctx context.Context, userID string, params userkeys.RotateParams) (*models.UserKeys, error) {
	return s.repomanager.UserKeys(s.db).RotateMasterKeyWrapping(ctx, userID, params)
}
