package userkeys

import (
	"context"

	"github.com/cortex-chat/cortex-server/internal/patch"
	"github.com/cortex-chat/cortex-server/internal/server/models"
)

// RotateParams names the only columns the password-change path may touch.
// Each field is an explicit optional: absent fields are left exactly as
// stored. The keypair and recovery wrappings are not representable here at
// all, which keeps the "rotate re-wraps only the master key" invariant
// structural rather than conventional.
type RotateParams struct {
	KekSalt            patch.Field[string]
	KekOpsLimit        patch.Field[int64]
	KekMemLimit        patch.Field[int64]
	EncryptedMasterKey patch.Field[string]
	MasterKeyNonce     patch.Field[string]
}

type Repository interface {
	Exists(ctx context.Context, userID string) (bool, error)
	Get(ctx context.Context, userID string) (*models.UserKeys, error)
	Create(ctx context.Context, keys *models.UserKeys) (*models.UserKeys, error)
	RotateMasterKeyWrapping(ctx context.Context, userID string, params RotateParams) (*models.UserKeys, error)
}
