package services

import (
	"context"
	"errors"
	"testing"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/cortex-chat/cortex-server/internal/patch"
	"github.com/cortex-chat/cortex-server/internal/server/models"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/userkeys"
)

func TestHasKeys(t *testing.T) {
	rm := &fakeRepoManager{keys: &fakeUserKeysRepo{existsOut: true}}
	s := NewKeysService(nil, rm)

	got, err := s.HasKeys(context.Background(), "u-1")
	if err != nil || !got {
		t.Fatalf("HasKeys: got (%v, %v)", got, err)
	}
}

func TestGetKeys_NotFound(t *testing.T) {
	rm := &fakeRepoManager{keys: &fakeUserKeysRepo{getErr: common.ErrorNotFound}}
	s := NewKeysService(nil, rm)

	_, err := s.GetKeys(context.Background(), "u-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

// The bundle must reach the repository exactly as submitted; the service
// adds nothing and validates nothing cryptographic.
func TestCreateKeys_PassesBundleVerbatim(t *testing.T) {
	repo := &fakeUserKeysRepo{}
	rm := &fakeRepoManager{keys: repo}
	s := NewKeysService(nil, rm)

	keys := &models.UserKeys{
		UserID:             "u-1",
		KekSalt:            "salt",
		EncryptedMasterKey: "opaque-bytes",
		MasterKeyRecovery:  "recovery-wrapped",
	}
	got, err := s.CreateKeys(context.Background(), keys)
	if err != nil {
		t.Fatalf("CreateKeys error: %v", err)
	}
	if repo.createIn != keys || got.EncryptedMasterKey != "opaque-bytes" {
		t.Fatalf("bundle altered in transit: %+v", repo.createIn)
	}
}

func TestCreateKeys_SecondCallConflicts(t *testing.T) {
	rm := &fakeRepoManager{keys: &fakeUserKeysRepo{createErr: common.ErrorAlreadyExists}}
	s := NewKeysService(nil, rm)

	_, err := s.CreateKeys(context.Background(), &models.UserKeys{UserID: "u-1"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestRotateMasterKeyWrapping_ForwardsPatch(t *testing.T) {
	repo := &fakeUserKeysRepo{rotateOut: &models.UserKeys{UserID: "u-1"}}
	rm := &fakeRepoManager{keys: repo}
	s := NewKeysService(nil, rm)

	params := userkeys.RotateParams{
		EncryptedMasterKey: patch.Field[string]{Value: "emk2", Set: true},
		MasterKeyNonce:     patch.Field[string]{Value: "nonce2", Set: true},
	}
	if _, err := s.RotateMasterKeyWrapping(context.Background(), "u-1", params); err != nil {
		t.Fatalf("RotateMasterKeyWrapping error: %v", err)
	}
	if !repo.rotateIn.EncryptedMasterKey.Set || repo.rotateIn.KekSalt.Set {
		t.Fatalf("unexpected patch forwarded: %+v", repo.rotateIn)
	}
}

func TestRotateMasterKeyWrapping_NotFound(t *testing.T) {
	rm := &fakeRepoManager{keys: &fakeUserKeysRepo{rotateErr: common.ErrorNotFound}}
	s := NewKeysService(nil, rm)

	_, err := s.RotateMasterKeyWrapping(context.Background(), "u-1", userkeys.RotateParams{})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
