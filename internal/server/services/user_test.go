package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/cortex-chat/cortex-server/internal/server/auth"
	"github.com/cortex-chat/cortex-server/internal/server/config"
	"github.com/cortex-chat/cortex-server/internal/server/models"
)

func newUserService(rm *fakeRepoManager) *UserService {
	cfg := &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
	}
	return NewUserService(nil, rm, cfg)
}

func TestSignup_Success(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{}}
	s := newUserService(rm)

	token, user, err := s.Signup(context.Background(), "alice@example.com", "pw123456", "Alice")
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if user.ID == "" || user.Email != "alice@example.com" || user.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "pw123456" || user.PasswordHash == "" {
		t.Fatal("password stored without hashing")
	}

	// Token must resolve back to the created user.
	userID, err := s.VerifyToken(token)
	if err != nil || userID != user.ID {
		t.Fatalf("VerifyToken: got (%q, %v), want %q", userID, err, user.ID)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{createErr: common.ErrorAlreadyExists}}
	s := newUserService(rm)

	_, _, err := s.Signup(context.Background(), "alice@example.com", "pw123456", "Alice")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestLogin_FailuresIndistinguishable(t *testing.T) {
	hash, err := auth.HashPassword("right-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	rmUnknown := &fakeRepoManager{users: &fakeUsersRepo{byEmailErr: common.ErrorNotFound}}
	_, _, errUnknown := newUserService(rmUnknown).Login(context.Background(), "ghost@example.com", "x")

	rmWrongPw := &fakeRepoManager{users: &fakeUsersRepo{
		byEmailOut: &models.User{ID: "u-1", Email: "alice@example.com", PasswordHash: hash},
	}}
	_, _, errWrongPw := newUserService(rmWrongPw).Login(context.Background(), "alice@example.com", "wrong-password")

	if !errors.Is(errUnknown, common.ErrorUnauthorized) {
		t.Fatalf("unknown email: want common.ErrorUnauthorized, got %v", errUnknown)
	}
	if !errors.Is(errWrongPw, common.ErrorUnauthorized) {
		t.Fatalf("wrong password: want common.ErrorUnauthorized, got %v", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("failure modes differ: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := auth.HashPassword("right-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	rm := &fakeRepoManager{users: &fakeUsersRepo{
		byEmailOut: &models.User{ID: "u-1", Email: "alice@example.com", Name: "Alice", PasswordHash: hash},
	}}
	s := newUserService(rm)

	token, user, err := s.Login(context.Background(), "alice@example.com", "right-password")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token == "" || user.ID != "u-1" {
		t.Fatalf("unexpected result: token=%q user=%+v", token, user)
	}
}

func TestLogin_RepoError(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{byEmailErr: errBoom{}}}
	s := newUserService(rm)

	_, _, err := s.Login(context.Background(), "alice@example.com", "pw")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

func TestVerifyToken_Invalid(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{}}
	s := newUserService(rm)

	if _, err := s.VerifyToken("not-a-jwt"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}

	// Token signed with a different secret must not verify.
	other, err := auth.GenerateToken("u-1", []byte("other-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := s.VerifyToken(other); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{}}
	s := newUserService(rm)

	expired, err := auth.GenerateToken("u-1", []byte("k"), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := s.VerifyToken(expired); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}
