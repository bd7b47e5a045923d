// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login, and session-token verification.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/cortex-chat/cortex-server/internal/server/auth"
	"github.com/cortex-chat/cortex-server/internal/server/config"
	"github.com/cortex-chat/cortex-server/internal/server/models"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"database/sql"
)

// UserService provides authentication-related operations:
//   - Signup: create an account and mint a session token
//   - Login: verify credentials and mint a session token
//   - VerifyToken: resolve a bearer token to a user id
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Signup creates a new user and returns a session token. A duplicate email
// yields common.ErrorAlreadyExists; uniqueness is enforced by the database
// constraint, not a check-then-insert. Email matching is exact and
// case-sensitive.
func (s *UserService) Signup(ctx context.Context, email, password, name string) (string, *models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}

	repo := s.repomanager.Users(s.db)
	created, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", nil, common.ErrorAlreadyExists
		}
		return "", nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := auth.GenerateToken(created.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", nil, common.ErrorInternal
	}
	return token, created, nil
}

// Login verifies the email/password pair and, on success, returns a session
// token. Unknown email and wrong password both return the identical
// common.ErrorUnauthorized so callers cannot enumerate accounts.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", nil, common.ErrorInternal
	}
	return token, user, nil
}

// VerifyToken validates the token's signature and expiry and returns the
// bound user id.
func (s *UserService) VerifyToken(token string) (string, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return "", common.ErrorUnauthorized
	}
	return userID, nil
}

// GetUser loads a user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}
