// Package services contains the operation façade the routing layer calls
// into. This file implements UserService: signup, login, current-user
// lookup, and logout. Password hashing happens here, as an explicit step
// before the user row is persisted, and plaintext passwords never leave
// this package.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/server/auth"
	"github.com/dmitrijs2005/listkeeper/internal/server/config"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenPair bundles a short-lived JWT access token and the opaque,
// server-stored session token that keeps the login revocable.
type TokenPair struct {
	AccessToken  string
	SessionToken string
}

// UserService provides authentication-related operations.
type UserService struct {
	db                          *sql.DB
	repos                       repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	sessionValidityDuration     time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repos:                       m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		sessionValidityDuration:     cfg.SessionValidityDuration,
	}
}

// SignUp validates the fields, hashes the password, and creates the user.
// A second signup with the same email fails with common.ErrorEmailExists;
// the unique constraint in storage guarantees exactly one winner even under
// concurrent signups.
func (s *UserService) SignUp(ctx context.Context, firstName, lastName, email, password string) (*models.PublicUser, error) {

	if strings.TrimSpace(password) == "" {
		return nil, common.NewValidationError("password", "required")
	}

	user := &models.User{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	digest, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	user.PasswordHash = digest

	user, err = s.repos.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorEmailExists) {
			return nil, common.ErrorEmailExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user.Public(), nil
}

// Login verifies the credentials and, on success, returns the public
// identity together with a fresh token pair. Unknown email and wrong
// password fail identically with common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.PublicUser, *TokenPair, error) {

	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorInvalidCredentials
		}
		return nil, nil, fmt.Errorf("error fetching user: %w", err)
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return nil, nil, common.ErrorInvalidCredentials
	}

	sessionToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, nil, fmt.Errorf("error generating session token: %w", err)
	}

	if err := s.repos.Sessions(s.db).Create(ctx, user.ID, sessionToken, s.sessionValidityDuration); err != nil {
		return nil, nil, fmt.Errorf("error storing session: %w", err)
	}

	accessToken, err := auth.GenerateToken(user.ID, sessionToken, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, nil, fmt.Errorf("error generating access token: %w", err)
	}

	return user.Public(), &TokenPair{AccessToken: accessToken, SessionToken: sessionToken}, nil
}

// Authenticate resolves an access token into the user id it belongs to.
// The token is only honored while the session it was minted for is still
// stored and unexpired, so Logout revokes access immediately even though
// the token itself stays cryptographically valid. Any rejection yields
// common.ErrInvalidToken except token expiry, which keeps its own sentinel.
func (s *UserService) Authenticate(ctx context.Context, accessToken string) (string, error) {

	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		return "", err
	}

	session, err := s.repos.Sessions(s.db).Find(ctx, claims.SessionToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidToken
		}
		return "", fmt.Errorf("error fetching session: %w", err)
	}

	if session.UserID != claims.UserID {
		return "", common.ErrInvalidToken
	}
	if time.Now().After(session.Expires) {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// CurrentUser is a pure lookup of the authenticated identity. An empty or
// unknown identity yields (nil, nil), never an error.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (*models.PublicUser, error) {
	if userID == "" {
		return nil, nil
	}

	user, err := s.repos.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	return user.Public(), nil
}

// Logout revokes the stored session token. It is idempotent: revoking an
// absent or already-revoked token is a no-op.
func (s *UserService) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	if err := s.repos.Sessions(s.db).Delete(ctx, sessionToken); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}
