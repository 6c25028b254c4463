package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"contactdesk/internal/auth"
	"contactdesk/internal/models"
	"contactdesk/internal/repository"
)

// ErrInvalidCredentials is returned for any authentication failure. The
// reason (unknown email, wrong password, bad refresh token) is deliberately
// not distinguished to callers.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RefreshTokenTTL is the lifetime of an opaque refresh token.
const RefreshTokenTTL = 7 * 24 * time.Hour

// UserRepository defines the user persistence operations required by the
// auth service.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// RefreshTokenRepository defines the refresh-token persistence operations
// required by the auth service.
type RefreshTokenRepository interface {
	Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (uuid.UUID, error)
	FindByHash(ctx context.Context, tokenHash string) (*repository.RefreshToken, error)
	Rotate(ctx context.Context, oldID uuid.UUID, userID uuid.UUID, newHash string, newExpiry time.Time) (uuid.UUID, error)
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

// Session carries the tokens issued after a successful authentication.
type Session struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

// AuthService implements registration, login, refresh-token rotation, and
// logout.
type AuthService struct {
	users  UserRepository
	tokens RefreshTokenRepository
	secret string
	now    func() time.Time
}

// NewAuthService constructs an AuthService. secret signs access tokens.
func NewAuthService(users UserRepository, tokens RefreshTokenRepository, secret string) *AuthService {
	return &AuthService{users: users, tokens: tokens, secret: secret, now: time.Now}
}

// Register creates a new account and opens a session. Duplicate emails
// surface as repository.ErrDuplicate.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*Session, error) {
	if err := models.ValidatePassword(password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := models.NewUser(email, hash, name)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.openSession(ctx, u)
}

// Login authenticates by email and password and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.openSession(ctx, u)
}

// Refresh redeems an opaque refresh token for a fresh access token and a
// rotated refresh token. Redeeming a revoked token is treated as theft:
// every active token of that user is revoked before the request is
// rejected.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*Session, error) {
	stored, err := s.tokens.FindByHash(ctx, auth.HashRefreshToken(rawToken))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if stored.Revoked {
		// Reuse of a rotated-out token: assume the chain is compromised.
		if err := s.tokens.RevokeAllForUser(ctx, stored.UserID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}
	if !stored.Valid(s.now()) {
		return nil, ErrInvalidCredentials
	}

	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	if _, err := s.tokens.Rotate(ctx, stored.ID, stored.UserID, hash, s.now().Add(RefreshTokenTTL)); err != nil {
		return nil, err
	}

	access, err := auth.MakeToken(stored.UserID.String(), s.secret)
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: access, RefreshToken: raw}, nil
}

// Logout revokes every active refresh token for the user.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.RevokeAllForUser(ctx, userID)
}

// openSession issues an access token and stores a new refresh token for the
// user.
func (s *AuthService) openSession(ctx context.Context, u *models.User) (*Session, error) {
	access, err := auth.MakeToken(u.ID.String(), s.secret)
	if err != nil {
		return nil, err
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	if _, err := s.tokens.Create(ctx, u.ID, hash, s.now().Add(RefreshTokenTTL)); err != nil {
		return nil, err
	}
	return &Session{User: u, AccessToken: access, RefreshToken: raw}, nil
}
