package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"contactdesk/internal/auth"
	"contactdesk/internal/models"
	"contactdesk/internal/repository"
	"contactdesk/internal/service"
)

const testSecret = "test-secret"

type mockUserRepo struct {
	CreateFunc      func(ctx context.Context, u *models.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *models.User) error {
	return m.CreateFunc(ctx, u)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

type mockTokenRepo struct {
	CreateFunc           func(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (uuid.UUID, error)
	FindByHashFunc       func(ctx context.Context, tokenHash string) (*repository.RefreshToken, error)
	RotateFunc           func(ctx context.Context, oldID uuid.UUID, userID uuid.UUID, newHash string, newExpiry time.Time) (uuid.UUID, error)
	RevokeAllForUserFunc func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockTokenRepo) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (uuid.UUID, error) {
	return m.CreateFunc(ctx, userID, tokenHash, expiresAt)
}
func (m *mockTokenRepo) FindByHash(ctx context.Context, tokenHash string) (*repository.RefreshToken, error) {
	return m.FindByHashFunc(ctx, tokenHash)
}
func (m *mockTokenRepo) Rotate(ctx context.Context, oldID uuid.UUID, userID uuid.UUID, newHash string, newExpiry time.Time) (uuid.UUID, error) {
	return m.RotateFunc(ctx, oldID, userID, newHash, newExpiry)
}
func (m *mockTokenRepo) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return m.RevokeAllForUserFunc(ctx, userID)
}

func storingTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{
		CreateFunc: func(context.Context, uuid.UUID, string, time.Time) (uuid.UUID, error) {
			return uuid.New(), nil
		},
	}
}

func TestRegister_Success(t *testing.T) {
	var stored *models.User
	users := &mockUserRepo{
		CreateFunc: func(ctx context.Context, u *models.User) error {
			stored = u
			return nil
		},
	}
	svc := service.NewAuthService(users, storingTokenRepo(), testSecret)
	sess, err := svc.Register(context.Background(), "Ada@Example.com", "correct horse", "Ada")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected user to be persisted")
	}
	if stored.Email != "ada@example.com" {
		t.Errorf("email = %q; want lowercased", stored.Email)
	}
	if stored.PasswordHash == "correct horse" {
		t.Error("password stored in the clear")
	}
	if sess.AccessToken == "" || sess.RefreshToken == "" {
		t.Errorf("session tokens missing: %+v", sess)
	}
	claims, err := auth.ParseToken(sess.AccessToken, testSecret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != stored.ID.String() {
		t.Errorf("uid = %q; want %q", claims.UserID, stored.ID)
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	users := &mockUserRepo{
		CreateFunc: func(context.Context, *models.User) error {
			t.Fatal("repository must not be reached for weak passwords")
			return nil
		},
	}
	svc := service.NewAuthService(users, storingTokenRepo(), testSecret)
	_, err := svc.Register(context.Background(), "ada@example.com", "short", "Ada")
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Register error = %v; want *models.ValidationError", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		CreateFunc: func(context.Context, *models.User) error {
			return repository.ErrDuplicate
		},
	}
	svc := service.NewAuthService(users, storingTokenRepo(), testSecret)
	_, err := svc.Register(context.Background(), "ada@example.com", "correct horse", "Ada")
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("Register error = %v; want ErrDuplicate", err)
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user := &models.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: hash}
	users := &mockUserRepo{
		FindByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			if email != "ada@example.com" {
				t.Errorf("FindByEmail email = %q", email)
			}
			return user, nil
		},
	}
	svc := service.NewAuthService(users, storingTokenRepo(), testSecret)
	sess, err := svc.Login(context.Background(), "ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if sess.User != user {
		t.Error("session user mismatch")
	}
	if sess.AccessToken == "" || sess.RefreshToken == "" {
		t.Errorf("session tokens missing: %+v", sess)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	users := &mockUserRepo{
		FindByEmailFunc: func(context.Context, string) (*models.User, error) {
			return &models.User{ID: uuid.New(), PasswordHash: hash}, nil
		},
	}
	svc := service.NewAuthService(users, storingTokenRepo(), testSecret)
	_, err = svc.Login(context.Background(), "ada@example.com", "battery staple")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("Login error = %v; want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := &mockUserRepo{
		FindByEmailFunc: func(context.Context, string) (*models.User, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := service.NewAuthService(users, storingTokenRepo(), testSecret)
	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("Login error = %v; want ErrInvalidCredentials", err)
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	userID := uuid.New()
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	stored := &repository.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	rotated := false
	tokens := &mockTokenRepo{
		FindByHashFunc: func(ctx context.Context, gotHash string) (*repository.RefreshToken, error) {
			if gotHash != hash {
				t.Errorf("FindByHash hash = %q; want %q", gotHash, hash)
			}
			return stored, nil
		},
		RotateFunc: func(ctx context.Context, oldID uuid.UUID, gotUser uuid.UUID, newHash string, newExpiry time.Time) (uuid.UUID, error) {
			rotated = true
			if oldID != stored.ID || gotUser != userID {
				t.Errorf("Rotate args = %v, %v; want %v, %v", oldID, gotUser, stored.ID, userID)
			}
			if newHash == hash {
				t.Error("rotation reused the old token hash")
			}
			return uuid.New(), nil
		},
	}
	svc := service.NewAuthService(&mockUserRepo{}, tokens, testSecret)
	sess, err := svc.Refresh(context.Background(), raw)
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if !rotated {
		t.Fatal("expected Rotate to be called")
	}
	if sess.RefreshToken == raw {
		t.Error("refresh returned the redeemed token")
	}
	claims, err := auth.ParseToken(sess.AccessToken, testSecret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != userID.String() {
		t.Errorf("uid = %q; want %q", claims.UserID, userID)
	}
}

func TestRefresh_RevokedTokenRevokesAll(t *testing.T) {
	userID := uuid.New()
	revokedAll := false
	tokens := &mockTokenRepo{
		FindByHashFunc: func(context.Context, string) (*repository.RefreshToken, error) {
			return &repository.RefreshToken{
				ID:        uuid.New(),
				UserID:    userID,
				Revoked:   true,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
		RevokeAllForUserFunc: func(ctx context.Context, gotUser uuid.UUID) error {
			revokedAll = true
			if gotUser != userID {
				t.Errorf("RevokeAllForUser userID = %v; want %v", gotUser, userID)
			}
			return nil
		},
	}
	svc := service.NewAuthService(&mockUserRepo{}, tokens, testSecret)
	_, err := svc.Refresh(context.Background(), "stolen")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("Refresh error = %v; want ErrInvalidCredentials", err)
	}
	if !revokedAll {
		t.Fatal("reuse of a revoked token must revoke the whole chain")
	}
}

func TestRefresh_ExpiredToken(t *testing.T) {
	tokens := &mockTokenRepo{
		FindByHashFunc: func(context.Context, string) (*repository.RefreshToken, error) {
			return &repository.RefreshToken{
				ID:        uuid.New(),
				UserID:    uuid.New(),
				ExpiresAt: time.Now().Add(-time.Minute),
			}, nil
		},
	}
	svc := service.NewAuthService(&mockUserRepo{}, tokens, testSecret)
	_, err := svc.Refresh(context.Background(), "expired")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("Refresh error = %v; want ErrInvalidCredentials", err)
	}
}

func TestRefresh_UnknownToken(t *testing.T) {
	tokens := &mockTokenRepo{
		FindByHashFunc: func(context.Context, string) (*repository.RefreshToken, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := service.NewAuthService(&mockUserRepo{}, tokens, testSecret)
	_, err := svc.Refresh(context.Background(), "garbage")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("Refresh error = %v; want ErrInvalidCredentials", err)
	}
}

func TestLogout(t *testing.T) {
	userID := uuid.New()
	called := false
	tokens := &mockTokenRepo{
		RevokeAllForUserFunc: func(ctx context.Context, gotUser uuid.UUID) error {
			called = true
			if gotUser != userID {
				t.Errorf("RevokeAllForUser userID = %v; want %v", gotUser, userID)
			}
			return nil
		},
	}
	svc := service.NewAuthService(&mockUserRepo{}, tokens, testSecret)
	if err := svc.Logout(context.Background(), userID); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if !called {
		t.Fatal("expected RevokeAllForUser to be called")
	}
}
