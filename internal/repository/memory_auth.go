package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"contactdesk/internal/models"
)

// MemoryUserRepository is the in-memory user store used when no database is
// configured.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{byEmail: make(map[string]*models.User)}
}

// Create stores a new user. A taken email yields ErrDuplicate.
func (r *MemoryUserRepository) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrDuplicate
	}
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

// FindByEmail fetches a user by email. Unknown emails yield ErrNotFound.
func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// MemoryRefreshTokenRepository is the in-memory refresh token store used
// when no database is configured.
type MemoryRefreshTokenRepository struct {
	mu     sync.Mutex
	byHash map[string]*RefreshToken
}

func NewMemoryRefreshTokenRepository() *MemoryRefreshTokenRepository {
	return &MemoryRefreshTokenRepository{byHash: make(map[string]*RefreshToken)}
}

// Create stores a new refresh token and returns its id.
func (r *MemoryRefreshTokenRepository) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.New()
	r.byHash[tokenHash] = &RefreshToken{
		ID:        id,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return id, nil
}

// FindByHash fetches a refresh token by its stored hash.
func (r *MemoryRefreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byHash[tokenHash]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

// Rotate revokes the old token, links it to its replacement, and stores the
// replacement.
func (r *MemoryRefreshTokenRepository) Rotate(ctx context.Context, oldID uuid.UUID, userID uuid.UUID, newHash string, newExpiry time.Time) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	newID := uuid.New()
	for _, t := range r.byHash {
		if t.ID == oldID {
			t.Revoked = true
			id := newID
			t.ReplacedBy = &id
			break
		}
	}
	r.byHash[newHash] = &RefreshToken{
		ID:        newID,
		UserID:    userID,
		TokenHash: newHash,
		ExpiresAt: newExpiry,
		CreatedAt: time.Now(),
	}
	return newID, nil
}

// RevokeAllForUser revokes every token held by the user.
func (r *MemoryRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.byHash {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}
