// Package service provides the business-logic services for contacts, tasks,
// appointments, projects, and authentication, delegating persistence to
// repository interfaces injected at construction.
package service

import (
	"context"

	"github.com/google/uuid"

	"contactdesk/internal/models"
)

// ContactRepository defines the persistence operations required by the
// contact service.
type ContactRepository interface {
	Create(ctx context.Context, userID uuid.UUID, c *models.Contact) error
	Update(ctx context.Context, userID uuid.UUID, c *models.Contact) error
	FindByID(ctx context.Context, userID uuid.UUID, contactID string) (*models.Contact, error)
	FindAll(ctx context.Context, userID uuid.UUID) ([]*models.Contact, error)
	DeleteByID(ctx context.Context, userID uuid.UUID, contactID string) error
}

// ContactService implements contact lifecycle operations.
type ContactService struct {
	repo ContactRepository
}

// NewContactService constructs a ContactService using the provided
// repository.
func NewContactService(repo ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

// Create validates and stores a new contact for the user.
func (s *ContactService) Create(ctx context.Context, userID uuid.UUID, contactID, firstName, lastName, phone, address string) (*models.Contact, error) {
	c, err := models.NewContact(contactID, firstName, lastName, phone, address)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, userID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update atomically replaces the mutable fields of an existing contact.
// Validation failures leave the stored contact unchanged.
func (s *ContactService) Update(ctx context.Context, userID uuid.UUID, contactID, firstName, lastName, phone, address string, archived bool) (*models.Contact, error) {
	c, err := s.repo.FindByID(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}
	if err := c.Update(firstName, lastName, phone, address, archived); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, userID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get fetches one contact by id for the user.
func (s *ContactService) Get(ctx context.Context, userID uuid.UUID, contactID string) (*models.Contact, error) {
	return s.repo.FindByID(ctx, userID, contactID)
}

// List fetches all of the user's contacts.
func (s *ContactService) List(ctx context.Context, userID uuid.UUID) ([]*models.Contact, error) {
	return s.repo.FindAll(ctx, userID)
}

// Delete removes one contact by id for the user.
func (s *ContactService) Delete(ctx context.Context, userID uuid.UUID, contactID string) error {
	return s.repo.DeleteByID(ctx, userID, contactID)
}
