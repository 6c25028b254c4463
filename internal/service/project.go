package service

import (
	"context"

	"github.com/google/uuid"

	"contactdesk/internal/models"
)

// ProjectRepository defines the persistence operations required by the
// project service.
type ProjectRepository interface {
	Create(ctx context.Context, userID uuid.UUID, p *models.Project) error
	Update(ctx context.Context, userID uuid.UUID, p *models.Project) error
	FindByID(ctx context.Context, userID uuid.UUID, projectID string) (*models.Project, error)
	FindAll(ctx context.Context, userID uuid.UUID) ([]*models.Project, error)
	DeleteByID(ctx context.Context, userID uuid.UUID, projectID string) error
}

// ProjectService implements project lifecycle operations.
type ProjectService struct {
	repo ProjectRepository
}

// NewProjectService constructs a ProjectService using the provided
// repository.
func NewProjectService(repo ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// Create validates and stores a new project for the user.
func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, projectID, name, description string) (*models.Project, error) {
	p, err := models.NewProject(projectID, name, description)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, userID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update atomically replaces the mutable fields of an existing project.
func (s *ProjectService) Update(ctx context.Context, userID uuid.UUID, projectID, name, description string, archived bool) (*models.Project, error) {
	p, err := s.repo.FindByID(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if err := p.Update(name, description, archived); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, userID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get fetches one project by id for the user.
func (s *ProjectService) Get(ctx context.Context, userID uuid.UUID, projectID string) (*models.Project, error) {
	return s.repo.FindByID(ctx, userID, projectID)
}

// List fetches all of the user's projects.
func (s *ProjectService) List(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	return s.repo.FindAll(ctx, userID)
}

// Delete removes one project by id for the user.
func (s *ProjectService) Delete(ctx context.Context, userID uuid.UUID, projectID string) error {
	return s.repo.DeleteByID(ctx, userID, projectID)
}
