package models

import "time"

// Project groups related tasks and appointments for a single user.
//
// Constraints: ProjectID 1-10 chars (immutable after construction),
// Name 1-20 chars, Description 1-50 chars.
type Project struct {
	ProjectID   string
	Name        string
	Description string
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProject validates every field and returns a new project with fresh
// timestamps.
func NewProject(projectID, name, description string) (*Project, error) {
	id, err := validateTrimmedLength(projectID, "projectId", idMaxLength)
	if err != nil {
		return nil, err
	}

	p := &Project{ProjectID: id}
	if err := p.apply(name, description); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

// ReconstituteProject rebuilds a project from persisted data, preserving the
// stored timestamps and archived flag.
func ReconstituteProject(projectID, name, description string, archived bool, createdAt, updatedAt time.Time) (*Project, error) {
	p, err := NewProject(projectID, name, description)
	if err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, invalid("createdAt", "must not be null")
	}
	if updatedAt.IsZero() {
		return nil, invalid("updatedAt", "must not be null")
	}
	p.Archived = archived
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return p, nil
}

// Update replaces the mutable fields atomically; an invalid value leaves the
// project unchanged.
func (p *Project) Update(name, description string, archived bool) error {
	if err := p.apply(name, description); err != nil {
		return err
	}
	p.Archived = archived
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (p *Project) apply(name, description string) error {
	validName, err := validateTrimmedLength(name, "name", nameMaxLength)
	if err != nil {
		return err
	}
	validDesc, err := validateTrimmedLength(description, "description", descriptionMaxLength)
	if err != nil {
		return err
	}
	p.Name = validName
	p.Description = validDesc
	return nil
}

// Copy returns an independent clone of the project.
func (p *Project) Copy() *Project {
	clone := *p
	return &clone
}
