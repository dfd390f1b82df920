package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/policy"

	"github.com/google/uuid"
)

// ProjectService owns project lifecycle. Visibility is membership-scoped:
// a project the actor has no membership on is indistinguishable from one
// that does not exist.
type ProjectService struct {
	projects ProjectStore
	members  MembershipStore
}

func NewProjectService(projects ProjectStore, members MembershipStore) *ProjectService {
	return &ProjectService{projects: projects, members: members}
}

// Create persists the project together with the founding owner membership.
// Any authenticated actor may create projects.
func (s *ProjectService) Create(ctx context.Context, actorID int64, name, description string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", domain.ErrValidation)
	}

	p := &domain.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		OwnerID:     actorID,
	}
	if err := s.projects.CreateWithOwner(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListVisible returns exactly the projects the actor has a membership on.
func (s *ProjectService) ListVisible(ctx context.Context, actorID int64) ([]*domain.Project, error) {
	return s.projects.ListByMember(ctx, actorID)
}

// Get returns the project or domain.ErrNotFound — for a project that is
// absent and equally for one the actor is not a member of.
func (s *ProjectService) Get(ctx context.Context, actorID int64, projectID uuid.UUID) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.members.Get(ctx, actorID, projectID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// ProjectUpdate carries the mutable project fields; nil means unchanged.
type ProjectUpdate struct {
	Name        *string
	Description *string
}

func (s *ProjectService) Update(ctx context.Context, actorID int64, projectID uuid.UUID, upd ProjectUpdate) (*domain.Project, error) {
	p, err := s.Get(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}
	m, err := s.members.Get(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditProject(m.Role) {
		return nil, fmt.Errorf("%w: insufficient role", domain.ErrForbidden)
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: project name is required", domain.ErrValidation)
		}
		p.Name = name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the project and, by cascade, its tasks and their comments.
func (s *ProjectService) Delete(ctx context.Context, actorID int64, projectID uuid.UUID) error {
	if _, err := s.Get(ctx, actorID, projectID); err != nil {
		return err
	}
	m, err := s.members.Get(ctx, actorID, projectID)
	if err != nil {
		return err
	}
	if !policy.CanEditProject(m.Role) {
		return fmt.Errorf("%w: insufficient role", domain.ErrForbidden)
	}
	return s.projects.Delete(ctx, projectID)
}
