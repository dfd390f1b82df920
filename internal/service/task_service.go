package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/policy"

	"github.com/google/uuid"
)

// TaskService owns tasks within a project. Every operation is gated on the
// actor being a project member; beyond that no role narrowing applies — any
// member may create, edit, reassign or delete any task.
type TaskService struct {
	projects ProjectStore
	members  MembershipStore
	tasks    TaskStore
}

func NewTaskService(projects ProjectStore, members MembershipStore, tasks TaskStore) *TaskService {
	return &TaskService{projects: projects, members: members, tasks: tasks}
}

// requireMember answers NotFound for a missing project and Forbidden for a
// non-member actor, matching the nested-route semantics.
func (s *TaskService) requireMember(ctx context.Context, actorID int64, projectID uuid.UUID) error {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return err
	}
	m, err := s.members.Get(ctx, actorID, projectID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: you are not a member of this project", domain.ErrForbidden)
	}
	if err != nil {
		return err
	}
	if !policy.CanEditProject(m.Role) {
		return fmt.Errorf("%w: insufficient role", domain.ErrForbidden)
	}
	return nil
}

// validateAssignee enforces the standing invariant: an assignee must hold a
// membership on the task's project.
func (s *TaskService) validateAssignee(ctx context.Context, assigneeID int64, projectID uuid.UUID) error {
	_, err := s.members.Get(ctx, assigneeID, projectID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: assignee must be a member of the project", domain.ErrValidation)
	}
	return err
}

// TaskCreate carries client-supplied task fields. Timestamps and the task
// number are always server-assigned.
type TaskCreate struct {
	Title       string
	Description string
	Status      string
	Priority    string
	AssigneeID  *int64
	DueDate     *time.Time
}

func (s *TaskService) Create(ctx context.Context, actorID int64, projectID uuid.UUID, in TaskCreate) (*domain.Task, error) {
	if err := s.requireMember(ctx, actorID, projectID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: task title is required", domain.ErrValidation)
	}

	status := domain.StatusTodo
	if in.Status != "" {
		var err error
		if status, err = domain.ParseTaskStatus(in.Status); err != nil {
			return nil, err
		}
	}
	priority := domain.PriorityLow
	if in.Priority != "" {
		var err error
		if priority, err = domain.ParseTaskPriority(in.Priority); err != nil {
			return nil, err
		}
	}

	if in.AssigneeID != nil {
		if err := s.validateAssignee(ctx, *in.AssigneeID, projectID); err != nil {
			return nil, err
		}
	}

	t := &domain.Task{
		ProjectID:   projectID,
		Title:       title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		AssigneeID:  in.AssigneeID,
		DueDate:     in.DueDate,
	}
	if err := s.tasks.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context, actorID int64, projectID uuid.UUID) ([]*domain.Task, error) {
	if err := s.requireMember(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *TaskService) Get(ctx context.Context, actorID int64, projectID uuid.UUID, num int64) (*domain.Task, error) {
	if err := s.requireMember(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	return s.tasks.Get(ctx, projectID, num)
}

// TaskUpdate is a partial update; nil pointers leave fields unchanged. The
// Set flags distinguish "clear the field" from "leave it alone".
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	AssigneeID  *int64
	AssigneeSet bool
	DueDate     *time.Time
	DueDateSet  bool
}

func (s *TaskService) Update(ctx context.Context, actorID int64, projectID uuid.UUID, num int64, upd TaskUpdate) (*domain.Task, error) {
	if err := s.requireMember(ctx, actorID, projectID); err != nil {
		return nil, err
	}

	t, err := s.tasks.Get(ctx, projectID, num)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: task title is required", domain.ErrValidation)
		}
		t.Title = title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Status != nil {
		if t.Status, err = domain.ParseTaskStatus(*upd.Status); err != nil {
			return nil, err
		}
	}
	if upd.Priority != nil {
		if t.Priority, err = domain.ParseTaskPriority(*upd.Priority); err != nil {
			return nil, err
		}
	}
	if upd.AssigneeSet {
		// reassignment re-checks the assignee-is-member invariant
		if upd.AssigneeID != nil {
			if err := s.validateAssignee(ctx, *upd.AssigneeID, projectID); err != nil {
				return nil, err
			}
		}
		t.AssigneeID = upd.AssigneeID
	}
	if upd.DueDateSet {
		t.DueDate = upd.DueDate
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, actorID int64, projectID uuid.UUID, num int64) error {
	if err := s.requireMember(ctx, actorID, projectID); err != nil {
		return err
	}
	if _, err := s.tasks.Get(ctx, projectID, num); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, projectID, num)
}
