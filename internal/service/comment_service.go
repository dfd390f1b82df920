package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/domain"

	"github.com/google/uuid"
)

// CommentService owns comments on tasks. The gate is membership on the
// task's project; the commenter is always the acting user.
type CommentService struct {
	projects ProjectStore
	members  MembershipStore
	tasks    TaskStore
	comments CommentStore
}

func NewCommentService(projects ProjectStore, members MembershipStore, tasks TaskStore, comments CommentStore) *CommentService {
	return &CommentService{projects: projects, members: members, tasks: tasks, comments: comments}
}

// requireTask gates on membership before touching the task, so a non-member
// cannot probe which task numbers exist.
func (s *CommentService) requireTask(ctx context.Context, actorID int64, projectID uuid.UUID, taskNum int64) (*domain.Task, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.members.Get(ctx, actorID, projectID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: you are not a member of this project", domain.ErrForbidden)
		}
		return nil, err
	}
	return s.tasks.Get(ctx, projectID, taskNum)
}

func (s *CommentService) Create(ctx context.Context, actorID int64, projectID uuid.UUID, taskNum int64, body string) (*domain.Comment, error) {
	if _, err := s.requireTask(ctx, actorID, projectID, taskNum); err != nil {
		return nil, err
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: comment text is required", domain.ErrValidation)
	}

	c := &domain.Comment{
		ProjectID:   projectID,
		TaskNum:     taskNum,
		CommenterID: actorID,
		Body:        body,
	}
	if err := s.comments.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns the task's comments ordered by posted_at ascending.
func (s *CommentService) List(ctx context.Context, actorID int64, projectID uuid.UUID, taskNum int64) ([]*domain.Comment, error) {
	if _, err := s.requireTask(ctx, actorID, projectID, taskNum); err != nil {
		return nil, err
	}
	return s.comments.ListByTask(ctx, projectID, taskNum)
}

func (s *CommentService) Get(ctx context.Context, actorID int64, projectID uuid.UUID, taskNum, num int64) (*domain.Comment, error) {
	if _, err := s.requireTask(ctx, actorID, projectID, taskNum); err != nil {
		return nil, err
	}
	return s.comments.Get(ctx, projectID, taskNum, num)
}

func (s *CommentService) Delete(ctx context.Context, actorID int64, projectID uuid.UUID, taskNum, num int64) error {
	if _, err := s.requireTask(ctx, actorID, projectID, taskNum); err != nil {
		return err
	}
	if _, err := s.comments.Get(ctx, projectID, taskNum, num); err != nil {
		return err
	}
	return s.comments.Delete(ctx, projectID, taskNum, num)
}
