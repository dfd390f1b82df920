package service

import (
	"context"

	"taskboard/internal/domain"

	"github.com/google/uuid"
)

// Store interfaces abstract the relational backing store. The pgx
// implementations live in internal/repository; tests substitute in-memory
// fakes. Implementations return domain.ErrNotFound for absent rows and
// domain.ErrConflict for uniqueness violations.

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type ProjectStore interface {
	// CreateWithOwner persists the project and its owner membership in one
	// transaction: an orphaned project is never observable.
	CreateWithOwner(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	ListByMember(ctx context.Context, userID int64) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MembershipStore interface {
	Get(ctx context.Context, userID int64, projectID uuid.UUID) (*domain.Membership, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Member, error)
	// Insert relies on the store's (user, project) uniqueness constraint;
	// a duplicate comes back as domain.ErrConflict even under races.
	Insert(ctx context.Context, m *domain.Membership) error
	UpdateRole(ctx context.Context, userID int64, projectID uuid.UUID, role domain.Role) (*domain.Membership, error)
	Delete(ctx context.Context, userID int64, projectID uuid.UUID) error
}

type TaskStore interface {
	Insert(ctx context.Context, t *domain.Task) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)
	Get(ctx context.Context, projectID uuid.UUID, num int64) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, projectID uuid.UUID, num int64) error
}

type CommentStore interface {
	Insert(ctx context.Context, c *domain.Comment) error
	// ListByTask returns comments ordered by posted_at ascending.
	ListByTask(ctx context.Context, projectID uuid.UUID, taskNum int64) ([]*domain.Comment, error)
	Get(ctx context.Context, projectID uuid.UUID, taskNum, num int64) (*domain.Comment, error)
	Delete(ctx context.Context, projectID uuid.UUID, taskNum, num int64) error
}
