package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role - роль участника внутри проекта
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// ParseRole validates a role coming from a client.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleMember:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

// Rank orders roles for privilege comparison: owner > admin > member.
func (r Role) Rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleMember:
		return 1
	}
	return 0
}

// AtLeast reports whether r carries at least the privilege of other.
func (r Role) AtLeast(other Role) bool {
	return r.Rank() >= other.Rank()
}

// Membership is the join record granting a user a role within a project.
// It is the sole source of truth for every authorization decision; at most
// one exists per (user, project) pair.
type Membership struct {
	ID        int64     `db:"id" json:"-"`
	UserID    int64     `db:"user_id" json:"user_id"`
	ProjectID uuid.UUID `db:"project_id" json:"project_id"`
	Role      Role      `db:"role" json:"role"`
	JoinedAt  time.Time `db:"joined_at" json:"joined_at"`
}

// Member is a membership joined with the user's identity for API responses.
type Member struct {
	Membership
	Username string `json:"username"`
	Email    string `json:"email"`
}
