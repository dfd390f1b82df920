package service

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/domain"
	"taskboard/internal/policy"

	"github.com/google/uuid"
)

// MembershipService owns the user↔project relation. Every authorization
// decision in the system routes through memberships it manages.
type MembershipService struct {
	users    UserStore
	projects ProjectStore
	members  MembershipStore
}

func NewMembershipService(users UserStore, projects ProjectStore, members MembershipStore) *MembershipService {
	return &MembershipService{users: users, projects: projects, members: members}
}

// MembershipOf is the authorization primitive: the actor's membership on a
// project, or domain.ErrNotFound.
func (s *MembershipService) MembershipOf(ctx context.Context, userID int64, projectID uuid.UUID) (*domain.Membership, error) {
	return s.members.Get(ctx, userID, projectID)
}

func (s *MembershipService) IsMember(ctx context.Context, userID int64, projectID uuid.UUID) (bool, error) {
	_, err := s.members.Get(ctx, userID, projectID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// actorMembership resolves the actor's membership, translating absence into
// ErrForbidden: a non-member gets the same answer whether or not the action
// would otherwise have succeeded.
func (s *MembershipService) actorMembership(ctx context.Context, actorID int64, projectID uuid.UUID) (*domain.Membership, error) {
	m, err := s.members.Get(ctx, actorID, projectID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: not a member of this project", domain.ErrForbidden)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MembershipService) ListMembers(ctx context.Context, actorID int64, projectID uuid.UUID) ([]*domain.Member, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.actorMembership(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	return s.members.ListByProject(ctx, projectID)
}

func (s *MembershipService) GetMember(ctx context.Context, actorID int64, projectID uuid.UUID, targetUserID int64) (*domain.Membership, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.actorMembership(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	return s.members.Get(ctx, targetUserID, projectID)
}

// AddMember invites targetUserID with the given role. Owners and admins may
// add members; only the owner may add admins. The owner role is never
// grantable: a project has exactly one owner, fixed at creation.
func (s *MembershipService) AddMember(ctx context.Context, actorID int64, projectID uuid.UUID, targetUserID int64, role string) (*domain.Membership, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	actor, err := s.actorMembership(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}
	if !policy.CanManageMembers(actor.Role) {
		return nil, fmt.Errorf("%w: only project owners and admins can add members", domain.ErrForbidden)
	}

	if role == "" {
		role = string(domain.RoleMember)
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	if parsed == domain.RoleOwner {
		return nil, fmt.Errorf("%w: the owner role cannot be granted", domain.ErrValidation)
	}
	if !policy.CanAssignRole(actor.Role, parsed) {
		return nil, fmt.Errorf("%w: only the project owner can assign admin roles", domain.ErrForbidden)
	}

	if _, err := s.users.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	m := &domain.Membership{
		UserID:    targetUserID,
		ProjectID: projectID,
		Role:      parsed,
	}
	// uniqueness is enforced by the store constraint, so two concurrent
	// invites cannot both succeed
	if err := s.members.Insert(ctx, m); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: user is already a member of this project", domain.ErrConflict)
		}
		return nil, err
	}
	return m, nil
}

// UpdateRole changes a member's role. Owner only. The owner's own membership
// is immutable; ownership transfer is not supported.
func (s *MembershipService) UpdateRole(ctx context.Context, actorID int64, projectID uuid.UUID, targetUserID int64, newRole string) (*domain.Membership, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	actor, err := s.actorMembership(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}
	if !policy.CanUpdateRole(actor.Role) {
		return nil, fmt.Errorf("%w: only the project owner can update roles", domain.ErrForbidden)
	}

	parsed, err := domain.ParseRole(newRole)
	if err != nil {
		return nil, err
	}
	if parsed == domain.RoleOwner {
		return nil, fmt.Errorf("%w: the owner role cannot be granted", domain.ErrValidation)
	}
	// redundant with CanUpdateRole today, kept so the admin-minting rule
	// holds even if the gate above is ever relaxed
	if !policy.CanAssignRole(actor.Role, parsed) {
		return nil, fmt.Errorf("%w: only the project owner can assign admin roles", domain.ErrForbidden)
	}

	target, err := s.members.Get(ctx, targetUserID, projectID)
	if err != nil {
		return nil, err
	}
	if target.Role == domain.RoleOwner {
		return nil, fmt.Errorf("%w: the owner role cannot be changed", domain.ErrForbidden)
	}

	return s.members.UpdateRole(ctx, targetUserID, projectID, parsed)
}

// RemoveMember deletes a membership. The owner may remove anyone except
// their own owner membership; an admin may remove plain members only.
func (s *MembershipService) RemoveMember(ctx context.Context, actorID int64, projectID uuid.UUID, targetUserID int64) error {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return err
	}

	actor, err := s.actorMembership(ctx, actorID, projectID)
	if err != nil {
		return err
	}

	target, err := s.members.Get(ctx, targetUserID, projectID)
	if err != nil {
		return err
	}

	// same rule as UpdateRole: the single owner membership is immutable
	if target.Role == domain.RoleOwner {
		return fmt.Errorf("%w: the owner membership cannot be removed", domain.ErrForbidden)
	}
	if !policy.CanRemoveMember(actor.Role, target.Role) {
		return fmt.Errorf("%w: admins cannot remove other admins", domain.ErrForbidden)
	}

	return s.members.Delete(ctx, targetUserID, projectID)
}
