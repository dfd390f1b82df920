package repository

import (
	"context"

	"taskboard/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MembershipRepository struct {
	db *pgxpool.Pool
}

func NewMembershipRepository(db *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Get(ctx context.Context, userID int64, projectID uuid.UUID) (*domain.Membership, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, project_id, role, joined_at
		 FROM project_memberships
		 WHERE user_id = $1 AND project_id = $2`,
		userID,
		projectID,
	)

	var m domain.Membership
	if err := row.Scan(&m.ID, &m.UserID, &m.ProjectID, &m.Role, &m.JoinedAt); err != nil {
		return nil, translateErr(err)
	}
	return &m, nil
}

func (r *MembershipRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Member, error) {
	rows, err := r.db.Query(ctx,
		`SELECT m.id, m.user_id, m.project_id, m.role, m.joined_at, u.username, u.email
		 FROM project_memberships m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.project_id = $1
		 ORDER BY m.joined_at`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.UserID, &m.ProjectID, &m.Role, &m.JoinedAt, &m.Username, &m.Email); err != nil {
			return nil, err
		}
		res = append(res, &m)
	}
	return res, rows.Err()
}

// Insert relies on the unique (user_id, project_id) index: of two concurrent
// inserts exactly one succeeds, the other surfaces domain.ErrConflict.
func (r *MembershipRepository) Insert(ctx context.Context, m *domain.Membership) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO project_memberships (user_id, project_id, role)
		 VALUES ($1, $2, $3)
		 RETURNING id, joined_at`,
		m.UserID,
		m.ProjectID,
		m.Role,
	).Scan(&m.ID, &m.JoinedAt)
	return translateErr(err)
}

func (r *MembershipRepository) UpdateRole(ctx context.Context, userID int64, projectID uuid.UUID, role domain.Role) (*domain.Membership, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE project_memberships
		 SET role = $3
		 WHERE user_id = $1 AND project_id = $2
		 RETURNING id, user_id, project_id, role, joined_at`,
		userID,
		projectID,
		role,
	)

	var m domain.Membership
	if err := row.Scan(&m.ID, &m.UserID, &m.ProjectID, &m.Role, &m.JoinedAt); err != nil {
		return nil, translateErr(err)
	}
	return &m, nil
}

func (r *MembershipRepository) Delete(ctx context.Context, userID int64, projectID uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM project_memberships WHERE user_id = $1 AND project_id = $2`,
		userID,
		projectID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
