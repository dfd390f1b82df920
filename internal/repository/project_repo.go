package repository

import (
	"context"

	"taskboard/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// CreateWithOwner inserts the project and the founding owner membership in
// one transaction; neither is observable without the other.
func (r *ProjectRepository) CreateWithOwner(ctx context.Context, p *domain.Project) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO projects (id, name, description, owner_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		p.ID,
		p.Name,
		p.Description,
		p.OwnerID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return translateErr(err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO project_memberships (user_id, project_id, role)
		 VALUES ($1, $2, $3)`,
		p.OwnerID,
		p.ID,
		domain.RoleOwner,
	)
	if err != nil {
		return translateErr(err)
	}

	return tx.Commit(ctx)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(description, ''), owner_id, created_at, updated_at
		 FROM projects
		 WHERE id = $1`,
		id,
	)

	var p domain.Project
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func (r *ProjectRepository) ListByMember(ctx context.Context, userID int64) ([]*domain.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.name, COALESCE(p.description, ''), p.owner_id, p.created_at, p.updated_at
		 FROM projects p
		 JOIN project_memberships m ON m.project_id = p.id
		 WHERE m.user_id = $1
		 ORDER BY p.created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	err := r.db.QueryRow(ctx,
		`UPDATE projects
		 SET name = $2, description = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		p.ID,
		p.Name,
		p.Description,
	).Scan(&p.UpdatedAt)
	return translateErr(err)
}

// Delete cascades to memberships, tasks and comments via FK constraints.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
