package repository

import (
	"context"

	"taskboard/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// Insert assigns the next sequential number within the project. Two
// concurrent inserts can pick the same number; the (project_id, num) primary
// key rejects one and we take the next number on retry.
func (r *TaskRepository) Insert(ctx context.Context, t *domain.Task) error {
	return retryNumbering(3, func() error {
		return r.db.QueryRow(ctx,
			`INSERT INTO tasks (project_id, num, title, description, status, priority, assignee_id, due_date)
			 SELECT $1, COALESCE(MAX(num), 0) + 1, $2, $3, $4, $5, $6, $7
			 FROM tasks WHERE project_id = $1
			 RETURNING num, created_at, updated_at`,
			t.ProjectID,
			t.Title,
			t.Description,
			t.Status,
			t.Priority,
			t.AssigneeID,
			t.DueDate,
		).Scan(&t.Num, &t.CreatedAt, &t.UpdatedAt)
	})
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT project_id, num, title, COALESCE(description, ''), status, priority, assignee_id, due_date, created_at, updated_at
		 FROM tasks
		 WHERE project_id = $1
		 ORDER BY num`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ProjectID, &t.Num, &t.Title, &t.Description, &t.Status, &t.Priority, &t.AssigneeID, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) Get(ctx context.Context, projectID uuid.UUID, num int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT project_id, num, title, COALESCE(description, ''), status, priority, assignee_id, due_date, created_at, updated_at
		 FROM tasks
		 WHERE project_id = $1 AND num = $2`,
		projectID,
		num,
	)

	var t domain.Task
	if err := row.Scan(&t.ProjectID, &t.Num, &t.Title, &t.Description, &t.Status, &t.Priority, &t.AssigneeID, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, translateErr(err)
	}
	return &t, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	err := r.db.QueryRow(ctx,
		`UPDATE tasks
		 SET title = $3, description = $4, status = $5, priority = $6, assignee_id = $7, due_date = $8, updated_at = now()
		 WHERE project_id = $1 AND num = $2
		 RETURNING updated_at`,
		t.ProjectID,
		t.Num,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.AssigneeID,
		t.DueDate,
	).Scan(&t.UpdatedAt)
	return translateErr(err)
}

// Delete cascades to the task's comments.
func (r *TaskRepository) Delete(ctx context.Context, projectID uuid.UUID, num int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM tasks WHERE project_id = $1 AND num = $2`,
		projectID,
		num,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
