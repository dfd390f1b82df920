package repository

import (
	"context"

	"taskboard/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository struct {
	db *pgxpool.Pool
}

func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Insert(ctx context.Context, c *domain.Comment) error {
	return retryNumbering(3, func() error {
		return r.db.QueryRow(ctx,
			`INSERT INTO comments (project_id, task_num, num, commenter_id, body)
			 SELECT $1, $2, COALESCE(MAX(num), 0) + 1, $3, $4
			 FROM comments WHERE project_id = $1 AND task_num = $2
			 RETURNING num, posted_at`,
			c.ProjectID,
			c.TaskNum,
			c.CommenterID,
			c.Body,
		).Scan(&c.Num, &c.PostedAt)
	})
}

func (r *CommentRepository) ListByTask(ctx context.Context, projectID uuid.UUID, taskNum int64) ([]*domain.Comment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT project_id, task_num, num, commenter_id, body, posted_at
		 FROM comments
		 WHERE project_id = $1 AND task_num = $2
		 ORDER BY posted_at, num`,
		projectID,
		taskNum,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ProjectID, &c.TaskNum, &c.Num, &c.CommenterID, &c.Body, &c.PostedAt); err != nil {
			return nil, err
		}
		res = append(res, &c)
	}
	return res, rows.Err()
}

func (r *CommentRepository) Get(ctx context.Context, projectID uuid.UUID, taskNum, num int64) (*domain.Comment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT project_id, task_num, num, commenter_id, body, posted_at
		 FROM comments
		 WHERE project_id = $1 AND task_num = $2 AND num = $3`,
		projectID,
		taskNum,
		num,
	)

	var c domain.Comment
	if err := row.Scan(&c.ProjectID, &c.TaskNum, &c.Num, &c.CommenterID, &c.Body, &c.PostedAt); err != nil {
		return nil, translateErr(err)
	}
	return &c, nil
}

func (r *CommentRepository) Delete(ctx context.Context, projectID uuid.UUID, taskNum, num int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM comments WHERE project_id = $1 AND task_num = $2 AND num = $3`,
		projectID,
		taskNum,
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
