package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is scoped to its task; Num is sequential within the task.
// CommenterID is always the acting user, never client-supplied.
type Comment struct {
	ProjectID   uuid.UUID `db:"project_id" json:"project_id"`
	TaskNum     int64     `db:"task_num" json:"task_num"`
	Num         int64     `db:"num" json:"num"`
	CommenterID int64     `db:"commenter_id" json:"commenter_id"`
	Body        string    `db:"body" json:"body"`
	PostedAt    time.Time `db:"posted_at" json:"posted_at"`
}
