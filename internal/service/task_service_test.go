package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskboard/internal/domain"

	"github.com/google/uuid"
)

func TestTaskCreate_Defaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.mkUser(t, "owner")
	p := env.mkProject(t, owner, "P")

	task, err := env.Tasks.Create(ctx, owner.ID, p.ID, TaskCreate{Title: "Ship it"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Num != 1 {
		t.Fatalf("num = %d, want 1", task.Num)
	}
	if task.Status != domain.StatusTodo || task.Priority != domain.PriorityLow {
		t.Fatalf("defaults = (%q, %q), want (todo, low)", task.Status, task.Priority)
	}
	if task.AssigneeID != nil || task.DueDate != nil {
		t.Fatal("assignee and due date must default to unset")
	}
}

func TestTaskCreate_SequentialNums(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.mkUser(t, "owner")
	p1 := env.mkProject(t, owner, "P1")
	p2 := env.mkProject(t, owner, "P2")

	for i := int64(1); i <= 3; i++ {
		task, err := env.Tasks.Create(ctx, owner.ID, p1.ID, TaskCreate{Title: "t"})
		if err != nil {
			t.Fatal(err)
		}
		if task.Num != i {
			t.Fatalf("task %d got num %d", i, task.Num)
		}
	}

	// numbering is per project
	task, err := env.Tasks.Create(ctx, owner.ID, p2.ID, TaskCreate{Title: "t"})
	if err != nil {
		t.Fatal(err)
	}
	if task.Num != 1 {
		t.Fatalf("second project starts at num %d, want 1", task.Num)
	}
}

func TestTaskCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.mkUser(t, "owner")
	outsider := env.mkUser(t, "outsider")
	p := env.mkProject(t, owner, "P")

	if _, err := env.Tasks.Create(ctx, owner.ID, p.ID, TaskCreate{Title: " "}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank title: got %v, want ErrValidation", err)
	}
	if _, err := env.Tasks.Create(ctx, owner.ID, p.ID, TaskCreate{Title: "t", Status: "paused"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown status: got %v, want ErrValidation", err)
	}
	if _, err := env.Tasks.Create(ctx, owner.ID, p.ID, TaskCreate{Title: "t", Priority: "urgent"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown priority: got %v, want ErrValidation", err)
	}

	// non-member assignee is rejected and nothing is persisted
	if _, err := env.Tasks.Create(ctx, owner.ID, p.ID, TaskCreate{Title: "t", AssigneeID: &outsider.ID}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("non-member assignee: got %v, want ErrValidation", err)
	}
	tasks, err := env.Tasks.List(ctx, owner.ID, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Fatalf("rejected create persisted %d tasks", len(tasks))
	}
}

func TestTask_MemberGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.mkUser(t, "owner")
	outsider := env.mkUser(t, "outsider")
	p := env.mkProject(t, owner, "P")

	if _, err := env.Tasks.Create(ctx, outsider.ID, p.ID, TaskCreate{Title: "t"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("outsider create: got %v, want ErrForbidden", err)
	}
	if _, err := env.Tasks.List(ctx, outsider.ID, p.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("outsider list: got %v, want ErrForbidden", err)
	}
	// missing project answers NotFound, not Forbidden
	if _, err := env.Tasks.List(ctx, owner.ID, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing project: got %v, want ErrNotFound", err)
	}
}

func TestTaskUpdate_Partial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.mkUser(t, "owner")
	member := env.mkUser(t, "member2")
	p := env.mkProject(t, owner, "P")
	if _, err := env.Memberships.AddMember(ctx, owner.ID, p.ID, member.ID, "member"); err != nil {
		t.Fatal(err)
	}

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	task, err := env.Tasks.Create(ctx, owner.ID, p.ID, TaskCreate{
		Title:      "Write docs",
		AssigneeID: &member.ID,
		DueDate:    &due,
	})
	if err != nil {
		t.Fatal(err)
	}

	status := "in_progress"
	updated, err := env.Tasks.Update(ctx, member.ID, p.ID, task.Num, TaskUpdate{Status: &status})
	if err != nil {
		t.Fatalf("member update: %v", err)
	}
	if updated.Status != domain.StatusInProgress {
		t.Fatalf("status = %q", updated.Status)
	}
	// untouched fields survive a partial update
	if updated.Title != "Write docs" || updated.AssigneeID == nil || *updated.AssigneeID != member.ID {
		t.Fatalf("partial update clobbered fields: %+v", updated)
	}
	if updated.DueDate == nil || !updated.DueDate.Equal(due) {
		t.Fatalf("due date = %v, want %v", updated.DueDate, due)
	}

	// explicit clear of assignee and due date
	updated, err = env.Tasks.Update(ctx, owner.ID, p.ID, task.Num, TaskUpdate{AssigneeSet: true, DueDateSet: true})
	if err != nil {
		t.Fatal(err)
	}
	if updated.AssigneeID != nil || updated.DueDate != nil {
		t.Fatalf("clear left (%v, %v)", updated.AssigneeID, updated.DueDate)
	}
}

func TestTaskUpdate_ReassignRevalidates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.mkUser(t, "owner")
	outsider := env.mkUser(t, "outsider")
	p := env.mkProject(t, owner, "P")

	task, err := env.Tasks.Create(ctx, owner.ID, p.ID, TaskCreate{Title: "t"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := env.Tasks.Update(ctx, owner.ID, p.ID, task.Num, TaskUpdate{AssigneeSet: true, AssigneeID: &outsider.ID}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("reassign to non-member: got %v, want ErrValidation", err)
	}

	got, err := env.Tasks.Get(ctx, owner.ID, p.ID, task.Num)
	if err != nil {
		t.Fatal(err)
	}
	if got.AssigneeID != nil {
		t.Fatal("rejected reassignment was persisted")
	}
}

func TestTaskDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.mkUser(t, "owner")
	p := env.mkProject(t, owner, "P")

	task, err := env.Tasks.Create(ctx, owner.ID, p.ID, TaskCreate{Title: "t"})
	if err != nil {
		t.Fatal(err)
	}

	if err := env.Tasks.Delete(ctx, owner.ID, p.ID, task.Num); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.Tasks.Get(ctx, owner.ID, p.ID, task.Num); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deleted task still readable: %v", err)
	}
	if err := env.Tasks.Delete(ctx, owner.ID, p.ID, task.Num); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("double delete: got %v, want ErrNotFound", err)
	}

	// deleting a task does not renumber the survivors
	t1, _ := env.Tasks.Create(ctx, owner.ID, p.ID, TaskCreate{Title: "a"})
	t2, _ := env.Tasks.Create(ctx, owner.ID, p.ID, TaskCreate{Title: "b"})
	if err := env.Tasks.Delete(ctx, owner.ID, p.ID, t1.Num); err != nil {
		t.Fatal(err)
	}
	t3, err := env.Tasks.Create(ctx, owner.ID, p.ID, TaskCreate{Title: "c"})
	if err != nil {
		t.Fatal(err)
	}
	if t3.Num <= t2.Num {
		t.Fatalf("num %d not monotonic after delete (last was %d)", t3.Num, t2.Num)
	}
}
