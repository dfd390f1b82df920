package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"taskboard/internal/domain"

	"github.com/google/uuid"
)

// In-memory store fakes. They mirror the contracts the pgx repositories
// implement: ErrNotFound for absent rows, ErrConflict for uniqueness
// violations, server-assigned ids, numbers and timestamps.

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*domain.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[int64]*domain.User)}
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email || existing.Username == u.Username {
			return domain.ErrConflict
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type memberKey struct {
	userID    int64
	projectID uuid.UUID
}

type fakeMembers struct {
	mu     sync.Mutex
	nextID int64
	byKey  map[memberKey]*domain.Membership
	users  *fakeUsers
}

func newFakeMembers(users *fakeUsers) *fakeMembers {
	return &fakeMembers{byKey: make(map[memberKey]*domain.Membership), users: users}
}

func (f *fakeMembers) Get(_ context.Context, userID int64, projectID uuid.UUID) (*domain.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byKey[memberKey{userID, projectID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMembers) ListByProject(_ context.Context, projectID uuid.UUID) ([]*domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []*domain.Member
	for _, m := range f.byKey {
		if m.ProjectID != projectID {
			continue
		}
		member := &domain.Member{Membership: *m}
		if u, ok := f.users.byID[m.UserID]; ok {
			member.Username = u.Username
			member.Email = u.Email
		}
		res = append(res, member)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].JoinedAt.Before(res[j].JoinedAt) })
	return res, nil
}

func (f *fakeMembers) Insert(_ context.Context, m *domain.Membership) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := memberKey{m.UserID, m.ProjectID}
	if _, exists := f.byKey[key]; exists {
		return domain.ErrConflict
	}
	f.nextID++
	m.ID = f.nextID
	m.JoinedAt = time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	cp := *m
	f.byKey[key] = &cp
	return nil
}

func (f *fakeMembers) UpdateRole(_ context.Context, userID int64, projectID uuid.UUID, role domain.Role) (*domain.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byKey[memberKey{userID, projectID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m.Role = role
	cp := *m
	return &cp, nil
}

func (f *fakeMembers) Delete(_ context.Context, userID int64, projectID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := memberKey{userID, projectID}
	if _, ok := f.byKey[key]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byKey, key)
	return nil
}

type fakeProjects struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*domain.Project
	members *fakeMembers
	// failOwnerMembership simulates the membership insert failing so the
	// both-or-neither guarantee of CreateWithOwner can be asserted
	failOwnerMembership bool
}

func newFakeProjects(members *fakeMembers) *fakeProjects {
	return &fakeProjects{byID: make(map[uuid.UUID]*domain.Project), members: members}
}

func (f *fakeProjects) CreateWithOwner(ctx context.Context, p *domain.Project) error {
	f.mu.Lock()
	if f.failOwnerMembership {
		f.mu.Unlock()
		return fmt.Errorf("membership insert failed")
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	f.byID[p.ID] = &cp
	f.mu.Unlock()

	return f.members.Insert(ctx, &domain.Membership{
		UserID:    p.OwnerID,
		ProjectID: p.ID,
		Role:      domain.RoleOwner,
	})
}

func (f *fakeProjects) GetByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjects) ListByMember(ctx context.Context, userID int64) ([]*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []*domain.Project
	for key, m := range f.members.byKey {
		if m.UserID != userID {
			continue
		}
		if p, ok := f.byID[key.projectID]; ok {
			cp := *p
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func (f *fakeProjects) Update(_ context.Context, p *domain.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Name = p.Name
	stored.Description = p.Description
	stored.UpdatedAt = time.Now()
	p.UpdatedAt = stored.UpdatedAt
	return nil
}

func (f *fakeProjects) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type taskKey struct {
	projectID uuid.UUID
	num       int64
}

type fakeTasks struct {
	mu    sync.Mutex
	byKey map[taskKey]*domain.Task
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{byKey: make(map[taskKey]*domain.Task)}
}

func (f *fakeTasks) Insert(_ context.Context, t *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var max int64
	for key := range f.byKey {
		if key.projectID == t.ProjectID && key.num > max {
			max = key.num
		}
	}
	t.Num = max + 1
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	cp := *t
	f.byKey[taskKey{t.ProjectID, t.Num}] = &cp
	return nil
}

func (f *fakeTasks) ListByProject(_ context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []*domain.Task
	for key, t := range f.byKey {
		if key.projectID == projectID {
			cp := *t
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Num < res[j].Num })
	return res, nil
}

func (f *fakeTasks) Get(_ context.Context, projectID uuid.UUID, num int64) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byKey[taskKey{projectID, num}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTasks) Update(_ context.Context, t *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byKey[taskKey{t.ProjectID, t.Num}]
	if !ok {
		return domain.ErrNotFound
	}
	*stored = *t
	stored.UpdatedAt = time.Now()
	t.UpdatedAt = stored.UpdatedAt
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, projectID uuid.UUID, num int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := taskKey{projectID, num}
	if _, ok := f.byKey[key]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byKey, key)
	return nil
}

type commentKey struct {
	projectID uuid.UUID
	taskNum   int64
	num       int64
}

type fakeComments struct {
	mu    sync.Mutex
	seq   int64
	byKey map[commentKey]*domain.Comment
}

func newFakeComments() *fakeComments {
	return &fakeComments{byKey: make(map[commentKey]*domain.Comment)}
}

func (f *fakeComments) Insert(_ context.Context, c *domain.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var max int64
	for key := range f.byKey {
		if key.projectID == c.ProjectID && key.taskNum == c.TaskNum && key.num > max {
			max = key.num
		}
	}
	c.Num = max + 1
	f.seq++
	// distinct timestamps keep posted_at ordering observable in tests
	c.PostedAt = time.Now().Add(time.Duration(f.seq) * time.Millisecond)
	cp := *c
	f.byKey[commentKey{c.ProjectID, c.TaskNum, c.Num}] = &cp
	return nil
}

func (f *fakeComments) ListByTask(_ context.Context, projectID uuid.UUID, taskNum int64) ([]*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []*domain.Comment
	for key, c := range f.byKey {
		if key.projectID == projectID && key.taskNum == taskNum {
			cp := *c
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].PostedAt.Equal(res[j].PostedAt) {
			return res[i].PostedAt.Before(res[j].PostedAt)
		}
		return res[i].Num < res[j].Num
	})
	return res, nil
}

func (f *fakeComments) Get(_ context.Context, projectID uuid.UUID, taskNum, num int64) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byKey[commentKey{projectID, taskNum, num}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeComments) Delete(_ context.Context, projectID uuid.UUID, taskNum, num int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := commentKey{projectID, taskNum, num}
	if _, ok := f.byKey[key]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byKey, key)
	return nil
}

// testEnv wires all services over shared fakes, mirroring NewHandler.
type testEnv struct {
	users    *fakeUsers
	members  *fakeMembers
	projects *fakeProjects
	tasks    *fakeTasks
	comments *fakeComments

	Auth        *AuthService
	Projects    *ProjectService
	Memberships *MembershipService
	Tasks       *TaskService
	Comments    *CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := newFakeUsers()
	members := newFakeMembers(users)
	projects := newFakeProjects(members)
	tasks := newFakeTasks()
	comments := newFakeComments()

	return &testEnv{
		users:    users,
		members:  members,
		projects: projects,
		tasks:    tasks,
		comments: comments,

		Auth:        NewAuthService(users),
		Projects:    NewProjectService(projects, members),
		Memberships: NewMembershipService(users, projects, members),
		Tasks:       NewTaskService(projects, members, tasks),
		Comments:    NewCommentService(projects, members, tasks, comments),
	}
}

// mkUser registers a user directly against the store, skipping bcrypt for
// speed where the password is irrelevant.
func (e *testEnv) mkUser(t *testing.T, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	if err := e.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func (e *testEnv) mkProject(t *testing.T, owner *domain.User, name string) *domain.Project {
	t.Helper()
	p, err := e.Projects.Create(context.Background(), owner.ID, name, "")
	if err != nil {
		t.Fatalf("create project %s: %v", name, err)
	}
	return p
}
