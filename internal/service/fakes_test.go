package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/events"
	"github.com/BetulAktoprak/task-management-system/internal/store"
)

// memDB is an in-memory stand-in for the PostgreSQL schema shared by the
// fake stores below.
type memDB struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]domain.User
	projects map[int64]domain.Project
	tasks    map[int64]domain.Task
}

func newMemDB() *memDB {
	return &memDB{
		users:    make(map[int64]domain.User),
		projects: make(map[int64]domain.Project),
		tasks:    make(map[int64]domain.Task),
	}
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memDB) addUser(name string, role domain.Role) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.users[id] = domain.User{ID: id, Name: name, Email: name + "@example.com", Role: role}
	return id
}

func (m *memDB) addProject(name string, createdBy int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.projects[id] = domain.Project{ID: id, Name: name, CreatedBy: createdBy}
	return id
}

type fakeUserStore struct{ db *memDB }

func (s fakeUserStore) Create(_ context.Context, user *domain.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	user.ID = s.db.id()
	s.db.users[user.ID] = *user
	return nil
}

func (s fakeUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

func (s fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s fakeUserStore) List(_ context.Context) ([]domain.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	users := make([]domain.User, 0, len(s.db.users))
	for _, u := range s.db.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (s fakeUserStore) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	u.Role = role
	s.db.users[id] = u
	return nil
}

func (s fakeUserStore) WithTx(*sql.Tx) store.UserStore { return s }

type fakeProjectStore struct{ db *memDB }

func (s fakeProjectStore) Create(_ context.Context, p *domain.Project) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p.ID = s.db.id()
	s.db.projects[p.ID] = *p
	return nil
}

func (s fakeProjectStore) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.projects[id]
	if !ok {
		return nil, store.ErrProjectNotFound
	}
	if u, ok := s.db.users[p.CreatedBy]; ok {
		p.CreatorName = u.Name
	}
	return &p, nil
}

func (s fakeProjectStore) List(_ context.Context) ([]domain.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	projects := make([]domain.Project, 0, len(s.db.projects))
	for _, p := range s.db.projects {
		projects = append(projects, p)
	}
	return projects, nil
}

func (s fakeProjectStore) Update(_ context.Context, p *domain.Project) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.projects[p.ID]; !ok {
		return store.ErrProjectNotFound
	}
	s.db.projects[p.ID] = *p
	return nil
}

func (s fakeProjectStore) WithTx(*sql.Tx) store.ProjectStore { return s }

type fakeTaskStore struct{ db *memDB }

func (s fakeTaskStore) Create(_ context.Context, t *domain.Task) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t.ID = s.db.id()
	s.db.tasks[t.ID] = *t
	return nil
}

func (s fakeTaskStore) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &t, nil
}

func (s fakeTaskStore) Update(_ context.Context, t *domain.Task) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.tasks[t.ID]; !ok {
		return store.ErrTaskNotFound
	}
	s.db.tasks[t.ID] = *t
	return nil
}

func (s fakeTaskStore) SetAssignee(_ context.Context, taskID int64, userID *int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tasks[taskID]
	if !ok {
		return store.ErrTaskNotFound
	}
	t.AssignedUserID = userID
	s.db.tasks[taskID] = t
	return nil
}

func (s fakeTaskStore) snapshot(t domain.Task) domain.TaskSnapshot {
	snap := domain.TaskSnapshot{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		ProjectID:      t.ProjectID,
		ProjectName:    s.db.projects[t.ProjectID].Name,
		AssignedUserID: t.AssignedUserID,
	}
	if t.AssignedUserID != nil {
		if u, ok := s.db.users[*t.AssignedUserID]; ok {
			name := u.Name
			snap.AssignedUserName = &name
		}
	}
	return snap
}

func (s fakeTaskStore) GetSnapshot(_ context.Context, id int64) (*domain.TaskSnapshot, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	snap := s.snapshot(t)
	return &snap, nil
}

func (s fakeTaskStore) ListSnapshots(_ context.Context) ([]domain.TaskSnapshot, error) {
	return s.list(func(domain.Task) bool { return true }), nil
}

func (s fakeTaskStore) ListSnapshotsByProject(_ context.Context, projectID int64) ([]domain.TaskSnapshot, error) {
	return s.list(func(t domain.Task) bool { return t.ProjectID == projectID }), nil
}

func (s fakeTaskStore) list(keep func(domain.Task) bool) []domain.TaskSnapshot {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]domain.TaskSnapshot, 0)
	for _, t := range s.db.tasks {
		if keep(t) {
			out = append(out, s.snapshot(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s fakeTaskStore) WithTx(*sql.Tx) store.TaskStore { return s }

// fakeTransactor runs fn directly, or fails before running it when err is set.
type fakeTransactor struct {
	err error
}

func (f fakeTransactor) WithinTx(ctx context.Context, fn store.TxFn) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx, nil)
}

var errTxDown = errors.New("database unavailable")

type publishedEvent struct {
	Name    events.Name
	Payload domain.TaskSnapshot
}

// recordingPublisher collects every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (r *recordingPublisher) Publish(_ context.Context, name events.Name, payload domain.TaskSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, publishedEvent{Name: name, Payload: payload})
}

func (r *recordingPublisher) names() []events.Name {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]events.Name, 0, len(r.events))
	for _, e := range r.events {
		names = append(names, e.Name)
	}
	return names
}

type fakeStatsStore struct {
	db  *memDB
	err error
}

func (s fakeStatsStore) DashboardCounts(context.Context) (domain.DashboardCounts, error) {
	if s.err != nil {
		return domain.DashboardCounts{}, s.err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c := domain.DashboardCounts{Projects: len(s.db.projects), Tasks: len(s.db.tasks)}
	for _, t := range s.db.tasks {
		if t.Status == domain.TaskStatusDone {
			c.DoneTasks++
		}
	}
	return c, nil
}
