package api

import (
	"context"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/service"
	"github.com/BetulAktoprak/task-management-system/internal/service/auth"
)

type fakeUserService struct {
	RegisterFn   func(ctx context.Context, name, email, password string) (*auth.Credential, error)
	LoginFn      func(ctx context.Context, email, password string) (*auth.Credential, error)
	GetUserFn    func(ctx context.Context, id int64) (*domain.User, error)
	ListUsersFn  func(ctx context.Context) ([]domain.User, error)
	ChangeRoleFn func(ctx context.Context, id int64, role domain.Role) (*domain.User, error)
}

var _ service.UserService = (*fakeUserService)(nil)

func (f *fakeUserService) Register(ctx context.Context, name, email, password string) (*auth.Credential, error) {
	return f.RegisterFn(ctx, name, email, password)
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (*auth.Credential, error) {
	return f.LoginFn(ctx, email, password)
}

func (f *fakeUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return f.GetUserFn(ctx, id)
}

func (f *fakeUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return f.ListUsersFn(ctx)
}

func (f *fakeUserService) ChangeRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	return f.ChangeRoleFn(ctx, id, role)
}

type fakeProjectService struct {
	ListFn   func(ctx context.Context) ([]domain.Project, error)
	GetFn    func(ctx context.Context, id int64) (*domain.Project, error)
	CreateFn func(ctx context.Context, createdBy int64, name string, description *string) (*domain.Project, error)
	UpdateFn func(ctx context.Context, id int64, name string, description *string) (*domain.Project, error)
}

var _ service.ProjectService = (*fakeProjectService)(nil)

func (f *fakeProjectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return f.ListFn(ctx)
}

func (f *fakeProjectService) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	return f.GetFn(ctx, id)
}

func (f *fakeProjectService) CreateProject(
	ctx context.Context,
	createdBy int64,
	name string,
	description *string,
) (*domain.Project, error) {
	return f.CreateFn(ctx, createdBy, name, description)
}

func (f *fakeProjectService) UpdateProject(
	ctx context.Context,
	id int64,
	name string,
	description *string,
) (*domain.Project, error) {
	return f.UpdateFn(ctx, id, name, description)
}

type fakeTaskService struct {
	ListFn          func(ctx context.Context) ([]domain.TaskSnapshot, error)
	ListByProjectFn func(ctx context.Context, projectID int64) ([]domain.TaskSnapshot, error)
	GetFn           func(ctx context.Context, id int64) (*domain.TaskSnapshot, error)
	CreateFn        func(ctx context.Context, in service.CreateTaskInput) (*domain.TaskSnapshot, error)
	UpdateFn        func(ctx context.Context, id int64, in service.UpdateTaskInput) (*domain.TaskSnapshot, error)
	AssignFn        func(ctx context.Context, id int64, userID *int64) (*domain.TaskSnapshot, error)
}

var _ service.TaskService = (*fakeTaskService)(nil)

func (f *fakeTaskService) ListTasks(ctx context.Context) ([]domain.TaskSnapshot, error) {
	return f.ListFn(ctx)
}

func (f *fakeTaskService) ListProjectTasks(ctx context.Context, projectID int64) ([]domain.TaskSnapshot, error) {
	return f.ListByProjectFn(ctx, projectID)
}

func (f *fakeTaskService) GetTask(ctx context.Context, id int64) (*domain.TaskSnapshot, error) {
	return f.GetFn(ctx, id)
}

func (f *fakeTaskService) CreateTask(ctx context.Context, in service.CreateTaskInput) (*domain.TaskSnapshot, error) {
	return f.CreateFn(ctx, in)
}

func (f *fakeTaskService) UpdateTask(
	ctx context.Context,
	id int64,
	in service.UpdateTaskInput,
) (*domain.TaskSnapshot, error) {
	return f.UpdateFn(ctx, id, in)
}

func (f *fakeTaskService) AssignTask(ctx context.Context, id int64, userID *int64) (*domain.TaskSnapshot, error) {
	return f.AssignFn(ctx, id, userID)
}

type fakeDashboardService struct {
	StatsFn func(ctx context.Context) (*domain.DashboardStats, error)
}

var _ service.DashboardService = (*fakeDashboardService)(nil)

func (f *fakeDashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	return f.StatsFn(ctx)
}
