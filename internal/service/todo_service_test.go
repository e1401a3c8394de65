package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoboard/internal/domain"
	"todoboard/internal/repository"
)

type fakeUserRepo struct {
	users       map[string]domain.User
	order       []string
	createCalls int
	createErr   error
	getErr      error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (f *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	user.CreatedAt = time.Now().UTC()
	f.users[user.ID] = *user
	f.order = append(f.order, user.ID)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(f.order))
	for _, id := range f.order {
		users = append(users, f.users[id])
	}
	return users, nil
}

type fakeTodoRepo struct {
	todos     []domain.Todo
	nextID    int64
	createErr error
}

func (f *fakeTodoRepo) Init(ctx context.Context) error { return nil }

func (f *fakeTodoRepo) Create(ctx context.Context, todo *domain.Todo) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	todo.ID = f.nextID
	todo.CreatedAt = time.Now().UTC()
	f.todos = append(f.todos, *todo)
	return todo.ID, nil
}

func (f *fakeTodoRepo) ListWithUsers(ctx context.Context) ([]domain.Todo, error) {
	return f.todos, nil
}

func newTestService(t *testing.T) (TodoService, *fakeTodoRepo, *fakeUserRepo) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	todos := &fakeTodoRepo{}
	users := newFakeUserRepo()
	return NewTodoService(todos, users, logger), todos, users
}

func TestCreateTodoProvisionsUnknownUser(t *testing.T) {
	svc, todos, users := newTestService(t)

	todo, err := svc.CreateTodo(context.Background(), "buy milk", "u1")
	require.NoError(t, err)

	assert.Equal(t, "buy milk", todo.Task)
	assert.Equal(t, "u1", todo.UserID)
	require.Len(t, todos.todos, 1)

	require.Equal(t, 1, users.createCalls)
	user, err := users.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "user_u1", user.Username)
	assert.Equal(t, "default_password", user.Password)
}

func TestCreateTodoExistingUserNotRecreated(t *testing.T) {
	svc, todos, users := newTestService(t)
	require.NoError(t, users.Create(context.Background(), &domain.User{ID: "u1", Username: "sam", Password: "pw"}))
	users.createCalls = 0

	_, err := svc.CreateTodo(context.Background(), "buy milk", "u1")
	require.NoError(t, err)

	assert.Equal(t, 0, users.createCalls)
	assert.Len(t, todos.todos, 1)

	user, err := users.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "sam", user.Username)
}

func TestCreateTodoProvisioningTruncatesLongIDs(t *testing.T) {
	svc, _, users := newTestService(t)

	_, err := svc.CreateTodo(context.Background(), "buy milk", "0123456789abcdef")
	require.NoError(t, err)

	user, err := users.GetByID(context.Background(), "0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, "user_01234567", user.Username)
}

func TestCreateTodoValidation(t *testing.T) {
	tests := []struct {
		name   string
		task   string
		userID string
	}{
		{name: "empty task", task: "", userID: "u1"},
		{name: "empty userId", task: "buy milk", userID: ""},
		{name: "both empty", task: "", userID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, todos, users := newTestService(t)

			_, err := svc.CreateTodo(context.Background(), tt.task, tt.userID)
			require.ErrorIs(t, err, ErrMissingTodoFields)

			assert.Empty(t, todos.todos)
			assert.Equal(t, 0, users.createCalls)
		})
	}
}

func TestCreateTodoStorageFaultSurfaces(t *testing.T) {
	svc, todos, users := newTestService(t)
	users.getErr = errors.New("db down")

	_, err := svc.CreateTodo(context.Background(), "buy milk", "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingTodoFields)
	assert.Empty(t, todos.todos)
}

func TestCreateUser(t *testing.T) {
	svc, _, users := newTestService(t)

	user, err := svc.CreateUser(context.Background(), "sam", "secret")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "sam", user.Username)
	assert.Equal(t, "secret", user.Password)
	assert.Equal(t, 1, users.createCalls)
}

func TestCreateUserDuplicatesAllowed(t *testing.T) {
	svc, _, users := newTestService(t)

	first, err := svc.CreateUser(context.Background(), "sam", "secret")
	require.NoError(t, err)
	second, err := svc.CreateUser(context.Background(), "sam", "secret")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	list, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "secret"},
		{name: "empty password", username: "sam", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, users := newTestService(t)

			_, err := svc.CreateUser(context.Background(), tt.username, tt.password)
			require.ErrorIs(t, err, ErrMissingUserFields)
			assert.Equal(t, 0, users.createCalls)
		})
	}
}

func TestListTodosReturnsJoinedRecords(t *testing.T) {
	svc, _, _ := newTestService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateTodo(context.Background(), "task", "u1")
		require.NoError(t, err)
	}

	todos, err := svc.ListTodos(context.Background())
	require.NoError(t, err)
	assert.Len(t, todos, 3)
}
