package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"todoboard/internal/domain"
	"todoboard/internal/repository"
)

// Placeholder identity given to users provisioned on first reference.
const (
	placeholderUsernamePrefix = "user_"
	placeholderPassword       = "default_password"
)

var (
	// ErrMissingTodoFields is returned when a todo create lacks a task or owner.
	ErrMissingTodoFields = errors.New("task and userId are required")
	// ErrMissingUserFields is returned when a user create lacks credentials.
	ErrMissingUserFields = errors.New("username and password are required")
)

// TodoService executes todo commands against the repositories. It holds no
// state of its own; every call performs its own storage reads and writes.
type TodoService interface {
	ListTodos(ctx context.Context) ([]domain.Todo, error)
	CreateTodo(ctx context.Context, task, userID string) (*domain.Todo, error)
	CreateUser(ctx context.Context, username, password string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type todoService struct {
	todos  repository.TodoRepository
	users  repository.UserRepository
	logger *logrus.Logger
}

func NewTodoService(todos repository.TodoRepository, users repository.UserRepository, logger *logrus.Logger) TodoService {
	return &todoService{
		todos:  todos,
		users:  users,
		logger: logger,
	}
}

func (s *todoService) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	return s.todos.ListWithUsers(ctx)
}

// CreateTodo stores a todo for the given owner. An owner id that matches no
// user provisions one with placeholder credentials, so clients can create
// todos without a prior signup. A second create for the same id finds the
// provisioned user and skips the step.
func (s *todoService) CreateTodo(ctx context.Context, task, userID string) (*domain.Todo, error) {
	if task == "" || userID == "" {
		return nil, ErrMissingTodoFields
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		user := &domain.User{
			ID:       userID,
			Username: placeholderUsername(userID),
			Password: placeholderPassword,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("provision user %s: %w", userID, err)
		}
		s.logger.Infof("provisioned user %s (%s)", user.ID, user.Username)
	}

	todo := &domain.Todo{
		Task:   task,
		UserID: userID,
	}
	if _, err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// CreateUser stores a user with a fresh id. Usernames are not unique;
// repeated creates with identical credentials yield distinct records.
func (s *todoService) CreateUser(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingUserFields
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: password,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *todoService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func placeholderUsername(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return placeholderUsernamePrefix + id
}
