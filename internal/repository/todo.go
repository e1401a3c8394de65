package repository

import (
	"context"

	"todoboard/internal/domain"
)

// TodoRepository exposes persistence operations for Todo records.
type TodoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, todo *domain.Todo) (int64, error)
	ListWithUsers(ctx context.Context) ([]domain.Todo, error)
}
