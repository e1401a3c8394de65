package repository

import (
	"context"
	"errors"

	"todoboard/internal/domain"
)

// ErrNotFound is returned by lookups that match no row. Callers rely on it to
// tell an absent record apart from a storage fault.
var ErrNotFound = errors.New("record not found")

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
