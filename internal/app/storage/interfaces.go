package storage

import (
	"context"
	"errors"

	"github.com/R3E-Network/algorithm_service/internal/app/domain/user"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("storage: record not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("storage: duplicate record")
)

// UserStore persists user records.
type UserStore interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	UpdateUser(ctx context.Context, u user.User) (user.User, error)
	GetUser(ctx context.Context, id int64) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
	SearchUsersByName(ctx context.Context, fragment string) ([]user.User, error)
	DeleteUser(ctx context.Context, id int64) error
	CountUsersByEmail(ctx context.Context, email string) (int, error)
}
