// Package users implements the user directory: CRUD plus lookups by email and
// name, with email uniqueness enforced before writes reach the store.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/R3E-Network/algorithm_service/internal/app/domain/user"
	"github.com/R3E-Network/algorithm_service/internal/app/storage"
	"github.com/R3E-Network/algorithm_service/internal/logging"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("users: user not found")
	// ErrEmailConflict is returned when another user already owns the email.
	ErrEmailConflict = errors.New("users: email already in use")
)

// Service manages user records.
type Service struct {
	store storage.UserStore
	log   logrus.FieldLogger
	now   func() time.Time
}

// New constructs a user service.
func New(store storage.UserStore, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logging.NewDiscard()
	}
	return &Service{
		store: store,
		log:   log.WithField("component", "users"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// List returns every user ordered by id.
func (s *Service) List(ctx context.Context) ([]user.User, error) {
	all, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, translate(err, "list")
	}
	return all, nil
}

// Get returns the user with id.
func (s *Service) Get(ctx context.Context, id int64) (user.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return user.User{}, translate(err, fmt.Sprintf("id %d", id))
	}
	return u, nil
}

// GetByEmail returns the user registered with email.
func (s *Service) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return user.User{}, translate(err, "email "+email)
	}
	return u, nil
}

// SearchByName returns users whose name contains fragment.
func (s *Service) SearchByName(ctx context.Context, fragment string) ([]user.User, error) {
	found, err := s.store.SearchUsersByName(ctx, fragment)
	if err != nil {
		return nil, translate(err, "search")
	}
	return found, nil
}

// Create registers a new user. Client supplied id and timestamps are ignored.
func (s *Service) Create(ctx context.Context, u user.User) (user.User, error) {
	if err := s.ensureEmailFree(ctx, u.Email); err != nil {
		return user.User{}, err
	}

	now := s.now()
	u.ID = 0
	u.CreatedAt = now
	u.UpdatedAt = now

	created, err := s.store.CreateUser(ctx, u)
	if err != nil {
		return user.User{}, translate(err, "email "+u.Email)
	}
	s.log.WithField("user_id", created.ID).Info("user created")
	return created, nil
}

// Update copies name and email from details onto the user with id.
func (s *Service) Update(ctx context.Context, id int64, details user.User) (user.User, error) {
	existing, err := s.store.GetUser(ctx, id)
	if err != nil {
		return user.User{}, translate(err, fmt.Sprintf("id %d", id))
	}

	if details.Email != existing.Email {
		if err := s.ensureEmailFree(ctx, details.Email); err != nil {
			return user.User{}, err
		}
	}

	existing.Name = details.Name
	existing.Email = details.Email
	existing.UpdatedAt = s.now()

	updated, err := s.store.UpdateUser(ctx, existing)
	if err != nil {
		return user.User{}, translate(err, fmt.Sprintf("id %d", id))
	}
	s.log.WithField("user_id", id).Info("user updated")
	return updated, nil
}

// Delete removes the user with id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return translate(err, fmt.Sprintf("id %d", id))
	}
	s.log.WithField("user_id", id).Info("user deleted")
	return nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string) error {
	n, err := s.store.CountUsersByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("users: count email: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %s", ErrEmailConflict, email)
	}
	return nil
}

// translate maps store sentinels onto the service's own.
func translate(err error, subject string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, subject)
	case errors.Is(err, storage.ErrDuplicate):
		// A concurrent writer claimed the email between check and insert.
		return fmt.Errorf("%w: %s", ErrEmailConflict, subject)
	default:
		return fmt.Errorf("users: %s: %w", subject, err)
	}
}
