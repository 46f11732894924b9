package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/R3E-Network/algorithm_service/internal/app/domain/user"
	"github.com/R3E-Network/algorithm_service/internal/app/storage"
)

// Store is an in-memory implementation of the storage interfaces. It is safe
// for concurrent use and is primarily intended for tests and local development.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	users   map[int64]user.User
	byEmail map[string]int64
}

var _ storage.UserStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:  1,
		users:   make(map[int64]user.User),
		byEmail: make(map[string]int64),
	}
}

func (s *Store) CreateUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[u.Email]; taken {
		return user.User{}, fmt.Errorf("%w: email %s", storage.ErrDuplicate, u.Email)
	}

	u.ID = s.nextID
	s.nextID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	s.users[u.ID] = u
	s.byEmail[u.Email] = u.ID
	return u, nil
}

func (s *Store) UpdateUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.users[u.ID]
	if !ok {
		return user.User{}, fmt.Errorf("%w: user %d", storage.ErrNotFound, u.ID)
	}
	if owner, taken := s.byEmail[u.Email]; taken && owner != u.ID {
		return user.User{}, fmt.Errorf("%w: email %s", storage.ErrDuplicate, u.Email)
	}

	u.CreatedAt = original.CreatedAt
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = time.Now().UTC()
	}

	delete(s.byEmail, original.Email)
	s.users[u.ID] = u
	s.byEmail[u.Email] = u.ID
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id int64) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, fmt.Errorf("%w: user %d", storage.ErrNotFound, id)
	}
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return user.User{}, fmt.Errorf("%w: email %s", storage.ErrNotFound, email)
	}
	return s.users[id], nil
}

func (s *Store) ListUsers(_ context.Context) ([]user.User, error) {
	return s.filter(func(user.User) bool { return true }), nil
}

func (s *Store) SearchUsersByName(_ context.Context, fragment string) ([]user.User, error) {
	return s.filter(func(u user.User) bool {
		return strings.Contains(u.Name, fragment)
	}), nil
}

func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("%w: user %d", storage.ErrNotFound, id)
	}
	delete(s.users, id)
	delete(s.byEmail, u.Email)
	return nil
}

func (s *Store) CountUsersByEmail(_ context.Context, email string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.byEmail[email]; ok {
		return 1, nil
	}
	return 0, nil
}

// filter returns matching users ordered by id.
func (s *Store) filter(keep func(user.User) bool) []user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		if keep(u) {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
