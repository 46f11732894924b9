// Package sqlstore implements the storage interfaces on top of a SQL database.
// PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite) are supported; queries
// are written with '?' placeholders and rebound for the active driver.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/R3E-Network/algorithm_service/internal/app/domain/user"
	"github.com/R3E-Network/algorithm_service/internal/app/storage"
)

const selectUsers = `SELECT id, name, email, created_at, updated_at FROM users`

// Options configures Open.
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store implements storage.UserStore backed by a SQL database.
type Store struct {
	db *sqlx.DB
}

var _ storage.UserStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects to the database described by opts and verifies it is reachable.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Driver == "" {
		return nil, fmt.Errorf("database driver not configured")
	}
	if opts.DSN == "" {
		return nil, fmt.Errorf("database dsn not configured")
	}

	db, err := sqlx.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}

	if opts.Driver == "sqlite" {
		// SQLite serialises writers; a single connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	return New(db), nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- UserStore --------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	query := s.db.Rebind(`
		INSERT INTO users (name, email, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)
	if err := s.db.QueryRowxContext(ctx, query, u.Name, u.Email, u.CreatedAt, u.UpdatedAt).Scan(&u.ID); err != nil {
		return user.User{}, translate(err)
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u user.User) (user.User, error) {
	existing, err := s.GetUser(ctx, u.ID)
	if err != nil {
		return user.User{}, err
	}

	u.CreatedAt = existing.CreatedAt
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE users
		SET name = ?, email = ?, updated_at = ?
		WHERE id = ?
	`), u.Name, u.Email, u.UpdatedAt, u.ID)
	if err != nil {
		return user.User{}, translate(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return user.User{}, fmt.Errorf("%w: user %d", storage.ErrNotFound, u.ID)
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (user.User, error) {
	var u user.User
	if err := s.db.GetContext(ctx, &u, s.db.Rebind(selectUsers+` WHERE id = ?`), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, fmt.Errorf("%w: user %d", storage.ErrNotFound, id)
		}
		return user.User{}, err
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	if err := s.db.GetContext(ctx, &u, s.db.Rebind(selectUsers+` WHERE email = ?`), email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, fmt.Errorf("%w: email %s", storage.ErrNotFound, email)
		}
		return user.User{}, err
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]user.User, error) {
	result := make([]user.User, 0)
	if err := s.db.SelectContext(ctx, &result, selectUsers+` ORDER BY id`); err != nil {
		return nil, err
	}
	return result, nil
}

// SearchUsersByName matches fragment as a case-sensitive substring.
func (s *Store) SearchUsersByName(ctx context.Context, fragment string) ([]user.User, error) {
	position := "strpos(name, ?)"
	if s.db.DriverName() == "sqlite" {
		position = "instr(name, ?)"
	}

	result := make([]user.User, 0)
	query := s.db.Rebind(selectUsers + ` WHERE ` + position + ` > 0 ORDER BY id`)
	if err := s.db.SelectContext(ctx, &result, query, fragment); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: user %d", storage.ErrNotFound, id)
	}
	return nil
}

func (s *Store) CountUsersByEmail(ctx context.Context, email string) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, s.db.Rebind(`SELECT COUNT(*) FROM users WHERE email = ?`), email); err != nil {
		return 0, err
	}
	return n, nil
}

// translate maps driver-specific unique violations onto storage.ErrDuplicate.
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", storage.ErrDuplicate, pqErr.Message)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE")) {
			return fmt.Errorf("%w: %s", storage.ErrDuplicate, liteErr.Error())
		}
	}
	return err
}
