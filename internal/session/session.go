// Package session persists the admin login between runs in a small
// sqlite file, handed to whoever guards the admin surface.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoSession reports that nobody is logged in.
var ErrNoSession = errors.New("no active admin session")

// Session is the process-wide admin state: set on login, read on every
// protected entry, cleared on logout.
type Session struct {
	Username  string
	LoginTime time.Time
}

// Store is a sqlite-backed single-row session store.
type Store struct {
	db *sql.DB
}

// Open opens (and initializes) the session database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS admin_session (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        username TEXT NOT NULL,
        login_time TEXT NOT NULL
    )`)
	return err
}

// Save records a fresh login, replacing any previous session.
func (s *Store) Save(ctx context.Context, sess Session) error {
	if sess.LoginTime.IsZero() {
		sess.LoginTime = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO admin_session (id, username, login_time)
        VALUES (1, ?, ?)
        ON CONFLICT(id) DO UPDATE SET username=excluded.username, login_time=excluded.login_time`,
		sess.Username, sess.LoginTime.UTC().Format(time.RFC3339))
	return err
}

// Current returns the active session or ErrNoSession.
func (s *Store) Current(ctx context.Context) (Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT username, login_time FROM admin_session WHERE id = 1`)
	var username, loginTime string
	if err := row.Scan(&username, &loginTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNoSession
		}
		return Session{}, err
	}
	t, err := time.Parse(time.RFC3339, loginTime)
	if err != nil {
		t = time.Time{}
	}
	return Session{Username: username, LoginTime: t}, nil
}

// Clear logs the admin out.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_session WHERE id = 1`)
	return err
}
