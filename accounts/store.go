// Package accounts persists completed sign ups in SQLite. Store implements
// wizard.Submitter.
package accounts

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/jskinn96/signup/form"
	"github.com/jskinn96/signup/logging"
	"github.com/jskinn96/signup/wizard"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS accounts (
	id               TEXT PRIMARY KEY,
	username         TEXT NOT NULL UNIQUE,
	email            TEXT NOT NULL,
	password_hash    TEXT NOT NULL,
	phone            TEXT NOT NULL,
	birth_date       TEXT NOT NULL,
	gender           TEXT NOT NULL,
	nickname         TEXT NOT NULL,
	interests        TEXT NOT NULL DEFAULT '',
	facebook         TEXT NOT NULL DEFAULT '',
	instagram        TEXT NOT NULL DEFAULT '',
	github           TEXT NOT NULL DEFAULT '',
	agree_marketing  INTEGER NOT NULL DEFAULT 0,
	created_at       TEXT NOT NULL
);
`

// MsgUsernameTaken is reported when the username already has an account.
const MsgUsernameTaken = "that username is already taken"

// Account is a stored sign up. The password is never read back.
type Account struct {
	ID             string
	Username       string
	Email          string
	Phone          string
	BirthDate      string
	Gender         string
	Nickname       string
	Interests      string
	Facebook       string
	Instagram      string
	GitHub         string
	AgreeMarketing bool
	CreatedAt      time.Time
}

// Store is an SQLite-backed account store.
type Store struct {
	db       *sql.DB
	hashCost int
	now      func() time.Time
	newID    func() string
	logger   logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithHashCost sets the bcrypt cost for password hashes.
func WithHashCost(cost int) Option {
	return func(s *Store) { s.hashCost = cost }
}

// WithClock sets the clock used for created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists. Use ":memory:" for a throwaway store.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening account database %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("creating account schema: %w", err)
	}

	s := &Store{
		db:       db,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
		logger:   logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Submit stores data as a new account. A duplicate username is reported as an
// unsuccessful Response rather than an error.
func (s *Store) Submit(ctx context.Context, data form.FormData) (wizard.Response, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordDigest(data.Password), s.hashCost)
	if err != nil {
		return wizard.Response{}, fmt.Errorf("hashing password: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wizard.Response{}, fmt.Errorf("beginning account insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var existing string
	err = tx.QueryRowContext(ctx, `SELECT id FROM accounts WHERE username = ?`, data.Username).Scan(&existing)
	switch {
	case err == nil:
		s.logger.Info("username taken", map[string]any{"username": data.Username})
		return wizard.Response{Message: MsgUsernameTaken}, nil
	case !errors.Is(err, sql.ErrNoRows):
		return wizard.Response{}, fmt.Errorf("checking username: %w", err)
	}

	id := s.newID()
	_, err = tx.ExecContext(ctx, `
INSERT INTO accounts (id, username, email, password_hash, phone, birth_date, gender, nickname,
	interests, facebook, instagram, github, agree_marketing, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, data.Username, data.Email, string(hash), data.Phone, data.BirthDate, string(data.Gender),
		data.Nickname, data.Interests, data.Facebook, data.Instagram, data.GitHub,
		boolToInt(data.AgreeMarketing), s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return wizard.Response{}, fmt.Errorf("inserting account: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return wizard.Response{}, fmt.Errorf("committing account: %w", err)
	}

	s.logger.Info("account created", map[string]any{"account_id": id, "username": data.Username})
	return wizard.Response{Success: true, AccountID: id}, nil
}

// List returns all accounts ordered by creation time.
func (s *Store) List(ctx context.Context) ([]Account, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, username, email, phone, birth_date, gender, nickname, interests,
	facebook, instagram, github, agree_marketing, created_at
FROM accounts ORDER BY created_at, username`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var (
			a         Account
			marketing int
			created   string
		)
		if err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.Phone, &a.BirthDate, &a.Gender,
			&a.Nickname, &a.Interests, &a.Facebook, &a.Instagram, &a.GitHub, &marketing, &created); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		a.AgreeMarketing = marketing != 0
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			a.CreatedAt = t
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// VerifyPassword reports whether password matches the stored hash for
// username.
func (s *Store) VerifyPassword(ctx context.Context, username, password string) (bool, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, `SELECT password_hash FROM accounts WHERE username = ?`, username).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading password hash: %w", err)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordDigest(password)) == nil, nil
}

// passwordDigest is what bcrypt sees in place of the password. bcrypt rejects
// input over 72 bytes, which a 20-rune Hangul password already exceeds.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
