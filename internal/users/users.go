// internal/users/users.go
//
// Account storage: signup validation, bcrypt password hashes and per-user
// solve counters, backed by the users table.
package users

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username taken")
	ErrBadUsername   = errors.New("username must be 3-24 letters, numbers or underscores")
	ErrBadPassword   = errors.New("password must be 8-100 chars")
	ErrWrongPassword = errors.New("invalid username or password")
)

type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	PuzzlesSolved int       `json:"puzzlesSolved"`
	WordsFound    int       `json:"wordsFound"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func normalizeUsername(u string) string { return strings.TrimSpace(u) }

// Validate checks signup input.
func Validate(username, password string) error {
	if len(username) < 3 || len(username) > 24 {
		return ErrBadUsername
	}
	for _, r := range username {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ErrBadUsername
		}
	}
	if len(password) < 8 || len(password) > 100 {
		return ErrBadPassword
	}
	return nil
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Create registers a new account.
func (s *Store) Create(ctx context.Context, username, password string) (*User, error) {
	username = normalizeUsername(username)
	if err := Validate(username, password); err != nil {
		return nil, err
	}
	if _, err := s.ByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	h, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:           NewID(),
		Username:     username,
		PasswordHash: h,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate returns the user when password matches.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.ByUsername(ctx, normalizeUsername(username))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrWrongPassword
	}
	if err != nil {
		return nil, err
	}
	if !checkPassword(u.PasswordHash, password) {
		return nil, ErrWrongPassword
	}
	return u, nil
}

func (s *Store) ByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, puzzles_solved, words_found
	                    FROM users WHERE lower(username)=lower(?)`, username)
	return scanUser(row)
}

func (s *Store) ByID(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, puzzles_solved, words_found
	                    FROM users WHERE id=?`, id)
	return scanUser(row)
}

// RecordSolve bumps the solve counters of a registered user. Unknown ids
// (anonymous players) are ignored.
func (s *Store) RecordSolve(ctx context.Context, id string, words int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET puzzles_solved = puzzles_solved + 1, words_found = words_found + ? WHERE id=?`,
		words, id)
	return err
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created, &u.PuzzlesSolved, &u.WordsFound); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

// NewID returns a random 16-hex-char identifier.
func NewID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
