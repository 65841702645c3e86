package daily

import (
	"context"
	"database/sql"
	"errors"
)

// ErrBadRating is returned for star ratings outside 1..5.
var ErrBadRating = errors.New("daily: rating must be between 1 and 5")

// Result is one player's completion of a daily puzzle.
type Result struct {
	UserID    string `json:"userId"`
	PackID    string `json:"packId"`
	Index     int    `json:"index"`
	Found     int    `json:"found"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// LBRow is one leaderboard entry.
type LBRow struct {
	UserID    string `json:"userId"`
	Username  string `json:"username,omitempty"`
	Found     int    `json:"found"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// RatingSummary is the average star rating of a puzzle.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Store persists daily results and ratings in SQLite.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyCompleted reports whether userID has a result for the puzzle.
func (s *Store) AlreadyCompleted(ctx context.Context, userID, packID string, index int) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND pack_id=? AND puzzle_index=?`,
		userID, packID, index,
	).Scan(&cnt)
	return cnt > 0, err
}

// RecordCompletion stores r. The first completion wins; later ones are
// ignored. It reports whether a row was inserted.
func (s *Store) RecordCompletion(ctx context.Context, r Result) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, pack_id, puzzle_index, found, elapsed_ms)
		 VALUES(?,?,?,?,?)`, r.UserID, r.PackID, r.Index, r.Found, r.ElapsedMs,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Leaderboard returns the fastest completions for a puzzle.
func (s *Store) Leaderboard(ctx context.Context, packID string, index, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.user_id, COALESCE(u.username, ''), r.found, r.elapsed_ms
		 FROM daily_results r
		 LEFT JOIN users u ON u.id = r.user_id
		 WHERE r.pack_id=? AND r.puzzle_index=?
		 ORDER BY r.elapsed_ms ASC, r.created_at ASC, r.id ASC
		 LIMIT ?`, packID, index, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Username, &r.Found, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Rate records or replaces userID's star rating for a puzzle.
func (s *Store) Rate(ctx context.Context, userID, packID string, index, stars int) error {
	if stars < 1 || stars > 5 {
		return ErrBadRating
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ratings(user_id, pack_id, puzzle_index, stars) VALUES(?,?,?,?)
		 ON CONFLICT(user_id, pack_id, puzzle_index)
		 DO UPDATE SET stars=excluded.stars, updated_at=strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		userID, packID, index, stars,
	)
	return err
}

// Rating returns the average rating of a puzzle; zero when unrated.
func (s *Store) Rating(ctx context.Context, packID string, index int) (RatingSummary, error) {
	var sum RatingSummary
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT AVG(stars), COUNT(1) FROM ratings WHERE pack_id=? AND puzzle_index=?`,
		packID, index,
	).Scan(&avg, &sum.Count)
	if err != nil {
		return sum, err
	}
	sum.Average = avg.Float64
	return sum, nil
}
