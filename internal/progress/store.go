// internal/progress/store.go
//
// Persistence for user progress.
// Responsibilities:
//   - Store interface consumed by the HTTP layer.
//   - SQLite-backed implementation over the users/user_progress/completions
//     schema (see sql/001_init.sql).
//
// Concurrency:
//   - Completion writes are "read, compute, write"; two devices racing on
//     the same user would otherwise lose updates. WriteCompletion is a
//     conditional update keyed on the version read alongside the snapshot
//     and returns ErrVersionConflict so callers can re-read and recompute.

package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wordchain/go-server/internal/game"
)

var (
	// ErrNotFound is returned by Read for users with no progress row.
	ErrNotFound = errors.New("progress: not found")
	// ErrVersionConflict is returned by WriteCompletion when the stored
	// version no longer matches the one the snapshot was read at.
	ErrVersionConflict = errors.New("progress: version conflict")
)

// Store defines the persistence boundary for user progress.
// Implementations may be backed by SQLite (this package) or memory.
type Store interface {
	// Read returns the user's progress and the version it was read at.
	Read(ctx context.Context, userID string) (game.Progress, int64, error)

	// Create inserts the initial progress row for a new user.
	Create(ctx context.Context, userID string, initial game.Progress) error

	// WriteCompletion persists the updated progress plus the completion
	// row for (dayKey, tier, points), iff the stored version still equals
	// expectedVersion.
	WriteCompletion(ctx context.Context, userID, dayKey, tier string, points int, updated game.Progress, expectedVersion int64) error
}

// sqliteStore implements Store over *sql.DB.
type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an opened, migrated database handle.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Read(ctx context.Context, userID string) (game.Progress, int64, error) {
	p := game.NewProgress()
	var version int64
	var last sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT current_streak, longest_streak, last_played_date, total_score, version
		 FROM user_progress WHERE user_id=?`, userID,
	).Scan(&p.CurrentStreak, &p.LongestStreak, &last, &p.TotalScore, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Progress{}, 0, ErrNotFound
	}
	if err != nil {
		return game.Progress{}, 0, fmt.Errorf("read progress: %w", err)
	}
	p.LastPlayedDate = last.String

	rows, err := s.db.QueryContext(ctx,
		`SELECT day, tier, points FROM completions WHERE user_id=?`, userID)
	if err != nil {
		return game.Progress{}, 0, fmt.Errorf("read completions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var day, tier string
		var points int
		if err := rows.Scan(&day, &tier, &points); err != nil {
			return game.Progress{}, 0, fmt.Errorf("scan completion: %w", err)
		}
		rec := p.CompletedDays[day]
		if rec.Tiers == nil {
			rec.Tiers = map[string]bool{}
		}
		rec.Tiers[tier] = true
		rec.Score += points
		p.CompletedDays[day] = rec
	}
	if err := rows.Err(); err != nil {
		return game.Progress{}, 0, fmt.Errorf("read completions: %w", err)
	}
	return p, version, nil
}

func (s *sqliteStore) Create(ctx context.Context, userID string, initial game.Progress) error {
	var last any
	if initial.LastPlayedDate != "" {
		last = initial.LastPlayedDate
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_progress (user_id, current_streak, longest_streak, last_played_date, total_score, version)
		 VALUES (?,?,?,?,?,1)`,
		userID, initial.CurrentStreak, initial.LongestStreak, last, initial.TotalScore)
	if err != nil {
		return fmt.Errorf("create progress: %w", err)
	}
	return nil
}

func (s *sqliteStore) WriteCompletion(ctx context.Context, userID, dayKey, tier string, points int, updated game.Progress, expectedVersion int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE user_progress
		 SET current_streak=?, longest_streak=?, last_played_date=?, total_score=?, version=version+1
		 WHERE user_id=? AND version=?`,
		updated.CurrentStreak, updated.LongestStreak, updated.LastPlayedDate,
		updated.TotalScore, userID, expectedVersion)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	if n == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM user_progress WHERE user_id=?`, userID).Scan(&exists); errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return ErrVersionConflict
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO completions (user_id, day, tier, points) VALUES (?,?,?,?)`,
		userID, dayKey, tier, points); err != nil {
		return fmt.Errorf("insert completion: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
