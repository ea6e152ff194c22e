package progress

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordchain/go-server/internal/game"
)

// openTestDB creates an in-memory SQLite database with the real schema
// and a user row for the store to hang progress off.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile("../../sql/001_init.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO users (id, username, password_hash, created_at)
	                  VALUES ('u1', 'tester', 'x', '2026-03-01T00:00:00Z')`)
	require.NoError(t, err)
	return db
}

// Both implementations must satisfy the same contract.
func TestStoreContract(t *testing.T) {
	impls := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"sqlite": func(t *testing.T) Store { return NewSQLiteStore(openTestDB(t)) },
	}

	for name, build := range impls {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := build(t)

			// Unknown user.
			_, _, err := st.Read(ctx, "u1")
			assert.ErrorIs(t, err, ErrNotFound)
			err = st.WriteCompletion(ctx, "u1", "2026-03-02", "easy", 1, game.NewProgress(), 1)
			assert.ErrorIs(t, err, ErrNotFound)

			// Create, then read the zero state back at version 1.
			require.NoError(t, st.Create(ctx, "u1", game.NewProgress()))
			p, ver, err := st.Read(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, int64(1), ver)
			assert.Zero(t, p.CurrentStreak)
			assert.Empty(t, p.LastPlayedDate)
			assert.Empty(t, p.CompletedDays)

			// Write a completion at the read version.
			updated, _ := game.ComputeCompletion(p, "easy", 1, "2026-03-02", "2026-03-01")
			require.NoError(t, st.WriteCompletion(ctx, "u1", "2026-03-02", "easy", 1, updated, ver))

			p2, ver2, err := st.Read(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, ver+1, ver2)
			assert.Equal(t, 1, p2.CurrentStreak)
			assert.Equal(t, "2026-03-02", p2.LastPlayedDate)
			assert.Equal(t, 1, p2.TotalScore)
			assert.True(t, p2.Completed("2026-03-02", "easy"))
			assert.Equal(t, 1, p2.DayScore("2026-03-02"))

			// A write against the stale version must conflict.
			stale, _ := game.ComputeCompletion(p, "medium", 2, "2026-03-02", "2026-03-01")
			err = st.WriteCompletion(ctx, "u1", "2026-03-02", "medium", 2, stale, ver)
			assert.ErrorIs(t, err, ErrVersionConflict)

			// Re-read and retry succeeds: the spec's read/compute/write loop.
			fresh, freshVer, err := st.Read(ctx, "u1")
			require.NoError(t, err)
			retry, _ := game.ComputeCompletion(fresh, "medium", 2, "2026-03-02", "2026-03-01")
			require.NoError(t, st.WriteCompletion(ctx, "u1", "2026-03-02", "medium", 2, retry, freshVer))

			final, _, err := st.Read(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, 3, final.TotalScore)
			assert.Equal(t, 3, final.DayScore("2026-03-02"))
			assert.True(t, final.Completed("2026-03-02", "medium"))
			// Streak moved only once for the day.
			assert.Equal(t, 1, final.CurrentStreak)
		})
	}
}

func TestMemoryReadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	require.NoError(t, st.Create(ctx, "u1", game.NewProgress()))

	p, _, err := st.Read(ctx, "u1")
	require.NoError(t, err)
	p.CompletedDays["2026-03-02"] = game.DayRecord{Score: 99}

	again, _, err := st.Read(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, again.CompletedDays)
}
