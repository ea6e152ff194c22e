// internal/game/types.go
//
// Core type definitions for the chain validation engine.
// Defines:
//   - Verdict: result of checking a submitted chain against a tier.
//   - DayRecord / Progress: a user's per-day completions and counters.

package game

// Verdict is the outcome of validating a submitted chain.
// Slots has one entry per expected answer word so callers can highlight
// exactly which positions were wrong instead of rejecting the whole
// submission opaquely.
type Verdict struct {
	Correct bool   `json:"correct"`
	Slots   []bool `json:"slots"`
}

// DayRecord is a single day's completion state: which tiers were solved
// and the points earned that day.
type DayRecord struct {
	Tiers map[string]bool `json:"tiers"`
	Score int             `json:"score"`
}

// Progress is a user's cumulative game state. LastPlayedDate is a
// "YYYY-MM-DD" day key, empty if the user has never played.
type Progress struct {
	CurrentStreak  int                  `json:"currentStreak"`
	LongestStreak  int                  `json:"longestStreak"`
	LastPlayedDate string               `json:"lastPlayedDate,omitempty"`
	TotalScore     int                  `json:"totalScore"`
	CompletedDays  map[string]DayRecord `json:"completedDays"`
}

// NewProgress returns the zero state for a freshly created user.
func NewProgress() Progress {
	return Progress{CompletedDays: map[string]DayRecord{}}
}

// Clone returns a deep copy, so callers can derive new state without
// aliasing the prior snapshot's maps.
func (p Progress) Clone() Progress {
	out := p
	out.CompletedDays = make(map[string]DayRecord, len(p.CompletedDays))
	for day, rec := range p.CompletedDays {
		tiers := make(map[string]bool, len(rec.Tiers))
		for t, done := range rec.Tiers {
			tiers[t] = done
		}
		out.CompletedDays[day] = DayRecord{Tiers: tiers, Score: rec.Score}
	}
	return out
}

// Completed reports whether the given tier was completed on the given day.
func (p Progress) Completed(dayKey, tier string) bool {
	return p.CompletedDays[dayKey].Tiers[tier]
}

// DayScore returns the points earned on the given day (0 if none).
func (p Progress) DayScore(dayKey string) int {
	return p.CompletedDays[dayKey].Score
}
