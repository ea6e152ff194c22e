// internal/game/engine.go
//
// Chain validation and scoring for the daily word-chain puzzle.
// Responsibilities:
//   - Normalize submitted words (uppercase, A–Z only).
//   - Validate a submitted chain against a tier's answer sequence.
//   - Derive streak/score updates from a prior progress snapshot.
//
// Notes:
//   - Everything here is pure: callers pass dates in, state comes back as
//     a new value. No clock, no I/O.
//   - Matching is exact per slot after normalization. No partial credit,
//     no typo tolerance.
package game

import (
	"strings"

	"github.com/wordchain/go-server/internal/catalog"
)

// Normalize uppercases a submitted word and strips any character outside
// A–Z. The UI is expected to pre-sanitize, but the validator does not
// trust it.
func Normalize(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range strings.ToUpper(word) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateChain checks a submitted word sequence against the tier's
// answer. Slots always has len(tier.Answer) entries; a slot is correct
// only when a submitted word exists at that position and matches the
// answer exactly (case-insensitively). A submission of the wrong length
// is simply incorrect, never an error.
func ValidateChain(tier catalog.Tier, submission []string) Verdict {
	slots := make([]bool, len(tier.Answer))
	correct := len(submission) == len(tier.Answer)
	for i, want := range tier.Answer {
		if i < len(submission) && Normalize(submission[i]) == strings.ToUpper(want) {
			slots[i] = true
		} else {
			correct = false
		}
	}
	return Verdict{Correct: correct, Slots: slots}
}

// ComputeCompletion folds a correct completion of tier (worth points)
// into prior, returning the updated progress and the streak value to
// display immediately.
//
// Streak rules:
//   - The streak moves at most once per calendar day: if the user already
//     played today (any tier), it stays put.
//   - Otherwise it extends by one when the last play was yesterday or the
//     user has never played, and resets to 1 after a gap.
//
// today and yesterday are day keys; prior is not mutated.
func ComputeCompletion(prior Progress, tier string, points int, today, yesterday string) (Progress, int) {
	up := prior.Clone()

	newStreak := prior.CurrentStreak
	if prior.LastPlayedDate != today {
		if prior.LastPlayedDate == yesterday || prior.LastPlayedDate == "" {
			newStreak++
		} else {
			newStreak = 1
		}
	}

	up.CurrentStreak = newStreak
	if newStreak > up.LongestStreak {
		up.LongestStreak = newStreak
	}
	up.LastPlayedDate = today
	up.TotalScore = prior.TotalScore + points

	rec := up.CompletedDays[today]
	if rec.Tiers == nil {
		rec.Tiers = map[string]bool{}
	}
	rec.Tiers[tier] = true
	rec.Score += points
	up.CompletedDays[today] = rec

	return up, newStreak
}
