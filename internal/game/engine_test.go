package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordchain/go-server/internal/catalog"
)

var butterCake = catalog.Tier{
	Start:  "BUTTER",
	End:    "CAKE",
	Answer: []string{"CUP"},
	Points: 1,
}

var fireWay = catalog.Tier{
	Start:  "FIRE",
	End:    "WAY",
	Answer: []string{"SIDE", "WALK"},
	Points: 2,
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"cup", "CUP"},
		{"CUP", "CUP"},
		{"CuP", "CUP"},
		{" cup ", "CUP"},
		{"c-u_p!", "CUP"},
		{"cup123", "CUP"},
		{"", ""},
		{"123", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Normalize(tc.in), "Normalize(%q)", tc.in)
	}
}

func TestValidateChainCaseInsensitive(t *testing.T) {
	for _, sub := range [][]string{{"CUP"}, {"cup"}, {"Cup"}, {" cup "}} {
		v := ValidateChain(butterCake, sub)
		assert.True(t, v.Correct, "submission %v", sub)
		assert.Equal(t, []bool{true}, v.Slots)
	}
}

func TestValidateChainWrongWord(t *testing.T) {
	v := ValidateChain(butterCake, []string{"cake"})
	assert.False(t, v.Correct)
	assert.Equal(t, []bool{false}, v.Slots)
}

func TestValidateChainMarksOnlyWrongSlots(t *testing.T) {
	v := ValidateChain(fireWay, []string{"side", "talk"})
	assert.False(t, v.Correct)
	assert.Equal(t, []bool{true, false}, v.Slots)
}

func TestValidateChainWrongLength(t *testing.T) {
	tests := []struct {
		name string
		sub  []string
	}{
		{"empty", nil},
		{"too short", []string{"side"}},
		{"too long", []string{"side", "walk", "extra"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := ValidateChain(fireWay, tc.sub)
			assert.False(t, v.Correct)
			assert.Len(t, v.Slots, len(fireWay.Answer))
		})
	}
}

const (
	today     = "2026-03-02"
	yesterday = "2026-03-01"
)

func TestComputeCompletionContinuesStreak(t *testing.T) {
	prior := Progress{
		CurrentStreak:  3,
		LongestStreak:  5,
		LastPlayedDate: yesterday,
		TotalScore:     10,
		CompletedDays:  map[string]DayRecord{},
	}

	up, streak := ComputeCompletion(prior, catalog.TierEasy, 1, today, yesterday)

	assert.Equal(t, 4, streak)
	assert.Equal(t, 4, up.CurrentStreak)
	assert.Equal(t, 5, up.LongestStreak)
	assert.Equal(t, today, up.LastPlayedDate)
	assert.Equal(t, 11, up.TotalScore)
	require.Contains(t, up.CompletedDays, today)
	assert.True(t, up.CompletedDays[today].Tiers[catalog.TierEasy])
	assert.Equal(t, 1, up.CompletedDays[today].Score)
}

func TestComputeCompletionFirstEverPlay(t *testing.T) {
	up, streak := ComputeCompletion(NewProgress(), catalog.TierMedium, 2, today, yesterday)
	assert.Equal(t, 1, streak)
	assert.Equal(t, 1, up.LongestStreak)
	assert.Equal(t, 2, up.TotalScore)
}

func TestComputeCompletionResetsAfterGap(t *testing.T) {
	prior := Progress{
		CurrentStreak:  12,
		LongestStreak:  12,
		LastPlayedDate: "2026-02-28", // two days before today
		TotalScore:     40,
		CompletedDays:  map[string]DayRecord{},
	}
	up, streak := ComputeCompletion(prior, catalog.TierHard, 4, today, yesterday)
	assert.Equal(t, 1, streak)
	assert.Equal(t, 1, up.CurrentStreak)
	assert.Equal(t, 12, up.LongestStreak)
}

func TestComputeCompletionOncePerDay(t *testing.T) {
	prior := Progress{
		CurrentStreak:  3,
		LongestStreak:  5,
		LastPlayedDate: yesterday,
		TotalScore:     10,
		CompletedDays:  map[string]DayRecord{},
	}

	first, streak1 := ComputeCompletion(prior, catalog.TierEasy, 1, today, yesterday)
	second, streak2 := ComputeCompletion(first, catalog.TierMedium, 2, today, yesterday)

	// Streak moves once; both tiers' points land.
	assert.Equal(t, 4, streak1)
	assert.Equal(t, 4, streak2)
	assert.Equal(t, 4, second.CurrentStreak)
	assert.Equal(t, 13, second.TotalScore)
	assert.Equal(t, 3, second.CompletedDays[today].Score)
	assert.True(t, second.CompletedDays[today].Tiers[catalog.TierEasy])
	assert.True(t, second.CompletedDays[today].Tiers[catalog.TierMedium])
}

func TestComputeCompletionRaisesLongest(t *testing.T) {
	prior := Progress{CurrentStreak: 5, LongestStreak: 5, LastPlayedDate: yesterday, CompletedDays: map[string]DayRecord{}}
	up, streak := ComputeCompletion(prior, catalog.TierEasy, 1, today, yesterday)
	assert.Equal(t, 6, streak)
	assert.Equal(t, 6, up.LongestStreak)
}

func TestComputeCompletionLeavesOtherDaysAlone(t *testing.T) {
	prior := Progress{
		LastPlayedDate: yesterday,
		CompletedDays: map[string]DayRecord{
			yesterday: {Tiers: map[string]bool{catalog.TierEasy: true}, Score: 1},
		},
	}
	up, _ := ComputeCompletion(prior, catalog.TierEasy, 1, today, yesterday)
	assert.Equal(t, 1, up.CompletedDays[yesterday].Score)
	assert.True(t, up.CompletedDays[yesterday].Tiers[catalog.TierEasy])
}

func TestComputeCompletionDoesNotMutatePrior(t *testing.T) {
	prior := Progress{
		CurrentStreak:  3,
		LastPlayedDate: yesterday,
		CompletedDays:  map[string]DayRecord{},
	}
	_, _ = ComputeCompletion(prior, catalog.TierEasy, 1, today, yesterday)
	assert.Equal(t, 3, prior.CurrentStreak)
	assert.Equal(t, yesterday, prior.LastPlayedDate)
	assert.Empty(t, prior.CompletedDays)
}
