// internal/share/share.go
//
// Share-text and chain-string formatting. Pure string assembly; the
// output format is part of the observable contract, so keep it stable.

package share

import (
	"fmt"
	"strings"

	"github.com/wordchain/go-server/internal/catalog"
)

var tierIcons = map[string]string{
	catalog.TierEasy:   "🟢",
	catalog.TierMedium: "🟡",
	catalog.TierHard:   "🔴",
}

// ChainString renders the full solved chain, e.g.
// "BUTTER → CUP → CAKE".
func ChainString(t catalog.Tier) string {
	words := make([]string, 0, len(t.Answer)+2)
	words = append(words, t.Start)
	words = append(words, t.Answer...)
	words = append(words, t.End)
	return strings.Join(words, " → ")
}

// Text builds the multi-line shareable summary for a day: header with
// the day number, one ✓/✗ line per tier, a streak line, and a footer.
func Text(dayNumber, streak int, done map[string]bool) string {
	lines := []string{fmt.Sprintf("WordChain 🔗 Day #%d", dayNumber)}
	for _, tier := range catalog.TierNames {
		mark := "✗"
		if done[tier] {
			mark = "✓"
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s", tierIcons[tier], title(tier), mark))
	}
	lines = append(lines, fmt.Sprintf("🔥 Streak: %d", streak))
	lines = append(lines, "wordchain.game")
	return strings.Join(lines, "\n")
}

// title uppercases the first letter of an ASCII tier name.
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
