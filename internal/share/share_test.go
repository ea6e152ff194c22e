package share

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wordchain/go-server/internal/catalog"
)

func TestChainString(t *testing.T) {
	tier := catalog.Tier{Start: "BUTTER", End: "CAKE", Answer: []string{"CUP"}}
	assert.Equal(t, "BUTTER → CUP → CAKE", ChainString(tier))

	tier = catalog.Tier{Start: "THUNDER", End: "UP", Answer: []string{"STORM", "FRONT", "LINE"}}
	assert.Equal(t, "THUNDER → STORM → FRONT → LINE → UP", ChainString(tier))
}

func TestTextFormat(t *testing.T) {
	got := Text(5, 4, map[string]bool{
		catalog.TierEasy:   true,
		catalog.TierMedium: true,
	})
	want := "WordChain 🔗 Day #5\n" +
		"🟢 Easy: ✓\n" +
		"🟡 Medium: ✓\n" +
		"🔴 Hard: ✗\n" +
		"🔥 Streak: 4\n" +
		"wordchain.game"
	assert.Equal(t, want, got)
}

func TestTextNothingDone(t *testing.T) {
	got := Text(1, 0, nil)
	want := "WordChain 🔗 Day #1\n" +
		"🟢 Easy: ✗\n" +
		"🟡 Medium: ✗\n" +
		"🔴 Hard: ✗\n" +
		"🔥 Streak: 0\n" +
		"wordchain.game"
	assert.Equal(t, want, got)
}
