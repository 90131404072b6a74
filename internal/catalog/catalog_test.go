package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natagames/natarun/internal/poker"
)

func TestDefaultLoadsEmbeddedContent(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	// Every hand type has a base value.
	for _, h := range poker.HandTypes {
		v, ok := cat.Hands[h]
		require.True(t, ok, "missing base value for %q", h)
		assert.Positive(t, v.Chips)
		assert.Positive(t, v.Mult)
	}
	assert.Equal(t, 5, cat.Hands[poker.HighCard].Chips)
	assert.Equal(t, 8, cat.Hands[poker.RoyalFlush].Mult)

	assert.NotEmpty(t, cat.Jokers)
	assert.NotEmpty(t, cat.Consumables)
	assert.NotEmpty(t, cat.Vouchers)
	assert.NotEmpty(t, cat.Blinds.Bosses)
	assert.NotEmpty(t, cat.Tags)
}

func TestLookups(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	j := cat.JokerByID("cola")
	require.NotNil(t, j)
	assert.Equal(t, TriggerPassive, j.Trigger)
	assert.Nil(t, cat.JokerByID("nope"))

	c := cat.ConsumableByID("tarot_fool")
	require.NotNil(t, c)
	assert.Equal(t, KindTarot, c.Kind)
	assert.Equal(t, TarotFool, c.Tarot)
	assert.Nil(t, cat.ConsumableByID("nope"))

	v := cat.VoucherByID("seed_money")
	require.NotNil(t, v)
	assert.Equal(t, VoucherInterestCap, v.Effect)
	assert.Equal(t, 10, v.Value)
	assert.Nil(t, cat.VoucherByID("nope"))

	tag := cat.TagByID("tag_economy")
	require.NotNil(t, tag)
	assert.Equal(t, TagMoney, tag.Effect)
	assert.Equal(t, 15, tag.Value)
	assert.Nil(t, cat.TagByID("nope"))
}

func TestJokerEffectsAreWellFormed(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	known := map[Trigger]bool{TriggerCardScore: true, TriggerHandEval: true, TriggerPassive: true}
	kinds := map[EffectKind]bool{
		EffectAddChips: true, EffectAddMult: true, EffectMultMult: true,
		EffectSuitMult: true, EffectHandChips: true,
	}
	for _, j := range cat.Jokers {
		assert.True(t, known[j.Trigger], "joker %s trigger %q", j.ID, j.Trigger)
		assert.True(t, kinds[j.Effect.Kind], "joker %s effect %q", j.ID, j.Effect.Kind)
		assert.Positive(t, j.Cost, "joker %s", j.ID)
	}
}

func TestPlanetsTargetRealHands(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	for _, c := range cat.Consumables {
		if c.Kind != KindPlanet {
			continue
		}
		_, ok := cat.Hands[poker.HandType(c.Hand)]
		assert.True(t, ok, "planet %s targets unknown hand %q", c.ID, c.Hand)
	}
}

func TestAnteTarget(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)
	b := &cat.Blinds

	assert.Equal(t, 300, b.AnteTarget(1))
	assert.Equal(t, 800, b.AnteTarget(2))
	assert.Equal(t, 50000, b.AnteTarget(8))

	// Past the table, the last entry doubles per extra ante.
	assert.Equal(t, 100000, b.AnteTarget(9))
	assert.Equal(t, 200000, b.AnteTarget(10))

	// Out-of-range antes clamp to the first entry.
	assert.Equal(t, 300, b.AnteTarget(0))
	assert.Equal(t, 300, b.AnteTarget(-3))
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nowhere"))
	assert.Error(t, err)
}

func TestLoadRejectsIncompleteHands(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"hands.toml":       "[hands]\n[hands.\"Pair\"]\nchips = 10\nmult = 2\n",
		"jokers.toml":      "",
		"consumables.toml": "",
		"vouchers.toml":    "",
		"blinds.toml": `ante_targets = [100]
[small]
name = "Small Blind"
mult = 1.0
reward = 3
[big]
name = "Big Blind"
mult = 1.5
reward = 4
[boss]
name = "Boss Blind"
mult = 2.0
reward = 5
[[bosses]]
id = "b"
name = "B"
desc = ""
debuff = { kind = "hook" }
`,
		"tags.toml": "",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing base value")
}
