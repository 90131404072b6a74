package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natagames/natarun/internal/catalog"
	"github.com/natagames/natarun/internal/deck"
	"github.com/natagames/natarun/internal/poker"
)

func giveConsumable(t *testing.T, g *Game, slot int, id string) {
	t.Helper()
	def := g.catalog.ConsumableByID(id)
	require.NotNil(t, def, "unknown consumable %q", id)
	clone := *def
	g.consumables[slot] = &clone
}

func holdSelected(g *Game, cards ...*deck.Card) {
	for _, c := range cards {
		c.Selected = true
	}
	g.hand = cards
}

func TestUseConsumableValidation(t *testing.T) {
	g := newTestGame(t, 1)
	assert.False(t, g.UseConsumable(-1))
	assert.False(t, g.UseConsumable(ConsumableSlots))
	assert.False(t, g.UseConsumable(0), "empty slot")
}

func TestUsePlanet(t *testing.T) {
	g := newTestGame(t, 1)
	giveConsumable(t, g, 0, "planet_mercury")

	require.True(t, g.UseConsumable(0))
	assert.Equal(t, 2, g.handLevels[poker.Pair])
	assert.Nil(t, g.consumables[0], "slot is freed")
	require.NotNil(t, g.lastUsed)
	assert.Equal(t, "planet_mercury", g.lastUsed.ID)

	assert.False(t, g.UseConsumable(0), "already consumed")
}

func TestStrengthPromotesSelection(t *testing.T) {
	g := newTestGame(t, 1)
	giveConsumable(t, g, 0, "tarot_strength")
	nine := deck.NewCard(0, deck.Hearts, deck.Nine)
	ace := deck.NewCard(1, deck.Spades, deck.Ace)
	holdSelected(g, nine, ace)

	require.True(t, g.UseConsumable(0))
	assert.Equal(t, deck.Ten, nine.Rank)
	assert.Equal(t, deck.Ace, ace.Rank, "aces stay put")
	assert.False(t, nine.Selected, "selection drops after use")
}

func TestStrengthNeedsOneOrTwoSelected(t *testing.T) {
	g := newTestGame(t, 1)
	giveConsumable(t, g, 0, "tarot_strength")
	holdSelected(g,
		deck.NewCard(0, deck.Hearts, deck.Two),
		deck.NewCard(1, deck.Clubs, deck.Three),
		deck.NewCard(2, deck.Spades, deck.Four),
	)

	assert.False(t, g.UseConsumable(0))
	assert.NotNil(t, g.consumables[0], "failed use keeps the item")
	assert.Equal(t, deck.Two, g.hand[0].Rank, "nothing changed")
}

func TestDeathCopiesSecondOntoFirst(t *testing.T) {
	g := newTestGame(t, 1)
	giveConsumable(t, g, 0, "tarot_death")
	two := deck.NewCard(0, deck.Clubs, deck.Two)
	king := deck.NewCard(1, deck.Diamonds, deck.King)
	holdSelected(g, two, king)

	require.True(t, g.UseConsumable(0))
	assert.Equal(t, 0, two.ID, "identity survives")
	assert.Equal(t, deck.King, two.Rank)
	assert.Equal(t, deck.Diamonds, two.Suit)
}

func TestDeathNeedsExactlyTwo(t *testing.T) {
	g := newTestGame(t, 1)
	giveConsumable(t, g, 0, "tarot_death")
	holdSelected(g, deck.NewCard(0, deck.Clubs, deck.Two))
	assert.False(t, g.UseConsumable(0))
}

func TestEmpressAndMagicianAddCardBonuses(t *testing.T) {
	g := newTestGame(t, 1)
	giveConsumable(t, g, 0, "tarot_empress")
	giveConsumable(t, g, 1, "tarot_magician")
	card := deck.NewCard(0, deck.Hearts, deck.Nine)

	holdSelected(g, card)
	require.True(t, g.UseConsumable(0))
	assert.Equal(t, 4, card.MultBonus)

	holdSelected(g, card)
	require.True(t, g.UseConsumable(1))
	assert.Equal(t, 30, card.ChipBonus)
	assert.Equal(t, 4, card.MultBonus, "bonuses stack independently")
}

func TestFoolReplaysLastConsumable(t *testing.T) {
	g := newTestGame(t, 1)
	giveConsumable(t, g, 0, "planet_mercury")
	require.True(t, g.UseConsumable(0))

	giveConsumable(t, g, 0, "tarot_fool")
	require.True(t, g.UseConsumable(0))

	require.NotNil(t, g.consumables[1], "copy lands in the other slot")
	assert.Equal(t, "planet_mercury", g.consumables[1].ID)
	assert.Nil(t, g.consumables[0])
	assert.Equal(t, "planet_mercury", g.lastUsed.ID, "the fool is never recorded")
}

func TestFoolFailsWithoutHistory(t *testing.T) {
	g := newTestGame(t, 1)
	giveConsumable(t, g, 0, "tarot_fool")
	assert.False(t, g.UseConsumable(0))
	assert.NotNil(t, g.consumables[0])
}

func TestFoolFailsWithoutAFreeSlot(t *testing.T) {
	g := newTestGame(t, 1)
	giveConsumable(t, g, 0, "planet_mercury")
	require.True(t, g.UseConsumable(0))

	giveConsumable(t, g, 0, "tarot_fool")
	giveConsumable(t, g, 1, "planet_venus")

	assert.False(t, g.UseConsumable(0), "no slot besides the fool's own")
	require.NotNil(t, g.consumables[0])
	assert.Equal(t, "tarot_fool", g.consumables[0].ID)
}

func TestUseConsumableIgnoresUnknownKinds(t *testing.T) {
	g := newTestGame(t, 1)
	g.consumables[0] = &catalog.Consumable{ID: "weird", Kind: "relic"}
	assert.False(t, g.UseConsumable(0))
	assert.NotNil(t, g.consumables[0])
}
