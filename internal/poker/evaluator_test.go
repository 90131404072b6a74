package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natagames/natarun/internal/deck"
)

// testValues mirrors the shipped hands catalog.
var testValues = Values{
	HighCard:      {Chips: 5, Mult: 1},
	Pair:          {Chips: 10, Mult: 2},
	TwoPair:       {Chips: 20, Mult: 2},
	ThreeOfAKind:  {Chips: 30, Mult: 3},
	Straight:      {Chips: 30, Mult: 4},
	Flush:         {Chips: 35, Mult: 4},
	FullHouse:     {Chips: 40, Mult: 4},
	FourOfAKind:   {Chips: 60, Mult: 7},
	StraightFlush: {Chips: 100, Mult: 8},
	RoyalFlush:    {Chips: 100, Mult: 8},
}

var suitByLetter = map[byte]deck.Suit{
	's': deck.Spades,
	'h': deck.Hearts,
	'c': deck.Clubs,
	'd': deck.Diamonds,
}

var rankByLetter = map[string]deck.Rank{
	"2": deck.Two, "3": deck.Three, "4": deck.Four, "5": deck.Five,
	"6": deck.Six, "7": deck.Seven, "8": deck.Eight, "9": deck.Nine,
	"T": deck.Ten, "J": deck.Jack, "Q": deck.Queen, "K": deck.King,
	"A": deck.Ace,
}

// cards parses shorthand like "9s", "Th", "Ad" into cards with
// sequential ids.
func cards(t *testing.T, specs ...string) []*deck.Card {
	t.Helper()
	out := make([]*deck.Card, len(specs))
	for i, spec := range specs {
		require.Len(t, spec, 2, "card spec %q", spec)
		rank, ok := rankByLetter[spec[:1]]
		require.True(t, ok, "rank in %q", spec)
		suit, ok := suitByLetter[spec[1]]
		require.True(t, ok, "suit in %q", spec)
		out[i] = deck.NewCard(i, suit, rank)
	}
	return out
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name     string
		cards    []string
		expected HandType
	}{
		{"high card", []string{"2c", "5d", "9s"}, HighCard},
		{"high card five", []string{"2c", "5d", "9s", "Jh", "Kd"}, HighCard},
		{"pair", []string{"9c", "9d"}, Pair},
		{"pair among five", []string{"9c", "9d", "2s", "5h", "Kd"}, Pair},
		{"two pair", []string{"9c", "9d", "5s", "5h", "Kd"}, TwoPair},
		{"three of a kind", []string{"7c", "7d", "7s"}, ThreeOfAKind},
		{"straight", []string{"5c", "6d", "7s", "8h", "9d"}, Straight},
		{"wheel straight", []string{"Ac", "2d", "3s", "4h", "5d"}, Straight},
		{"broadway straight", []string{"Tc", "Jd", "Qs", "Kh", "Ad"}, Straight},
		{"flush", []string{"2h", "5h", "9h", "Jh", "Kh"}, Flush},
		{"full house", []string{"7c", "7d", "7s", "2h", "2d"}, FullHouse},
		{"four of a kind", []string{"7c", "7d", "7s", "7h", "2d"}, FourOfAKind},
		{"straight flush", []string{"5h", "6h", "7h", "8h", "9h"}, StraightFlush},
		{"wheel straight flush", []string{"Ah", "2h", "3h", "4h", "5h"}, StraightFlush},
		{"royal flush", []string{"Th", "Jh", "Qh", "Kh", "Ah"}, RoyalFlush},
		{"four cards never straight", []string{"5c", "6d", "7s", "8h"}, HighCard},
		{"four suited cards never flush", []string{"2h", "5h", "9h", "Jh"}, HighCard},
	}

	e := NewEvaluator(testValues)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := e.Evaluate(cards(t, tt.cards...))
			assert.Equal(t, tt.expected, stats.Type)
			assert.Equal(t, testValues[tt.expected].Chips, stats.BaseChips)
			assert.Equal(t, testValues[tt.expected].Mult, stats.BaseMult)
		})
	}
}

func TestScoringSubset(t *testing.T) {
	e := NewEvaluator(testValues)

	t.Run("high card scores only the top card", func(t *testing.T) {
		stats := e.Evaluate(cards(t, "2c", "5d", "9s"))
		require.Len(t, stats.ScoringCards, 1)
		assert.Equal(t, deck.Nine, stats.ScoringCards[0].Rank)
	})

	t.Run("pair scores the paired cards only", func(t *testing.T) {
		stats := e.Evaluate(cards(t, "9c", "9d", "2s", "5h", "Kd"))
		require.Len(t, stats.ScoringCards, 2)
		for _, c := range stats.ScoringCards {
			assert.Equal(t, deck.Nine, c.Rank)
		}
	})

	t.Run("two pair scores all four matched cards", func(t *testing.T) {
		stats := e.Evaluate(cards(t, "9c", "9d", "5s", "5h", "Kd"))
		require.Len(t, stats.ScoringCards, 4)
	})

	t.Run("four of a kind drops the kicker", func(t *testing.T) {
		stats := e.Evaluate(cards(t, "7c", "7d", "7s", "7h", "2d"))
		require.Len(t, stats.ScoringCards, 4)
		for _, c := range stats.ScoringCards {
			assert.Equal(t, deck.Seven, c.Rank)
		}
	})

	t.Run("straight scores all five", func(t *testing.T) {
		stats := e.Evaluate(cards(t, "5c", "6d", "7s", "8h", "9d"))
		assert.Len(t, stats.ScoringCards, 5)
	})

	t.Run("full house scores all five", func(t *testing.T) {
		stats := e.Evaluate(cards(t, "7c", "7d", "7s", "2h", "2d"))
		assert.Len(t, stats.ScoringCards, 5)
	})
}

func TestEvaluateEmptySelection(t *testing.T) {
	e := NewEvaluator(testValues)
	stats := e.Evaluate(nil)
	assert.Equal(t, HighCard, stats.Type)
	assert.Zero(t, stats.BaseChips)
	assert.Zero(t, stats.BaseMult)
	assert.Empty(t, stats.ScoringCards)
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	e := NewEvaluator(testValues)
	played := cards(t, "Kd", "2c", "9s")
	e.Evaluate(played)
	assert.Equal(t, deck.King, played[0].Rank, "input order untouched")
	assert.Equal(t, deck.Two, played[1].Rank)
}
