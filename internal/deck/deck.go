package deck

import rand "math/rand/v2"

// DeckSize is the number of cards in a freshly built deck.
const DeckSize = 52

// Deck is an ordered sequence of cards owned exclusively by one game.
// Randomness is injected so runs can be replayed deterministically.
type Deck struct {
	cards []*Card
	rng   *rand.Rand
}

// New creates an empty deck that shuffles with the given rng.
// Call Reset to build and shuffle the 52 cards.
func New(rng *rand.Rand) *Deck {
	return &Deck{
		cards: make([]*Card, 0, DeckSize),
		rng:   rng,
	}
}

// Reset rebuilds the full 52-card deck with fresh cards (all run-time
// modifiers cleared, ids unique within the deck) and shuffles it.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]

	id := 0
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(id, suit, rank))
			id++
		}
	}

	d.shuffle()
}

// shuffle applies a uniform Fisher-Yates permutation.
func (d *Deck) shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns up to n cards from the front of the deck,
// order preserving. An exhausted deck returns fewer than n cards; it is
// never replenished mid-round.
func (d *Deck) Draw(n int) []*Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	if n <= 0 {
		return nil
	}

	drawn := make([]*Card, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	return drawn
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left.
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
