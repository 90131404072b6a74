package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

// Suits lists all four suits in deck-build order.
var Suits = []Suit{Spades, Hearts, Clubs, Diamonds}

// String returns the display name of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "Spades"
	case Hearts:
		return "Hearts"
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	default:
		return "?"
	}
}

// Symbol returns the one-rune glyph for a suit
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// ParseSuit resolves a suit display name back to its Suit value.
func ParseSuit(name string) (Suit, error) {
	for _, s := range Suits {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", name)
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Index returns the rank's position in the 2..A ordering (2=0, A=12).
// Straight detection works on these indices.
func (r Rank) Index() int {
	return int(r) - int(Two)
}

// Value returns the chip value a card of this rank contributes when scored:
// face value for 2-10, 10 for J/Q/K, 11 for Ace.
func (r Rank) Value() int {
	switch {
	case r >= Jack && r <= King:
		return 10
	case r == Ace:
		return 11
	default:
		return int(r)
	}
}

// Card is the atomic scoring unit. Identity (ID, Suit, Rank) is fixed at
// deck build time; the remaining fields are run-time modifiers mutated by
// tarot effects and boss debuff rules. Rank can still change via the
// Strength and Death tarots, which rewrite cards in place.
type Card struct {
	ID   int
	Suit Suit
	Rank Rank

	// Run-time modifiers, cleared whenever the deck is rebuilt.
	ChipBonus int
	MultBonus int
	Debuffed  bool
	Selected  bool
}

// NewCard creates a card with the given identity.
func NewCard(id int, suit Suit, rank Rank) *Card {
	return &Card{ID: id, Suit: suit, Rank: rank}
}

// Value returns the chips this card contributes when scored, before bonuses.
func (c *Card) Value() int {
	return c.Rank.Value()
}

// String returns a short representation like "A♠" or "10♥".
func (c *Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// Promote raises the card's rank one step up the ladder. Aces stay Aces.
func (c *Card) Promote() {
	if c.Rank < Ace {
		c.Rank++
	}
}

// CopyFrom copies suit, rank and bonuses from another card onto this one,
// preserving this card's identity. Used by the Death tarot.
func (c *Card) CopyFrom(other *Card) {
	c.Suit = other.Suit
	c.Rank = other.Rank
	c.ChipBonus = other.ChipBonus
	c.MultBonus = other.MultBonus
}
