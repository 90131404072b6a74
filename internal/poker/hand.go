// Package poker classifies played cards into hand types and selects which
// cards score. Evaluation is pure: it never mutates the cards it is given.
package poker

// HandType identifies one of the ten poker hand classifications.
type HandType string

const (
	HighCard      HandType = "High Card"
	Pair          HandType = "Pair"
	TwoPair       HandType = "Two Pair"
	ThreeOfAKind  HandType = "Three of a Kind"
	Straight      HandType = "Straight"
	Flush         HandType = "Flush"
	FullHouse     HandType = "Full House"
	FourOfAKind   HandType = "Four of a Kind"
	StraightFlush HandType = "Straight Flush"
	RoyalFlush    HandType = "Royal Flush"
)

// HandTypes lists every hand type in ascending strength order.
var HandTypes = []HandType{
	HighCard,
	Pair,
	TwoPair,
	ThreeOfAKind,
	Straight,
	Flush,
	FullHouse,
	FourOfAKind,
	StraightFlush,
	RoyalFlush,
}

// String returns the display name of the hand type.
func (t HandType) String() string {
	return string(t)
}

// ContainsPair reports whether the classification includes a pair
// (Pair or Two Pair). Some joker effects key off this.
func (t HandType) ContainsPair() bool {
	return t == Pair || t == TwoPair
}

// BaseValue is the chip/mult starting point for a hand type at level 1.
type BaseValue struct {
	Chips int
	Mult  int
}

// Values maps each hand type to its base score, supplied by the hands catalog.
type Values map[HandType]BaseValue
