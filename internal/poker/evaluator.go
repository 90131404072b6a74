package poker

import (
	"sort"

	"github.com/natagames/natarun/internal/deck"
)

// HandStats is the evaluator's value-object output: the classification,
// the base score for it, and which of the played cards actually score.
type HandStats struct {
	Type         HandType
	BaseChips    int
	BaseMult     int
	Level        int
	ScoringCards []*deck.Card
	PlayedCards  []*deck.Card
}

// Evaluator classifies 1-5 played cards against a base-value table.
type Evaluator struct {
	values Values
}

// NewEvaluator creates an evaluator using the given hand-value table.
func NewEvaluator(values Values) *Evaluator {
	return &Evaluator{values: values}
}

// Evaluate classifies the played cards and determines the scoring subset.
// An empty selection yields a degenerate zero-value High Card result;
// callers are expected not to evaluate empty selections otherwise.
func (e *Evaluator) Evaluate(cards []*deck.Card) HandStats {
	if len(cards) == 0 {
		return HandStats{Type: HighCard, Level: 1}
	}

	sorted := make([]*deck.Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank.Index() < sorted[j].Rank.Index()
	})

	flush := isFlush(sorted)
	straight := isStraight(sorted)

	counts := make(map[deck.Rank]int)
	for _, c := range sorted {
		counts[c.Rank]++
	}
	multiplicities := make([]int, 0, len(counts))
	for _, n := range counts {
		multiplicities = append(multiplicities, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(multiplicities)))

	handType := classify(sorted, flush, straight, multiplicities)

	base := e.values[handType]
	return HandStats{
		Type:         handType,
		BaseChips:    base.Chips,
		BaseMult:     base.Mult,
		Level:        1,
		ScoringCards: scoringSubset(handType, sorted, counts),
		PlayedCards:  cards,
	}
}

// isFlush reports whether exactly 5 cards share one suit.
func isFlush(sorted []*deck.Card) bool {
	if len(sorted) != 5 {
		return false
	}
	for _, c := range sorted[1:] {
		if c.Suit != sorted[0].Suit {
			return false
		}
	}
	return true
}

// isStraight reports whether 5 rank-sorted cards run consecutively,
// including the wheel {A,2,3,4,5} which sorts as 2,3,4,5,A.
func isStraight(sorted []*deck.Card) bool {
	if len(sorted) != 5 {
		return false
	}
	consecutive := true
	for i := 0; i < 4; i++ {
		if sorted[i+1].Rank.Index() != sorted[i].Rank.Index()+1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return true
	}
	return sorted[0].Rank == deck.Two &&
		sorted[1].Rank == deck.Three &&
		sorted[2].Rank == deck.Four &&
		sorted[3].Rank == deck.Five &&
		sorted[4].Rank == deck.Ace
}

// classify applies the hand-type precedence order.
func classify(sorted []*deck.Card, flush, straight bool, multiplicities []int) HandType {
	switch {
	case flush && straight:
		// Ten-to-ace distinguishes the royal from other straight flushes.
		if sorted[0].Rank == deck.Ten && sorted[4].Rank == deck.Ace {
			return RoyalFlush
		}
		return StraightFlush
	case multiplicities[0] == 4:
		return FourOfAKind
	case multiplicities[0] == 3 && len(multiplicities) > 1 && multiplicities[1] == 2:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case multiplicities[0] == 3:
		return ThreeOfAKind
	case multiplicities[0] == 2 && len(multiplicities) > 1 && multiplicities[1] == 2:
		return TwoPair
	case multiplicities[0] == 2:
		return Pair
	default:
		return HighCard
	}
}

// scoringSubset selects which of the sorted played cards contribute chips:
// all five for the straight/flush family, the matched ranks for sets and
// pairs, and only the highest card for High Card.
func scoringSubset(handType HandType, sorted []*deck.Card, counts map[deck.Rank]int) []*deck.Card {
	switch handType {
	case RoyalFlush, StraightFlush, Flush, Straight, FullHouse:
		return sorted
	case FourOfAKind:
		return cardsWithCount(sorted, counts, 4)
	case ThreeOfAKind:
		return cardsWithCount(sorted, counts, 3)
	case TwoPair, Pair:
		return cardsWithCount(sorted, counts, 2)
	default:
		return []*deck.Card{sorted[len(sorted)-1]}
	}
}

func cardsWithCount(sorted []*deck.Card, counts map[deck.Rank]int, n int) []*deck.Card {
	var matched []*deck.Card
	for _, c := range sorted {
		if counts[c.Rank] == n {
			matched = append(matched, c)
		}
	}
	return matched
}
