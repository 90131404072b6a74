// Package score applies an ordered list of joker effects to a classified
// hand's base chip/mult totals. The pipeline runs in three phases: per
// scoring card, once per hand evaluation, then the unconditional passives.
package score

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/natagames/natarun/internal/catalog"
	"github.com/natagames/natarun/internal/deck"
	"github.com/natagames/natarun/internal/poker"
)

// MaxJokers is the number of joker slots a run can hold.
const MaxJokers = 5

// StepSource identifies what produced a breakdown step.
type StepSource string

const (
	SourceCard  StepSource = "card"
	SourceJoker StepSource = "joker"
)

// Step is one entry in the verbose scoring breakdown. The breakdown is
// purely observational: the presentation layer replays it as an animation
// and it never affects the numeric result.
type Step struct {
	Source       StepSource
	CardID       int
	JokerID      string
	Label        string
	Note         string
	RunningChips int
	RunningMult  int
}

// Result is the outcome of the scoring pipeline.
type Result struct {
	Chips     int
	Mult      int
	Total     int
	Breakdown []Step
}

// Manager owns the ordered joker list. Acquisition order is scoring
// order, so it is gameplay-significant.
type Manager struct {
	catalog *catalog.Catalog
	jokers  []catalog.Joker
	logger  *log.Logger
}

// NewManager creates an empty joker manager backed by the given catalog.
func NewManager(cat *catalog.Catalog, logger *log.Logger) *Manager {
	return &Manager{
		catalog: cat,
		jokers:  make([]catalog.Joker, 0, MaxJokers),
		logger:  logger.WithPrefix("score"),
	}
}

// AddJoker clones the catalog definition into the owned list. It returns
// false when all slots are full, the id is unknown, or the joker is
// already owned.
func (m *Manager) AddJoker(id string) bool {
	if len(m.jokers) >= MaxJokers {
		return false
	}
	if m.Owns(id) {
		return false
	}
	def := m.catalog.JokerByID(id)
	if def == nil {
		return false
	}
	m.jokers = append(m.jokers, *def)
	m.logger.Debug("joker added", "id", id, "owned", len(m.jokers))
	return true
}

// Owns reports whether a joker with the given id is in the owned list.
func (m *Manager) Owns(id string) bool {
	for _, j := range m.jokers {
		if j.ID == id {
			return true
		}
	}
	return false
}

// Jokers returns a copy of the owned list in acquisition order.
func (m *Manager) Jokers() []catalog.Joker {
	out := make([]catalog.Joker, len(m.jokers))
	copy(out, m.jokers)
	return out
}

// Count returns the number of owned jokers.
func (m *Manager) Count() int {
	return len(m.jokers)
}

// CalculateScore runs the three-phase pipeline over the evaluator's output.
// Hand-level bonuses are expected to already be folded into BaseChips and
// BaseMult. Intermediate math stays fractional (the x1.5 mult joker needs
// it); chips and mult are floored only at the very end.
func (m *Manager) CalculateScore(stats poker.HandStats, verbose bool) Result {
	chips := float64(stats.BaseChips)
	mult := float64(stats.BaseMult)

	var breakdown []Step
	record := func(s Step) {
		if !verbose {
			return
		}
		s.RunningChips = int(math.Floor(chips))
		s.RunningMult = int(math.Floor(mult))
		breakdown = append(breakdown, s)
	}

	// Phase 1: scoring cards in evaluation order, each followed by the
	// card_score jokers in acquisition order.
	for _, card := range stats.ScoringCards {
		if card.Debuffed {
			record(Step{Source: SourceCard, CardID: card.ID, Label: card.String(), Note: "Debuffed"})
			continue
		}
		chips += float64(card.Value() + card.ChipBonus)
		mult += float64(card.MultBonus)
		record(Step{Source: SourceCard, CardID: card.ID, Label: card.String()})

		for _, joker := range m.jokers {
			if joker.Trigger != catalog.TriggerCardScore {
				continue
			}
			if next, ok := applyEffect(joker.Effect, totals{chips, mult}, effectContext{card: card, handType: stats.Type}); ok {
				chips, mult = next.chips, next.mult
				record(Step{Source: SourceJoker, JokerID: joker.ID, Label: joker.Name, Note: joker.Desc})
			}
		}
	}

	// Phase 2: hand-evaluation jokers, once per hand.
	for _, joker := range m.jokers {
		if joker.Trigger != catalog.TriggerHandEval {
			continue
		}
		if next, ok := applyEffect(joker.Effect, totals{chips, mult}, effectContext{handType: stats.Type}); ok {
			chips, mult = next.chips, next.mult
			record(Step{Source: SourceJoker, JokerID: joker.ID, Label: joker.Name, Note: joker.Desc})
		}
	}

	// Phase 3: passives, unconditionally.
	for _, joker := range m.jokers {
		if joker.Trigger != catalog.TriggerPassive {
			continue
		}
		if next, ok := applyEffect(joker.Effect, totals{chips, mult}, effectContext{handType: stats.Type}); ok {
			chips, mult = next.chips, next.mult
			record(Step{Source: SourceJoker, JokerID: joker.ID, Label: joker.Name, Note: joker.Desc})
		}
	}

	finalChips := int(math.Floor(chips))
	finalMult := int(math.Floor(mult))
	if finalChips < 0 {
		finalChips = 0
	}
	if finalMult < 0 {
		finalMult = 0
	}

	return Result{
		Chips:     finalChips,
		Mult:      finalMult,
		Total:     finalChips * finalMult,
		Breakdown: breakdown,
	}
}

type totals struct {
	chips float64
	mult  float64
}

type effectContext struct {
	card     *deck.Card // nil outside the card phase
	handType poker.HandType
}

// applyEffect interprets one tagged effect against the running totals.
// It returns the new totals and whether the effect actually fired.
func applyEffect(e catalog.Effect, t totals, ctx effectContext) (totals, bool) {
	switch e.Kind {
	case catalog.EffectAddChips:
		t.chips += e.Value
		return t, true
	case catalog.EffectAddMult:
		t.mult += e.Value
		return t, true
	case catalog.EffectMultMult:
		t.mult *= e.Value
		return t, true
	case catalog.EffectSuitMult:
		if ctx.card != nil && ctx.card.Suit.String() == e.Suit {
			t.mult += e.Value
			return t, true
		}
		return t, false
	case catalog.EffectHandChips:
		for _, name := range e.Hands {
			if poker.HandType(name) == ctx.handType {
				t.chips += e.Value
				return t, true
			}
		}
		return t, false
	default:
		return t, false
	}
}
