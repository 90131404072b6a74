// Package game is the run state machine: round lifecycle, blind/ante
// progression, shop and economy, consumable and voucher effects. One Game
// instance owns one run; every public operation runs to completion before
// the next is accepted, and invalid operations are silent no-ops that
// return false.
package game

import (
	"math"
	rand "math/rand/v2"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/natagames/natarun/internal/catalog"
	"github.com/natagames/natarun/internal/deck"
	"github.com/natagames/natarun/internal/poker"
	"github.com/natagames/natarun/internal/randutil"
	"github.com/natagames/natarun/internal/score"
)

// ConsumableSlots is the fixed number of consumable slots.
const ConsumableSlots = 2

// Game is the orchestrating state machine for one run.
type Game struct {
	cfg     Config
	catalog *catalog.Catalog
	rng     *rand.Rand
	logger  *log.Logger

	deck      *deck.Deck
	hand      []*deck.Card
	evaluator *poker.Evaluator
	jokers    *score.Manager

	handLevels  map[poker.HandType]int
	consumables [ConsumableSlots]*catalog.Consumable
	lastUsed    *catalog.Consumable
	vouchers    []string
	tags        []catalog.Tag
	nextTag     *catalog.Tag

	ante       int
	blindIndex int
	blind      *Blind
	activeBoss *catalog.Boss

	money        int
	currentScore int
	targetScore  int
	handsLeft    int
	discardsLeft int
	maxHandSize  int

	state State
	shop  *shop

	// Callbacks are fired synchronously at the end of mutating operations.
	Callbacks Callbacks
}

// New creates a run from the given config and catalogs. A zero seed gives
// a non-deterministic run; any other seed replays exactly.
func New(cfg Config, cat *catalog.Catalog, logger *log.Logger) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	g := &Game{
		cfg:        cfg,
		catalog:    cat,
		rng:        rng,
		logger:     logger.WithPrefix("game"),
		deck:       deck.New(rng),
		evaluator:  poker.NewEvaluator(cat.Hands),
		jokers:     score.NewManager(cat, logger),
		handLevels: make(map[poker.HandType]int, len(poker.HandTypes)),
		ante:       1,
		money:      cfg.StartingMoney,
		state:      StateInit,
	}
	for _, t := range poker.HandTypes {
		g.handLevels[t] = 1
	}
	return g
}

// State returns the current lifecycle state.
func (g *Game) State() State {
	return g.state
}

// PrepareBlindSelect computes the upcoming blind from the ante/blind
// position, rolls the tag offered for skipping it, and enters BLIND_SELECT.
// Valid from the initial state and from the shop via NextRound.
func (g *Game) PrepareBlindSelect() bool {
	if g.state != StateInit && g.state != StateShop {
		return false
	}
	g.blind = g.currentBlind()
	g.nextTag = g.rollTag()
	g.state = StateBlindSelect
	g.logger.Debug("blind select", "ante", g.ante, "blind", g.blind.Name, "target", g.blind.Target)
	g.emitUpdate()
	return true
}

// currentBlind derives the blind snapshot for (ante, blindIndex).
// Boss blinds are picked deterministically by ante mod the boss count, so
// the rotation repeats with the catalog period.
func (g *Game) currentBlind() *Blind {
	base := g.catalog.Blinds.AnteTarget(g.ante)

	var (
		tier      catalog.BlindTier
		blindType BlindType
		boss      *catalog.Boss
	)
	switch g.blindIndex {
	case 0:
		tier = g.catalog.Blinds.Small
		blindType = BlindSmall
	case 1:
		tier = g.catalog.Blinds.Big
		blindType = BlindBig
	default:
		tier = g.catalog.Blinds.Boss
		blindType = BlindBoss
		picked := g.catalog.Blinds.Bosses[g.ante%len(g.catalog.Blinds.Bosses)]
		boss = &picked
	}

	b := &Blind{
		Type:   blindType,
		Name:   tier.Name,
		Target: int(math.Floor(float64(base) * tier.Mult)),
		Reward: tier.Reward,
		Boss:   boss,
	}
	if boss != nil {
		b.ID = boss.ID
		b.Name = boss.Name
		b.Desc = boss.Desc
	}
	return b
}

// rollTag picks one random tag to offer for skipping the blind.
func (g *Game) rollTag() *catalog.Tag {
	if len(g.catalog.Tags) == 0 {
		return nil
	}
	tag := g.catalog.Tags[g.rng.IntN(len(g.catalog.Tags))]
	return &tag
}

// StartRound begins play against the selected blind. Valid only from
// BLIND_SELECT.
func (g *Game) StartRound() bool {
	if g.state != StateBlindSelect {
		return false
	}

	g.currentScore = 0
	g.targetScore = g.blind.Target
	g.handsLeft = g.cfg.HandsPerRound
	g.discardsLeft = g.cfg.DiscardsPerRound
	g.maxHandSize = g.cfg.MaxHandSize

	if g.OwnsVoucher(voucherWithEffect(g.catalog, catalog.VoucherExtraHand)) {
		g.handsLeft++
	}
	if g.OwnsVoucher(voucherWithEffect(g.catalog, catalog.VoucherExtraDiscard)) {
		g.discardsLeft++
	}
	if g.OwnsVoucher(voucherWithEffect(g.catalog, catalog.VoucherHandSize)) {
		g.maxHandSize++
	}

	g.activeBoss = nil
	if g.blind.Type == BlindBoss {
		g.activeBoss = g.blind.Boss
		if g.activeBoss != nil && g.activeBoss.Debuff.Kind == catalog.DebuffHandSize {
			g.maxHandSize--
		}
	}

	if tag := g.takeTag(catalog.TagHandy); tag != nil {
		g.handLevels[poker.HighCard]++
		g.logger.Debug("handy tag consumed", "level", g.handLevels[poker.HighCard])
	}

	g.deck.Reset()
	g.hand = g.hand[:0]
	g.drawToFull()

	g.state = StatePlaying
	g.logger.Info("round started",
		"ante", g.ante, "blind", g.blind.Name,
		"target", g.targetScore, "hands", g.handsLeft, "discards", g.discardsLeft)
	g.emitUpdate()
	return true
}

// drawToFull draws from the deck until the hand reaches maxHandSize (or
// the deck runs out), applies any boss suit debuff to the drawn cards, and
// keeps the hand sorted low-to-high for display.
func (g *Game) drawToFull() {
	needed := g.maxHandSize - len(g.hand)
	if needed <= 0 {
		return
	}
	drawn := g.deck.Draw(needed)
	if g.activeBoss != nil && g.activeBoss.Debuff.Kind == catalog.DebuffSuit {
		for _, c := range drawn {
			if c.Suit.String() == g.activeBoss.Debuff.Suit {
				c.Debuffed = true
			}
		}
	}
	g.hand = append(g.hand, drawn...)
	sort.SliceStable(g.hand, func(i, j int) bool {
		return g.hand[i].Rank.Index() < g.hand[j].Rank.Index()
	})
}

// SelectCard toggles the staging flag on a held card.
func (g *Game) SelectCard(cardID int) bool {
	for _, c := range g.hand {
		if c.ID == cardID {
			c.Selected = !c.Selected
			g.emitUpdate()
			return true
		}
	}
	return false
}

// SortHand reorders the held cards by "rank" (high first) or "suit".
func (g *Game) SortHand(by string) {
	switch by {
	case "rank":
		sort.SliceStable(g.hand, func(i, j int) bool {
			return g.hand[i].Rank.Index() > g.hand[j].Rank.Index()
		})
	case "suit":
		sort.SliceStable(g.hand, func(i, j int) bool {
			if g.hand[i].Suit != g.hand[j].Suit {
				return g.hand[i].Suit < g.hand[j].Suit
			}
			return g.hand[i].Rank.Index() > g.hand[j].Rank.Index()
		})
	default:
		return
	}
	g.emitUpdate()
}

func (g *Game) selectedCards() []*deck.Card {
	var selected []*deck.Card
	for _, c := range g.hand {
		if c.Selected {
			selected = append(selected, c)
		}
	}
	return selected
}

// applyLevels folds the hand-level bonus for the classified type into the
// base values: +10 chips and +1 mult per level above 1.
func (g *Game) applyLevels(stats *poker.HandStats) {
	level := g.handLevels[stats.Type]
	if level < 1 {
		level = 1
	}
	stats.Level = level
	stats.BaseChips += (level - 1) * 10
	stats.BaseMult += (level - 1) * 1
}

// EvaluateSelected is a read-only preview of the current selection: the
// classification and the score it would settle at, without jokers' verbose
// breakdown and without mutating any state. Nil when nothing is selected.
func (g *Game) EvaluateSelected() *Preview {
	selected := g.selectedCards()
	if len(selected) == 0 {
		return nil
	}

	stats := g.evaluator.Evaluate(selected)
	g.applyLevels(&stats)
	result := g.jokers.CalculateScore(stats, false)

	return &Preview{
		HandType:     stats.Type,
		Level:        stats.Level,
		Chips:        result.Chips,
		Mult:         result.Mult,
		Total:        result.Total,
		ScoringCards: viewCards(stats.ScoringCards),
	}
}

// PlayHand commits the current selection: evaluates it, scores it through
// the pipeline, applies the total, and advances the round. Valid only
// while PLAYING with hands remaining and 1-5 cards selected.
func (g *Game) PlayHand() bool {
	if g.state != StatePlaying || g.handsLeft <= 0 {
		return false
	}
	selected := g.selectedCards()
	if len(selected) == 0 || len(selected) > 5 {
		return false
	}

	stats := g.evaluator.Evaluate(selected)
	g.applyLevels(&stats)

	g.removeFromHand(selected)

	// The Hook rips two extra random cards out of the remaining hand.
	if g.activeBoss != nil && g.activeBoss.Debuff.Kind == catalog.DebuffHook {
		g.hookDiscard(2)
	}

	result := g.jokers.CalculateScore(stats, true)
	g.currentScore += result.Total
	g.handsLeft--

	g.logger.Info("hand played",
		"type", stats.Type, "level", stats.Level,
		"chips", result.Chips, "mult", result.Mult, "total", result.Total,
		"score", g.currentScore, "target", g.targetScore)

	if g.Callbacks.OnHandPlayed != nil {
		g.Callbacks.OnHandPlayed(HandPlayed{
			Cards:        viewCards(selected),
			HandType:     stats.Type,
			Level:        stats.Level,
			ScoringCards: viewCards(stats.ScoringCards),
			Score:        result,
		})
	}

	switch {
	case g.currentScore >= g.targetScore:
		g.endRound(true)
	case g.handsLeft == 0:
		g.endRound(false)
	default:
		g.drawToFull()
		g.emitUpdate()
	}
	return true
}

// Discard throws away the current selection without scoring. Valid only
// while PLAYING with discards remaining and 1-5 cards selected.
func (g *Game) Discard() bool {
	if g.state != StatePlaying || g.discardsLeft <= 0 {
		return false
	}
	selected := g.selectedCards()
	if len(selected) == 0 || len(selected) > 5 {
		return false
	}

	g.removeFromHand(selected)
	g.discardsLeft--
	g.drawToFull()
	g.emitUpdate()
	return true
}

func (g *Game) removeFromHand(cards []*deck.Card) {
	remove := make(map[int]bool, len(cards))
	for _, c := range cards {
		remove[c.ID] = true
	}
	kept := g.hand[:0]
	for _, c := range g.hand {
		if !remove[c.ID] {
			kept = append(kept, c)
		}
	}
	g.hand = kept
}

// hookDiscard removes up to n random cards from the hand.
func (g *Game) hookDiscard(n int) {
	for i := 0; i < n && len(g.hand) > 0; i++ {
		idx := g.rng.IntN(len(g.hand))
		g.hand = append(g.hand[:idx], g.hand[idx+1:]...)
	}
}

// endRound settles a finished round. A win pays the blind reward, $1 per
// hand left, and interest capped by the interest cap, then advances the
// blind position and opens the shop. A loss is terminal.
func (g *Game) endRound(win bool) {
	if win {
		interest := g.money / g.cfg.InterestRate
		if limit := g.interestCap(); interest > limit {
			interest = limit
		}
		reward := g.blind.Reward + g.handsLeft + interest
		g.money += reward
		g.logger.Info("round won", "reward", reward, "interest", interest, "money", g.money)

		g.advanceBlind()
		g.activeBoss = nil
		g.state = StateShop
		g.generateShop()
		if g.Callbacks.OnRoundEnd != nil {
			g.Callbacks.OnRoundEnd(true)
		}
		g.emitUpdate()
		return
	}

	g.state = StateGameOver
	g.logger.Info("run over", "ante", g.ante, "score", g.currentScore, "target", g.targetScore)
	if g.Callbacks.OnRoundEnd != nil {
		g.Callbacks.OnRoundEnd(false)
	}
	g.emitUpdate()
}

// advanceBlind moves to the next blind slot, wrapping past the boss into
// the next ante.
func (g *Game) advanceBlind() {
	g.blindIndex++
	if g.blindIndex > 2 {
		g.blindIndex = 0
		g.ante++
	}
}

// interestCap is the per-round interest ceiling, raised by the seed money
// voucher.
func (g *Game) interestCap() int {
	limit := g.cfg.InterestCap
	if v := voucherWithEffect(g.catalog, catalog.VoucherInterestCap); v != "" && g.OwnsVoucher(v) {
		if def := g.catalog.VoucherByID(v); def != nil && def.Value > limit {
			limit = def.Value
		}
	}
	return limit
}

// SkipBlind forfeits the round in exchange for the offered tag and goes
// straight to the shop. Money tags pay out immediately; the rest queue
// until their consumption point. Valid only from BLIND_SELECT.
func (g *Game) SkipBlind() bool {
	if g.state != StateBlindSelect {
		return false
	}

	if tag := g.nextTag; tag != nil {
		if tag.Effect == catalog.TagMoney {
			g.money += tag.Value
		} else {
			g.tags = append(g.tags, *tag)
		}
		g.logger.Debug("blind skipped", "tag", tag.ID)
	}
	g.nextTag = nil

	g.advanceBlind()
	g.state = StateShop
	g.generateShop()
	g.emitUpdate()
	return true
}

// NextRound leaves the shop for the next blind select, dropping any
// unconsumed one-shot shop tags.
func (g *Game) NextRound() bool {
	if g.state != StateShop {
		return false
	}
	g.takeTag(catalog.TagCharm)
	g.takeTag(catalog.TagD6)
	return g.PrepareBlindSelect()
}

// takeTag removes and returns the first queued tag with the given effect,
// or nil when none is pending.
func (g *Game) takeTag(effect string) *catalog.Tag {
	for i := range g.tags {
		if g.tags[i].Effect == effect {
			tag := g.tags[i]
			g.tags = append(g.tags[:i], g.tags[i+1:]...)
			return &tag
		}
	}
	return nil
}

func (g *Game) hasTag(effect string) bool {
	for _, t := range g.tags {
		if t.Effect == effect {
			return true
		}
	}
	return false
}

// OwnsVoucher reports whether the voucher id has been purchased this run.
func (g *Game) OwnsVoucher(id string) bool {
	if id == "" {
		return false
	}
	for _, v := range g.vouchers {
		if v == id {
			return true
		}
	}
	return false
}

// voucherWithEffect finds the catalog voucher id carrying an effect.
func voucherWithEffect(cat *catalog.Catalog, effect string) string {
	for _, v := range cat.Vouchers {
		if v.Effect == effect {
			return v.ID
		}
	}
	return ""
}

// emitUpdate publishes an immutable snapshot to the presentation layer.
func (g *Game) emitUpdate() {
	if g.Callbacks.OnUpdate == nil {
		return
	}
	g.Callbacks.OnUpdate(g.Snapshot())
}

// Snapshot builds the immutable state record described in the external
// interface: everything a renderer needs, nothing it can mutate.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		State:        g.state,
		Ante:         g.ante,
		Money:        g.money,
		Target:       g.targetScore,
		Current:      g.currentScore,
		HandsLeft:    g.handsLeft,
		DiscardsLeft: g.discardsLeft,
		MaxHandSize:  g.maxHandSize,
		Hand:         viewCards(g.hand),
		DeckLeft:     g.deck.Remaining(),
		Jokers:       g.jokers.Jokers(),
		Vouchers:     append([]string(nil), g.vouchers...),
		Tags:         append([]catalog.Tag(nil), g.tags...),
		HandLevels:   make(map[poker.HandType]int, len(g.handLevels)),
	}
	for t, lvl := range g.handLevels {
		snap.HandLevels[t] = lvl
	}
	if g.blind != nil {
		b := *g.blind
		snap.Blind = &b
	}
	if g.nextTag != nil {
		t := *g.nextTag
		snap.NextTag = &t
	}
	snap.Consumables = make([]*catalog.Consumable, ConsumableSlots)
	for i, c := range g.consumables {
		if c != nil {
			clone := *c
			snap.Consumables[i] = &clone
		}
	}
	if g.shop != nil && g.state == StateShop {
		snap.Shop = g.shop.view()
	}
	return snap
}
