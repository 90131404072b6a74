package game

import (
	"github.com/natagames/natarun/internal/catalog"
	"github.com/natagames/natarun/internal/deck"
	"github.com/natagames/natarun/internal/poker"
	"github.com/natagames/natarun/internal/score"
)

// State is the game's lifecycle state.
type State string

const (
	// StateInit is the internal pre-prepare state between construction and
	// the first PrepareBlindSelect call. No gameplay operation is valid here.
	StateInit        State = "INIT"
	StateBlindSelect State = "BLIND_SELECT"
	StatePlaying     State = "PLAYING"
	StateShop        State = "SHOP"
	StateGameOver    State = "GAME_OVER"
)

// BlindType identifies the slot within an ante.
type BlindType string

const (
	BlindSmall BlindType = "Small"
	BlindBig   BlindType = "Big"
	BlindBoss  BlindType = "Boss"
)

// Blind is the derived per-round snapshot of the current blind: its
// display info, score target and cash reward, plus the boss rule when the
// blind is a boss.
type Blind struct {
	ID     string
	Type   BlindType
	Name   string
	Desc   string
	Target int
	Reward int
	Boss   *catalog.Boss
}

// CardView is an immutable copy of a card for presentation layers.
type CardView struct {
	ID        int    `json:"id"`
	Suit      string `json:"suit"`
	Rank      string `json:"rank"`
	Value     int    `json:"value"`
	ChipBonus int    `json:"chip_bonus,omitempty"`
	MultBonus int    `json:"mult_bonus,omitempty"`
	Debuffed  bool   `json:"debuffed,omitempty"`
	Selected  bool   `json:"selected,omitempty"`
}

func viewCard(c *deck.Card) CardView {
	return CardView{
		ID:        c.ID,
		Suit:      c.Suit.String(),
		Rank:      c.Rank.String(),
		Value:     c.Value(),
		ChipBonus: c.ChipBonus,
		MultBonus: c.MultBonus,
		Debuffed:  c.Debuffed,
		Selected:  c.Selected,
	}
}

func viewCards(cards []*deck.Card) []CardView {
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = viewCard(c)
	}
	return out
}

// ShopView is the current shop listing.
type ShopView struct {
	Jokers      []catalog.Joker
	Consumables []catalog.Consumable
	Vouchers    []catalog.Voucher
}

// Snapshot is the immutable state record emitted after every mutating
// operation. Presentation layers render from snapshots only and never
// reach back into game internals.
type Snapshot struct {
	State        State
	Ante         int
	Blind        *Blind
	NextTag      *catalog.Tag
	Money        int
	Target       int
	Current      int
	HandsLeft    int
	DiscardsLeft int
	MaxHandSize  int
	Hand         []CardView
	DeckLeft     int
	Jokers       []catalog.Joker
	Consumables  []*catalog.Consumable
	Vouchers     []string
	Tags         []catalog.Tag
	HandLevels   map[poker.HandType]int
	Shop         *ShopView
}

// Preview is the read-only result of evaluating the current selection.
type Preview struct {
	HandType     poker.HandType
	Level        int
	Chips        int
	Mult         int
	Total        int
	ScoringCards []CardView
}

// HandPlayed is the event payload carried to the presentation layer when
// a hand is committed, with the verbose breakdown for animation replay.
type HandPlayed struct {
	Cards        []CardView
	HandType     poker.HandType
	Level        int
	ScoringCards []CardView
	Score        score.Result
}

// Callbacks are the synchronous notifications fired at the end of each
// state-mutating call. All fields are optional.
type Callbacks struct {
	OnUpdate     func(Snapshot)
	OnHandPlayed func(HandPlayed)
	OnRoundEnd   func(win bool)
}
