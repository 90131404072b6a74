// Package catalog holds the static read-only game content: hand base
// values, joker/consumable/voucher/blind/tag definitions. Content ships
// embedded as TOML and can be swapped by loading from a directory; the
// engine never computes catalog data at runtime.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/natagames/natarun/internal/poker"
)

//go:embed data/*.toml
var defaultData embed.FS

// Trigger determines when a joker's effect runs in the scoring pipeline.
type Trigger string

const (
	// TriggerCardScore fires once per scoring card, in evaluation order.
	TriggerCardScore Trigger = "card_score"
	// TriggerHandEval fires once per hand, keyed on the classified type.
	TriggerHandEval Trigger = "hand_eval"
	// TriggerPassive fires once per hand, unconditionally, after the others.
	TriggerPassive Trigger = "passive"
)

// EffectKind is the tagged-variant discriminator for joker effects.
type EffectKind string

const (
	EffectAddChips  EffectKind = "add_chips"  // flat chips
	EffectAddMult   EffectKind = "add_mult"   // flat mult
	EffectMultMult  EffectKind = "mult_mult"  // multiplies mult, may be fractional
	EffectSuitMult  EffectKind = "suit_mult"  // mult per scoring card of Suit
	EffectHandChips EffectKind = "hand_chips" // chips when the hand type is in Hands
)

// Effect is a joker effect as data: a kind plus its parameters. The scoring
// pipeline interprets it; the catalog never carries behaviour.
type Effect struct {
	Kind  EffectKind `toml:"kind"`
	Value float64    `toml:"value"`
	Suit  string     `toml:"suit,omitempty"`
	Hands []string   `toml:"hands,omitempty"`
}

// Joker is a persistent scoring modifier definition.
type Joker struct {
	ID      string  `toml:"id"`
	Name    string  `toml:"name"`
	Desc    string  `toml:"desc"`
	Cost    int     `toml:"cost"`
	Trigger Trigger `toml:"trigger"`
	Effect  Effect  `toml:"effect"`
}

// ConsumableKind distinguishes planets from tarots.
type ConsumableKind string

const (
	KindPlanet ConsumableKind = "planet"
	KindTarot  ConsumableKind = "tarot"
)

// Tarot effect identifiers.
const (
	TarotStrength = "strength"
	TarotDeath    = "death"
	TarotEmpress  = "empress"
	TarotMagician = "magician"
	TarotFool     = "fool"
)

// Consumable is a one-shot item definition. Planets target a hand type;
// tarots carry an id-specific effect over the selected cards.
type Consumable struct {
	ID    string         `toml:"id"`
	Name  string         `toml:"name"`
	Desc  string         `toml:"desc"`
	Cost  int            `toml:"cost"`
	Kind  ConsumableKind `toml:"kind"`
	Hand  string         `toml:"hand,omitempty"`  // planet target hand type
	Tarot string         `toml:"tarot,omitempty"` // tarot effect id
	Value int            `toml:"value,omitempty"` // bonus amount for empress/magician
}

// Voucher effect identifiers.
const (
	VoucherExtraHand    = "extra_hand"
	VoucherExtraDiscard = "extra_discard"
	VoucherHandSize     = "hand_size"
	VoucherInterestCap  = "interest_cap"
)

// Voucher is a permanent one-time upgrade definition.
type Voucher struct {
	ID     string `toml:"id"`
	Name   string `toml:"name"`
	Desc   string `toml:"desc"`
	Cost   int    `toml:"cost"`
	Effect string `toml:"effect"`
	Value  int    `toml:"value,omitempty"`
}

// Debuff kinds for boss blinds.
const (
	DebuffSuit     = "suit"      // cards of Suit score nothing
	DebuffHook     = "hook"      // discard 2 random extra cards after each play
	DebuffHandSize = "hand_size" // -1 max hand size
)

// Debuff is a boss blind's rule modification.
type Debuff struct {
	Kind string `toml:"kind"`
	Suit string `toml:"suit,omitempty"`
}

// Boss is a boss blind definition. Bosses repeat with period len(Bosses)
// because selection is ante mod len(Bosses).
type Boss struct {
	ID     string `toml:"id"`
	Name   string `toml:"name"`
	Desc   string `toml:"desc"`
	Debuff Debuff `toml:"debuff"`
}

// BlindTier is the target multiplier and cash reward for one blind slot.
type BlindTier struct {
	Name   string  `toml:"name"`
	Mult   float64 `toml:"mult"`
	Reward int     `toml:"reward"`
}

// Blinds is the blind progression table.
type Blinds struct {
	AnteTargets []int     `toml:"ante_targets"`
	Small       BlindTier `toml:"small"`
	Big         BlindTier `toml:"big"`
	Boss        BlindTier `toml:"boss"`
	Bosses      []Boss    `toml:"bosses"`
}

// Tag effect identifiers.
const (
	TagMoney = "money" // immediate cash on skip
	TagHandy = "handy" // level up High Card at round start
	TagCharm = "charm" // next shop is free
	TagD6    = "d6"    // next reroll is free
)

// Tag is a skip-blind reward definition.
type Tag struct {
	ID     string `toml:"id"`
	Name   string `toml:"name"`
	Desc   string `toml:"desc"`
	Effect string `toml:"effect"`
	Value  int    `toml:"value,omitempty"`
}

// Catalog bundles every static content table.
type Catalog struct {
	Hands       poker.Values
	Jokers      []Joker
	Consumables []Consumable
	Vouchers    []Voucher
	Blinds      Blinds
	Tags        []Tag
}

type handsFile struct {
	Hands map[string]struct {
		Chips int `toml:"chips"`
		Mult  int `toml:"mult"`
	} `toml:"hands"`
}

type jokersFile struct {
	Jokers []Joker `toml:"joker"`
}

type consumablesFile struct {
	Consumables []Consumable `toml:"consumable"`
}

type vouchersFile struct {
	Vouchers []Voucher `toml:"voucher"`
}

type tagsFile struct {
	Tags []Tag `toml:"tag"`
}

// Default loads the embedded content tables.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		return nil, err
	}
	return load(sub)
}

// LoadDir loads content tables from a directory, allowing swapped content.
func LoadDir(dir string) (*Catalog, error) {
	if _, err := os.Stat(filepath.Join(dir, "hands.toml")); err != nil {
		return nil, fmt.Errorf("catalog dir %s: %w", dir, err)
	}
	return load(os.DirFS(dir))
}

func load(fsys fs.FS) (*Catalog, error) {
	var (
		hands       handsFile
		jokers      jokersFile
		consumables consumablesFile
		vouchers    vouchersFile
		blinds      Blinds
		tags        tagsFile
	)

	if err := decodeFile(fsys, "hands.toml", &hands); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, "jokers.toml", &jokers); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, "consumables.toml", &consumables); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, "vouchers.toml", &vouchers); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, "blinds.toml", &blinds); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, "tags.toml", &tags); err != nil {
		return nil, err
	}

	values := make(poker.Values, len(hands.Hands))
	for name, v := range hands.Hands {
		values[poker.HandType(name)] = poker.BaseValue{Chips: v.Chips, Mult: v.Mult}
	}
	for _, t := range poker.HandTypes {
		if _, ok := values[t]; !ok {
			return nil, fmt.Errorf("hands.toml: missing base value for %q", t)
		}
	}

	if len(blinds.AnteTargets) == 0 {
		return nil, fmt.Errorf("blinds.toml: ante_targets must not be empty")
	}
	if len(blinds.Bosses) == 0 {
		return nil, fmt.Errorf("blinds.toml: at least one boss is required")
	}

	return &Catalog{
		Hands:       values,
		Jokers:      jokers.Jokers,
		Consumables: consumables.Consumables,
		Vouchers:    vouchers.Vouchers,
		Blinds:      blinds,
		Tags:        tags.Tags,
	}, nil
}

func decodeFile(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// JokerByID finds a joker definition, or nil if the id is unknown.
func (c *Catalog) JokerByID(id string) *Joker {
	for i := range c.Jokers {
		if c.Jokers[i].ID == id {
			return &c.Jokers[i]
		}
	}
	return nil
}

// ConsumableByID finds a consumable definition, or nil if unknown.
func (c *Catalog) ConsumableByID(id string) *Consumable {
	for i := range c.Consumables {
		if c.Consumables[i].ID == id {
			return &c.Consumables[i]
		}
	}
	return nil
}

// VoucherByID finds a voucher definition, or nil if unknown.
func (c *Catalog) VoucherByID(id string) *Voucher {
	for i := range c.Vouchers {
		if c.Vouchers[i].ID == id {
			return &c.Vouchers[i]
		}
	}
	return nil
}

// TagByID finds a tag definition, or nil if unknown.
func (c *Catalog) TagByID(id string) *Tag {
	for i := range c.Tags {
		if c.Tags[i].ID == id {
			return &c.Tags[i]
		}
	}
	return nil
}

// AnteTarget returns the base target score for an ante. Antes past the end
// of the table double the last entry per extra ante.
func (b *Blinds) AnteTarget(ante int) int {
	if ante < 1 {
		ante = 1
	}
	if ante <= len(b.AnteTargets) {
		return b.AnteTargets[ante-1]
	}
	target := b.AnteTargets[len(b.AnteTargets)-1]
	for i := len(b.AnteTargets); i < ante; i++ {
		target *= 2
	}
	return target
}
