package game

import (
	"github.com/natagames/natarun/internal/catalog"
	"github.com/natagames/natarun/internal/deck"
	"github.com/natagames/natarun/internal/poker"
)

// UseConsumable consumes the item in the given slot. Planets level up
// their hand type; tarots transform the selected cards. On success the
// slot is cleared, the hand selection is dropped, and the item is recorded
// as last-used for the Fool to replay (the Fool itself is never recorded).
func (g *Game) UseConsumable(index int) bool {
	if index < 0 || index >= ConsumableSlots {
		return false
	}
	item := g.consumables[index]
	if item == nil {
		return false
	}

	switch item.Kind {
	case catalog.KindPlanet:
		g.handLevels[poker.HandType(item.Hand)]++
		g.logger.Debug("planet used", "id", item.ID, "hand", item.Hand, "level", g.handLevels[poker.HandType(item.Hand)])
	case catalog.KindTarot:
		if !g.applyTarot(index, item) {
			return false
		}
	default:
		return false
	}

	g.consumables[index] = nil
	g.deselectAll()
	if !(item.Kind == catalog.KindTarot && item.Tarot == catalog.TarotFool) {
		g.lastUsed = item
	}
	g.emitUpdate()
	return true
}

// applyTarot dispatches a tarot effect. It returns false when the effect's
// selection requirements are not met, in which case nothing changed.
func (g *Game) applyTarot(index int, item *catalog.Consumable) bool {
	selected := g.selectedCards()

	switch item.Tarot {
	case catalog.TarotStrength:
		// Rank up to 2 selected cards one step; Aces stay put.
		if len(selected) == 0 || len(selected) > 2 {
			return false
		}
		for _, c := range selected {
			c.Promote()
		}
		return true

	case catalog.TarotDeath:
		// The first selected card becomes a copy of the second.
		if len(selected) != 2 {
			return false
		}
		selected[0].CopyFrom(selected[1])
		return true

	case catalog.TarotEmpress:
		return addCardBonus(selected, func(c *deck.Card) { c.MultBonus += item.Value })

	case catalog.TarotMagician:
		return addCardBonus(selected, func(c *deck.Card) { c.ChipBonus += item.Value })

	case catalog.TarotFool:
		return g.replayLastConsumable(index)

	default:
		return false
	}
}

func addCardBonus(selected []*deck.Card, apply func(*deck.Card)) bool {
	if len(selected) == 0 || len(selected) > 2 {
		return false
	}
	for _, c := range selected {
		apply(c)
	}
	return true
}

// replayLastConsumable recreates the last non-Fool consumable used into a
// slot other than the Fool's own. When no other slot is free the Fool
// fails outright and stays in its slot; it never overwrites itself.
func (g *Game) replayLastConsumable(foolIndex int) bool {
	if g.lastUsed == nil {
		return false
	}
	target := -1
	for i, c := range g.consumables {
		if i != foolIndex && c == nil {
			target = i
			break
		}
	}
	if target == -1 {
		return false
	}
	clone := *g.lastUsed
	g.consumables[target] = &clone
	g.logger.Debug("fool replayed consumable", "id", clone.ID, "slot", target)
	return true
}

func (g *Game) deselectAll() {
	for _, c := range g.hand {
		c.Selected = false
	}
}
