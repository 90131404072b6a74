package game

import (
	"github.com/natagames/natarun/internal/catalog"
	"github.com/natagames/natarun/internal/score"
)

const (
	shopJokerSlots      = 2
	shopConsumableSlots = 2
	shopVoucherSlots    = 1
)

// shop is the transient per-visit listing: priced clones of catalog
// definitions, regenerated on entry and reroll. Purchases remove their
// slot so the same listing cannot be bought twice.
type shop struct {
	jokers      []catalog.Joker
	consumables []catalog.Consumable
	vouchers    []catalog.Voucher
}

func (s *shop) view() *ShopView {
	return &ShopView{
		Jokers:      append([]catalog.Joker(nil), s.jokers...),
		Consumables: append([]catalog.Consumable(nil), s.consumables...),
		Vouchers:    append([]catalog.Voucher(nil), s.vouchers...),
	}
}

// generateShop rolls a fresh listing: unowned jokers, any consumables and
// one unowned voucher. A pending charm tag makes the whole visit free and
// is consumed here.
func (g *Game) generateShop() {
	s := &shop{}

	var jokerPool []catalog.Joker
	for _, j := range g.catalog.Jokers {
		if !g.jokers.Owns(j.ID) {
			jokerPool = append(jokerPool, j)
		}
	}
	s.jokers = pickN(g, jokerPool, shopJokerSlots)

	s.consumables = pickN(g, g.catalog.Consumables, shopConsumableSlots)

	var voucherPool []catalog.Voucher
	for _, v := range g.catalog.Vouchers {
		if !g.OwnsVoucher(v.ID) {
			voucherPool = append(voucherPool, v)
		}
	}
	s.vouchers = pickN(g, voucherPool, shopVoucherSlots)

	if tag := g.takeTag(catalog.TagCharm); tag != nil {
		for i := range s.jokers {
			s.jokers[i].Cost = 0
		}
		for i := range s.consumables {
			s.consumables[i].Cost = 0
		}
		for i := range s.vouchers {
			s.vouchers[i].Cost = 0
		}
		g.logger.Debug("charm tag consumed, shop is free")
	}

	g.shop = s
}

// pickN copies up to n random entries from the pool without replacement.
func pickN[T any](g *Game, pool []T, n int) []T {
	if len(pool) == 0 {
		return nil
	}
	indices := g.rng.Perm(len(pool))
	if n > len(indices) {
		n = len(indices)
	}
	out := make([]T, 0, n)
	for _, idx := range indices[:n] {
		out = append(out, pool[idx])
	}
	return out
}

// RerollShop regenerates the listing for the reroll cost, or for free if a
// D6 tag is pending (consuming it). Valid only in the shop.
func (g *Game) RerollShop() bool {
	if g.state != StateShop {
		return false
	}

	cost := g.cfg.RerollCost
	if tag := g.takeTag(catalog.TagD6); tag != nil {
		cost = 0
		g.logger.Debug("d6 tag consumed, free reroll")
	} else if g.money < cost {
		return false
	}

	g.money -= cost
	g.generateShop()
	g.emitUpdate()
	return true
}

// BuyJoker purchases a joker from the current listing. Fails on wrong
// state, unlisted id, insufficient money or full joker slots; a failed
// purchase leaves all state unchanged.
func (g *Game) BuyJoker(id string) bool {
	if g.state != StateShop {
		return false
	}
	idx := -1
	for i := range g.shop.jokers {
		if g.shop.jokers[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	item := g.shop.jokers[idx]
	if g.money < item.Cost {
		return false
	}
	if g.jokers.Count() >= score.MaxJokers {
		return false
	}
	if !g.jokers.AddJoker(id) {
		return false
	}

	g.money -= item.Cost
	g.shop.jokers = append(g.shop.jokers[:idx], g.shop.jokers[idx+1:]...)
	g.logger.Debug("joker bought", "id", id, "cost", item.Cost, "money", g.money)
	g.emitUpdate()
	return true
}

// BuyConsumable purchases a consumable into the first empty slot.
func (g *Game) BuyConsumable(id string) bool {
	if g.state != StateShop {
		return false
	}
	idx := -1
	for i := range g.shop.consumables {
		if g.shop.consumables[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	item := g.shop.consumables[idx]
	if g.money < item.Cost {
		return false
	}
	slot := -1
	for i, c := range g.consumables {
		if c == nil {
			slot = i
			break
		}
	}
	if slot == -1 {
		return false
	}

	clone := item
	g.consumables[slot] = &clone
	g.money -= item.Cost
	g.shop.consumables = append(g.shop.consumables[:idx], g.shop.consumables[idx+1:]...)
	g.logger.Debug("consumable bought", "id", id, "slot", slot, "money", g.money)
	g.emitUpdate()
	return true
}

// BuyVoucher purchases a permanent voucher. Ownership is append-only.
func (g *Game) BuyVoucher(id string) bool {
	if g.state != StateShop {
		return false
	}
	idx := -1
	for i := range g.shop.vouchers {
		if g.shop.vouchers[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	item := g.shop.vouchers[idx]
	if g.money < item.Cost || g.OwnsVoucher(id) {
		return false
	}

	g.vouchers = append(g.vouchers, id)
	g.money -= item.Cost
	g.shop.vouchers = append(g.shop.vouchers[:idx], g.shop.vouchers[idx+1:]...)
	g.logger.Debug("voucher bought", "id", id, "money", g.money)
	g.emitUpdate()
	return true
}
