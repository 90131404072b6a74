// Package tui is the terminal presentation layer. It owns a single game
// instance, drives it from key events, and renders only from snapshots;
// no rules logic lives here.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/natagames/natarun/internal/game"
	"github.com/natagames/natarun/internal/score"
)

// Model is the Bubble Tea model for an interactive run.
type Model struct {
	game   *game.Game
	logger *log.Logger

	snapshot   game.Snapshot
	lastPlayed *game.HandPlayed
	runLog     []string
	logView    viewport.Model
	status     string
	width      int
	color      bool
	quitting   bool
}

// New creates the TUI around an already-constructed game. The model
// registers itself for snapshots and kicks the run off at blind select.
func New(g *game.Game, logger *log.Logger) *Model {
	vp := viewport.New(80, 6)
	m := &Model{
		game:    g,
		logger:  logger.WithPrefix("tui"),
		logView: vp,
		color:   termenv.ColorProfile() != termenv.Ascii,
	}
	g.Callbacks = game.Callbacks{
		OnUpdate: func(snap game.Snapshot) { m.snapshot = snap },
		OnHandPlayed: func(played game.HandPlayed) {
			p := played
			m.lastPlayed = &p
			m.appendLog(fmt.Sprintf("%s lvl.%d scored %d (%d x %d)",
				played.HandType, played.Level, played.Score.Total, played.Score.Chips, played.Score.Mult))
		},
		OnRoundEnd: func(win bool) {
			if win {
				m.appendLog("round won")
			} else {
				m.appendLog("run over")
			}
		},
	}
	return m
}

func (m *Model) appendLog(line string) {
	m.runLog = append(m.runLog, line)
	m.logView.SetContent(strings.Join(m.runLog, "\n"))
	m.logView.GotoBottom()
}

// Init prepares the first blind select.
func (m *Model) Init() tea.Cmd {
	m.game.PrepareBlindSelect()
	return nil
}

// Update handles key events. Every key maps onto one engine operation;
// rejected operations surface as a status line, mirroring the engine's
// silent no-op contract.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.logView.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		m.quitting = true
		return m, tea.Quit
	}

	m.status = ""
	switch m.snapshot.State {
	case game.StateBlindSelect:
		switch key {
		case "enter":
			m.lastPlayed = nil
			m.ok(m.game.StartRound(), "cannot start the round")
		case "s":
			m.ok(m.game.SkipBlind(), "cannot skip this blind")
		}
	case game.StatePlaying:
		switch key {
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			idx := int(key[0] - '1')
			if idx < len(m.snapshot.Hand) {
				m.game.SelectCard(m.snapshot.Hand[idx].ID)
			}
		case "p":
			m.lastPlayed = nil
			m.ok(m.game.PlayHand(), "select 1-5 cards first")
		case "d":
			m.ok(m.game.Discard(), "no discards left or nothing selected")
		case "r":
			m.game.SortHand("rank")
		case "u":
			m.game.SortHand("suit")
		case "x":
			m.ok(m.game.UseConsumable(0), "nothing usable in slot 1")
		case "c":
			m.ok(m.game.UseConsumable(1), "nothing usable in slot 2")
		}
	case game.StateShop:
		m.handleShopKey(key)
	}
	return m, nil
}

func (m *Model) handleShopKey(key string) {
	shop := m.snapshot.Shop
	if shop == nil {
		return
	}
	switch key {
	case "1", "2":
		idx := int(key[0] - '1')
		if idx < len(shop.Jokers) {
			m.ok(m.game.BuyJoker(shop.Jokers[idx].ID), "cannot buy that joker")
		}
	case "3", "4":
		idx := int(key[0] - '3')
		if idx < len(shop.Consumables) {
			m.ok(m.game.BuyConsumable(shop.Consumables[idx].ID), "cannot buy that consumable")
		}
	case "5":
		if len(shop.Vouchers) > 0 {
			m.ok(m.game.BuyVoucher(shop.Vouchers[0].ID), "cannot buy that voucher")
		}
	case "r":
		m.ok(m.game.RerollShop(), "not enough money to reroll")
	case "x":
		m.ok(m.game.UseConsumable(0), "nothing usable in slot 1")
	case "c":
		m.ok(m.game.UseConsumable(1), "nothing usable in slot 2")
	case "n", "enter":
		m.game.NextRound()
	}
}

func (m *Model) ok(accepted bool, rejection string) {
	if !accepted {
		m.status = rejection
	}
}

// View renders the current snapshot.
func (m *Model) View() string {
	if m.quitting {
		return "Thanks for playing!\n"
	}

	snap := m.snapshot
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(" ♠ ♥ natarun ♦ ♣ "))
	b.WriteString("\n\n")
	b.WriteString(m.renderHUD(snap))
	b.WriteString("\n")

	switch snap.State {
	case game.StateBlindSelect:
		b.WriteString(m.renderBlindSelect(snap))
	case game.StatePlaying:
		b.WriteString(m.renderPlaying(snap))
	case game.StateShop:
		b.WriteString(m.renderShop(snap))
	case game.StateGameOver:
		b.WriteString(ErrorStyle.Render("GAME OVER"))
		b.WriteString(fmt.Sprintf("\nYou reached ante %d. Press q to quit.\n", snap.Ante))
	}

	if m.status != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.status) + "\n")
	}
	if len(m.runLog) > 0 {
		b.WriteString("\n" + HelpStyle.Render("— run log —") + "\n")
		b.WriteString(m.logView.View())
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderHUD(snap game.Snapshot) string {
	blindName := "-"
	if snap.Blind != nil {
		blindName = snap.Blind.Name
	}
	hud := fmt.Sprintf("Ante %d | %s | Score %d/%d | Hands %d | Discards %d | Deck %d",
		snap.Ante, blindName, snap.Current, snap.Target, snap.HandsLeft, snap.DiscardsLeft, snap.DeckLeft)
	return HUDStyle.Render(hud) + "  " + MoneyStyle.Render(fmt.Sprintf("$%d", snap.Money)) + "\n" +
		m.renderOwned(snap)
}

func (m *Model) renderOwned(snap game.Snapshot) string {
	var parts []string
	for _, j := range snap.Jokers {
		parts = append(parts, j.Name)
	}
	jokers := "Jokers: none"
	if len(parts) > 0 {
		jokers = "Jokers: " + strings.Join(parts, ", ")
	}

	slots := make([]string, len(snap.Consumables))
	for i, c := range snap.Consumables {
		if c == nil {
			slots[i] = "empty"
		} else {
			slots[i] = c.Name
		}
	}
	return HelpStyle.Render(jokers+" | Slots: "+strings.Join(slots, " / ")) + "\n"
}

func (m *Model) renderBlindSelect(snap game.Snapshot) string {
	var b strings.Builder
	if snap.Blind != nil {
		b.WriteString(fmt.Sprintf("\n%s — score at least %d, reward $%d\n",
			PreviewStyle.Render(snap.Blind.Name), snap.Blind.Target, snap.Blind.Reward))
		if snap.Blind.Desc != "" {
			b.WriteString(ErrorStyle.Render(snap.Blind.Desc) + "\n")
		}
	}
	if snap.NextTag != nil {
		b.WriteString(fmt.Sprintf("Skip reward: %s — %s\n", snap.NextTag.Name, snap.NextTag.Desc))
	}
	b.WriteString(HelpStyle.Render("\nenter: play blind • s: skip • q: quit\n"))
	return b.String()
}

func (m *Model) renderPlaying(snap game.Snapshot) string {
	var b strings.Builder
	b.WriteString("\n")
	for i, c := range snap.Hand {
		b.WriteString(fmt.Sprintf("%d:%s ", i+1, m.renderCard(c)))
	}
	b.WriteString("\n")

	if preview := m.game.EvaluateSelected(); preview != nil {
		b.WriteString(PreviewStyle.Render(fmt.Sprintf("\n%s lvl.%d — %d x %d = %d\n",
			preview.HandType, preview.Level, preview.Chips, preview.Mult, preview.Total)))
	}

	if m.lastPlayed != nil {
		b.WriteString(m.renderBreakdown(m.lastPlayed))
	}

	b.WriteString(HelpStyle.Render("\n1-9: select • p: play • d: discard • r/u: sort • x/c: use slot • q: quit\n"))
	return b.String()
}

func (m *Model) renderBreakdown(played *game.HandPlayed) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("\nLast hand: %s lvl.%d → %d x %d = %d\n",
		played.HandType, played.Level, played.Score.Chips, played.Score.Mult, played.Score.Total))
	for _, step := range played.Score.Breakdown {
		label := step.Label
		if step.Note != "" {
			label += " (" + step.Note + ")"
		}
		marker := "🂠"
		if step.Source == score.SourceJoker {
			marker = "★"
		}
		b.WriteString(HelpStyle.Render(fmt.Sprintf("  %s %-28s %d x %d\n",
			marker, label, step.RunningChips, step.RunningMult)))
	}
	return b.String()
}

func (m *Model) renderShop(snap game.Snapshot) string {
	shop := snap.Shop
	if shop == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n" + PreviewStyle.Render("THE SHOP") + "\n")

	slot := 1
	for _, j := range shop.Jokers {
		b.WriteString(ShopItemStyle.Render(fmt.Sprintf("%d: %s ($%d) — %s", slot, j.Name, j.Cost, j.Desc)) + "\n")
		slot++
	}
	slot = 3
	for _, c := range shop.Consumables {
		b.WriteString(ShopItemStyle.Render(fmt.Sprintf("%d: %s ($%d) — %s", slot, c.Name, c.Cost, c.Desc)) + "\n")
		slot++
	}
	if len(shop.Vouchers) > 0 {
		v := shop.Vouchers[0]
		b.WriteString(ShopItemStyle.Render(fmt.Sprintf("5: %s ($%d) — %s", v.Name, v.Cost, v.Desc)) + "\n")
	}

	b.WriteString(HelpStyle.Render("\n1-5: buy • r: reroll • x/c: use slot • n: next round • q: quit\n"))
	return b.String()
}

func (m *Model) renderCard(c game.CardView) string {
	label := c.Rank + suitSymbol(c.Suit)
	if !m.color {
		if c.Selected {
			return "[" + label + "]"
		}
		return label
	}
	switch {
	case c.Selected:
		return SelectedCardStyle.Render(label)
	case c.Debuffed:
		return DebuffedCardStyle.Render(label)
	case c.Suit == "Hearts" || c.Suit == "Diamonds":
		return RedCardStyle.Render(label)
	default:
		return BlackCardStyle.Render(label)
	}
}

func suitSymbol(suit string) string {
	switch suit {
	case "Spades":
		return "♠"
	case "Hearts":
		return "♥"
	case "Clubs":
		return "♣"
	case "Diamonds":
		return "♦"
	default:
		return "?"
	}
}
