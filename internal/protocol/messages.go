// Package protocol defines the JSON messages exchanged between the game
// server and remote presentation clients. The server streams snapshots and
// events; clients send commands that map onto the engine's operations.
package protocol

import (
	"github.com/natagames/natarun/internal/game"
)

// Message type identifiers.
const (
	// Client -> Server
	TypeCommand = "command"

	// Server -> Client
	TypeSnapshot   = "snapshot"
	TypeHandPlayed = "hand_played"
	TypeRoundEnd   = "round_end"
	TypeResult     = "result"
	TypeError      = "error"
)

// Command actions, mirroring the engine's public operations.
const (
	ActionSelectCard    = "select_card"
	ActionSortHand      = "sort_hand"
	ActionPreview       = "preview"
	ActionStartRound    = "start_round"
	ActionSkipBlind     = "skip_blind"
	ActionPlayHand      = "play_hand"
	ActionDiscard       = "discard"
	ActionRerollShop    = "reroll_shop"
	ActionBuyJoker      = "buy_joker"
	ActionBuyConsumable = "buy_consumable"
	ActionBuyVoucher    = "buy_voucher"
	ActionUseConsumable = "use_consumable"
	ActionNextRound     = "next_round"
)

// Command is sent by a client to invoke one engine operation.
type Command struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	CardID int    `json:"card_id,omitempty"` // select_card
	ItemID string `json:"item_id,omitempty"` // buy_*
	Index  int    `json:"index,omitempty"`   // use_consumable
	By     string `json:"by,omitempty"`      // sort_hand: "rank" or "suit"
}

// Snapshot carries the full immutable state record after a mutation.
type Snapshot struct {
	Type     string        `json:"type"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// HandPlayed carries the scored hand and its breakdown for replay.
type HandPlayed struct {
	Type   string          `json:"type"`
	Played game.HandPlayed `json:"played"`
}

// RoundEnd reports a win or loss at the end of a round.
type RoundEnd struct {
	Type string `json:"type"`
	Win  bool   `json:"win"`
}

// Result acknowledges a command: whether the engine accepted it, plus the
// preview payload for the preview action.
type Result struct {
	Type    string        `json:"type"`
	Action  string        `json:"action"`
	OK      bool          `json:"ok"`
	Preview *game.Preview `json:"preview,omitempty"`
}

// Error reports a malformed message.
type Error struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
