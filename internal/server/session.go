package server

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/natagames/natarun/internal/catalog"
	"github.com/natagames/natarun/internal/game"
	"github.com/natagames/natarun/internal/protocol"
)

// session couples one websocket connection with one run. All engine calls
// happen on the session's read loop, so the game never sees concurrent
// access; snapshot callbacks write out inline, synchronously.
type session struct {
	conn        *websocket.Conn
	game        *game.Game
	logger      *log.Logger
	clock       quartz.Clock
	idleTimeout time.Duration
}

func newSession(conn *websocket.Conn, cfg game.Config, cat *catalog.Catalog, logger *log.Logger, clock quartz.Clock, idleTimeout time.Duration) *session {
	s := &session{
		conn:        conn,
		logger:      logger.WithPrefix("session"),
		clock:       clock,
		idleTimeout: idleTimeout,
	}

	g := game.New(cfg, cat, logger)
	g.Callbacks = game.Callbacks{
		OnUpdate: func(snap game.Snapshot) {
			s.write(protocol.Snapshot{Type: protocol.TypeSnapshot, Snapshot: snap})
		},
		OnHandPlayed: func(played game.HandPlayed) {
			s.write(protocol.HandPlayed{Type: protocol.TypeHandPlayed, Played: played})
		},
		OnRoundEnd: func(win bool) {
			s.write(protocol.RoundEnd{Type: protocol.TypeRoundEnd, Win: win})
		},
	}
	s.game = g
	return s
}

// run drives the session until the client disconnects or goes idle.
func (s *session) run() {
	defer s.conn.Close()

	// Idle watchdog: every command resets the timer, expiry closes the
	// connection which in turn unblocks the read loop.
	idle := s.clock.AfterFunc(s.idleTimeout, func() {
		s.logger.Info("closing idle connection")
		s.conn.Close()
	})
	defer idle.Stop()

	s.game.PrepareBlindSelect()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("connection closed", "error", err)
			}
			return
		}
		idle.Reset(s.idleTimeout)

		var cmd protocol.Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			s.write(protocol.Error{Type: protocol.TypeError, Code: "bad_json", Message: err.Error()})
			continue
		}
		if cmd.Type != protocol.TypeCommand {
			s.write(protocol.Error{Type: protocol.TypeError, Code: "bad_type", Message: "expected a command message"})
			continue
		}
		s.dispatch(cmd)
	}
}

// dispatch maps a command onto the engine operation and acknowledges it.
// Engine rejections come back as ok=false, matching the boolean no-op
// contract of the rules core.
func (s *session) dispatch(cmd protocol.Command) {
	result := protocol.Result{Type: protocol.TypeResult, Action: cmd.Action}

	switch cmd.Action {
	case protocol.ActionSelectCard:
		result.OK = s.game.SelectCard(cmd.CardID)
	case protocol.ActionSortHand:
		s.game.SortHand(cmd.By)
		result.OK = true
	case protocol.ActionPreview:
		result.Preview = s.game.EvaluateSelected()
		result.OK = result.Preview != nil
	case protocol.ActionStartRound:
		result.OK = s.game.StartRound()
	case protocol.ActionSkipBlind:
		result.OK = s.game.SkipBlind()
	case protocol.ActionPlayHand:
		result.OK = s.game.PlayHand()
	case protocol.ActionDiscard:
		result.OK = s.game.Discard()
	case protocol.ActionRerollShop:
		result.OK = s.game.RerollShop()
	case protocol.ActionBuyJoker:
		result.OK = s.game.BuyJoker(cmd.ItemID)
	case protocol.ActionBuyConsumable:
		result.OK = s.game.BuyConsumable(cmd.ItemID)
	case protocol.ActionBuyVoucher:
		result.OK = s.game.BuyVoucher(cmd.ItemID)
	case protocol.ActionUseConsumable:
		result.OK = s.game.UseConsumable(cmd.Index)
	case protocol.ActionNextRound:
		result.OK = s.game.NextRound()
	default:
		s.write(protocol.Error{Type: protocol.TypeError, Code: "unknown_action", Message: cmd.Action})
		return
	}

	s.write(result)
}

func (s *session) write(v any) {
	if err := s.conn.WriteJSON(v); err != nil {
		s.logger.Debug("write failed", "error", err)
	}
}
