package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natagames/natarun/internal/catalog"
	"github.com/natagames/natarun/internal/game"
	"github.com/natagames/natarun/internal/protocol"
)

func testServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	cfg := game.DefaultConfig()
	cfg.Seed = 1
	return New("127.0.0.1:0", cfg, cat, log.New(io.Discard), opts...)
}

// dial spins up an httptest server around the play handler and connects a
// websocket client to it.
func dial(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(s.handlePlay))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/play"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn, v any) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var peek struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(data, &peek))
	if v != nil {
		require.NoError(t, json.Unmarshal(data, v))
	}
	return peek.Type
}

func sendCommand(t *testing.T, conn *websocket.Conn, cmd protocol.Command) {
	t.Helper()
	cmd.Type = protocol.TypeCommand
	require.NoError(t, conn.WriteJSON(cmd))
}

func TestSessionOpensAtBlindSelect(t *testing.T) {
	conn := dial(t, testServer(t))

	var snap protocol.Snapshot
	require.Equal(t, protocol.TypeSnapshot, readMessage(t, conn, &snap))
	assert.Equal(t, game.StateBlindSelect, snap.Snapshot.State)
	assert.Equal(t, 1, snap.Snapshot.Ante)
	require.NotNil(t, snap.Snapshot.Blind)
	assert.Equal(t, 300, snap.Snapshot.Blind.Target)
}

func TestStartRoundRoundTrip(t *testing.T) {
	conn := dial(t, testServer(t))
	readMessage(t, conn, nil) // initial snapshot

	sendCommand(t, conn, protocol.Command{Action: protocol.ActionStartRound})

	// The engine emits the new state before the command is acknowledged.
	var snap protocol.Snapshot
	require.Equal(t, protocol.TypeSnapshot, readMessage(t, conn, &snap))
	assert.Equal(t, game.StatePlaying, snap.Snapshot.State)
	assert.Len(t, snap.Snapshot.Hand, 8)

	var result protocol.Result
	require.Equal(t, protocol.TypeResult, readMessage(t, conn, &result))
	assert.Equal(t, protocol.ActionStartRound, result.Action)
	assert.True(t, result.OK)
}

func TestRejectedOperationAcksFalse(t *testing.T) {
	conn := dial(t, testServer(t))
	readMessage(t, conn, nil)

	// Playing a hand during blind select is a no-op.
	sendCommand(t, conn, protocol.Command{Action: protocol.ActionPlayHand})

	var result protocol.Result
	require.Equal(t, protocol.TypeResult, readMessage(t, conn, &result))
	assert.Equal(t, protocol.ActionPlayHand, result.Action)
	assert.False(t, result.OK)
}

func TestUnknownActionErrors(t *testing.T) {
	conn := dial(t, testServer(t))
	readMessage(t, conn, nil)

	sendCommand(t, conn, protocol.Command{Action: "summon"})

	var errMsg protocol.Error
	require.Equal(t, protocol.TypeError, readMessage(t, conn, &errMsg))
	assert.Equal(t, "unknown_action", errMsg.Code)
}

func TestMalformedJSONErrors(t *testing.T) {
	conn := dial(t, testServer(t))
	readMessage(t, conn, nil)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{nope")))

	var errMsg protocol.Error
	require.Equal(t, protocol.TypeError, readMessage(t, conn, &errMsg))
	assert.Equal(t, "bad_json", errMsg.Code)
}

func TestIdleConnectionIsClosed(t *testing.T) {
	clock := quartz.NewMock(t)
	conn := dial(t, testServer(t, WithClock(clock), WithIdleTimeout(time.Minute)))

	// Once the first snapshot arrives the idle timer is armed.
	readMessage(t, conn, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(time.Minute).MustWait(ctx)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
