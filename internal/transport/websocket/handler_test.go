package websocket

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/quadtoe/internal/domain"
	"github.com/iamasit07/quadtoe/internal/service/bot"
	"github.com/iamasit07/quadtoe/internal/service/game"
	"github.com/rs/zerolog"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newServer(t *testing.T) (*httptest.Server, *Handler) {
	return newServerWithLogger(t, zerolog.Nop())
}

func newServerWithLogger(t *testing.T, logger zerolog.Logger) (*httptest.Server, *Handler) {
	t.Helper()
	sessions := game.NewManager(func(p bot.Profile) *bot.Engine {
		return bot.NewEngine(p, bot.WithDepth(2))
	}, zerolog.Nop())
	h := NewHandler(NewConnectionManager(), sessions, "easy", []string{"http://localhost:5173"}, logger)
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)
	return srv, h
}

func dial(t *testing.T, srv *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) domain.ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg domain.ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func send(t *testing.T, conn *websocket.Conn, msg interface{}) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPlayOverWebSocket(t *testing.T) {
	srv, h := newServer(t)
	conn := dial(t, srv, nil)

	send(t, conn, domain.ClientMessage{Type: "action", Action: domain.Place(domain.Pos(0, 0))})
	if msg := read(t, conn); msg.Type != "error" {
		t.Fatalf("expected error before new_game, got %+v", msg)
	}

	send(t, conn, domain.ClientMessage{Type: "new_game"})
	state := read(t, conn)
	if state.Type != "game_state" || state.GameID == "" || state.YourPlayer != 1 || state.Board == nil {
		t.Fatalf("unexpected state %+v", state)
	}

	send(t, conn, domain.ClientMessage{Type: "action", Action: domain.Place(domain.Pos(1, 1))})
	state = read(t, conn)
	if state.Type != "game_state" || state.BotAction == nil || state.Board.PiecesPlaced.PlayerB != 1 {
		t.Fatalf("expected bot reply, got %+v", state)
	}

	send(t, conn, domain.ClientMessage{Type: "action", Action: domain.Place(domain.Pos(1, 1))})
	if msg := read(t, conn); msg.Type != "error" || msg.Message != domain.ErrInvalidMove.Error() {
		t.Fatalf("expected invalid move error, got %+v", msg)
	}

	conn.WriteMessage(websocket.TextMessage, []byte("{not json"))
	if msg := read(t, conn); msg.Type != "error" {
		t.Fatalf("expected format error, got %+v", msg)
	}

	send(t, conn, domain.ClientMessage{Type: "resign"})
	if msg := read(t, conn); msg.Type != "game_state" || msg.Status != domain.StatusWon {
		t.Fatalf("unexpected state after resign %+v", msg)
	}
	over := read(t, conn)
	if over.Type != "game_over" || over.Winner != 2 || over.Message != "Alice wins!" {
		t.Fatalf("unexpected game_over %+v", over)
	}

	if h.Sessions.Count() != 1 || h.ConnManager.Count() != 1 {
		t.Fatalf("sessions=%d conns=%d", h.Sessions.Count(), h.ConnManager.Count())
	}
	conn.Close()
	waitFor(t, "session removal", func() bool { return h.Sessions.Count() == 0 && h.ConnManager.Count() == 0 })
}

func TestNewGameReplacesSession(t *testing.T) {
	srv, h := newServer(t)
	conn := dial(t, srv, nil)

	send(t, conn, domain.ClientMessage{Type: "new_game", Difficulty: "hard", HumanPlayer: 2})
	first := read(t, conn)
	if first.BotAction == nil || first.YourPlayer != 2 {
		t.Fatalf("bot should open when the human plays second: %+v", first)
	}

	send(t, conn, domain.ClientMessage{Type: "new_game"})
	second := read(t, conn)
	if second.GameID == first.GameID {
		t.Fatal("expected a fresh game")
	}
	if _, ok := h.Sessions.Get(first.GameID); ok || h.Sessions.Count() != 1 {
		t.Fatal("previous session should be removed")
	}

	send(t, conn, domain.ClientMessage{Type: "new_game", Difficulty: "nightmare"})
	if msg := read(t, conn); msg.Type != "error" {
		t.Fatalf("expected error for unknown difficulty, got %+v", msg)
	}
	send(t, conn, domain.ClientMessage{Type: "rematch"})
	if msg := read(t, conn); msg.Type != "error" {
		t.Fatalf("expected error for unknown type, got %+v", msg)
	}
}

func TestRejectsForeignOrigin(t *testing.T) {
	srv, _ := newServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	if _, _, err := websocket.DefaultDialer.Dial(url, header); err == nil {
		t.Fatal("expected handshake failure")
	}
	dial(t, srv, http.Header{"Origin": []string{"http://localhost:5173"}})
}

func TestCloseAll(t *testing.T) {
	srv, h := newServer(t)
	conn := dial(t, srv, nil)
	waitFor(t, "registration", func() bool { return h.ConnManager.Count() == 1 })

	h.ConnManager.CloseAll()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Fatalf("expected going-away close, got %v", err)
	}
}

func TestCloseAfterSessionExpired(t *testing.T) {
	var logs syncBuffer
	srv, h := newServerWithLogger(t, zerolog.New(&logs).Level(zerolog.DebugLevel))
	conn := dial(t, srv, nil)

	send(t, conn, domain.ClientMessage{Type: "new_game"})
	state := read(t, conn)
	if err := h.Sessions.Remove(state.GameID); err != nil {
		t.Fatal(err)
	}

	conn.Close()
	waitFor(t, "remove failure log", func() bool {
		out := logs.String()
		return strings.Contains(out, "remove session failed") && strings.Contains(out, game.ErrSessionNotFound.Error())
	})
	waitFor(t, "connection removal", func() bool { return h.ConnManager.Count() == 0 })
}
