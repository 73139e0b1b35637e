package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/quadtoe/internal/domain"
	"github.com/iamasit07/quadtoe/internal/service/game"
	"github.com/rs/zerolog"
)

type Handler struct {
	ConnManager       *ConnectionManager
	Sessions          *game.Manager
	DefaultDifficulty string
	Upgrader          websocket.Upgrader
	logger            zerolog.Logger
}

// NewHandler accepts upgrades from requests without an Origin header or
// from one of allowedOrigins.
func NewHandler(cm *ConnectionManager, sessions *game.Manager, difficulty string, allowedOrigins []string, logger zerolog.Logger) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &Handler{
		ConnManager:       cm,
		Sessions:          sessions,
		DefaultDifficulty: difficulty,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// HandleWebSocket upgrades the connection and serves it until it closes.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("upgrade failed")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	h.handleConnection(ctx, newClient(conn))
}

func (h *Handler) handleConnection(ctx context.Context, client *Client) {
	conn := client.conn
	h.ConnManager.Add(client)

	defer func() {
		if client.gameID != "" {
			h.removeSession(client.gameID)
		}
		h.ConnManager.Remove(client)
		h.logger.Debug().Str("game", client.gameID).Msg("connection closed")
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := client.ping(); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Info().Err(err).Msg("client disconnected unexpectedly")
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Debug().Err(err).Msg("invalid message format")
			client.SendError("Invalid message format")
			continue
		}

		h.processMessage(ctx, client, msg)
	}
}

// removeSession drops a session the connection owns. The cleanup worker may
// have removed it already.
func (h *Handler) removeSession(id string) {
	if err := h.Sessions.Remove(id); err != nil {
		h.logger.Debug().Err(err).Str("game", id).Msg("remove session failed")
	}
}

func (h *Handler) processMessage(ctx context.Context, client *Client, msg domain.ClientMessage) {
	switch msg.Type {
	case "new_game":
		if client.gameID != "" {
			h.removeSession(client.gameID)
			client.gameID = ""
		}

		difficulty := msg.Difficulty
		if difficulty == "" {
			difficulty = h.DefaultDifficulty
		}
		human := domain.Cell(msg.HumanPlayer)
		if msg.HumanPlayer == 0 {
			human = domain.PlayerA
		}

		view, err := h.Sessions.Create(ctx, difficulty, human)
		if err != nil {
			client.SendError(err.Error())
			return
		}
		client.gameID = view.GameID
		h.sendState(client, view)

	case "action":
		if client.gameID == "" {
			client.SendError("No active game")
			return
		}
		view, err := h.Sessions.Play(ctx, client.gameID, msg.Action)
		if err != nil {
			client.SendError(err.Error())
			return
		}
		h.sendState(client, view)

	case "resign":
		if client.gameID == "" {
			client.SendError("No active game")
			return
		}
		view, err := h.Sessions.Resign(client.gameID)
		if err != nil {
			client.SendError(err.Error())
			return
		}
		h.sendState(client, view)

	default:
		client.SendError("Unknown message type")
	}
}

// sendState sends game_state, followed by game_over once the game has
// ended.
func (h *Handler) sendState(client *Client, view game.SessionView) {
	board := view.Board
	msg := domain.ServerMessage{
		Type:          "game_state",
		GameID:        view.GameID,
		YourPlayer:    view.HumanPlayer,
		CurrentPlayer: view.CurrentPlayer,
		Board:         &board,
		Status:        view.Status,
		Winner:        view.Winner,
		BotAction:     view.BotAction,
	}
	if err := client.Send(msg); err != nil {
		h.logger.Debug().Err(err).Msg("send failed")
		return
	}

	if view.Status != domain.StatusActive {
		msg.Type = "game_over"
		msg.Message = gameOverMessage(view)
		client.Send(msg)
	}
}

func gameOverMessage(view game.SessionView) string {
	switch {
	case view.Status == domain.StatusDraw:
		return "Game over."
	case view.Winner == view.HumanPlayer:
		return "You win!"
	}
	return view.BotName + " wins!"
}
