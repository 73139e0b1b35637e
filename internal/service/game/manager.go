package game

import (
	"context"
	"sync"
	"time"

	"github.com/iamasit07/quadtoe/internal/domain"
	"github.com/iamasit07/quadtoe/internal/service/bot"
	"github.com/iamasit07/quadtoe/pkg/uid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	ErrSessionNotFound domain.Error = "session not found"
	ErrInvalidSide     domain.Error = "human player must be 1 or 2"
)

// EngineFactory builds the engine a new session plays with.
type EngineFactory func(profile bot.Profile) *bot.Engine

// Session is one human-vs-bot game.
type Session struct {
	ID          string
	Difficulty  string
	BotName     string
	HumanPlayer domain.Cell
	Game        *domain.Game
	CreatedAt   time.Time

	mu            sync.Mutex
	engine        *bot.Engine
	lastBotAction *domain.Action
	updatedAt     time.Time
}

func (s *Session) BotPlayer() domain.Cell {
	return s.HumanPlayer.Opponent()
}

// SessionView is the wire representation of a session.
type SessionView struct {
	GameID         string            `json:"gameId"`
	Difficulty     string            `json:"difficulty"`
	BotName        string            `json:"botName"`
	HumanPlayer    int               `json:"humanPlayer"`
	CurrentPlayer  int               `json:"currentPlayer"`
	ExpectedAction domain.ActionKind `json:"expectedAction"`
	Board          domain.BoardView  `json:"board"`
	Status         domain.GameStatus `json:"status"`
	Winner         int               `json:"winner"`
	MoveCount      int               `json:"moveCount"`
	BotAction      *domain.Action    `json:"botAction,omitempty"`
}

// view must be called with s.mu held.
func (s *Session) view() SessionView {
	return SessionView{
		GameID:         s.ID,
		Difficulty:     s.Difficulty,
		BotName:        s.BotName,
		HumanPlayer:    int(s.HumanPlayer),
		CurrentPlayer:  int(s.Game.CurrentPlayer),
		ExpectedAction: s.Game.ExpectedAction(s.Game.CurrentPlayer),
		Board:          s.Game.Board.Snapshot(),
		Status:         s.Game.Status,
		Winner:         int(s.Game.Winner),
		MoveCount:      s.Game.MoveCount,
		BotAction:      s.lastBotAction,
	}
}

func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Manager keeps active sessions in memory.
type Manager struct {
	sessions  map[string]*Session
	mu        sync.RWMutex
	newEngine EngineFactory
	logger    zerolog.Logger
	now       func() time.Time
}

func NewManager(newEngine EngineFactory, logger zerolog.Logger) *Manager {
	if newEngine == nil {
		newEngine = func(p bot.Profile) *bot.Engine { return bot.NewEngine(p) }
	}
	return &Manager{
		sessions:  make(map[string]*Session),
		newEngine: newEngine,
		logger:    logger,
		now:       time.Now,
	}
}

// Create starts a game. If the bot holds PlayerA it moves before Create
// returns.
func (m *Manager) Create(ctx context.Context, difficulty string, humanSide domain.Cell) (SessionView, error) {
	if !humanSide.IsPlayer() {
		return SessionView{}, ErrInvalidSide
	}
	profile, err := bot.ParseDifficulty(difficulty)
	if err != nil {
		return SessionView{}, err
	}

	now := m.now()
	s := &Session{
		ID:          uid.GenerateGameID(),
		Difficulty:  profile.Name,
		BotName:     bot.GetBotName(profile.Name),
		HumanPlayer: humanSide,
		Game:        domain.NewGame(),
		CreatedAt:   now,
		engine:      m.newEngine(profile),
		updatedAt:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Game.CurrentPlayer == s.BotPlayer() {
		if err := m.botTurn(ctx, s); err != nil {
			return SessionView{}, err
		}
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info().Str("game", s.ID).Str("difficulty", s.Difficulty).Int("human", int(humanSide)).Msg("session created")
	return s.view(), nil
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.logger.Info().Str("game", id).Msg("session removed")
	return nil
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Play applies the human's action and, unless that ends the game, the
// bot's reply. If the bot cannot reply the session is left as it was.
func (m *Manager) Play(ctx context.Context, id string, action domain.Action) (SessionView, error) {
	s, ok := m.Get(id)
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before, lastBot := s.Game.Clone(), s.lastBotAction
	if err := s.Game.Apply(s.HumanPlayer, action); err != nil {
		return SessionView{}, err
	}
	s.lastBotAction = nil
	s.updatedAt = m.now()

	if !s.Game.IsFinished() {
		if err := m.botTurn(ctx, s); err != nil {
			// Roll back the human move so the action can be retried.
			s.Game, s.lastBotAction = before, lastBot
			return SessionView{}, err
		}
	}

	if s.Game.IsFinished() {
		m.logger.Info().Str("game", s.ID).Str("status", string(s.Game.Status)).Int("winner", int(s.Game.Winner)).Int("moves", s.Game.MoveCount).Msg("game finished")
	}
	return s.view(), nil
}

// Resign ends the game in the bot's favour.
func (m *Manager) Resign(id string) (SessionView, error) {
	s, ok := m.Get(id)
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Game.Resign(s.HumanPlayer); err != nil {
		return SessionView{}, err
	}
	s.updatedAt = m.now()
	m.logger.Info().Str("game", s.ID).Msg("human resigned")
	return s.view(), nil
}

// botTurn must be called with s.mu held.
func (m *Manager) botTurn(ctx context.Context, s *Session) error {
	side := s.BotPlayer()
	d, err := s.engine.BestMove(ctx, s.Game.Board, side)
	if err != nil {
		return errors.Wrap(err, "bot move")
	}
	if d.Action.IsNone() {
		return errors.New("bot has no legal move")
	}
	if err := s.Game.Apply(side, d.Action); err != nil {
		return errors.Wrapf(err, "apply bot move %v", d.Action)
	}

	action := d.Action
	s.lastBotAction = &action
	s.updatedAt = m.now()
	m.logger.Debug().Str("game", s.ID).Str("action", action.String()).Int("score", d.Score).Bool("cached", d.Cached).Msg("bot moved")
	return nil
}

// CleanupOldSessions drops sessions with no activity for longer than ttl
// and returns how many were removed.
func (m *Manager) CleanupOldSessions(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	now := m.now()
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := now.Sub(s.updatedAt)
		s.mu.Unlock()

		if idle > ttl {
			delete(m.sessions, id)
			count++
		}
	}

	if count > 0 {
		m.logger.Info().Int("removed", count).Msg("memory cleanup")
	}
	return count
}
