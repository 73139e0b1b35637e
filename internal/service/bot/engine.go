package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iamasit07/quadtoe/internal/domain"
	"github.com/pkg/errors"
)

// MoveCache stores search decisions by position. Get returns
// domain.ErrCacheMiss for unknown keys.
type MoveCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

const DEFAULT_CACHE_TTL = 24 * time.Hour

// Decision is the engine's answer for one turn.
type Decision struct {
	Action   domain.Action `json:"action"`
	Score    int           `json:"score"`
	Nodes    int           `json:"nodes"`
	Fallback bool          `json:"fallback"`
	Cached   bool          `json:"cached"`
}

// Engine picks moves for a player: it runs the profile's search at a fixed
// depth and falls back to the first legal action when the search returns
// none.
type Engine struct {
	profile  Profile
	depth    int
	parallel bool
	cache    MoveCache
	cacheTTL time.Duration
	sink     EventSink
}

type Option func(*Engine)

func WithDepth(depth int) Option {
	return func(e *Engine) {
		e.depth = depth
	}
}

func WithParallel(parallel bool) Option {
	return func(e *Engine) {
		e.parallel = parallel
	}
}

// WithCache memoizes decisions; a zero ttl uses DEFAULT_CACHE_TTL.
func WithCache(cache MoveCache, ttl time.Duration) Option {
	return func(e *Engine) {
		e.cache = cache
		e.cacheTTL = ttl
	}
}

func WithEventSink(sink EventSink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

func NewEngine(profile Profile, opts ...Option) *Engine {
	e := &Engine{profile: profile, depth: DEFAULT_DEPTH, cacheTTL: DEFAULT_CACHE_TTL}
	for _, opt := range opts {
		opt(e)
	}
	if e.cacheTTL <= 0 {
		e.cacheTTL = DEFAULT_CACHE_TTL
	}
	return e
}

func (e *Engine) Profile() Profile {
	return e.profile
}

func (e *Engine) Depth() int {
	return e.depth
}

// BestMove decides player's next action on b. The board is only borrowed:
// it is identical before and after the call.
func (e *Engine) BestMove(ctx context.Context, b *domain.Board, player domain.Cell) (Decision, error) {
	if !player.IsPlayer() {
		return Decision{}, errors.Errorf("invalid player %d", player)
	}

	key := e.cacheKey(b, player)
	if d, ok := e.lookup(ctx, key, b, player); ok {
		return d, nil
	}

	searcher := NewSearcher(e.profile, e.sink)
	var res Result
	if e.parallel {
		var err error
		res, err = searcher.MinimaxParallel(ctx, b, e.depth, player, b.Phase())
		if err != nil {
			return Decision{}, errors.Wrap(err, "parallel search")
		}
	} else {
		res = searcher.Minimax(b, e.depth, true, player, b.Phase())
	}

	d := Decision{Action: res.Action, Score: res.Score, Nodes: res.Nodes}
	if d.Action.IsNone() {
		d.Action = FallbackAction(b, player)
		d.Fallback = true
		e.sink.emit(Event{Kind: EventFallback, Profile: e.profile.Name, Player: player, Depth: e.depth, Action: d.Action})
		return d, nil
	}

	e.store(ctx, key, d, player)
	return d, nil
}

// FallbackAction is the first legal action in row-major order: an empty
// cell while player still has pieces to place, otherwise the first
// piece/destination pair. It returns NoAction if there is none.
func FallbackAction(b *domain.Board, player domain.Cell) domain.Action {
	if b.PiecesPlaced(player) < domain.MaxPieces {
		for _, pos := range b.GetEmptyCells() {
			if b.IsValidPlacement(pos, player) {
				return domain.Place(pos)
			}
		}
		return domain.NoAction
	}

	for _, piece := range b.GetPlayerPieces(player) {
		for _, cell := range b.GetEmptyCells() {
			if b.IsValidMovement(piece, cell, player) {
				return domain.Move(piece, cell)
			}
		}
	}
	return domain.NoAction
}

type cachedDecision struct {
	Action domain.Action `json:"action"`
	Score  int           `json:"score"`
}

func (e *Engine) cacheKey(b *domain.Board, player domain.Cell) string {
	return fmt.Sprintf("quadtoe:move:%s:d%d:p%d:%s", e.profile.Name, e.depth, player, b.Key())
}

func (e *Engine) lookup(ctx context.Context, key string, b *domain.Board, player domain.Cell) (Decision, bool) {
	if e.cache == nil {
		return Decision{}, false
	}

	raw, err := e.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			e.sink.emit(Event{Kind: EventCacheError, Profile: e.profile.Name, Player: player, Depth: e.depth, Err: err})
		}
		return Decision{}, false
	}

	var cd cachedDecision
	if err := json.Unmarshal([]byte(raw), &cd); err != nil {
		e.sink.emit(Event{Kind: EventCacheError, Profile: e.profile.Name, Player: player, Depth: e.depth, Err: errors.Wrap(err, "decode cached decision")})
		return Decision{}, false
	}

	// A stale or foreign entry must never produce an illegal move.
	if _, ok := b.Clone().Apply(cd.Action, player); !ok {
		return Decision{}, false
	}

	e.sink.emit(Event{Kind: EventCacheHit, Profile: e.profile.Name, Player: player, Depth: e.depth, Action: cd.Action, Score: cd.Score})
	return Decision{Action: cd.Action, Score: cd.Score, Cached: true}, true
}

func (e *Engine) store(ctx context.Context, key string, d Decision, player domain.Cell) {
	if e.cache == nil {
		return
	}

	raw, err := json.Marshal(cachedDecision{Action: d.Action, Score: d.Score})
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, key, string(raw), e.cacheTTL); err != nil {
		e.sink.emit(Event{Kind: EventCacheError, Profile: e.profile.Name, Player: player, Depth: e.depth, Err: errors.Wrap(err, "store decision")})
	}
}
