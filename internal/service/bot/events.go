package bot

import (
	"time"

	"github.com/iamasit07/quadtoe/internal/domain"
	"github.com/rs/zerolog"
)

type EventKind string

const (
	EventSearchStart EventKind = "search-start"
	EventNewBest     EventKind = "new-best"
	EventSearchDone  EventKind = "search-done"
	EventFallback    EventKind = "fallback"
	EventCacheHit    EventKind = "cache-hit"
	EventCacheError  EventKind = "cache-error"
)

// Event is a diagnostic notification from the search or the engine.
type Event struct {
	Kind    EventKind
	Profile string
	Player  domain.Cell
	Depth   int
	Action  domain.Action
	Score   int
	Nodes   int
	Cutoffs int
	Elapsed time.Duration
	Err     error
}

// EventSink receives events. A nil sink disables them.
type EventSink func(Event)

func (s EventSink) emit(e Event) {
	if s != nil {
		s(e)
	}
}

// LogSink writes events to logger: errors and fallbacks at warn, the rest
// at debug.
func LogSink(logger zerolog.Logger) EventSink {
	return func(e Event) {
		var ev *zerolog.Event
		switch e.Kind {
		case EventCacheError, EventFallback:
			ev = logger.Warn()
		default:
			ev = logger.Debug()
		}
		ev = ev.Str("profile", e.Profile).
			Int("player", int(e.Player)).
			Int("depth", e.Depth)
		if !e.Action.IsNone() {
			ev = ev.Str("action", e.Action.String())
		}
		if e.Kind == EventNewBest || e.Kind == EventSearchDone || e.Kind == EventCacheHit {
			ev = ev.Int("score", e.Score)
		}
		if e.Kind == EventSearchDone {
			ev = ev.Int("nodes", e.Nodes).Int("cutoffs", e.Cutoffs).Dur("elapsed", e.Elapsed)
		}
		if e.Err != nil {
			ev = ev.Err(e.Err)
		}
		ev.Msg(string(e.Kind))
	}
}
