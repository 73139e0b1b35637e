package bot

import (
	"context"
	"time"

	"github.com/iamasit07/quadtoe/internal/domain"
	"golang.org/x/sync/errgroup"
)

// MinimaxParallel searches each root candidate in its own goroutine. Every
// worker gets a private copy of the board and a full window, so the score
// matches Minimax and the action matches the first best candidate in
// search order. The root is always the maximizing player's turn.
func (s *Searcher) MinimaxParallel(ctx context.Context, b *domain.Board, depth int, player domain.Cell, phase domain.Phase) (Result, error) {
	if depth <= 0 || b.CheckWinner() {
		return s.Minimax(b, depth, true, player, phase), nil
	}

	moves := s.GenerateMoves(b, player, phase)
	if len(moves) == 0 {
		return s.Minimax(b, depth, true, player, phase), nil
	}

	start := time.Now()
	s.sink.emit(Event{Kind: EventSearchStart, Profile: s.profile.Name, Player: player, Depth: depth})

	type childResult struct {
		applied bool
		score   int
		nodes   int
		cutoffs int
	}
	results := make([]childResult, len(moves))

	g, gctx := errgroup.WithContext(ctx)
	for i, action := range moves {
		i, action := i, action
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			child := b.Clone()
			if _, ok := child.Apply(action, player); !ok {
				return nil
			}
			worker := NewSearcher(s.profile, nil)
			worker.rootDepth = -1
			score, _ := worker.minimax(child, depth-1, false, player, phase, -Infinity, Infinity)
			results[i] = childResult{applied: true, score: score, nodes: worker.nodes, cutoffs: worker.cutoffs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Score: -Infinity, Action: domain.NoAction, Nodes: 1}
	for i, r := range results {
		if !r.applied {
			continue
		}
		res.Nodes += r.nodes
		res.Cutoffs += r.cutoffs
		if r.score > res.Score {
			res.Score = r.score
			res.Action = moves[i]
			s.sink.emit(Event{Kind: EventNewBest, Profile: s.profile.Name, Player: player, Depth: depth, Action: moves[i], Score: r.score})
		}
	}
	if res.Action.IsNone() {
		res.Score = s.evaluate(b, player)
	}

	s.sink.emit(Event{
		Kind:    EventSearchDone,
		Profile: s.profile.Name,
		Player:  player,
		Depth:   depth,
		Action:  res.Action,
		Score:   res.Score,
		Nodes:   res.Nodes,
		Cutoffs: res.Cutoffs,
		Elapsed: time.Since(start),
	})
	return res, nil
}
