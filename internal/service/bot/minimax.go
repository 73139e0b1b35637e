package bot

import (
	"math"
	"time"

	"github.com/iamasit07/quadtoe/internal/domain"
)

const (
	DEFAULT_DEPTH = 3
	// Infinity bounds every reachable score.
	Infinity = math.MaxInt32
)

// Result of a search: the best score, the action that reaches it, and how
// much work it took.
type Result struct {
	Score   int
	Action  domain.Action
	Nodes   int
	Cutoffs int
}

// Searcher runs depth-limited minimax for one profile. It borrows the
// caller's board and restores it before returning. A Searcher is not safe
// for concurrent use.
type Searcher struct {
	profile   Profile
	sink      EventSink
	nodes     int
	cutoffs   int
	rootDepth int
}

func NewSearcher(profile Profile, sink EventSink) *Searcher {
	return &Searcher{profile: profile, sink: sink}
}

func (s *Searcher) Profile() Profile {
	return s.profile
}

// Minimax searches depth plies from b. maximizing tells whether player is
// to move; phase is the phase the search treats the whole tree as.
func (s *Searcher) Minimax(b *domain.Board, depth int, maximizing bool, player domain.Cell, phase domain.Phase) Result {
	start := time.Now()
	s.nodes, s.cutoffs, s.rootDepth = 0, 0, depth
	s.sink.emit(Event{Kind: EventSearchStart, Profile: s.profile.Name, Player: player, Depth: depth})

	score, action := s.minimax(b, depth, maximizing, player, phase, -Infinity, Infinity)

	res := Result{Score: score, Action: action, Nodes: s.nodes, Cutoffs: s.cutoffs}
	s.sink.emit(Event{
		Kind:    EventSearchDone,
		Profile: s.profile.Name,
		Player:  player,
		Depth:   depth,
		Action:  action,
		Score:   score,
		Nodes:   res.Nodes,
		Cutoffs: res.Cutoffs,
		Elapsed: time.Since(start),
	})
	return res
}

func (s *Searcher) evaluate(b *domain.Board, player domain.Cell) int {
	return s.profile.Evaluator.Evaluate(b, player)
}

func (s *Searcher) minimax(b *domain.Board, depth int, maximizing bool, player domain.Cell, phase domain.Phase, alpha, beta int) (int, domain.Action) {
	s.nodes++

	// Terminal conditions
	if depth <= 0 || b.CheckWinner() {
		return s.evaluate(b, player), domain.NoAction
	}

	mover := player
	if !maximizing {
		mover = player.Opponent()
	}

	moves := s.GenerateMoves(b, mover, phase)
	if len(moves) == 0 {
		return s.evaluate(b, player), domain.NoAction
	}

	best := Infinity
	if maximizing {
		best = -Infinity
	}
	bestAction := domain.NoAction

	for _, action := range moves {
		undo, ok := b.Apply(action, mover)
		if !ok {
			continue
		}

		score, _ := s.minimax(b, depth-1, !maximizing, player, phase, alpha, beta)

		b.Revert(undo)

		if maximizing {
			if score > best {
				best = score
				bestAction = action
				if depth == s.rootDepth {
					s.sink.emit(Event{Kind: EventNewBest, Profile: s.profile.Name, Player: player, Depth: depth, Action: action, Score: score})
				}
			}
			alpha = max(alpha, score)
		} else {
			if score < best {
				best = score
				bestAction = action
			}
			beta = min(beta, score)
		}

		if s.profile.Pruning && beta <= alpha {
			s.cutoffs++
			break
		}
	}

	// Every candidate failed to apply.
	if bestAction.IsNone() {
		return s.evaluate(b, player), domain.NoAction
	}

	return best, bestAction
}

// GenerateMoves lists mover's candidate actions in search order. In the
// placement phase a mover with no pieces left has no candidates.
func (s *Searcher) GenerateMoves(b *domain.Board, mover domain.Cell, phase domain.Phase) []domain.Action {
	if phase == domain.Placement {
		if b.PiecesPlaced(mover) >= domain.MaxPieces {
			return nil
		}
		return s.orderPlacements(b, mover)
	}
	return s.movements(b, mover)
}

// orderPlacements puts threat cells first (when the profile looks for
// them), then corners, then the remaining empty cells in row-major order.
func (s *Searcher) orderPlacements(b *domain.Board, mover domain.Cell) []domain.Action {
	empty := b.GetEmptyCells()
	moves := make([]domain.Action, 0, len(empty))

	var threats ThreatSet
	if s.profile.ThreatOrdering {
		threats = DetectThreats(b, mover)
		for _, pos := range empty {
			if threats.Contains(pos) {
				moves = append(moves, domain.Place(pos))
			}
		}
	}

	for _, pos := range empty {
		if domain.IsCorner(pos) && !threats.Contains(pos) {
			moves = append(moves, domain.Place(pos))
		}
	}

	for _, pos := range empty {
		if !domain.IsCorner(pos) && !threats.Contains(pos) {
			moves = append(moves, domain.Place(pos))
		}
	}
	return moves
}

// movements is every piece to every empty cell. With threat ordering, only
// moves that cover a threat cell are kept when there are any.
func (s *Searcher) movements(b *domain.Board, mover domain.Cell) []domain.Action {
	pieces := b.GetPlayerPieces(mover)

	if s.profile.ThreatOrdering {
		threats := DetectThreats(b, mover)
		if targets := threats.Positions(); len(targets) > 0 {
			blocking := crossProduct(b, mover, pieces, targets)
			if len(blocking) > 0 {
				return blocking
			}
		}
	}

	return crossProduct(b, mover, pieces, b.GetEmptyCells())
}

func crossProduct(b *domain.Board, mover domain.Cell, from, to []domain.Position) []domain.Action {
	moves := make([]domain.Action, 0, len(from)*len(to))
	for _, f := range from {
		for _, t := range to {
			if b.IsValidMovement(f, t, mover) {
				moves = append(moves, domain.Move(f, t))
			}
		}
	}
	return moves
}
