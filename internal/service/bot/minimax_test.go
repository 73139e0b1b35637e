package bot

import (
	"testing"

	"github.com/iamasit07/quadtoe/internal/domain"
)

func profiles() []Profile {
	return []Profile{Easy(), Medium(), Hard()}
}

// referenceMinimax is a copy-per-node search without pruning.
func referenceMinimax(p Profile, b *domain.Board, depth int, maximizing bool, player domain.Cell, phase domain.Phase) int {
	if depth == 0 || b.CheckWinner() {
		return p.Evaluator.Evaluate(b, player)
	}
	mover := player
	if !maximizing {
		mover = player.Opponent()
	}
	moves := NewSearcher(p, nil).GenerateMoves(b, mover, phase)
	if len(moves) == 0 {
		return p.Evaluator.Evaluate(b, player)
	}

	best := Infinity
	if maximizing {
		best = -Infinity
	}
	for _, m := range moves {
		child := b.Clone()
		if _, ok := child.Apply(m, mover); !ok {
			continue
		}
		v := referenceMinimax(p, child, depth-1, !maximizing, player, phase)
		if maximizing {
			best = max(best, v)
		} else {
			best = min(best, v)
		}
	}
	return best
}

func placementPosition(t *testing.T) *domain.Board {
	return mustBoard(t, [domain.Size][domain.Size]domain.Cell{
		{1, 0, 0, 2},
		{0, 2, 1, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
}

func movementPosition(t *testing.T) *domain.Board {
	return mustBoard(t, [domain.Size][domain.Size]domain.Cell{
		{1, 0, 2, 0},
		{0, 2, 1, 0},
		{2, 0, 0, 1},
		{0, 1, 0, 2},
	})
}

func TestMinimaxDepthZero(t *testing.T) {
	b := placementPosition(t)
	for _, p := range profiles() {
		for _, maximizing := range []bool{true, false} {
			for _, player := range []domain.Cell{domain.PlayerA, domain.PlayerB} {
				res := NewSearcher(p, nil).Minimax(b, 0, maximizing, player, b.Phase())
				if want := p.Evaluator.Evaluate(b, player); res.Score != want || !res.Action.IsNone() {
					t.Fatalf("%s: depth 0 returned (%d, %v), want (%d, none)", p.Name, res.Score, res.Action, want)
				}
			}
		}
	}
}

func TestMinimaxRestoresBoard(t *testing.T) {
	for _, p := range profiles() {
		for _, b := range []*domain.Board{domain.NewBoard(), placementPosition(t), movementPosition(t)} {
			before := *b
			NewSearcher(p, nil).Minimax(b, 3, true, domain.PlayerA, b.Phase())
			if *b != before {
				t.Fatalf("%s: board changed by search\nbefore:\n%s\nafter:\n%s", p.Name, before.String(), b.String())
			}
		}
	}
}

func TestMinimaxMatchesReference(t *testing.T) {
	boards := map[string]*domain.Board{
		"placement": placementPosition(t),
		"movement":  movementPosition(t),
	}
	for name, b := range boards {
		for _, p := range profiles() {
			for _, player := range []domain.Cell{domain.PlayerA, domain.PlayerB} {
				want := referenceMinimax(p, b.Clone(), 2, true, player, b.Phase())
				got := NewSearcher(p, nil).Minimax(b, 2, true, player, b.Phase())
				if got.Score != want {
					t.Errorf("%s/%s/player %d: score %d, reference %d", name, p.Name, player, got.Score, want)
				}
			}
		}
	}
}

func TestAlphaBetaMatchesFullSearch(t *testing.T) {
	boards := []*domain.Board{domain.NewBoard(), placementPosition(t), movementPosition(t)}
	for i, b := range boards {
		for _, p := range []Profile{Medium(), Hard()} {
			pruned := NewSearcher(p, nil).Minimax(b, 3, true, domain.PlayerB, b.Phase())
			full := NewSearcher(p.WithoutPruning(), nil).Minimax(b, 3, true, domain.PlayerB, b.Phase())
			if pruned.Score != full.Score {
				t.Errorf("board %d %s: pruned score %d, full %d", i, p.Name, pruned.Score, full.Score)
			}
			if pruned.Action != full.Action {
				t.Errorf("board %d %s: pruned action %v, full %v", i, p.Name, pruned.Action, full.Action)
			}
			if pruned.Nodes > full.Nodes {
				t.Errorf("board %d %s: pruning visited more nodes (%d > %d)", i, p.Name, pruned.Nodes, full.Nodes)
			}
			if full.Cutoffs != 0 {
				t.Errorf("board %d %s: full search reported %d cutoffs", i, p.Name, full.Cutoffs)
			}
		}
	}
}

func TestMinimaxTakesImmediateWin(t *testing.T) {
	for _, p := range []Profile{Easy(), Hard()} {
		b := mustBoard(t, [domain.Size][domain.Size]domain.Cell{
			{1, 1, 1, 0},
		})
		res := NewSearcher(p, nil).Minimax(b, 3, true, domain.PlayerA, b.Phase())
		if res.Action != domain.Place(domain.Pos(0, 3)) {
			t.Errorf("%s: expected winning placement at (0,3), got %v", p.Name, res.Action)
		}
	}
}

func TestMinimaxStopsWhenMoverIsOutOfPieces(t *testing.T) {
	// A has placed all four pieces, B has not: the board is still in the
	// placement phase.
	b := mustBoard(t, [domain.Size][domain.Size]domain.Cell{
		{1, 0, 1, 0},
		{0, 2, 0, 1},
		{1, 0, 2, 0},
	})
	for _, p := range profiles() {
		res := NewSearcher(p, nil).Minimax(b, 3, true, domain.PlayerA, domain.Placement)
		if !res.Action.IsNone() || res.Score != p.Evaluator.Evaluate(b, domain.PlayerA) {
			t.Fatalf("%s: expected evaluation leaf, got (%d, %v)", p.Name, res.Score, res.Action)
		}
	}
}

func TestMinimaxOnWonBoard(t *testing.T) {
	b := mustBoard(t, [domain.Size][domain.Size]domain.Cell{
		{2, 2, 0, 0},
		{2, 2, 0, 0},
	})
	res := NewSearcher(Hard(), nil).Minimax(b, 3, true, domain.PlayerA, b.Phase())
	if !res.Action.IsNone() || res.Nodes != 1 {
		t.Fatalf("won board should be a leaf, got %v after %d nodes", res.Action, res.Nodes)
	}
}

func TestPlacementOrdering(t *testing.T) {
	moves := NewSearcher(Easy(), nil).GenerateMoves(domain.NewBoard(), domain.PlayerA, domain.Placement)
	if len(moves) != 16 {
		t.Fatalf("expected 16 placements, got %d", len(moves))
	}
	for i, c := range domain.Corners {
		if moves[i] != domain.Place(c) {
			t.Fatalf("move %d = %v, want corner %v", i, moves[i], c)
		}
	}
	if moves[4] != domain.Place(domain.Pos(0, 1)) {
		t.Fatalf("first non-corner = %v", moves[4])
	}

	// (0,3) is both a threat and a corner: it must come first, once.
	b := mustBoard(t, [domain.Size][domain.Size]domain.Cell{
		{1, 1, 1, 0},
		{2, 0, 0, 0},
	})
	moves = NewSearcher(Hard(), nil).GenerateMoves(b, domain.PlayerB, domain.Placement)
	if moves[0] != domain.Place(domain.Pos(0, 3)) {
		t.Fatalf("hard should try the threat cell first, got %v", moves[0])
	}
	seen := map[domain.Action]bool{}
	for _, m := range moves {
		if seen[m] {
			t.Fatalf("duplicate candidate %v", m)
		}
		seen[m] = true
	}
	if len(moves) != len(b.GetEmptyCells()) {
		t.Fatalf("expected %d candidates, got %d", len(b.GetEmptyCells()), len(moves))
	}
	if moves[1] != domain.Place(domain.Pos(3, 0)) || moves[2] != domain.Place(domain.Pos(3, 3)) {
		t.Fatalf("corners should follow the threat cell, got %v %v", moves[1], moves[2])
	}
}

func TestMovementGeneration(t *testing.T) {
	b := mustBoard(t, [domain.Size][domain.Size]domain.Cell{
		{2, 2, 2, 0},
		{1, 1, 0, 1},
		{1, 2, 0, 0},
	})
	full := NewSearcher(Easy(), nil).GenerateMoves(b, domain.PlayerA, domain.Movement)
	if len(full) != 4*8 {
		t.Fatalf("expected 32 movements, got %d", len(full))
	}

	narrowed := NewSearcher(Hard(), nil).GenerateMoves(b, domain.PlayerA, domain.Movement)
	if len(narrowed) != 4 {
		t.Fatalf("expected 4 blocking movements, got %d: %v", len(narrowed), narrowed)
	}
	for _, m := range narrowed {
		if m.To != domain.Pos(0, 3) || b.Cell(m.From) != domain.PlayerA {
			t.Fatalf("unexpected blocking move %v", m)
		}
	}

	// B faces row 1 and must cover (1,2).
	for _, m := range NewSearcher(Hard(), nil).GenerateMoves(b, domain.PlayerB, domain.Movement) {
		if m.To != domain.Pos(1, 2) {
			t.Fatalf("unexpected move for B %v", m)
		}
	}

	// Without threats hard uses every destination.
	quiet := movementPosition(t)
	if n := len(NewSearcher(Hard(), nil).GenerateMoves(quiet, domain.PlayerA, domain.Movement)); n != 32 {
		t.Fatalf("expected 32 movements without threats, got %d", n)
	}
}

func TestNewBestEventsAtRoot(t *testing.T) {
	var events []Event
	sink := func(e Event) { events = append(events, e) }

	b := placementPosition(t)
	res := NewSearcher(Hard(), sink).Minimax(b, 2, true, domain.PlayerA, b.Phase())

	if len(events) < 3 || events[0].Kind != EventSearchStart || events[len(events)-1].Kind != EventSearchDone {
		t.Fatalf("unexpected event sequence %v", events)
	}
	last := events[len(events)-2]
	if last.Kind != EventNewBest || last.Action != res.Action || last.Score != res.Score {
		t.Fatalf("last new-best %+v does not match result %+v", last, res)
	}
	if done := events[len(events)-1]; done.Nodes != res.Nodes {
		t.Fatalf("search-done nodes %d, result %d", done.Nodes, res.Nodes)
	}
}

func BenchmarkMinimaxHardPlacement(b *testing.B) {
	board := domain.NewBoard()
	s := NewSearcher(Hard(), nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Minimax(board, DEFAULT_DEPTH, true, domain.PlayerA, domain.Placement)
	}
}

func BenchmarkMinimaxEasyMovement(b *testing.B) {
	board, _ := domain.NewBoardFromCells([domain.Size][domain.Size]domain.Cell{
		{1, 0, 2, 0},
		{0, 2, 1, 0},
		{2, 0, 0, 1},
		{0, 1, 0, 2},
	})
	s := NewSearcher(Easy(), nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Minimax(board, DEFAULT_DEPTH, true, domain.PlayerA, domain.Movement)
	}
}
