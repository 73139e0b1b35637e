package bot

import (
	"github.com/iamasit07/quadtoe/internal/domain"
)

// Evaluator scores a position from one player's point of view. Higher is
// better for player. Scores for the two players are not negations of each
// other.
type Evaluator interface {
	Evaluate(b *domain.Board, player domain.Cell) int
}

// Pattern is the content of a 4-cell region relative to the scored player:
// Own pieces and Opp (opponent) pieces; the rest is empty.
type Pattern struct {
	Own int
	Opp int
}

// Weights maps region patterns to their score. Missing patterns score 0.
type Weights map[Pattern]int

func (w Weights) score(cells [4]domain.Cell, player domain.Cell) int {
	own, opp := 0, 0
	opponent := player.Opponent()
	for _, c := range cells {
		switch c {
		case player:
			own++
		case opponent:
			opp++
		}
	}
	return w[Pattern{Own: own, Opp: opp}]
}

// ThreatPenalty is the flat deduction applied when the opponent can
// complete a row, column or square on the next turn.
type ThreatPenalty struct {
	Placement int // scored player still has pieces to place
	Movement  int
}

// PatternEvaluator sums line, square and corner contributions over the
// whole board and never short-circuits on a win.
type PatternEvaluator struct {
	Lines          Weights
	Squares        Weights
	CornerOwn      int
	CornerOpponent int
	Threats        *ThreatPenalty
}

func (e *PatternEvaluator) EvaluateLine(cells [4]domain.Cell, player domain.Cell) int {
	return e.Lines.score(cells, player)
}

func (e *PatternEvaluator) EvaluateSquare(cells [4]domain.Cell, player domain.Cell) int {
	return e.Squares.score(cells, player)
}

func (e *PatternEvaluator) Evaluate(b *domain.Board, player domain.Cell) int {
	score := 0
	opponent := player.Opponent()

	for _, line := range domain.Lines {
		score += e.EvaluateLine(b.Cells(line), player)
	}

	for _, sq := range domain.Squares {
		score += e.EvaluateSquare(b.Cells(sq), player)
	}

	for _, corner := range domain.Corners {
		switch b.Cell(corner) {
		case player:
			score += e.CornerOwn
		case opponent:
			score += e.CornerOpponent
		}
	}

	if e.Threats != nil && DetectThreats(b, player).Len() > 0 {
		if b.PiecesPlaced(player) < domain.MaxPieces {
			score -= e.Threats.Placement
		} else {
			score -= e.Threats.Movement
		}
	}

	return score
}

// ThreatSet marks empty cells that would complete an opponent row, column
// or square.
type ThreatSet [domain.Size][domain.Size]bool

func (t ThreatSet) Contains(pos domain.Position) bool {
	return pos.InBounds() && t[pos.Row][pos.Col]
}

func (t ThreatSet) Len() int {
	n := 0
	for r := range t {
		for c := range t[r] {
			if t[r][c] {
				n++
			}
		}
	}
	return n
}

// Positions lists the threat cells in row-major order.
func (t ThreatSet) Positions() []domain.Position {
	var out []domain.Position
	for r := range t {
		for c := range t[r] {
			if t[r][c] {
				out = append(out, domain.Pos(r, c))
			}
		}
	}
	return out
}

// DetectThreats finds the cells player has to cover: the single empty cell
// of every row, column or square holding three opponent pieces. Diagonals
// are not scanned.
func DetectThreats(b *domain.Board, player domain.Cell) ThreatSet {
	var threats ThreatSet
	opponent := player.Opponent()

	mark := func(region domain.Region) {
		own, _, empty := b.Count(region, opponent)
		if own != 3 || empty != 1 {
			return
		}
		for _, p := range region {
			if b.Cell(p) == domain.Empty {
				threats[p.Row][p.Col] = true
			}
		}
	}

	for i := 0; i < domain.Size; i++ {
		mark(domain.Rows[i])
		mark(domain.Columns[i])
	}
	for _, sq := range domain.Squares {
		mark(sq)
	}
	return threats
}
