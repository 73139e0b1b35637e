package bot

import (
	"github.com/iamasit07/quadtoe/internal/domain"
)

const (
	MEDIUM_WIN  = 100
	MEDIUM_LOSS = -100
)

// ClassicEvaluator is the balance heuristic: a player's potential minus the
// opponent's potential. A won board scores MEDIUM_WIN or MEDIUM_LOSS by
// the owner of the last written cell.
type ClassicEvaluator struct {
	Lines   Weights
	Squares Weights
}

func NewClassicEvaluator() *ClassicEvaluator {
	return &ClassicEvaluator{
		Lines: Weights{
			{Own: 3}: 10,
			{Own: 2}: 5,
			{Opp: 3}: -9,
		},
		Squares: Weights{
			{Own: 3}: 15,
			{Own: 2}: 8,
			{Opp: 3}: -14,
		},
	}
}

func (e *ClassicEvaluator) Evaluate(b *domain.Board, player domain.Cell) int {
	if winner := b.Winner(); winner != domain.Empty {
		owner := winner
		if last, ok := b.LastMove(); ok && b.Cell(last) != domain.Empty {
			owner = b.Cell(last)
		}
		if owner == player {
			return MEDIUM_WIN
		}
		return MEDIUM_LOSS
	}
	return e.potential(b, player) - e.potential(b, player.Opponent())
}

func (e *ClassicEvaluator) potential(b *domain.Board, player domain.Cell) int {
	score := 0
	for _, line := range domain.Lines {
		score += e.Lines.score(b.Cells(line), player)
	}
	for _, sq := range domain.Squares {
		score += e.Squares.score(b.Cells(sq), player)
	}
	return score
}

// Medium scores with the classic balance heuristic, corners first, with
// alpha-beta pruning.
func Medium() Profile {
	return Profile{
		Name:      "medium",
		Evaluator: NewClassicEvaluator(),
		Pruning:   true,
	}
}
