package player

import (
	"context"
	"fmt"
	"io"

	"github.com/iamasit07/quadtoe/internal/domain"
	"github.com/pkg/errors"
)

// Match alternates two players over one game, printing the board before
// every turn.
type Match struct {
	Game    *domain.Game
	Players map[domain.Cell]Player
	Out     io.Writer
	// MaxMoves stops an endless movement phase; 0 means no limit.
	MaxMoves int
}

func NewMatch(a, b Player, out io.Writer) *Match {
	return &Match{
		Game:    domain.NewGame(),
		Players: map[domain.Cell]Player{a.Side(): a, b.Side(): b},
		Out:     out,
	}
}

// Run plays until the game is won, no move is left or MaxMoves is reached.
// It returns the winner, or domain.Empty when there is none.
func (m *Match) Run(ctx context.Context) (domain.Cell, error) {
	g := m.Game
	for !g.IsFinished() && !g.Board.IsGameOver() {
		if m.MaxMoves > 0 && g.MoveCount >= m.MaxMoves {
			break
		}

		current := m.Players[g.CurrentPlayer]
		if current == nil {
			return domain.Empty, errors.Errorf("no player for side %d", g.CurrentPlayer)
		}

		fmt.Fprintln(m.Out, g.Board.String())
		fmt.Fprintf(m.Out, "Player %s's turn\n", g.CurrentPlayer.Symbol())

		action, err := current.GetMove(ctx, g.Board)
		if err != nil {
			return domain.Empty, errors.Wrapf(err, "player %s", g.CurrentPlayer.Symbol())
		}

		mover := g.CurrentPlayer
		if err := g.Apply(mover, action); err != nil {
			return domain.Empty, errors.Wrapf(err, "player %s: %v", mover.Symbol(), action)
		}
		switch action.Kind {
		case domain.ActionPlace:
			fmt.Fprintf(m.Out, "Player %s placed a piece at %v.\n", mover.Symbol(), action.To)
		case domain.ActionMove:
			fmt.Fprintf(m.Out, "Player %s moved a piece from %v to %v.\n", mover.Symbol(), action.From, action.To)
		}
	}

	fmt.Fprintln(m.Out, g.Board.String())
	if g.Status == domain.StatusWon {
		fmt.Fprintf(m.Out, "Player %s wins!\n", g.Winner.Symbol())
		return g.Winner, nil
	}
	fmt.Fprintln(m.Out, "Game over.")
	return domain.Empty, nil
}
