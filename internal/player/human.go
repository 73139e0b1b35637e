package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/quadtoe/internal/domain"
	"github.com/pkg/errors"
)

// HumanPlayer reads coordinates line by line: "row col" while placing,
// "fromRow fromCol toRow toCol" while moving. Bad input is reported on out
// and asked again.
type HumanPlayer struct {
	side    domain.Cell
	scanner *bufio.Scanner
	out     io.Writer
}

func NewHumanPlayer(side domain.Cell, in io.Reader, out io.Writer) *HumanPlayer {
	return &HumanPlayer{side: side, scanner: bufio.NewScanner(in), out: out}
}

func (p *HumanPlayer) Side() domain.Cell {
	return p.side
}

func (p *HumanPlayer) GetMove(ctx context.Context, b *domain.Board) (domain.Action, error) {
	placing := b.PiecesPlaced(p.side) < domain.MaxPieces

	for {
		if err := ctx.Err(); err != nil {
			return domain.NoAction, err
		}

		if placing {
			fmt.Fprintf(p.out, "Player %s, place a piece (row col): ", p.side.Symbol())
		} else {
			fmt.Fprintf(p.out, "Player %s, move a piece (fromRow fromCol toRow toCol): ", p.side.Symbol())
		}

		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return domain.NoAction, errors.Wrap(err, "read move")
			}
			return domain.NoAction, errors.Wrap(io.EOF, "read move")
		}

		action, err := parseAction(p.scanner.Text(), placing)
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}

		if !legal(b, action, p.side) {
			fmt.Fprintln(p.out, "Invalid move, try again.")
			continue
		}
		return action, nil
	}
}

func parseAction(line string, placing bool) (domain.Action, error) {
	fields := strings.Fields(line)
	want := 4
	if placing {
		want = 2
	}
	if len(fields) != want {
		return domain.NoAction, errors.Errorf("expected %d numbers, got %d", want, len(fields))
	}

	nums := make([]int, want)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return domain.NoAction, errors.Errorf("%q is not a number", f)
		}
		nums[i] = n
	}

	if placing {
		return domain.Place(domain.Pos(nums[0], nums[1])), nil
	}
	return domain.Move(domain.Pos(nums[0], nums[1]), domain.Pos(nums[2], nums[3])), nil
}

func legal(b *domain.Board, a domain.Action, side domain.Cell) bool {
	switch a.Kind {
	case domain.ActionPlace:
		return b.IsValidPlacement(a.To, side)
	case domain.ActionMove:
		return b.IsValidMovement(a.From, a.To, side)
	}
	return false
}
