package player

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/iamasit07/quadtoe/internal/domain"
	"github.com/iamasit07/quadtoe/internal/service/bot"
)

func TestHumanPlacement(t *testing.T) {
	b := domain.NewBoard()
	b.PlacePiece(domain.Pos(0, 0), domain.PlayerB)

	var out bytes.Buffer
	in := strings.NewReader("x y\n0 0\n9 9\n1\n2 3\n")
	p := NewHumanPlayer(domain.PlayerA, in, &out)

	a, err := p.GetMove(context.Background(), b)
	if err != nil {
		t.Fatal(err)
	}
	if a != domain.Place(domain.Pos(2, 3)) {
		t.Fatalf("got %v", a)
	}
	if n := strings.Count(out.String(), "place a piece"); n != 5 {
		t.Fatalf("expected 5 prompts, got %d:\n%s", n, out.String())
	}
	if b.Cell(domain.Pos(2, 3)) != domain.Empty {
		t.Fatal("human player must not mutate the board")
	}
}

func TestHumanMovement(t *testing.T) {
	b, _ := domain.NewBoardFromCells([domain.Size][domain.Size]domain.Cell{
		{1, 0, 2, 0},
		{0, 2, 1, 0},
		{2, 0, 0, 1},
		{0, 1, 0, 2},
	})

	var out bytes.Buffer
	// (0,2) belongs to O, (0,0)->(0,2) lands on an occupied cell.
	in := strings.NewReader("0 1\n0 2 0 1\n0 0 0 2\n0 0 3 3\n0 0 0 1\n")
	a, err := NewHumanPlayer(domain.PlayerA, in, &out).GetMove(context.Background(), b)
	if err != nil {
		t.Fatal(err)
	}
	if a != domain.Move(domain.Pos(0, 0), domain.Pos(0, 1)) {
		t.Fatalf("got %v", a)
	}
	if !strings.Contains(out.String(), "move a piece") {
		t.Fatalf("missing movement prompt in %q", out.String())
	}
}

func TestHumanEOF(t *testing.T) {
	p := NewHumanPlayer(domain.PlayerB, strings.NewReader("bad\n"), io.Discard)
	_, err := p.GetMove(context.Background(), domain.NewBoard())
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestHumanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewHumanPlayer(domain.PlayerA, strings.NewReader("0 0\n"), io.Discard)
	if _, err := p.GetMove(ctx, domain.NewBoard()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAIPlayer(t *testing.T) {
	b, _ := domain.NewBoardFromCells([domain.Size][domain.Size]domain.Cell{
		{1, 1, 1, 0},
	})
	var p Player = NewAIPlayer(domain.PlayerA, bot.NewEngine(bot.Hard()))
	if p.Side() != domain.PlayerA {
		t.Fatal("wrong side")
	}
	a, err := p.GetMove(context.Background(), b)
	if err != nil {
		t.Fatal(err)
	}
	if a != domain.Place(domain.Pos(0, 3)) {
		t.Fatalf("expected the winning placement, got %v", a)
	}
}

func TestAIPlayerRejectsEmptySide(t *testing.T) {
	p := NewAIPlayer(domain.Empty, bot.NewEngine(bot.Easy()))
	if _, err := p.GetMove(context.Background(), domain.NewBoard()); err == nil {
		t.Fatal("expected error")
	}
}
