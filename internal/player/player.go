// Package player adapts humans and the search engine to one turn contract.
package player

import (
	"context"

	"github.com/iamasit07/quadtoe/internal/domain"
	"github.com/iamasit07/quadtoe/internal/service/bot"
)

// Player produces the next action for its side. It never mutates b.
type Player interface {
	Side() domain.Cell
	GetMove(ctx context.Context, b *domain.Board) (domain.Action, error)
}

type AIPlayer struct {
	side   domain.Cell
	engine *bot.Engine
}

func NewAIPlayer(side domain.Cell, engine *bot.Engine) *AIPlayer {
	return &AIPlayer{side: side, engine: engine}
}

func (p *AIPlayer) Side() domain.Cell {
	return p.side
}

func (p *AIPlayer) GetMove(ctx context.Context, b *domain.Board) (domain.Action, error) {
	d, err := p.engine.BestMove(ctx, b, p.side)
	if err != nil {
		return domain.NoAction, err
	}
	return d.Action, nil
}
