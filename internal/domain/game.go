package domain

type Game struct {
	Board         *Board
	CurrentPlayer Cell
	Status        GameStatus
	Winner        Cell
	MoveCount     int
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: PlayerA,
		Status:        StatusActive,
		Winner:        Empty,
		MoveCount:     0,
	}
}

// Clone returns a game whose board is independent of g's.
func (g *Game) Clone() *Game {
	c := *g
	c.Board = g.Board.Clone()
	return &c
}

// ExpectedAction is the kind of action player must take next: placing
// until all four pieces are down, moving afterwards.
func (g *Game) ExpectedAction(player Cell) ActionKind {
	if g.Board.PiecesPlaced(player) < MaxPieces {
		return ActionPlace
	}
	return ActionMove
}

func (g *Game) Apply(player Cell, action Action) error {
	if g.IsFinished() {
		return ErrGameOver
	}

	if player != g.CurrentPlayer {
		return ErrNotYourTurn
	}

	if action.Kind != g.ExpectedAction(player) {
		return ErrWrongPhase
	}

	if _, ok := g.Board.Apply(action, player); !ok {
		return ErrInvalidMove
	}

	g.MoveCount++

	if g.Board.CheckWinner() {
		g.Status = StatusWon
		g.Winner = g.Board.Winner()
		return nil
	}

	if g.Board.IsGameOver() {
		g.Status = StatusDraw
		return nil
	}

	g.CurrentPlayer = g.CurrentPlayer.Opponent()
	return nil
}

// Resign ends the game in favour of player's opponent.
func (g *Game) Resign(player Cell) error {
	if g.IsFinished() {
		return ErrGameOver
	}
	if !player.IsPlayer() {
		return ErrInvalidMove
	}
	g.Status = StatusWon
	g.Winner = player.Opponent()
	return nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
