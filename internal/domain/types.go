package domain

import "fmt"

// Cell is the content of one square of the grid.
type Cell int

const (
	Empty   Cell = 0
	PlayerA Cell = 1
	PlayerB Cell = 2
)

const (
	Size      = 4
	MaxPieces = 4
)

// Opponent returns the other player. Empty maps to Empty.
func (c Cell) Opponent() Cell {
	switch c {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return Empty
}

func (c Cell) IsPlayer() bool {
	return c == PlayerA || c == PlayerB
}

func (c Cell) Symbol() string {
	switch c {
	case PlayerA:
		return "X"
	case PlayerB:
		return "O"
	}
	return "."
}

// Position is a (row, col) coordinate on the grid.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Phase of the game. Placement flips to Movement once, when both players
// have placed all their pieces.
type Phase int

const (
	Placement Phase = iota
	Movement
)

func (p Phase) String() string {
	if p == Movement {
		return "movement"
	}
	return "placement"
}

type ActionKind string

const (
	ActionNone  ActionKind = ""
	ActionPlace ActionKind = "place"
	ActionMove  ActionKind = "move"
)

// Action is either Place(To) or Move(From, To). The zero value is NoAction.
type Action struct {
	Kind ActionKind `json:"kind"`
	From Position   `json:"from"`
	To   Position   `json:"to"`
}

var NoAction = Action{}

func Place(pos Position) Action {
	return Action{Kind: ActionPlace, To: pos}
}

func Move(from, to Position) Action {
	return Action{Kind: ActionMove, From: from, To: to}
}

func (a Action) IsNone() bool {
	return a.Kind == ActionNone
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPlace:
		return "place " + a.To.String()
	case ActionMove:
		return "move " + a.From.String() + "->" + a.To.String()
	}
	return "none"
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove  Error = "invalid move"
	ErrNotYourTurn  Error = "not your turn"
	ErrGameOver     Error = "game is already over"
	ErrWrongPhase   Error = "action does not match the player's phase"
	ErrInvalidBoard Error = "invalid board"
	ErrCacheMiss    Error = "cache miss"
)
