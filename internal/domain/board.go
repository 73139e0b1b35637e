package domain

import (
	"strings"
)

// Board is the authoritative game state: the grid, how many pieces each
// player has placed, the phase and the last written cell.
//
// Board is a plain value type. Copying it copies the whole state, and two
// boards compare equal with == iff every field matches.
type Board struct {
	grid         [Size][Size]Cell
	piecesPlaced [3]int // indexed by Cell, slot 0 unused
	phase        Phase
	lastMove     Position
	hasLastMove  bool
}

func NewBoard() *Board {
	return &Board{}
}

// NewBoardFromCells rebuilds a board from a grid. Piece counts are derived
// from the grid and the phase is Movement iff both players have 4 pieces.
func NewBoardFromCells(cells [Size][Size]Cell) (*Board, error) {
	b := &Board{}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			cell := cells[r][c]
			if cell != Empty && !cell.IsPlayer() {
				return nil, ErrInvalidBoard
			}
			b.grid[r][c] = cell
			if cell.IsPlayer() {
				b.piecesPlaced[cell]++
			}
		}
	}
	if b.piecesPlaced[PlayerA] > MaxPieces || b.piecesPlaced[PlayerB] > MaxPieces {
		return nil, ErrInvalidBoard
	}
	b.updatePhase()
	return b, nil
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

func (b *Board) Cell(pos Position) Cell {
	if !pos.InBounds() {
		return Empty
	}
	return b.grid[pos.Row][pos.Col]
}

// Grid returns a copy of the grid.
func (b *Board) Grid() [Size][Size]Cell {
	return b.grid
}

func (b *Board) PiecesPlaced(player Cell) int {
	if !player.IsPlayer() {
		return 0
	}
	return b.piecesPlaced[player]
}

func (b *Board) Phase() Phase {
	return b.phase
}

// LastMove returns the most recently written cell, if any.
func (b *Board) LastMove() (Position, bool) {
	return b.lastMove, b.hasLastMove
}

// PlacePiece writes a new piece for player. It returns false without
// touching the board if pos is off the grid, the cell is taken or the
// player has no pieces left to place.
func (b *Board) PlacePiece(pos Position, player Cell) bool {
	if !b.IsValidPlacement(pos, player) {
		return false
	}

	b.grid[pos.Row][pos.Col] = player
	b.piecesPlaced[player]++
	b.lastMove = pos
	b.hasLastMove = true
	b.updatePhase()
	return true
}

// MovePiece relocates one of player's pieces to any empty cell.
func (b *Board) MovePiece(from, to Position, player Cell) bool {
	if !b.IsValidMovement(from, to, player) {
		return false
	}

	b.grid[from.Row][from.Col] = Empty
	b.grid[to.Row][to.Col] = player
	b.lastMove = to
	b.hasLastMove = true
	return true
}

func (b *Board) IsValidPlacement(pos Position, player Cell) bool {
	if !pos.InBounds() || !player.IsPlayer() {
		return false
	}
	if b.piecesPlaced[player] >= MaxPieces {
		return false
	}
	return b.grid[pos.Row][pos.Col] == Empty
}

func (b *Board) IsValidMovement(from, to Position, player Cell) bool {
	if !from.InBounds() || !to.InBounds() || !player.IsPlayer() {
		return false
	}
	return b.grid[from.Row][from.Col] == player && b.grid[to.Row][to.Col] == Empty
}

// IsAdjacent reports whether two distinct positions touch, diagonals
// included. Movement legality does not use it: pieces may jump to any
// empty cell.
func IsAdjacent(p1, p2 Position) bool {
	if p1 == p2 {
		return false
	}
	return abs(p1.Row-p2.Row) <= 1 && abs(p1.Col-p2.Col) <= 1
}

// GetEmptyCells lists empty cells in row-major order.
func (b *Board) GetEmptyCells() []Position {
	return b.cellsEqual(Empty)
}

// GetPlayerPieces lists player's pieces in row-major order.
func (b *Board) GetPlayerPieces(player Cell) []Position {
	if !player.IsPlayer() {
		return nil
	}
	return b.cellsEqual(player)
}

func (b *Board) cellsEqual(want Cell) []Position {
	cells := make([]Position, 0, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.grid[r][c] == want {
				cells = append(cells, Position{Row: r, Col: c})
			}
		}
	}
	return cells
}

func (b *Board) OccupiedCount() int {
	return b.piecesPlaced[PlayerA] + b.piecesPlaced[PlayerB]
}

func (b *Board) updatePhase() {
	if b.piecesPlaced[PlayerA] >= MaxPieces && b.piecesPlaced[PlayerB] >= MaxPieces {
		b.phase = Movement
	}
}

// Undo records what is needed to revert one Apply exactly.
type Undo struct {
	action      Action
	player      Cell
	phase       Phase
	lastMove    Position
	hasLastMove bool
}

// Apply performs a through the board mutators. The returned Undo reverts
// it bit-for-bit, phase and last move included.
func (b *Board) Apply(a Action, player Cell) (Undo, bool) {
	u := Undo{
		action:      a,
		player:      player,
		phase:       b.phase,
		lastMove:    b.lastMove,
		hasLastMove: b.hasLastMove,
	}

	var ok bool
	switch a.Kind {
	case ActionPlace:
		ok = b.PlacePiece(a.To, player)
	case ActionMove:
		ok = b.MovePiece(a.From, a.To, player)
	}
	return u, ok
}

// Revert undoes a successful Apply. It must be called in LIFO order.
func (b *Board) Revert(u Undo) {
	switch u.action.Kind {
	case ActionPlace:
		b.grid[u.action.To.Row][u.action.To.Col] = Empty
		b.piecesPlaced[u.player]--
	case ActionMove:
		b.grid[u.action.To.Row][u.action.To.Col] = Empty
		b.grid[u.action.From.Row][u.action.From.Col] = u.player
	}
	b.phase = u.phase
	b.lastMove = u.lastMove
	b.hasLastMove = u.hasLastMove
}

// Key encodes grid and phase. Two boards with the same key produce the
// same search result.
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(Size*Size + 2)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sb.WriteByte(byte('0' + b.grid[r][c]))
		}
	}
	sb.WriteByte(':')
	if b.phase == Movement {
		sb.WriteByte('m')
	} else {
		sb.WriteByte('p')
	}
	return sb.String()
}

func (b *Board) String() string {
	rows := make([]string, Size)
	for r := 0; r < Size; r++ {
		symbols := make([]string, Size)
		for c := 0; c < Size; c++ {
			symbols[c] = b.grid[r][c].Symbol()
		}
		rows[r] = strings.Join(symbols, " ")
	}
	return strings.Join(rows, "\n")
}

// BoardView is a read-only snapshot for front ends.
type BoardView struct {
	Cells        [][]int     `json:"cells"`
	PiecesPlaced PiecesCount `json:"piecesPlaced"`
	Phase        string      `json:"phase"`
}

type PiecesCount struct {
	PlayerA int `json:"playerA"`
	PlayerB int `json:"playerB"`
}

func (b *Board) Snapshot() BoardView {
	cells := make([][]int, Size)
	for r := range cells {
		cells[r] = make([]int, Size)
		for c := range cells[r] {
			cells[r][c] = int(b.grid[r][c])
		}
	}
	return BoardView{
		Cells: cells,
		PiecesPlaced: PiecesCount{
			PlayerA: b.piecesPlaced[PlayerA],
			PlayerB: b.piecesPlaced[PlayerB],
		},
		Phase: b.phase.String(),
	}
}

// CellsFromInts converts a wire grid into cells. It fails unless the grid
// is exactly 4x4.
func CellsFromInts(grid [][]int) ([Size][Size]Cell, error) {
	var cells [Size][Size]Cell
	if len(grid) != Size {
		return cells, ErrInvalidBoard
	}
	for r, row := range grid {
		if len(row) != Size {
			return cells, ErrInvalidBoard
		}
		for c, v := range row {
			cells[r][c] = Cell(v)
		}
	}
	return cells, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
