package domain

// Region is a group of four cells that wins when one player owns all of it.
type Region [4]Position

var (
	// Rows, Columns and the two main Diagonals.
	Rows      = buildRows()
	Columns   = buildColumns()
	Diagonals = [2]Region{
		{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
		{{0, 3}, {1, 2}, {2, 1}, {3, 0}},
	}

	// Lines holds the 4 rows, 4 columns and 2 diagonals.
	Lines = buildLines()

	// Squares holds the 9 axis-aligned 2x2 blocks, by top-left origin in
	// row-major order.
	Squares = buildSquares()

	Corners = [4]Position{{0, 0}, {0, 3}, {3, 0}, {3, 3}}
)

func buildRows() [Size]Region {
	var rows [Size]Region
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			rows[r][c] = Position{Row: r, Col: c}
		}
	}
	return rows
}

func buildColumns() [Size]Region {
	var cols [Size]Region
	for c := 0; c < Size; c++ {
		for r := 0; r < Size; r++ {
			cols[c][r] = Position{Row: r, Col: c}
		}
	}
	return cols
}

func buildLines() [10]Region {
	var lines [10]Region
	n := 0
	for _, r := range buildRows() {
		lines[n] = r
		n++
	}
	for _, c := range buildColumns() {
		lines[n] = c
		n++
	}
	lines[8] = Diagonals[0]
	lines[9] = Diagonals[1]
	return lines
}

func buildSquares() [9]Region {
	var squares [9]Region
	n := 0
	for r := 0; r < Size-1; r++ {
		for c := 0; c < Size-1; c++ {
			squares[n] = Region{{r, c}, {r, c + 1}, {r + 1, c}, {r + 1, c + 1}}
			n++
		}
	}
	return squares
}

func IsCorner(pos Position) bool {
	for _, c := range Corners {
		if c == pos {
			return true
		}
	}
	return false
}

// Cells reads the region's four cells from the board.
func (b *Board) Cells(region Region) [4]Cell {
	var cells [4]Cell
	for i, p := range region {
		cells[i] = b.grid[p.Row][p.Col]
	}
	return cells
}

// Count returns how many cells of the region hold player, the opponent of
// player and nothing.
func (b *Board) Count(region Region, player Cell) (own, opp, empty int) {
	opponent := player.Opponent()
	for _, p := range region {
		switch b.grid[p.Row][p.Col] {
		case player:
			own++
		case opponent:
			opp++
		case Empty:
			empty++
		}
	}
	return own, opp, empty
}

func (b *Board) owner(region Region) Cell {
	first := b.grid[region[0].Row][region[0].Col]
	if first == Empty {
		return Empty
	}
	for _, p := range region[1:] {
		if b.grid[p.Row][p.Col] != first {
			return Empty
		}
	}
	return first
}

// Winner returns the owner of the first fully owned line or square, or
// Empty if there is none.
func (b *Board) Winner() Cell {
	for _, line := range Lines {
		if w := b.owner(line); w != Empty {
			return w
		}
	}
	for _, sq := range Squares {
		if w := b.owner(sq); w != Empty {
			return w
		}
	}
	return Empty
}

// CheckWinner reports whether any line or 2x2 square is uniformly owned.
func (b *Board) CheckWinner() bool {
	return b.Winner() != Empty
}

// HasMovement reports whether player can relocate at least one piece.
func (b *Board) HasMovement(player Cell) bool {
	return len(b.GetPlayerPieces(player)) > 0 && len(b.GetEmptyCells()) > 0
}

// IsGameOver is true on a win, once placement is exhausted while still in
// the placement phase, or when a player cannot move in the movement phase.
func (b *Board) IsGameOver() bool {
	if b.CheckWinner() {
		return true
	}

	if b.phase == Placement {
		return b.piecesPlaced[PlayerA] >= MaxPieces && b.piecesPlaced[PlayerB] >= MaxPieces
	}

	for _, p := range []Cell{PlayerA, PlayerB} {
		if !b.HasMovement(p) {
			return true
		}
	}
	return false
}
