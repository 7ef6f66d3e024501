package game

import (
	"fmt"
	"strings"
)

// Board is row-major; Board[row][col]. Boards are values, so assigning or
// passing one copies all 64 cells and a move never leaks into another board.
type Board [Size][Size]Cell

// Compass directions scanned for sandwiches
var directions = [8]struct{ dr, dc int }{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// InitialBoard returns the standard Othello start: White on the main diagonal
// of the centre square, Black on the other.
func InitialBoard() Board {
	var b Board
	mid := Size / 2
	b[mid-1][mid-1], b[mid][mid] = WhiteDisc, WhiteDisc
	b[mid-1][mid], b[mid][mid-1] = BlackDisc, BlackDisc
	return b
}

func IsOnBoard(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// run returns the number of opponent discs sandwiched between (row, col) and a
// disc of p along one direction, 0 if the run is not closed by p.
func (b *Board) run(p Player, row, col, dr, dc int) int {
	own, other := p.Disc(), p.Opponent().Disc()
	n := 0
	r, c := row+dr, col+dc
	for IsOnBoard(r, c) {
		switch b[r][c] {
		case other:
			n++
		case own:
			return n
		default:
			return 0
		}
		r += dr
		c += dc
	}
	return 0
}

// IsLegalMove reports whether p may place a disc at (row, col). Off-board
// coordinates are never legal; callers with untrusted input should use
// CheckMove, which tells ErrOutOfRange apart from ErrIllegalMove.
func (b Board) IsLegalMove(p Player, row, col int) bool {
	if !IsOnBoard(row, col) || b[row][col] != Empty {
		return false
	}
	for _, d := range directions {
		if b.run(p, row, col, d.dr, d.dc) > 0 {
			return true
		}
	}
	return false
}

// CheckMove validates a move coming from an untrusted caller.
func (b Board) CheckMove(p Player, row, col int) error {
	if !IsOnBoard(row, col) {
		return fmt.Errorf("(%d,%d): %w", row, col, ErrOutOfRange)
	}
	if !b.IsLegalMove(p, row, col) {
		return fmt.Errorf("%s at (%d,%d): %w", p, row, col, ErrIllegalMove)
	}
	return nil
}

// LegalMoves lists every legal move of p in row-major order.
func (b Board) LegalMoves(p Player) []Move {
	var moves []Move
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.IsLegalMove(p, row, col) {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}
	return moves
}

// HasLegalMove is LegalMoves without the allocation.
func (b Board) HasLegalMove(p Player) bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.IsLegalMove(p, row, col) {
				return true
			}
		}
	}
	return false
}

// place puts p's disc on (row, col) and flips every sandwiched run. It returns
// the number of flipped discs; a zero result means the move was illegal and the
// board must be discarded.
func (b *Board) place(p Player, row, col int) int {
	if b[row][col] != Empty {
		return 0
	}
	flipped := 0
	for _, d := range directions {
		n := b.run(p, row, col, d.dr, d.dc)
		for i := 1; i <= n; i++ {
			b[row+i*d.dr][col+i*d.dc] = p.Disc()
		}
		flipped += n
	}
	if flipped > 0 {
		b[row][col] = p.Disc()
	}
	return flipped
}

// ApplyMove returns a new board with p's move at (row, col) played. The
// receiver is left untouched.
func (b Board) ApplyMove(p Player, row, col int) (Board, error) {
	if !IsOnBoard(row, col) {
		return b, fmt.Errorf("(%d,%d): %w", row, col, ErrOutOfRange)
	}
	next := b
	if next.place(p, row, col) == 0 {
		return b, fmt.Errorf("%s at (%d,%d): %w", p, row, col, ErrIllegalMove)
	}
	return next, nil
}

// Play is ApplyMove for moves known to be legal, e.g. taken from LegalMoves.
// Playing an illegal move is a programming error and panics.
func (b Board) Play(p Player, m Move) Board {
	next, err := b.ApplyMove(p, m.Row, m.Col)
	if err != nil {
		panic(err)
	}
	return next
}

func (b Board) DiscCounts() Counts {
	var c Counts
	for row := range b {
		for _, cell := range b[row] {
			switch cell {
			case BlackDisc:
				c.Black++
			case WhiteDisc:
				c.White++
			}
		}
	}
	return c
}

// String renders the board as 8 lines of B, W and '.'.
func (b Board) String() string {
	var sb strings.Builder
	for row := range b {
		for _, cell := range b[row] {
			sb.WriteString(cell.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard reads the notation produced by String. Whitespace is ignored and
// exactly 64 cells are required.
func ParseBoard(s string) (Board, error) {
	var b Board
	i := 0
	for _, ch := range s {
		var cell Cell
		switch ch {
		case ' ', '\t', '\n', '\r':
			continue
		case '.', '-':
			cell = Empty
		case 'B', 'b', 'X', 'x':
			cell = BlackDisc
		case 'W', 'w', 'O', 'o':
			cell = WhiteDisc
		default:
			return Board{}, fmt.Errorf("unexpected character %q in board", ch)
		}
		if i >= Size*Size {
			return Board{}, fmt.Errorf("board has more than %d cells", Size*Size)
		}
		b[i/Size][i%Size] = cell
		i++
	}
	if i != Size*Size {
		return Board{}, fmt.Errorf("board has %d cells, want %d", i, Size*Size)
	}
	return b, nil
}
