package player

import (
	"fmt"
	"io"
	"reversi/game"
	"reversi/utils"

	"github.com/muesli/termenv"
)

const columns = "abcdefgh"

// Renderer draws boards on a terminal, in colour when the terminal has it.
type Renderer struct {
	out *termenv.Output
}

func NewRenderer(w io.Writer, options ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, options...)}
}

func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Render prints the board with the side to move's legal moves marked, the last
// move highlighted and the score.
func (r *Renderer) Render(gs *game.GameState) {
	r.Printf("   %s\n", utils.Spread(columns, ' '))
	for row := 0; row < game.Size; row++ {
		r.Printf("%d ", row+1)
		for col := 0; col < game.Size; col++ {
			r.Printf(" %s", r.cell(gs, row, col))
		}
		r.Printf("\n")
	}

	score := fmt.Sprintf("black %d - %d white", gs.Counts.Black, gs.Counts.White)
	switch {
	case gs.Over && gs.Winner == game.Draw:
		r.Printf("%s, draw\n", score)
	case gs.Over:
		r.Printf("%s, %s\n", score, r.out.String(gs.Winner.String()+" wins").Bold())
	default:
		if gs.Passed {
			r.Printf("%s has no move and passes\n", gs.ToMove.Opponent())
		}
		r.Printf("%s, %s to move\n", score, gs.ToMove)
	}
}

func (r *Renderer) cell(gs *game.GameState, row, col int) termenv.Style {
	m := game.Move{Row: row, Col: col}
	last := gs.LastMove != nil && *gs.LastMove == m

	var s termenv.Style
	switch gs.Board[row][col] {
	case game.BlackDisc:
		s = r.out.String("B").Foreground(r.out.Color("#5f87ff")).Bold()
	case game.WhiteDisc:
		s = r.out.String("W").Foreground(r.out.Color("#ffffff")).Bold()
	default:
		if utils.Contains(gs.LegalMoves, m) {
			return r.out.String("*").Foreground(r.out.Color("#5fd75f"))
		}
		return r.out.String(".").Faint()
	}
	if last {
		s = s.Underline()
	}
	return s
}

// FormatMove writes m the way players type it, e.g. "d3". Off-board moves
// are written as a row,col pair.
func FormatMove(m game.Move) string {
	if !game.IsOnBoard(m.Row, m.Col) {
		return fmt.Sprintf("%d,%d", m.Row, m.Col)
	}
	return fmt.Sprintf("%c%d", columns[m.Col], m.Row+1)
}
