package game

import "fmt"

// GameState is the aggregate a session holds: the board plus the resolved
// turn. It is immutable; Play returns a new state.
type GameState struct {
	Board      Board
	ToMove     Player // Only meaningful while !Over
	Over       bool
	Winner     Outcome
	Counts     Counts
	LegalMoves []Move // Moves of ToMove in row-major order, empty once Over
	LastMove   *Move
	Passed     bool // The opponent of the last mover had no move and was skipped
}

// NewGameState returns the initial position with Black to move.
func NewGameState() *GameState {
	return newGameState(InitialBoard(), Black, nil)
}

// FromBoard resolves the turn on b with candidate to move.
func FromBoard(b Board, candidate Player) *GameState {
	return newGameState(b, candidate, nil)
}

func newGameState(b Board, candidate Player, last *Move) *GameState {
	turn := Resolve(b, candidate)
	gs := &GameState{
		Board:    b,
		ToMove:   turn.Player,
		Over:     turn.Over,
		Winner:   turn.Winner,
		Counts:   b.DiscCounts(),
		LastMove: last,
		Passed:   turn.Passed,
	}
	if !turn.Over {
		gs.LegalMoves = b.LegalMoves(turn.Player)
	}
	return gs
}

// Play applies m for the side to move and resolves the next turn.
func (gs *GameState) Play(m Move) (*GameState, error) {
	if gs.Over {
		return nil, ErrGameOver
	}
	board, err := gs.Board.ApplyMove(gs.ToMove, m.Row, m.Col)
	if err != nil {
		return nil, err
	}
	last := m
	return newGameState(board, gs.ToMove.Opponent(), &last), nil
}

func (gs *GameState) String() string {
	if gs.Over {
		return fmt.Sprintf("%sgame over, winner=%s black=%d white=%d", gs.Board, gs.Winner, gs.Counts.Black, gs.Counts.White)
	}
	return fmt.Sprintf("%s%s to move, black=%d white=%d", gs.Board, gs.ToMove, gs.Counts.Black, gs.Counts.White)
}
