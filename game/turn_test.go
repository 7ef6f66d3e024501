package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fullBoard fills the board row-major with black discs first.
func fullBoard(t *testing.T, black int) Board {
	t.Helper()
	return mustParse(t, strings.Repeat("B", black)+strings.Repeat("W", Size*Size-black))
}

func TestResolve(t *testing.T) {
	t.Run("candidate with moves keeps the turn", func(t *testing.T) {
		turn := Resolve(InitialBoard(), Black)

		require.Equal(t, Turn{Player: Black}, turn)
	})

	t.Run("candidate without moves passes to opponent", func(t *testing.T) {
		b := mustParse(t, `
			BW......
			........
			........
			........
			........
			........
			........
			........`)
		require.Empty(t, b.LegalMoves(White), "White should have no move")
		require.NotEmpty(t, b.LegalMoves(Black), "Black should have a move")

		turn := Resolve(b, White)

		require.False(t, turn.Over, "A forced pass should not end the game")
		require.Equal(t, Black, turn.Player)
		require.True(t, turn.Passed)
	})

	t.Run("full board majority wins", func(t *testing.T) {
		b := fullBoard(t, 33)
		require.Equal(t, Counts{Black: 33, White: 31}, b.DiscCounts())

		for _, candidate := range []Player{Black, White} {
			turn := Resolve(b, candidate)
			require.True(t, turn.Over)
			require.Equal(t, BlackWins, turn.Winner)
		}
	})

	t.Run("white majority", func(t *testing.T) {
		turn := Resolve(fullBoard(t, 20), Black)

		require.True(t, turn.Over)
		require.Equal(t, WhiteWins, turn.Winner)
	})

	t.Run("equal counts draw", func(t *testing.T) {
		turn := Resolve(fullBoard(t, 32), White)

		require.True(t, turn.Over)
		require.Equal(t, Draw, turn.Winner)
	})

	t.Run("no moves on a partially filled board", func(t *testing.T) {
		// Only black discs: nobody can sandwich anything
		b := mustParse(t, `
			BBB.....
			........
			........
			........
			........
			........
			........
			........`)

		turn := Resolve(b, White)

		require.True(t, turn.Over)
		require.Equal(t, BlackWins, turn.Winner)
	})

	t.Run("is pure", func(t *testing.T) {
		b := InitialBoard()
		first := Resolve(b, White)
		second := Resolve(b, White)

		require.Equal(t, first, second)
		require.Equal(t, InitialBoard(), b)
	})
}
