package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGameState(t *testing.T) {
	gs := NewGameState()

	require.Equal(t, InitialBoard(), gs.Board)
	require.Equal(t, Black, gs.ToMove)
	require.False(t, gs.Over)
	require.Equal(t, Undecided, gs.Winner)
	require.Equal(t, Counts{Black: 2, White: 2}, gs.Counts)
	require.Len(t, gs.LegalMoves, 4)
	require.Nil(t, gs.LastMove)
}

func TestGameStatePlay(t *testing.T) {
	t.Run("advances the turn", func(t *testing.T) {
		gs := NewGameState()

		next, err := gs.Play(Move{2, 3})

		require.NoError(t, err)
		require.Equal(t, White, next.ToMove)
		require.Equal(t, Counts{Black: 4, White: 1}, next.Counts)
		require.Equal(t, &Move{2, 3}, next.LastMove)
		require.Equal(t, next.Board.LegalMoves(White), next.LegalMoves)
		require.Equal(t, NewGameState(), gs, "Receiver should not change")
	})

	t.Run("rejects illegal moves", func(t *testing.T) {
		_, err := NewGameState().Play(Move{0, 0})
		require.ErrorIs(t, err, ErrIllegalMove)

		_, err = NewGameState().Play(Move{-1, 0})
		require.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("rejects moves after game over", func(t *testing.T) {
		gs := FromBoard(fullBoard(t, 40), Black)
		require.True(t, gs.Over)
		require.Empty(t, gs.LegalMoves)

		_, err := gs.Play(Move{0, 0})
		require.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("capturing the last disc ends the game", func(t *testing.T) {
		// Black takes the last white disc on row 0; White is left with nothing
		b := mustParse(t, `
			BW......
			B.......
			........
			........
			........
			........
			........
			........`)
		gs := FromBoard(b, Black)

		next, err := gs.Play(Move{0, 2})

		require.NoError(t, err)
		require.True(t, next.Over, "White has no disc left so nobody can move")
		require.Equal(t, BlackWins, next.Winner)
		require.Equal(t, Counts{Black: 4, White: 0}, next.Counts)
	})

	t.Run("pass is flagged", func(t *testing.T) {
		b := mustParse(t, `
			BW......
			........
			........
			........
			........
			........
			........
			........`)

		gs := FromBoard(b, White)

		require.Equal(t, Black, gs.ToMove)
		require.True(t, gs.Passed)
	})
}
