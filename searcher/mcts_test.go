package searcher

import (
	"reversi/game"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMCTSFindMove(t *testing.T) {
	t.Run("plays a legal move", func(t *testing.T) {
		b := game.InitialBoard()
		m := NewMCTS(WithEpisodes(200), WithGoroutines(4), WithMCTSMetrics())

		move, ok, metric := m.FindMove(b, game.Black)

		require.True(t, ok)
		require.True(t, b.IsLegalMove(game.Black, move.Row, move.Col))
		require.Equal(t, 200, metric.Nodes, "One node per episode")
		require.Equal(t, 200, metric.Leaves, "One playout per episode")
		require.Positive(t, metric.Score, "Score is the chosen move's visits")
	})

	t.Run("same seed same move", func(t *testing.T) {
		b := game.InitialBoard()
		b = b.Play(game.Black, game.Move{Row: 2, Col: 3})

		m1, _, _ := NewMCTS(WithEpisodes(100), WithSeed(7)).FindMove(b, game.White)
		m2, _, _ := NewMCTS(WithEpisodes(100), WithSeed(7)).FindMove(b, game.White)

		require.Equal(t, m1, m2)
	})

	t.Run("no move", func(t *testing.T) {
		b, err := game.ParseBoard("BW" + strings.Repeat(".", 62))
		require.NoError(t, err)

		_, ok, _ := NewMCTS(WithEpisodes(10)).FindMove(b, game.White)

		require.False(t, ok)
	})

	t.Run("single move", func(t *testing.T) {
		b, err := game.ParseBoard("BW" + strings.Repeat(".", 62))
		require.NoError(t, err)

		move, ok, _ := NewMCTS(WithEpisodes(10)).FindMove(b, game.Black)

		require.True(t, ok)
		require.Equal(t, game.Move{Row: 0, Col: 2}, move)
	})
}

func TestMCTSOptions(t *testing.T) {
	m := NewMCTS(WithEpisodes(-1), WithGoroutines(0))

	require.Equal(t, DefaultEpisodes, m.episodes, "Non-positive values keep the defaults")
	require.Equal(t, 1, m.goroutines)
	require.Equal(t, "mcts(episodes=1000, goroutines=1)", m.String())
}
