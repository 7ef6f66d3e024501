package config

import (
	"os"
	"path/filepath"
	"reversi/experiments/metrics"
	"reversi/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reversi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := Load("")

		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
		require.NoError(t, cfg.Validate())
	})

	t.Run("overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
server:
  addr: ":9000"
  shutdown_timeout: 2s
search:
  depth: 3
  evaluation: parity
ai_player: black
experiment:
  games: 2
  agents:
    - {id: 1, kind: random, seed: 5}
    - {id: 2, kind: alphabeta, depth: 2, evaluation: positional}
    - {id: 3, kind: mcts, episodes: 200, goroutines: 2, seed: 3}
  matchups:
    - [1, 2]
    - [3, 2]
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, ":9000", cfg.Server.Addr)
		require.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
		require.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins, "Unset fields should keep defaults")
		require.Equal(t, 3, cfg.Search.Depth)
		require.Equal(t, "parity", cfg.Search.Evaluation)
		require.Equal(t, 2, cfg.Experiment.Games)
		require.Len(t, cfg.Experiment.Agents, 3)
		require.Equal(t, 200, cfg.Experiment.Agents[2].Episodes)
		require.Equal(t, [][2]int{{1, 2}, {3, 2}}, cfg.Experiment.MatchUps)

		p, ok, err := cfg.AI()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, game.Black, p)

		s, err := cfg.Searcher()
		require.NoError(t, err)
		require.Equal(t, 3, s.Depth())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "search: [1, 2"))
		require.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
search:
  depth: 0
  evaluation: material
ai_player: purple
`))

		require.Error(t, err)
		require.Contains(t, err.Error(), "search.depth")
		require.Contains(t, err.Error(), "search.evaluation")
		require.Contains(t, err.Error(), "ai_player")
	})
}

func TestAI(t *testing.T) {
	cfg := Default()
	cfg.AIPlayer = "none"

	_, ok, err := cfg.AI()

	require.NoError(t, err)
	require.False(t, ok)
}

func TestExperimentValidation(t *testing.T) {
	cfg := Default()
	cfg.Experiment.Agents = append(cfg.Experiment.Agents,
		cfg.Experiment.Agents[0],
		metrics.AgentConfig{ID: 9, Kind: "minimax"},
		metrics.AgentConfig{ID: 10, Kind: "mcts", Goroutines: 2})
	cfg.Experiment.MatchUps = append(cfg.Experiment.MatchUps, [2]int{1, 42})

	err := cfg.Validate()

	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicated")
	require.Contains(t, err.Error(), "unknown kind")
	require.Contains(t, err.Error(), "unknown agent")
	require.Contains(t, err.Error(), "episodes and goroutines must be positive")
}
