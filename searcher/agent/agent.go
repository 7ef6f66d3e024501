package agent

import (
	"reversi/experiments/metrics"
	"reversi/game"
)

type Agent interface {
	// FindMove returns the move to play for the side to move in state, false if
	// it has none, and search metrics (if collected)
	FindMove(state *game.GameState) (game.Move, bool, metrics.SearchMetric)
}
