package engine

import (
	"reversi/experiments/metrics"
	"reversi/game"
)

type Engine interface {
	// Run plays a game till it is over or a max number of turns is reached
	Run() (winner game.Outcome, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
