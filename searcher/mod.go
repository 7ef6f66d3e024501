package searcher

import (
	"math"
	"reversi/experiments/metrics"
	"reversi/game"
)

// Hyperparameters for alpha-beta

// DefaultDepth counts the root move, i.e. three plies are searched below each
// candidate.
const DefaultDepth = 4

const (
	Inf    = math.MaxInt32
	NegInf = -Inf
)

type Searcher interface {
	FindMove(b game.Board, p game.Player) (game.Move, bool, metrics.SearchMetric)
}

var defaultSearcher = NewAlphaBeta()

// BestMove picks p's move on b with the default depth and evaluation. It
// returns false when p has no legal move.
func BestMove(b game.Board, p game.Player) (game.Move, bool) {
	return defaultSearcher.BestMove(b, p)
}
