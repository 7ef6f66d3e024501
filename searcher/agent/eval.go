package agent

import (
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/searcher"
)

type searchAgent struct {
	searcher searcher.Searcher
}

// NewSearchAgent returns an agent that plays the searcher's best move.
func NewSearchAgent(s searcher.Searcher) Agent {
	return searchAgent{searcher: s}
}

func (a searchAgent) FindMove(state *game.GameState) (game.Move, bool, metrics.SearchMetric) {
	if state.Over {
		return game.Move{}, false, metrics.SearchMetric{}
	}
	return a.searcher.FindMove(state.Board, state.ToMove)
}
