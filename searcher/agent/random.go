package agent

import (
	"reversi/experiments/metrics"
	"reversi/game"
	"sync"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent picking uniformly among legal moves.
// The same seed replays the same choices.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state *game.GameState) (game.Move, bool, metrics.SearchMetric) {
	if state.Over || len(state.LegalMoves) == 0 {
		return game.Move{}, false, metrics.SearchMetric{}
	}
	a.mu.Lock()
	i := a.rng.Intn(len(state.LegalMoves))
	a.mu.Unlock()
	return state.LegalMoves[i], true, metrics.SearchMetric{}
}
