package searcher

import (
	"fmt"
	"reversi/experiments/metrics"
	"reversi/game"
	"sync"

	"golang.org/x/exp/rand"
)

const DefaultEpisodes = 1000

type MCTSOption func(m *MCTS)

// MCTS is a Monte Carlo tree searcher with random playouts. Episodes run on
// several goroutines sharing one tree, spread by virtual losses.
type MCTS struct {
	goroutines int
	episodes   int
	seed       uint64
	metrics    metrics.Collector
}

func WithGoroutines(goroutines int) MCTSOption {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithEpisodes(episodes int) MCTSOption {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithSeed seeds the playouts. With a single goroutine the same seed gives the
// same move.
func WithSeed(seed uint64) MCTSOption {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithMCTSMetrics() MCTSOption {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...MCTSOption) *MCTS {
	m := &MCTS{ // Default values
		goroutines: 1,
		episodes:   DefaultEpisodes,
		seed:       1,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *MCTS) String() string {
	return fmt.Sprintf("mcts(episodes=%d, goroutines=%d)", m.episodes, m.goroutines)
}

// FindMove runs the episodes from b with p to move and returns the most
// visited move. Nodes and leaves in the metric count episodes and playouts;
// the score is the chosen move's visit count.
func (m *MCTS) FindMove(b game.Board, p game.Player) (game.Move, bool, metrics.SearchMetric) {
	m.metrics.Start(0)

	if !b.HasLegalMove(p) {
		return game.Move{}, false, m.metrics.Complete(0)
	}

	state := game.FromBoard(b, p)
	root := newDecision(nil, state, p.Opponent())
	m.iterate(root, state)

	move, visits := root.bestMove()
	return move, true, m.metrics.Complete(visits)
}

func (m *MCTS) iterate(root *decision, state *game.GameState) {
	task := make(chan struct{}, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- struct{}{}
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		rng := rand.New(rand.NewSource(m.seed + uint64(i)))
		go func() {
			defer wg.Done()

			for range task {
				m.simulate(root, state, rng)
				m.metrics.AddNode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) simulate(root *decision, state *game.GameState, rng *rand.Rand) {
	newNode, newState := selectThenExpand(root, state)
	winner := rollout(newState, rng)
	m.metrics.AddLeaf()
	backup(newNode, winner)
}

func selectThenExpand(root *decision, state *game.GameState) (*decision, *game.GameState) {
	parent := root
	child, state, expanded := parent.selectOrExpand(state)
	for !expanded && child != parent {
		parent = child
		child, state, expanded = parent.selectOrExpand(state)
	}
	return child, state
}

// rollout plays random moves until the game is over.
func rollout(state *game.GameState, rng *rand.Rand) game.Outcome {
	for !state.Over {
		move := state.LegalMoves[rng.Intn(len(state.LegalMoves))] // Random rollout policy
		state = play(state, move)
	}
	return state.Winner
}

func backup(newNode *decision, winner game.Outcome) {
	node := newNode
	for node != nil {
		node = node.backup(winner)
	}
}
