package searcher

import (
	"fmt"
	"reversi/experiments/metrics"
	"reversi/game"
)

type Option func(s *AlphaBeta)

// AlphaBeta is a fixed-depth minimax searcher with alpha-beta pruning. Without
// WithMetrics it holds no mutable state and is safe for concurrent use; with
// metrics each search resets the shared collector, so use one searcher per
// goroutine.
type AlphaBeta struct {
	depth    int
	evaluate game.Evaluation
	metrics  metrics.Collector
}

func WithDepth(depth int) Option {
	return func(s *AlphaBeta) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluation) Option {
	return func(s *AlphaBeta) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *AlphaBeta) {
		s.metrics = metrics.NewCollector()
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	s := &AlphaBeta{ // Default values
		depth:    DefaultDepth,
		evaluate: game.Evaluate,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *AlphaBeta) Depth() int {
	return s.depth
}

func (s *AlphaBeta) String() string {
	return fmt.Sprintf("alphabeta(depth=%d)", s.depth)
}

// BestMove returns the legal move of p with the strictly greatest minimax
// value; ties go to the first move in row-major order.
func (s *AlphaBeta) BestMove(b game.Board, p game.Player) (game.Move, bool) {
	move, ok, _ := s.FindMove(b, p)
	return move, ok
}

func (s *AlphaBeta) FindMove(b game.Board, p game.Player) (game.Move, bool, metrics.SearchMetric) {
	s.metrics.Start(s.depth)

	moves := b.LegalMoves(p)
	if len(moves) == 0 {
		return game.Move{}, false, s.metrics.Complete(0)
	}

	best := moves[0]
	bestScore := NegInf
	for _, move := range moves {
		child := b.Play(p, move)
		// The candidate move was the maximizer's, so the opponent replies
		score := s.Search(child, s.depth-1, NegInf, Inf, false, p)
		if score > bestScore {
			bestScore = score
			best = move
		}
	}
	return best, true, s.metrics.Complete(bestScore)
}

// Search returns the minimax value of b from searching's perspective. The side
// to move is searching when maximizing, its opponent otherwise.
//
// A side without moves passes: the same board is searched one ply shallower
// with the other side to move. When neither side can move the board is
// evaluated as a leaf.
func (s *AlphaBeta) Search(b game.Board, depth, alpha, beta int, maximizing bool, searching game.Player) int {
	s.metrics.AddNode()

	if depth <= 0 {
		return s.leaf(b, searching)
	}

	mover := searching
	if !maximizing {
		mover = searching.Opponent()
	}

	moves := b.LegalMoves(mover)
	if len(moves) == 0 {
		if !b.HasLegalMove(mover.Opponent()) {
			return s.leaf(b, searching)
		}
		return s.Search(b, depth-1, alpha, beta, !maximizing, searching)
	}

	if maximizing {
		best := NegInf
		for _, move := range moves {
			score := s.Search(b.Play(mover, move), depth-1, alpha, beta, false, searching)
			best = max(best, score)
			alpha = max(alpha, score)
			if beta <= alpha {
				s.metrics.AddCutoff()
				break
			}
		}
		return best
	}

	best := Inf
	for _, move := range moves {
		score := s.Search(b.Play(mover, move), depth-1, alpha, beta, true, searching)
		best = min(best, score)
		beta = min(beta, score)
		if beta <= alpha {
			s.metrics.AddCutoff()
			break
		}
	}
	return best
}

func (s *AlphaBeta) leaf(b game.Board, searching game.Player) int {
	s.metrics.AddLeaf()
	return s.evaluate(b, searching)
}
