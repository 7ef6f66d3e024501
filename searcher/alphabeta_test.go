package searcher

import (
	"reversi/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/**
Tests alpha-beta against a plain minimax using the same pass policy:
- value: pruning never changes the root value
- best move: strict maximum, first row-major move wins ties
- edge cases: no legal move, forced passes, terminal boards
- purity: the input board is never modified
*/

func minimax(b game.Board, depth int, maximizing bool, searching game.Player, evaluate game.Evaluation) int {
	if depth <= 0 {
		return evaluate(b, searching)
	}
	mover := searching
	if !maximizing {
		mover = searching.Opponent()
	}
	moves := b.LegalMoves(mover)
	if len(moves) == 0 {
		if !b.HasLegalMove(mover.Opponent()) {
			return evaluate(b, searching)
		}
		return minimax(b, depth-1, !maximizing, searching, evaluate)
	}
	best := Inf
	if maximizing {
		best = NegInf
	}
	for _, move := range moves {
		score := minimax(b.Play(mover, move), depth-1, !maximizing, searching, evaluate)
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

// positions plays seeded random games and samples boards along the way,
// together with the side to move.
func positions(t *testing.T, seed uint64, every int) []*game.GameState {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var sampled []*game.GameState
	gs := game.NewGameState()
	for step := 0; !gs.Over; step++ {
		if step%every == 0 {
			sampled = append(sampled, gs)
		}
		next, err := gs.Play(gs.LegalMoves[rng.Intn(len(gs.LegalMoves))])
		require.NoError(t, err)
		gs = next
	}
	return sampled
}

func TestSearchMatchesMinimax(t *testing.T) {
	t.Run("opening", func(t *testing.T) {
		s := NewAlphaBeta()
		b := game.InitialBoard()
		for depth := 1; depth <= 4; depth++ {
			for _, p := range []game.Player{game.Black, game.White} {
				want := minimax(b, depth, true, p, game.Evaluate)
				got := s.Search(b, depth, NegInf, Inf, true, p)
				require.Equal(t, want, got, "depth %d player %s", depth, p)
			}
		}
	})

	t.Run("sampled positions", func(t *testing.T) {
		s := NewAlphaBeta()
		for _, gs := range positions(t, 11, 7) {
			for depth := 1; depth <= 3; depth++ {
				want := minimax(gs.Board, depth, true, gs.ToMove, game.Evaluate)
				got := s.Search(gs.Board, depth, NegInf, Inf, true, gs.ToMove)
				require.Equal(t, want, got, "depth %d on\n%s", depth, gs.Board)

				want = minimax(gs.Board, depth, false, gs.ToMove.Opponent(), game.Evaluate)
				got = s.Search(gs.Board, depth, NegInf, Inf, false, gs.ToMove.Opponent())
				require.Equal(t, want, got, "minimizing root at depth %d on\n%s", depth, gs.Board)
			}
		}
	})

	t.Run("parity evaluation", func(t *testing.T) {
		s := NewAlphaBeta(WithEvaluationFn(game.EvaluateParity))
		for _, gs := range positions(t, 5, 9) {
			want := minimax(gs.Board, 3, true, gs.ToMove, game.EvaluateParity)
			got := s.Search(gs.Board, 3, NegInf, Inf, true, gs.ToMove)
			require.Equal(t, want, got)
		}
	})
}

func TestSearchEdgeCases(t *testing.T) {
	t.Run("depth zero evaluates", func(t *testing.T) {
		b := game.InitialBoard().Play(game.Black, game.Move{Row: 2, Col: 3})
		s := NewAlphaBeta()

		require.Equal(t, game.Evaluate(b, game.White), s.Search(b, 0, NegInf, Inf, true, game.White))
	})

	t.Run("terminal board evaluates regardless of depth", func(t *testing.T) {
		b, err := game.ParseBoard(`
			BBB.....
			........
			........
			........
			........
			........
			........
			........`)
		require.NoError(t, err)
		s := NewAlphaBeta()

		require.Equal(t, 100-20+10, s.Search(b, 4, NegInf, Inf, true, game.Black))
		require.Equal(t, -(100 - 20 + 10), s.Search(b, 4, NegInf, Inf, false, game.White))
	})

	t.Run("forced pass searches the opponent", func(t *testing.T) {
		// White cannot move; Black's only move is (0,2)
		b, err := game.ParseBoard(`
			BW......
			........
			........
			........
			........
			........
			........
			........`)
		require.NoError(t, err)
		s := NewAlphaBeta()

		after := b.Play(game.Black, game.Move{Row: 0, Col: 2})
		got := s.Search(b, 2, NegInf, Inf, true, game.White)

		require.Equal(t, game.Evaluate(after, game.White), got,
			"White passes (one ply), Black plays its only move (second ply)")
	})
}

func TestBestMove(t *testing.T) {
	t.Run("no legal move", func(t *testing.T) {
		_, ok := NewAlphaBeta().BestMove(game.Board{}, game.Black)
		require.False(t, ok)

		_, ok = BestMove(game.Board{}, game.White)
		require.False(t, ok)
	})

	t.Run("strict maximum over root children", func(t *testing.T) {
		s := NewAlphaBeta()
		for _, gs := range positions(t, 3, 10) {
			best := game.Move{}
			bestScore := NegInf
			for _, m := range gs.LegalMoves {
				score := minimax(gs.Board.Play(gs.ToMove, m), DefaultDepth-1, false, gs.ToMove, game.Evaluate)
				if score > bestScore {
					best, bestScore = m, score
				}
			}

			got, ok, metric := s.FindMove(gs.Board, gs.ToMove)

			require.True(t, ok)
			require.Equal(t, best, got, "on\n%s", gs.Board)
			require.Equal(t, bestScore, metric.Score)
		}
	})

	t.Run("ties go to the first move", func(t *testing.T) {
		flat := func(game.Board, game.Player) int { return 0 }
		s := NewAlphaBeta(WithEvaluationFn(flat))

		got, ok := s.BestMove(game.InitialBoard(), game.Black)

		require.True(t, ok)
		require.Equal(t, game.Move{Row: 2, Col: 3}, got)
	})

	t.Run("is deterministic", func(t *testing.T) {
		for _, gs := range positions(t, 17, 12) {
			first, ok1 := BestMove(gs.Board, gs.ToMove)
			second, ok2 := BestMove(gs.Board, gs.ToMove)
			require.Equal(t, ok1, ok2)
			require.Equal(t, first, second)
		}
	})

	t.Run("does not modify the input board", func(t *testing.T) {
		b := game.InitialBoard().Play(game.Black, game.Move{Row: 2, Col: 3})
		snapshot := b

		_, ok := BestMove(b, game.White)

		require.True(t, ok)
		require.Equal(t, snapshot, b)
	})

	t.Run("returned move is legal", func(t *testing.T) {
		for _, gs := range positions(t, 23, 5) {
			m, ok := BestMove(gs.Board, gs.ToMove)
			require.True(t, ok)
			require.True(t, gs.Board.IsLegalMove(gs.ToMove, m.Row, m.Col))
		}
	})

	t.Run("greedy at depth one", func(t *testing.T) {
		s := NewAlphaBeta(WithDepth(1))
		for _, gs := range positions(t, 29, 8) {
			best := gs.LegalMoves[0]
			bestScore := NegInf
			for _, m := range gs.LegalMoves {
				if score := game.Evaluate(gs.Board.Play(gs.ToMove, m), gs.ToMove); score > bestScore {
					best, bestScore = m, score
				}
			}

			got, _ := s.BestMove(gs.Board, gs.ToMove)
			require.Equal(t, best, got)
		}
	})
}

func TestMetrics(t *testing.T) {
	t.Run("collects counts", func(t *testing.T) {
		s := NewAlphaBeta(WithMetrics())

		_, ok, metric := s.FindMove(game.InitialBoard(), game.Black)

		require.True(t, ok)
		require.Equal(t, DefaultDepth, metric.Depth)
		require.Greater(t, metric.Nodes, 0)
		require.Greater(t, metric.Leaves, 0)
		require.LessOrEqual(t, metric.Leaves, metric.Nodes)
		require.Greater(t, metric.Cutoffs, 0, "Pruning should trigger from the opening")
	})

	t.Run("each search starts from zero", func(t *testing.T) {
		s := NewAlphaBeta(WithMetrics())

		_, _, first := s.FindMove(game.InitialBoard(), game.Black)
		_, _, second := s.FindMove(game.InitialBoard(), game.Black)

		require.Equal(t, first.Nodes, second.Nodes)
	})

	t.Run("no metrics by default", func(t *testing.T) {
		_, _, metric := NewAlphaBeta().FindMove(game.InitialBoard(), game.Black)

		require.Zero(t, metric.Nodes)
	})
}
