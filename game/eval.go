package game

import "fmt"

// PositionWeights rewards corners and edges and punishes the cells that hand a
// corner to the opponent. The table is symmetric under all reflections of the
// board.
var PositionWeights = [Size][Size]int{
	{100, -20, 10, 5, 5, 10, -20, 100},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{100, -20, 10, 5, 5, 10, -20, 100},
}

// MobilityWeight scales the difference in legal move counts.
const MobilityWeight = 5

// Parity evaluation switches from mobility to disc difference past this many
// discs on the board.
const (
	ParityThreshold = 50
	ParityWeight    = 10
)

// Evaluate scores b for perspective as the positional sum of owned cells minus
// the opponent's, plus the mobility differential.
func Evaluate(b Board, perspective Player) int {
	opponent := perspective.Opponent()
	score := positional(b, perspective)
	mobility := len(b.LegalMoves(perspective)) - len(b.LegalMoves(opponent))
	return score + mobility*MobilityWeight
}

// EvaluateParity is Evaluate until the board is nearly full, after which the
// raw disc difference replaces mobility.
func EvaluateParity(b Board, perspective Player) int {
	counts := b.DiscCounts()
	if counts.Black+counts.White <= ParityThreshold {
		return Evaluate(b, perspective)
	}
	opponent := perspective.Opponent()
	return positional(b, perspective) + (counts.Of(perspective)-counts.Of(opponent))*ParityWeight
}

func positional(b Board, perspective Player) int {
	own, other := perspective.Disc(), perspective.Opponent().Disc()
	score := 0
	for row := range b {
		for col, cell := range b[row] {
			switch cell {
			case own:
				score += PositionWeights[row][col]
			case other:
				score -= PositionWeights[row][col]
			}
		}
	}
	return score
}

// EvaluationByName maps configuration names to evaluation functions.
func EvaluationByName(name string) (Evaluation, error) {
	switch name {
	case "", "positional":
		return Evaluate, nil
	case "parity":
		return EvaluateParity, nil
	}
	return nil, fmt.Errorf("unknown evaluation %q", name)
}
