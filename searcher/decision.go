package searcher

import (
	"fmt"
	"reversi/game"
	"slices"
	"sync"
)

// decision is a node of the MCTS tree. Its statistics are from the point of
// view of player, the side whose move led to it.
type decision struct {
	sync.RWMutex
	parent   *decision
	player   game.Player
	moves    []game.Move // Of the side to move, empty once the game is over
	children []*decision // children[i] follows moves[i]
	rewards  float64
	visits   float64
}

func newDecision(parent *decision, state *game.GameState, player game.Player) *decision {
	var moves []game.Move
	if !state.Over {
		moves = slices.Clone(state.LegalMoves)
	}
	return &decision{
		parent:   parent,
		player:   player,
		moves:    moves,
		children: make([]*decision, 0, len(moves)),
	}
}

// selectOrExpand descends one level. It adds the next unexplored child if
// there is one (expanded is true), otherwise it follows the child with the
// highest UCT value. A terminal node returns itself.
func (d *decision) selectOrExpand(state *game.GameState) (child *decision, childState *game.GameState, expanded bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.moves) > len(d.children) { // Expandable node
		next := play(state, d.moves[len(d.children)])
		c := newDecision(d, next, state.ToMove)
		d.children = append(d.children, c)
		c.applyLoss()
		return c, next, true
	}

	// Fully expanded node
	ith := d.pickChild()
	child = d.children[ith]
	child.applyLoss()
	return child, play(state, d.moves[ith]), false
}

func (d *decision) pickChild() int {
	// Concurrent episodes may reach a fully expanded root before any backup
	policy := newUCT(CSquared, max(d.visits, 1))

	maxIndex := 0
	maxScore := d.children[0].score(policy)
	for i, child := range d.children[1:] {
		if score := child.score(policy); score > maxScore {
			maxScore = score
			maxIndex = i + 1
		}
	}
	return maxIndex
}

// applyLoss counts a virtual loss so concurrent episodes spread over the
// tree. backup takes it back.
func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) score(policy uct) float64 {
	d.RLock()
	defer d.RUnlock()

	return policy.evaluate(d.rewards, d.visits)
}

func (d *decision) backup(winner game.Outcome) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.rewards -= Loss
		d.visits--
	}

	d.rewards += reward(winner, d.player)
	d.visits++

	return d.parent
}

// bestMove returns the most visited move and its visit count. Ties go to the
// first move in row-major order.
func (d *decision) bestMove() (game.Move, int) {
	d.RLock()
	defer d.RUnlock()

	if len(d.children) == 0 {
		panic("node has no children")
	}

	bestIndex := 0
	maxVisits := d.children[0].visitCount()
	for i, child := range d.children[1:] {
		if v := child.visitCount(); v > maxVisits {
			maxVisits = v
			bestIndex = i + 1
		}
	}
	return d.moves[bestIndex], int(maxVisits)
}

func (d *decision) visitCount() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

func reward(winner game.Outcome, player game.Player) float64 {
	switch {
	case winner == game.Draw:
		return Draw
	case winner == game.BlackWins && player == game.Black,
		winner == game.WhiteWins && player == game.White:
		return Win
	}
	return Loss
}

func play(state *game.GameState, move game.Move) *game.GameState {
	next, err := state.Play(move)
	if err != nil {
		// Nodes only hold legal moves
		panic(fmt.Sprintf("playing %v: %v", move, err))
	}
	return next
}
