package engine

import (
	"fmt"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/meta"
	"reversi/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

// Update is handed to OnMove after every move.
type Update struct {
	Step   int
	Player game.Player
	Move   game.Move
	State  *game.GameState
}

type Local struct {
	State  *game.GameState
	Agents map[game.Player]agent.Agent
	IDs    map[game.Player]int // Agent config ids recorded in the game metric
	OnMove func(Update)
}

var _ Engine = (*Local)(nil)

func LocalEngine(black, white agent.Agent) *Local {
	if black == nil || white == nil {
		panic("need an agent for each colour")
	}
	return &Local{
		State: game.NewGameState(),
		Agents: map[game.Player]agent.Agent{
			game.Black: black,
			game.White: white,
		},
		IDs: map[game.Player]int{},
	}
}

// Run executes the entire game loop until the game is over.
func (e *Local) Run() (game.Outcome, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		Black:     e.IDs[game.Black],
		White:     e.IDs[game.White],
		StartTime: time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("%s is starting", e.State.ToMove)

	turnCount := 1
	for !e.State.Over && turnCount <= meta.MAX_TURNS {
		player := e.State.ToMove
		move, ok, searchMetric := e.Agents[player].FindMove(e.State)
		if !ok {
			panic(fmt.Sprintf("agent for %s found no move on a board with legal moves", player))
		}

		newState, err := e.State.Play(move)
		if err != nil {
			// Agents only pick from the legal moves
			panic(fmt.Sprintf("agent for %s played %v: %v", player, move, err))
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turnCount,
			Player:       player.String(),
			Move:         fmt.Sprintf("%d,%d", move.Row, move.Col),
			SearchMetric: searchMetric,
		})
		if newState.Passed {
			gameMetric.Passes++
			log.Debug().Msgf("%s has no move and passes", newState.ToMove.Opponent())
		}

		e.State = newState
		if e.OnMove != nil {
			e.OnMove(Update{Step: turnCount, Player: player, Move: move, State: newState})
		}
		turnCount++
	}

	if !e.State.Over {
		log.Warn().Msgf("stopped after %d turns with no result", meta.MAX_TURNS)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = e.State.Winner.String()
	gameMetric.BlackDiscs = e.State.Counts.Black
	gameMetric.WhiteDiscs = e.State.Counts.White

	return e.State.Winner, gameMetric, moveMetrics
}
