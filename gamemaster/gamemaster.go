package gamemaster

import (
	"errors"
	"fmt"
	"reversi/game"
	"reversi/searcher/agent"
	"sync"

	"github.com/rs/zerolog/log"
)

var ErrNotYourTurn = errors.New("not your turn")

// Observer is told about every stored state change.
type Observer interface {
	Notify(id string, gs *game.GameState)
}

type Option func(gm *GameMaster)

// WithAI lets the agent play p's moves.
func WithAI(a agent.Agent, p game.Player) Option {
	return func(gm *GameMaster) {
		gm.ai = a
		gm.aiPlayer = p
	}
}

func WithObserver(o Observer) Option {
	return func(gm *GameMaster) {
		gm.observer = o
	}
}

// GameMaster runs games on behalf of remote players: it validates their moves,
// answers with the computer's moves and keeps the store current.
type GameMaster struct {
	store    Store
	ai       agent.Agent
	aiPlayer game.Player
	observer Observer
	locks    sync.Map // game id -> *sync.Mutex
}

func New(store Store, options ...Option) *GameMaster {
	gm := &GameMaster{store: store}
	for _, option := range options {
		option(gm)
	}
	return gm
}

// AI returns the colour played by the computer, false when there is none.
func (gm *GameMaster) AI() (game.Player, bool) {
	return gm.aiPlayer, gm.ai != nil
}

func (gm *GameMaster) lock(id string) func() {
	mu, _ := gm.locks.LoadOrStore(id, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	return mu.(*sync.Mutex).Unlock
}

// NewGame stores a fresh game. If the computer plays black it has already
// moved in the returned state.
func (gm *GameMaster) NewGame() (string, *game.GameState, error) {
	gs := game.NewGameState()
	id, err := gm.store.Create(gs)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create game: %w", err)
	}
	log.Info().Str("game", id).Msg("game created")

	unlock := gm.lock(id)
	defer unlock()

	replied, err := gm.reply(id, gs)
	if err != nil {
		return "", nil, err
	}
	if replied != gs {
		if err := gm.save(id, replied); err != nil {
			return "", nil, err
		}
	}
	return id, replied, nil
}

func (gm *GameMaster) Get(id string) (*game.GameState, error) {
	return gm.store.Get(id)
}

// Play applies player's move at (row, col) in game id, then lets the computer
// move for as long as it is to move.
func (gm *GameMaster) Play(id string, player game.Player, row, col int) (*game.GameState, error) {
	unlock := gm.lock(id)
	defer unlock()

	gs, err := gm.store.Get(id)
	if err != nil {
		return nil, err
	}
	if gs.Over {
		return nil, game.ErrGameOver
	}
	if player != gs.ToMove {
		return nil, fmt.Errorf("%s tried to move, %s is to move: %w", player, gs.ToMove, ErrNotYourTurn)
	}

	gs, err = gs.Play(game.Move{Row: row, Col: col})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("game", id).Msgf("%s played %d,%d", player, row, col)
	if err := gm.save(id, gs); err != nil {
		return nil, err
	}

	replied, err := gm.reply(id, gs)
	if err != nil {
		return nil, err
	}
	if replied != gs {
		if err := gm.save(id, replied); err != nil {
			return nil, err
		}
	}
	return replied, nil
}

// reply plays the computer's moves while it is to move. The human may have to
// pass several times in a row.
func (gm *GameMaster) reply(id string, gs *game.GameState) (*game.GameState, error) {
	ai, ok := gm.AI()
	if !ok {
		return gs, nil
	}
	for !gs.Over && gs.ToMove == ai {
		move, found, metric := gm.ai.FindMove(gs)
		if !found {
			// Resolution only hands the turn to a side with a move
			return nil, fmt.Errorf("computer found no move for %s in game %s", ai, id)
		}
		next, err := gs.Play(move)
		if err != nil {
			return nil, fmt.Errorf("computer played %v in game %s: %w", move, id, err)
		}
		log.Debug().Str("game", id).Dur("took", metric.Duration).Msgf("computer played %d,%d", move.Row, move.Col)
		if next.Passed {
			log.Info().Str("game", id).Msgf("%s has no move and passes", ai.Opponent())
		}
		gs = next
	}
	if gs.Over {
		log.Info().Str("game", id).Msgf("game over, winner: %s", gs.Winner)
	}
	return gs, nil
}

func (gm *GameMaster) save(id string, gs *game.GameState) error {
	if err := gm.store.Update(id, gs); err != nil {
		return fmt.Errorf("failed to store game %s: %w", id, err)
	}
	if gm.observer != nil {
		gm.observer.Notify(id, gs)
	}
	return nil
}
