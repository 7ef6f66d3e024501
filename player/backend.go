package player

import (
	"context"
	"reversi/communication"
	"reversi/communication/client"
	"reversi/game"
	"reversi/gamemaster"
)

// Backend is where the console's game lives. The computer's replies, if any,
// are already applied to the states it returns.
type Backend interface {
	Start(ctx context.Context) (string, *game.GameState, error)
	Move(ctx context.Context, id string, p game.Player, m game.Move) (*game.GameState, error)
}

type localBackend struct {
	gm *gamemaster.GameMaster
}

// NewLocalBackend plays against an in-process game master.
func NewLocalBackend(gm *gamemaster.GameMaster) Backend {
	return localBackend{gm: gm}
}

func (b localBackend) Start(ctx context.Context) (string, *game.GameState, error) {
	return b.gm.NewGame()
}

func (b localBackend) Move(ctx context.Context, id string, p game.Player, m game.Move) (*game.GameState, error) {
	return b.gm.Play(id, p, m.Row, m.Col)
}

type remoteBackend struct {
	client *client.Client
}

// NewRemoteBackend plays against a game server.
func NewRemoteBackend(c *client.Client) Backend {
	return remoteBackend{client: c}
}

func (b remoteBackend) Start(ctx context.Context) (string, *game.GameState, error) {
	dto, err := b.client.NewGame(ctx)
	if err != nil {
		return "", nil, err
	}
	gs, err := dto.GameState()
	if err != nil {
		return "", nil, err
	}
	return dto.GameID, gs, nil
}

func (b remoteBackend) Move(ctx context.Context, id string, p game.Player, m game.Move) (*game.GameState, error) {
	dto, err := b.client.Move(ctx, communication.MoveRequest{GameID: id, Row: m.Row, Col: m.Col, Player: p.String()})
	if err != nil {
		return nil, err
	}
	return dto.GameState()
}
