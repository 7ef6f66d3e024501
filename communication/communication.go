package communication

import (
	"fmt"
	"reversi/game"
)

// GameStateDTO is a game as the HTTP API and the websocket feed send it.
type GameStateDTO struct {
	GameID        string         `json:"game_id"`
	Board         [][]*string    `json:"board"`          // "black", "white" or null
	CurrentPlayer *string        `json:"current_player"` // null once the game is over
	Winner        *string        `json:"winner"`         // "black", "white", "draw" or null
	GameOver      bool           `json:"game_over"`
	Score         map[string]int `json:"score"`
	ValidMoves    []game.Move    `json:"valid_moves"`
	LastMove      *game.Move     `json:"last_move"`
}

type MoveRequest struct {
	GameID string `json:"game_id"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Player string `json:"player"`
}

// Message is a frame of a game's websocket feed.
type Message struct {
	Type  string        `json:"type"` // "state" or "ping"
	State *GameStateDTO `json:"state,omitempty"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func FromGameState(id string, gs *game.GameState) GameStateDTO {
	dto := GameStateDTO{
		GameID:     id,
		Board:      make([][]*string, game.Size),
		GameOver:   gs.Over,
		Score:      map[string]int{game.Black.String(): gs.Counts.Black, game.White.String(): gs.Counts.White},
		ValidMoves: []game.Move{},
		LastMove:   gs.LastMove,
	}
	for r := range dto.Board {
		dto.Board[r] = make([]*string, game.Size)
		for c := range dto.Board[r] {
			if owner, ok := gs.Board[r][c].Owner(); ok {
				name := owner.String()
				dto.Board[r][c] = &name
			}
		}
	}
	if gs.Over {
		winner := gs.Winner.String()
		dto.Winner = &winner
	} else {
		current := gs.ToMove.String()
		dto.CurrentPlayer = &current
		dto.ValidMoves = append(dto.ValidMoves, gs.LegalMoves...)
	}
	return dto
}

// GameState rebuilds the game, resolving the turn again from the board with
// current_player as the candidate.
func (dto GameStateDTO) GameState() (*game.GameState, error) {
	if len(dto.Board) != game.Size {
		return nil, fmt.Errorf("board has %d rows", len(dto.Board))
	}
	var b game.Board
	for r, row := range dto.Board {
		if len(row) != game.Size {
			return nil, fmt.Errorf("board row %d has %d cells", r, len(row))
		}
		for c, cell := range row {
			if cell == nil {
				continue
			}
			p, err := game.ParsePlayer(*cell)
			if err != nil {
				return nil, fmt.Errorf("board cell (%d,%d): %w", r, c, err)
			}
			b[r][c] = p.Disc()
		}
	}
	candidate := game.Black
	if dto.CurrentPlayer != nil {
		p, err := game.ParsePlayer(*dto.CurrentPlayer)
		if err != nil {
			return nil, fmt.Errorf("current_player: %w", err)
		}
		candidate = p
	}
	gs := game.FromBoard(b, candidate)
	gs.LastMove = dto.LastMove
	return gs, nil
}
