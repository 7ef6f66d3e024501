package communication

import (
	"encoding/json"
	"reversi/game"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromGameState(t *testing.T) {
	t.Run("game in progress", func(t *testing.T) {
		gs, err := game.NewGameState().Play(game.Move{Row: 2, Col: 3})
		require.NoError(t, err)

		data, err := json.Marshal(FromGameState("abc", gs))
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		require.Equal(t, "abc", got["game_id"])
		require.Equal(t, "white", got["current_player"])
		require.Nil(t, got["winner"])
		require.Equal(t, false, got["game_over"])
		require.Equal(t, map[string]any{"black": 4.0, "white": 1.0}, got["score"])
		require.Equal(t, map[string]any{"row": 2.0, "col": 3.0}, got["last_move"])
		require.Len(t, got["valid_moves"], 3)

		board := got["board"].([]any)
		require.Len(t, board, game.Size)
		require.Nil(t, board[0].([]any)[0])
		require.Equal(t, "black", board[2].([]any)[3])
		require.Equal(t, "white", board[4].([]any)[4])
	})

	t.Run("finished game", func(t *testing.T) {
		b, err := game.ParseBoard("B" + strings.Repeat(".", 63))
		require.NoError(t, err)

		dto := FromGameState("abc", game.FromBoard(b, game.White))

		require.True(t, dto.GameOver)
		require.Nil(t, dto.CurrentPlayer)
		require.Equal(t, "black", *dto.Winner)
		require.Empty(t, dto.ValidMoves)
		require.NotNil(t, dto.ValidMoves, "valid_moves is an empty list, not null")
	})
}

func TestGameStateRoundTrip(t *testing.T) {
	gs, err := game.NewGameState().Play(game.Move{Row: 2, Col: 3})
	require.NoError(t, err)

	back, err := FromGameState("abc", gs).GameState()

	require.NoError(t, err)
	require.Equal(t, gs, back)
}

func TestGameStateRejectsMalformedBoards(t *testing.T) {
	dto := FromGameState("abc", game.NewGameState())
	dto.Board = dto.Board[:7]
	_, err := dto.GameState()
	require.Error(t, err)

	dto = FromGameState("abc", game.NewGameState())
	purple := "purple"
	dto.Board[0][0] = &purple
	_, err = dto.GameState()
	require.Error(t, err)
}
