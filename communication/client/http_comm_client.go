package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reversi/communication"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// APIError is a non-2xx answer of the game server.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server answered %d: %s", e.Status, e.Detail)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient talks to the server at baseURL, e.g. "http://localhost:8000".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
}

func (c *Client) NewGame(ctx context.Context) (communication.GameStateDTO, error) {
	return c.do(ctx, http.MethodPost, "/partida", struct{}{})
}

func (c *Client) Move(ctx context.Context, req communication.MoveRequest) (communication.GameStateDTO, error) {
	return c.do(ctx, http.MethodPost, "/movimiento", req)
}

func (c *Client) Get(ctx context.Context, id string) (communication.GameStateDTO, error) {
	return c.do(ctx, http.MethodGet, "/partida/"+url.PathEscape(id), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (communication.GameStateDTO, error) {
	var dto communication.GameStateDTO

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return dto, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return dto, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return dto, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e communication.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Detail == "" {
			e.Detail = http.StatusText(resp.StatusCode)
		}
		return dto, &APIError{Status: resp.StatusCode, Detail: e.Detail}
	}
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return dto, fmt.Errorf("failed to decode game state: %w", err)
	}
	return dto, nil
}

// Watch follows a game's websocket feed. The channel yields the current state
// first and is closed when ctx is done or the server ends the feed.
func (c *Client) Watch(ctx context.Context, id string) (<-chan communication.GameStateDTO, error) {
	wsURL := "ws" + strings.TrimPrefix(c.baseURL, "http") + "/partida/" + url.PathEscape(id) + "/ws"
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			var e communication.ErrorResponse
			_ = json.NewDecoder(resp.Body).Decode(&e)
			return nil, &APIError{Status: resp.StatusCode, Detail: e.Detail}
		}
		return nil, fmt.Errorf("failed to watch game %s: %w", id, err)
	}

	states := make(chan communication.GameStateDTO)
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	go func() {
		defer close(states)
		defer close(done)
		defer conn.Close()
		for {
			var msg communication.Message
			if err := conn.ReadJSON(&msg); err != nil {
				log.Debug().Err(err).Str("game", id).Msg("feed ended")
				return
			}
			if msg.Type != "state" || msg.State == nil {
				continue
			}
			select {
			case states <- *msg.State:
			case <-ctx.Done():
				return
			}
		}
	}()
	return states, nil
}
