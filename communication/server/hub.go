package server

import (
	"encoding/json"
	"reversi/communication"
	"reversi/game"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	sendBuffer       = 16
	idlePingInterval = 30 * time.Second
)

// Hub fans game updates out to the websocket subscribers of each game. It is
// a gamemaster.Observer.
type Hub struct {
	mu     sync.Mutex
	games  map[string]map[*subscriber]struct{}
	closed bool
}

type subscriber struct {
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{games: make(map[string]map[*subscriber]struct{})}
}

func (h *Hub) Notify(id string, gs *game.GameState) {
	data, err := encodeState(id, gs)
	if err != nil {
		log.Error().Err(err).Str("game", id).Msg("failed to encode game state")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.games[id] {
		sub.push(data)
	}
}

// Subscribers returns the number of open feeds for a game.
func (h *Hub) Subscribers(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.games[id])
}

// Close ends every feed. Later subscribers are closed right away.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, subs := range h.games {
		for sub := range subs {
			close(sub.send)
		}
		delete(h.games, id)
	}
}

func (h *Hub) subscribe(id string) *subscriber {
	sub := &subscriber{send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.send)
		return sub
	}
	if h.games[id] == nil {
		h.games[id] = make(map[*subscriber]struct{})
	}
	h.games[id][sub] = struct{}{}
	return sub
}

func (h *Hub) unsubscribe(id string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.games[id]
	if !ok {
		return
	}
	if _, ok := subs[sub]; ok {
		delete(subs, sub)
		close(sub.send)
	}
	if len(subs) == 0 {
		delete(h.games, id)
	}
}

// push drops the frame when the subscriber is too slow to keep up.
func (sub *subscriber) push(data []byte) {
	select {
	case sub.send <- data:
	default:
	}
}

// sendState sends gs to sub alone, if it is still subscribed.
func (h *Hub) sendState(id string, sub *subscriber, gs *game.GameState) {
	data, err := encodeState(id, gs)
	if err != nil {
		log.Error().Err(err).Str("game", id).Msg("failed to encode game state")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.games[id][sub]; ok {
		sub.push(data)
	}
}

func encodeState(id string, gs *game.GameState) ([]byte, error) {
	dto := communication.FromGameState(id, gs)
	return json.Marshal(communication.Message{Type: "state", State: &dto})
}

// writeWithHeartbeat writes frames until send is closed, pinging idle
// connections so proxies keep them open.
func writeWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(idlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	ping, err := json.Marshal(communication.Message{Type: "ping"})
	if err != nil {
		return err
	}

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < idlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
