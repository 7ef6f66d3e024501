package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reversi/communication"
	"reversi/config"
	"reversi/game"
	"reversi/gamemaster"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Server exposes a GameMaster over HTTP. Updates of a game are pushed to its
// websocket subscribers through the hub, which must be the GameMaster's
// observer.
type Server struct {
	gm       *gamemaster.GameMaster
	hub      *Hub
	cfg      config.Server
	router   chi.Router
	upgrader websocket.Upgrader
}

func NewServer(gm *gamemaster.GameMaster, hub *Hub, cfg config.Server) *Server {
	s := &Server{gm: gm, hub: hub, cfg: cfg}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.originAllowed}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/partida", s.handleNewGame)
	r.Post("/movimiento", s.handleMove)
	r.Get("/partida/{id}", s.handleGetGame)
	r.Get("/partida/{id}/ws", s.handleWatch)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info().Msgf("listening on %s", s.cfg.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	// Websocket connections are hijacked, Shutdown does not wait for them
	s.hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown failed")
		if err := srv.Close(); err != nil {
			return fmt.Errorf("failed to close server: %w", err)
		}
	}
	return nil
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	id, gs, err := s.gm.NewGame()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, communication.FromGameState(id, gs))
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req communication.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, communication.ErrorResponse{Detail: "invalid payload"})
		return
	}
	player, err := game.ParsePlayer(req.Player)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, communication.ErrorResponse{Detail: err.Error()})
		return
	}

	gs, err := s.gm.Play(req.GameID, player, req.Row, req.Col)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, communication.FromGameState(req.GameID, gs))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gs, err := s.gm.Get(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, communication.FromGameState(id, gs))
}

// handleWatch streams every state of a game, starting with the current one.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.gm.Get(id); err != nil {
		writeError(w, r, err)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already answered
		log.Debug().Err(err).Str("game", id).Msg("websocket upgrade failed")
		return
	}

	sub := s.hub.subscribe(id)
	// Subscribed before reading so no update in between is lost
	if gs, err := s.gm.Get(id); err == nil {
		s.hub.sendState(id, sub, gs)
	}

	go func() {
		defer conn.Close()
		if err := writeWithHeartbeat(conn, sub.send); err != nil {
			log.Debug().Err(err).Str("game", id).Msg("websocket write failed")
		}
	}()

	for {
		// Clients have nothing to say; reading detects the close
		if _, _, err := conn.ReadMessage(); err != nil {
			s.hub.unsubscribe(id, sub)
			return
		}
	}
}

func (s *Server) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(s.cfg.AllowedOrigins, "*") {
		return true
	}
	return slices.Contains(s.cfg.AllowedOrigins, origin)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps domain errors to 404 and 400; anything else is a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, gamemaster.ErrGameNotFound):
		writeJSON(w, http.StatusNotFound, communication.ErrorResponse{Detail: err.Error()})
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, gamemaster.ErrNotYourTurn),
		errors.Is(err, game.ErrOutOfRange),
		errors.Is(err, game.ErrIllegalMove):
		writeJSON(w, http.StatusBadRequest, communication.ErrorResponse{Detail: err.Error()})
	default:
		log.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, communication.ErrorResponse{Detail: "internal error"})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
