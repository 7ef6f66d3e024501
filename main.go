package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"reversi/communication/client"
	"reversi/communication/server"
	"reversi/config"
	"reversi/engine"
	"reversi/experiments"
	"reversi/game"
	"reversi/gamemaster"
	"reversi/player"
	"reversi/searcher/agent"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "serve", "serve, play, selfplay or experiment")
	configPath := flag.String("config", "", "YAML config file, defaults apply without one")
	remote := flag.String("remote", "", "Server URL to play against in play mode, e.g. http://localhost:8000")
	human := flag.String("human", "", "Colour played at the console in local play mode, the computer takes the other")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := setupLogging(cfg.Log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "serve":
		err = runServer(ctx, cfg)
	case "play":
		err = runConsole(ctx, cfg, *remote, *human)
	case "selfplay":
		err = runSelfPlay(cfg)
	case "experiment":
		err = runExperiment(cfg)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func setupLogging(cfg config.Log) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
	return nil
}

// newGameMaster builds a game master whose computer player, if any, searches
// as configured.
func newGameMaster(cfg config.Config, aiPlayer game.Player, withAI bool, options ...gamemaster.Option) (*gamemaster.GameMaster, error) {
	if withAI {
		s, err := cfg.Searcher()
		if err != nil {
			return nil, err
		}
		options = append(options, gamemaster.WithAI(agent.NewSearchAgent(s), aiPlayer))
		log.Info().Msgf("computer plays %s with %s", aiPlayer, s)
	}
	return gamemaster.New(gamemaster.NewMemoryStore(), options...), nil
}

func runServer(ctx context.Context, cfg config.Config) error {
	aiPlayer, withAI, err := cfg.AI()
	if err != nil {
		return err
	}
	hub := server.NewHub()
	gm, err := newGameMaster(cfg, aiPlayer, withAI, gamemaster.WithObserver(hub))
	if err != nil {
		return err
	}
	return server.NewServer(gm, hub, cfg.Server).Serve(ctx)
}

func runConsole(ctx context.Context, cfg config.Config, remote, human string) error {
	var backend player.Backend
	if remote != "" {
		if human != "" {
			log.Warn().Msg("-human is ignored against a server, it decides who the computer plays")
		}
		backend = player.NewRemoteBackend(client.NewClient(remote))
	} else {
		aiPlayer, withAI, err := cfg.AI()
		if err != nil {
			return err
		}
		if human != "" {
			p, err := game.ParsePlayer(human)
			if err != nil {
				return fmt.Errorf("-human: %w", err)
			}
			aiPlayer, withAI = p.Opponent(), true
		}
		gm, err := newGameMaster(cfg, aiPlayer, withAI)
		if err != nil {
			return err
		}
		backend = player.NewLocalBackend(gm)
	}

	console := player.NewConsole(backend, os.Stdin, player.NewRenderer(os.Stdout))
	_, err := console.Run(ctx)
	if errors.Is(err, player.ErrQuit) {
		return nil
	}
	return err
}

// runSelfPlay lets the configured searcher play both colours and prints every
// position.
func runSelfPlay(cfg config.Config) error {
	black, err := cfg.Searcher()
	if err != nil {
		return err
	}
	white, err := cfg.Searcher()
	if err != nil {
		return err
	}

	renderer := player.NewRenderer(os.Stdout)
	e := engine.LocalEngine(agent.NewSearchAgent(black), agent.NewSearchAgent(white))
	renderer.Render(e.State)
	e.OnMove = func(u engine.Update) {
		renderer.Printf("\n%d. %s plays %s\n", u.Step, u.Player, player.FormatMove(u.Move))
		renderer.Render(u.State)
	}

	winner, gameMetric, _ := e.Run()
	log.Info().Msgf("self-play over in %s after %d moves, winner: %s", gameMetric.Duration, gameMetric.TotalMoves, winner)
	return nil
}

func runExperiment(cfg config.Config) error {
	results, dir, err := experiments.Run(cfg.Experiment)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Printf("agent %d vs agent %d: %d wins, %d losses, %d draws, %d unfinished\n", r.Agent1, r.Agent2, r.Wins, r.Losses, r.Draws, r.Unfinished)
	}
	log.Info().Msgf("records written to %s", dir)
	return nil
}
