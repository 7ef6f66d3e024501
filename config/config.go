package config

import (
	"errors"
	"fmt"
	"os"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/meta"
	"reversi/searcher"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     Server     `yaml:"server"`
	Search     Search     `yaml:"search"`
	AIPlayer   string     `yaml:"ai_player"` // "white", "black" or "none"
	Log        Log        `yaml:"log"`
	Experiment Experiment `yaml:"experiment"`
}

type Server struct {
	Addr            string        `yaml:"addr"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Search struct {
	Depth      int    `yaml:"depth"`
	Evaluation string `yaml:"evaluation"`
}

type Log struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type Experiment struct {
	Name      string                `yaml:"name"`
	Games     int                   `yaml:"games"` // Per match-up
	Workers   int                   `yaml:"workers"`
	OutputDir string                `yaml:"output_dir"`
	Agents    []metrics.AgentConfig `yaml:"agents"`
	MatchUps  [][2]int              `yaml:"matchups"` // Pairs of agent ids
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:            meta.DEFAULT_ADDR,
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 5 * time.Second,
		},
		Search: Search{
			Depth:      searcher.DefaultDepth,
			Evaluation: "positional",
		},
		AIPlayer: "white",
		Log: Log{
			Level:  "info",
			Pretty: true,
		},
		Experiment: Experiment{
			Name:      "baseline",
			Games:     meta.GAMES,
			Workers:   4,
			OutputDir: "experiments",
			Agents: []metrics.AgentConfig{
				{ID: 1, Kind: "random", Seed: 1},
				{ID: 2, Kind: "alphabeta", Depth: 2, Evaluation: "positional"},
				{ID: 3, Kind: "alphabeta", Depth: searcher.DefaultDepth, Evaluation: "positional"},
				{ID: 4, Kind: "alphabeta", Depth: searcher.DefaultDepth, Evaluation: "parity"},
				{ID: 5, Kind: "mcts", Episodes: searcher.DefaultEpisodes, Goroutines: 4, Seed: 5},
			},
			MatchUps: [][2]int{{1, 3}, {2, 3}, {3, 4}, {3, 5}},
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Search.Depth < 1 {
		errs = append(errs, fmt.Errorf("search.depth must be positive, got %d", c.Search.Depth))
	}
	if _, err := game.EvaluationByName(c.Search.Evaluation); err != nil {
		errs = append(errs, fmt.Errorf("search.evaluation: %w", err))
	}
	if _, _, err := c.AI(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, c.Experiment.validate()...)
	return errors.Join(errs...)
}

// AI returns the colour played by the computer, false when both sides are
// human.
func (c Config) AI() (game.Player, bool, error) {
	if c.AIPlayer == "none" {
		return 0, false, nil
	}
	p, err := game.ParsePlayer(c.AIPlayer)
	if err != nil {
		return 0, false, fmt.Errorf("ai_player: %w", err)
	}
	return p, true, nil
}

// Searcher builds the searcher described by the search section.
func (c Config) Searcher() (*searcher.AlphaBeta, error) {
	evaluate, err := game.EvaluationByName(c.Search.Evaluation)
	if err != nil {
		return nil, err
	}
	return searcher.NewAlphaBeta(searcher.WithDepth(c.Search.Depth), searcher.WithEvaluationFn(evaluate)), nil
}

func (e Experiment) validate() []error {
	var errs []error
	if e.Games < 1 {
		errs = append(errs, fmt.Errorf("experiment.games must be positive, got %d", e.Games))
	}
	if e.Workers < 1 {
		errs = append(errs, fmt.Errorf("experiment.workers must be positive, got %d", e.Workers))
	}
	ids := make(map[int]bool, len(e.Agents))
	for _, a := range e.Agents {
		if ids[a.ID] {
			errs = append(errs, fmt.Errorf("experiment agent id %d is duplicated", a.ID))
		}
		ids[a.ID] = true
		switch a.Kind {
		case "random":
		case "alphabeta":
			if a.Depth < 1 {
				errs = append(errs, fmt.Errorf("experiment agent %d: depth must be positive", a.ID))
			}
			if _, err := game.EvaluationByName(a.Evaluation); err != nil {
				errs = append(errs, fmt.Errorf("experiment agent %d: %w", a.ID, err))
			}
		case "mcts":
			if a.Episodes < 1 || a.Goroutines < 1 {
				errs = append(errs, fmt.Errorf("experiment agent %d: episodes and goroutines must be positive", a.ID))
			}
		default:
			errs = append(errs, fmt.Errorf("experiment agent %d: unknown kind %q", a.ID, a.Kind))
		}
	}
	for _, m := range e.MatchUps {
		if !ids[m[0]] || !ids[m[1]] {
			errs = append(errs, fmt.Errorf("experiment matchup %v references an unknown agent", m))
		}
	}
	return errs
}
