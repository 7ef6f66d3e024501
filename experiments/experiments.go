package experiments

import (
	"fmt"
	"reversi/config"
	"reversi/engine"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/searcher"
	"reversi/searcher/agent"
	"sync"

	"github.com/rs/zerolog/log"
)

// Result summarises one match-up from the first agent's point of view.
type Result struct {
	Agent1, Agent2 int
	Wins           int
	Losses         int
	Draws          int
	Unfinished     int // Stopped at the turn limit without a winner
}

type job struct {
	id            int
	matchup       int
	black, white  metrics.AgentConfig
	agent1IsBlack bool
}

type outcome struct {
	job
	game  metrics.GameRecord
	moves []metrics.MoveRecord
}

// Run plays every match-up of cfg, alternating colours between games, and
// writes the agent configs and records under cfg.OutputDir. Games run on
// cfg.Workers goroutines; each game builds its own agents.
func Run(cfg config.Experiment) ([]Result, string, error) {
	byID := make(map[int]metrics.AgentConfig, len(cfg.Agents))
	for _, a := range cfg.Agents {
		byID[a.ID] = a
	}

	jobs := []job{}
	for mi, m := range cfg.MatchUps {
		a1, ok1 := byID[m[0]]
		a2, ok2 := byID[m[1]]
		if !ok1 || !ok2 {
			return nil, "", fmt.Errorf("matchup %v references an unknown agent", m)
		}
		for i := 0; i < cfg.Games; i++ {
			j := job{id: len(jobs) + 1, matchup: mi, black: a1, white: a2, agent1IsBlack: true}
			if i%2 == 1 {
				j.black, j.white, j.agent1IsBlack = a2, a1, false
			}
			jobs = append(jobs, j)
		}
	}

	log.Info().Msgf("starting %s experiment with %d games on %d workers...", cfg.Name, len(jobs), cfg.Workers)

	task := make(chan job, len(jobs))
	for _, j := range jobs {
		task <- j
	}
	close(task)

	outcomes := make([]outcome, len(jobs))
	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	for i := 0; i < max(cfg.Workers, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := range task {
				out, err := runGame(j)
				outcomes[j.id-1], errs[j.id-1] = out, err
			}
		}()
	}
	wg.Wait()

	results := make([]Result, len(cfg.MatchUps))
	for i, m := range cfg.MatchUps {
		results[i] = Result{Agent1: m[0], Agent2: m[1]}
	}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	for i, out := range outcomes {
		if errs[i] != nil {
			return nil, "", errs[i]
		}
		gameRecords = append(gameRecords, out.game)
		moveRecords = append(moveRecords, out.moves...)
		tally(&results[out.matchup], out)
	}

	log.Info().Msgf("completed %s experiment", cfg.Name)

	writer, err := metrics.NewWriter(cfg.OutputDir, cfg.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(cfg.Agents); err != nil {
		return nil, "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return nil, "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return nil, "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return results, writer.Dir(), nil
}

func tally(r *Result, out outcome) {
	agent1 := game.BlackWins
	if !out.agent1IsBlack {
		agent1 = game.WhiteWins
	}
	switch out.game.Winner {
	case game.Undecided.String():
		r.Unfinished++
	case game.Draw.String():
		r.Draws++
	case agent1.String():
		r.Wins++
	default:
		r.Losses++
	}
}

// runGame plays a single game between the job's agents.
func runGame(j job) (outcome, error) {
	// Random agents get a per-game seed so repeated games differ but replay
	blackConfig, whiteConfig := j.black, j.white
	blackConfig.Seed += uint64(j.id)
	whiteConfig.Seed += uint64(j.id)

	black, err := NewAgent(blackConfig)
	if err != nil {
		return outcome{}, err
	}
	white, err := NewAgent(whiteConfig)
	if err != nil {
		return outcome{}, err
	}

	log.Debug().Msgf("starting game %d between black=%+v and white=%+v...", j.id, j.black, j.white)

	e := engine.LocalEngine(black, white)
	e.IDs[game.Black] = j.black.ID
	e.IDs[game.White] = j.white.ID
	winner, gameMetric, moveMetrics := e.Run()

	log.Info().Msgf("completed game %d with winner: %s (%d-%d)", j.id, winner, gameMetric.BlackDiscs, gameMetric.WhiteDiscs)

	out := outcome{job: j, game: metrics.GameRecord{ID: j.id, GameMetric: gameMetric}}
	for _, mm := range moveMetrics {
		out.moves = append(out.moves, metrics.MoveRecord{Game: j.id, MoveMetric: mm})
	}
	return out, nil
}

// NewAgent builds a fresh agent from its config. Search agents collect
// metrics, so they must not be shared between games.
func NewAgent(config metrics.AgentConfig) (agent.Agent, error) {
	switch config.Kind {
	case "random":
		return agent.NewRandomAgent(config.Seed), nil
	case "alphabeta":
		evaluate, err := game.EvaluationByName(config.Evaluation)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", config.ID, err)
		}
		options := []searcher.Option{searcher.WithEvaluationFn(evaluate), searcher.WithMetrics()}
		if config.Depth > 0 {
			options = append(options, searcher.WithDepth(config.Depth))
		}
		return agent.NewSearchAgent(searcher.NewAlphaBeta(options...)), nil
	case "mcts":
		return agent.NewSearchAgent(searcher.NewMCTS(
			searcher.WithEpisodes(config.Episodes),
			searcher.WithGoroutines(config.Goroutines),
			searcher.WithSeed(config.Seed),
			searcher.WithMCTSMetrics(),
		)), nil
	}
	return nil, fmt.Errorf("agent %d: unknown kind %q", config.ID, config.Kind)
}
