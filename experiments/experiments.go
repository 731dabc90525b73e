package experiments

import (
	"fmt"
	"os"
	"slices"

	"tabletop/agent"
	"tabletop/engine"
	"tabletop/experiments/metrics"
	"tabletop/games"
	"tabletop/meta"
	"tabletop/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Config describes an arena run: which agents meet, how often and where the
// records go.
type Config struct {
	Name     string                `yaml:"name"`
	Game     string                `yaml:"game"`
	Games    int                   `yaml:"games"` // per matchup
	MaxTurns int                   `yaml:"max_turns"`
	Parallel int                   `yaml:"parallel"`
	Pruning  bool                  `yaml:"pruning"`
	Output   string                `yaml:"output"`
	Agents   []metrics.AgentConfig `yaml:"agents"`
	MatchUps [][2]int              `yaml:"matchups"` // agent ids
}

type Results struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	config := Config{
		Games:    meta.GAMES,
		MaxTurns: meta.MAX_TURNS,
		Parallel: meta.GO_ROUTINES,
		Pruning:  true,
		Output:   "experiments",
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("experiment needs a name")
	}
	match, err := games.New(c.Game, [2]string{})
	if err != nil {
		return err
	}
	if c.Games < 1 || c.MaxTurns < 1 || c.Parallel < 1 {
		return fmt.Errorf("games, max_turns and parallel must be positive")
	}
	ids := make(map[int]bool, len(c.Agents))
	for _, a := range c.Agents {
		if _, err := NewAgent(a); err != nil {
			return fmt.Errorf("agent %d: %w", a.ID, err)
		}
		if a.Kind == "minimax" && !slices.Contains(match.Heuristics(), a.Heuristic) {
			return fmt.Errorf("agent %d: %s has no heuristic %q", a.ID, c.Game, a.Heuristic)
		}
		ids[a.ID] = true
	}
	if len(c.MatchUps) == 0 {
		return fmt.Errorf("experiment %s has no matchups", c.Name)
	}
	for _, m := range c.MatchUps {
		if !ids[m[0]] || !ids[m[1]] {
			return fmt.Errorf("matchup %v refers to an unknown agent", m)
		}
	}
	return nil
}

func NewAgent(config metrics.AgentConfig) (engine.Agent, error) {
	switch config.Kind {
	case "minimax":
		if config.Depth < 1 || config.Heuristic == "" {
			return nil, fmt.Errorf("minimax agent needs a heuristic and a positive depth")
		}
		return agent.NewMinimax(config.Depth, config.Heuristic), nil
	case "random":
		return agent.NewRandom(config.Seed), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
}

type job struct {
	id     int
	agents [2]metrics.AgentConfig
}

// Run plays every matchup config.Games times, up to config.Parallel games at
// once. The agents swap sides on every other game.
func Run(config Config) (Results, error) {
	byID := make(map[int]metrics.AgentConfig, len(config.Agents))
	for _, a := range config.Agents {
		byID[a.ID] = a
	}
	var jobs []job
	for _, m := range config.MatchUps {
		for i := 0; i < config.Games; i++ {
			pair := [2]metrics.AgentConfig{byID[m[0]], byID[m[1]]}
			if i%2 == 1 {
				pair[0], pair[1] = pair[1], pair[0]
			}
			jobs = append(jobs, job{id: len(jobs) + 1, agents: pair})
		}
	}

	log.Info().Msgf("starting %s experiment with %d games...", config.Name, len(jobs))

	gameRecords := make([]metrics.GameRecord, len(jobs))
	moveRecords := make([][]metrics.MoveRecord, len(jobs))
	var group errgroup.Group
	group.SetLimit(config.Parallel)
	for i, j := range jobs {
		group.Go(func() error {
			gameMetric, moveMetrics, err := runGame(config, j.agents)
			if err != nil {
				return fmt.Errorf("game %d: %w", j.id, err)
			}
			gameRecords[i] = metrics.GameRecord{ID: j.id, Agent1: j.agents[0].ID, Agent2: j.agents[1].ID, GameMetric: gameMetric}
			for _, mm := range moveMetrics {
				moveRecords[i] = append(moveRecords[i], metrics.MoveRecord{Game: j.id, MoveMetric: mm})
			}
			log.Info().Msgf("completed game %d of %d with winner: %q", j.id, len(jobs), gameMetric.Winner)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Results{}, err
	}

	results := Results{Games: gameRecords}
	for _, moves := range moveRecords {
		results.Moves = append(results.Moves, moves...)
	}
	log.Info().Msgf("completed %s experiment", config.Name)
	return results, nil
}

func runGame(config Config, pair [2]metrics.AgentConfig) (metrics.GameMetric, []metrics.MoveMetric, error) {
	var agents [2]engine.Agent
	for i, c := range pair {
		a, err := NewAgent(c)
		if err != nil {
			return metrics.GameMetric{}, nil, err
		}
		agents[i] = a
	}
	match, err := games.New(config.Game, [2]string{agents[0].Name(), agents[1].Name()},
		games.WithSearch(searcher.WithPruning(config.Pruning), searcher.WithLogger(log.Logger)))
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	return engine.Run(match, agents, config.MaxTurns)
}

// Store writes the agent configs and the records under config.Output and
// returns the directory.
func Store(config Config, results Results) (string, error) {
	writer, err := metrics.NewWriter(config.Output, config.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(config.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")
	if err := writer.WriteGameRecords(results.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(results.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
