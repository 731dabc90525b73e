package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"tabletop/experiments/metrics"
	"tabletop/meta"

	"github.com/stretchr/testify/require"
)

/**
Tests the arena
- yaml config loading with defaults and validation
- matchups play the requested games with alternating sides
- records are stored as csv files
- pruning visits no more nodes than plain minimax on the same games
*/

const arenaYAML = `
name: smoke
game: reversi
games: 2
max_turns: 200
parallel: 2
agents:
  - id: 1
    kind: minimax
    heuristic: corners
    depth: 2
  - id: 2
    kind: random
    seed: 7
matchups:
  - [1, 2]
`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("loads agents and keeps defaults", func(t *testing.T) {
		config, err := LoadConfig(writeConfig(t, arenaYAML))

		require.NoError(t, err)
		require.Equal(t, "smoke", config.Name)
		require.Equal(t, [][2]int{{1, 2}}, config.MatchUps)
		require.Equal(t, metrics.AgentConfig{ID: 2, Kind: "random", Seed: 7}, config.Agents[1])
		require.True(t, config.Pruning, "Pruning should default to on")
		require.Equal(t, 2, config.Parallel)

		short, err := LoadConfig(writeConfig(t, "name: short\ngame: reversi\nagents: [{id: 1, kind: random}]\nmatchups: [[1, 1]]\n"))
		require.NoError(t, err)
		require.Equal(t, meta.GAMES, short.Games)
		require.Equal(t, meta.MAX_TURNS, short.MaxTurns)
	})

	failures := map[string]string{
		"unknown game":      "name: x\ngame: chess\nagents: [{id: 1, kind: random}]\nmatchups: [[1, 1]]\n",
		"unknown agent":     "name: x\ngame: reversi\nagents: [{id: 1, kind: random}]\nmatchups: [[1, 2]]\n",
		"unknown kind":      "name: x\ngame: reversi\nagents: [{id: 1, kind: mcts}]\nmatchups: [[1, 1]]\n",
		"unknown heuristic": "name: x\ngame: reversi\nagents: [{id: 1, kind: minimax, heuristic: basic, depth: 1}]\nmatchups: [[1, 1]]\n",
		"no matchup":        "name: x\ngame: reversi\nagents: [{id: 1, kind: random}]\n",
		"no name":           "game: reversi\nagents: [{id: 1, kind: random}]\nmatchups: [[1, 1]]\n",
		"bad yaml":          "name: [",
	}
	for name, content := range failures {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			require.Error(t, err)
		})
	}

	t.Run("rejects a missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, arenaYAML))
	require.NoError(t, err)
	config.Output = t.TempDir()

	results, err := Run(config)
	require.NoError(t, err)

	require.Len(t, results.Games, 2)
	require.Equal(t, 1, results.Games[0].Agent1)
	require.Equal(t, 2, results.Games[1].Agent1, "Agents should swap sides")
	moves := 0
	for _, g := range results.Games {
		require.NotEqual(t, "ONGOING", g.Status)
		moves += g.TotalMoves
	}
	require.Len(t, results.Moves, moves)

	dir, err := Store(config, results)
	require.NoError(t, err)
	for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
		require.FileExists(t, filepath.Join(dir, file))
	}
}

func TestPruningComparison(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, arenaYAML))
	require.NoError(t, err)
	config.Games = 1

	plain, pruned, err := PruningComparison(config)

	require.NoError(t, err)
	require.Equal(t, plain.Games[0].TotalMoves, pruned.Games[0].TotalMoves, "Pruning should not change the game")
	require.LessOrEqual(t, Visited(pruned), Visited(plain))
	require.Positive(t, Visited(plain))
}
