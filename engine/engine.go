package engine

import (
	"errors"

	"tabletop/experiments/metrics"
	"tabletop/game"
	"tabletop/searcher"
)

var ErrUnknownGame = errors.New("unknown game")

// Definition bundles everything the engine needs to run one game.
type Definition[M comparable, S game.State, E any] struct {
	ID         string
	Rules      game.Rules[M, S, E]
	Encoder    game.Encoder[M]
	Moves      func(S) []M
	Heuristics []searcher.Heuristic[M, S, E]
}

// Agent picks the next move of the player to move in a match.
type Agent interface {
	Name() string
	FindMove(match Match) (int32, metrics.SearchMetric)
}

// Match is a session seen through encoded moves, so registries, agents and
// transports can drive any game.
type Match interface {
	Game() string
	Players() [2]string
	Turn() int
	Player() game.Player
	Status() game.Status
	LegalMoves() []int32
	PlayEncoded(encoded int32) error
	SearchEncoded(depth int, heuristic string) (int32, metrics.SearchMetric)
	Heuristics() []string
	CanTakeBack() bool
	TakeBack()
	TakeBackTurn(isAI func(game.Player) bool)
	Restart()
	Record() MatchRecord
	Snapshot() Snapshot
}

// Snapshot is what a UI needs to draw the current position.
type Snapshot struct {
	Game     string
	Turn     int
	Player   game.Player
	Status   game.Status
	Board    game.Board // nil for games without a grid
	LastMove string
}
