package engine

import (
	"fmt"
	"time"

	"tabletop/experiments/metrics"
	"tabletop/game"

	"github.com/rs/zerolog/log"
)

// Run plays match until it ends or maxTurns moves were made, asking the agent
// of the player to move for every move.
func Run(match Match, agents [2]Agent, maxTurns int) (metrics.GameMetric, []metrics.MoveMetric, error) {
	if agents[game.Zero] == nil || agents[game.One] == nil {
		panic("need an agent for each player")
	}

	gameMetric := metrics.GameMetric{
		StartingPlayer: match.Player().String(),
		StartTime:      time.Now(),
	}
	log.Info().Msgf("%s is starting %s", agents[match.Player()].Name(), match.Game())

	var moveMetrics []metrics.MoveMetric
	step := 1
	for match.Status() == game.Ongoing && step <= maxTurns {
		player := match.Player()
		encoded, searchMetric := agents[player].FindMove(match)
		if err := match.PlayEncoded(encoded); err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("%s played %d at turn %d: %w", agents[player].Name(), encoded, match.Turn(), err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player.String(),
			Move:         encoded,
			SearchMetric: searchMetric,
		})
		step++
	}

	status := match.Status()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Status = status.String()
	if winner := status.Winner(); winner != game.None {
		gameMetric.Winner = winner.String()
		log.Info().Msgf("%s won after %d moves", agents[winner].Name(), len(moveMetrics))
	} else if status == game.Ongoing {
		log.Warn().Msgf("stopped after %d moves without a winner", maxTurns)
	}
	return gameMetric, moveMetrics, nil
}
