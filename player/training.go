package player

import (
	"fmt"

	"tabletop/engine"
	"tabletop/games"
	"tabletop/games/phalanx"
	"tabletop/searcher"

	"github.com/rs/zerolog/log"
)

// SelfPlay plays count phalanx games between agents and keeps them as
// training data for the neural heuristic. Games stopped by maxTurns are kept
// with an ongoing result.
func SelfPlay(count int, agents [2]engine.Agent, maxTurns int, options ...searcher.Option) ([]phalanx.TrainingGame, error) {
	played := make([]phalanx.TrainingGame, 0, count)
	for i := 0; i < count; i++ {
		session := engine.NewSession(games.PhalanxDefinition(nil, nil), [2]string{agents[0].Name(), agents[1].Name()}, options...)
		gameMetric, _, err := engine.Run(session, agents, maxTurns)
		if err != nil {
			return nil, fmt.Errorf("self-play game %d: %w", i, err)
		}
		log.Info().Msgf("self-play game %d: %s after %d moves", i, gameMetric.Status, gameMetric.TotalMoves)
		played = append(played, phalanx.TrainingGame{Moves: session.History(), Result: session.Status()})
	}
	return played, nil
}
