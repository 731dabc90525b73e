package experiments

import (
	"github.com/rs/zerolog/log"
)

// PruningComparison plays config twice, once without and once with alpha-beta
// pruning, so the visited node counts of both searches can be compared.
func PruningComparison(config Config) (plain, pruned Results, err error) {
	config.Pruning = false
	if plain, err = Run(config); err != nil {
		return Results{}, Results{}, err
	}
	config.Pruning = true
	if pruned, err = Run(config); err != nil {
		return Results{}, Results{}, err
	}
	log.Info().Msgf("visited %d nodes without pruning, %d with pruning", Visited(plain), Visited(pruned))
	return plain, pruned, nil
}

// Visited sums the nodes visited by every search of results.
func Visited(results Results) int64 {
	var total int64
	for _, move := range results.Moves {
		total += move.Visited
	}
	return total
}
