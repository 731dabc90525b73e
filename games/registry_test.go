package games

import (
	"testing"

	"tabletop/engine"
	"tabletop/game"
	"tabletop/games/phalanx"
	"tabletop/searcher"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	quiet := WithSearch(searcher.WithLogger(zerolog.Nop()))

	t.Run("lists every game", func(t *testing.T) {
		require.Equal(t, []string{Phalanx, Reversi}, IDs())
	})

	t.Run("opens matches by id", func(t *testing.T) {
		match, err := New(Phalanx, [2]string{"a", "b"}, quiet)
		require.NoError(t, err)

		require.Equal(t, Phalanx, match.Game())
		require.Len(t, match.LegalMoves(), 114)
		require.Equal(t, []string{"basic", "positional", "attack"}, match.Heuristics())
	})

	t.Run("unknown game is an error", func(t *testing.T) {
		_, err := New("chess", [2]string{}, quiet)
		require.ErrorIs(t, err, engine.ErrUnknownGame)

		_, err = Replay(engine.MatchRecord{Game: "chess"}, quiet)
		require.ErrorIs(t, err, engine.ErrUnknownGame)
	})

	t.Run("neural heuristic is opt-in", func(t *testing.T) {
		network := phalanx.NewNetwork(phalanx.NetworkConfig{HiddenLayers: []int{2}, LearningRate: 0.01, Iterations: 1})
		match, err := New(Phalanx, [2]string{}, quiet, WithNeural(phalanx.NewNeural(network)))
		require.NoError(t, err)

		require.Contains(t, match.Heuristics(), "neural")
	})

	t.Run("replay rebuilds a match", func(t *testing.T) {
		match, err := New(Reversi, [2]string{"a", "b"}, quiet)
		require.NoError(t, err)
		require.NoError(t, match.PlayEncoded(19))

		replayed, err := Replay(match.Record(), quiet)

		require.NoError(t, err)
		require.Equal(t, 1, replayed.Turn())
		require.Equal(t, game.One, replayed.Player())
		require.Equal(t, match.Snapshot(), replayed.Snapshot())
	})
}
