package reversi

import (
	"testing"

	"tabletop/game"
	"tabletop/searcher"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

/**
Tests the reversi rules
- opening moves and their scan order
- flipping pieces on a placement
- pass is only legal when stuck
- game end, win and draw
- encoder round trip and bounds
- alpha-beta agrees with plain minimax
*/

const empty = "_ _ _ _ _ _ _ _"

func stateOf(turn int, rows ...string) State {
	for len(rows) < Size {
		rows = append(rows, empty)
	}
	return NewState(game.ParseBoard(rows...), turn)
}

func TestMoves(t *testing.T) {
	t.Run("opening offers four placements in scan order", func(t *testing.T) {
		moves := Moves(InitialState())

		require.Equal(t, []Move{NewMove(3, 2), NewMove(2, 3), NewMove(5, 4), NewMove(4, 5)}, moves)
	})

	t.Run("stuck player can only pass", func(t *testing.T) {
		require.Equal(t, []Move{Pass}, Moves(stateOf(1, "O X _ _ _ _ _ _")))
	})

	t.Run("moves print their square", func(t *testing.T) {
		require.Equal(t, "Move(3, 2)", NewMove(3, 2).String())
		require.Equal(t, "PASS", Pass.String())
		require.Panics(t, func() { NewMove(8, 0) })
	})
}

func TestIsLegal(t *testing.T) {
	rules := Rules{}

	t.Run("placement flips the sandwiched pieces", func(t *testing.T) {
		state := InitialState()
		status := rules.IsLegal(NewMove(3, 2), state)

		require.True(t, status.IsLegal())
		require.Equal(t, []game.Coord{{X: 3, Y: 3}}, status.Effect())

		want := stateOf(1,
			empty, empty,
			"_ _ _ O _ _ _ _",
			"_ _ _ O O _ _ _",
			"_ _ _ O X _ _ _",
		)
		require.Equal(t, want, rules.ApplyLegalMove(NewMove(3, 2), state, status.Effect()))
		require.Equal(t, game.One, state.At(game.Coord{X: 3, Y: 3}), "Applying should not touch the previous state")
	})

	t.Run("occupied square is refused", func(t *testing.T) {
		require.Equal(t, OccupiedSquare, rules.IsLegal(NewMove(3, 3), InitialState()).Reason())
	})

	t.Run("placement without flip is refused", func(t *testing.T) {
		require.Equal(t, NoPieceFlipped, rules.IsLegal(NewMove(0, 0), InitialState()).Reason())
	})

	t.Run("pass is refused while a placement exists", func(t *testing.T) {
		require.Equal(t, CanOnlyPassWhenStuck, rules.IsLegal(Pass, InitialState()).Reason())
	})

	t.Run("pass hands the turn over", func(t *testing.T) {
		state := stateOf(1, "O X _ _ _ _ _ _")
		status := rules.IsLegal(Pass, state)

		require.True(t, status.IsLegal())
		next := rules.ApplyLegalMove(Pass, state, status.Effect())
		require.Equal(t, stateOf(2, "O X _ _ _ _ _ _"), next)
	})
}

func TestGameStatus(t *testing.T) {
	status := func(state State) game.Status {
		return searcher.NewRoot[Move, State, []game.Coord](Rules{}, state).GameStatus()
	}

	t.Run("game goes on while one side can play", func(t *testing.T) {
		require.Equal(t, game.Ongoing, status(InitialState()))
		require.Equal(t, game.Ongoing, status(stateOf(1, "O X _ _ _ _ _ _")))
	})

	t.Run("more pieces wins when nobody can play", func(t *testing.T) {
		require.Equal(t, game.ZeroWon, status(stateOf(0, "O O _ _ _ _ _ X")))
		require.Equal(t, game.OneWon, status(stateOf(0, "O _ _ _ _ _ X X")))
	})

	t.Run("equal counts draw", func(t *testing.T) {
		require.Equal(t, game.Draw, status(stateOf(3, "O _ _ _ _ _ _ X")))
	})
}

func TestEncoder(t *testing.T) {
	encoder := Encoder{}

	t.Run("opening moves and pass round trip", func(t *testing.T) {
		for _, move := range append(Moves(InitialState()), Pass) {
			decoded, err := encoder.Decode(encoder.Encode(move))

			require.NoError(t, err)
			require.Equal(t, move, decoded)
		}
		require.Equal(t, int32(19), encoder.Encode(NewMove(3, 2)))
		require.Equal(t, int32(64), encoder.Encode(Pass))
	})

	t.Run("values outside the board are rejected", func(t *testing.T) {
		_, err := encoder.Decode(65)
		require.ErrorIs(t, err, game.ErrOutOfRange)

		_, err = encoder.Decode(-1)
		require.ErrorIs(t, err, game.ErrOutOfRange)
	})
}

func TestCorners(t *testing.T) {
	require.Equal(t, 0, CornersValue(InitialState()))
	require.Equal(t, 16-4-4, CornersValue(stateOf(0, "O _ _ X _ _ _ _", "X _ _ _ _ _ _ _")), "Corner should weigh four borders")
	require.Equal(t, 1, CornersValue(stateOf(0, empty, "_ O _ _ _ _ _ _")))
	require.Equal(t, -1, CornersValue(stateOf(0, empty, "_ X _ _ _ _ _ _")))
}

func TestPruningOnRealGame(t *testing.T) {
	search := func(pruning bool) *searcher.Minimax[Move, State, []game.Coord] {
		return searcher.NewMinimax(Heuristics(), searcher.WithPruning(pruning), searcher.WithLogger(zerolog.Nop()))
	}
	root := func() *Node { return searcher.NewInitialNode[Move, State, []game.Coord](Rules{}) }

	wantMove, want := search(false).FindBestMove(root(), 4, "corners")
	gotMove, got := search(true).FindBestMove(root(), 4, "corners")

	require.Equal(t, wantMove, gotMove)
	require.Equal(t, want.Score, got.Score)
	require.Less(t, got.Visited, want.Visited)
}
