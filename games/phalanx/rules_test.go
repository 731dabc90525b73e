package phalanx

import (
	"testing"

	"tabletop/game"
	"tabletop/searcher"

	"github.com/stretchr/testify/require"
)

const (
	xRow = "X X X X X X X X X X X X X X"
	oRow = "O O O O O O O O O O O O O O"
	none = "_ _ _ _ _ _ _ _ _ _ _ _ _ _"
)

func startBoard() []string {
	return []string{xRow, xRow, none, none, none, none, none, none, none, none, oRow, oRow}
}

func stateOf(turn int, rows ...string) State {
	return NewState(game.ParseBoard(rows...), turn)
}

func TestNewMove(t *testing.T) {
	t.Run("valid move prints its fields", func(t *testing.T) {
		require.Equal(t, "Move((4, 3), m:2, s:1, UP)", NewMove(4, 3, 2, 1, game.Up).String())
		require.Equal(t, game.Coord{X: 4, Y: 1}, NewMove(4, 3, 2, 1, game.Up).Landing())
	})

	t.Run("structural violations panic", func(t *testing.T) {
		require.Panics(t, func() { NewMove(-1, 0, 1, 1, game.Up) }, "coord outside the board")
		require.Panics(t, func() { NewMove(0, 12, 1, 1, game.Up) }, "coord outside the board")
		require.Panics(t, func() { NewMove(0, 0, 0, 1, game.Up) }, "no piece")
		require.Panics(t, func() { NewMove(0, 0, 1, 0, game.Up) }, "no step")
		require.Panics(t, func() { NewMove(0, 0, 1, 2, game.Up) }, "step longer than the phalanx")
		require.Panics(t, func() { NewMove(0, 0, 15, 1, game.Up) }, "phalanx longer than the board")
		require.NotPanics(t, func() { NewMove(0, 0, 14, 14, game.Right) })
		require.Panics(t, func() { NewMove(0, 0, 1, 1, game.Direction{}) }, "no direction")
	})
}

func TestMoves(t *testing.T) {
	t.Run("first turn offers 114 moves", func(t *testing.T) {
		moves := Moves(InitialState())

		require.Len(t, moves, 114)
		require.Equal(t, NewMove(0, 10, 1, 1, game.Up), moves[0], "Scan should start at the top left piece")
	})

	t.Run("second player has the mirrored 114 moves", func(t *testing.T) {
		require.Len(t, Moves(stateOf(1, startBoard()...)), 114)
	})

	t.Run("every generated move is legal", func(t *testing.T) {
		state := InitialState()
		for _, move := range Moves(state) {
			require.True(t, Rules{}.IsLegal(move, state).IsLegal(), move.String())
		}
	})
}

func TestIsLegal(t *testing.T) {
	rules := Rules{}

	failures := []struct {
		name   string
		board  []string
		turn   int
		move   Move
		reason game.Reason
	}{
		{
			name:   "phalanx stepping out of the board",
			board:  startBoard(),
			move:   NewMove(0, 11, 1, 1, game.Down),
			reason: PhalanxIsLeavingBoard,
		},
		{
			name:   "phalanx head leaving the board",
			board:  startBoard(),
			move:   NewMove(1, 11, 2, 2, game.UpLeft),
			reason: PhalanxIsLeavingBoard,
		},
		{
			name:   "phalanx containing squares outside the board",
			board:  startBoard(),
			move:   NewMove(0, 11, 2, 1, game.Down),
			reason: PhalanxCannotContainPiecesOutsideBoard,
		},
		{
			name:   "phalanx containing an empty square",
			board:  startBoard(),
			move:   NewMove(0, 10, 2, 1, game.Up),
			reason: PhalanxCannotContainEmptySquare,
		},
		{
			name:   "moving opponent pieces",
			board:  startBoard(),
			turn:   1,
			move:   NewMove(0, 10, 1, 1, game.Up),
			reason: PhalanxCannotContainOpponentPiece,
		},
		{
			name: "passing through other pieces",
			board: []string{
				xRow,
				"_ X X X X X X X X X X X X X",
				none, none, none, none, none, none,
				"X _ _ _ _ _ _ _ _ _ _ _ _ _",
				"O _ _ _ _ _ _ _ _ _ _ _ _ _",
				oRow, oRow,
			},
			move:   NewMove(0, 11, 3, 3, game.Up),
			reason: SomethingInPhalanxWay,
		},
		{
			name: "capturing a greater phalanx",
			board: []string{
				"_ X X X X X X X X X X X X X",
				"_ X X X X X X X X X X X X X",
				none, none, none, none, none, none,
				"X _ _ _ _ _ _ _ _ _ _ _ _ _",
				"X _ _ _ _ _ _ _ _ _ _ _ _ _",
				oRow,
				"_ O O O O O O O O O O O O O",
			},
			move:   NewMove(0, 10, 1, 1, game.Up),
			reason: PhalanxShouldBeGreaterToCapture,
		},
		{
			name: "capturing a phalanx of the same size",
			board: []string{
				"_ X X X X X X X X X X X X X",
				"_ X X X X X X X X X X X X X",
				none, none, none, none, none,
				"X _ _ _ _ _ _ _ _ _ _ _ _ _",
				"X _ _ _ _ _ _ _ _ _ _ _ _ _",
				none,
				oRow, oRow,
			},
			move:   NewMove(0, 11, 2, 2, game.Up),
			reason: PhalanxShouldBeGreaterToCapture,
		},
		{
			name: "landing on its own piece",
			board: []string{
				"_ X X X X X X X X X X X X X",
				"_ X X X X X X X X X X X X X",
				none, none, none, none, none, none,
				"O _ _ _ _ _ _ _ _ _ _ _ _ _",
				none,
				oRow, oRow,
			},
			move:   NewMove(0, 11, 2, 2, game.Up),
			reason: game.CannotSelfCapture,
		},
	}
	for _, tc := range failures {
		t.Run("forbids "+tc.name, func(t *testing.T) {
			state := stateOf(tc.turn, tc.board...)

			status := rules.IsLegal(tc.move, state)

			require.False(t, status.IsLegal())
			require.Equal(t, tc.reason, status.Reason())
			require.Equal(t, status, rules.IsLegal(tc.move, state), "Legality should be deterministic")
		})
	}

	t.Run("allows a plain move", func(t *testing.T) {
		state := stateOf(0,
			xRow, xRow, none, none, none, none, none,
			"X _ _ _ _ _ _ _ _ _ _ _ _ _",
			none, none, oRow, oRow,
		)
		move := NewMove(0, 11, 2, 2, game.Up)

		status := rules.IsLegal(move, state)
		require.True(t, status.IsLegal())
		got := rules.ApplyLegalMove(move, state, status.Effect())

		want := stateOf(1,
			xRow, xRow, none, none, none, none, none,
			"X _ _ _ _ _ _ _ _ _ _ _ _ _",
			"O _ _ _ _ _ _ _ _ _ _ _ _ _",
			"O _ _ _ _ _ _ _ _ _ _ _ _ _",
			"_ O O O O O O O O O O O O O",
			"_ O O O O O O O O O O O O O",
		)
		require.Equal(t, want, got)
		require.Equal(t, game.Zero, state.At(game.Coord{X: 0, Y: 11}), "Applying should not touch the previous state")
	})

	t.Run("allows capturing a smaller phalanx", func(t *testing.T) {
		state := stateOf(0,
			xRow, xRow, none, none, none, none, none,
			"X _ _ _ _ _ _ _ _ _ _ _ _ _",
			"X _ _ _ _ _ _ _ _ _ _ _ _ _",
			"O _ _ _ _ _ _ _ _ _ _ _ _ _",
			oRow, oRow,
		)
		move := NewMove(0, 11, 3, 1, game.Up)

		status := rules.IsLegal(move, state)
		require.True(t, status.IsLegal())
		require.True(t, IsCapture(move, state))

		want := stateOf(1,
			xRow, xRow, none, none, none, none, none, none,
			"O _ _ _ _ _ _ _ _ _ _ _ _ _",
			"O _ _ _ _ _ _ _ _ _ _ _ _ _",
			oRow,
			"_ O O O O O O O O O O O O O",
		)
		require.Equal(t, want, rules.ApplyLegalMove(move, state, status.Effect()))
	})
}

func TestGameStatus(t *testing.T) {
	rules := Rules{}
	status := func(state State) game.Status {
		return searcher.NewRoot[Move, State, game.Board](rules, state).GameStatus()
	}
	emptyRows := func(n int) []string {
		rows := make([]string, n)
		for i := range rows {
			rows[i] = none
		}
		return rows
	}
	withRows := func(rows ...[]string) []string {
		var board []string
		for _, r := range rows {
			board = append(board, r...)
		}
		return board
	}
	corner := "O _ _ _ _ _ _ _ _ _ _ _ _ _"
	cornerX := "X _ _ _ _ _ _ _ _ _ _ _ _ _"

	t.Run("initial position is ongoing", func(t *testing.T) {
		require.Equal(t, game.Ongoing, status(InitialState()))
	})

	t.Run("zero wins when its piece survived a turn on the first row", func(t *testing.T) {
		state := stateOf(1, withRows([]string{corner}, emptyRows(8), []string{cornerX}, emptyRows(2))...)
		move := NewMove(0, 9, 1, 1, game.Down)

		legality := rules.IsLegal(move, state)
		require.True(t, legality.IsLegal())
		next := rules.ApplyLegalMove(move, state, legality.Effect())

		require.Equal(t, stateOf(2, withRows([]string{corner}, emptyRows(9), []string{cornerX}, emptyRows(1))...), next)
		require.Equal(t, game.ZeroWon, status(next))
	})

	t.Run("one wins when its piece survived a turn on the last row", func(t *testing.T) {
		state := stateOf(0, withRows(emptyRows(2), []string{corner}, emptyRows(8), []string{cornerX})...)
		move := NewMove(0, 2, 1, 1, game.Up)

		legality := rules.IsLegal(move, state)
		require.True(t, legality.IsLegal())
		next := rules.ApplyLegalMove(move, state, legality.Effect())

		require.Equal(t, game.OneWon, status(next))
	})

	t.Run("no winner when both sides reached the opponent row", func(t *testing.T) {
		state := stateOf(2, withRows([]string{corner}, emptyRows(10), []string{cornerX})...)

		require.Equal(t, game.Ongoing, status(state))
	})

	t.Run("a side without pieces loses", func(t *testing.T) {
		onlyZero := stateOf(1, withRows(emptyRows(5), []string{corner}, emptyRows(6))...)
		onlyOne := stateOf(0, withRows(emptyRows(5), []string{cornerX}, emptyRows(6))...)

		require.Equal(t, game.ZeroWon, status(onlyZero))
		require.Equal(t, game.OneWon, status(onlyOne))
	})
}
