package phalanx

import (
	"fmt"

	"tabletop/game"
)

const (
	Width  = 14
	Height = 12
)

// State is a phalanx position. The board is never written after construction.
type State struct {
	board game.Board
	turn  int
}

// NewState copies board, which must be Width x Height.
func NewState(board game.Board, turn int) State {
	if board.Height() != Height || board.Width() != Width {
		panic(fmt.Sprintf("board must be %dx%d, got %dx%d", Width, Height, board.Width(), board.Height()))
	}
	return State{board: board.Copy(), turn: turn}
}

// InitialState puts ONE on the two top rows and ZERO on the two bottom rows.
func InitialState() State {
	board := game.NewBoard(Width, Height)
	for x := 0; x < Width; x++ {
		board[0][x] = game.One
		board[1][x] = game.One
		board[Height-2][x] = game.Zero
		board[Height-1][x] = game.Zero
	}
	return State{board: board}
}

func (s State) Turn() int {
	return s.turn
}

func (s State) Player() game.Player {
	return game.PlayerOfTurn(s.turn)
}

func (s State) At(c game.Coord) game.Player {
	return s.board.At(c)
}

// Board returns a copy of the board.
func (s State) Board() game.Board {
	return s.board.Copy()
}

func inRange(c game.Coord) bool {
	return c.InRange(Width, Height)
}
