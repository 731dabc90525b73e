package phalanx

import (
	"fmt"

	"tabletop/game"
)

// Move slides the phalanx of Pieces pieces starting at Coord by Step squares
// towards Dir. The head of the phalanx is the piece furthest along Dir.
type Move struct {
	Coord  game.Coord
	Pieces int
	Step   int
	Dir    game.Direction
}

// NewMove panics on a structurally invalid move.
func NewMove(x, y, pieces, step int, dir game.Direction) Move {
	coord := game.Coord{X: x, Y: y}
	if !inRange(coord) {
		panic(fmt.Sprintf("illegal coord outside of board %s", coord))
	}
	if pieces < 1 {
		panic("must select minimum one piece")
	}
	if pieces > max(Width, Height) {
		panic(fmt.Sprintf("phalanx of %d pieces does not fit on the board", pieces))
	}
	if step < 1 {
		panic("step size must be minimum one")
	}
	if step > pieces {
		panic("cannot move a phalanx further than its size")
	}
	if game.DirectionIndex(dir) < 0 {
		panic(fmt.Sprintf("invalid direction %s", dir))
	}
	return Move{Coord: coord, Pieces: pieces, Step: step, Dir: dir}
}

// Landing is the square the head of the phalanx ends on.
func (m Move) Landing() game.Coord {
	return m.Coord.Next(m.Dir, m.Pieces+m.Step-1)
}

func (m Move) String() string {
	return fmt.Sprintf("Move(%s, m:%d, s:%d, %s)", m.Coord, m.Pieces, m.Step, m.Dir)
}
