package phalanx

import (
	"fmt"

	"tabletop/game"
)

// Encoder packs a move as ((((x*12+y)*14+(pieces-1))*14+(step-1))*8+direction).
// NewMove keeps pieces and step within the board width.
type Encoder struct{}

const maxEncoded = Width*Height*Width*Width*8 - 1

func (Encoder) Encode(move Move) int32 {
	encoded := move.Coord.X
	encoded = encoded*Height + move.Coord.Y
	encoded = encoded*Width + move.Pieces - 1
	encoded = encoded*Width + move.Step - 1
	encoded = encoded*8 + game.DirectionIndex(move.Dir)
	return int32(encoded)
}

func (e Encoder) Decode(encoded int32) (Move, error) {
	if err := game.CheckRange[Move](e, encoded); err != nil {
		return Move{}, err
	}
	value := int(encoded)
	dir := value % 8
	value /= 8
	step := value%Width + 1
	value /= Width
	pieces := value%Width + 1
	value /= Width
	y := value % Height
	x := value / Height
	if step > pieces {
		return Move{}, fmt.Errorf("%w: step %d exceeds phalanx of %d in %d", game.ErrOutOfRange, step, pieces, encoded)
	}
	return NewMove(x, y, pieces, step, game.Directions[dir]), nil
}

func (Encoder) MaxValue() int32 {
	return maxEncoded
}
