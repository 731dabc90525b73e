package game

import "fmt"

type Coord struct {
	X, Y int
}

func (c Coord) Next(dir Direction, distance int) Coord {
	return Coord{X: c.X + dir.DX*distance, Y: c.Y + dir.DY*distance}
}

func (c Coord) InRange(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Direction is one of the eight king-step directions. Y grows downwards.
type Direction struct {
	DX, DY int
}

var (
	Up        = Direction{0, -1}
	UpRight   = Direction{1, -1}
	Right     = Direction{1, 0}
	DownRight = Direction{1, 1}
	Down      = Direction{0, 1}
	DownLeft  = Direction{-1, 1}
	Left      = Direction{-1, 0}
	UpLeft    = Direction{-1, -1}
)

// Directions lists every direction in the order move generators scan them.
var Directions = [8]Direction{Up, UpRight, Right, DownRight, Down, DownLeft, Left, UpLeft}

var directionNames = [8]string{"UP", "UP_RIGHT", "RIGHT", "DOWN_RIGHT", "DOWN", "DOWN_LEFT", "LEFT", "UP_LEFT"}

// DirectionIndex returns the position of dir in Directions, or -1.
func DirectionIndex(dir Direction) int {
	for i, d := range Directions {
		if d == dir {
			return i
		}
	}
	return -1
}

func (d Direction) String() string {
	if i := DirectionIndex(d); i >= 0 {
		return directionNames[i]
	}
	return fmt.Sprintf("Direction(%d, %d)", d.DX, d.DY)
}
