package game

import (
	"fmt"
	"math"
)

// Player identifies one side of a two-player game. None marks empty squares.
type Player int8

const (
	None Player = -1
	Zero Player = 0
	One  Player = 1
)

// PlayerOfTurn returns the player who moves on the given turn. Zero plays even turns.
func PlayerOfTurn(turn int) Player {
	return Player(turn % 2)
}

func (p Player) Opponent() Player {
	switch p {
	case Zero:
		return One
	case One:
		return Zero
	default:
		panic("player NONE has no opponent")
	}
}

// ScoreModifier is the sign a player's advantage contributes to a board value:
// board values grow in favour of Zero.
func (p Player) ScoreModifier() float64 {
	switch p {
	case Zero:
		return 1
	case One:
		return -1
	default:
		panic("player NONE has no score modifier")
	}
}

// VictoryValue is the board value of a position won by p.
func (p Player) VictoryValue() float64 {
	return math.Inf(int(p.ScoreModifier()))
}

func (p Player) String() string {
	switch p {
	case None:
		return "NONE"
	case Zero:
		return "ZERO"
	case One:
		return "ONE"
	default:
		return fmt.Sprintf("Player(%d)", int8(p))
	}
}

// State is an immutable snapshot of a game position.
type State interface {
	Turn() int
}

// Status classifies a position as still in play or finished.
type Status int

const (
	Ongoing Status = iota
	ZeroWon
	OneWon
	Draw
)

// WinFor returns the status of a game won by p.
func WinFor(p Player) Status {
	switch p {
	case Zero:
		return ZeroWon
	case One:
		return OneWon
	default:
		panic("player NONE cannot win")
	}
}

func (s Status) IsEndGame() bool {
	return s != Ongoing
}

// Winner returns the winning player, or None for ongoing and drawn games.
func (s Status) Winner() Player {
	switch s {
	case ZeroWon:
		return Zero
	case OneWon:
		return One
	default:
		return None
	}
}

// BoardValue maps a finished game to its exact score: +Inf when Zero won,
// -Inf when One won and 0 for a draw. Heuristics score ongoing positions instead.
func (s Status) BoardValue() float64 {
	switch s {
	case ZeroWon, OneWon:
		return s.Winner().VictoryValue()
	case Draw:
		return 0
	default:
		panic("ongoing game has no board value")
	}
}

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ONGOING"
	case ZeroWon:
		return "ZERO_WON"
	case OneWon:
		return "ONE_WON"
	case Draw:
		return "DRAW"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}
