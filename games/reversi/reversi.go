package reversi

import (
	"fmt"

	"tabletop/game"
	"tabletop/searcher"
)

const Size = 8

const (
	OccupiedSquare       game.Reason = "you cannot play on an occupied square"
	NoPieceFlipped       game.Reason = "your move must flip at least one opponent piece"
	CanOnlyPassWhenStuck game.Reason = "you can only pass when you have no other move"
)

type Move struct {
	Coord game.Coord
}

// Pass is the move of a player without any placement.
var Pass = Move{Coord: game.Coord{X: -1, Y: -1}}

func NewMove(x, y int) Move {
	coord := game.Coord{X: x, Y: y}
	if !coord.InRange(Size, Size) {
		panic(fmt.Sprintf("illegal coord outside of board %s", coord))
	}
	return Move{Coord: coord}
}

func (m Move) IsPass() bool {
	return m == Pass
}

func (m Move) String() string {
	if m.IsPass() {
		return "PASS"
	}
	return fmt.Sprintf("Move%s", m.Coord)
}

type State struct {
	board game.Board
	turn  int
}

func NewState(board game.Board, turn int) State {
	if board.Height() != Size || board.Width() != Size {
		panic(fmt.Sprintf("board must be %dx%d, got %dx%d", Size, Size, board.Width(), board.Height()))
	}
	return State{board: board.Copy(), turn: turn}
}

func InitialState() State {
	board := game.NewBoard(Size, Size)
	board[3][3] = game.One
	board[4][4] = game.One
	board[3][4] = game.Zero
	board[4][3] = game.Zero
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

func (s State) Board() game.Board {
	return s.board.Copy()
}

// Node is a position in a reversi game tree. The legality effect lists the
// flipped squares.
type Node = searcher.Node[Move, State, []game.Coord]

type Rules struct{}

func (Rules) InitialState() State {
	return InitialState()
}

func (Rules) IsLegal(move Move, state State) game.Legality[[]game.Coord] {
	if move.IsPass() {
		if len(placements(state)) > 0 {
			return game.Illegal[[]game.Coord](CanOnlyPassWhenStuck)
		}
		return game.Legal[[]game.Coord](nil)
	}
	if state.At(move.Coord) != game.None {
		return game.Illegal[[]game.Coord](OccupiedSquare)
	}
	flipped := flips(state.board, move.Coord, state.Player())
	if len(flipped) == 0 {
		return game.Illegal[[]game.Coord](NoPieceFlipped)
	}
	return game.Legal(flipped)
}

func (Rules) ApplyLegalMove(move Move, state State, flipped []game.Coord) State {
	board := state.board.Copy()
	if !move.IsPass() {
		player := state.Player()
		for _, c := range flipped {
			board.Set(c, player)
		}
		board.Set(move.Coord, player)
	}
	return State{board: board, turn: state.turn + 1}
}

// GameStatus ends the game once neither player can place a piece.
func (Rules) GameStatus(pos game.Position[State]) game.Status {
	state := pos.State()
	if !IsGameEnded(state) {
		return game.Ongoing
	}
	zeros, ones := state.board.Count(game.Zero), state.board.Count(game.One)
	switch {
	case zeros > ones:
		return game.ZeroWon
	case ones > zeros:
		return game.OneWon
	}
	return game.Draw
}

func IsGameEnded(state State) bool {
	next := State{board: state.board, turn: state.turn + 1}
	return len(placements(state)) == 0 && len(placements(next)) == 0
}

// flips returns the opponent pieces sandwiched by a piece of player at c.
func flips(board game.Board, c game.Coord, player game.Player) []game.Coord {
	opponent := player.Opponent()
	var flipped []game.Coord
	for _, dir := range game.Directions {
		var line []game.Coord
		next := c.Next(dir, 1)
		for board.InRange(next) && board.At(next) == opponent {
			line = append(line, next)
			next = next.Next(dir, 1)
		}
		if len(line) > 0 && board.InRange(next) && board.At(next) == player {
			flipped = append(flipped, line...)
		}
	}
	return flipped
}

func placements(state State) []Move {
	var moves []Move
	player := state.Player()
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			c := game.Coord{X: x, Y: y}
			if state.At(c) == game.None && len(flips(state.board, c, player)) > 0 {
				moves = append(moves, Move{Coord: c})
			}
		}
	}
	return moves
}

// Moves lists the placements row by row, or only Pass when there is none.
func Moves(state State) []Move {
	moves := placements(state)
	if len(moves) == 0 {
		return []Move{Pass}
	}
	return moves
}

// Encoder stores a placement as x + 8y and Pass as 64.
type Encoder struct{}

func (Encoder) Encode(move Move) int32 {
	if move.IsPass() {
		return Size * Size
	}
	return int32(move.Coord.X + Size*move.Coord.Y)
}

func (e Encoder) Decode(encoded int32) (Move, error) {
	if err := game.CheckRange[Move](e, encoded); err != nil {
		return Move{}, err
	}
	if encoded == Size*Size {
		return Pass, nil
	}
	return NewMove(int(encoded)%Size, int(encoded)/Size), nil
}

func (Encoder) MaxValue() int32 {
	return Size * Size
}

// Corners counts pieces, a border square weighing 4 and a corner 16.
type Corners struct{}

func (Corners) Name() string {
	return "corners"
}

func (Corners) ListMoves(node *Node) []Move {
	return Moves(node.State())
}

func (Corners) BoardValue(node *Node) float64 {
	return float64(CornersValue(node.State()))
}

func CornersValue(state State) int {
	total := 0
	for y, row := range state.board {
		for x, owner := range row {
			if owner == game.None {
				continue
			}
			weight := 1
			if x == 0 || x == Size-1 {
				weight *= 4
			}
			if y == 0 || y == Size-1 {
				weight *= 4
			}
			total += weight * int(owner.ScoreModifier())
		}
	}
	return total
}

func Heuristics() []searcher.Heuristic[Move, State, []game.Coord] {
	return []searcher.Heuristic[Move, State, []game.Coord]{Corners{}}
}
