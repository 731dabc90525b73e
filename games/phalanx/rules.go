package phalanx

import (
	"tabletop/game"
	"tabletop/searcher"
)

const (
	PhalanxCannotContainPiecesOutsideBoard game.Reason = "this phalanx contains pieces outside of the board"
	PhalanxCannotContainEmptySquare        game.Reason = "a phalanx cannot contain empty squares"
	PhalanxCannotContainOpponentPiece      game.Reason = "a phalanx cannot contain opponent pieces"
	PhalanxIsLeavingBoard                  game.Reason = "the step of your phalanx takes it out of the board"
	SomethingInPhalanxWay                  game.Reason = "there is something in the way of your phalanx"
	PhalanxShouldBeGreaterToCapture        game.Reason = "your phalanx must be greater than the one it captures"
)

// Node is a position in a phalanx game tree. The legality effect is the
// board after the move.
type Node = searcher.Node[Move, State, game.Board]

type Rules struct{}

func (Rules) InitialState() State {
	return InitialState()
}

func (Rules) IsLegal(move Move, state State) game.Legality[game.Board] {
	if reason, ok := phalanxValidity(move, state); !ok {
		return game.Illegal[game.Board](reason)
	}
	board, reason, ok := landing(move, state)
	if !ok {
		return game.Illegal[game.Board](reason)
	}
	if reason, ok := capture(move, state, board); !ok {
		return game.Illegal[game.Board](reason)
	}
	return game.Legal(board)
}

func phalanxValidity(move Move, state State) (game.Reason, bool) {
	opponent := state.Player().Opponent()
	coord := move.Coord
	for i := 0; i < move.Pieces; i++ {
		if !inRange(coord) {
			return PhalanxCannotContainPiecesOutsideBoard, false
		}
		switch state.At(coord) {
		case game.None:
			return PhalanxCannotContainEmptySquare, false
		case opponent:
			return PhalanxCannotContainOpponentPiece, false
		}
		coord = coord.Next(move.Dir, 1)
	}
	return "", true
}

// landing slides the phalanx one square at a time: the tail square empties
// and the square past the head fills.
func landing(move Move, state State) (game.Board, game.Reason, bool) {
	player := state.Player()
	board := state.board.Copy()
	emptied := move.Coord
	landed := move.Coord.Next(move.Dir, move.Pieces)
	for i := 0; i+1 < move.Step; i++ {
		if !inRange(landed) {
			return nil, PhalanxIsLeavingBoard, false
		}
		if state.At(landed) != game.None {
			return nil, SomethingInPhalanxWay, false
		}
		board.Set(emptied, game.None)
		board.Set(landed, player)
		landed = landed.Next(move.Dir, 1)
		emptied = emptied.Next(move.Dir, 1)
	}
	if !inRange(landed) {
		return nil, PhalanxIsLeavingBoard, false
	}
	if state.At(landed) == player {
		return nil, game.CannotSelfCapture, false
	}
	board.Set(emptied, game.None)
	board.Set(landed, player)
	return board, "", true
}

// capture removes the opponent run the head landed on. Its first piece was
// already replaced by the landing.
func capture(move Move, state State, board game.Board) (game.Reason, bool) {
	opponent := state.Player().Opponent()
	captured := 0
	for coord := move.Landing(); inRange(coord) && state.At(coord) == opponent; coord = coord.Next(move.Dir, 1) {
		if captured > 0 {
			board.Set(coord, game.None)
		}
		captured++
		if captured >= move.Pieces {
			return PhalanxShouldBeGreaterToCapture, false
		}
	}
	return "", true
}

func (Rules) ApplyLegalMove(move Move, state State, board game.Board) State {
	return State{board: board, turn: state.turn + 1}
}

// GameStatus checks the rows each side must reach. A piece on the opponent's
// home row wins once it survived the opponent's reply, so only the player
// about to move can have won.
func (Rules) GameStatus(pos game.Position[State]) game.Status {
	state := pos.State()
	zerosOnFirstRow := state.board.CountRow(game.Zero, 0)
	onesOnLastRow := state.board.CountRow(game.One, Height-1)
	if state.Player() == game.Zero {
		if zerosOnFirstRow > onesOnLastRow {
			return game.ZeroWon
		}
	} else if onesOnLastRow > zerosOnFirstRow {
		return game.OneWon
	}
	if !state.board.Owns(game.Zero) {
		return game.OneWon
	}
	if !state.board.Owns(game.One) {
		return game.ZeroWon
	}
	return game.Ongoing
}

// Moves lists every legal move of the player to move, scanning rows then
// columns then directions. Each scan grows the phalanx over the player's
// contiguous pieces, tries every free step and finally a capture.
func Moves(state State) []Move {
	rules := Rules{}
	player := state.Player()
	opponent := player.Opponent()
	var moves []Move
	add := func(move Move) {
		if rules.IsLegal(move, state).IsLegal() {
			moves = append(moves, move)
		}
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			first := game.Coord{X: x, Y: y}
			if state.At(first) != player {
				continue
			}
			for _, dir := range game.Directions {
				pieces := 1
				next := first.Next(dir, 1)
				for inRange(next) && state.At(next) == player {
					pieces++
					next = next.Next(dir, 1)
				}
				step := 1
				for inRange(next) && step <= pieces && state.At(next) == game.None {
					add(Move{Coord: first, Pieces: pieces, Step: step, Dir: dir})
					step++
					next = next.Next(dir, 1)
				}
				if inRange(next) && step <= pieces && state.At(next) == opponent {
					add(Move{Coord: first, Pieces: pieces, Step: step, Dir: dir})
				}
			}
		}
	}
	return moves
}

// IsCapture reports whether move lands on an opponent piece.
func IsCapture(move Move, state State) bool {
	landing := move.Landing()
	return inRange(landing) && state.At(landing) == state.Player().Opponent()
}
