package game

import (
	"fmt"
	"strings"
)

// Board is a rectangular grid of squares indexed [y][x].
type Board [][]Player

// NewBoard returns a width x height board with every square empty.
func NewBoard(width, height int) Board {
	board := make(Board, height)
	for y := range board {
		board[y] = make([]Player, width)
		for x := range board[y] {
			board[y][x] = None
		}
	}
	return board
}

func (b Board) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

func (b Board) Height() int {
	return len(b)
}

func (b Board) Copy() Board {
	board := make(Board, len(b))
	for y, row := range b {
		board[y] = make([]Player, len(row))
		copy(board[y], row)
	}
	return board
}

func (b Board) At(c Coord) Player {
	return b[c.Y][c.X]
}

// Set must only be called on a board the caller owns, usually a fresh Copy.
func (b Board) Set(c Coord, p Player) {
	b[c.Y][c.X] = p
}

func (b Board) InRange(c Coord) bool {
	return c.InRange(b.Width(), b.Height())
}

// Count returns how many squares hold p.
func (b Board) Count(p Player) int {
	count := 0
	for _, row := range b {
		for _, square := range row {
			if square == p {
				count++
			}
		}
	}
	return count
}

// CountRow returns how many squares of row y hold p.
func (b Board) CountRow(p Player, y int) int {
	count := 0
	for _, square := range b[y] {
		if square == p {
			count++
		}
	}
	return count
}

func (b Board) Owns(p Player) bool {
	for _, row := range b {
		for _, square := range row {
			if square == p {
				return true
			}
		}
	}
	return false
}

var squareRunes = map[Player]rune{None: '_', Zero: 'O', One: 'X'}

// ParseBoard reads one row per string, 'O' for ZERO, 'X' for ONE and '_' for
// an empty square. Spaces are ignored.
func ParseBoard(rows ...string) Board {
	board := make(Board, 0, len(rows))
	for y, text := range rows {
		row := make([]Player, 0, len(text))
		for _, r := range text {
			switch r {
			case ' ':
			case '_':
				row = append(row, None)
			case 'O':
				row = append(row, Zero)
			case 'X':
				row = append(row, One)
			default:
				panic(fmt.Sprintf("row %d: unknown square %q", y, r))
			}
		}
		if y > 0 && len(row) != len(board[0]) {
			panic(fmt.Sprintf("row %d has %d squares, want %d", y, len(row), len(board[0])))
		}
		board = append(board, row)
	}
	return board
}

// String writes the board in the ParseBoard format.
func (b Board) String() string {
	var sb strings.Builder
	for y, row := range b {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x, square := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(squareRunes[square])
		}
	}
	return sb.String()
}
