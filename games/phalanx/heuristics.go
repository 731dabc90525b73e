package phalanx

import (
	"cmp"
	"math"
	"slices"
	"sync"

	"tabletop/game"
	"tabletop/searcher"

	"golang.org/x/exp/rand"
)

type Heuristic = searcher.Heuristic[Move, State, game.Board]

// Heuristics returns the hand written heuristics, positional configured with
// options. Search configurations refer to them by name.
func Heuristics(options ...PositionalOption) []Heuristic {
	return []Heuristic{Basic{}, NewPositional(options...), Attack{}}
}

// forward are the directions a player advances towards.
func forward(p game.Player) [3]game.Direction {
	if p == game.Zero {
		return [3]game.Direction{game.UpLeft, game.Up, game.UpRight}
	}
	return [3]game.Direction{game.DownLeft, game.Down, game.DownRight}
}

// alignment counts, for the piece at c, the friendly pieces lined up behind
// it towards each of dirs.
func alignment(board game.Board, c game.Coord, dirs [3]game.Direction) int {
	owner := board.At(c)
	count := 0
	for _, dir := range dirs {
		for next := c.Next(dir, 1); inRange(next) && board.At(next) == owner; next = next.Next(dir, 1) {
			count++
		}
	}
	return count
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Basic counts material first, then row domination, presence and alignment
// towards the top of the board. Longer steps are searched first.
type Basic struct{}

func (Basic) Name() string {
	return "basic"
}

func (Basic) ListMoves(node *Node) []Move {
	moves := Moves(node.State())
	slices.SortStableFunc(moves, func(a, b Move) int {
		return cmp.Compare(b.Step, a.Step)
	})
	return moves
}

func (Basic) BoardValue(node *Node) float64 {
	return float64(BasicValue(node.State()))
}

func BasicValue(state State) int {
	const (
		scoreByPiece         = 14 * 13 * 11
		scoreByRowDomination = 2
		scoreByPresence      = 1
		scoreByAlignment     = 1
	)
	up := [3]game.Direction{game.UpLeft, game.Up, game.UpRight}
	total := 0
	for y := 0; y < Height; y++ {
		row := 0
		present := [2]int{}
		for x := 0; x < Width; x++ {
			c := game.Coord{X: x, Y: y}
			owner := state.At(c)
			if owner == game.None {
				continue
			}
			mod := int(owner.ScoreModifier())
			total += scoreByPiece * mod
			present[owner] = mod
			row += mod
			total += alignment(state.board, c, up) * mod * scoreByAlignment
		}
		total += sign(row) * scoreByRowDomination
		total += (present[game.Zero] + present[game.One]) * scoreByPresence
	}
	return total
}

// Positional ranks positions by material, then by how well pieces support
// each other towards the opponent, then by advancement. Bigger phalanxes are
// searched first.
//
// With thinning enabled, positions offering more than the threshold number of
// moves drop a random share of the non capturing ones: a move of n pieces is
// kept with probability 1 - 1/n. This changes which move the search picks.
type Positional struct {
	threshold int
	mu        sync.Mutex
	random    *rand.Rand
}

type PositionalOption func(p *Positional)

func WithThinning(seed uint64, threshold int) PositionalOption {
	return func(p *Positional) {
		if threshold > 0 {
			p.threshold = threshold
			p.random = rand.New(rand.NewSource(seed))
		}
	}
}

func NewPositional(options ...PositionalOption) *Positional {
	p := &Positional{}
	for _, option := range options {
		option(p)
	}
	return p
}

func (*Positional) Name() string {
	return "positional"
}

func (p *Positional) ListMoves(node *Node) []Move {
	state := node.State()
	moves := Moves(state)
	slices.SortStableFunc(moves, func(a, b Move) int {
		return cmp.Compare(b.Pieces, a.Pieces)
	})
	if p.random == nil || len(moves) <= p.threshold {
		return moves
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	kept := make([]Move, 0, len(moves))
	for _, move := range moves {
		if IsCapture(move, state) || float64(move.Pieces)*p.random.Float64() > 1 {
			kept = append(kept, move)
		}
	}
	if len(kept) == 0 {
		return moves
	}
	return kept
}

func (*Positional) BoardValue(node *Node) float64 {
	return float64(PositionalValue(node.State()))
}

func PositionalValue(state State) int {
	const (
		maxAdvancement   = 28 * 12
		scoreByAlignment = maxAdvancement + 1
		maxAlignments    = 24*16 + 4*15
		scoreByPiece     = maxAlignments*scoreByAlignment + 1
	)
	total := 0
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			c := game.Coord{X: x, Y: y}
			owner := state.At(c)
			if owner == game.None {
				continue
			}
			advancement := y + 1
			if owner == game.Zero {
				advancement = Height - y
			}
			mod := int(owner.ScoreModifier())
			total += advancement * mod
			total += scoreByPiece * mod
			total += alignment(state.board, c, forward(owner)) * scoreByAlignment * mod
		}
	}
	return total
}

// Attack weighs material, home row defence, territory, spread from the centre
// column, pieces on the opponent's home row and mobility.
type Attack struct{}

const (
	dominanceFactor = 20
	defenseFactor   = 5
	territoryFactor = 2
	offenseFactor   = 10
	centerFactor    = 5
	mobilityFactor  = 0.12
)

func (Attack) Name() string {
	return "attack"
}

func (Attack) ListMoves(node *Node) []Move {
	return Basic{}.ListMoves(node)
}

func (Attack) BoardValue(node *Node) float64 {
	return AttackValue(node.State())
}

func AttackValue(state State) float64 {
	return dominance(state) + defense(state) + territory(state) + center(state) + offense(state) + mobility(state)
}

func dominance(state State) float64 {
	score := 0.0
	for _, row := range state.board {
		for _, owner := range row {
			if owner != game.None {
				score += owner.ScoreModifier()
			}
		}
	}
	return score * dominanceFactor
}

func defense(state State) float64 {
	score := float64(state.board.CountRow(game.Zero, Height-1)) - float64(state.board.CountRow(game.One, 0))
	return score * defenseFactor
}

func offense(state State) float64 {
	score := float64(state.board.CountRow(game.Zero, 0)) - float64(state.board.CountRow(game.One, Height-1))
	return score * offenseFactor
}

// territory counts, around each piece, the friendly or empty squares.
func territory(state State) float64 {
	score := 0.0
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			owner := state.board[y][x]
			if owner == game.None {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					c := game.Coord{X: x + dx, Y: y + dy}
					if !inRange(c) {
						continue
					}
					if neighbour := state.At(c); neighbour == owner || neighbour == game.None {
						score += owner.ScoreModifier()
					}
				}
			}
			score -= owner.ScoreModifier()
		}
	}
	return score * territoryFactor
}

func center(state State) float64 {
	score := 0.0
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if owner := state.board[y][x]; owner != game.None {
				score += owner.ScoreModifier() * math.Abs(float64(x)-6.5)
			}
		}
	}
	return score * centerFactor
}

// mobility sums the squared reach of every phalanx scan and adds each side's
// longest reach.
func mobility(state State) float64 {
	score := 0.0
	longest := [2]int{}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			first := game.Coord{X: x, Y: y}
			owner := state.At(first)
			if owner == game.None {
				continue
			}
			for _, dir := range game.Directions {
				pieces := 1
				next := first.Next(dir, 1)
				for inRange(next) && state.At(next) == owner {
					pieces++
					next = next.Next(dir, 1)
				}
				step := 1
				for inRange(next) && step <= pieces && state.At(next) == game.None {
					step++
					next = next.Next(dir, 1)
				}
				score += float64(step*step) * owner.ScoreModifier()
				longest[owner] = max(longest[owner], step)
			}
		}
	}
	score += float64(longest[game.Zero])*game.Zero.ScoreModifier() + float64(longest[game.One])*game.One.ScoreModifier()
	return score * mobilityFactor
}
