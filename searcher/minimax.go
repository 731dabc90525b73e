package searcher

import (
	"fmt"
	"math"

	"tabletop/experiments/metrics"
	"tabletop/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Heuristic is a named evaluation of ongoing positions together with the move
// generation it wants the search to use. ListMoves must only return legal
// moves; the order it returns them in is the order siblings are searched.
type Heuristic[M comparable, S game.State, E any] interface {
	Name() string
	ListMoves(node *Node[M, S, E]) []M
	// BoardValue scores a non-terminal position, higher is better for ZERO.
	BoardValue(node *Node[M, S, E]) float64
}

type settings struct {
	pruning bool
	logger  zerolog.Logger
}

type Option func(s *settings)

func WithPruning(pruning bool) Option {
	return func(s *settings) {
		s.pruning = pruning
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// Minimax is a depth bounded minimax search with optional alpha-beta pruning.
// It holds no per-search state, so one value can serve concurrent searches.
type Minimax[M comparable, S game.State, E any] struct {
	heuristics map[string]Heuristic[M, S, E]
	names      []string
	settings
}

func NewMinimax[M comparable, S game.State, E any](heuristics []Heuristic[M, S, E], options ...Option) *Minimax[M, S, E] {
	m := &Minimax[M, S, E]{ // Default values
		heuristics: make(map[string]Heuristic[M, S, E], len(heuristics)),
		settings: settings{
			pruning: true,
			logger:  log.Logger,
		},
	}
	for _, option := range options {
		option(&m.settings)
	}
	for _, h := range heuristics {
		if _, ok := m.heuristics[h.Name()]; ok {
			panic(fmt.Sprintf("duplicate heuristic %q", h.Name()))
		}
		m.heuristics[h.Name()] = h
		m.names = append(m.names, h.Name())
	}
	return m
}

// Heuristics lists the heuristic names in registration order.
func (m *Minimax[M, S, E]) Heuristics() []string {
	return append([]string(nil), m.names...)
}

func (m *Minimax[M, S, E]) Pruning() bool {
	return m.pruning
}

func (m *Minimax[M, S, E]) heuristic(name string) Heuristic[M, S, E] {
	h, ok := m.heuristics[name]
	if !ok {
		panic(fmt.Sprintf("unknown heuristic %q", name))
	}
	return h
}

// FindBestMove searches depth plies below node and returns the move whose
// subtree is best for the player to move. Of equally scored moves the first
// one listed by the heuristic wins.
func (m *Minimax[M, S, E]) FindBestMove(node *Node[M, S, E], depth int, name string) (M, metrics.SearchMetric) {
	if node.IsTerminal() {
		panic("cannot search a finished game")
	}
	if depth < 1 {
		panic(fmt.Sprintf("search depth must be at least 1, got %d", depth))
	}
	h := m.heuristic(name)
	moves := h.ListMoves(node)
	if len(moves) == 0 {
		panic(fmt.Sprintf("ongoing position at turn %d has no moves", node.State().Turn()))
	}

	collector := metrics.NewCollector()
	collector.Start(name, depth, m.pruning, node.CreatedNodes())
	collector.AddVisit()

	maximizing := node.Player() == game.Zero
	alpha, beta := math.Inf(-1), math.Inf(1)
	best, bestScore := moves[0], node.Player().Opponent().VictoryValue()
	for i, move := range moves {
		score := m.alphaBeta(node.ChildFor(move), depth-1, alpha, beta, h, collector)
		if maximizing {
			if score > bestScore {
				best, bestScore = move, score
			}
			alpha = max(alpha, score)
		} else {
			if score < bestScore {
				best, bestScore = move, score
			}
			beta = min(beta, score)
		}
		if m.pruning && alpha >= beta {
			if i < len(moves)-1 {
				collector.AddCutoff()
			}
			break
		}
	}

	metric := collector.Complete(bestScore, node.CreatedNodes())
	m.logger.Debug().
		Str("heuristic", name).
		Int("depth", depth).
		Int("turn", node.State().Turn()).
		Interface("move", best).
		Float64("score", bestScore).
		Int64("visited", metric.Visited).
		Int64("created", metric.Created).
		Dur("duration", metric.Duration).
		Msg("search complete")
	return best, metric
}

// Score returns the minimax value of node searched depth plies deep.
func (m *Minimax[M, S, E]) Score(node *Node[M, S, E], depth int, name string) float64 {
	if depth < 0 {
		panic(fmt.Sprintf("search depth must not be negative, got %d", depth))
	}
	return m.alphaBeta(node, depth, math.Inf(-1), math.Inf(1), m.heuristic(name), metrics.NewCollector())
}

// Fail-soft: the returned value may lie outside (alpha, beta) when the
// subtree was cut.
func (m *Minimax[M, S, E]) alphaBeta(node *Node[M, S, E], depth int, alpha, beta float64, h Heuristic[M, S, E], collector metrics.Collector) float64 {
	collector.AddVisit()
	if node.IsTerminal() {
		return node.GameStatus().BoardValue()
	}
	if depth == 0 {
		return node.value(h.Name(), func() float64 { return h.BoardValue(node) })
	}

	moves := h.ListMoves(node)
	if len(moves) == 0 {
		panic(fmt.Sprintf("ongoing position at turn %d has no moves", node.State().Turn()))
	}
	maximizing := node.Player() == game.Zero
	value := node.Player().Opponent().VictoryValue()
	for i, move := range moves {
		score := m.alphaBeta(node.ChildFor(move), depth-1, alpha, beta, h, collector)
		if maximizing {
			value = max(value, score)
			alpha = max(alpha, value)
		} else {
			value = min(value, score)
			beta = min(beta, value)
		}
		if m.pruning && alpha >= beta {
			if i < len(moves)-1 {
				collector.AddCutoff()
			}
			break
		}
	}
	return value
}
