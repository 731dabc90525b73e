package agent

import (
	"fmt"
	"sync"
	"time"

	"tabletop/engine"
	"tabletop/experiments/metrics"

	"golang.org/x/exp/rand"
)

// Minimax plays the best move found by a fixed depth search.
type Minimax struct {
	depth     int
	heuristic string
}

func NewMinimax(depth int, heuristic string) *Minimax {
	if depth < 1 {
		panic("minimax agent needs a depth of at least 1")
	}
	return &Minimax{depth: depth, heuristic: heuristic}
}

func (a *Minimax) Name() string {
	return fmt.Sprintf("minimax(%s, %d)", a.heuristic, a.depth)
}

func (a *Minimax) FindMove(match engine.Match) (int32, metrics.SearchMetric) {
	return match.SearchEncoded(a.depth, a.heuristic)
}

// Random plays a uniformly chosen legal move.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (*Random) Name() string {
	return "random"
}

func (a *Random) FindMove(match engine.Match) (int32, metrics.SearchMetric) {
	start := time.Now()
	moves := match.LegalMoves()
	if len(moves) == 0 {
		panic("no legal moves")
	}
	a.mu.Lock()
	move := moves[a.rng.Intn(len(moves))]
	a.mu.Unlock()
	return move, metrics.SearchMetric{Heuristic: "random", StartTime: start, Duration: time.Since(start)}
}
