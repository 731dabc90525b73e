package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Heuristic string
	Depth     int
	Pruning   bool
	StartTime time.Time
	Duration  time.Duration
	Visited   int64 // nodes scored, the root included
	Created   int64 // nodes added to the tree by this search
	Cutoffs   int64
	Score     float64
}

type MoveMetric struct {
	Step   int
	Player string
	Move   int32 // encoded
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "" on a draw or an unfinished game
	Status         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(heuristic string, depth int, pruning bool, created int64)
	AddVisit()
	AddCutoff()
	Complete(score float64, created int64) SearchMetric
}

type collector struct {
	heuristic string
	depth     int
	pruning   bool
	startTime time.Time
	created   int64
	visited   atomic.Int64
	cutoffs   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start takes the tree's created-node count so Complete can report the difference.
func (m *collector) Start(heuristic string, depth int, pruning bool, created int64) {
	m.startTime = time.Now()
	m.heuristic = heuristic
	m.depth = depth
	m.pruning = pruning
	m.created = created
}

func (m *collector) AddVisit() {
	m.visited.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete(score float64, created int64) SearchMetric {
	return SearchMetric{
		Heuristic: m.heuristic,
		Depth:     m.depth,
		Pruning:   m.pruning,
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Visited:   m.visited.Load(),
		Created:   created - m.created,
		Cutoffs:   m.cutoffs.Load(),
		Score:     score,
	}
}
