package engine_test

import (
	"tabletop/engine"
	"tabletop/experiments/metrics"
)

type firstMove struct{}

func (firstMove) Name() string { return "first" }

func (firstMove) FindMove(match engine.Match) (int32, metrics.SearchMetric) {
	return match.LegalMoves()[0], metrics.SearchMetric{}
}

type fixedMove struct {
	move int32
}

func (fixedMove) Name() string { return "fixed" }

func (a fixedMove) FindMove(engine.Match) (int32, metrics.SearchMetric) {
	return a.move, metrics.SearchMetric{}
}

type searchAgent struct {
	depth int
}

func (searchAgent) Name() string { return "search" }

func (a searchAgent) FindMove(match engine.Match) (int32, metrics.SearchMetric) {
	return match.SearchEncoded(a.depth, match.Heuristics()[0])
}
