package searcher

import (
	"slices"
	"sync/atomic"

	"tabletop/game"
)

const errNoSuchBranch game.Reason = "no such branch"

// mockState is a position in a hand written tree: path spells the moves
// played from the root.
type mockState struct {
	path string
	turn int
}

func (s mockState) Turn() int {
	return s.turn
}

type mockRules struct {
	initialTurn int
	moves       map[string][]byte
	status      map[string]game.Status
	frozenTurn  bool // ApplyLegalMove forgets to advance the turn
	statusCalls *atomic.Int64
}

func (r mockRules) InitialState() mockState {
	return mockState{turn: r.initialTurn}
}

func (r mockRules) IsLegal(move byte, state mockState) game.Legality[string] {
	if slices.Contains(r.moves[state.path], move) {
		return game.Legal(state.path + string(move))
	}
	return game.Illegal[string](errNoSuchBranch)
}

func (r mockRules) ApplyLegalMove(move byte, state mockState, path string) mockState {
	if r.frozenTurn {
		return mockState{path: path, turn: state.turn}
	}
	return mockState{path: path, turn: state.turn + 1}
}

func (r mockRules) GameStatus(pos game.Position[mockState]) game.Status {
	if r.statusCalls != nil {
		r.statusCalls.Add(1)
	}
	if status, ok := r.status[pos.State().path]; ok {
		return status
	}
	return game.Ongoing
}

type mockHeuristic struct {
	name     string
	rules    mockRules
	values   map[string]float64
	reversed bool
	calls    *atomic.Int64
}

func (h mockHeuristic) Name() string {
	return h.name
}

func (h mockHeuristic) ListMoves(node *Node[byte, mockState, string]) []byte {
	moves := slices.Clone(h.rules.moves[node.State().path])
	if h.reversed {
		slices.Reverse(moves)
	}
	return moves
}

func (h mockHeuristic) BoardValue(node *Node[byte, mockState, string]) float64 {
	if h.calls != nil {
		h.calls.Add(1)
	}
	return h.values[node.State().path]
}

// textbookTree is the classic two ply alpha-beta example: the maximizer picks
// a (worth 3) and the second reply to b is never looked at.
func textbookTree() (mockRules, map[string]float64) {
	rules := mockRules{
		moves: map[string][]byte{
			"":  []byte("abc"),
			"a": []byte("abc"),
			"b": []byte("abc"),
			"c": []byte("abc"),
		},
	}
	values := map[string]float64{
		"aa": 3, "ab": 12, "ac": 8,
		"ba": 2, "bb": 4, "bc": 6,
		"ca": 14, "cb": 5, "cc": 2,
	}
	return rules, values
}
