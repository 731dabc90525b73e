package searcher

import (
	"fmt"
	"sync"
	"sync/atomic"

	"tabletop/game"
)

// tree holds what every node of one game tree shares.
type tree[M comparable, S game.State, E any] struct {
	rules   game.Rules[M, S, E]
	created atomic.Int64
}

// Node is a position reached in a game: its state, the move that produced it
// and a back reference to the position before. Children are created on demand
// and cached by move, so repeated searches and redo after a take-back reuse the
// same subtree.
//
// A node never owns its parent. Whoever holds the current position (usually an
// engine.Session) keeps the path to the root alive.
type Node[M comparable, S game.State, E any] struct {
	mu       sync.Mutex
	tree     *tree[M, S, E]
	parent   *Node[M, S, E]
	state    S
	move     M
	hasMove  bool
	depth    int
	children map[M]*Node[M, S, E]
	status   *game.Status
	values   map[string]float64
}

// NewRoot starts a new tree at state.
func NewRoot[M comparable, S game.State, E any](rules game.Rules[M, S, E], state S) *Node[M, S, E] {
	t := &tree[M, S, E]{rules: rules}
	t.created.Add(1)
	return &Node[M, S, E]{tree: t, state: state}
}

// NewInitialNode starts a new tree at the game's initial state.
func NewInitialNode[M comparable, S game.State, E any](rules game.Rules[M, S, E]) *Node[M, S, E] {
	return NewRoot(rules, rules.InitialState())
}

func newChild[M comparable, S game.State, E any](parent *Node[M, S, E], move M, state S) *Node[M, S, E] {
	if state.Turn() != parent.state.Turn()+1 {
		panic(fmt.Sprintf("move %v went from turn %d to turn %d", move, parent.state.Turn(), state.Turn()))
	}
	parent.tree.created.Add(1)
	return &Node[M, S, E]{
		tree:    parent.tree,
		parent:  parent,
		state:   state,
		move:    move,
		hasMove: true,
		depth:   parent.depth + 1,
	}
}

func (n *Node[M, S, E]) State() S {
	return n.state
}

// Move returns the move that led to this node; the root has none.
func (n *Node[M, S, E]) Move() (M, bool) {
	return n.move, n.hasMove
}

func (n *Node[M, S, E]) Parent() (*Node[M, S, E], bool) {
	return n.parent, n.parent != nil
}

// Previous returns the parent's state, for rules that look one ply back.
func (n *Node[M, S, E]) Previous() (S, bool) {
	if n.parent == nil {
		var zero S
		return zero, false
	}
	return n.parent.state, true
}

// Depth is the number of moves between the root and this node.
func (n *Node[M, S, E]) Depth() int {
	return n.depth
}

func (n *Node[M, S, E]) Root() *Node[M, S, E] {
	node := n
	for node.parent != nil {
		node = node.parent
	}
	return node
}

// Ancestors walks the parent links, starting with n itself and ending at the root.
func (n *Node[M, S, E]) Ancestors() []*Node[M, S, E] {
	chain := make([]*Node[M, S, E], 0, n.depth+1)
	for node := n; node != nil; node = node.parent {
		chain = append(chain, node)
	}
	return chain
}

// Player returns who is to move at this node.
func (n *Node[M, S, E]) Player() game.Player {
	return game.PlayerOfTurn(n.state.Turn())
}

// CreatedNodes counts every node created in this tree, the root included.
func (n *Node[M, S, E]) CreatedNodes() int64 {
	return n.tree.created.Load()
}

// Child returns the cached child for move without creating it.
func (n *Node[M, S, E]) Child(move M) (*Node[M, S, E], bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	child, ok := n.children[move]
	return child, ok
}

// Children returns a snapshot of the children created so far.
func (n *Node[M, S, E]) Children() map[M]*Node[M, S, E] {
	n.mu.Lock()
	defer n.mu.Unlock()

	children := make(map[M]*Node[M, S, E], len(n.children))
	for move, child := range n.children {
		children[move] = child
	}
	return children
}

// Play validates move against this node's state. A legal move returns the
// (possibly cached) child; an illegal one returns the game's reason.
func (n *Node[M, S, E]) Play(move M) (*Node[M, S, E], error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if child, ok := n.children[move]; ok {
		return child, nil
	}
	legality := n.tree.rules.IsLegal(move, n.state)
	if !legality.IsLegal() {
		return nil, legality.Reason()
	}
	state := n.tree.rules.ApplyLegalMove(move, n.state, legality.Effect())
	child := newChild(n, move, state)
	if n.children == nil {
		n.children = make(map[M]*Node[M, S, E])
	}
	n.children[move] = child
	return child, nil
}

// ChildFor is Play for callers that already know the move is legal, such as
// the search. An illegal move is a bug in the caller and panics.
func (n *Node[M, S, E]) ChildFor(move M) *Node[M, S, E] {
	child, err := n.Play(move)
	if err != nil {
		panic(fmt.Sprintf("cannot create child for illegal move %v: %v", move, err))
	}
	return child
}

// GameStatus asks the rules once and caches the answer.
func (n *Node[M, S, E]) GameStatus() game.Status {
	n.mu.Lock()
	cached := n.status
	n.mu.Unlock()
	if cached != nil {
		return *cached
	}

	status := n.tree.rules.GameStatus(n)

	n.mu.Lock()
	n.status = &status
	n.mu.Unlock()
	return status
}

func (n *Node[M, S, E]) IsTerminal() bool {
	return n.GameStatus().IsEndGame()
}

// value returns the cached value of the named heuristic, computing it once.
func (n *Node[M, S, E]) value(name string, compute func() float64) float64 {
	n.mu.Lock()
	v, ok := n.values[name]
	n.mu.Unlock()
	if ok {
		return v
	}

	v = compute()

	n.mu.Lock()
	if n.values == nil {
		n.values = make(map[string]float64)
	}
	n.values[name] = v
	n.mu.Unlock()
	return v
}
