package engine

import (
	"fmt"
	"slices"
	"sync"

	"tabletop/experiments/metrics"
	"tabletop/game"
	"tabletop/searcher"
)

// Session is one match: the tree of explored positions and a pointer to the
// position being played. Taking back a move only moves the pointer, so redoing
// it reuses the cached child.
type Session[M comparable, S game.State, E any] struct {
	mu      sync.Mutex
	def     Definition[M, S, E]
	players [2]string
	search  *searcher.Minimax[M, S, E]
	root    *searcher.Node[M, S, E]
	current *searcher.Node[M, S, E]
}

func NewSession[M comparable, S game.State, E any](def Definition[M, S, E], players [2]string, options ...searcher.Option) *Session[M, S, E] {
	root := searcher.NewInitialNode(def.Rules)
	return &Session[M, S, E]{
		def:     def,
		players: players,
		search:  searcher.NewMinimax(def.Heuristics, options...),
		root:    root,
		current: root,
	}
}

func (s *Session[M, S, E]) Game() string {
	return s.def.ID
}

func (s *Session[M, S, E]) Players() [2]string {
	return s.players
}

func (s *Session[M, S, E]) Current() *searcher.Node[M, S, E] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session[M, S, E]) State() S {
	return s.Current().State()
}

func (s *Session[M, S, E]) Turn() int {
	return s.State().Turn()
}

func (s *Session[M, S, E]) Player() game.Player {
	return s.Current().Player()
}

func (s *Session[M, S, E]) Status() game.Status {
	return s.Current().GameStatus()
}

// Play validates move and makes it the current position. An illegal move
// returns its game.Reason and leaves the session untouched.
func (s *Session[M, S, E]) Play(move M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.IsTerminal() {
		return fmt.Errorf("cannot play %v: game is over (%s)", move, s.current.GameStatus())
	}
	child, err := s.current.Play(move)
	if err != nil {
		return err
	}
	s.current = child
	return nil
}

func (s *Session[M, S, E]) PlayEncoded(encoded int32) error {
	move, err := s.def.Encoder.Decode(encoded)
	if err != nil {
		return err
	}
	return s.Play(move)
}

// Redo moves forward to an already explored child without validating again.
func (s *Session[M, S, E]) Redo(move M) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	child, ok := s.current.Child(move)
	if ok {
		s.current = child
	}
	return ok
}

func (s *Session[M, S, E]) CanTakeBack() bool {
	_, ok := s.Current().Parent()
	return ok
}

// TakeBack panics at the initial position.
func (s *Session[M, S, E]) TakeBack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	parent, ok := s.current.Parent()
	if !ok {
		panic("cannot take back the initial position")
	}
	s.current = parent
}

// TakeBackTurn takes back one move, and another one when the player to move
// would then be played by the computer.
func (s *Session[M, S, E]) TakeBackTurn(isAI func(game.Player) bool) {
	s.TakeBack()
	if s.CanTakeBack() && isAI(s.Player()) {
		s.TakeBack()
	}
}

func (s *Session[M, S, E]) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.root
}

// History returns the moves from the initial position to the current one.
func (s *Session[M, S, E]) History() []M {
	var moves []M
	for _, node := range s.Current().Ancestors() {
		if move, ok := node.Move(); ok {
			moves = append(moves, move)
		}
	}
	slices.Reverse(moves)
	return moves
}

func (s *Session[M, S, E]) Moves() []M {
	if s.Status().IsEndGame() {
		return nil
	}
	return s.def.Moves(s.State())
}

func (s *Session[M, S, E]) LegalMoves() []int32 {
	moves := s.Moves()
	encoded := make([]int32, len(moves))
	for i, move := range moves {
		encoded[i] = s.def.Encoder.Encode(move)
	}
	return encoded
}

func (s *Session[M, S, E]) SearchBestMove(depth int, heuristic string) (M, metrics.SearchMetric) {
	return s.search.FindBestMove(s.Current(), depth, heuristic)
}

func (s *Session[M, S, E]) SearchEncoded(depth int, heuristic string) (int32, metrics.SearchMetric) {
	move, metric := s.SearchBestMove(depth, heuristic)
	return s.def.Encoder.Encode(move), metric
}

func (s *Session[M, S, E]) Heuristics() []string {
	return s.search.Heuristics()
}

func (s *Session[M, S, E]) Record() MatchRecord {
	history := s.History()
	moves := make([]int32, len(history))
	for i, move := range history {
		moves[i] = s.def.Encoder.Encode(move)
	}
	status := s.Status()
	return MatchRecord{
		Game:    s.def.ID,
		Players: s.players,
		Turn:    s.Turn(),
		Moves:   moves,
		Result:  ResultOf(status),
		Winner:  status.Winner(),
	}
}

func (s *Session[M, S, E]) Snapshot() Snapshot {
	node := s.Current()
	snapshot := Snapshot{
		Game:   s.def.ID,
		Turn:   node.State().Turn(),
		Player: node.Player(),
		Status: node.GameStatus(),
	}
	if boarded, ok := any(node.State()).(interface{ Board() game.Board }); ok {
		snapshot.Board = boarded.Board()
	}
	if move, ok := node.Move(); ok {
		snapshot.LastMove = fmt.Sprint(move)
	}
	return snapshot
}
