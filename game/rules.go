package game

// Reason explains why a move was refused. Each game declares its own closed set
// of reasons as constants so callers can match them with errors.Is.
type Reason string

func (r Reason) Error() string {
	return string(r)
}

// CannotSelfCapture is shared by every game where a move may land on a piece.
const CannotSelfCapture Reason = "you cannot capture your own pieces"

// Legality is the outcome of checking a move against a state: either legal,
// carrying the precomputed effect ApplyLegalMove consumes, or illegal with a reason.
type Legality[E any] struct {
	effect E
	reason Reason
	legal  bool
}

func Legal[E any](effect E) Legality[E] {
	return Legality[E]{effect: effect, legal: true}
}

func Illegal[E any](reason Reason) Legality[E] {
	if reason == "" {
		panic("illegal move needs a reason")
	}
	return Legality[E]{reason: reason}
}

func (l Legality[E]) IsLegal() bool {
	return l.legal
}

func (l Legality[E]) Effect() E {
	if !l.legal {
		panic("illegal move has no effect: " + string(l.reason))
	}
	return l.effect
}

// Reason is empty for legal moves.
func (l Legality[E]) Reason() Reason {
	return l.reason
}

// Err returns the reason as an error, or nil when the move is legal.
func (l Legality[E]) Err() error {
	if l.legal {
		return nil
	}
	return l.reason
}

// Position is what a game needs to decide whether a position is terminal:
// its state and, for rules that look one ply back, the state before it.
type Position[S State] interface {
	State() S
	Previous() (S, bool)
}

// Rules is the contract every concrete game implements.
//
// IsLegal must be deterministic and free of side effects. ApplyLegalMove must
// not validate again: it trusts the effect computed by IsLegal and returns a new
// state whose turn is one more than the given state's turn.
type Rules[M comparable, S State, E any] interface {
	InitialState() S
	IsLegal(move M, state S) Legality[E]
	ApplyLegalMove(move M, state S, effect E) S
	GameStatus(pos Position[S]) Status
}
