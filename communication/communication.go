package communication

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"tabletop/engine"
	"tabletop/game"
)

var ErrNoRecord = errors.New("no match record published yet")

// MoveMessage carries an encoded move. The number stays textual on the wire
// so the receiver can reject values that are not int32.
type MoveMessage struct {
	Player game.Player `json:"player"`
	Move   json.Number `json:"move"`
}

func NewMoveMessage(player game.Player, encoded int32) MoveMessage {
	return MoveMessage{Player: player, Move: json.Number(strconv.FormatInt(int64(encoded), 10))}
}

// Communicator abstracts how the game master and the players exchange the
// match record and moves.
type Communicator interface {
	GetRecord(ctx context.Context) (engine.MatchRecord, error)
	UpdateRecord(ctx context.Context, record engine.MatchRecord) error
	SendMove(ctx context.Context, move MoveMessage) error
	// ReceiveMove blocks until a move was sent or ctx is done.
	ReceiveMove(ctx context.Context) (MoveMessage, error)
}
