package gamemaster

import (
	"context"
	"errors"
	"fmt"

	"tabletop/communication"
	"tabletop/engine"
	"tabletop/game"

	"github.com/rs/zerolog/log"
)

var ErrNotYourTurn = errors.New("move sent out of turn")

// GameMaster referees a match: it is the only one applying moves and
// publishes the record after each of them.
type GameMaster struct {
	Communicator communication.Communicator
	Match        engine.Match
}

func NewGameMaster(comm communication.Communicator, match engine.Match) *GameMaster {
	return &GameMaster{
		Communicator: comm,
		Match:        match,
	}
}

// InitializeGame publishes the record of the match as it stands.
func (gm *GameMaster) InitializeGame(ctx context.Context) error {
	return gm.Communicator.UpdateRecord(ctx, gm.Match.Record())
}

// RunGame resolves incoming moves until the match ends or maxTurns is
// reached. Rejected moves are logged and skipped.
func (gm *GameMaster) RunGame(ctx context.Context, maxTurns int) (engine.MatchRecord, error) {
	if err := gm.InitializeGame(ctx); err != nil {
		return engine.MatchRecord{}, fmt.Errorf("failed to publish record: %w", err)
	}
	for gm.Match.Status() == game.Ongoing && gm.Match.Turn() < maxTurns {
		move, err := gm.Communicator.ReceiveMove(ctx)
		if err != nil {
			return gm.Match.Record(), err
		}
		if err := gm.Resolve(move); err != nil {
			log.Warn().Err(err).Msgf("rejected move %s of %s", move.Move, move.Player)
			continue
		}
		if err := gm.Communicator.UpdateRecord(ctx, gm.Match.Record()); err != nil {
			return gm.Match.Record(), fmt.Errorf("failed to publish record: %w", err)
		}
	}

	record := gm.Match.Record()
	if record.Result == engine.Unachieved {
		log.Info().Msgf("stopped after %d turns (no winner yet)", record.Turn)
	} else {
		log.Info().Msgf("game over: %s", gm.Match.Status())
	}
	return record, nil
}

// Resolve validates and applies one transported move.
func (gm *GameMaster) Resolve(move communication.MoveMessage) error {
	if move.Player != gm.Match.Player() {
		return fmt.Errorf("%w: %s played during the turn of %s", ErrNotYourTurn, move.Player, gm.Match.Player())
	}
	encoded, err := game.ParseEncoded(move.Move)
	if err != nil {
		return err
	}
	return gm.Match.PlayEncoded(encoded)
}
