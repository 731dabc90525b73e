package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tabletop/communication"
	"tabletop/engine"
	"tabletop/game"
	"tabletop/meta"

	"github.com/rs/zerolog/log"
)

// ReplayFunc rebuilds a local match from a published record.
type ReplayFunc func(record engine.MatchRecord) (engine.Match, error)

// Player plays one side of a remote match with an agent.
type Player struct {
	Side         game.Player
	Agent        engine.Agent
	Communicator communication.Communicator
	replay       ReplayFunc
	interval     time.Duration
}

func NewPlayer(side game.Player, agent engine.Agent, comm communication.Communicator, replay ReplayFunc) *Player {
	return &Player{
		Side:         side,
		Agent:        agent,
		Communicator: comm,
		replay:       replay,
		interval:     meta.POLL_INTERVAL,
	}
}

// Play syncs the record and sends a move whenever it is this side's turn,
// until the match has a result or ctx is done.
func (p *Player) Play(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	answered := -1
	for {
		record, err := p.Communicator.GetRecord(ctx)
		switch {
		case errors.Is(err, communication.ErrNoRecord):
		case err != nil:
			return err
		case record.Result != engine.Unachieved:
			log.Info().Msgf("%s leaves the match: %s", p.Side, record.Result)
			return nil
		case record.Turn != answered && game.PlayerOfTurn(record.Turn) == p.Side:
			if err := p.TakeTurn(ctx, record); err != nil {
				return err
			}
			answered = record.Turn
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// TakeTurn replays record locally and sends the agent's move.
func (p *Player) TakeTurn(ctx context.Context, record engine.MatchRecord) error {
	match, err := p.replay(record)
	if err != nil {
		return fmt.Errorf("failed to sync record: %w", err)
	}
	encoded, metric := p.Agent.FindMove(match)
	log.Debug().Int32("move", encoded).Dur("duration", metric.Duration).Msgf("%s plays", p.Side)
	return p.Communicator.SendMove(ctx, communication.NewMoveMessage(p.Side, encoded))
}
