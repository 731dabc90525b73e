package engine

import (
	"fmt"

	"tabletop/game"
	"tabletop/searcher"
)

type Result string

const (
	Unachieved Result = "unachieved"
	Victory    Result = "victory"
	Draw       Result = "draw"
)

// MatchRecord is the persisted and transported form of a match: replaying
// Moves from the initial state rebuilds it.
type MatchRecord struct {
	Game    string      `json:"game"`
	Players [2]string   `json:"players"`
	Turn    int         `json:"turn"`
	Moves   []int32     `json:"moves"`
	Result  Result      `json:"result"`
	Winner  game.Player `json:"winner"`
}

func ResultOf(status game.Status) Result {
	switch status {
	case game.Ongoing:
		return Unachieved
	case game.Draw:
		return Draw
	}
	return Victory
}

// Replay plays every move of record on a fresh session of def.
func Replay[M comparable, S game.State, E any](def Definition[M, S, E], record MatchRecord, options ...searcher.Option) (*Session[M, S, E], error) {
	if record.Game != def.ID {
		return nil, fmt.Errorf("record of %q replayed as %q: %w", record.Game, def.ID, ErrUnknownGame)
	}
	session := NewSession(def, record.Players, options...)
	for i, encoded := range record.Moves {
		if err := session.PlayEncoded(encoded); err != nil {
			return nil, fmt.Errorf("move %d of record: %w", i, err)
		}
	}
	return session, nil
}
