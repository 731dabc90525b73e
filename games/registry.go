// Package games maps game ids to engine definitions, so callers can open and
// replay matches without knowing the concrete move and state types.
package games

import (
	"fmt"
	"sort"

	"tabletop/engine"
	"tabletop/game"
	"tabletop/games/phalanx"
	"tabletop/games/reversi"
	"tabletop/searcher"
)

const (
	Phalanx = "phalanx"
	Reversi = "reversi"
)

type Option func(*settings)

type settings struct {
	search     []searcher.Option
	positional []phalanx.PositionalOption
	neural     *phalanx.Neural
}

// WithSearch configures the minimax of every opened match.
func WithSearch(options ...searcher.Option) Option {
	return func(s *settings) {
		s.search = append(s.search, options...)
	}
}

// WithPositional configures the phalanx positional heuristic.
func WithPositional(options ...phalanx.PositionalOption) Option {
	return func(s *settings) {
		s.positional = append(s.positional, options...)
	}
}

// WithNeural registers the learned heuristic for phalanx matches.
func WithNeural(neural *phalanx.Neural) Option {
	return func(s *settings) {
		s.neural = neural
	}
}

type entry struct {
	open   func(players [2]string, s settings) engine.Match
	replay func(record engine.MatchRecord, s settings) (engine.Match, error)
}

var registry = map[string]entry{
	Phalanx: {
		open: func(players [2]string, s settings) engine.Match {
			return engine.NewSession(PhalanxDefinition(s.positional, s.neural), players, s.search...)
		},
		replay: func(record engine.MatchRecord, s settings) (engine.Match, error) {
			session, err := engine.Replay(PhalanxDefinition(s.positional, s.neural), record, s.search...)
			if err != nil {
				return nil, err
			}
			return session, nil
		},
	},
	Reversi: {
		open: func(players [2]string, s settings) engine.Match {
			return engine.NewSession(ReversiDefinition(), players, s.search...)
		},
		replay: func(record engine.MatchRecord, s settings) (engine.Match, error) {
			session, err := engine.Replay(ReversiDefinition(), record, s.search...)
			if err != nil {
				return nil, err
			}
			return session, nil
		},
	},
}

func PhalanxDefinition(positional []phalanx.PositionalOption, neural *phalanx.Neural) engine.Definition[phalanx.Move, phalanx.State, game.Board] {
	heuristics := phalanx.Heuristics(positional...)
	if neural != nil {
		heuristics = append(heuristics, neural)
	}
	return engine.Definition[phalanx.Move, phalanx.State, game.Board]{
		ID:         Phalanx,
		Rules:      phalanx.Rules{},
		Encoder:    phalanx.Encoder{},
		Moves:      phalanx.Moves,
		Heuristics: heuristics,
	}
}

func ReversiDefinition() engine.Definition[reversi.Move, reversi.State, []game.Coord] {
	return engine.Definition[reversi.Move, reversi.State, []game.Coord]{
		ID:         Reversi,
		Rules:      reversi.Rules{},
		Encoder:    reversi.Encoder{},
		Moves:      reversi.Moves,
		Heuristics: reversi.Heuristics(),
	}
}

func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func New(id string, players [2]string, options ...Option) (engine.Match, error) {
	e, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, engine.ErrUnknownGame)
	}
	return e.open(players, apply(options)), nil
}

// Replay rebuilds the match stored in record.
func Replay(record engine.MatchRecord, options ...Option) (engine.Match, error) {
	e, ok := registry[record.Game]
	if !ok {
		return nil, fmt.Errorf("%q: %w", record.Game, engine.ErrUnknownGame)
	}
	return e.replay(record, apply(options))
}

func apply(options []Option) settings {
	var s settings
	for _, option := range options {
		option(&s)
	}
	return s
}
