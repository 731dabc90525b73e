package main

import (
	"context"
	"flag"
	"strings"

	"tabletop/communication/client"
	"tabletop/engine"
	"tabletop/games"
	"tabletop/meta"
	"tabletop/player"
)

// runJoin plays one side of a match refereed by "serve".
func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "game master URL")
	side := fs.String("side", "one", "side to play: zero or one")
	kind := fs.String("agent", "minimax", "agent: minimax or random")
	depth := fs.Int("depth", meta.DEPTH, "search depth of the minimax agent")
	heuristic := fs.String("heuristic", "basic", "heuristic of the minimax agent")
	seed := fs.Uint64("seed", 1, "seed of the random agent")
	network := fs.String("network", "", "phalanx network file enabling the neural heuristic")
	fs.Parse(args)

	p, err := parseSide(*side)
	if err != nil {
		return err
	}
	a, err := newAgent(strings.ToLower(*kind), *heuristic, *depth, *seed)
	if err != nil {
		return err
	}
	options, err := matchOptions(*network, true)
	if err != nil {
		return err
	}
	replay := func(record engine.MatchRecord) (engine.Match, error) {
		return games.Replay(record, options...)
	}
	return player.NewPlayer(p, a, client.NewClientCommunicator(*serverURL), replay).Play(ctx)
}
