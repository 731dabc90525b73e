package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"tabletop/agent"
	"tabletop/communication/server"
	"tabletop/engine"
	"tabletop/experiments"
	"tabletop/game"
	"tabletop/gamemaster"
	"tabletop/games"
	"tabletop/games/phalanx"
	"tabletop/meta"
	"tabletop/player"
	"tabletop/render"
	"tabletop/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: tabletop [-debug] <command> [flags]

commands:
  play   play a match in the terminal
  arena  run agent matchups from a yaml config
  serve  referee a match over http
  join   play one side of a served match
  train  train the phalanx neural heuristic by self-play
`

func main() {
	debug := flag.Bool("debug", false, "sets log level to debug")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	command, args := flag.Arg(0), flag.Args()[1:]
	var err error
	switch command {
	case "play":
		err = runPlay(args, os.Stdin, os.Stdout)
	case "arena":
		err = runArena(args)
	case "serve":
		err = runServe(ctx, args)
	case "join":
		err = runJoin(ctx, args)
	case "train":
		err = runTrain(args)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", command)
	}
}

func parseSide(side string) (game.Player, error) {
	switch strings.ToLower(side) {
	case "zero", "0":
		return game.Zero, nil
	case "one", "1":
		return game.One, nil
	}
	return game.None, fmt.Errorf("unknown side %q", side)
}

func newAgent(kind, heuristic string, depth int, seed uint64) (engine.Agent, error) {
	switch kind {
	case "minimax":
		return agent.NewMinimax(depth, heuristic), nil
	case "random":
		return agent.NewRandom(seed), nil
	}
	return nil, fmt.Errorf("unknown agent %q", kind)
}

func matchOptions(network string, pruning bool) ([]games.Option, error) {
	options := []games.Option{games.WithSearch(searcher.WithPruning(pruning))}
	if network != "" {
		neural, err := phalanx.LoadNeural(network)
		if err != nil {
			return nil, err
		}
		options = append(options, games.WithNeural(neural))
	}
	return options, nil
}

func runPlay(args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	id := fs.String("game", games.Phalanx, "game to play: "+strings.Join(games.IDs(), ", "))
	human := fs.String("human", "zero", "sides played at the keyboard: zero, one, both or none")
	depth := fs.Int("depth", meta.DEPTH, "search depth of the computer")
	heuristic := fs.String("heuristic", "", "heuristic of the computer, the game's first one by default")
	network := fs.String("network", "", "phalanx network file enabling the neural heuristic")
	load := fs.String("load", "", "match record to continue")
	save := fs.String("save", "", "file to write the match record to")
	fs.Parse(args)

	options, err := matchOptions(*network, true)
	if err != nil {
		return err
	}
	var match engine.Match
	if *load != "" {
		data, err := os.ReadFile(*load)
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}
		var record engine.MatchRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("failed to parse record: %w", err)
		}
		match, err = games.Replay(record, options...)
		if err != nil {
			return err
		}
	} else {
		match, err = games.New(*id, [2]string{"zero", "one"}, options...)
		if err != nil {
			return err
		}
	}
	if *heuristic == "" {
		*heuristic = match.Heuristics()[0]
	}

	humans := map[game.Player]bool{}
	switch *human {
	case "both":
		humans[game.Zero], humans[game.One] = true, true
	case "none":
	default:
		side, err := parseSide(*human)
		if err != nil {
			return err
		}
		humans[side] = true
	}
	isAI := func(p game.Player) bool { return !humans[p] }

	computer := agent.NewMinimax(*depth, *heuristic)
	renderer := render.New(out)
	scanner := bufio.NewScanner(in)
	for match.Status() == game.Ongoing {
		if err := renderer.Snapshot(match.Snapshot()); err != nil {
			return err
		}
		if isAI(match.Player()) {
			encoded, metric := computer.FindMove(match)
			if err := match.PlayEncoded(encoded); err != nil {
				return err
			}
			log.Info().Msgf("computer played %d (score %g, %d nodes in %s)", encoded, metric.Score, metric.Visited, metric.Duration)
			continue
		}

		fmt.Fprint(out, "move (number, moves, back, restart, quit): ")
		if !scanner.Scan() {
			break
		}
		switch line := strings.TrimSpace(scanner.Text()); line {
		case "quit":
			return saveRecord(*save, match.Record())
		case "moves":
			fmt.Fprintln(out, match.LegalMoves())
		case "back":
			if match.CanTakeBack() {
				match.TakeBackTurn(isAI)
			}
		case "restart":
			match.Restart()
		default:
			encoded, err := game.ParseEncoded(json.Number(line))
			if err == nil {
				err = match.PlayEncoded(encoded)
			}
			if err != nil {
				fmt.Fprintln(out, "refused:", err)
			}
		}
	}
	if err := renderer.Snapshot(match.Snapshot()); err != nil {
		return err
	}
	return saveRecord(*save, match.Record())
}

func saveRecord(path string, record engine.MatchRecord) error {
	if path == "" {
		return nil
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	log.Info().Msgf("saved record to %s", path)
	return nil
}

func runArena(args []string) error {
	fs := flag.NewFlagSet("arena", flag.ExitOnError)
	path := fs.String("config", "arena.yaml", "arena configuration file")
	compare := fs.Bool("compare-pruning", false, "play every game with and without pruning")
	fs.Parse(args)

	config, err := experiments.LoadConfig(*path)
	if err != nil {
		return err
	}
	if *compare {
		plain, pruned, err := experiments.PruningComparison(config)
		if err != nil {
			return err
		}
		plainConfig, prunedConfig := config, config
		plainConfig.Name, prunedConfig.Name = config.Name+"_plain", config.Name+"_pruned"
		if _, err := experiments.Store(plainConfig, plain); err != nil {
			return err
		}
		_, err = experiments.Store(prunedConfig, pruned)
		return err
	}
	results, err := experiments.Run(config)
	if err != nil {
		return err
	}
	dir, err := experiments.Store(config, results)
	if err != nil {
		return err
	}
	log.Info().Msgf("stored results in %s", dir)
	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "listen address")
	id := fs.String("game", games.Phalanx, "game to referee: "+strings.Join(games.IDs(), ", "))
	zero := fs.String("zero", "zero", "name of player ZERO")
	one := fs.String("one", "one", "name of player ONE")
	fs.Parse(args)

	match, err := games.New(*id, [2]string{*zero, *one})
	if err != nil {
		return err
	}
	comm := server.NewServerCommunicator()
	errs := make(chan error, 1)
	go func() { errs <- comm.Start(*addr) }()

	master := gamemaster.NewGameMaster(comm, match)
	done := make(chan error, 1)
	go func() {
		record, err := master.RunGame(ctx, meta.MAX_TURNS)
		log.Info().Msgf("final record: %s after %d moves", record.Result, len(record.Moves))
		done <- err
	}()
	select {
	case err := <-errs:
		return err
	case err := <-done:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	count := fs.Int("games", meta.GAMES, "self-play games")
	depth := fs.Int("depth", 1, "search depth of the self-play agents")
	maxTurns := fs.Int("max-turns", meta.MAX_TURNS, "moves before a self-play game is stopped")
	iterations := fs.Int("iterations", phalanx.DefaultNetworkConfig().Iterations, "training epochs")
	in := fs.String("network", "", "network to keep training, a new one by default")
	out := fs.String("out", "phalanx_network.json", "file to save the network to")
	fs.Parse(args)

	config := phalanx.DefaultNetworkConfig()
	config.Iterations = *iterations
	network := phalanx.NewNetwork(config)
	if *in != "" {
		neural, err := phalanx.LoadNeural(*in)
		if err != nil {
			return err
		}
		network = neural.Network()
	}

	agents := [2]engine.Agent{agent.NewMinimax(*depth, "basic"), agent.NewMinimax(*depth, "positional")}
	played, err := player.SelfPlay(*count, agents, *maxTurns)
	if err != nil {
		return err
	}
	if err := phalanx.TrainNeural(network, played, config); err != nil {
		return err
	}
	return phalanx.SaveNetwork(network, *out)
}
