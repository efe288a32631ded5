package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sevens-sim/sevens/cards"
	"github.com/sevens-sim/sevens/config"
	"github.com/sevens-sim/sevens/display"
	"github.com/sevens-sim/sevens/game"
	"github.com/sevens-sim/sevens/solver"
)

var (
	GitVersion string
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	level := zerolog.InfoLevel
	switch {
	case cfg.GetBool(config.ConfigTrace):
		level = zerolog.TraceLevel
	case cfg.GetBool(config.ConfigDebug):
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Str("version", GitVersion).Interface("config", cfg.SanitizedSettings()).Msg("loaded-config")

	if path := cfg.GetString(config.ConfigCPUProfile); path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("")
		// Deferred profile writes still need to happen.
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func buildDeck(cfg *config.Config) (*cards.Deck, error) {
	if hash := cfg.GetString(config.ConfigDeck); hash != "" {
		return cards.DeckFromHash(hash)
	}
	deck := cards.NewDeck()
	switch seed := cfg.GetUint64(config.ConfigSeed); {
	case cfg.GetBool(config.ConfigNoShuffle):
	case seed != 0:
		deck.ShuffleWith(cards.NewSeededRNG(seed))
	default:
		deck.Shuffle()
	}
	return deck, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	strategy, err := cfg.Strategy()
	if err != nil {
		return err
	}
	deck, err := buildDeck(cfg)
	if err != nil {
		return err
	}

	yamlOut := cfg.GetString(config.ConfigOutput) == "yaml"
	p := display.NewPrinter(os.Stdout, cfg.GetString(config.ConfigLocale), cfg.GetBool(config.ConfigColor) && !yamlOut)
	if !yamlOut {
		p.Deck(deck)
	} else {
		log.Info().Str("hash", deck.Hash()).Msg("deck")
	}

	state, err := game.NewState(cfg.GetInt(config.ConfigPlayers), deck)
	if err != nil {
		return err
	}
	if !yamlOut {
		p.Hands(state)
		fmt.Println("Playing games...")
	}

	s := &solver.Solver{}
	s.Init(state, strategy)
	s.SetForkThreshold(cfg.GetInt(config.ConfigForkThreshold))
	s.SetThreads(cfg.GetInt(config.ConfigThreads))

	start := time.Now()
	results, err := s.Solve(ctx)
	if err != nil {
		return fmt.Errorf("search abandoned after %s games: %w", p.Count(s.Games()), err)
	}
	log.Info().Dur("elapsed", time.Since(start)).Str("wins", p.WinsSummary(results)).Msg("search-done")

	if yamlOut {
		return display.YAML(os.Stdout, results)
	}
	return p.Results(results, strategy)
}
