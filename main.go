// main.go
//
// wordsearch: daily word-search puzzles.
//
//	wordsearch serve                      run the HTTP API
//	wordsearch generate --date 2026-10-19 print a puzzle (or --all for the pack)
//	wordsearch verify --days 30           regenerate packs and check every grid
//
// Configuration comes from defaults, an optional HCL file (--config or
// WORDSEARCH_CONFIG), .env and the environment, in that order.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/config"
	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/words"
)

var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `help:"Path to an HCL config file." type:"path" env:"WORDSEARCH_CONFIG"`
	LogLevel string `help:"Override LOG_LEVEL (trace, debug, info, warn, error)."`
	Pretty   bool   `help:"Human-readable console logs instead of JSON."`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Serve    ServeCmd         `cmd:"" help:"Run the HTTP server"`
	Generate GenerateCmd      `cmd:"" help:"Print daily puzzles"`
	Verify   VerifyCmd        `cmd:"" help:"Regenerate packs and verify every grid"`
}

func main() {
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("wordsearch"),
		kong.Description("Deterministic daily word-search puzzles"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load reads configuration, sets up logging and loads the word bank.
func (g *Globals) load() (*config.Config, []string, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.Server.LogLevel
	if g.LogLevel != "" {
		level = g.LogLevel
	}
	setupLogger(level, g.Pretty)

	if err := words.Init(cfg.Puzzle.BankFile); err != nil {
		return nil, nil, err
	}
	bank := words.Bank()
	log.Debug().Int("words", words.Stats()).Str("file", cfg.Puzzle.BankFile).Msg("word bank loaded")
	return cfg, bank, nil
}

func setupLogger(level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if pretty {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func settings(cfg *config.Config) daily.Settings {
	return daily.Settings{
		GridSize:       cfg.Puzzle.GridSize,
		WordsPerPuzzle: cfg.Puzzle.WordsPerPuzzle,
		PuzzlesPerPack: cfg.Puzzle.PuzzlesPerPack,
		Salt:           cfg.Puzzle.PackSalt,
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()
	return ctx, cancel
}
