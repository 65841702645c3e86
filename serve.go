package main

import (
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/db"
	"github.com/robalobadob/wordsearch/internal/httpserver"
	"github.com/robalobadob/wordsearch/internal/store"
)

// ServeCmd runs the HTTP API.
type ServeCmd struct {
	Port string `help:"Override PORT."`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, bank, err := g.load()
	if err != nil {
		return err
	}
	if c.Port != "" {
		cfg.Server.Port = c.Port
	}

	conn, err := db.Open(cfg.Server.DBPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := signalContext()
	defer cancel()
	if err := db.Migrate(ctx, conn); err != nil {
		return err
	}

	cache := daily.NewCache(bank, settings(cfg), daily.DefaultMaxPacks)
	// Warm today's pack so the first player does not pay for generation.
	if _, err := cache.Pack(ctx, daily.PackID(nowUTC())); err != nil {
		log.Warn().Err(err).Msg("warm today's pack")
	}

	srv := httpserver.New(httpserver.Deps{
		Config:   cfg,
		DB:       conn,
		Sessions: store.NewMemoryStore(),
		Puzzles:  cache,
	})
	log.Info().
		Str("port", cfg.Server.Port).
		Str("db", cfg.Server.DBPath).
		Int("gridSize", cfg.Puzzle.GridSize).
		Int("wordsPerPuzzle", cfg.Puzzle.WordsPerPuzzle).
		Int("puzzlesPerPack", cfg.Puzzle.PuzzlesPerPack).
		Str("version", version).
		Msg("starting wordsearch server")
	return srv.Start(ctx, cfg.Addr())
}
