package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/render"
)

func nowUTC() time.Time { return time.Now().UTC() }

func packFor(date string) (string, error) {
	if date == "" {
		return daily.PackID(nowUTC()), nil
	}
	return daily.ParsePackID(date)
}

// GenerateCmd prints one puzzle or a whole pack.
type GenerateCmd struct {
	Date  string `help:"Pack date (YYYY-MM-DD, UTC). Defaults to today."`
	Index int    `short:"i" help:"Puzzle index within the pack." default:"0"`
	All   bool   `short:"a" help:"Print every puzzle in the pack."`
	JSON  bool   `name:"json" help:"Emit JSON instead of a rendered grid."`
	Solve bool   `help:"Highlight word placements."`
}

func (c *GenerateCmd) Run(g *Globals) error {
	cfg, bank, err := g.load()
	if err != nil {
		return err
	}
	packID, err := packFor(c.Date)
	if err != nil {
		return err
	}

	var puzzles []*daily.Puzzle
	if c.All {
		pack, err := daily.BuildPack(context.Background(), bank, settings(cfg), packID)
		if err != nil {
			return err
		}
		puzzles = pack.Puzzles
	} else {
		p, err := daily.BuildPuzzle(bank, settings(cfg), packID, c.Index)
		if err != nil {
			return err
		}
		puzzles = []*daily.Puzzle{p}
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if c.All {
			return enc.Encode(daily.Pack{ID: packID, Puzzles: puzzles})
		}
		return enc.Encode(puzzles[0])
	}
	for _, p := range puzzles {
		fmt.Println(render.Puzzle(p, c.Solve))
		fmt.Println()
	}
	return nil
}

// VerifyCmd regenerates packs and checks that every word is findable.
type VerifyCmd struct {
	Date string `help:"First pack date (YYYY-MM-DD, UTC). Defaults to today."`
	Days int    `help:"Number of consecutive packs to check." default:"1"`
}

var errVerifyFailed = errors.New("verification failed")

// Validate is called by kong after parsing.
func (c *VerifyCmd) Validate() error {
	if c.Days < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", c.Days)
	}
	return nil
}

func (c *VerifyCmd) Run(g *Globals) error {
	if err := c.Validate(); err != nil {
		return err
	}
	cfg, bank, err := g.load()
	if err != nil {
		return err
	}
	first, err := packFor(c.Date)
	if err != nil {
		return err
	}
	start, _ := time.Parse("2006-01-02", first)

	ctx, cancel := signalContext()
	defer cancel()

	failed := 0
	for d := 0; d < c.Days; d++ {
		packID := daily.PackID(start.AddDate(0, 0, d))
		pack, err := daily.BuildPack(ctx, bank, settings(cfg), packID)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error().Err(err).Str("pack", packID).Msg("pack failed")
			failed++
			continue
		}
		for _, p := range pack.Puzzles {
			if err := p.Grid.Verify(p.Words); err != nil {
				log.Error().Err(err).Str("pack", packID).Int("index", p.Index).Msg("grid failed verification")
				failed++
			}
		}
		log.Info().Str("pack", packID).Int("puzzles", len(pack.Puzzles)).Msg("pack verified")
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d problem(s)", errVerifyFailed, failed)
	}
	fmt.Printf("%d pack(s) from %s OK\n", c.Days, first)
	return nil
}
