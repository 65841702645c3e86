// internal/config/config.go
//
// Runtime configuration for the word-search service.
//
// Sources, lowest to highest precedence:
//  1. Defaults (Default()).
//  2. Optional HCL file: --config flag or WORDSEARCH_CONFIG.
//  3. Environment variables (a .env file is loaded by main via godotenv).
//
// Example file:
//
//	server {
//	  port      = "5175"
//	  log_level = "debug"
//	  db_path   = "./data/wordsearch.db"
//	}
//	puzzle {
//	  grid_size        = 10
//	  words_per_puzzle = 8
//	  puzzles_per_pack = 3
//	}
//	gesture {
//	  tolerance = 1
//	}
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/robalobadob/wordsearch/internal/gesture"
)

// Environment variable names.
const (
	EnvConfigFile     = "WORDSEARCH_CONFIG"
	EnvPort           = "PORT"
	EnvLogLevel       = "LOG_LEVEL"
	EnvDBPath         = "DB_PATH"
	EnvClientOrigin   = "CLIENT_ORIGIN"
	EnvJWTSecret      = "JWT_SECRET"
	EnvJWTExpiresDays = "JWT_EXPIRES_DAYS"
	EnvCookieName     = "COOKIE_NAME"
	EnvNodeEnv        = "NODE_ENV"
	EnvPackSalt       = "PACK_SALT"
	EnvBankFile       = "WORDS_BANK_FILE"
	EnvGridSize       = "GRID_SIZE"
	EnvWordsPerPuzzle = "WORDS_PER_PUZZLE"
	EnvPuzzlesPerPack = "PUZZLES_PER_PACK"
)

// Config is the full service configuration.
type Config struct {
	Server  ServerSettings
	Puzzle  PuzzleSettings
	Gesture gesture.Config
	Auth    AuthSettings
}

// ServerSettings configures the HTTP surface.
type ServerSettings struct {
	Port         string
	LogLevel     string
	DBPath       string
	ClientOrigin string
}

// PuzzleSettings configures daily pack derivation.
type PuzzleSettings struct {
	GridSize       int
	WordsPerPuzzle int
	PuzzlesPerPack int
	PackSalt       string
	BankFile       string
}

// AuthSettings holds token and cookie settings. These are environment-only.
type AuthSettings struct {
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	Production     bool
}

// fileConfig mirrors the HCL layout. Every block and attribute is optional;
// pointer fields tell a value that is absent from one explicitly set to zero.
type fileConfig struct {
	Server  *serverFile  `hcl:"server,block"`
	Puzzle  *puzzleFile  `hcl:"puzzle,block"`
	Gesture *gestureFile `hcl:"gesture,block"`
}

type serverFile struct {
	Port         *string `hcl:"port,optional"`
	LogLevel     *string `hcl:"log_level,optional"`
	DBPath       *string `hcl:"db_path,optional"`
	ClientOrigin *string `hcl:"client_origin,optional"`
}

type puzzleFile struct {
	GridSize       *int    `hcl:"grid_size,optional"`
	WordsPerPuzzle *int    `hcl:"words_per_puzzle,optional"`
	PuzzlesPerPack *int    `hcl:"puzzles_per_pack,optional"`
	PackSalt       *string `hcl:"pack_salt,optional"`
	BankFile       *string `hcl:"bank_file,optional"`
}

type gestureFile struct {
	MinDragPixels *float64 `hcl:"min_drag_pixels,optional"`
	DiagonalSlop  *float64 `hcl:"diagonal_slop,optional"`
	AxisDominance *float64 `hcl:"axis_dominance,optional"`
	Tolerance     *int     `hcl:"tolerance,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Port:         "5175",
			LogLevel:     "info",
			DBPath:       "./data/wordsearch.db",
			ClientOrigin: "http://localhost:5173",
		},
		Puzzle: PuzzleSettings{
			GridSize:       10,
			WordsPerPuzzle: 8,
			PuzzlesPerPack: 3,
		},
		Gesture: gesture.DefaultConfig(),
		Auth: AuthSettings{
			JWTSecret:      "dev_secret_change_me",
			JWTExpiresDays: 14,
			CookieName:     "wordsearch_token",
		},
	}
}

// Load builds the configuration from defaults, an optional HCL file and the
// environment. path overrides WORDSEARCH_CONFIG when non-empty.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("config: parse %s: %s", path, diags.Error())
	}
	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return fmt.Errorf("config: decode %s: %s", path, diags.Error())
	}

	if s := fc.Server; s != nil {
		override(&c.Server.Port, s.Port)
		override(&c.Server.LogLevel, s.LogLevel)
		override(&c.Server.DBPath, s.DBPath)
		override(&c.Server.ClientOrigin, s.ClientOrigin)
	}
	if p := fc.Puzzle; p != nil {
		override(&c.Puzzle.GridSize, p.GridSize)
		override(&c.Puzzle.WordsPerPuzzle, p.WordsPerPuzzle)
		override(&c.Puzzle.PuzzlesPerPack, p.PuzzlesPerPack)
		override(&c.Puzzle.PackSalt, p.PackSalt)
		override(&c.Puzzle.BankFile, p.BankFile)
	}
	if g := fc.Gesture; g != nil {
		override(&c.Gesture.MinDragPixels, g.MinDragPixels)
		override(&c.Gesture.DiagonalSlop, g.DiagonalSlop)
		override(&c.Gesture.AxisDominance, g.AxisDominance)
		override(&c.Gesture.Tolerance, g.Tolerance)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, os.Getenv(EnvPort))
	setString(&c.Server.LogLevel, os.Getenv(EnvLogLevel))
	setString(&c.Server.DBPath, os.Getenv(EnvDBPath))
	setString(&c.Server.ClientOrigin, os.Getenv(EnvClientOrigin))
	setString(&c.Puzzle.PackSalt, os.Getenv(EnvPackSalt))
	setString(&c.Puzzle.BankFile, os.Getenv(EnvBankFile))
	setString(&c.Auth.JWTSecret, os.Getenv(EnvJWTSecret))
	setString(&c.Auth.CookieName, os.Getenv(EnvCookieName))
	c.Auth.Production = os.Getenv(EnvNodeEnv) == "production"

	ints := []struct {
		env string
		dst *int
	}{
		{EnvGridSize, &c.Puzzle.GridSize},
		{EnvWordsPerPuzzle, &c.Puzzle.WordsPerPuzzle},
		{EnvPuzzlesPerPack, &c.Puzzle.PuzzlesPerPack},
		{EnvJWTExpiresDays, &c.Auth.JWTExpiresDays},
	}
	for _, v := range ints {
		s := os.Getenv(v.env)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("config: invalid %s value: %w", v.env, err)
		}
		*v.dst = n
	}
	return nil
}

// Validate rejects configurations that cannot produce playable puzzles.
func (c *Config) Validate() error {
	p := c.Puzzle
	if p.GridSize < 2 || p.GridSize > 26 {
		return fmt.Errorf("config: grid size must be between 2 and 26, got %d", p.GridSize)
	}
	if p.WordsPerPuzzle < 1 {
		return fmt.Errorf("config: words per puzzle must be positive, got %d", p.WordsPerPuzzle)
	}
	if p.WordsPerPuzzle > p.GridSize*2 {
		return fmt.Errorf("config: %d words will not fit a %dx%d grid", p.WordsPerPuzzle, p.GridSize, p.GridSize)
	}
	if p.PuzzlesPerPack < 1 {
		return fmt.Errorf("config: puzzles per pack must be positive, got %d", p.PuzzlesPerPack)
	}
	g := c.Gesture
	if g.MinDragPixels < 0 || g.Tolerance < 0 {
		return fmt.Errorf("config: gesture thresholds must not be negative")
	}
	if g.DiagonalSlop <= 0 || g.DiagonalSlop > 1 {
		return fmt.Errorf("config: diagonal slop must be in (0,1], got %g", g.DiagonalSlop)
	}
	if g.AxisDominance < 1 {
		return fmt.Errorf("config: axis dominance must be at least 1, got %g", g.AxisDominance)
	}
	if c.Auth.JWTExpiresDays < 1 {
		return fmt.Errorf("config: %s must be positive", EnvJWTExpiresDays)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string { return ":" + c.Server.Port }

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// override copies a value that was present in the config file.
func override[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
