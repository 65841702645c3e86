package daily

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// DefaultMaxPacks bounds the cache to a few days either side of today.
const DefaultMaxPacks = 7

// Cache memoises derived puzzles per pack. When more than maxPacks packs
// are cached the least recently added pack is evicted whole.
type Cache struct {
	bank     []string
	settings Settings
	maxPacks int

	mu    sync.Mutex
	packs map[string]map[int]*Puzzle
	order []string
}

// NewCache returns a cache deriving from bank with s.
func NewCache(bank []string, s Settings, maxPacks int) *Cache {
	if maxPacks <= 0 {
		maxPacks = DefaultMaxPacks
	}
	return &Cache{
		bank:     bank,
		settings: s,
		maxPacks: maxPacks,
		packs:    make(map[string]map[int]*Puzzle),
	}
}

// BankSize returns the number of words puzzles are drawn from.
func (c *Cache) BankSize() int { return len(c.bank) }

// Settings returns the derivation settings.
func (c *Cache) Settings() Settings { return c.settings }

// Puzzle returns the memoised puzzle, deriving it on first use.
func (c *Cache) Puzzle(packID string, index int) (*Puzzle, error) {
	c.mu.Lock()
	if p, ok := c.packs[packID][index]; ok {
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	// Derivation is pure, so a concurrent duplicate build is harmless.
	p, err := BuildPuzzle(c.bank, c.settings, packID, index)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(p)
	return c.packs[packID][index], nil
}

// Pack returns every puzzle of packID.
func (c *Cache) Pack(ctx context.Context, packID string) (*Pack, error) {
	return buildPack(ctx, c.settings, packID, func(i int) (*Puzzle, error) {
		return c.Puzzle(packID, i)
	})
}

// Len reports the number of cached packs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.packs)
}

func (c *Cache) put(p *Puzzle) {
	pack, ok := c.packs[p.PackID]
	if !ok {
		pack = make(map[int]*Puzzle)
		c.packs[p.PackID] = pack
		c.order = append(c.order, p.PackID)
		for len(c.order) > c.maxPacks {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.packs, oldest)
			log.Debug().Str("pack", oldest).Msg("evicted pack from cache")
		}
	}
	if _, dup := pack[p.Index]; !dup {
		pack[p.Index] = p
	}
}
