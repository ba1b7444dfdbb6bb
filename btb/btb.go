// Package btb models a branch target buffer's tag residency using Akita
// cache components. Branch traces carry no target addresses, so the model
// tracks only whether a branch's PC is resident: every event looks the PC
// up, and taken branches install it. The hit rate approximates how often the
// front end would have recognized the instruction as a known branch.
package btb

import (
	"fmt"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// instructionAlign is the block granularity: one 4-byte instruction slot.
const instructionAlign = 4

// Config holds BTB configuration parameters.
type Config struct {
	// Entries is the total number of BTB entries. Must be a power of 2.
	Entries int
	// Associativity is the number of ways per set.
	Associativity int
}

// DefaultConfig returns a 512-entry, 4-way BTB.
func DefaultConfig() Config {
	return Config{
		Entries:       512,
		Associativity: 4,
	}
}

// Validate checks that the configuration describes a realizable BTB.
func (c Config) Validate() error {
	if c.Entries <= 0 || c.Entries&(c.Entries-1) != 0 {
		return fmt.Errorf("btb entries (%d) must be a positive power of 2", c.Entries)
	}
	if c.Associativity <= 0 || c.Entries%c.Associativity != 0 {
		return fmt.Errorf("btb associativity (%d) must be positive and divide entries (%d)",
			c.Associativity, c.Entries)
	}
	return nil
}

// Stats holds BTB lookup statistics.
type Stats struct {
	// Hits is the number of lookups that found the PC resident.
	Hits uint64
	// Misses is the number of lookups that did not.
	Misses uint64
}

// HitRate returns the hit rate as a percentage, or 0 when no lookups were
// made.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// BTB is a set-associative, LRU-managed branch target buffer. Tag and
// replacement state live in an Akita cache directory.
type BTB struct {
	config    Config
	directory *akitacache.DirectoryImpl
	stats     Stats
}

// New creates a BTB with the given configuration.
func New(config Config) (*BTB, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid btb config: %w", err)
	}

	numSets := config.Entries / config.Associativity
	return &BTB{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			instructionAlign,
			akitacache.NewLRUVictimFinder(),
		),
	}, nil
}

// Config returns the BTB configuration.
func (b *BTB) Config() Config {
	return b.config
}

// Stats returns the BTB lookup statistics.
func (b *BTB) Stats() Stats {
	return b.stats
}

// Lookup checks whether the branch at pc is resident and updates the LRU
// state and hit/miss statistics.
func (b *BTB) Lookup(pc uint64) bool {
	block := b.directory.Lookup(0, alignPC(pc))
	if block != nil && block.IsValid {
		b.stats.Hits++
		b.directory.Visit(block)
		return true
	}

	b.stats.Misses++
	return false
}

// Allocate installs the branch at pc, evicting the LRU entry of its set if
// the set is full. Call it for taken branches, the way a front end learns
// branch locations from redirects.
func (b *BTB) Allocate(pc uint64) {
	blockAddr := alignPC(pc)

	block := b.directory.Lookup(0, blockAddr)
	if block != nil && block.IsValid {
		b.directory.Visit(block)
		return
	}

	victim := b.directory.FindVictim(blockAddr)
	if victim == nil {
		return
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = false
	b.directory.Visit(victim)
}

// Reset invalidates every entry and clears the statistics.
func (b *BTB) Reset() {
	b.directory.Reset()
	b.stats = Stats{}
}

// alignPC computes the block-aligned address for a branch PC.
func alignPC(pc uint64) uint64 {
	return pc &^ uint64(instructionAlign-1)
}
