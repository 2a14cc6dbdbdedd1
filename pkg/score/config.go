// Package score ranks phrase matches with a weighted heuristic.
//
// A match is the set of rune positions of a phrase that line up with the
// query. Config.Score turns those positions into an integer: one point per
// matched rune, a bonus per run of consecutive positions that grows
// geometrically up to a cap, bonuses for starting on a word boundary or at
// the phrase start, a bonus for ending on a word boundary, and a capped
// penalty for starting late in the phrase.
package score

import (
	"errors"
	"fmt"

	"github.com/bastiangx/phrasebook/internal/utils"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid score configuration")

// Config holds the weights used by Score. It is a plain value: build it with
// DefaultConfig or a composite literal and share it freely, nothing in this
// module modifies it.
type Config struct {
	// WordDelimiters lists the runes that separate words
	WordDelimiters string `toml:"word_delimiters"`
	// CharacterAdjacencyBonus is the bonus for a run of one matched rune
	CharacterAdjacencyBonus int `toml:"character_adjacency_bonus"`
	// CharacterAdjacencyMultiplier grows the run bonus per extra rune
	CharacterAdjacencyMultiplier int `toml:"character_adjacency_multiplier"`
	// MaxCharacterAdjacencyBonus caps the bonus of a single run
	MaxCharacterAdjacencyBonus int `toml:"max_character_adjacency_bonus"`
	// WordBoundaryBonus applies when the match starts a word
	WordBoundaryBonus int `toml:"word_boundary_bonus"`
	// WordPrefixBonus applies when the match starts the phrase
	WordPrefixBonus int `toml:"word_prefix_bonus"`
	// WordSuffixBonus applies when the match ends a word
	WordSuffixBonus int `toml:"word_suffix_bonus"`
	// CharacterOffsetPenalty is charged per rune before the match start
	CharacterOffsetPenalty int `toml:"character_offset_penalty"`
	// MaxOffsetPenalty caps the offset penalty
	MaxOffsetPenalty int `toml:"max_offset_penalty"`
}

// DefaultConfig returns the stock weights.
func DefaultConfig() Config {
	return Config{
		WordDelimiters:               utils.DefaultDelimiters,
		CharacterAdjacencyBonus:      1,
		CharacterAdjacencyMultiplier: 2,
		MaxCharacterAdjacencyBonus:   6,
		WordBoundaryBonus:            5,
		WordPrefixBonus:              3,
		WordSuffixBonus:              3,
		CharacterOffsetPenalty:       1,
		MaxOffsetPenalty:             3,
	}
}

// Validate rejects negative weights.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"character_adjacency_bonus", c.CharacterAdjacencyBonus},
		{"character_adjacency_multiplier", c.CharacterAdjacencyMultiplier},
		{"max_character_adjacency_bonus", c.MaxCharacterAdjacencyBonus},
		{"word_boundary_bonus", c.WordBoundaryBonus},
		{"word_prefix_bonus", c.WordPrefixBonus},
		{"word_suffix_bonus", c.WordSuffixBonus},
		{"character_offset_penalty", c.CharacterOffsetPenalty},
		{"max_offset_penalty", c.MaxOffsetPenalty},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%w: %s is %d, must be >= 0", ErrInvalidConfig, f.name, f.value)
		}
	}
	return nil
}

// IsDelimiter reports whether r separates words under this config.
func (c Config) IsDelimiter(r rune) bool {
	return utils.IsSeparator(r, c.WordDelimiters)
}
