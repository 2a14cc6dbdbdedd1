package suggest

import (
	"fmt"

	"github.com/bastiangx/phrasebook/pkg/score"
	"github.com/bastiangx/phrasebook/pkg/trie"
	"github.com/charmbracelet/log"
)

// Options configures a Completer. Start from DefaultOptions.
type Options struct {
	// Score holds the ranking weights
	Score score.Config

	// MaxLength caps phrases and queries, in runes
	MaxLength int

	// Limit is the result cap used by Complete; <= 0 returns everything
	Limit int

	// Threshold drops candidates scoring below it
	Threshold int

	// Fuzzy enables the edit distance fallback
	Fuzzy bool

	// MaxEditDistance is the largest distance a fuzzy hit may have
	MaxEditDistance int

	// MinFuzzyLength is the shortest query, in runes, that may fall back to fuzzy matching
	MinFuzzyLength int

	// PruneFirstRune restricts fuzzy candidates to words sharing the query's first rune
	PruneFirstRune bool

	// CacheSize is the number of recent results kept; 0 disables the cache
	CacheSize int

	// Logger receives debug output; nil uses the charm default logger
	Logger *log.Logger

	// OnInsert is called after each phrase is added, while the write lock is
	// held. It must not call back into the Completer.
	OnInsert func(phrase string)
}

// DefaultOptions returns the stock pipeline settings.
func DefaultOptions() Options {
	return Options{
		Score:           score.DefaultConfig(),
		MaxLength:       trie.DefaultMaxLength,
		Limit:           0,
		Threshold:       0,
		Fuzzy:           true,
		MaxEditDistance: 2,
		MinFuzzyLength:  2,
		PruneFirstRune:  true,
		CacheSize:       256,
	}
}

func (o Options) validate() error {
	if err := o.Score.Validate(); err != nil {
		return err
	}
	if o.MaxLength < 0 {
		return fmt.Errorf("%w: max length %d", ErrInvalidOptions, o.MaxLength)
	}
	if o.MaxEditDistance < 0 {
		return fmt.Errorf("%w: max edit distance %d", ErrInvalidOptions, o.MaxEditDistance)
	}
	if o.CacheSize < 0 {
		return fmt.Errorf("%w: cache size %d", ErrInvalidOptions, o.CacheSize)
	}
	return nil
}
