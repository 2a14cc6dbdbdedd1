package suggest

import (
	"errors"

	"github.com/bastiangx/phrasebook/pkg/trie"
)

var (
	// ErrInputTooLong is returned for phrases or queries over Options.MaxLength runes.
	ErrInputTooLong = trie.ErrInputTooLong

	// ErrInvalidEncoding is returned for phrases or queries that are not valid UTF-8.
	ErrInvalidEncoding = trie.ErrInvalidEncoding

	// ErrEmptyQuery is returned for a Query without text.
	ErrEmptyQuery = errors.New("empty query")

	// ErrInvalidOptions is returned by NewCompleter for unusable options.
	ErrInvalidOptions = errors.New("invalid completer options")
)
