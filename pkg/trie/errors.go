package trie

import "errors"

var (
	// ErrInputTooLong is returned when a phrase or query has more runes than
	// the configured maximum. The caller may truncate and retry.
	ErrInputTooLong = errors.New("input too long")

	// ErrInvalidEncoding is returned for text that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid utf-8 encoding")
)
