package suggest

import (
	"github.com/bastiangx/phrasebook/internal/utils"
	"github.com/bastiangx/phrasebook/pkg/score"
)

// Query is one completion request. Build it with NewQuery and adjust the
// fields directly; it is a plain comparable value.
type Query struct {
	// Text is the query itself, never empty for a Query from NewQuery
	Text string

	// Limit caps the results; <= 0 returns everything
	Limit int

	// Fuzzy allows the edit distance fallback for this query. It has no
	// effect when the completer was built with Options.Fuzzy off.
	Fuzzy bool

	// StrictCase matches substring hits rune for rune, case included
	StrictCase bool

	// SmartCase makes upper case runes in Text match only upper case runes,
	// like the smartcase setting of common editors. StrictCase wins over it.
	SmartCase bool
}

// NewQuery returns a query for text with fuzzy matching on, folded case and
// no limit. Empty text is rejected with ErrEmptyQuery.
func NewQuery(text string) (Query, error) {
	if text == "" {
		return Query{}, ErrEmptyQuery
	}
	return Query{Text: text, Fuzzy: true}, nil
}

// CaseMode returns how the substring phase compares runes for q.
func (q Query) CaseMode() score.CaseMode {
	switch {
	case q.StrictCase:
		return score.CaseStrict
	case q.SmartCase && utils.HasUpper(q.Text):
		return score.CaseSmart
	default:
		return score.CaseFold
	}
}
