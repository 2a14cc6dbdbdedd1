package score

import (
	"unicode"

	"github.com/bastiangx/phrasebook/internal/utils"
)

// CaseMode selects how query runes are compared with phrase runes.
type CaseMode int

const (
	// CaseFold ignores case entirely
	CaseFold CaseMode = iota
	// CaseSmart requires upper case query runes to match exactly and folds the rest
	CaseSmart
	// CaseStrict compares runes exactly
	CaseStrict
)

func (m CaseMode) String() string {
	switch m {
	case CaseFold:
		return "fold"
	case CaseSmart:
		return "smart"
	case CaseStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// Equal reports whether query rune q matches phrase rune p under m.
func (m CaseMode) Equal(q, p rune) bool {
	switch m {
	case CaseStrict:
		return q == p
	case CaseSmart:
		if unicode.IsUpper(q) {
			return q == p
		}
		return utils.EqualFold(q, p)
	default:
		return utils.EqualFold(q, p)
	}
}

// SubstringPositions finds every case-insensitive occurrence of query in
// phrase and returns the positions of the one that scores highest, the
// earliest on ties. It returns nil when query does not occur.
func (c Config) SubstringPositions(query, phrase string) []int {
	return c.SubstringPositionsMode(query, phrase, CaseFold)
}

// SubstringPositionsMode is SubstringPositions with runes compared under mode.
func (c Config) SubstringPositionsMode(query, phrase string, mode CaseMode) []int {
	q := []rune(query)
	p := []rune(phrase)
	if len(q) == 0 || len(q) > len(p) {
		return nil
	}

	var best []int
	bestScore := 0
	for start := 0; start+len(q) <= len(p); start++ {
		if !occursAt(q, p, start, mode) {
			continue
		}
		positions := make([]int, len(q))
		for i := range positions {
			positions[i] = start + i
		}
		if s := c.score(p, positions); best == nil || s > bestScore {
			best, bestScore = positions, s
		}
	}
	return best
}

func occursAt(q, p []rune, start int, mode CaseMode) bool {
	for i, r := range q {
		if !mode.Equal(r, p[start+i]) {
			return false
		}
	}
	return true
}

// SubsequencePositions aligns query against phrase left to right, matching
// each query rune to the next equal (case-insensitive) phrase rune. Query
// runes with no later counterpart are skipped, so typos cost a position
// rather than the whole alignment.
func SubsequencePositions(query, phrase string) []int {
	return SubsequencePositionsIn(query, phrase, 0, -1)
}

// SubsequencePositionsIn is SubsequencePositions restricted to the rune span
// [start, end) of phrase; end < 0 means the end of phrase. Positions stay
// relative to the whole phrase.
func SubsequencePositionsIn(query, phrase string, start, end int) []int {
	p := []rune(phrase)
	if end < 0 || end > len(p) {
		end = len(p)
	}
	start = max(start, 0)

	var positions []int
	next := start
	for _, qr := range query {
		for i := next; i < end; i++ {
			if utils.EqualFold(qr, p[i]) {
				positions = append(positions, i)
				next = i + 1
				break
			}
		}
		if next >= end {
			break
		}
	}
	return positions
}
