package score

import "math"

// Match describes where a query landed inside a phrase.
type Match struct {
	Query  string
	Phrase string
	// Positions are rune offsets into Phrase, strictly ascending
	Positions []int
}

// Score rates m. Scores never go below 0; a match with no positions, or with
// positions outside the phrase or out of order, scores 0.
func (c Config) Score(m Match) int {
	return c.score([]rune(m.Phrase), m.Positions)
}

func validPositions(phrase []rune, positions []int) bool {
	for i, p := range positions {
		if p < 0 || p >= len(phrase) {
			return false
		}
		if i > 0 && p <= positions[i-1] {
			return false
		}
	}
	return true
}

func (c Config) score(phrase []rune, positions []int) int {
	if len(positions) == 0 || !validPositions(phrase, positions) {
		return 0
	}

	total := len(positions)

	runLen := 1
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			runLen++
			continue
		}
		total = addSat(total, c.AdjacencyBonus(runLen))
		runLen = 1
	}
	total = addSat(total, c.AdjacencyBonus(runLen))

	first := positions[0]
	last := positions[len(positions)-1]

	if first == 0 || c.IsDelimiter(phrase[first-1]) {
		total = addSat(total, c.WordBoundaryBonus)
	}
	if first == 0 {
		total = addSat(total, c.WordPrefixBonus)
	}
	if last == len(phrase)-1 || c.IsDelimiter(phrase[last+1]) {
		total = addSat(total, c.WordSuffixBonus)
	}

	total -= c.OffsetPenalty(first)
	return max(total, 0)
}

// addSat adds b to a, sticking at math.MaxInt instead of wrapping.
func addSat(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// AdjacencyBonus returns the bonus for a run of n consecutive matched runes:
// min(MaxCharacterAdjacencyBonus, CharacterAdjacencyBonus * CharacterAdjacencyMultiplier^(n-1)).
func (c Config) AdjacencyBonus(n int) int {
	if n <= 0 {
		return 0
	}
	limit := c.MaxCharacterAdjacencyBonus
	mult := c.CharacterAdjacencyMultiplier
	bonus := c.CharacterAdjacencyBonus
	// saturate at the cap instead of computing the full power
	for i := 1; i < n && bonus < limit; i++ {
		if mult > 0 && bonus > limit/mult {
			bonus = limit
			break
		}
		bonus *= mult
		if bonus == 0 {
			break
		}
	}
	return min(limit, bonus)
}

// OffsetPenalty returns min(MaxOffsetPenalty, CharacterOffsetPenalty * offset).
func (c Config) OffsetPenalty(offset int) int {
	if offset <= 0 {
		return 0
	}
	if c.CharacterOffsetPenalty > 0 && offset > c.MaxOffsetPenalty/c.CharacterOffsetPenalty {
		return c.MaxOffsetPenalty
	}
	return min(c.MaxOffsetPenalty, c.CharacterOffsetPenalty*offset)
}
