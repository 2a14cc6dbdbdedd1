package score

import (
	"cmp"
	"slices"
)

// Tier orders groups of candidates ahead of score.
type Tier int

const (
	// TierSubstring holds phrases that contain the query
	TierSubstring Tier = iota
	// TierFuzzy holds phrases admitted by edit distance
	TierFuzzy
)

func (t Tier) String() string {
	switch t {
	case TierSubstring:
		return "substring"
	case TierFuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// Candidate is a per-query record for one phrase.
type Candidate struct {
	Match
	// Score is filled in by RankAndFilter
	Score int
	// Distance is the edit distance for fuzzy candidates, 0 otherwise
	Distance int
	Tier     Tier
	// Order is the encounter order, used to break ties
	Order int
}

// RankAndFilter scores every candidate with cfg, drops the ones scoring below
// threshold and sorts the rest by tier, then edit distance ascending, then
// score descending, then Order ascending. The input slice is not modified.
func RankAndFilter(cands []Candidate, cfg Config, threshold int) []Candidate {
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		c.Score = cfg.Score(c.Match)
		if c.Score < threshold {
			continue
		}
		out = append(out, c)
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		return cmp.Or(
			cmp.Compare(a.Tier, b.Tier),
			cmp.Compare(a.Distance, b.Distance),
			cmp.Compare(b.Score, a.Score),
			cmp.Compare(a.Order, b.Order),
		)
	})
	return out
}
