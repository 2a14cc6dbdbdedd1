package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	for _, r := range " -/_" {
		assert.True(t, cfg.IsDelimiter(r), "%q", r)
	}
	assert.False(t, cfg.IsDelimiter('.'))
	assert.Equal(t, 1, cfg.CharacterAdjacencyBonus)
	assert.Equal(t, 2, cfg.CharacterAdjacencyMultiplier)
	assert.Equal(t, 6, cfg.MaxCharacterAdjacencyBonus)
	assert.Equal(t, 5, cfg.WordBoundaryBonus)
	assert.Equal(t, 3, cfg.WordPrefixBonus)
	assert.Equal(t, 3, cfg.WordSuffixBonus)
	assert.Equal(t, 1, cfg.CharacterOffsetPenalty)
	assert.Equal(t, 3, cfg.MaxOffsetPenalty)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WordSuffixBonus = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	assert.NoError(t, Config{}.Validate())
}

func TestAdjacencyBonus(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		run      int
		expected int
	}{
		{0, 0},
		{1, 1}, // 1 * 2^0
		{2, 2}, // 1 * 2^1
		{3, 4}, // 1 * 2^2
		{4, 6}, // min(6, 1 * 2^3)
		{40, 6},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, cfg.AdjacencyBonus(tc.run), "run of %d", tc.run)
	}

	custom := Config{CharacterAdjacencyBonus: 2, CharacterAdjacencyMultiplier: 3, MaxCharacterAdjacencyBonus: 100}
	assert.Equal(t, 18, custom.AdjacencyBonus(3))
	assert.Equal(t, 54, custom.AdjacencyBonus(4))
	assert.Equal(t, 100, custom.AdjacencyBonus(5))

	flat := Config{CharacterAdjacencyBonus: 2, CharacterAdjacencyMultiplier: 1, MaxCharacterAdjacencyBonus: 10}
	assert.Equal(t, 2, flat.AdjacencyBonus(200))

	zero := Config{CharacterAdjacencyBonus: 1, CharacterAdjacencyMultiplier: 0, MaxCharacterAdjacencyBonus: 10}
	assert.Equal(t, 1, zero.AdjacencyBonus(1))
	assert.Equal(t, 0, zero.AdjacencyBonus(2))
}

func TestOffsetPenalty(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0, cfg.OffsetPenalty(0))
	assert.Equal(t, 2, cfg.OffsetPenalty(2))
	assert.Equal(t, 3, cfg.OffsetPenalty(3))
	assert.Equal(t, 3, cfg.OffsetPenalty(250))
}

func TestScore(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name      string
		phrase    string
		positions []int
		expected  int
	}{
		// 3 + adj 4 + boundary 5 + prefix 3
		{"prefix of phrase", "world", []int{0, 1, 2}, 15},
		// 3 + adj 4 + boundary 5 - offset 3
		{"after delimiter", "hello-world", []int{6, 7, 8}, 9},
		// 4 + adj 6 + boundary 5 + suffix 3 - offset 3
		{"whole last word", "This is a test", []int{10, 11, 12, 13}, 15},
		// 4 + adj 6 + boundary 5 + prefix 3
		{"leading word", "testing, testing, testing", []int{0, 1, 2, 3}, 18},
		// 4 + adj (1 + 4) + boundary 5 + prefix 3 + suffix 3
		{"split runs", "world", []int{0, 2, 3, 4}, 20},
		// 1 + adj 1 + suffix 3 - offset 3
		{"last rune", "hello", []int{4}, 2},
		// 1 + adj 1 - offset 2
		{"middle rune", "hello", []int{2}, 0},
		// 2 + adj 2 + boundary 5 + prefix 3 + suffix before "/" 3
		{"before delimiter", "ab/c", []int{0, 1}, 2 + 2 + 5 + 3 + 3},
		{"no positions", "hello", nil, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := cfg.Score(Match{Phrase: tc.phrase, Positions: tc.positions})
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestScoreFourRunHitsCap(t *testing.T) {
	cfg := DefaultConfig()

	// isolate the adjacency term: no boundary, prefix or suffix bonus, no penalty
	flat := cfg
	flat.WordBoundaryBonus, flat.WordPrefixBonus, flat.WordSuffixBonus = 0, 0, 0
	flat.CharacterOffsetPenalty = 0

	got := flat.Score(Match{Phrase: "xabcdx", Positions: []int{1, 2, 3, 4}})
	assert.Equal(t, 4+6, got)
}

func TestScoreCustomDelimiters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WordDelimiters = "."

	// '-' is no longer a boundary, '.' is
	dash := cfg.Score(Match{Phrase: "a-bc", Positions: []int{2, 3}})
	dot := cfg.Score(Match{Phrase: "a.bc", Positions: []int{2, 3}})
	assert.Equal(t, cfg.WordBoundaryBonus, dot-dash)
}

func TestSubstringPositions(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []int{0, 1, 2}, cfg.SubstringPositions("wor", "World"))
	assert.Equal(t, []int{6, 7, 8}, cfg.SubstringPositions("WOR", "hello-world"))
	assert.Equal(t, []int{0, 1, 2, 3}, cfg.SubstringPositions("test", "testing, testing, testing"))
	// the word-start occurrence beats the earlier mid-word one
	assert.Equal(t, []int{4, 5}, cfg.SubstringPositions("ab", "xab ab"))
	// equal scores keep the earliest occurrence
	assert.Equal(t, []int{2}, cfg.SubstringPositions("l", "hello"))

	assert.Nil(t, cfg.SubstringPositions("xyz", "hello"))
	assert.Nil(t, cfg.SubstringPositions("", "hello"))
	assert.Nil(t, cfg.SubstringPositions("hello!", "hello"))
}

func TestSubsequencePositions(t *testing.T) {
	assert.Equal(t, []int{0, 2, 3, 4}, SubsequencePositions("wrld", "world"))
	assert.Equal(t, []int{0, 2, 4}, SubsequencePositions("hlo", "Hello"))
	assert.Equal(t, []int{0}, SubsequencePositions("Wx", "world"))
	assert.Empty(t, SubsequencePositions("xyz", "hello"))
	assert.Empty(t, SubsequencePositions("abc", ""))
}

func TestRankAndFilter(t *testing.T) {
	cfg := DefaultConfig()

	cands := []Candidate{
		{Match: Match{Phrase: "hello-world", Positions: []int{6, 7, 8}}, Order: 0},           // 9
		{Match: Match{Phrase: "world", Positions: []int{0, 1, 2}}, Order: 1},                 // 15
		{Match: Match{Phrase: "word", Positions: []int{0, 1, 3}}, Tier: TierFuzzy, Distance: 1, Order: 2},
		{Match: Match{Phrase: "sword", Positions: []int{1, 2, 3}}, Tier: TierFuzzy, Distance: 2, Order: 3},
		{Match: Match{Phrase: "wart", Positions: []int{0}}, Tier: TierFuzzy, Distance: 1, Order: 4},
		{Match: Match{Phrase: "hello", Positions: []int{2}}, Order: 5}, // 0
	}

	ranked := RankAndFilter(cands, cfg, 1)

	var phrases []string
	for _, c := range ranked {
		phrases = append(phrases, c.Phrase)
	}
	assert.Equal(t, []string{"world", "hello-world", "word", "wart", "sword"}, phrases)
	assert.Equal(t, 15, ranked[0].Score)
	assert.Equal(t, 9, ranked[1].Score)

	// input untouched
	assert.Zero(t, cands[0].Score)
}

func TestRankAndFilterTieBreak(t *testing.T) {
	cfg := DefaultConfig()

	cands := []Candidate{
		{Match: Match{Phrase: "beta", Positions: []int{0}}, Order: 7},
		{Match: Match{Phrase: "bravo", Positions: []int{0}}, Order: 2},
		{Match: Match{Phrase: "bingo", Positions: []int{0}}, Order: 5},
	}

	ranked := RankAndFilter(cands, cfg, 0)
	require.Len(t, ranked, 3)
	assert.Equal(t, ranked[0].Score, ranked[2].Score)
	assert.Equal(t, "bravo", ranked[0].Phrase)
	assert.Equal(t, "bingo", ranked[1].Phrase)
	assert.Equal(t, "beta", ranked[2].Phrase)
}

func TestRankAndFilterEmpty(t *testing.T) {
	assert.Empty(t, RankAndFilter(nil, DefaultConfig(), 0))
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "substring", TierSubstring.String())
	assert.Equal(t, "fuzzy", TierFuzzy.String())
	assert.Equal(t, "unknown", Tier(9).String())
}

func TestScoreNeverNegative(t *testing.T) {
	cfg := DefaultConfig()
	// one rune mid-word: 1 + 1 - 3
	got := cfg.Score(Match{Query: "x", Phrase: "abcdefxghij", Positions: []int{6}})
	assert.Equal(t, 0, got)
}

func TestScoreRejectsBadPositions(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name      string
		positions []int
	}{
		{"negative", []int{-1, 0}},
		{"past the end", []int{3, 5}},
		{"descending", []int{2, 1}},
		{"repeated", []int{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, 0, cfg.Score(Match{Phrase: "hello", Positions: tt.positions}))
			})
		})
	}
	assert.Equal(t, 0, cfg.Score(Match{Phrase: "", Positions: []int{0}}))
}

func TestAdjacencyBonusSaturates(t *testing.T) {
	cfg := Config{
		CharacterAdjacencyBonus:      1 << 62,
		CharacterAdjacencyMultiplier: 4,
		MaxCharacterAdjacencyBonus:   math.MaxInt,
	}

	prev := 0
	for run := 1; run <= 8; run++ {
		got := cfg.AdjacencyBonus(run)
		assert.GreaterOrEqual(t, got, prev, "run of %d", run)
		prev = got
	}
	assert.Equal(t, math.MaxInt, cfg.AdjacencyBonus(2))

	capped := Config{CharacterAdjacencyBonus: 3, CharacterAdjacencyMultiplier: math.MaxInt, MaxCharacterAdjacencyBonus: 50}
	assert.Equal(t, 50, capped.AdjacencyBonus(2))
}

func TestOffsetPenaltySaturates(t *testing.T) {
	cfg := Config{CharacterOffsetPenalty: math.MaxInt / 2, MaxOffsetPenalty: 7}
	assert.Equal(t, 7, cfg.OffsetPenalty(3))
	assert.Equal(t, 7, cfg.OffsetPenalty(math.MaxInt))

	huge := Config{CharacterOffsetPenalty: 1 << 40, MaxOffsetPenalty: math.MaxInt}
	assert.Equal(t, math.MaxInt, huge.OffsetPenalty(1<<30))
	assert.Equal(t, 1<<41, huge.OffsetPenalty(2))
}

func TestScoreHugeWeightsDoNotWrap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WordBoundaryBonus = math.MaxInt
	cfg.WordPrefixBonus = math.MaxInt
	cfg.WordSuffixBonus = math.MaxInt

	assert.Equal(t, math.MaxInt, cfg.Score(Match{Phrase: "world", Positions: []int{0, 1, 2, 3, 4}}))

	cfg = DefaultConfig()
	cfg.CharacterOffsetPenalty = math.MaxInt
	cfg.MaxOffsetPenalty = math.MaxInt
	// the penalty only ever lowers the score
	assert.Equal(t, 0, cfg.Score(Match{Phrase: "hello", Positions: []int{4}}))
}

func TestCaseModes(t *testing.T) {
	assert.True(t, CaseFold.Equal('W', 'w'))
	assert.True(t, CaseSmart.Equal('w', 'W'))
	assert.False(t, CaseSmart.Equal('W', 'w'))
	assert.True(t, CaseSmart.Equal('W', 'W'))
	assert.False(t, CaseStrict.Equal('w', 'W'))
	assert.Equal(t, "smart", CaseSmart.String())
}

func TestSubstringPositionsMode(t *testing.T) {
	cfg := DefaultConfig()

	assert.Nil(t, cfg.SubstringPositionsMode("wor", "World", CaseStrict))
	assert.Equal(t, []int{6, 7, 8}, cfg.SubstringPositionsMode("wor", "Hello-world", CaseStrict))
	// smart case: "W" must match exactly, "or" folds
	assert.Equal(t, []int{0, 1, 2}, cfg.SubstringPositionsMode("WOr", "WOR", CaseSmart))
	assert.Nil(t, cfg.SubstringPositionsMode("Wor", "hello-world", CaseSmart))
	// the exact occurrence is picked even when a folded one scores higher
	assert.Equal(t, []int{6, 7, 8}, cfg.SubstringPositionsMode("Wor", "world Word", CaseStrict))
}

func TestSubsequencePositionsIn(t *testing.T) {
	// whole phrase alignment anchors on the first 'w'
	assert.Equal(t, []int{0, 2, 3, 4}, SubsequencePositions("wrld", "w rld world"))
	// restricted to the matched word
	assert.Equal(t, []int{6, 8, 9, 10}, SubsequencePositionsIn("wrld", "w rld world", 6, 11))
	assert.Equal(t, []int{6, 8, 9, 10}, SubsequencePositionsIn("wrld", "w rld world", 6, -1))
	assert.Empty(t, SubsequencePositionsIn("w", "world", 3, 2))
}
