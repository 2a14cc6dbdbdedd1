package suggest

import (
	"testing"

	"github.com/bastiangx/phrasebook/pkg/score"
	"github.com/bastiangx/phrasebook/pkg/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuery(t *testing.T) {
	q, err := NewQuery("wor")
	require.NoError(t, err)
	assert.Equal(t, Query{Text: "wor", Fuzzy: true}, q)

	_, err = NewQuery("")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestQueryCaseMode(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want score.CaseMode
	}{
		{"default", Query{Text: "World"}, score.CaseFold},
		{"smart with upper", Query{Text: "World", SmartCase: true}, score.CaseSmart},
		{"smart all lower", Query{Text: "world", SmartCase: true}, score.CaseFold},
		{"strict", Query{Text: "world", StrictCase: true}, score.CaseStrict},
		{"strict wins", Query{Text: "World", StrictCase: true, SmartCase: true}, score.CaseStrict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.CaseMode())
		})
	}
}

func TestCompleteQueryCase(t *testing.T) {
	c := newTestCompleter(t, nil, "Hello World", "hello world", "HELLO")

	complete := func(q Query) []string {
		t.Helper()
		got, err := c.CompleteQuery(q)
		require.NoError(t, err)
		return phrasesOf(got)
	}

	assert.Equal(t, []string{"Hello World", "hello world"}, complete(Query{Text: "world"}))
	assert.Equal(t, []string{"Hello World"}, complete(Query{Text: "World", StrictCase: true}))
	assert.Equal(t, []string{"hello world"}, complete(Query{Text: "hello", StrictCase: true}))
	assert.Equal(t, []string{"Hello World"}, complete(Query{Text: "World", SmartCase: true}))
	assert.Equal(t, []string{"Hello World", "hello world"}, complete(Query{Text: "wor", SmartCase: true}))
	assert.Equal(t, []string{"HELLO"}, complete(Query{Text: "HEL", SmartCase: true}))

	assert.Empty(t, complete(Query{Text: "WORLD", StrictCase: true}))

	// the fuzzy fallback always folds case
	got, err := c.CompleteQuery(Query{Text: "WORLD", StrictCase: true, Fuzzy: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello World", "hello world"}, phrasesOf(got))
	for _, s := range got {
		assert.True(t, s.Fuzzy)
		assert.Zero(t, s.Distance)
	}
}

func TestCompleteQueryFuzzyToggle(t *testing.T) {
	c := newTestCompleter(t, nil, "hello world")

	q, err := NewQuery("helo")
	require.NoError(t, err)

	got, err := c.CompleteQuery(q)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello world"}, phrasesOf(got))

	q.Fuzzy = false
	got, err = c.CompleteQuery(q)
	require.NoError(t, err)
	assert.Empty(t, got)

	off := newTestCompleter(t, func(o *Options) { o.Fuzzy = false }, "hello world")
	q.Fuzzy = true
	got, err = off.CompleteQuery(q)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCompleteQueryLimit(t *testing.T) {
	c := newTestCompleter(t, func(o *Options) { o.Limit = 1 }, "alpha", "alps", "alto")

	got, err := c.CompleteQuery(Query{Text: "al", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = c.CompleteQuery(Query{Text: "al"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestCompleteQueryRejectsEmpty(t *testing.T) {
	c := newTestCompleter(t, nil, "alpha")

	_, err := c.CompleteQuery(Query{})
	assert.ErrorIs(t, err, ErrEmptyQuery)

	got, err := c.CompleteN("", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFuzzyAlignsOnMatchedWord(t *testing.T) {
	c := newTestCompleter(t, nil, "wide world")

	got, err := c.Complete("wrld")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Fuzzy)
	assert.Equal(t, 1, got[0].Distance)
	// aligned inside "world", not from the 'w' of "wide"
	assert.Equal(t, 14, got[0].Score)
}

func TestKeySpan(t *testing.T) {
	tests := []struct {
		phrase, key string
		from, to    int
	}{
		{"Open-File file", "file", 5, 9},
		{"profile file", "file", 8, 12},
		{"profiles", "file", 3, 7},
		{"hello world", "hello world", 0, 11},
		{"abc", "zz", 0, -1},
		{"ab", "abc", 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.phrase+"/"+tt.key, func(t *testing.T) {
			from, to := keySpan(tt.phrase, tt.key, " -/_")
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}
}

func TestCompleterOptions(t *testing.T) {
	c := newTestCompleter(t, func(o *Options) {
		o.MaxEditDistance = 1
		o.Threshold = 4
		o.MaxLength = 0
	})

	opts := c.Options()
	assert.Equal(t, 1, opts.MaxEditDistance)
	assert.Equal(t, 4, opts.Threshold)
	assert.Equal(t, trie.DefaultMaxLength, opts.MaxLength)
	assert.Equal(t, score.DefaultConfig(), opts.Score)
}
