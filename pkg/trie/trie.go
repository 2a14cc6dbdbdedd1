// Package trie is the character index behind the phrase book.
//
// Every suffix of every inserted phrase is stored as a root anchored path, so
// a substring query is a plain prefix walk followed by a subtree collection.
// Nodes live in a single arena slice and reference their children by index.
//
// A Trie does no locking. Once the last Insert has returned it is safe for any
// number of concurrent readers; callers that keep inserting while serving
// queries must serialize access themselves (see pkg/suggest).
package trie

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/bastiangx/phrasebook/internal/utils"
)

// DefaultMaxLength caps phrase and query length in runes.
const DefaultMaxLength = 256

type (
	nodeID   uint32
	phraseID uint32
)

const rootID nodeID = 0

type node struct {
	children map[rune]nodeID
	// phrases terminating at this node, ascending and unique
	phrases []phraseID
}

// Trie is an arena backed suffix trie over phrases.
type Trie struct {
	nodes     []node
	phrases   []string
	ids       map[string]phraseID
	maxLength int
}

// Option configures a Trie.
type Option func(*Trie)

// WithMaxLength sets the maximum phrase/query length in runes.
// Values <= 0 keep DefaultMaxLength.
func WithMaxLength(n int) Option {
	return func(t *Trie) {
		if n > 0 {
			t.maxLength = n
		}
	}
}

// New creates an empty trie holding only the root node.
func New(opts ...Option) *Trie {
	t := &Trie{
		nodes:     make([]node, 1, 64),
		ids:       make(map[string]phraseID),
		maxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Validate checks text against the encoding and length limits and returns its
// rune count. Empty text is valid.
func (t *Trie) Validate(text string) (int, error) {
	if !utf8.ValidString(text) {
		return 0, ErrInvalidEncoding
	}
	n := utf8.RuneCountInString(text)
	if n > t.maxLength {
		return n, fmt.Errorf("%w: %d runes, max %d", ErrInputTooLong, n, t.maxLength)
	}
	return n, nil
}

// Insert adds phrase to the index.
//
// Empty phrases and phrases already present are no-ops. Invalid or oversized
// phrases are rejected before the trie is touched.
func (t *Trie) Insert(phrase string) error {
	if phrase == "" {
		return nil
	}
	if _, err := t.Validate(phrase); err != nil {
		return err
	}
	if _, ok := t.ids[phrase]; ok {
		return nil
	}

	id := phraseID(len(t.phrases))
	t.phrases = append(t.phrases, phrase)
	t.ids[phrase] = id

	original := []rune(phrase)
	var folded []rune
	if utils.HasUpper(phrase) {
		folded = utils.FoldRunes(phrase)
	}

	// i == len(original) is the empty suffix and lands on the root
	for i := 0; i <= len(original); i++ {
		t.insertPath(original[i:], id)
		if folded != nil && !slices.Equal(original[i:], folded[i:]) {
			t.insertPath(folded[i:], id)
		}
	}
	return nil
}

func (t *Trie) insertPath(path []rune, id phraseID) {
	cur := rootID
	for _, r := range path {
		next, ok := t.nodes[cur].children[r]
		if !ok {
			next = nodeID(len(t.nodes))
			t.nodes = append(t.nodes, node{})
			if t.nodes[cur].children == nil {
				t.nodes[cur].children = make(map[rune]nodeID, 1)
			}
			t.nodes[cur].children[r] = next
		}
		cur = next
	}

	// ids are handed out in increasing order, so checking the tail keeps the
	// slice sorted and duplicate free
	n := &t.nodes[cur]
	if len(n.phrases) == 0 || n.phrases[len(n.phrases)-1] != id {
		n.phrases = append(n.phrases, id)
	}
}

// Search returns every phrase containing query as a case-insensitive
// substring, in insertion order. Empty or oversized queries, and queries that
// fall off the trie, return an empty slice.
func (t *Trie) Search(query string) []string {
	if query == "" {
		return []string{}
	}
	if _, err := t.Validate(query); err != nil {
		return []string{}
	}

	cur := rootID
	for _, r := range utils.FoldRunes(query) {
		next, ok := t.nodes[cur].children[r]
		if !ok {
			return []string{}
		}
		cur = next
	}
	return t.collect(cur)
}

// collect gathers the phrase set of the subtree rooted at start.
func (t *Trie) collect(start nodeID) []string {
	seen := make(map[phraseID]struct{})
	stack := []nodeID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[id]
		for _, p := range n.phrases {
			seen[p] = struct{}{}
		}
		for _, child := range n.children {
			stack = append(stack, child)
		}
	}

	ids := make([]phraseID, 0, len(seen))
	for p := range seen {
		ids = append(ids, p)
	}
	slices.Sort(ids)

	out := make([]string, len(ids))
	for i, p := range ids {
		out[i] = t.phrases[p]
	}
	return out
}

// All returns every indexed phrase in insertion order.
func (t *Trie) All() []string {
	return slices.Clone(t.phrases)
}

// Contains reports whether phrase was inserted verbatim.
func (t *Trie) Contains(phrase string) bool {
	_, ok := t.ids[phrase]
	return ok
}

// Order returns the insertion position of phrase, or -1.
func (t *Trie) Order(phrase string) int {
	id, ok := t.ids[phrase]
	if !ok {
		return -1
	}
	return int(id)
}

// Phrase returns the phrase at insertion position i.
func (t *Trie) Phrase(i int) (string, bool) {
	if i < 0 || i >= len(t.phrases) {
		return "", false
	}
	return t.phrases[i], true
}

// Len returns the number of distinct phrases.
func (t *Trie) Len() int {
	return len(t.phrases)
}

// Nodes returns the number of arena nodes, root included.
func (t *Trie) Nodes() int {
	return len(t.nodes)
}

// MaxLength returns the rune limit for phrases and queries.
func (t *Trie) MaxLength() int {
	return t.maxLength
}
