package suggest

import (
	"slices"
	"unicode/utf8"

	"github.com/bastiangx/phrasebook/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// lexicon maps lowercased words, and whole lowercased phrases, to the
// insertion order of the phrases they came from. It is the candidate source
// for the fuzzy phase.
type lexicon struct {
	trie *patricia.Trie
	keys int
}

func newLexicon() *lexicon {
	return &lexicon{trie: patricia.NewTrie()}
}

func (l *lexicon) add(phrase string, order int, delimiters string) {
	folded := string(utils.FoldRunes(phrase))

	keys := utils.SplitWords(folded, delimiters)
	keys = append(keys, folded)

	seen := utils.NewSeenFilter(len(keys))
	for _, key := range keys {
		if !seen.ShouldInclude(key) {
			continue
		}

		p := patricia.Prefix(key)
		item := l.trie.Get(p)
		if item == nil {
			l.trie.Insert(p, []int{order})
			l.keys++
			continue
		}
		orders := item.([]int)
		if orders[len(orders)-1] != order {
			l.trie.Set(p, append(orders, order))
		}
	}
}

// visit calls fn for every key, or only for keys sharing the first rune of
// query when prune is set.
func (l *lexicon) visit(query string, prune bool, fn func(key string, orders []int)) {
	visitor := func(p patricia.Prefix, item patricia.Item) error {
		orders, ok := item.([]int)
		if !ok {
			log.Errorf("Unknown lexicon item type: %T for key %s", item, p)
			return nil
		}
		fn(string(p), orders)
		return nil
	}

	var err error
	if prune && query != "" {
		first, size := utf8.DecodeRuneInString(query)
		if first == utf8.RuneError {
			return
		}
		err = l.trie.VisitSubtree(patricia.Prefix(query[:size]), visitor)
	} else {
		err = l.trie.Visit(visitor)
	}
	if err != nil {
		log.Errorf("Error visiting lexicon: %v", err)
	}
}

func (l *lexicon) size() int {
	return l.keys
}

// keySpan returns the rune span [from, to) of key inside the folded phrase,
// preferring an occurrence that is a whole word. It returns (0, -1), the
// whole phrase, when key does not occur.
func keySpan(phrase, key, delimiters string) (int, int) {
	p := utils.FoldRunes(phrase)
	k := []rune(key)
	if len(k) == 0 || len(k) > len(p) {
		return 0, -1
	}

	first := -1
	for start := 0; start+len(k) <= len(p); start++ {
		if !slices.Equal(p[start:start+len(k)], k) {
			continue
		}
		end := start + len(k)
		leftEdge := start == 0 || utils.IsSeparator(p[start-1], delimiters)
		rightEdge := end == len(p) || utils.IsSeparator(p[end], delimiters)
		if leftEdge && rightEdge {
			return start, end
		}
		if first < 0 {
			first = start
		}
	}
	if first < 0 {
		return 0, -1
	}
	return first, first + len(k)
}
