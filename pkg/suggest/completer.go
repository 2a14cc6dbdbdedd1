package suggest

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/phrasebook/internal/utils"
	"github.com/bastiangx/phrasebook/pkg/fuzzy"
	"github.com/bastiangx/phrasebook/pkg/score"
	"github.com/bastiangx/phrasebook/pkg/trie"
	"github.com/charmbracelet/log"
)

// Suggestion is one ranked completion.
type Suggestion struct {
	Phrase   string
	Score    int
	Distance int  `json:",omitempty"`
	Fuzzy    bool `json:",omitempty"`
}

// Completer answers completion queries over a phrase book.
//
// Inserts take the write lock for the duration of one phrase, queries take
// the read lock, so a query never observes a half inserted phrase.
type Completer struct {
	mu      sync.RWMutex
	index   *trie.Trie
	lexicon *lexicon
	calc    *fuzzy.Calculator
	cache   *ResultCache
	opts    Options
	log     *log.Logger
}

// NewCompleter creates an empty completer.
func NewCompleter(opts Options) (*Completer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.MaxLength == 0 {
		opts.MaxLength = trie.DefaultMaxLength
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Completer{
		index:   trie.New(trie.WithMaxLength(opts.MaxLength)),
		lexicon: newLexicon(),
		calc:    fuzzy.NewCalculator(opts.MaxLength),
		cache:   NewResultCache(opts.CacheSize),
		opts:    opts,
		log:     logger,
	}, nil
}

// Options returns the options the completer was built with.
func (c *Completer) Options() Options {
	return c.opts
}

// Insert adds phrase to the phrase book. Empty and already present phrases
// are no-ops; a rejected phrase leaves the phrase book unchanged.
func (c *Completer) Insert(phrase string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.insertLocked(phrase)
	return err
}

// InsertAll inserts phrases one at a time and returns how many were new.
// Rejected phrases are skipped and reported together in the returned error.
func (c *Completer) InsertAll(phrases []string) (int, error) {
	added := 0
	var errs []error
	for i, phrase := range phrases {
		c.mu.Lock()
		ok, err := c.insertLocked(phrase)
		c.mu.Unlock()

		if err != nil {
			errs = append(errs, fmt.Errorf("phrase %d: %w", i, err))
			continue
		}
		if ok {
			added++
		}
	}
	return added, errors.Join(errs...)
}

func (c *Completer) insertLocked(phrase string) (bool, error) {
	if phrase == "" || c.index.Contains(phrase) {
		return false, nil
	}
	if err := c.index.Insert(phrase); err != nil {
		c.log.Debug("Rejected phrase", "err", err)
		return false, err
	}

	c.lexicon.add(phrase, c.index.Order(phrase), c.opts.Score.WordDelimiters)
	c.cache.Reset()

	if c.opts.OnInsert != nil {
		c.opts.OnInsert(phrase)
	}
	return true, nil
}

// Complete returns suggestions for query capped at Options.Limit.
func (c *Completer) Complete(query string) ([]Suggestion, error) {
	return c.CompleteN(query, c.opts.Limit)
}

// CompleteN returns suggestions for query capped at limit (<= 0 means no cap).
// An empty query returns no suggestions and no error.
func (c *Completer) CompleteN(query string, limit int) ([]Suggestion, error) {
	if query == "" {
		return []Suggestion{}, nil
	}
	return c.CompleteQuery(Query{Text: query, Limit: limit, Fuzzy: true})
}

// CompleteQuery returns suggestions for q.
//
// Phrases containing q.Text come first, best score first. When none of them
// reaches Options.Threshold and fuzzy matching is on for both the completer
// and q, phrases with a word (or the whole phrase) within
// Options.MaxEditDistance of the query are added after them, closest first,
// then best score first. Ties keep insertion order. The case settings of q
// apply to the substring phase only.
func (c *Completer) CompleteQuery(q Query) ([]Suggestion, error) {
	if q.Text == "" {
		return nil, ErrEmptyQuery
	}
	if _, err := c.index.Validate(q.Text); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if cached, ok := c.cache.Get(q); ok {
		return cached, nil
	}

	start := time.Now()
	cfg := c.opts.Score
	mode := q.CaseMode()

	hits := c.index.Search(q.Text)
	cands := make([]score.Candidate, 0, len(hits))
	exact := make(map[int]struct{}, len(hits))
	for _, phrase := range hits {
		positions := cfg.SubstringPositionsMode(q.Text, phrase, mode)
		if positions == nil {
			// only found with case folded
			continue
		}
		order := c.index.Order(phrase)
		exact[order] = struct{}{}
		cands = append(cands, score.Candidate{
			Match: score.Match{
				Query:     q.Text,
				Phrase:    phrase,
				Positions: positions,
			},
			Tier:  score.TierSubstring,
			Order: order,
		})
	}

	ranked := score.RankAndFilter(cands, cfg, c.opts.Threshold)
	usedFuzzy := false
	if len(ranked) == 0 && q.Fuzzy && c.fuzzyEligible(q.Text) {
		cands = append(cands, c.fuzzyCandidates(q.Text, exact)...)
		ranked = score.RankAndFilter(cands, cfg, c.opts.Threshold)
		usedFuzzy = true
	}

	if q.Limit > 0 && len(ranked) > q.Limit {
		ranked = ranked[:q.Limit]
	}

	out := make([]Suggestion, len(ranked))
	for i, cand := range ranked {
		out[i] = Suggestion{
			Phrase:   cand.Phrase,
			Score:    cand.Score,
			Distance: cand.Distance,
			Fuzzy:    cand.Tier == score.TierFuzzy,
		}
	}

	c.log.Debug("Completed query",
		"query", q.Text,
		"case", mode,
		"substring", len(exact),
		"fuzzy", usedFuzzy,
		"results", len(out),
		"took", time.Since(start))

	c.cache.Put(q, out)
	return out, nil
}

func (c *Completer) fuzzyEligible(query string) bool {
	return c.opts.Fuzzy && utf8.RuneCountInString(query) >= c.opts.MinFuzzyLength
}

type fuzzyHit struct {
	distance int
	key      string
}

// fuzzyCandidates returns one candidate per phrase, outside exact, that has a
// lexicon key within MaxEditDistance of query. The closest key wins, and the
// query is aligned inside that key's span of the phrase.
func (c *Completer) fuzzyCandidates(query string, exact map[int]struct{}) []score.Candidate {
	folded := string(utils.FoldRunes(query))
	best := make(map[int]fuzzyHit)

	c.lexicon.visit(folded, c.opts.PruneFirstRune, func(key string, orders []int) {
		d, ok, err := c.calc.Within(folded, key, c.opts.MaxEditDistance)
		if err != nil {
			c.log.Debug("Skipped fuzzy key", "key", key, "err", err)
			return
		}
		if !ok {
			return
		}
		for _, order := range orders {
			if _, isExact := exact[order]; isExact {
				continue
			}
			prev, seen := best[order]
			if !seen || d < prev.distance || (d == prev.distance && key < prev.key) {
				best[order] = fuzzyHit{distance: d, key: key}
			}
		}
	})

	delimiters := c.opts.Score.WordDelimiters
	cands := make([]score.Candidate, 0, len(best))
	for order, hit := range best {
		phrase, ok := c.index.Phrase(order)
		if !ok {
			continue
		}
		from, to := keySpan(phrase, hit.key, delimiters)
		cands = append(cands, score.Candidate{
			Match: score.Match{
				Query:     query,
				Phrase:    phrase,
				Positions: score.SubsequencePositionsIn(query, phrase, from, to),
			},
			Distance: hit.distance,
			Tier:     score.TierFuzzy,
			Order:    order,
		})
	}
	return cands
}

// Search returns the raw substring hits for query in insertion order.
func (c *Completer) Search(query string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index.Search(query)
}

// All returns every phrase in insertion order.
func (c *Completer) All() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index.All()
}

// Len returns the number of phrases.
func (c *Completer) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index.Len()
}

// Stats returns counters about the phrase book and cache.
func (c *Completer) Stats() map[string]int {
	c.mu.RLock()
	stats := map[string]int{
		"phrases":     c.index.Len(),
		"nodes":       c.index.Nodes(),
		"lexiconKeys": c.lexicon.size(),
		"maxLength":   c.index.MaxLength(),
	}
	c.mu.RUnlock()

	for k, v := range c.cache.Stats() {
		stats[k] = v
	}
	return stats
}
