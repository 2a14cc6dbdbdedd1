// Package suggest is the query pipeline: it owns the phrase index, answers
// completions from substring hits, falls back to edit distance matching when
// those are missing or weak, and ranks everything with pkg/score.
package suggest

// ICompleter defines the interface for phrase completion engines
type ICompleter interface {
	// Complete returns ranked suggestions using the configured limit
	Complete(query string) ([]Suggestion, error)

	// CompleteN returns ranked suggestions capped at limit (<= 0 means no cap)
	CompleteN(query string, limit int) ([]Suggestion, error)

	// CompleteQuery returns ranked suggestions for a fully specified query
	CompleteQuery(q Query) ([]Suggestion, error)

	// Insert adds a phrase to the phrase book
	Insert(phrase string) error

	// Stats returns statistics about the loaded phrase book
	Stats() map[string]int
}
