package utils

// SeenFilter drops repeated strings while keeping first-seen order
type SeenFilter struct {
	seen map[string]struct{}
}

// NewSeenFilter creates a new filter sized for n entries
func NewSeenFilter(n int) *SeenFilter {
	return &SeenFilter{seen: make(map[string]struct{}, n)}
}

// ShouldInclude reports whether s has not been seen yet and marks it seen
func (f *SeenFilter) ShouldInclude(s string) bool {
	if _, ok := f.seen[s]; ok {
		return false
	}
	f.seen[s] = struct{}{}
	return true
}

// Len returns how many distinct strings were seen
func (f *SeenFilter) Len() int {
	return len(f.seen)
}
