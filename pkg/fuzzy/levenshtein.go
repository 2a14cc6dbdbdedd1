// Package fuzzy measures how far a query is from a candidate string.
package fuzzy

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// DefaultMaxLength is the longest input, in runes, a Calculator accepts.
const DefaultMaxLength = 256

// ErrLengthExceeded is returned when an input is longer than the calculator's
// maximum length. Inputs are never truncated.
var ErrLengthExceeded = errors.New("input exceeds maximum length")

// Calculator computes Levenshtein distances over runes with unit costs for
// insertion, deletion and substitution. It holds no mutable state and is safe
// for concurrent use.
type Calculator struct {
	maxLength int
}

// NewCalculator returns a calculator that rejects inputs longer than
// maxLength runes. maxLength <= 0 selects DefaultMaxLength.
func NewCalculator(maxLength int) *Calculator {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Calculator{maxLength: maxLength}
}

// MaxLength returns the rune limit for inputs.
func (c *Calculator) MaxLength() int {
	return c.maxLength
}

func (c *Calculator) runes(s string) ([]rune, error) {
	if n := utf8.RuneCountInString(s); n > c.maxLength {
		return nil, fmt.Errorf("%w: %d runes, max %d", ErrLengthExceeded, n, c.maxLength)
	}
	return []rune(s), nil
}

// Distance returns the edit distance between a and b using the full
// (len(a)+1) x (len(b)+1) matrix.
func (c *Calculator) Distance(a, b string) (int, error) {
	ra, err := c.runes(a)
	if err != nil {
		return 0, err
	}
	rb, err := c.runes(b)
	if err != nil {
		return 0, err
	}
	if len(ra) == 0 {
		return len(rb), nil
	}
	if len(rb) == 0 {
		return len(ra), nil
	}
	if a == b {
		return 0, nil
	}

	m, n := len(ra), len(rb)
	matrix := make([][]int, m+1)
	for i := range matrix {
		matrix[i] = make([]int, n+1)
		matrix[i][0] = i
	}
	for j := 0; j <= n; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if ra[i-1] == rb[j-1] {
				matrix[i][j] = matrix[i-1][j-1]
				continue
			}
			matrix[i][j] = 1 + min(
				matrix[i][j-1],   // insertion
				matrix[i-1][j],   // deletion
				matrix[i-1][j-1], // substitution
			)
		}
	}
	return matrix[m][n], nil
}

// Within reports whether a and b are at most maxDist edits apart.
// When they are, the exact distance is returned; otherwise the distance is
// reported as maxDist+1 and the computation stops as soon as every cell of a
// row exceeds maxDist.
func (c *Calculator) Within(a, b string, maxDist int) (int, bool, error) {
	ra, err := c.runes(a)
	if err != nil {
		return 0, false, err
	}
	rb, err := c.runes(b)
	if err != nil {
		return 0, false, err
	}
	if maxDist < 0 {
		return 0, false, nil
	}

	la, lb := len(ra), len(rb)
	// length difference alone is a lower bound on the distance
	if abs(la-lb) > maxDist {
		return maxDist + 1, false, nil
	}
	if la == 0 || lb == 0 {
		d := max(la, lb)
		return d, d <= maxDist, nil
	}

	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		cur[0] = i
		rowMin := cur[0]
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
			rowMin = min(rowMin, cur[j])
		}
		if rowMin > maxDist {
			return maxDist + 1, false, nil
		}
		prev, cur = cur, prev
	}

	d := prev[lb]
	if d > maxDist {
		return maxDist + 1, false, nil
	}
	return d, true, nil
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
