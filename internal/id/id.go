package id

import (
	"fmt"
	"strconv"
	"strings"
)

// Generator hands out transaction IDs from a monotonic counter.
// IDs start at 1 and are never reused within a session.
type Generator struct {
	last int64
}

// NewGenerator returns a Generator whose first ID is 1.
func NewGenerator() *Generator {
	return &Generator{}
}

// Next returns the next unused ID.
func (g *Generator) Next() int64 {
	g.last++
	return g.last
}

// Last returns the most recently issued ID, or 0 if none.
func (g *Generator) Last() int64 {
	return g.last
}

// Format renders an ID the way it is shown to users.
func Format(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Parse reads a user-supplied ID. Leading "#" is tolerated.
func Parse(s string) (int64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid transaction ID %q: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid transaction ID %q: must be positive", s)
	}
	return n, nil
}
