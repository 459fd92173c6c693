package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Bounds accepted for dice expressions.
const (
	MinCount = 1
	MaxCount = 100
	MinSides = 1
	MaxSides = 100
)

// Expression represents a parsed dice expression ready to be rolled.
// Precondition: Count in [MinCount, MaxCount], Sides in [MinSides, MaxSides] after successful Parse.
type Expression struct {
	Raw   string // normalised input, e.g. "3d6"
	Count int    // number of dice
	Sides int    // faces per die
}

// Parse parses an "NdM" dice expression. The count defaults to 1 when omitted ("d20").
//
// Precondition: expr must be a non-empty string.
// Postcondition: Returns an Expression within bounds or a descriptive error.
func Parse(expr string) (Expression, error) {
	if expr == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}

	s := strings.ToLower(strings.TrimSpace(expr))
	dIdx := strings.Index(s, "d")
	if dIdx < 0 {
		return Expression{}, fmt.Errorf("dice: missing 'd' in expression %q", expr)
	}

	count := 1
	if countStr := s[:dIdx]; countStr != "" {
		var err error
		count, err = strconv.Atoi(countStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", expr, err)
		}
	}
	sides, err := strconv.Atoi(s[dIdx+1:])
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", expr, err)
	}

	if count < MinCount || count > MaxCount {
		return Expression{}, fmt.Errorf("dice: count must be %d-%d, got %d", MinCount, MaxCount, count)
	}
	if sides < MinSides || sides > MaxSides {
		return Expression{}, fmt.Errorf("dice: sides must be %d-%d, got %d", MinSides, MaxSides, sides)
	}

	return Expression{Raw: s, Count: count, Sides: sides}, nil
}

// String renders the canonical "NdM" form.
func (e Expression) String() string {
	return fmt.Sprintf("%dd%d", e.Count, e.Sides)
}
