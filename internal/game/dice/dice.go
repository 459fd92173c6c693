// Package dice provides the core randomness abstraction and roll-result types
// for the wasteland rules engine.
package dice

import "fmt"

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum(Dice).
type RollResult struct {
	Expression string // original expression string, e.g. "3d6"
	Dice       []int  // individual die results
}

// Total returns the sum of all die results.
//
// Postcondition: return value == sum(r.Dice).
func (r RollResult) Total() int {
	total := 0
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// Min returns the lowest die, or 0 for an empty roll.
func (r RollResult) Min() int {
	if len(r.Dice) == 0 {
		return 0
	}
	m := r.Dice[0]
	for _, d := range r.Dice[1:] {
		if d < m {
			m = d
		}
	}
	return m
}

// Max returns the highest die, or 0 for an empty roll.
func (r RollResult) Max() int {
	m := 0
	for _, d := range r.Dice {
		if d > m {
			m = d
		}
	}
	return m
}

// String returns a human-readable audit string in the format:
//
//	"3d6 → [4 5 1] = 10"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v = %d", r.Expression, r.Dice, r.Total())
}

// Source is the randomness provider for dice rolls.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
