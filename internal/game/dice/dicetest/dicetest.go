// Package dicetest provides deterministic dice sources for tests.
package dicetest

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/wasteland/internal/game/dice"
)

// Scripted is a Source that replays a fixed list of die faces.
// Each Intn call consumes one face and returns face-1, so a roll of a die
// with n sides yields exactly the scripted face. Once exhausted it repeats
// the last face.
type Scripted struct {
	faces []int
	next  int
}

// Faces returns a Scripted source replaying faces in order.
//
// Precondition: len(faces) > 0.
func Faces(faces ...int) *Scripted {
	return &Scripted{faces: faces}
}

// Intn returns the next scripted face minus one, clamped into [0, n).
func (s *Scripted) Intn(n int) int {
	i := s.next
	if i >= len(s.faces) {
		i = len(s.faces) - 1
	} else {
		s.next++
	}
	v := s.faces[i] - 1
	if v < 0 {
		v = 0
	}
	if v >= n {
		v = n - 1
	}
	return v
}

// Consumed reports how many faces have been drawn.
func (s *Scripted) Consumed() int {
	return s.next
}

// Roller wraps src in a dice.Roller with a no-op logger.
func Roller(src dice.Source) *dice.Roller {
	return dice.NewLoggedRoller(src, zap.NewNop())
}
