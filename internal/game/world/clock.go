// Package world holds the world clock and the flavor tables used for weather,
// random events and NPC generation.
package world

// TimesOfDay is the eight-step day cycle.
var TimesOfDay = []string{
	"Early Morning", "Morning", "Noon", "Afternoon",
	"Evening", "Night", "Late Night", "Pre-Dawn",
}

// TurnsPerStep is how many exploration turns pass per time-of-day step.
const TurnsPerStep = 3

// ClockStep reports how one exploration turn moved the clock.
type ClockStep struct {
	TimeOfDay string
	Stepped   bool
	NewDay    bool
}

// AdvanceClock computes the time of day after turn has been reached. The
// clock steps only on every third turn; wrapping back to the first step starts
// a new day. An unknown current value is treated as the first step.
func AdvanceClock(turn int, current string) ClockStep {
	idx := indexOf(current)
	if turn%TurnsPerStep != 0 {
		return ClockStep{TimeOfDay: TimesOfDay[idx]}
	}
	next := (idx + 1) % len(TimesOfDay)
	return ClockStep{TimeOfDay: TimesOfDay[next], Stepped: true, NewDay: next == 0}
}

// ValidTimeOfDay reports whether s is one of TimesOfDay.
func ValidTimeOfDay(s string) bool {
	for _, t := range TimesOfDay {
		if t == s {
			return true
		}
	}
	return false
}

func indexOf(s string) int {
	for i, t := range TimesOfDay {
		if t == s {
			return i
		}
	}
	return 0
}
