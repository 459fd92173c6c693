package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wasteland/internal/game/world"
)

func TestAdvanceClock_StepsEveryThirdTurn(t *testing.T) {
	s := world.AdvanceClock(1, "Early Morning")
	assert.False(t, s.Stepped)
	assert.Equal(t, "Early Morning", s.TimeOfDay)

	s = world.AdvanceClock(3, "Early Morning")
	assert.True(t, s.Stepped)
	assert.False(t, s.NewDay)
	assert.Equal(t, "Morning", s.TimeOfDay)
}

func TestAdvanceClock_WrapStartsNewDay(t *testing.T) {
	s := world.AdvanceClock(24, "Pre-Dawn")
	assert.True(t, s.NewDay)
	assert.Equal(t, "Early Morning", s.TimeOfDay)
}

func TestAdvanceClock_UnknownTreatedAsFirst(t *testing.T) {
	s := world.AdvanceClock(3, "Brunch")
	assert.Equal(t, "Morning", s.TimeOfDay)
}

// Property: a full day takes exactly 24 turns from Early Morning.
func TestProperty_AdvanceClock_DayIs24Turns(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		days := rapid.IntRange(1, 5).Draw(rt, "days")
		tod := world.TimesOfDay[0]
		newDays := 0
		for turn := 1; turn <= days*24; turn++ {
			s := world.AdvanceClock(turn, tod)
			tod = s.TimeOfDay
			if s.NewDay {
				newDays++
			}
		}
		if newDays != days || tod != world.TimesOfDay[0] {
			rt.Fatalf("after %d days: %d rollovers, time %q", days, newDays, tod)
		}
	})
}
