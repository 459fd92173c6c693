package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wasteland/internal/game/condition"
)

func rage(remaining int) condition.Effect {
	return condition.Effect{Name: "Rage", Remaining: remaining, Source: "Psycho", StatMods: map[string]int{"END": 1}, DamageBonus: 3}
}

func addiction() condition.Effect {
	return condition.Effect{Name: "Psycho Addiction", Remaining: condition.Permanent, Source: "addiction"}
}

func TestEffects_AddHasRemove(t *testing.T) {
	var e condition.Effects
	e.Add(rage(3))
	e.Add(rage(1))
	assert.True(t, e.Has("Rage"))
	assert.Equal(t, 2, e.Remove("Rage"))
	assert.False(t, e.Has("Rage"))
}

func TestEffects_Remove_NotPresent_NoOp(t *testing.T) {
	var e condition.Effects
	assert.Equal(t, 0, e.Remove("nonexistent"))
	assert.Empty(t, e)
}

// An effect added with remaining 3 survives two ticks and is reported expired on the third.
func TestEffects_Tick_ExpiresOnThirdAdvance(t *testing.T) {
	var e condition.Effects
	e.Add(rage(3))

	r1 := e.Tick()
	assert.Empty(t, r1.Expired)
	require.Len(t, r1.Active, 1)
	assert.Equal(t, 2, r1.Active[0].Remaining)

	r2 := e.Tick()
	assert.Empty(t, r2.Expired)
	assert.Equal(t, 1, r2.Active[0].Remaining)

	r3 := e.Tick()
	assert.Equal(t, []string{"Rage"}, r3.Expired)
	assert.Empty(t, r3.Active)
	assert.False(t, e.Has("Rage"))
}

func TestEffects_Tick_ZeroRemainingExpiresImmediately(t *testing.T) {
	e := condition.Effects{{Name: "Dazed", Remaining: 0}}
	r := e.Tick()
	assert.Equal(t, []string{"Dazed"}, r.Expired)
	assert.Empty(t, e)
}

func TestEffects_Tick_PreservesOrder(t *testing.T) {
	e := condition.Effects{
		{Name: "A", Remaining: 5},
		{Name: "B", Remaining: 1},
		{Name: "C", Remaining: condition.Permanent},
		{Name: "D", Remaining: 2},
	}
	r := e.Tick()
	assert.Equal(t, []string{"B"}, r.Expired)
	names := make([]string, 0, len(e))
	for _, eff := range e {
		names = append(names, eff.Name)
	}
	assert.Equal(t, []string{"A", "C", "D"}, names)
}

func TestEffects_ClearTemporary_KeepsPermanent(t *testing.T) {
	var e condition.Effects
	e.Add(rage(3))
	e.Add(addiction())
	cleared := e.ClearTemporary()
	assert.Equal(t, []string{"Rage"}, cleared)
	assert.True(t, e.Has("Psycho Addiction"))
	assert.Len(t, e, 1)
}

// Property: a permanent effect survives any number of ticks unchanged.
func TestProperty_Tick_PermanentNeverExpires(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 200).Draw(rt, "ticks")
		var e condition.Effects
		e.Add(addiction())
		for i := 0; i < n; i++ {
			r := e.Tick()
			if len(r.Expired) != 0 {
				rt.Fatalf("permanent effect expired on tick %d", i+1)
			}
		}
		if len(e) != 1 || e[0].Remaining != condition.Permanent {
			rt.Fatalf("permanent effect changed: %+v", e)
		}
	})
}

// Property: an effect with remaining r > 0 expires on exactly the r-th tick.
func TestProperty_Tick_ExpiresExactlyAtRemaining(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := rapid.IntRange(1, 50).Draw(rt, "remaining")
		var e condition.Effects
		e.Add(condition.Effect{Name: "X", Remaining: r})
		for i := 1; i <= r; i++ {
			rep := e.Tick()
			expired := len(rep.Expired) == 1
			if expired != (i == r) {
				rt.Fatalf("tick %d of %d: expired=%v", i, r, expired)
			}
		}
		if e.Has("X") {
			rt.Fatalf("effect still present after %d ticks", r)
		}
	})
}
