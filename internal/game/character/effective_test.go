package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wasteland/internal/game/character"
	"github.com/cory-johannsen/wasteland/internal/game/condition"
)

func TestEffective_NoModifiers(t *testing.T) {
	p := newJake(t)
	attrs, mods := character.Effective(p)
	assert.Equal(t, 7, attrs[character.PER])
	assert.Empty(t, mods)
}

// At exactly 1000 rads only the Lethal tier applies.
func TestEffective_RadiationIsAStepFunction(t *testing.T) {
	p := newJake(t)
	p.Rads = 1000
	attrs, mods := character.Effective(p)
	assert.Equal(t, 1, attrs[character.STR]) // 4 - 4
	assert.Equal(t, 4, attrs[character.PER]) // 7 - 3
	assert.Equal(t, 1, attrs[character.END]) // 5 - 4
	assert.Equal(t, 3, attrs[character.AGI])
	assert.Equal(t, 3, attrs[character.LCK])
	assert.Equal(t, 4, attrs[character.CHA])
	require.Len(t, mods[character.STR], 1)
	assert.Equal(t, character.Modifier{Source: "Radiation (Lethal)", Delta: -4}, mods[character.STR][0])
}

func TestEffective_MinorTier(t *testing.T) {
	p := newJake(t)
	p.Rads = 250
	attrs, _ := character.Effective(p)
	assert.Equal(t, 4, attrs[character.END])
	assert.Equal(t, 4, attrs[character.STR])
}

func TestEffective_StatusEffectsStackAndClamp(t *testing.T) {
	p := newJake(t)
	p.StatusEffects.Add(condition.Effect{Name: "Enhanced Cognition", Remaining: 3, StatMods: map[string]int{"INT": 2}})
	p.StatusEffects.Add(condition.Effect{Name: "Focus", Remaining: 3, StatMods: map[string]int{"INT": 2}})
	attrs, mods := character.Effective(p)
	assert.Equal(t, 10, attrs[character.INT]) // 8 + 4 clamped
	assert.Len(t, mods[character.INT], 2)
	assert.Equal(t, 8, p.Special.INT, "base value must not change")
}

func TestRadiationTierFor(t *testing.T) {
	_, ok := character.RadiationTierFor(199)
	assert.False(t, ok)
	tier, ok := character.RadiationTierFor(799)
	require.True(t, ok)
	assert.Equal(t, "Severe", tier.Label)
}

// Property: effective attributes always lie in [1, 10] and at most one radiation tier contributes.
func TestProperty_Effective_ClampedAndSingleTier(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := &character.Player{
			Special: character.SpecialFromSlice(rapid.SliceOfN(rapid.IntRange(1, 10), 7, 7).Draw(rt, "special")),
			Rads:    rapid.IntRange(0, 2000).Draw(rt, "rads"),
		}
		delta := rapid.IntRange(-15, 15).Draw(rt, "delta")
		p.StatusEffects.Add(condition.Effect{Name: "e", Remaining: 1, StatMods: map[string]int{"STR": delta}})
		attrs, mods := character.Effective(p)
		for _, a := range character.Attributes {
			if attrs[a] < 1 || attrs[a] > 10 {
				rt.Fatalf("%s = %d out of range", a, attrs[a])
			}
			radiation := 0
			for _, m := range mods[a] {
				if len(m.Source) >= 9 && m.Source[:9] == "Radiation" {
					radiation++
				}
			}
			if radiation > 1 {
				rt.Fatalf("%s received %d radiation modifiers", a, radiation)
			}
		}
	})
}
