package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/combat"
	"github.com/cory-johannsen/wasteland/internal/game/condition"
	"github.com/cory-johannsen/wasteland/internal/game/dice"
	"github.com/cory-johannsen/wasteland/internal/game/dice/dicetest"
)

func TestRollDamage_FaceMapping(t *testing.T) {
	res, err := combat.RollDamage(dicetest.Roller(dicetest.Faces(1, 2, 3, 4, 5, 6)), 6, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, res.Dice)
	assert.Equal(t, 5, res.BaseDamage)
	assert.Equal(t, 7, res.TotalDamage)
	assert.Equal(t, []string{combat.SpecialEffect, combat.SpecialEffect}, res.Effects)
	assert.Len(t, res.Details, 6)
}

func TestRollDamage_CountBounds(t *testing.T) {
	for _, n := range []int{0, -1, combat.MaxDamageDice + 1} {
		_, err := combat.RollDamage(dicetest.Roller(dicetest.Faces(1)), n, 0)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidInput(err))
	}
}

func TestPlayerDamage_APAddsDice(t *testing.T) {
	p := jake(t)
	p.AP = 3
	res, err := combat.PlayerDamage(dicetest.Roller(dicetest.Faces(2)), p, 1, 0, 2)
	require.NoError(t, err)
	assert.Len(t, res.Dice, 3)
	assert.Equal(t, 6, res.TotalDamage)
	assert.Equal(t, 2, res.APSpent)
	assert.Equal(t, 1, p.AP)
}

func TestPlayerDamage_InsufficientAPLeavesPoolUntouched(t *testing.T) {
	p := jake(t)
	p.AP = 1
	_, err := combat.PlayerDamage(dicetest.Roller(dicetest.Faces(2)), p, 1, 0, 2)
	require.Error(t, err)
	assert.True(t, errors.IsInsufficientResource(err))
	assert.Equal(t, 1, p.AP)
}

func TestPlayerDamage_APSpendCapped(t *testing.T) {
	p := jake(t)
	p.AP = 10
	_, err := combat.PlayerDamage(dicetest.Roller(dicetest.Faces(2)), p, 1, 0, combat.MaxDamageAP+1)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
	assert.Equal(t, 10, p.AP)
}

func TestPlayerDamage_EffectBonus(t *testing.T) {
	p := jake(t)
	p.StatusEffects.Add(condition.Effect{Name: "Psycho", Remaining: 3, DamageBonus: 3})
	res, err := combat.PlayerDamage(dicetest.Roller(dicetest.Faces(3)), p, 2, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.BaseDamage)
	assert.Equal(t, 1, res.Bonus)
	assert.Equal(t, 3, res.EffectBonus)
	assert.Equal(t, 4, res.TotalDamage)
}

func TestProperty_RollDamageBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, combat.MaxDamageDice).Draw(rt, "count")
		bonus := rapid.IntRange(-5, 10).Draw(rt, "bonus")
		seed := rapid.Uint64().Draw(rt, "seed")

		res, err := combat.RollDamage(dicetest.Roller(dice.NewSeededSource(seed)), count, bonus)
		if err != nil {
			rt.Fatal(err)
		}
		if len(res.Dice) != count {
			rt.Fatalf("rolled %d dice, want %d", len(res.Dice), count)
		}
		if res.BaseDamage < 0 || res.BaseDamage > 2*count {
			rt.Fatalf("base damage %d out of range for %d dice", res.BaseDamage, count)
		}
		if res.TotalDamage != res.BaseDamage+bonus {
			rt.Fatalf("total %d != base %d + bonus %d", res.TotalDamage, res.BaseDamage, bonus)
		}
		if len(res.Effects) > count {
			rt.Fatalf("%d effects from %d dice", len(res.Effects), count)
		}
	})
}
