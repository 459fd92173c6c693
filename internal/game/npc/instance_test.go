package npc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/npc"
)

func TestTierForHP_Banding(t *testing.T) {
	cases := []struct{ hp, tier int }{
		{1, 1}, {15, 1}, {16, 2}, {25, 2}, {26, 3}, {45, 3}, {46, 4}, {80, 4}, {81, 5}, {500, 5},
	}
	for _, c := range cases {
		assert.Equal(t, c.tier, npc.TierForHP(c.hp), "hp %d", c.hp)
	}
}

func TestNewCustom_Validates(t *testing.T) {
	e, err := npc.NewCustom(25, "3D6", 10, "Common", "Negotiable")
	require.NoError(t, err)
	assert.Equal(t, 2, e.Tier)
	assert.Equal(t, "3d6", e.Damage)
	assert.Equal(t, "common", e.Drops)
	assert.Equal(t, npc.Alive, e.Status)

	_, err = npc.NewCustom(0, "3d6", 10, "common", "")
	assert.True(t, errors.IsInvalidInput(err))
	_, err = npc.NewCustom(10, "3x6", 10, "common", "")
	assert.True(t, errors.IsInvalidInput(err))
	_, err = npc.NewCustom(10, "3d6", 21, "common", "")
	assert.True(t, errors.IsInvalidInput(err))
	_, err = npc.NewCustom(10, "3d6", 10, "gold", "")
	assert.True(t, errors.IsInvalidInput(err))
}

func TestEnemy_Hurt_KillsOnce(t *testing.T) {
	e := npc.NewFromTemplate(mustTemplate(t, "Radroach"))
	res, err := e.Hurt("Radroach", 25)
	require.NoError(t, err)
	assert.True(t, res.Killed)
	assert.Equal(t, 0, e.HP)
	assert.Equal(t, npc.Dead, e.Status)

	_, err = e.Hurt("Radroach", 5)
	assert.True(t, errors.IsInvalidInput(err))
	assert.Equal(t, 0, e.HP)

	res, err = e.Hurt("Radroach", 0)
	require.NoError(t, err)
	assert.False(t, res.Killed)
}

func TestEnemy_Hurt_NegativeHealsAndRevives(t *testing.T) {
	e := npc.NewFromTemplate(mustTemplate(t, "Radroach"))
	_, _ = e.Hurt("Radroach", 10)
	res, err := e.Hurt("Radroach", -50)
	require.NoError(t, err)
	assert.True(t, res.Revived)
	assert.Equal(t, 10, e.HP)
	assert.True(t, e.IsAlive())
}

// Property: any sequence of hurts keeps hp in [0, max_hp] and flips to dead at most once.
func TestProperty_Enemy_HurtZeroFloor(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hp := rapid.IntRange(1, 200).Draw(rt, "hp")
		e, err := npc.NewCustom(hp, "2d6", 10, "junk", "")
		if err != nil {
			rt.Fatal(err)
		}
		kills := 0
		for _, amt := range rapid.SliceOfN(rapid.IntRange(0, 60), 1, 30).Draw(rt, "hits") {
			res, err := e.Hurt("x", amt)
			if err == nil && res.Killed {
				kills++
			}
			if e.HP < 0 || e.HP > e.MaxHP {
				rt.Fatalf("hp %d out of range", e.HP)
			}
		}
		if kills > 1 {
			rt.Fatalf("killed %d times", kills)
		}
		if (e.HP == 0) != (e.Status == npc.Dead) {
			rt.Fatalf("status %s with hp %d", e.Status, e.HP)
		}
	})
}

func mustTemplate(t *testing.T, name string) *npc.Template {
	t.Helper()
	tmpl, ok := npc.DefaultTemplates().Get(name)
	require.True(t, ok)
	return tmpl
}
