package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/character"
	"github.com/cory-johannsen/wasteland/internal/game/condition"
)

type fixedD20 int

func (f fixedD20) D20() int { return int(f) }

func TestHurt_DownsAndIncapacitates(t *testing.T) {
	p := newJake(t)
	ch, err := p.Hurt(80)
	require.NoError(t, err)
	assert.Equal(t, 0, ch.After)
	assert.True(t, ch.Downed)
	assert.True(t, p.StatusEffects.Has(condition.Incapacitated))

	// A second hit does not stack another Incapacitated.
	_, err = p.Hurt(5)
	require.NoError(t, err)
	assert.Len(t, p.StatusEffects, 1)
}

func TestHeal_RemovesIncapacitated(t *testing.T) {
	p := newJake(t)
	_, _ = p.Hurt(50)
	ch, err := p.Heal(10)
	require.NoError(t, err)
	assert.True(t, ch.Revived)
	assert.Equal(t, 10, p.HP)
	assert.False(t, p.StatusEffects.Has(condition.Incapacitated))
}

func TestHeal_CapsAtMax(t *testing.T) {
	p := newJake(t)
	ch, err := p.Heal(999)
	require.NoError(t, err)
	assert.Equal(t, p.MaxHP, ch.After)
}

func TestHurt_RejectsNegative(t *testing.T) {
	p := newJake(t)
	_, err := p.Hurt(-1)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestResources_FloorAtZero(t *testing.T) {
	p := newJake(t)
	assert.Equal(t, 0, p.AdjustRads(-10).After)
	assert.Equal(t, 0, p.AdjustCaps(-500).After)
	assert.Equal(t, 0, p.AdjustAP(-3).After)
	assert.Equal(t, 3, p.AdjustAP(3).After)
}

func TestSpendAP_Insufficient(t *testing.T) {
	p := newJake(t)
	p.AdjustAP(1)
	err := p.SpendAP(2)
	require.Error(t, err)
	assert.True(t, errors.IsInsufficientResource(err))
	assert.Equal(t, 1, p.AP)
	require.NoError(t, p.SpendAP(1))
	assert.Equal(t, 0, p.AP)
}

func TestInventory_StackAndRemove(t *testing.T) {
	p := newJake(t)
	n, err := p.AddItem("Stimpak", 3)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = p.RemoveItem("Stimpak", 6)
	assert.True(t, errors.IsInsufficientResource(err))
	assert.Equal(t, 5, p.Inventory["Stimpak"])

	n, err = p.RemoveItem("Stimpak", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	_, present := p.Inventory["Stimpak"]
	assert.False(t, present)
}

func TestSkillUp_Caps(t *testing.T) {
	p := newJake(t)
	before, after, err := p.SkillUp(character.Science, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, before)
	assert.Equal(t, 6, after)

	_, _, err = p.SkillUp(character.Science, 0)
	assert.Error(t, err)
}

func TestUseItem_Stimpak(t *testing.T) {
	p := newJake(t)
	_, _ = p.Hurt(20)
	res, err := p.UseItem("Stimpak", condition.DefaultRegistry(), fixedD20(20))
	require.NoError(t, err)
	assert.Equal(t, 45, p.HP)
	assert.Equal(t, 1, p.Inventory["Stimpak"])
	assert.Equal(t, []string{"HP: 30 -> 45"}, res.Effects)
}

func TestUseItem_AddictionOnLowRoll(t *testing.T) {
	p := newJake(t)
	_, _ = p.AddItem("Psycho", 1)
	res, err := p.UseItem("Psycho", condition.DefaultRegistry(), fixedD20(3))
	require.NoError(t, err)
	assert.True(t, res.Addicted)
	assert.True(t, p.StatusEffects.Has("Rage"))
	assert.True(t, p.StatusEffects.Has("Psycho Addiction"))
}

func TestUseItem_NoAddictionOnHighRoll(t *testing.T) {
	p := newJake(t)
	_, _ = p.AddItem("Jet", 1)
	res, err := p.UseItem("Jet", condition.DefaultRegistry(), fixedD20(4))
	require.NoError(t, err)
	assert.False(t, res.Addicted)
	assert.False(t, p.StatusEffects.Has("Jet Addiction"))
}

func TestUseItem_NotConsumable(t *testing.T) {
	p := newJake(t)
	_, err := p.UseItem("10mm Pistol", condition.DefaultRegistry(), fixedD20(20))
	assert.True(t, errors.IsInvalidInput(err))
	assert.Equal(t, 1, p.Inventory["10mm Pistol"])
}

func TestUseItem_NotHeld(t *testing.T) {
	p := newJake(t)
	_, err := p.UseItem("RadAway", condition.DefaultRegistry(), fixedD20(20))
	assert.True(t, errors.IsInsufficientResource(err))
}

func TestRest_HealsAndClearsTemporary(t *testing.T) {
	p := newJake(t)
	_, _ = p.Hurt(30)
	p.StatusEffects.Add(condition.Effect{Name: "Rage", Remaining: 2})
	p.StatusEffects.Add(condition.Effect{Name: "Jet Addiction", Remaining: condition.Permanent})
	res := p.Rest(4)
	assert.Equal(t, 20, res.HPRestored)
	assert.Equal(t, "40/50", res.HP)
	assert.Equal(t, []string{"Rage"}, res.EffectsCleared)
	assert.True(t, p.StatusEffects.Has("Jet Addiction"))
}

func TestInitiative_OrderedByEffectivePerAgi(t *testing.T) {
	jake := newJake(t) // PER 7 + AGI 6
	sarah, err := character.NewPlayer("sarah", "Wastelander", "Scout",
		character.Special{STR: 4, PER: 8, END: 5, CHA: 4, INT: 5, AGI: 8, LCK: 6}, []string{"Sneak", "Survival", "Speech"})
	require.NoError(t, err)
	order := character.Initiative(map[string]*character.Player{"Jake": jake, "Sarah": sarah})
	require.Len(t, order, 2)
	assert.Equal(t, "Sarah", order[0].Player)
	assert.Equal(t, 16, order[0].Initiative)
	assert.Equal(t, 13, order[1].Initiative)
}

// Property: no sequence of mutations breaks 0 <= hp <= max_hp or drives a resource negative.
func TestProperty_MutatorsPreserveInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p, err := character.NewPlayer("x", "c", "b", character.Special{STR: 6, PER: 6, END: 6, CHA: 6, INT: 6, AGI: 5, LCK: 5}, []string{"Barter", "Melee", "Repair"})
		if err != nil {
			rt.Fatal(err)
		}
		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			amt := rapid.IntRange(-100, 100).Draw(rt, "amount")
			switch rapid.IntRange(0, 4).Draw(rt, "op") {
			case 0:
				_, _ = p.Hurt(amt)
			case 1:
				_, _ = p.Heal(amt)
			case 2:
				p.AdjustRads(amt)
			case 3:
				p.AdjustCaps(amt)
			case 4:
				p.AdjustAP(amt)
			}
			if p.HP < 0 || p.HP > p.MaxHP || p.AP < 0 || p.Caps < 0 || p.Rads < 0 {
				rt.Fatalf("invariant broken: %+v", p)
			}
			if (p.HP == 0) != p.StatusEffects.Has(condition.Incapacitated) {
				rt.Fatalf("Incapacitated out of step with hp %d", p.HP)
			}
		}
	})
}
