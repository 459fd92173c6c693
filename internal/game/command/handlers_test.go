package command_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/character"
	"github.com/cory-johannsen/wasteland/internal/game/combat"
	"github.com/cory-johannsen/wasteland/internal/game/command"
	"github.com/cory-johannsen/wasteland/internal/game/dice/dicetest"
	"github.com/cory-johannsen/wasteland/internal/game/world"
)

// runJSON runs a handler and returns its result the way it is printed.
func runJSON(t *testing.T, env *command.Env, name string, args ...string) (map[string]any, error) {
	t.Helper()
	cmd, ok := env.Registry.Resolve(name)
	require.True(t, ok, "command %q not registered", name)
	out, err := cmd.Handler(env, args)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(out)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m, nil
}

func TestRemovePlayer_DropsPendingAction(t *testing.T) {
	env := newEnv()
	addJake(t, env)
	addSarah(t, env)
	mustRun(t, env, "act", "Jake")

	out := mustRun(t, env, "remove-player", "Jake")
	assert.Equal(t, "Player Jake has been removed", out["message"])
	assert.NotContains(t, env.State.Players, "Jake")
	assert.NotContains(t, env.State.TurnActions, "Jake")

	_, err := run(t, env, "remove-player", "Jake")
	assert.True(t, errors.IsNotFound(err))
}

func TestHeal_RevivesDownedButNotDead(t *testing.T) {
	env := newEnv()
	addJake(t, env)
	mustRun(t, env, "hurt", "Jake", "60")

	out := mustRun(t, env, "heal", "Jake", "10")
	assert.Equal(t, 10, out["hp_after"])
	assert.Equal(t, "Jake is back on their feet", out["message"])

	env.State.Players["Jake"].Dead = true
	_, err := run(t, env, "heal", "Jake", "10")
	assert.True(t, errors.IsInvalidInput(err))

	_, err = run(t, env, "heal", "Sarah", "10")
	assert.True(t, errors.IsNotFound(err))
}

func TestAP_FloorsAtZero(t *testing.T) {
	env := newEnv()
	addJake(t, env)

	out := mustRun(t, env, "ap", "Jake", "3")
	assert.Equal(t, 3, out["ap_after"])
	out = mustRun(t, env, "ap", "Jake", "-5")
	assert.Equal(t, 0, out["ap_after"])
}

func TestInitiative_OrdersByPerceptionAndAgility(t *testing.T) {
	env := newEnv()
	addSarah(t, env)
	addJake(t, env)

	out := mustRun(t, env, "initiative")
	order, ok := out["initiative_order"].([]character.InitiativeEntry)
	require.True(t, ok)
	require.Len(t, order, 2)
	assert.Equal(t, "Jake", order[0].Player)
	assert.Equal(t, 13, order[0].Initiative)
	assert.Equal(t, 10, order[1].Initiative)
}

func TestDamage_APAddsDice(t *testing.T) {
	env := newEnv()
	addJake(t, env)
	mustRun(t, env, "ap", "Jake", "1")
	env.Roller = dicetest.Roller(dicetest.Faces(1, 2, 5))

	out, err := runJSON(t, env, "damage", "Jake", "2", "2", "1")
	require.NoError(t, err)
	assert.Equal(t, "Jake", out["player"])
	assert.Len(t, out["dice"], 3)
	assert.EqualValues(t, 4, out["base_damage"])
	assert.EqualValues(t, 6, out["total_damage"])
	assert.Equal(t, []any{combat.SpecialEffect}, out["effects"])
	assert.Equal(t, 0, env.State.Players["Jake"].AP)

	_, err = run(t, env, "damage", "Jake", "2", "0", "1")
	assert.True(t, errors.IsInsufficientResource(err))
}

func TestUseItem(t *testing.T) {
	env := newEnv()
	addJake(t, env)
	mustRun(t, env, "hurt", "Jake", "20")

	out, err := runJSON(t, env, "use-item", "Jake", "Stimpak")
	require.NoError(t, err)
	assert.Equal(t, []any{"HP: 30 -> 45"}, out["effects"])
	assert.Equal(t, 1, env.State.Players["Jake"].Inventory["Stimpak"])

	_, err = run(t, env, "use-item", "Jake", "10mm", "Pistol")
	assert.True(t, errors.IsInvalidInput(err))

	_, err = run(t, env, "use-item", "Jake", "RadAway")
	assert.True(t, errors.IsInsufficientResource(err))
}

func TestEnemyAttack(t *testing.T) {
	env := newEnv()
	addJake(t, env)
	mustRun(t, env, "enemy-add", "Radroach")

	t.Run("hit", func(t *testing.T) {
		env.Roller = dicetest.Roller(dicetest.Faces(5, 4))
		cmd, _ := env.Registry.Resolve("enemy-attack")
		out, err := cmd.Handler(env, []string{"Radroach", "Jake"})
		require.NoError(t, err)
		res, ok := out.(combat.AttackResult)
		require.True(t, ok)
		assert.True(t, res.Hit)
		assert.Equal(t, 4, res.DamageApplied)
		assert.Equal(t, 46, env.State.Players["Jake"].HP)
	})

	t.Run("fumble", func(t *testing.T) {
		env.Roller = dicetest.Roller(dicetest.Faces(20))
		cmd, _ := env.Registry.Resolve("enemy-attack")
		out, err := cmd.Handler(env, []string{"Radroach", "Jake"})
		require.NoError(t, err)
		res := out.(combat.AttackResult)
		assert.True(t, res.Fumble)
		assert.False(t, res.Hit)
		assert.Equal(t, 46, env.State.Players["Jake"].HP)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := run(t, env, "enemy-attack", "Radroach", "Ghost")
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestEnemyList_ReportsBudget(t *testing.T) {
	env := newEnv()
	addJake(t, env)

	out := mustRun(t, env, "enemy-list")
	assert.Equal(t, "No enemies on the battlefield", out["message"])

	mustRun(t, env, "enemy-add", "Radroach")
	out = mustRun(t, env, "enemy-list")
	assert.Equal(t, 1, out["alive"])
	assert.Equal(t, 10, out["alive_hp"])
	assert.Equal(t, 30, out["hp_budget"])
}

func TestTrade_QuotesWithBarter(t *testing.T) {
	env := newEnv()
	addSarah(t, env)

	out, err := runJSON(t, env, "trade", "Sarah", "100", "buy")
	require.NoError(t, err)
	assert.EqualValues(t, 90, out["final_price"])
	assert.Equal(t, "10%", out["discount"])

	out, err = runJSON(t, env, "trade", "Sarah", "100", "SELL")
	require.NoError(t, err)
	assert.EqualValues(t, 110, out["final_price"])
	assert.Equal(t, "+10%", out["discount"])

	_, err = run(t, env, "trade", "Sarah", "100", "steal")
	assert.True(t, errors.IsInvalidInput(err))
}

func TestEvent_Categories(t *testing.T) {
	env := newEnv()

	cmd, _ := env.Registry.Resolve("event")
	out, err := cmd.Handler(env, []string{"Atmospheric"})
	require.NoError(t, err)
	ev, ok := out.(world.Event)
	require.True(t, ok)
	assert.Equal(t, world.EventAtmospheric, ev.Type)
	assert.NotNil(t, ev.Atmospheric)

	_, err = run(t, env, "event", "spaceship")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
	assert.Contains(t, errors.GetMeta(err)["valid_categories"], "quest")
}
