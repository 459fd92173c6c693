package command

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/character"
	"github.com/cory-johannsen/wasteland/internal/game/combat"
	"github.com/cory-johannsen/wasteland/internal/game/session"
)

// HandleDamage rolls a player's combat dice.
func HandleDamage(env *Env, args []string) (any, error) {
	if len(args) < 2 {
		return nil, usage("damage <player> <count> [bonus] [ap_spend]").
			WithHint("Example: damage Jake 3 2 1")
	}
	p, err := env.State.Player(args[0])
	if err != nil {
		return nil, err
	}
	count, err := parseInt(args[1], "count")
	if err != nil {
		return nil, err
	}
	bonus, err := optionalInt(args, 2, "bonus", 0)
	if err != nil {
		return nil, err
	}
	apSpend, err := optionalInt(args, 3, "ap_spend", 0)
	if err != nil {
		return nil, err
	}
	res, err := combat.PlayerDamage(env.Roller, p, count, bonus, apSpend)
	if err != nil {
		return nil, err
	}
	return struct {
		Player string `json:"player"`
		combat.DamageResult
	}{args[0], res}, nil
}

// HandleInitiative orders the party by effective PER + AGI.
func HandleInitiative(env *Env, _ []string) (any, error) {
	if len(env.State.Players) == 0 {
		return nil, errors.InvalidInput("No players in the game").
			WithHint("Add players with add-player first")
	}
	return Payload{"initiative_order": character.Initiative(env.State.Players)}, nil
}

// HandleTurn advances one exploration turn or combat round.
func HandleTurn(env *Env, _ []string) (any, error) {
	report := combat.Advance(env.State, combat.Env{
		Roller:      env.Roller,
		Tables:      env.Tables,
		EventChance: env.EventChance,
	})
	if report.ModeTransition != nil && report.ModeTransition.Changed {
		env.Logger.Info("combat ended", zap.Int("turn", report.Turn))
	}
	for _, name := range report.Deaths {
		env.Logger.Info("player died", zap.String("player", name))
	}

	message := fmt.Sprintf("Turn %d (%s, day %d)", report.Turn, report.TimeOfDay, report.Day)
	if report.Mode == session.Combat {
		message = fmt.Sprintf("Combat round %d", report.CombatRound)
	}
	return struct {
		Message string `json:"message"`
		combat.AdvanceReport
	}{message, report}, nil
}

// HandleAct records that an actor has acted this round.
func HandleAct(env *Env, args []string) (any, error) {
	if len(args) == 0 {
		return nil, usage("act <actor>")
	}
	st, err := combat.RegisterAction(env.State, joined(args, 0))
	if err != nil {
		return nil, err
	}
	return st, nil
}
