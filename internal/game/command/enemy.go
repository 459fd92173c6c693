package command

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/combat"
	"github.com/cory-johannsen/wasteland/internal/game/encounter"
	"github.com/cory-johannsen/wasteland/internal/game/npc"
)

const enemyAddSynopsis = "enemy-add <template> | <name> <template> | <name> <hp> <damage_dice> <attack_skill> <drops> [special]"

// customEnemyArgs is the minimum argument count of the custom enemy-add form.
const customEnemyArgs = 5

// HandleEnemyAdd spawns an enemy from a template or from explicit stats, after
// the encounter budget gate accepts it. Adding an enemy starts combat.
func HandleEnemyAdd(env *Env, args []string) (any, error) {
	var (
		name  string
		enemy *npc.Enemy
	)
	switch {
	case len(args) == 1:
		tmpl, err := env.Templates.Lookup(args[0])
		if err != nil {
			return nil, err
		}
		name = nextEnemyName(env, tmpl.Name)
		enemy = npc.NewFromTemplate(tmpl)
	case len(args) == 2:
		tmpl, err := env.Templates.Lookup(args[1])
		if err != nil {
			return nil, err
		}
		name = args[0]
		enemy = npc.NewFromTemplate(tmpl)
	case len(args) >= customEnemyArgs:
		hp, err := parseInt(args[1], "hp")
		if err != nil {
			return nil, err
		}
		attackSkill, err := parseInt(args[3], "attack_skill")
		if err != nil {
			return nil, err
		}
		enemy, err = npc.NewCustom(hp, args[2], attackSkill, args[4], joined(args, 5))
		if err != nil {
			return nil, err
		}
		name = args[0]
	default:
		return nil, usage(enemyAddSynopsis).
			WithHint(`Example: enemy-add Radroach, or enemy-add "Raider 1" 25 3d6 10 common`).
			WithMeta("available_templates", env.Templates.Names())
	}

	if _, exists := env.State.Enemies[name]; exists {
		return nil, errors.InvalidInputf("Enemy already exists: %s", name).
			WithHint("Choose another name or clear the battlefield first")
	}
	if err := encounter.Validate(env.State, enemy.Tier, enemy.HP); err != nil {
		return nil, err
	}
	env.State.Enemies[name] = enemy
	tr := combat.EnterCombat(env.State)
	env.Logger.Info("enemy added",
		zap.String("enemy", name),
		zap.Int("tier", enemy.Tier),
		zap.Int("hp", enemy.HP),
	)

	special := enemy.Special
	if special == "" {
		special = "none"
	}
	out := Payload{
		"message":      "Enemy added: " + name,
		"enemy":        name,
		"tier":         enemy.Tier,
		"hp":           fmt.Sprintf("%d/%d", enemy.HP, enemy.MaxHP),
		"damage":       enemy.Damage,
		"attack_skill": enemy.AttackSkill,
		"drops":        enemy.Drops,
		"special":      special,
		"mode":         env.State.Mode,
	}
	if enemy.Template != "" {
		out["template"] = enemy.Template
	}
	if tr.Changed {
		out["mode_transition"] = tr
	}
	return out, nil
}

// nextEnemyName returns base, or base followed by the lowest free number when
// base is taken.
func nextEnemyName(env *Env, base string) string {
	if _, taken := env.State.Enemies[base]; !taken {
		return base
	}
	for i := 2; ; i++ {
		name := fmt.Sprintf("%s %d", base, i)
		if _, taken := env.State.Enemies[name]; !taken {
			return name
		}
	}
}

// HandleEnemyHurt damages an enemy; a negative amount heals it. A kill rolls
// the enemy's loot drop.
func HandleEnemyHurt(env *Env, args []string) (any, error) {
	if len(args) < 2 {
		return nil, usage("enemy-hurt <name> <amount>")
	}
	name := args[0]
	e, err := env.State.Enemy(name)
	if err != nil {
		return nil, err
	}
	amount, err := parseInt(args[1], "amount")
	if err != nil {
		return nil, err
	}
	res, err := e.Hurt(name, amount)
	if err != nil {
		return nil, err
	}

	out := Payload{
		"enemy":     name,
		"hp_before": res.Before,
		"hp_after":  res.After,
		"max_hp":    res.MaxHP,
		"amount":    res.Amount,
	}
	if res.Revived {
		out["revived"] = true
	}
	if res.Killed {
		out["killed"] = true
		out["message"] = fmt.Sprintf("%s has been defeated!", name)
		if drop, ok := env.Loot.Drop(e.Drops, env.Roller); ok {
			out["loot_drop"] = drop
		}
		env.Logger.Info("enemy defeated", zap.String("enemy", name))
	}
	return out, nil
}

// HandleEnemyAttack has an enemy attack a player.
func HandleEnemyAttack(env *Env, args []string) (any, error) {
	if len(args) < 2 {
		return nil, usage("enemy-attack <enemy> <target_player>")
	}
	e, err := env.State.Enemy(args[0])
	if err != nil {
		return nil, err
	}
	if !e.IsAlive() {
		return nil, errors.InvalidInputf("%s is dead and cannot attack", args[0])
	}
	p, err := env.State.Player(args[1])
	if err != nil {
		return nil, err
	}
	res, err := combat.EnemyAttack(env.Roller, args[0], e, args[1], p)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// enemyRow is one line of enemy-list.
type enemyRow struct {
	Name        string     `json:"name"`
	Template    string     `json:"template,omitempty"`
	Tier        int        `json:"tier"`
	HP          string     `json:"hp"`
	Status      npc.Status `json:"status"`
	Damage      string     `json:"damage"`
	AttackSkill int        `json:"attack_skill"`
	Drops       string     `json:"drops"`
	Special     string     `json:"special,omitempty"`
}

// HandleEnemyList lists the battlefield.
func HandleEnemyList(env *Env, _ []string) (any, error) {
	if len(env.State.Enemies) == 0 {
		return Payload{"message": "No enemies on the battlefield", "enemies": []enemyRow{}}, nil
	}
	rows := make([]enemyRow, 0, len(env.State.Enemies))
	for _, name := range env.State.EnemyNames() {
		e := env.State.Enemies[name]
		rows = append(rows, enemyRow{
			Name:        name,
			Template:    e.Template,
			Tier:        e.Tier,
			HP:          fmt.Sprintf("%d/%d", e.HP, e.MaxHP),
			Status:      e.Status,
			Damage:      e.Damage,
			AttackSkill: e.AttackSkill,
			Drops:       e.Drops,
			Special:     e.Special,
		})
	}
	return Payload{
		"enemies":      rows,
		"alive":        len(env.State.AliveEnemies()),
		"mode":         env.State.Mode,
		"alive_hp":     env.State.AliveEnemyHP(),
		"hp_budget":    encounter.EffectiveBudget(encounter.RuleFor(env.State.Chapter).HPBudget, len(env.State.Players)),
		"combat_round": env.State.CombatRound,
	}, nil
}

// HandleEnemyClear removes dead enemies, or every enemy with "all".
func HandleEnemyClear(env *Env, args []string) (any, error) {
	if len(env.State.Enemies) == 0 {
		return Payload{"message": "No enemies to clear", "removed": []string{}, "remaining": []string{}}, nil
	}
	all := len(args) > 0 && strings.EqualFold(args[0], "all")
	var removed []string
	if all {
		removed = env.State.EnemyNames()
		clear(env.State.Enemies)
	} else {
		removed = env.State.PurgeDead()
	}
	if removed == nil {
		removed = []string{}
	}
	scope := " (dead)"
	if all {
		scope = " (all)"
	}
	return Payload{
		"message":   fmt.Sprintf("Cleared %d enemies%s", len(removed), scope),
		"removed":   removed,
		"remaining": env.State.EnemyNames(),
	}, nil
}
