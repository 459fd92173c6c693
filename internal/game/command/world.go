package command

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/character"
	"github.com/cory-johannsen/wasteland/internal/game/combat"
	"github.com/cory-johannsen/wasteland/internal/game/session"
	"github.com/cory-johannsen/wasteland/internal/game/world"
)

// Loot count bounds for one loot call.
const (
	MinLootCount = 1
	MaxLootCount = 10
)

// Rest length bounds in hours.
const (
	DefaultRestHours = 8
	MinRestHours     = 1
	MaxRestHours     = 24
)

// HandleInit starts a new game, replacing whatever document existed.
func HandleInit(env *Env, _ []string) (any, error) {
	env.State = session.New(env.NewSessionID())
	return Payload{"message": "New game initialized", "state": env.State}, nil
}

// playerStatus is a player sheet tagged with its party name.
type playerStatus struct {
	Name string `json:"player"`
	*character.Player
	Effective map[character.Attribute]int `json:"effective_special"`
}

// HandleStatus shows the whole document or one player sheet.
func HandleStatus(env *Env, args []string) (any, error) {
	if len(args) == 0 {
		return env.State, nil
	}
	name := joined(args, 0)
	p, err := env.State.Player(name)
	if err != nil {
		return nil, err
	}
	attrs, _ := character.Effective(p)
	return playerStatus{Name: name, Player: p, Effective: attrs}, nil
}

// HandleRecover reports on the document the runner just restored from backup.
func HandleRecover(env *Env, _ []string) (any, error) {
	return Payload{
		"message": "Restored from backup",
		"turn":    env.State.Turn,
		"players": env.State.PlayerNames(),
	}, nil
}

// HandleSet assigns one state field. "mode" goes through the combat
// controller so the round counter and action tracking stay consistent.
func HandleSet(env *Env, args []string) (any, error) {
	if len(args) < 2 {
		return nil, usage("set <field> <value>").
			WithMeta("valid_fields", append(append([]string{}, session.SettableFields...), "mode"))
	}
	field, value := args[0], joined(args, 1)
	if field == "mode" {
		mode, err := session.ParseMode(strings.ToLower(value))
		if err != nil {
			return nil, err
		}
		tr := combat.SetMode(env.State, mode)
		return Payload{
			"message":   fmt.Sprintf("Set mode: %s -> %s", tr.From, tr.To),
			"field":     field,
			"old_value": tr.From,
			"new_value": tr.To,
		}, nil
	}
	old, updated, err := env.State.Set(field, value)
	if err != nil {
		return nil, err
	}
	return Payload{
		"message":   fmt.Sprintf("Set %s: %v -> %v", field, old, updated),
		"field":     field,
		"old_value": old,
		"new_value": updated,
	}, nil
}

// HandleFlag manages the ordered story flags.
func HandleFlag(env *Env, args []string) (any, error) {
	const synopsis = "flag add|remove|list [flag_name]"
	if len(args) == 0 {
		return nil, usage(synopsis)
	}
	switch strings.ToLower(args[0]) {
	case "list":
		return Payload{"flags": env.State.Flags}, nil
	case "add":
		if len(args) < 2 {
			return nil, usage(synopsis)
		}
		flag := joined(args, 1)
		env.State.AddFlag(flag)
		return Payload{"message": "Flag added: " + flag, "flags": env.State.Flags}, nil
	case "remove":
		if len(args) < 2 {
			return nil, usage(synopsis)
		}
		flag := joined(args, 1)
		if !env.State.RemoveFlag(flag) {
			return nil, errors.NotFoundf("Flag not found: %s", flag).WithMeta("flags", env.State.Flags)
		}
		return Payload{"message": "Flag removed: " + flag, "flags": env.State.Flags}, nil
	}
	return nil, usage(synopsis)
}

// HandleLog appends a narrative line to the event log.
func HandleLog(env *Env, args []string) (any, error) {
	if len(args) == 0 {
		return nil, usage("log <event description>")
	}
	event := joined(args, 0)
	env.State.AppendLog(event)
	return Payload{"message": "Logged: " + event}, nil
}

// HandleEvent draws a flavor event from every pool or from one category.
func HandleEvent(env *Env, args []string) (any, error) {
	if len(args) == 0 {
		return env.Tables.RandomEvent(env.Roller), nil
	}
	ev, err := env.Tables.EventFor(strings.ToLower(args[0]), env.Roller)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// HandleLoot draws items from one tier, or by the weighted tier table when no
// tier is named. Counts are clamped to [MinLootCount, MaxLootCount].
func HandleLoot(env *Env, args []string) (any, error) {
	count, err := optionalInt(args, 1, "count", 1)
	if err != nil {
		return nil, err
	}
	count = clampInt(count, MinLootCount, MaxLootCount)
	if len(args) == 0 || strings.EqualFold(args[0], "random") {
		return Payload{"loot": env.Loot.Weighted(count, env.Roller)}, nil
	}
	tier := strings.ToLower(args[0])
	items, err := env.Loot.FromTier(tier, count, env.Roller)
	if err != nil {
		return nil, err
	}
	return Payload{"tier": tier, "items": items}, nil
}

// HandleTrade prices a purchase or sale using the trader's effective CHA and
// Barter skill.
func HandleTrade(env *Env, args []string) (any, error) {
	if len(args) < 3 {
		return nil, usage("trade <player> <base_price> buy|sell")
	}
	p, err := env.State.Player(args[0])
	if err != nil {
		return nil, err
	}
	base, err := parseInt(args[1], "base_price")
	if err != nil {
		return nil, err
	}
	q, err := world.Quote(character.EffectiveAttribute(p, character.CHA), p.SkillLevel(character.Barter), base, strings.ToLower(args[2]))
	if err != nil {
		return nil, err
	}
	return struct {
		Player string `json:"player"`
		world.TradeQuote
	}{args[0], q}, nil
}

// HandleNPCGen generates between 1 and world.MaxGeneratedNPCs NPCs.
func HandleNPCGen(env *Env, args []string) (any, error) {
	count, err := optionalInt(args, 0, "count", 1)
	if err != nil {
		return nil, err
	}
	count = clampInt(count, 1, world.MaxGeneratedNPCs)
	return Payload{"npcs": env.Tables.GenerateNPCs(count, env.Roller)}, nil
}

func weatherState(args []string) StateUse {
	if len(args) > 0 && strings.EqualFold(args[0], "set") {
		return StateWrite
	}
	return StateNone
}

// HandleWeather rolls the weather table; "weather set" also stores the result.
func HandleWeather(env *Env, args []string) (any, error) {
	w := env.Tables.RollWeather(env.Roller)
	saved := false
	if env.State != nil && weatherState(args) == StateWrite {
		env.State.Weather = w.Weather
		saved = true
	}
	return Payload{
		"weather":     w.Weather,
		"description": w.Description,
		"effect":      w.Effect,
		"saved":       saved,
	}, nil
}

// HandleRest rests the whole party for a number of hours (default 8,
// clamped to [1, 24]).
func HandleRest(env *Env, args []string) (any, error) {
	hours, err := optionalInt(args, 0, "hours", DefaultRestHours)
	if err != nil {
		return nil, err
	}
	hours = clampInt(hours, MinRestHours, MaxRestHours)
	results := make(map[string]character.RestResult, len(env.State.Players))
	for _, name := range env.State.PlayerNames() {
		results[name] = env.State.Players[name].Rest(hours)
	}
	return Payload{
		"message": fmt.Sprintf("Rested for %d hours", hours),
		"hours":   hours,
		"players": results,
	}, nil
}
