package command

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/character"
	"github.com/cory-johannsen/wasteland/internal/game/condition"
)

// addPlayerArgs is player_id, name, character, background, seven SPECIAL
// values and three tag skills.
const addPlayerArgs = 4 + 7 + character.TagSkillCount

// HandleAddPlayer creates a character and seats it in the party.
func HandleAddPlayer(env *Env, args []string) (any, error) {
	if len(args) < addPlayerArgs {
		return nil, usage("add-player <player_id> <name> <character> <background> STR PER END CHA INT AGI LCK skill1 skill2 skill3").
			WithHint("Example: add-player p1 Jake 'Vault Dweller' 'Tech Specialist' 4 7 5 4 8 6 6 Science Lockpick 'Small Guns'")
	}
	playerID, name, char, background := args[0], args[1], args[2], args[3]
	if _, exists := env.State.Players[name]; exists {
		return nil, errors.InvalidInputf("Player already exists: %s", name).
			WithHint("Remove the player first or choose another name")
	}

	values := make([]int, len(character.Attributes))
	for i, a := range character.Attributes {
		v, err := parseInt(args[4+i], string(a))
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	tags := args[4+len(character.Attributes) : addPlayerArgs]

	p, err := character.NewPlayer(playerID, char, background, character.SpecialFromSlice(values), tags)
	if err != nil {
		return nil, err
	}
	env.State.Players[name] = p
	env.Logger.Info("player joined", zap.String("player", name), zap.String("character", char))
	return Payload{
		"message": fmt.Sprintf("Player %s has joined the game", name),
		"player":  p,
		"derived": Payload{"hp": p.MaxHP, "carry_weight": p.CarryWeight},
	}, nil
}

// HandleRemovePlayer drops a player from the party.
func HandleRemovePlayer(env *Env, args []string) (any, error) {
	if len(args) == 0 {
		return nil, usage("remove-player <name>")
	}
	name := joined(args, 0)
	if _, err := env.State.Player(name); err != nil {
		return nil, err
	}
	delete(env.State.Players, name)
	delete(env.State.TurnActions, name)
	return Payload{"message": fmt.Sprintf("Player %s has been removed", name)}, nil
}

// hpPayload renders an HP change the way hurt and heal report it.
func hpPayload(name, action string, amount int, ch character.HPChange) Payload {
	status := "OK"
	if ch.After <= 0 {
		status = "Down!"
	}
	out := Payload{
		"player":    name,
		"action":    action,
		"amount":    amount,
		"hp_before": ch.Before,
		"hp_after":  ch.After,
		"max_hp":    ch.MaxHP,
		"status":    status,
	}
	if ch.Downed {
		out["message"] = fmt.Sprintf("%s is down and Incapacitated", name)
	}
	if ch.Revived {
		out["message"] = fmt.Sprintf("%s is back on their feet", name)
	}
	return out
}

func playerAmount(env *Env, args []string, synopsis string) (*character.Player, int, error) {
	if len(args) < 2 {
		return nil, 0, usage(synopsis)
	}
	p, err := env.State.Player(args[0])
	if err != nil {
		return nil, 0, err
	}
	amount, err := parseInt(args[1], "amount")
	if err != nil {
		return nil, 0, err
	}
	return p, amount, nil
}

// HandleHurt deals damage to a player.
func HandleHurt(env *Env, args []string) (any, error) {
	p, amount, err := playerAmount(env, args, "hurt <player> <amount>")
	if err != nil {
		return nil, err
	}
	ch, err := p.Hurt(amount)
	if err != nil {
		return nil, err
	}
	return hpPayload(args[0], "Damage", amount, ch), nil
}

// HandleHeal restores a player's HP.
func HandleHeal(env *Env, args []string) (any, error) {
	p, amount, err := playerAmount(env, args, "heal <player> <amount>")
	if err != nil {
		return nil, err
	}
	ch, err := p.Heal(amount)
	if err != nil {
		return nil, err
	}
	return hpPayload(args[0], "Heal", amount, ch), nil
}

// radiationEffects describes the radiation tier now in force, if any.
func radiationEffects(rads int) []string {
	tier, ok := character.RadiationTierFor(rads)
	if !ok {
		return []string{}
	}
	parts := make([]string, 0, len(tier.Deltas))
	for _, a := range character.Attributes {
		if d, has := tier.Deltas[a]; has {
			parts = append(parts, fmt.Sprintf("%s%d", a, d))
		}
	}
	return []string{fmt.Sprintf("%s radiation: %s", tier.Label, strings.Join(parts, ", "))}
}

// HandleRads changes a player's radiation; negative amounts purge.
func HandleRads(env *Env, args []string) (any, error) {
	p, amount, err := playerAmount(env, args, "rads <player> <amount>")
	if err != nil {
		return nil, err
	}
	ch := p.AdjustRads(amount)
	return Payload{
		"player":      args[0],
		"rads_before": ch.Before,
		"rads_after":  ch.After,
		"change":      ch.Change,
		"effects":     radiationEffects(p.Rads),
	}, nil
}

// HandleCaps changes a player's caps; negative amounts spend.
func HandleCaps(env *Env, args []string) (any, error) {
	p, amount, err := playerAmount(env, args, "caps <player> <amount>")
	if err != nil {
		return nil, err
	}
	ch := p.AdjustCaps(amount)
	return Payload{"player": args[0], "caps_before": ch.Before, "caps_after": ch.After, "change": ch.Change}, nil
}

// HandleAP changes a player's action points.
func HandleAP(env *Env, args []string) (any, error) {
	p, amount, err := playerAmount(env, args, "ap <player> <amount>")
	if err != nil {
		return nil, err
	}
	ch := p.AdjustAP(amount)
	return Payload{"player": args[0], "ap_before": ch.Before, "ap_after": ch.After, "change": ch.Change}, nil
}

// HandleInventory adds or removes a stack of items.
func HandleInventory(env *Env, args []string) (any, error) {
	const synopsis = "inventory <player> add|remove <item> [qty]"
	if len(args) < 3 {
		return nil, usage(synopsis)
	}
	p, err := env.State.Player(args[0])
	if err != nil {
		return nil, err
	}
	action, item := strings.ToLower(args[1]), args[2]
	qty, err := optionalInt(args, 3, "qty", 1)
	if err != nil {
		return nil, err
	}

	var remaining int
	switch action {
	case "add":
		remaining, err = p.AddItem(item, qty)
	case "remove":
		remaining, err = p.RemoveItem(item, qty)
	default:
		return nil, usage(synopsis)
	}
	if err != nil {
		return nil, err
	}
	verb := "Added"
	if action == "remove" {
		verb = "Removed"
	}
	return Payload{
		"message":   fmt.Sprintf("%s %d x %s", verb, qty, item),
		"player":    args[0],
		"item":      item,
		"quantity":  remaining,
		"inventory": p.Inventory,
	}, nil
}

// HandleUseItem consumes one item from a player's inventory.
func HandleUseItem(env *Env, args []string) (any, error) {
	if len(args) < 2 {
		return nil, usage("use-item <player> <item>").
			WithMeta("known_consumables", env.Consumables.Names())
	}
	p, err := env.State.Player(args[0])
	if err != nil {
		return nil, err
	}
	res, err := p.UseItem(joined(args, 1), env.Consumables, env.Roller)
	if err != nil {
		return nil, err
	}
	return struct {
		Player string `json:"player"`
		character.UseResult
	}{args[0], res}, nil
}

// HandleEffect lists, adds or removes status effects on a player.
func HandleEffect(env *Env, args []string) (any, error) {
	const synopsis = "effect <player> add|remove|list <name> [duration]"
	if len(args) > 0 && strings.EqualFold(args[0], "tick") {
		return nil, errors.Deprecatedf("'effect tick' is deprecated. Use 'turn' command which automatically ticks effects.").
			WithHint("Run: wasteland turn")
	}
	if len(args) < 2 {
		return nil, usage(synopsis)
	}
	name := args[0]
	p, err := env.State.Player(name)
	if err != nil {
		return nil, err
	}

	switch action := strings.ToLower(args[1]); {
	case action == "list":
		return Payload{"player": name, "effects": p.StatusEffects}, nil
	case action == "add" && len(args) >= 4:
		duration, err := parseInt(args[3], "duration")
		if err != nil {
			return nil, err
		}
		if duration < 1 && duration != condition.Permanent {
			return nil, errors.InvalidInputf("duration must be positive or %d for permanent, got %d", condition.Permanent, duration)
		}
		p.StatusEffects.Add(condition.Effect{Name: args[2], Remaining: duration, Source: "gm"})
		return Payload{"message": fmt.Sprintf("Added effect: %s (%d turns)", args[2], duration), "player": name}, nil
	case action == "remove" && len(args) >= 3:
		effect := joined(args, 2)
		if p.StatusEffects.Remove(effect) == 0 {
			return nil, errors.NotFoundf("Effect not found: %s", effect).WithMeta("effects", p.StatusEffects)
		}
		return Payload{"message": "Removed effect: " + effect, "player": name}, nil
	}
	return nil, usage(synopsis)
}

// HandleSkillUp raises a skill, capped at character.MaxSkill.
func HandleSkillUp(env *Env, args []string) (any, error) {
	if len(args) < 2 {
		return nil, usage("skill-up <player> <skill> [amount]")
	}
	p, err := env.State.Player(args[0])
	if err != nil {
		return nil, err
	}
	skill, err := character.ParseSkill(args[1])
	if err != nil {
		return nil, err
	}
	amount, err := optionalInt(args, 2, "amount", 1)
	if err != nil {
		return nil, err
	}
	before, after, err := p.SkillUp(skill, amount)
	if err != nil {
		return nil, err
	}
	return Payload{
		"message":      fmt.Sprintf("%s: %s %d -> %d", args[0], skill, before, after),
		"player":       args[0],
		"skill":        skill,
		"level_before": before,
		"level_after":  after,
	}, nil
}
