package character

import (
	"fmt"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/condition"
)

// AddictionThreshold is the highest d20 roll that results in addiction.
const AddictionThreshold = 3

// D20 is the single die an addiction check needs.
type D20 interface {
	D20() int
}

// UseResult reports what consuming an item did.
type UseResult struct {
	Item          string   `json:"item"`
	Effects       []string `json:"effects"`
	Description   string   `json:"description"`
	AddictionRoll int      `json:"addiction_roll,omitempty"`
	Addicted      bool     `json:"addicted,omitempty"`
}

// UseItem consumes one item from the inventory and applies its consumable
// definition. Addictive chems roll a d20; a roll of AddictionThreshold or less
// adds a permanent "<item> Addiction" effect.
//
// Postcondition: the player is unchanged when an error is returned.
func (p *Player) UseItem(item string, reg *condition.Registry, roller D20) (UseResult, error) {
	if p.Inventory[item] < 1 {
		return UseResult{}, errors.InsufficientResourcef("%s does not have item: %s", p.Character, item).
			WithMeta("inventory", p.Inventory)
	}
	def, ok := reg.Get(item)
	if !ok {
		return UseResult{}, errors.InvalidInputf("Unknown consumable: %s. This item cannot be used; it may be equipment or a crafting material.", item).
			WithMeta("known_consumables", reg.Names())
	}
	if def.Heal > 0 && p.Dead {
		return UseResult{}, errors.InvalidInput("dead characters cannot be healed")
	}
	if _, err := p.RemoveItem(item, 1); err != nil {
		return UseResult{}, err
	}

	res := UseResult{Item: item, Effects: []string{}, Description: def.Description}
	if def.Heal != 0 {
		ch := p.setHP(p.HP + def.Heal)
		res.Effects = append(res.Effects, fmt.Sprintf("HP: %d -> %d", ch.Before, ch.After))
	}
	if def.Rads != 0 {
		ch := p.AdjustRads(def.Rads)
		res.Effects = append(res.Effects, fmt.Sprintf("Rads: %d -> %d", ch.Before, ch.After))
	}
	if def.AP != 0 {
		ch := p.AdjustAP(def.AP)
		res.Effects = append(res.Effects, fmt.Sprintf("AP: %d -> %d", ch.Before, ch.After))
	}
	if eff, granted := def.GrantedEffect(); granted {
		p.StatusEffects.Add(eff)
		res.Effects = append(res.Effects, fmt.Sprintf("Status gained: %s (%d rounds)", eff.Name, eff.Remaining))
	}
	if def.Addictive {
		res.AddictionRoll = roller.D20()
		if res.AddictionRoll <= AddictionThreshold {
			p.StatusEffects.Add(condition.Effect{
				Name:      item + " Addiction",
				Remaining: condition.Permanent,
				Source:    "addiction",
			})
			res.Addicted = true
			res.Effects = append(res.Effects, fmt.Sprintf("WARNING: Addicted! (Roll: %d)", res.AddictionRoll))
		} else {
			res.Effects = append(res.Effects, fmt.Sprintf("Not addicted (Roll: %d, needed <=%d)", res.AddictionRoll, AddictionThreshold))
		}
	}
	return res, nil
}
