package character

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/condition"
)

// HPChange reports the outcome of an HP mutation.
type HPChange struct {
	Before  int  `json:"hp_before"`
	After   int  `json:"hp_after"`
	MaxHP   int  `json:"max_hp"`
	Downed  bool `json:"downed,omitempty"`
	Revived bool `json:"revived,omitempty"`
}

// ResourceChange reports the outcome of a rads, caps or AP adjustment.
type ResourceChange struct {
	Before int `json:"before"`
	After  int `json:"after"`
	Change int `json:"change"`
}

// setHP clamps hp into [0, MaxHP] and keeps the Incapacitated effect in step:
// it is attached on the crossing to 0 unless already present and removed as
// soon as HP rises above 0.
func (p *Player) setHP(hp int) HPChange {
	ch := HPChange{Before: p.HP, MaxHP: p.MaxHP}
	p.HP = clamp(hp, 0, p.MaxHP)
	ch.After = p.HP
	if p.HP <= 0 && ch.Before > 0 {
		ch.Downed = true
	}
	if p.HP <= 0 && !p.StatusEffects.Has(condition.Incapacitated) {
		p.StatusEffects.Add(condition.Effect{
			Name:      condition.Incapacitated,
			Remaining: condition.IncapacitatedTurns,
			Source:    "downed",
		})
	}
	if p.HP > 0 && p.StatusEffects.Remove(condition.Incapacitated) > 0 {
		ch.Revived = true
	}
	return ch
}

// Hurt subtracts amount from HP, flooring at 0.
//
// Postcondition: Returns InvalidInput when amount is negative.
func (p *Player) Hurt(amount int) (HPChange, error) {
	if amount < 0 {
		return HPChange{}, errors.InvalidInputf("amount must be non-negative, got %d", amount)
	}
	return p.setHP(p.HP - amount), nil
}

// TakeDamage applies damage that has already been resolved.
// Negative damage is treated as 0.
func (p *Player) TakeDamage(damage int) HPChange {
	if damage < 0 {
		damage = 0
	}
	return p.setHP(p.HP - damage)
}

// Heal adds amount to HP, capping at MaxHP.
//
// Postcondition: Returns InvalidInput when amount is negative or the player is dead.
func (p *Player) Heal(amount int) (HPChange, error) {
	if amount < 0 {
		return HPChange{}, errors.InvalidInputf("amount must be non-negative, got %d", amount)
	}
	if p.Dead {
		return HPChange{}, errors.InvalidInput("dead characters cannot be healed")
	}
	return p.setHP(p.HP + amount), nil
}

// AdjustRads adds delta to rads, flooring at 0.
func (p *Player) AdjustRads(delta int) ResourceChange {
	before := p.Rads
	p.Rads = max(0, p.Rads+delta)
	return ResourceChange{Before: before, After: p.Rads, Change: delta}
}

// AdjustCaps adds delta to caps, flooring at 0.
func (p *Player) AdjustCaps(delta int) ResourceChange {
	before := p.Caps
	p.Caps = max(0, p.Caps+delta)
	return ResourceChange{Before: before, After: p.Caps, Change: delta}
}

// AdjustAP adds delta to AP, flooring at 0.
func (p *Player) AdjustAP(delta int) ResourceChange {
	before := p.AP
	p.AP = max(0, p.AP+delta)
	return ResourceChange{Before: before, After: p.AP, Change: delta}
}

// SpendAP deducts n action points.
//
// Postcondition: AP is unchanged and InsufficientResource is returned when AP < n.
func (p *Player) SpendAP(n int) error {
	if n < 0 {
		return errors.InvalidInputf("AP spend must be non-negative, got %d", n)
	}
	if p.AP < n {
		return errors.InsufficientResourcef("Not enough AP: has %d, requested %d", p.AP, n).
			WithMeta("current_ap", p.AP).
			WithMeta("requested", n)
	}
	p.AP -= n
	return nil
}

// AddItem stacks qty of item into the inventory and returns the new quantity.
func (p *Player) AddItem(item string, qty int) (int, error) {
	if item == "" {
		return 0, errors.InvalidInput("item name must not be empty")
	}
	if qty < 1 {
		return 0, errors.InvalidInputf("quantity must be positive, got %d", qty)
	}
	if p.Inventory == nil {
		p.Inventory = make(map[string]int)
	}
	p.Inventory[item] += qty
	return p.Inventory[item], nil
}

// RemoveItem takes qty of item out of the inventory and returns what remains.
// Entries that reach zero are deleted.
//
// Postcondition: the inventory is unchanged when fewer than qty are held.
func (p *Player) RemoveItem(item string, qty int) (int, error) {
	if qty < 1 {
		return 0, errors.InvalidInputf("quantity must be positive, got %d", qty)
	}
	held := p.Inventory[item]
	if held < qty {
		return held, errors.InsufficientResourcef("%s has %d of %s, cannot remove %d", p.Character, held, item, qty).
			WithMeta("inventory", p.Inventory)
	}
	remaining := held - qty
	if remaining == 0 {
		delete(p.Inventory, item)
	} else {
		p.Inventory[item] = remaining
	}
	return remaining, nil
}

// SkillUp raises skill s by amount, capped at MaxSkill. It returns the levels
// before and after.
func (p *Player) SkillUp(s Skill, amount int) (int, int, error) {
	if amount < 1 {
		return 0, 0, errors.InvalidInput("Amount must be positive")
	}
	if p.Skills == nil {
		p.Skills = make(map[Skill]int)
	}
	before := p.Skills[s]
	p.Skills[s] = min(MaxSkill, before+amount)
	return before, p.Skills[s], nil
}

// RestResult reports what a rest did for one player.
type RestResult struct {
	HPRestored     int      `json:"hp_restored"`
	HP             string   `json:"hp"`
	EffectsCleared []string `json:"effects_cleared"`
}

// Rest heals 5 HP per hour, capped at MaxHP, and clears every non-permanent
// effect. Dead characters are not healed.
//
// Precondition: hours is already clamped to [1, 24].
func (p *Player) Rest(hours int) RestResult {
	restored := 0
	if !p.Dead {
		restored = min(hours*5, p.MaxHP-p.HP)
		p.setHP(p.HP + restored)
	}
	cleared := p.StatusEffects.ClearTemporary()
	if cleared == nil {
		cleared = []string{}
	}
	return RestResult{
		HPRestored:     restored,
		HP:             fmt.Sprintf("%d/%d", p.HP, p.MaxHP),
		EffectsCleared: cleared,
	}
}

// InitiativeEntry is one row of the initiative order.
type InitiativeEntry struct {
	Player     string `json:"player"`
	Character  string `json:"character"`
	Initiative int    `json:"initiative"`
}

// Initiative orders players by effective PER + AGI, highest first. Ties are
// broken by player name so the order is stable.
func Initiative(players map[string]*Player) []InitiativeEntry {
	order := make([]InitiativeEntry, 0, len(players))
	for name, p := range players {
		attrs, _ := Effective(p)
		order = append(order, InitiativeEntry{
			Player:     name,
			Character:  p.Character,
			Initiative: attrs[PER] + attrs[AGI],
		})
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].Initiative != order[j].Initiative {
			return order[i].Initiative > order[j].Initiative
		}
		return order[i].Player < order[j].Player
	})
	return order
}
