package combat

import (
	"fmt"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/character"
)

const (
	// MaxDamageDice bounds the base combat dice of one damage roll.
	MaxDamageDice = 20
	// MaxDamageAP is the most AP a player may convert into extra damage dice.
	MaxDamageAP = 3
)

// SpecialEffect marks a combat die that triggered its weapon's effect.
const SpecialEffect = "Special Effect"

// DamageResult is the outcome of a combat dice roll.
type DamageResult struct {
	Dice        []int    `json:"dice"`
	Details     []string `json:"details"`
	BaseDamage  int      `json:"base_damage"`
	Bonus       int      `json:"bonus"`
	EffectBonus int      `json:"effect_bonus,omitempty"`
	TotalDamage int      `json:"total_damage"`
	Effects     []string `json:"effects"`
	APSpent     int      `json:"ap_spent,omitempty"`
}

// RollDamage rolls count combat dice. Faces score 1->1, 2->2, 3-4->0 and
// 5-6->1 plus a special effect; bonus is added once.
//
// Postcondition: Returns InvalidInput when count is outside [1, MaxDamageDice].
func RollDamage(roller Roller, count, bonus int) (DamageResult, error) {
	if count < 1 || count > MaxDamageDice {
		return DamageResult{}, errors.InvalidInputf("Dice count must be 1-%d, got %d", MaxDamageDice, count)
	}
	return rollCombatDice(roller, count, bonus), nil
}

// PlayerDamage is RollDamage for a player: each AP spent adds one die, paid
// from the player's pool, and active damage bonus effects add to the total.
//
// Postcondition: the player's AP is unchanged when an error is returned.
func PlayerDamage(roller Roller, p *character.Player, count, bonus, apSpend int) (DamageResult, error) {
	if count < 1 || count > MaxDamageDice {
		return DamageResult{}, errors.InvalidInputf("Dice count must be 1-%d, got %d", MaxDamageDice, count)
	}
	if apSpend < 0 || apSpend > MaxDamageAP {
		return DamageResult{}, errors.InvalidInputf("AP spend must be 0-%d, got %d", MaxDamageAP, apSpend)
	}
	if err := p.SpendAP(apSpend); err != nil {
		return DamageResult{}, err
	}
	effectBonus := p.StatusEffects.DamageBonus()
	res := rollCombatDice(roller, count+apSpend, bonus+effectBonus)
	res.Bonus = bonus
	res.EffectBonus = effectBonus
	res.APSpent = apSpend
	return res, nil
}

func rollCombatDice(roller Roller, count, bonus int) DamageResult {
	res := DamageResult{
		Dice:    roller.Roll(count, 6),
		Details: make([]string, 0, count),
		Bonus:   bonus,
		Effects: []string{},
	}
	for _, d := range res.Dice {
		switch d {
		case 1:
			res.BaseDamage++
			res.Details = append(res.Details, fmt.Sprintf("%d -> 1 damage", d))
		case 2:
			res.BaseDamage += 2
			res.Details = append(res.Details, fmt.Sprintf("%d -> 2 damage", d))
		case 3, 4:
			res.Details = append(res.Details, fmt.Sprintf("%d -> No damage", d))
		default:
			res.BaseDamage++
			res.Effects = append(res.Effects, SpecialEffect)
			res.Details = append(res.Details, fmt.Sprintf("%d -> 1 damage + Special Effect!", d))
		}
	}
	res.TotalDamage = res.BaseDamage + bonus
	return res
}
