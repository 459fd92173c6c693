package combat

import (
	"fmt"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/character"
	"github.com/cory-johannsen/wasteland/internal/game/dice"
	"github.com/cory-johannsen/wasteland/internal/game/npc"
)

// AttackResult is the outcome of one enemy attack.
type AttackResult struct {
	Attacker        string `json:"attacker"`
	Target          string `json:"target"`
	AttackRoll      int    `json:"attack_roll"`
	AttackSkill     int    `json:"attack_skill"`
	Hit             bool   `json:"hit"`
	Critical        bool   `json:"critical,omitempty"`
	Fumble          bool   `json:"fumble,omitempty"`
	CritBonus       int    `json:"crit_bonus,omitempty"`
	Detail          string `json:"detail"`
	DamageDice      []int  `json:"damage_dice,omitempty"`
	TotalDamage     int    `json:"total_damage,omitempty"`
	DamageReduction int    `json:"damage_reduction,omitempty"`
	DamageApplied   int    `json:"damage_applied,omitempty"`
	TargetHPBefore  int    `json:"target_hp_before,omitempty"`
	TargetHPAfter   int    `json:"target_hp_after"`
	TargetMaxHP     int    `json:"target_max_hp"`
	TargetDown      bool   `json:"target_down,omitempty"`
	Message         string `json:"message,omitempty"`
}

// EnemyAttack rolls a d20 against the enemy's attack skill. A natural 1 always
// hits and adds one point of damage per damage die; a natural 20 always misses.
// Damage is the sum of the enemy's damage dice, reduced by the target's active
// damage reduction, and the target drops to 0 HP at worst.
//
// Postcondition: Returns InvalidInput when the enemy is dead.
func EnemyAttack(roller Roller, enemyName string, e *npc.Enemy, targetName string, p *character.Player) (AttackResult, error) {
	if !e.IsAlive() {
		return AttackResult{}, errors.InvalidInputf("%s is dead and cannot attack", enemyName)
	}
	expr, err := dice.Parse(e.Damage)
	if err != nil {
		return AttackResult{}, errors.InvalidInputf("%s has invalid damage dice %q", enemyName, e.Damage)
	}

	roll := roller.D20()
	res := AttackResult{
		Attacker:      enemyName,
		Target:        targetName,
		AttackRoll:    roll,
		AttackSkill:   e.AttackSkill,
		TargetHPAfter: p.HP,
		TargetMaxHP:   p.MaxHP,
	}
	crit := roll == 1
	if roll == 20 {
		res.Fumble = true
		res.Detail = fmt.Sprintf("Roll %d -> Fumble! Miss + complication", roll)
		return res, nil
	}
	if !crit && roll > e.AttackSkill {
		res.Detail = fmt.Sprintf("Roll %d -> Miss (needed <=%d)", roll, e.AttackSkill)
		return res, nil
	}

	res.Hit = true
	res.DamageDice = roller.Roll(expr.Count, expr.Sides)
	for _, d := range res.DamageDice {
		res.TotalDamage += d
	}
	if crit {
		res.Critical = true
		res.CritBonus = expr.Count
		res.TotalDamage += res.CritBonus
		res.Detail = fmt.Sprintf("Roll %d -> Critical Hit! +%d bonus damage", roll, res.CritBonus)
	} else {
		res.Detail = fmt.Sprintf("Roll %d -> Hit", roll)
	}

	res.DamageReduction = p.StatusEffects.DamageReduction()
	res.DamageApplied = max(0, res.TotalDamage-res.DamageReduction)
	ch := p.TakeDamage(res.DamageApplied)
	res.TargetHPBefore = ch.Before
	res.TargetHPAfter = ch.After
	if ch.After <= 0 {
		res.TargetDown = true
		res.Message = fmt.Sprintf("%s is down! (Incapacitated, 3 turns to stabilize)", targetName)
	}
	return res, nil
}
