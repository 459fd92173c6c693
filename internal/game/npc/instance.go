package npc

import (
	"strings"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/dice"
)

// Status is an enemy's life state.
type Status string

const (
	Alive Status = "alive"
	Dead  Status = "dead"
)

// Attack skill is a d20 target number.
const (
	MinAttackSkill = 1
	MaxAttackSkill = 20
)

// DropTiers lists the valid values of Enemy.Drops.
var DropTiers = []string{"junk", "common", "uncommon", "rare", "unique", "none"}

// ValidDrops reports whether tier names a drop tier.
func ValidDrops(tier string) bool {
	for _, d := range DropTiers {
		if d == tier {
			return true
		}
	}
	return false
}

// TierForHP bands a custom enemy's HP into a tier.
//
// Postcondition: Returns a value in [MinTier, MaxTier].
func TierForHP(hp int) int {
	switch {
	case hp <= 15:
		return 1
	case hp <= 25:
		return 2
	case hp <= 45:
		return 3
	case hp <= 80:
		return 4
	default:
		return 5
	}
}

// Enemy is a live combatant. HP stays within [0, MaxHP]; Status flips to Dead
// exactly once when HP reaches 0 and back to Alive only through healing.
type Enemy struct {
	Template    string `json:"template,omitempty"`
	Tier        int    `json:"tier"`
	HP          int    `json:"hp"`
	MaxHP       int    `json:"max_hp"`
	Damage      string `json:"damage"`
	AttackSkill int    `json:"attack_skill"`
	Drops       string `json:"drops"`
	Special     string `json:"special"`
	Status      Status `json:"status"`
}

// NewFromTemplate spawns a full-health enemy from tmpl.
//
// Precondition: tmpl must not be nil and must have passed Validate.
func NewFromTemplate(tmpl *Template) *Enemy {
	return &Enemy{
		Template:    tmpl.Name,
		Tier:        tmpl.Tier,
		HP:          tmpl.HP,
		MaxHP:       tmpl.HP,
		Damage:      tmpl.Damage,
		AttackSkill: tmpl.AttackSkill,
		Drops:       tmpl.Drops,
		Special:     tmpl.Special,
		Status:      Alive,
	}
}

// NewCustom builds an enemy from explicit stats; its tier comes from TierForHP.
//
// Postcondition: Returns InvalidInput when hp < 1, damage is not a valid NdM
// expression, attackSkill is outside [1, 20] or drops is unknown.
func NewCustom(hp int, damage string, attackSkill int, drops, special string) (*Enemy, error) {
	if hp < 1 {
		return nil, errors.InvalidInput("HP must be positive")
	}
	damage = strings.ToLower(damage)
	if _, err := dice.Parse(damage); err != nil {
		return nil, errors.InvalidInputf("Invalid damage dice: %s", damage).
			WithHint("Format: NdM, e.g. 3d6")
	}
	if attackSkill < MinAttackSkill || attackSkill > MaxAttackSkill {
		return nil, errors.InvalidInputf("Attack skill must be %d-%d, got %d", MinAttackSkill, MaxAttackSkill, attackSkill)
	}
	drops = strings.ToLower(drops)
	if !ValidDrops(drops) {
		return nil, errors.InvalidInputf("Invalid drops tier: %s", drops).
			WithMeta("valid_tiers", DropTiers)
	}
	return &Enemy{
		Tier:        TierForHP(hp),
		HP:          hp,
		MaxHP:       hp,
		Damage:      damage,
		AttackSkill: attackSkill,
		Drops:       drops,
		Special:     special,
		Status:      Alive,
	}, nil
}

// IsAlive reports whether the enemy still counts against the encounter.
func (e *Enemy) IsAlive() bool {
	return e.Status == Alive
}

// HurtResult reports the outcome of Hurt.
type HurtResult struct {
	Before  int  `json:"hp_before"`
	After   int  `json:"hp_after"`
	MaxHP   int  `json:"max_hp"`
	Amount  int  `json:"amount"`
	Killed  bool `json:"killed,omitempty"`
	Revived bool `json:"revived,omitempty"`
}

// Hurt applies amount damage; a negative amount heals, capped at MaxHP, and
// revives a dead enemy.
//
// Postcondition: HP is never negative. Killed is true only on the call that
// takes HP to 0. Damaging an already dead enemy returns InvalidInput.
func (e *Enemy) Hurt(name string, amount int) (HurtResult, error) {
	if e.Status == Dead && amount > 0 {
		return HurtResult{}, errors.InvalidInputf("%s is already dead", name)
	}
	res := HurtResult{Before: e.HP, MaxHP: e.MaxHP, Amount: amount}
	if amount < 0 {
		e.HP = min(e.MaxHP, e.HP-amount)
		if e.Status == Dead && e.HP > 0 {
			e.Status = Alive
			res.Revived = true
		}
	} else {
		e.HP = max(0, e.HP-amount)
	}
	res.After = e.HP
	if e.HP <= 0 && e.Status != Dead {
		e.Status = Dead
		res.Killed = true
	}
	return res, nil
}
