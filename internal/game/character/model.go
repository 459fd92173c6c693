// Package character defines the player domain model, its creation rules and
// the mutators that keep its resource invariants.
package character

import (
	"strings"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/condition"
)

// Attribute names one of the seven SPECIAL attributes.
type Attribute string

const (
	STR Attribute = "STR"
	PER Attribute = "PER"
	END Attribute = "END"
	CHA Attribute = "CHA"
	INT Attribute = "INT"
	AGI Attribute = "AGI"
	LCK Attribute = "LCK"
)

// Attributes lists the SPECIAL attributes in canonical order.
var Attributes = []Attribute{STR, PER, END, CHA, INT, AGI, LCK}

// Skill names one of the ten trained skills.
type Skill string

const (
	Barter    Skill = "Barter"
	Lockpick  Skill = "Lockpick"
	Medicine  Skill = "Medicine"
	Melee     Skill = "Melee"
	Repair    Skill = "Repair"
	Science   Skill = "Science"
	SmallGuns Skill = "Small Guns"
	Sneak     Skill = "Sneak"
	Speech    Skill = "Speech"
	Survival  Skill = "Survival"
)

// Skills lists every skill in canonical order.
var Skills = []Skill{Barter, Lockpick, Medicine, Melee, Repair, Science, SmallGuns, Sneak, Speech, Survival}

const (
	// MinAttribute and MaxAttribute bound every SPECIAL value, base or effective.
	MinAttribute = 1
	MaxAttribute = 10
	// SpecialTotal is the exact sum required of a new character's SPECIAL.
	SpecialTotal = 40
	// MaxSkill is the highest level a skill may reach.
	MaxSkill = 6
	// TagSkillCount is the number of tag skills chosen at creation.
	TagSkillCount = 3
	// TagSkillStart is the starting level of each tag skill.
	TagSkillStart = 2
	// StartingCaps is the cap balance of a new character.
	StartingCaps = 100
)

// Special holds the seven base attribute values.
type Special struct {
	STR int `json:"STR"`
	PER int `json:"PER"`
	END int `json:"END"`
	CHA int `json:"CHA"`
	INT int `json:"INT"`
	AGI int `json:"AGI"`
	LCK int `json:"LCK"`
}

// Get returns the value of attribute a, or 0 for an unknown attribute.
func (s Special) Get(a Attribute) int {
	switch a {
	case STR:
		return s.STR
	case PER:
		return s.PER
	case END:
		return s.END
	case CHA:
		return s.CHA
	case INT:
		return s.INT
	case AGI:
		return s.AGI
	case LCK:
		return s.LCK
	}
	return 0
}

// Sum returns the total of all seven attributes.
func (s Special) Sum() int {
	return s.STR + s.PER + s.END + s.CHA + s.INT + s.AGI + s.LCK
}

// SpecialFromSlice builds a Special from values in canonical attribute order.
//
// Precondition: len(v) == 7.
func SpecialFromSlice(v []int) Special {
	return Special{STR: v[0], PER: v[1], END: v[2], CHA: v[3], INT: v[4], AGI: v[5], LCK: v[6]}
}

// Player is one party member. All resource fields are changed only through
// the mutators in this package so that 0 <= HP <= MaxHP and AP, Caps and
// Rads never go negative.
type Player struct {
	PlayerID        string            `json:"player_id"`
	Character       string            `json:"character"`
	Background      string            `json:"background"`
	HP              int               `json:"hp"`
	MaxHP           int               `json:"max_hp"`
	Rads            int               `json:"rads"`
	Caps            int               `json:"caps"`
	AP              int               `json:"ap"`
	CarryWeight     int               `json:"carry_weight"`
	Special         Special           `json:"special"`
	TagSkills       []Skill           `json:"tag_skills"`
	Skills          map[Skill]int     `json:"skills"`
	Inventory       map[string]int    `json:"inventory"`
	StatusEffects   condition.Effects `json:"status_effects"`
	Kills           int               `json:"kills"`
	QuestsCompleted int               `json:"quests_completed"`
	Dead            bool              `json:"dead,omitempty"`
}

// SkillLevel returns the raw level of skill s.
func (p *Player) SkillLevel(s Skill) int {
	return p.Skills[s]
}

// IsTagged reports whether s is one of the player's tag skills.
func (p *Player) IsTagged(s Skill) bool {
	for _, t := range p.TagSkills {
		if t == s {
			return true
		}
	}
	return false
}

// Active reports whether the player is expected to act in a round.
func (p *Player) Active() bool {
	return p.HP > 0 && !p.Dead
}

// ParseAttribute resolves a case-insensitive SPECIAL abbreviation.
func ParseAttribute(name string) (Attribute, error) {
	upper := Attribute(strings.ToUpper(strings.TrimSpace(name)))
	for _, a := range Attributes {
		if a == upper {
			return a, nil
		}
	}
	return "", errors.InvalidInputf("Invalid attribute: %s", name).
		WithMeta("valid_attributes", Attributes)
}

// ParseSkill resolves a skill name case-insensitively. An exact match wins;
// otherwise a substring that identifies exactly one skill is accepted.
func ParseSkill(name string) (Skill, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower != "" {
		for _, s := range Skills {
			if strings.ToLower(string(s)) == lower {
				return s, nil
			}
		}
		var matches []Skill
		for _, s := range Skills {
			if strings.Contains(strings.ToLower(string(s)), lower) {
				matches = append(matches, s)
			}
		}
		if len(matches) == 1 {
			return matches[0], nil
		}
	}
	return "", errors.InvalidInputf("Invalid skill: %s", name).
		WithMeta("valid_skills", Skills)
}
