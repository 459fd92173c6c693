package character

import (
	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/condition"
)

// StartingKit is the inventory every new character receives.
var StartingKit = map[string]int{
	"10mm Pistol":    1,
	"10mm Ammo":      24,
	"Stimpak":        2,
	"Purified Water": 3,
}

// NewPlayer builds a fresh character.
//
// Precondition: tags holds raw skill names; they are resolved with ParseSkill.
// Postcondition: Returns a Player with HP = MaxHP = END*10, Caps = 100,
// CarryWeight = 150 + STR*10 and the starting kit, or an InvalidInput error when
// any SPECIAL value lies outside [1, 10], the SPECIAL total is not 40, or the
// tag skills are unknown or repeated.
func NewPlayer(playerID, character, background string, special Special, tags []string) (*Player, error) {
	for _, a := range Attributes {
		v := special.Get(a)
		if v < MinAttribute || v > MaxAttribute {
			return nil, errors.InvalidInputf("%s must be %d-%d, got %d", a, MinAttribute, MaxAttribute, v).
				WithHint("Each SPECIAL attribute must be between 1 and 10")
		}
	}
	if total := special.Sum(); total != SpecialTotal {
		return nil, errors.InvalidInputf("SPECIAL total must be %d, got %d", SpecialTotal, total).
			WithHint("Redistribute points so they sum to 40").
			WithMeta("special", special)
	}
	if len(tags) != TagSkillCount {
		return nil, errors.InvalidInputf("exactly %d tag skills are required, got %d", TagSkillCount, len(tags))
	}

	tagSkills := make([]Skill, 0, TagSkillCount)
	for _, raw := range tags {
		s, err := ParseSkill(raw)
		if err != nil {
			return nil, err
		}
		for _, seen := range tagSkills {
			if seen == s {
				return nil, errors.InvalidInputf("Duplicate tag skill: %s", s).
					WithHint("Choose 3 different tag skills")
			}
		}
		tagSkills = append(tagSkills, s)
	}

	skills := make(map[Skill]int, len(Skills))
	for _, s := range Skills {
		skills[s] = 0
	}
	for _, s := range tagSkills {
		skills[s] = TagSkillStart
	}

	inventory := make(map[string]int, len(StartingKit))
	for item, qty := range StartingKit {
		inventory[item] = qty
	}

	hp := special.END * 10
	return &Player{
		PlayerID:      playerID,
		Character:     character,
		Background:    background,
		HP:            hp,
		MaxHP:         hp,
		Caps:          StartingCaps,
		CarryWeight:   150 + special.STR*10,
		Special:       special,
		TagSkills:     tagSkills,
		Skills:        skills,
		Inventory:     inventory,
		StatusEffects: condition.Effects{},
	}, nil
}
