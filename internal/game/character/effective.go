package character

// Modifier records one contribution to an effective attribute.
type Modifier struct {
	Source string `json:"source"`
	Delta  int    `json:"delta"`
}

// RadiationTier is one band of the radiation penalty table.
type RadiationTier struct {
	Threshold int
	Label     string
	Deltas    map[Attribute]int
}

// RadiationTiers is ordered from the highest threshold down. Exactly one tier
// applies to a given rads value: the first whose threshold it meets. Tiers never
// stack.
var RadiationTiers = []RadiationTier{
	{Threshold: 1000, Label: "Lethal", Deltas: map[Attribute]int{STR: -4, PER: -3, END: -4, AGI: -3, LCK: -3}},
	{Threshold: 800, Label: "Critical", Deltas: map[Attribute]int{STR: -3, PER: -2, END: -3, AGI: -2, LCK: -2}},
	{Threshold: 600, Label: "Severe", Deltas: map[Attribute]int{STR: -2, PER: -1, END: -2, AGI: -1, LCK: -1}},
	{Threshold: 400, Label: "Moderate", Deltas: map[Attribute]int{STR: -1, END: -1, AGI: -1}},
	{Threshold: 200, Label: "Minor", Deltas: map[Attribute]int{END: -1}},
}

// RadiationTierFor returns the single tier that applies at rads.
//
// Postcondition: ok is false iff rads is below the lowest threshold.
func RadiationTierFor(rads int) (RadiationTier, bool) {
	for _, t := range RadiationTiers {
		if rads >= t.Threshold {
			return t, true
		}
	}
	return RadiationTier{}, false
}

// Effective projects the player's base SPECIAL through the applicable radiation
// tier and every status effect's stat modifiers, clamping each result to
// [MinAttribute, MaxAttribute]. The player is never mutated.
//
// Postcondition: attrs has an entry for every attribute; mods lists only the
// attributes that received at least one modifier.
func Effective(p *Player) (map[Attribute]int, map[Attribute][]Modifier) {
	attrs := make(map[Attribute]int, len(Attributes))
	mods := make(map[Attribute][]Modifier)
	for _, a := range Attributes {
		attrs[a] = p.Special.Get(a)
	}

	if tier, ok := RadiationTierFor(p.Rads); ok {
		for _, a := range Attributes {
			if d, has := tier.Deltas[a]; has {
				attrs[a] += d
				mods[a] = append(mods[a], Modifier{Source: "Radiation (" + tier.Label + ")", Delta: d})
			}
		}
	}

	for _, eff := range p.StatusEffects {
		for _, a := range Attributes {
			if d, has := eff.StatMods[string(a)]; has && d != 0 {
				attrs[a] += d
				mods[a] = append(mods[a], Modifier{Source: eff.Name, Delta: d})
			}
		}
	}

	for a, v := range attrs {
		attrs[a] = clamp(v, MinAttribute, MaxAttribute)
	}
	return attrs, mods
}

// EffectiveAttribute is a convenience for a single attribute of Effective.
func EffectiveAttribute(p *Player, a Attribute) int {
	attrs, _ := Effective(p)
	return attrs[a]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
