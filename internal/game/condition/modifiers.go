package condition

// StatDeltas returns the summed stat modifiers of every effect, keyed by attribute.
// Multiple effects on the same attribute stack additively.
func (e Effects) StatDeltas() map[string]int {
	out := make(map[string]int)
	for _, eff := range e {
		for attr, d := range eff.StatMods {
			out[attr] += d
		}
	}
	return out
}

// DamageBonus returns the total flat damage bonus from all effects.
func (e Effects) DamageBonus() int {
	total := 0
	for _, eff := range e {
		total += eff.DamageBonus
	}
	return total
}

// DamageReduction returns the total incoming-damage reduction from all effects.
//
// Postcondition: Returns >= 0.
func (e Effects) DamageReduction() int {
	total := 0
	for _, eff := range e {
		if eff.DamageReduction > 0 {
			total += eff.DamageReduction
		}
	}
	return total
}
