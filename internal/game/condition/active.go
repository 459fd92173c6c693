// Package condition tracks status effects applied to players and the
// consumable items that grant them.
package condition

// Incapacitated is the distinguished effect applied when a player drops to 0 HP.
const Incapacitated = "Incapacitated"

// IncapacitatedTurns is the number of advances a downed player has to stabilise.
const IncapacitatedTurns = 3

// Permanent marks an effect that never expires on its own.
const Permanent = -1

// Effect is one status effect attached to a player.
type Effect struct {
	Name            string         `json:"name"`
	Remaining       int            `json:"remaining"`
	Source          string         `json:"source,omitempty"`
	StatMods        map[string]int `json:"stat_mods,omitempty"`
	DamageBonus     int            `json:"damage_bonus,omitempty"`
	DamageReduction int            `json:"damage_reduction,omitempty"`
}

// IsPermanent reports whether the effect is exempt from ticking.
func (e Effect) IsPermanent() bool {
	return e.Remaining == Permanent
}

// Effects is the ordered list of effects on one player.
// It is not safe for concurrent use; the caller must serialise access.
type Effects []Effect

// TickEntry describes an effect that survived a tick.
type TickEntry struct {
	Effect    string `json:"effect"`
	Remaining int    `json:"remaining"`
}

// TickReport is the outcome of one Tick call.
type TickReport struct {
	Active  []TickEntry
	Expired []string
}

// Has reports whether an effect with name is present.
func (e Effects) Has(name string) bool {
	for _, eff := range e {
		if eff.Name == name {
			return true
		}
	}
	return false
}

// Add appends eff, preserving insertion order.
func (e *Effects) Add(eff Effect) {
	*e = append(*e, eff)
}

// Remove deletes every effect named name and returns how many were removed.
//
// Postcondition: Has(name) is false.
func (e *Effects) Remove(name string) int {
	kept := (*e)[:0]
	removed := 0
	for _, eff := range *e {
		if eff.Name == name {
			removed++
			continue
		}
		kept = append(kept, eff)
	}
	*e = kept
	return removed
}

// Tick decrements every non-permanent effect by one and removes those that reach 0.
// Permanent effects (Remaining == -1) are left untouched.
//
// Postcondition: every name in the report's Expired list was removed; survivors keep their order.
func (e *Effects) Tick() TickReport {
	var report TickReport
	kept := (*e)[:0]
	for _, eff := range *e {
		if eff.IsPermanent() {
			kept = append(kept, eff)
			report.Active = append(report.Active, TickEntry{Effect: eff.Name, Remaining: Permanent})
			continue
		}
		eff.Remaining--
		if eff.Remaining <= 0 {
			report.Expired = append(report.Expired, eff.Name)
			continue
		}
		kept = append(kept, eff)
		report.Active = append(report.Active, TickEntry{Effect: eff.Name, Remaining: eff.Remaining})
	}
	*e = kept
	return report
}

// ClearTemporary removes every non-permanent effect and returns their names.
func (e *Effects) ClearTemporary() []string {
	var cleared []string
	kept := (*e)[:0]
	for _, eff := range *e {
		if eff.IsPermanent() {
			kept = append(kept, eff)
			continue
		}
		cleared = append(cleared, eff.Name)
	}
	*e = kept
	return cleared
}
