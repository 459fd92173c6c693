package world

import (
	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/dice"
)

// Event type labels.
const (
	EventEncounter        = "encounter"
	EventSpecialEncounter = "special_encounter"
	EventAtmospheric      = "atmospheric"
	EventQuestHook        = "quest_hook"
)

// Event weights for an uncategorised roll, in percent.
const (
	encounterWeight   = 70
	atmosphericWeight = 15
)

// Event is one generated flavor event. Exactly one of Encounter, Atmospheric
// and Quest is set.
type Event struct {
	Type        string       `json:"type"`
	Category    string       `json:"category,omitempty"`
	Encounter   *Encounter   `json:"encounter,omitempty"`
	Atmospheric *Atmospheric `json:"event,omitempty"`
	Quest       *QuestHook   `json:"quest,omitempty"`
}

// RandomEvent draws from every pool: encounters 70%, atmospheric 15%, quest
// hooks 15%.
func (t *Tables) RandomEvent(src dice.Source) Event {
	roll := src.Intn(100) + 1
	switch {
	case roll <= encounterWeight:
		var pool []Encounter
		for _, c := range t.Encounters {
			pool = append(pool, c.Encounters...)
		}
		enc := pool[src.Intn(len(pool))]
		return Event{Type: EventEncounter, Category: "random", Encounter: &enc}
	case roll <= encounterWeight+atmosphericWeight:
		return t.atmospheric(src)
	default:
		return t.quest(src)
	}
}

// EventFor draws from a named category: an encounter category, "atmospheric"
// or "quest".
//
// Postcondition: Returns InvalidInput listing the valid categories for an unknown name.
func (t *Tables) EventFor(category string, src dice.Source) (Event, error) {
	switch category {
	case "atmospheric":
		return t.atmospheric(src), nil
	case "quest":
		return t.quest(src), nil
	}
	for _, c := range t.Encounters {
		if c.Category != category {
			continue
		}
		enc := c.Encounters[src.Intn(len(c.Encounters))]
		if category == "special" {
			return Event{Type: EventSpecialEncounter, Encounter: &enc}, nil
		}
		return Event{Type: EventEncounter, Category: category, Encounter: &enc}, nil
	}
	return Event{}, errors.InvalidInputf("Unknown category: %s", category).
		WithMeta("valid_categories", t.Categories())
}

// Categories lists every name EventFor accepts.
func (t *Tables) Categories() []string {
	out := make([]string, 0, len(t.Encounters)+2)
	for _, c := range t.Encounters {
		out = append(out, c.Category)
	}
	return append(out, "atmospheric", "quest")
}

func (t *Tables) atmospheric(src dice.Source) Event {
	a := t.Atmospheric[src.Intn(len(t.Atmospheric))]
	return Event{Type: EventAtmospheric, Atmospheric: &a}
}

func (t *Tables) quest(src dice.Source) Event {
	q := t.Quests[src.Intn(len(t.Quests))]
	return Event{Type: EventQuestHook, Quest: &q}
}
