package world

import (
	"bytes"
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.yaml
var content embed.FS

// Encounter is one entry of an encounter pool.
type Encounter struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description" json:"desc"`
	Difficulty  int    `yaml:"difficulty" json:"difficulty"`
}

// EncounterCategory groups encounters by setting.
type EncounterCategory struct {
	Category   string      `yaml:"category"`
	Encounters []Encounter `yaml:"encounters"`
}

// Atmospheric is a non-combat environmental event.
type Atmospheric struct {
	Event       string `yaml:"event" json:"event"`
	Description string `yaml:"description" json:"desc"`
	Severity    string `yaml:"severity" json:"severity"`
}

// QuestHook is a seed for a side quest.
type QuestHook struct {
	Quest       string `yaml:"quest" json:"quest"`
	Description string `yaml:"description" json:"desc"`
	Reward      string `yaml:"reward" json:"reward"`
}

// Weather is one row of the weighted weather table.
type Weather struct {
	Weather     string `yaml:"weather" json:"weather"`
	Description string `yaml:"description" json:"description"`
	Effect      string `yaml:"effect" json:"effect"`
	Weight      int    `yaml:"weight" json:"-"`
}

// NPCParts are the word lists an NPC is assembled from.
type NPCParts struct {
	Surnames  []string `yaml:"surnames"`
	Names     []string `yaml:"names"`
	Builds    []string `yaml:"builds"`
	Features  []string `yaml:"features"`
	Clothes   []string `yaml:"clothes"`
	Motives   []string `yaml:"motives"`
	Knowledge []string `yaml:"knowledge"`
	Speech    []string `yaml:"speech"`
}

// Tables bundles every flavor table.
type Tables struct {
	Encounters  []EncounterCategory
	Atmospheric []Atmospheric
	Quests      []QuestHook
	Weather     []Weather
	NPC         NPCParts
}

// LoadTables reads every table from the embedded content directory.
//
// Postcondition: Returns fully populated Tables or the first load error.
func LoadTables() (*Tables, error) {
	t := &Tables{}
	files := []struct {
		name string
		out  any
	}{
		{"encounters.yaml", &t.Encounters},
		{"atmospheric.yaml", &t.Atmospheric},
		{"quests.yaml", &t.Quests},
		{"weather.yaml", &t.Weather},
		{"npc_parts.yaml", &t.NPC},
	}
	for _, f := range files {
		data, err := content.ReadFile("content/" + f.name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.name, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(f.out); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f.name, err)
		}
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// DefaultTables is LoadTables that panics on malformed embedded content.
func DefaultTables() *Tables {
	t, err := LoadTables()
	if err != nil {
		panic(fmt.Sprintf("loading embedded world tables: %v", err))
	}
	return t
}

func (t *Tables) validate() error {
	if len(t.Encounters) == 0 || len(t.Atmospheric) == 0 || len(t.Quests) == 0 {
		return fmt.Errorf("world tables: event pools must not be empty")
	}
	for _, c := range t.Encounters {
		if len(c.Encounters) == 0 {
			return fmt.Errorf("world tables: encounter category %q is empty", c.Category)
		}
	}
	total := 0
	for _, w := range t.Weather {
		if w.Weight < 1 {
			return fmt.Errorf("world tables: weather %q weight must be >= 1", w.Weather)
		}
		total += w.Weight
	}
	if total == 0 {
		return fmt.Errorf("world tables: weather table must not be empty")
	}
	parts := [][]string{t.NPC.Surnames, t.NPC.Names, t.NPC.Builds, t.NPC.Features, t.NPC.Clothes, t.NPC.Motives, t.NPC.Knowledge, t.NPC.Speech}
	for _, p := range parts {
		if len(p) == 0 {
			return fmt.Errorf("world tables: npc word lists must not be empty")
		}
	}
	return nil
}
