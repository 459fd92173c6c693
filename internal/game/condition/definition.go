package condition

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed content/consumables.yaml
var consumablesYAML []byte

// Consumable is the static definition of a usable item, loaded from YAML.
type Consumable struct {
	Name            string         `yaml:"name"`
	Description     string         `yaml:"description"`
	Heal            int            `yaml:"heal"`
	Rads            int            `yaml:"rads"`
	AP              int            `yaml:"ap"`
	Effect          string         `yaml:"effect"`
	Duration        int            `yaml:"duration"`
	StatMods        map[string]int `yaml:"stat_mods"`
	DamageBonus     int            `yaml:"damage_bonus"`
	DamageReduction int            `yaml:"damage_reduction"`
	Addictive       bool           `yaml:"addictive"`
}

// GrantedEffect builds the status effect this consumable applies, if any.
//
// Postcondition: ok is false iff c.Effect is empty.
func (c *Consumable) GrantedEffect() (Effect, bool) {
	if c.Effect == "" {
		return Effect{}, false
	}
	duration := c.Duration
	if duration == 0 {
		duration = 1
	}
	return Effect{
		Name:            c.Effect,
		Remaining:       duration,
		Source:          c.Name,
		StatMods:        c.StatMods,
		DamageBonus:     c.DamageBonus,
		DamageReduction: c.DamageReduction,
	}, true
}

// Registry holds all known consumables keyed by name.
type Registry struct {
	defs map[string]*Consumable
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Consumable)}
}

// Register adds def to the registry, overwriting any existing entry with the same name.
// Precondition: def must not be nil and def.Name must not be empty.
func (r *Registry) Register(def *Consumable) {
	r.defs[def.Name] = def
}

// Get returns the Consumable for name, or (nil, false) if not found.
func (r *Registry) Get(name string) (*Consumable, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names returns the sorted consumable names.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.defs))
	for n := range r.defs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// LoadConsumables parses a YAML list of consumables into a Registry.
// Unknown fields are rejected.
//
// Postcondition: Returns a non-nil Registry, or an error if the document fails to parse.
func LoadConsumables(data []byte) (*Registry, error) {
	var defs []*Consumable
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&defs); err != nil {
		return nil, fmt.Errorf("parsing consumables: %w", err)
	}
	reg := NewRegistry()
	for i, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("consumable[%d]: name must not be empty", i)
		}
		reg.Register(d)
	}
	return reg, nil
}

// DefaultRegistry returns the built-in consumables table.
//
// Postcondition: Returns a populated Registry; panics if the embedded table is malformed.
func DefaultRegistry() *Registry {
	reg, err := LoadConsumables(consumablesYAML)
	if err != nil {
		panic(fmt.Sprintf("loading embedded consumables: %v", err))
	}
	return reg
}
