// Package npc provides enemy template definitions, live enemy records and
// loot tables.
package npc

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/dice"
)

//go:embed content/enemies.yaml
var enemiesYAML []byte

// MinTier and MaxTier bound an enemy's power band.
const (
	MinTier = 1
	MaxTier = 5
)

// Template defines a reusable enemy archetype loaded from YAML.
type Template struct {
	Name        string `yaml:"name"`
	Tier        int    `yaml:"tier"`
	HP          int    `yaml:"hp"`
	Damage      string `yaml:"damage"`
	AttackSkill int    `yaml:"attack_skill"`
	Drops       string `yaml:"drops"`
	Special     string `yaml:"special"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff Name is non-empty, Tier is in [1, 5], HP >= 1,
// Damage parses as NdM, AttackSkill is in [1, 20] and Drops is a known tier.
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("enemy template: name must not be empty")
	}
	if t.Tier < MinTier || t.Tier > MaxTier {
		return fmt.Errorf("enemy template %q: tier must be %d-%d", t.Name, MinTier, MaxTier)
	}
	if t.HP < 1 {
		return fmt.Errorf("enemy template %q: hp must be >= 1", t.Name)
	}
	if _, err := dice.Parse(t.Damage); err != nil {
		return fmt.Errorf("enemy template %q: %w", t.Name, err)
	}
	if t.AttackSkill < MinAttackSkill || t.AttackSkill > MaxAttackSkill {
		return fmt.Errorf("enemy template %q: attack_skill must be %d-%d", t.Name, MinAttackSkill, MaxAttackSkill)
	}
	if !ValidDrops(t.Drops) {
		return fmt.Errorf("enemy template %q: unknown drops tier %q", t.Name, t.Drops)
	}
	return nil
}

// LoadTemplatesFromBytes parses a YAML list of enemy templates.
//
// Postcondition: Returns validated templates in document order, or an error on
// the first parse or validate failure.
func LoadTemplatesFromBytes(data []byte) ([]*Template, error) {
	var templates []*Template
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&templates); err != nil {
		return nil, fmt.Errorf("parsing enemy templates: %w", err)
	}
	for _, t := range templates {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	return templates, nil
}

// Registry is an ordered set of templates keyed by name.
type Registry struct {
	order []*Template
	byKey map[string]*Template
}

// NewRegistry builds a Registry from templates, keeping their order.
func NewRegistry(templates []*Template) *Registry {
	r := &Registry{byKey: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		key := strings.ToLower(t.Name)
		if _, dup := r.byKey[key]; !dup {
			r.order = append(r.order, t)
		}
		r.byKey[key] = t
	}
	return r
}

// DefaultTemplates returns the built-in enemy templates.
//
// Postcondition: panics if the embedded table is malformed.
func DefaultTemplates() *Registry {
	templates, err := LoadTemplatesFromBytes(enemiesYAML)
	if err != nil {
		panic(fmt.Sprintf("loading embedded enemy templates: %v", err))
	}
	return NewRegistry(templates)
}

// Get looks a template up by name, ignoring case.
func (r *Registry) Get(name string) (*Template, bool) {
	t, ok := r.byKey[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Lookup is Get with a NotFound error listing the known templates.
func (r *Registry) Lookup(name string) (*Template, error) {
	if t, ok := r.Get(name); ok {
		return t, nil
	}
	return nil, errors.NotFoundf("Unknown enemy template: %s", name).
		WithMeta("available_templates", r.Names())
}

// Names returns the template names in load order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, t.Name)
	}
	return out
}
