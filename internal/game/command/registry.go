package command

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Registry resolves command names and aliases, case-insensitively.
type Registry struct {
	byName map[string]*Command // canonical name and every alias
	sorted []*Command
}

// NewRegistry validates cmds and indexes them.
//
// Precondition: names and aliases are lower case and unique across both
// sets; every command has a Handler and a known Category.
// Postcondition: Returns a Registry or the first validation error.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Command, len(cmds)*2)}
	owner := make(map[string]string, len(cmds)*2)

	claim := func(key, by string) error {
		if key == "" || key != strings.ToLower(key) {
			return fmt.Errorf("command %q: name or alias %q must be non-empty lower case", by, key)
		}
		if prev, taken := owner[key]; taken {
			if prev == key && by != key {
				return fmt.Errorf("alias %q of %q conflicts with command name %q", key, by, prev)
			}
			if prev == key {
				return fmt.Errorf("duplicate command name: %q", key)
			}
			return fmt.Errorf("duplicate alias %q: used by %q and %q", key, prev, by)
		}
		owner[key] = by
		return nil
	}

	for i := range cmds {
		cmd := &cmds[i]
		if cmd.Handler == nil {
			return nil, fmt.Errorf("command %q has no handler", cmd.Name)
		}
		if !slices.Contains(categoryOrder, cmd.Category) {
			return nil, fmt.Errorf("command %q has unknown category %q", cmd.Name, cmd.Category)
		}
		if err := claim(cmd.Name, cmd.Name); err != nil {
			return nil, err
		}
		r.byName[cmd.Name] = cmd
		for _, alias := range cmd.Aliases {
			if err := claim(alias, cmd.Name); err != nil {
				return nil, err
			}
			r.byName[alias] = cmd
		}
		r.sorted = append(r.sorted, cmd)
	}
	sort.Slice(r.sorted, func(i, j int) bool { return r.sorted[i].Name < r.sorted[j].Name })
	return r, nil
}

// DefaultRegistry builds the registry of BuiltinCommands. It panics if the
// built-in table is inconsistent.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command by name or alias. Surrounding space and case
// are ignored.
func (r *Registry) Resolve(input string) (*Command, bool) {
	cmd, ok := r.byName[strings.ToLower(strings.TrimSpace(input))]
	return cmd, ok
}

// Commands returns every command once, sorted by name.
func (r *Registry) Commands() []*Command {
	return slices.Clone(r.sorted)
}

// CommandsByCategory groups Commands by category, each group sorted by name.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	categories := make(map[string][]*Command)
	for _, cmd := range r.sorted {
		categories[cmd.Category] = append(categories[cmd.Category], cmd)
	}
	return categories
}
