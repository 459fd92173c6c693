package npc

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/dice"
)

//go:embed content/loot.yaml
var lootYAML []byte

// MaxLootCount bounds how many items one loot roll may produce.
const MaxLootCount = 10

// tierWeights are the percentages used when no tier is requested.
var tierWeights = []struct {
	tier   string
	weight int
}{
	{"junk", 35}, {"common", 35}, {"uncommon", 20}, {"rare", 8}, {"unique", 2},
}

// LootTier is one named pool of items.
type LootTier struct {
	Tier  string   `yaml:"tier"`
	Items []string `yaml:"items"`
}

// LootDrop is one generated item with its tier.
type LootDrop struct {
	Tier string `json:"tier"`
	Item string `json:"item"`
}

// LootTables holds every loot pool by tier.
type LootTables struct {
	tiers []LootTier
	pools map[string][]string
}

// LoadLootTables parses a YAML list of loot tiers.
//
// Postcondition: every tier has at least one item, or an error is returned.
func LoadLootTables(data []byte) (*LootTables, error) {
	var tiers []LootTier
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tiers); err != nil {
		return nil, fmt.Errorf("parsing loot tables: %w", err)
	}
	lt := &LootTables{tiers: tiers, pools: make(map[string][]string, len(tiers))}
	for _, t := range tiers {
		if len(t.Items) == 0 {
			return nil, fmt.Errorf("loot tier %q: must list at least one item", t.Tier)
		}
		lt.pools[t.Tier] = t.Items
	}
	return lt, nil
}

// DefaultLootTables returns the built-in loot pools.
//
// Postcondition: panics if the embedded table is malformed.
func DefaultLootTables() *LootTables {
	lt, err := LoadLootTables(lootYAML)
	if err != nil {
		panic(fmt.Sprintf("loading embedded loot tables: %v", err))
	}
	return lt
}

// Tiers returns the tier names in table order.
func (lt *LootTables) Tiers() []string {
	out := make([]string, 0, len(lt.tiers))
	for _, t := range lt.tiers {
		out = append(out, t.Tier)
	}
	return out
}

// FromTier draws count distinct items from tier.
//
// Precondition: count is already clamped to [1, MaxLootCount].
// Postcondition: Returns min(count, pool size) items, or InvalidInput for an unknown tier.
func (lt *LootTables) FromTier(tier string, count int, src dice.Source) ([]string, error) {
	pool, ok := lt.pools[tier]
	if !ok {
		return nil, errors.InvalidInputf("Unknown tier: %s", tier).
			WithMeta("valid_tiers", lt.Tiers())
	}
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	n := min(count, len(pool))
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		j := i + src.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out = append(out, pool[idx[i]])
	}
	return out, nil
}

// Weighted draws count items, picking each item's tier by the fixed weights.
func (lt *LootTables) Weighted(count int, src dice.Source) []LootDrop {
	out := make([]LootDrop, 0, count)
	for i := 0; i < count; i++ {
		roll := src.Intn(100) + 1
		chosen := tierWeights[0].tier
		cumulative := 0
		for _, w := range tierWeights {
			cumulative += w.weight
			if roll <= cumulative {
				chosen = w.tier
				break
			}
		}
		pool := lt.pools[chosen]
		if len(pool) == 0 {
			continue
		}
		out = append(out, LootDrop{Tier: chosen, Item: pool[src.Intn(len(pool))]})
	}
	return out
}

// Drop picks the single item an enemy leaves behind for its drops tier.
//
// Postcondition: ok is false for the "none" tier or an unknown tier.
func (lt *LootTables) Drop(tier string, src dice.Source) (LootDrop, bool) {
	pool, found := lt.pools[tier]
	if !found || len(pool) == 0 {
		return LootDrop{}, false
	}
	return LootDrop{Tier: tier, Item: pool[src.Intn(len(pool))]}, true
}
