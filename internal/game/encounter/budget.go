// Package encounter gates enemy additions against the chapter's encounter budget.
package encounter

import (
	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/session"
)

// Rule is one chapter's encounter limits.
type Rule struct {
	MaxTier   int `json:"max_tier"`
	HPBudget  int `json:"hp_budget"`
	SafeTurns int `json:"safe_turns"`
}

// Rules maps chapters 1-6 to their limits, in order. Chapters outside the table
// use the nearest entry.
var Rules = []Rule{
	{MaxTier: 1, HPBudget: 30, SafeTurns: 2},
	{MaxTier: 2, HPBudget: 60, SafeTurns: 1},
	{MaxTier: 2, HPBudget: 80, SafeTurns: 1},
	{MaxTier: 3, HPBudget: 120, SafeTurns: 0},
	{MaxTier: 4, HPBudget: 180, SafeTurns: 0},
	{MaxTier: 5, HPBudget: 250, SafeTurns: 0},
}

// TurnsPerDay is the length of a chapter day for the count ramp.
const TurnsPerDay = 24

// RuleFor returns the rule for chapter, clamped into the table.
func RuleFor(chapter int) Rule {
	i := min(max(chapter, 1), len(Rules)) - 1
	return Rules[i]
}

// EffectiveBudget scales a base HP budget by party size:
// floor(base * (1 + 0.5 * (players - 1))), with at least one player assumed.
func EffectiveBudget(base, players int) int {
	players = max(players, 1)
	return base * (players + 1) / 2
}

// MaxAliveFor is the alive-enemy limit on the given chapter day; 0 means unlimited.
func MaxAliveFor(day int) int {
	switch day {
	case 0:
		return 1
	case 1:
		return 2
	default:
		return 0
	}
}

// Validate decides whether an enemy of tier and hp may join the current
// encounter. Rules are checked in order: tier ceiling, safe-turn window, count
// ramp, HP budget. The first violation is returned as BudgetExceeded carrying
// the numbers involved.
func Validate(s *session.State, tier, hp int) error {
	rule := RuleFor(s.Chapter)
	turnsInChapter := max(0, s.Turn-s.ChapterStartTurn)

	if tier > rule.MaxTier {
		return errors.BudgetExceededf("Tier %d enemy exceeds chapter %d maximum tier %d", tier, s.Chapter, rule.MaxTier).
			WithMeta("reason", "tier_ceiling").
			WithMeta("enemy_tier", tier).
			WithMeta("max_tier", rule.MaxTier).
			WithMeta("chapter", s.Chapter)
	}

	if turnsInChapter < rule.SafeTurns && tier >= 2 {
		return errors.BudgetExceededf("Only tier 1 enemies are allowed during the first %d turns of chapter %d (turn %d of chapter)",
			rule.SafeTurns, s.Chapter, turnsInChapter).
			WithMeta("reason", "safe_turns").
			WithMeta("enemy_tier", tier).
			WithMeta("safe_turns", rule.SafeTurns).
			WithMeta("turns_in_chapter", turnsInChapter)
	}

	alive := len(s.AliveEnemies())
	day := turnsInChapter / TurnsPerDay
	if limit := MaxAliveFor(day); limit > 0 && alive+1 > limit {
		return errors.BudgetExceededf("At most %d enemies may be alive on day %d of the chapter; %d already alive", limit, day, alive).
			WithMeta("reason", "count_ramp").
			WithMeta("alive_enemies", alive).
			WithMeta("max_alive", limit).
			WithMeta("chapter_day", day)
	}

	budget := EffectiveBudget(rule.HPBudget, len(s.Players))
	aliveHP := s.AliveEnemyHP()
	if aliveHP+hp > budget {
		return errors.BudgetExceededf("Enemy HP %d would bring the encounter to %d, over the budget of %d", hp, aliveHP+hp, budget).
			WithMeta("reason", "hp_budget").
			WithMeta("enemy_hp", hp).
			WithMeta("alive_hp", aliveHP).
			WithMeta("hp_budget", budget).
			WithMeta("remaining_budget", max(0, budget-aliveHP))
	}
	return nil
}
