// Package check resolves 2d20 dice-pool skill checks for one or more players.
package check

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/character"
)

const (
	// LeaderDice is the number of dice the leader always rolls.
	LeaderDice = 2
	// MaxPool is the hard cap on dice in one check.
	MaxPool = 5
	// MaxAPSpend is the most AP a leader may spend on extra dice.
	MaxAPSpend = 3
	// CheckDie is the die every check rolls.
	CheckDie = 20
)

// Mode labels by participant count.
const (
	Solo     = "solo"
	Assisted = "assisted"
	Group    = "group"
)

// Roller is the dice capability a check needs.
type Roller interface {
	Roll(count, sides int) []int
}

// Participant is one named player taking part in a check.
type Participant struct {
	Name   string
	Player *character.Player
}

// Request describes a check before it is resolved.
type Request struct {
	Participants []Participant
	Attribute    string
	Skill        string
	Difficulty   int
	APSpend      int
}

// Result is the full account of a resolved check.
type Result struct {
	Mode                   string         `json:"mode"`
	Attribute              string         `json:"attribute"`
	Skill                  string         `json:"skill"`
	Difficulty             int            `json:"difficulty"`
	Leader                 string         `json:"leader"`
	Helpers                []string       `json:"helpers"`
	TargetNumbers          map[string]int `json:"target_numbers"`
	DicePool               string         `json:"dice_pool"`
	Dice                   []int          `json:"dice"`
	Details                []string       `json:"details"`
	LeaderSuccesses        int            `json:"leader_successes"`
	TotalSuccesses         int            `json:"total_successes"`
	HelperSuccessesCounted bool           `json:"helper_successes_counted"`
	Crits                  int            `json:"crits"`
	Complications          int            `json:"complications"`
	Passed                 bool           `json:"passed"`
	Verdict                string         `json:"verdict"`
	APSpent                int            `json:"ap_spent"`
	ExcessAP               int            `json:"excess_ap"`
	APBefore               int            `json:"ap_before"`
	APAfter                int            `json:"ap_after"`
	APDelta                int            `json:"ap_delta"`
}

// ModeFor derives the check mode from the participant count.
func ModeFor(n int) string {
	switch {
	case n <= 1:
		return Solo
	case n == 2:
		return Assisted
	default:
		return Group
	}
}

// MaxAPFor is the largest AP spend that keeps a check of n participants within MaxPool.
func MaxAPFor(n int) int {
	return min(MaxAPSpend, max(0, MaxPool-(LeaderDice+n-1)))
}

// SelectLeader returns the index of the participant with the highest target
// number. Ties go to the earliest listed participant.
//
// Precondition: len(targets) > 0.
func SelectLeader(targets []int) int {
	leader := 0
	for i := 1; i < len(targets); i++ {
		if targets[i] > targets[leader] {
			leader = i
		}
	}
	return leader
}

// Resolve runs a check. The leader's AP is debited by APSpend before any die
// is rolled and credited with the successes beyond Difficulty on a pass; helper
// AP is never touched.
//
// Postcondition: on error no dice were rolled and no player was changed.
func Resolve(roller Roller, req Request) (*Result, error) {
	n := len(req.Participants)
	if n == 0 {
		return nil, errors.InvalidInput("at least one participant is required")
	}
	seen := make(map[string]bool, n)
	for _, p := range req.Participants {
		if seen[p.Name] {
			return nil, errors.InvalidInputf("Duplicate participant: %s", p.Name)
		}
		seen[p.Name] = true
	}
	attr, err := character.ParseAttribute(req.Attribute)
	if err != nil {
		return nil, err
	}
	skill, err := character.ParseSkill(req.Skill)
	if err != nil {
		return nil, err
	}
	if req.Difficulty < 0 {
		return nil, errors.InvalidInputf("Difficulty must be non-negative, got %d", req.Difficulty)
	}
	if req.APSpend < 0 || req.APSpend > MaxAPSpend {
		return nil, errors.InvalidInputf("AP spend must be 0-%d, got %d", MaxAPSpend, req.APSpend)
	}
	base := LeaderDice + n - 1
	if base+req.APSpend > MaxPool {
		return nil, errors.InvalidInputf("AP spend %d would exceed the %d-dice pool; maximum for %d participants is %d",
			req.APSpend, MaxPool, n, MaxAPFor(n)).
			WithMeta("max_ap_spend", MaxAPFor(n)).
			WithMeta("actual_ap", MaxAPFor(n))
	}

	targets := make([]int, n)
	targetByName := make(map[string]int, n)
	for i, p := range req.Participants {
		targets[i] = character.EffectiveAttribute(p.Player, attr) + p.Player.SkillLevel(skill)
		targetByName[p.Name] = targets[i]
	}
	li := SelectLeader(targets)
	leader := req.Participants[li]
	helpers := make([]Participant, 0, n-1)
	for i, p := range req.Participants {
		if i != li {
			helpers = append(helpers, p)
		}
	}

	apBefore := leader.Player.AP
	if err := leader.Player.SpendAP(req.APSpend); err != nil {
		return nil, err
	}

	leaderCount := LeaderDice + req.APSpend
	total := leaderCount + len(helpers)
	rolled := roller.Roll(total, CheckDie)

	res := &Result{
		Mode:          ModeFor(n),
		Attribute:     fmt.Sprintf("%s (%d)", attr, character.EffectiveAttribute(leader.Player, attr)),
		Skill:         string(skill),
		Difficulty:    req.Difficulty,
		Leader:        leader.Name,
		Helpers:       make([]string, 0, len(helpers)),
		TargetNumbers: targetByName,
		DicePool:      poolDescription(req.APSpend, len(helpers), total),
		Dice:          rolled,
		Details:       make([]string, 0, total),
		APSpent:       req.APSpend,
		APBefore:      apBefore,
	}
	for _, h := range helpers {
		res.Helpers = append(res.Helpers, h.Name)
	}

	for _, d := range rolled[:leaderCount] {
		o := evaluate(d, targets[li], leader.Player, skill)
		res.LeaderSuccesses += o.successes
		res.tally(o)
		res.Details = append(res.Details, fmt.Sprintf("[%s] %s", leader.Name, o.detail))
	}

	res.HelperSuccessesCounted = res.LeaderSuccesses >= 1
	helperSuccesses := 0
	for i, h := range helpers {
		d := rolled[leaderCount+i]
		o := evaluate(d, targetByName[h.Name], h.Player, skill)
		helperSuccesses += o.successes
		res.tally(o)
		detail := fmt.Sprintf("[%s] %s", h.Name, o.detail)
		if !res.HelperSuccessesCounted && o.successes > 0 {
			detail += " (not counted: leader scored no successes)"
		}
		res.Details = append(res.Details, detail)
	}

	res.TotalSuccesses = res.LeaderSuccesses
	if res.HelperSuccessesCounted {
		res.TotalSuccesses += helperSuccesses
	}
	res.Passed = res.TotalSuccesses >= req.Difficulty
	if res.Passed {
		res.Verdict = "Success!"
		res.ExcessAP = res.TotalSuccesses - req.Difficulty
		leader.Player.AdjustAP(res.ExcessAP)
	} else {
		res.Verdict = "Failure..."
	}
	res.APAfter = leader.Player.AP
	res.APDelta = res.APAfter - res.APBefore
	return res, nil
}

type outcome struct {
	successes    int
	crit         bool
	complication bool
	detail       string
}

// evaluate scores one d20 against target. A natural 1 is two successes and a
// crit; a natural 20 is a complication and nothing else; otherwise a die at or
// under target succeeds, doubled as a tag crit when the skill is tagged and the
// die is at or under the raw skill level.
func evaluate(d, target int, p *character.Player, skill character.Skill) outcome {
	switch {
	case d == 1:
		return outcome{successes: 2, crit: true, detail: fmt.Sprintf("%d -> Critical Success (+2)", d)}
	case d == 20:
		return outcome{complication: true, detail: fmt.Sprintf("%d -> Complication!", d)}
	case d <= target:
		if p.IsTagged(skill) && d <= p.SkillLevel(skill) {
			return outcome{successes: 2, crit: true, detail: fmt.Sprintf("%d -> Success + Tag Skill Crit (+1)", d)}
		}
		return outcome{successes: 1, detail: fmt.Sprintf("%d -> Success", d)}
	default:
		return outcome{detail: fmt.Sprintf("%d -> Failure", d)}
	}
}

func (r *Result) tally(o outcome) {
	if o.crit {
		r.Crits++
	}
	if o.complication {
		r.Complications++
	}
}

func poolDescription(ap, helpers, total int) string {
	parts := []string{fmt.Sprintf("%d leader", LeaderDice)}
	if ap > 0 {
		parts = append(parts, fmt.Sprintf("%d AP", ap))
	}
	if helpers > 0 {
		parts = append(parts, fmt.Sprintf("%d helper", helpers))
	}
	return fmt.Sprintf("%s = %dd20", strings.Join(parts, " + "), total)
}
