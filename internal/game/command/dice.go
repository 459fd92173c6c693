package command

import (
	"strings"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/check"
)

// OracleMeanings maps an oracle d6 to its narrative answer.
var OracleMeanings = map[int]string{
	1: "No, and things get worse",
	2: "No",
	3: "No, but there's a silver lining",
	4: "Yes, but at a cost",
	5: "Yes",
	6: "Yes, and something extra",
}

// HandleRoll rolls an NdM expression.
func HandleRoll(env *Env, args []string) (any, error) {
	if len(args) == 0 {
		return nil, usage("roll <NdM>, e.g. roll 2d20")
	}
	res, err := env.Roller.RollExpr(args[0])
	if err != nil {
		return nil, errors.InvalidInputf("Invalid dice expression: %s (%v)", args[0], err).
			WithHint("Format: NdM with N and M between 1 and 100, e.g. 2d20")
	}
	return Payload{
		"dice":    res.Expression,
		"results": res.Dice,
		"total":   res.Total(),
		"min":     res.Min(),
		"max":     res.Max(),
	}, nil
}

// splitParticipants reads a comma-separated participant list.
func splitParticipants(raw string) []string {
	var names []string
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// HandleCheck resolves a solo, assisted or group skill check.
func HandleCheck(env *Env, args []string) (any, error) {
	if len(args) < 4 {
		return nil, usage("check <player[,player...]> <attribute> <skill> <difficulty> [ap_spend]").
			WithHint("Example: check Jake,Sarah PER Lockpick 2 1")
	}
	names := splitParticipants(args[0])
	req := check.Request{
		Participants: make([]check.Participant, 0, len(names)),
		Attribute:    args[1],
		Skill:        args[2],
	}
	for _, name := range names {
		p, err := env.State.Player(name)
		if err != nil {
			return nil, err
		}
		req.Participants = append(req.Participants, check.Participant{Name: name, Player: p})
	}
	var err error
	if req.Difficulty, err = parseInt(args[3], "difficulty"); err != nil {
		return nil, err
	}
	if req.APSpend, err = optionalInt(args, 4, "ap_spend", 0); err != nil {
		return nil, err
	}
	res, err := check.Resolve(env.Roller, req)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// HandleAssistCheck exists only to point callers at the unified check.
func HandleAssistCheck(_ *Env, _ []string) (any, error) {
	return nil, errors.Deprecatedf("'assist-check' is deprecated. Use 'check A,B <attribute> <skill> <difficulty>' instead.").
		WithHint("Example: check Jake,Sarah PER Lockpick 2")
}

// HandleOracle answers a yes/no question with a d6.
func HandleOracle(env *Env, _ []string) (any, error) {
	d := env.Roller.Roll(1, 6)[0]
	return Payload{"oracle_d6": d, "meaning": OracleMeanings[d]}, nil
}
