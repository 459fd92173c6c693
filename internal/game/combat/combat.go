// Package combat implements the exploration/combat mode state machine, turn
// advancement, and the enemy attack and damage dice resolvers.
package combat

import (
	"sort"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/session"
)

// Roller is the dice capability combat resolution needs. *dice.Roller
// satisfies it.
type Roller interface {
	Roll(count, sides int) []int
	D20() int
	Intn(n int) int
}

// Transition reports a mode change request.
type Transition struct {
	From    session.Mode `json:"from"`
	To      session.Mode `json:"to"`
	Changed bool         `json:"changed"`
}

// EnterCombat switches to combat. It is a no-op when already in combat.
func EnterCombat(s *session.State) Transition {
	return transition(s, session.Combat)
}

// ExitCombat switches to exploration. It is a no-op when already exploring.
func ExitCombat(s *session.State) Transition {
	return transition(s, session.Exploration)
}

// SetMode is the explicit override: it transitions when the mode differs and
// always clears the round's action registry.
func SetMode(s *session.State, mode session.Mode) Transition {
	t := transition(s, mode)
	clear(s.TurnActions)
	return t
}

// transition sets mode, resetting the combat round and action registry, unless
// the state is already in that mode.
func transition(s *session.State, to session.Mode) Transition {
	t := Transition{From: s.Mode, To: to}
	if s.Mode == to {
		return t
	}
	s.Mode = to
	s.CombatRound = 0
	s.TurnActions = map[string]bool{}
	t.Changed = true
	return t
}

// ActionStatus is the round's action registry after a registration.
type ActionStatus struct {
	Actor    string   `json:"actor"`
	Acted    []string `json:"acted"`
	Pending  []string `json:"pending"`
	AllActed bool     `json:"all_acted"`
}

// RegisterAction marks actor as having acted this round. Registering twice is
// harmless. The expected actors are every player with HP above 0 and every
// living enemy.
//
// Postcondition: Returns NotFound when actor is neither a player nor an enemy.
func RegisterAction(s *session.State, actor string) (ActionStatus, error) {
	_, isPlayer := s.Players[actor]
	_, isEnemy := s.Enemies[actor]
	if !isPlayer && !isEnemy {
		return ActionStatus{}, errors.NotFoundf("Unknown actor: %s", actor).
			WithMeta("available_actors", append(s.PlayerNames(), s.EnemyNames()...))
	}
	if s.TurnActions == nil {
		s.TurnActions = map[string]bool{}
	}
	s.TurnActions[actor] = true
	return actionStatus(s, actor), nil
}

func actionStatus(s *session.State, actor string) ActionStatus {
	st := ActionStatus{Actor: actor, Acted: []string{}, Pending: []string{}}
	for name, acted := range s.TurnActions {
		if acted {
			st.Acted = append(st.Acted, name)
		}
	}
	sort.Strings(st.Acted)
	for _, name := range ExpectedActors(s) {
		if !s.TurnActions[name] {
			st.Pending = append(st.Pending, name)
		}
	}
	st.AllActed = len(st.Pending) == 0
	return st
}

// ExpectedActors lists, sorted, the players with HP above 0 followed by the
// living enemies.
func ExpectedActors(s *session.State) []string {
	var out []string
	for _, name := range s.PlayerNames() {
		if s.Players[name].Active() {
			out = append(out, name)
		}
	}
	return append(out, s.AliveEnemies()...)
}
