package combat

import (
	"github.com/cory-johannsen/wasteland/internal/game/condition"
	"github.com/cory-johannsen/wasteland/internal/game/session"
	"github.com/cory-johannsen/wasteland/internal/game/world"
)

// DefaultEventChance is the percent chance of a flavor event on a quiet
// exploration turn.
const DefaultEventChance = 10

// Env carries the collaborators an advance needs.
type Env struct {
	Roller      Roller
	Tables      *world.Tables
	EventChance int
}

// EffectStatus is one surviving effect after a tick. Remaining is -1 for a
// permanent effect.
type EffectStatus struct {
	Player    string `json:"player"`
	Effect    string `json:"effect"`
	Remaining int    `json:"remaining"`
}

// ExpiredEffect is one effect removed by a tick.
type ExpiredEffect struct {
	Player string `json:"player"`
	Effect string `json:"effect"`
}

// AdvanceReport describes everything one turn or round changed.
type AdvanceReport struct {
	Mode           session.Mode    `json:"mode"`
	Turn           int             `json:"turn"`
	CombatRound    int             `json:"combat_round"`
	Chapter        int             `json:"chapter"`
	TimeOfDay      string          `json:"time_of_day"`
	Day            int             `json:"day"`
	NewDay         bool            `json:"new_day,omitempty"`
	Weather        *world.Weather  `json:"weather,omitempty"`
	ExpiredEffects []ExpiredEffect `json:"expired_effects,omitempty"`
	ActiveEffects  []EffectStatus  `json:"active_effects,omitempty"`
	Deaths         []string        `json:"deaths,omitempty"`
	PurgedEnemies  []string        `json:"purged_enemies,omitempty"`
	ModeTransition *Transition     `json:"mode_transition,omitempty"`
	RandomEvent    *world.Event    `json:"random_event,omitempty"`
}

// Advance moves the session forward one unit of time according to its mode.
//
// In exploration it increments the turn, steps the clock every third turn,
// rolls new weather when a day begins, ticks effects, purges dead enemies and,
// when no enemy is alive, rolls for a random flavor event. In combat it
// increments only the combat round, ticks effects, purges dead enemies and
// leaves combat when none remain alive. Both reset the action registry.
func Advance(s *session.State, env Env) AdvanceReport {
	var r AdvanceReport
	if s.Mode == session.Combat {
		s.CombatRound++
		tickEffects(s, &r)
		r.PurgedEnemies = s.PurgeDead()
		if len(s.AliveEnemies()) == 0 {
			t := ExitCombat(s)
			r.ModeTransition = &t
		}
	} else {
		s.Turn++
		step := world.AdvanceClock(s.Turn, s.TimeOfDay)
		s.TimeOfDay = step.TimeOfDay
		if step.NewDay {
			s.Day++
			w := env.Tables.RollWeather(env.Roller)
			s.Weather = w.Weather
			r.NewDay = true
			r.Weather = &w
		}
		tickEffects(s, &r)
		r.PurgedEnemies = s.PurgeDead()
		if len(s.AliveEnemies()) == 0 && env.EventChance > 0 {
			if env.Roller.Intn(100)+1 <= env.EventChance {
				ev := env.Tables.RandomEvent(env.Roller)
				r.RandomEvent = &ev
			}
		}
	}
	s.TurnActions = map[string]bool{}

	r.Mode = s.Mode
	r.Turn = s.Turn
	r.CombatRound = s.CombatRound
	r.Chapter = s.Chapter
	r.TimeOfDay = s.TimeOfDay
	r.Day = s.Day
	return r
}

// tickEffects ticks every player's effects in name order. A player whose
// Incapacitated effect expires while still at 0 HP dies.
func tickEffects(s *session.State, r *AdvanceReport) {
	for _, name := range s.PlayerNames() {
		p := s.Players[name]
		tick := p.StatusEffects.Tick()
		for _, a := range tick.Active {
			r.ActiveEffects = append(r.ActiveEffects, EffectStatus{Player: name, Effect: a.Effect, Remaining: a.Remaining})
		}
		for _, e := range tick.Expired {
			r.ExpiredEffects = append(r.ExpiredEffects, ExpiredEffect{Player: name, Effect: e})
			if e == condition.Incapacitated && p.HP <= 0 && !p.Dead {
				p.Dead = true
				r.Deaths = append(r.Deaths, name)
			}
		}
	}
}
