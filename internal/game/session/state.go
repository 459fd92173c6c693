// Package session defines the single mutable document that describes one
// game: world clock, party, enemies and combat bookkeeping.
package session

import (
	"sort"
	"strconv"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/character"
	"github.com/cory-johannsen/wasteland/internal/game/npc"
	"github.com/cory-johannsen/wasteland/internal/game/world"
)

// Mode is the turn-advance regime.
type Mode string

const (
	Exploration Mode = "exploration"
	Combat      Mode = "combat"
)

// ParseMode accepts "exploration" or "combat".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Exploration, Combat:
		return Mode(s), nil
	}
	return "", errors.InvalidInputf("Invalid mode: %s", s).
		WithMeta("valid_modes", []Mode{Exploration, Combat})
}

// MaxLogEntries is how many event log entries are retained.
const MaxLogEntries = 50

// LogEntry is one narrative log line.
type LogEntry struct {
	Turn  int    `json:"turn"`
	Event string `json:"event"`
}

// State is the root session document. It exclusively owns every Player and
// Enemy; nothing else holds references to them between invocations.
type State struct {
	SessionID        string                       `json:"session_id"`
	Mode             Mode                         `json:"mode"`
	Turn             int                          `json:"turn"`
	CombatRound      int                          `json:"combat_round"`
	Chapter          int                          `json:"chapter"`
	ChapterStartTurn int                          `json:"chapter_start_turn"`
	ChapterTitle     string                       `json:"chapter_title"`
	Location         string                       `json:"location"`
	Quest            string                       `json:"quest"`
	TimeOfDay        string                       `json:"time_of_day"`
	Day              int                          `json:"day"`
	Weather          string                       `json:"weather"`
	Flags            []string                     `json:"flags"`
	EventLog         []LogEntry                   `json:"event_log"`
	TurnActions      map[string]bool              `json:"turn_actions"`
	Players          map[string]*character.Player `json:"players"`
	Enemies          map[string]*npc.Enemy        `json:"enemies"`
}

// New returns the opening state of a fresh game.
func New(sessionID string) *State {
	return &State{
		SessionID:    sessionID,
		Mode:         Exploration,
		Chapter:      1,
		ChapterTitle: "Leaving the Vault",
		Location:     "Vault 111",
		Quest:        "Escape the vault",
		TimeOfDay:    world.TimesOfDay[0],
		Day:          1,
		Weather:      "Clear",
		Flags:        []string{},
		EventLog:     []LogEntry{},
		TurnActions:  map[string]bool{},
		Players:      map[string]*character.Player{},
		Enemies:      map[string]*npc.Enemy{},
	}
}

// Normalize fills in collections and defaults that an older or hand-edited
// document may lack.
func (s *State) Normalize() {
	if s.Mode == "" {
		s.Mode = Exploration
	}
	if s.Chapter == 0 {
		s.Chapter = 1
	}
	if s.Day == 0 {
		s.Day = 1
	}
	if s.TimeOfDay == "" {
		s.TimeOfDay = world.TimesOfDay[0]
	}
	if s.Flags == nil {
		s.Flags = []string{}
	}
	if s.EventLog == nil {
		s.EventLog = []LogEntry{}
	}
	if s.TurnActions == nil {
		s.TurnActions = map[string]bool{}
	}
	if s.Players == nil {
		s.Players = map[string]*character.Player{}
	}
	if s.Enemies == nil {
		s.Enemies = map[string]*npc.Enemy{}
	}
}

// Player returns the named player or NotFound listing the party.
func (s *State) Player(name string) (*character.Player, error) {
	if p, ok := s.Players[name]; ok {
		return p, nil
	}
	return nil, errors.NotFoundf("Player not found: %s", name).
		WithMeta("available_players", s.PlayerNames())
}

// Enemy returns the named enemy or NotFound listing the battlefield.
func (s *State) Enemy(name string) (*npc.Enemy, error) {
	if e, ok := s.Enemies[name]; ok {
		return e, nil
	}
	return nil, errors.NotFoundf("Enemy not found: %s", name).
		WithMeta("available_enemies", s.EnemyNames())
}

// PlayerNames returns the sorted player names.
func (s *State) PlayerNames() []string {
	return sortedKeys(s.Players)
}

// EnemyNames returns the sorted enemy names.
func (s *State) EnemyNames() []string {
	return sortedKeys(s.Enemies)
}

// AliveEnemies returns the sorted names of enemies still alive.
func (s *State) AliveEnemies() []string {
	var out []string
	for _, name := range s.EnemyNames() {
		if s.Enemies[name].IsAlive() {
			out = append(out, name)
		}
	}
	return out
}

// AliveEnemyHP sums current HP over living enemies.
func (s *State) AliveEnemyHP() int {
	total := 0
	for _, e := range s.Enemies {
		if e.IsAlive() {
			total += e.HP
		}
	}
	return total
}

// PurgeDead removes every dead enemy and returns their sorted names.
func (s *State) PurgeDead() []string {
	var removed []string
	for _, name := range s.EnemyNames() {
		if !s.Enemies[name].IsAlive() {
			delete(s.Enemies, name)
			removed = append(removed, name)
		}
	}
	return removed
}

// AddFlag appends flag unless already present.
func (s *State) AddFlag(flag string) bool {
	for _, f := range s.Flags {
		if f == flag {
			return false
		}
	}
	s.Flags = append(s.Flags, flag)
	return true
}

// RemoveFlag deletes flag and reports whether it was present.
func (s *State) RemoveFlag(flag string) bool {
	for i, f := range s.Flags {
		if f == flag {
			s.Flags = append(s.Flags[:i], s.Flags[i+1:]...)
			return true
		}
	}
	return false
}

// AppendLog records event at the current turn, keeping the newest MaxLogEntries.
func (s *State) AppendLog(event string) {
	s.EventLog = append(s.EventLog, LogEntry{Turn: s.Turn, Event: event})
	if n := len(s.EventLog); n > MaxLogEntries {
		s.EventLog = append([]LogEntry(nil), s.EventLog[n-MaxLogEntries:]...)
	}
}

// SettableFields lists what Set accepts.
var SettableFields = []string{"chapter", "location", "quest", "time_of_day", "weather", "chapter_title"}

// Set assigns a plain state field from its textual value and returns the old
// and new values. Setting the chapter also moves ChapterStartTurn to the
// current turn so the new chapter's safe window starts now.
func (s *State) Set(field, value string) (any, any, error) {
	switch field {
	case "chapter":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, nil, errors.InvalidInputf("chapter must be a number, got: %s", value)
		}
		if n < 1 {
			return nil, nil, errors.InvalidInputf("chapter must be >= 1, got %d", n)
		}
		old := s.Chapter
		s.Chapter = n
		s.ChapterStartTurn = s.Turn
		return old, n, nil
	case "location":
		old := s.Location
		s.Location = value
		return old, value, nil
	case "quest":
		old := s.Quest
		s.Quest = value
		return old, value, nil
	case "time_of_day":
		if !world.ValidTimeOfDay(value) {
			return nil, nil, errors.InvalidInputf("Invalid time_of_day: %s", value).
				WithMeta("valid_values", world.TimesOfDay)
		}
		old := s.TimeOfDay
		s.TimeOfDay = value
		return old, value, nil
	case "weather":
		old := s.Weather
		s.Weather = value
		return old, value, nil
	case "chapter_title":
		old := s.ChapterTitle
		s.ChapterTitle = value
		return old, value, nil
	}
	return nil, nil, errors.InvalidInputf("Invalid field: %s", field).
		WithMeta("valid_fields", append(append([]string{}, SettableFields...), "mode"))
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
