package session_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/npc"
	"github.com/cory-johannsen/wasteland/internal/game/session"
)

func TestNew_Defaults(t *testing.T) {
	s := session.New("abc")
	assert.Equal(t, session.Exploration, s.Mode)
	assert.Equal(t, 1, s.Chapter)
	assert.Equal(t, 1, s.Day)
	assert.Equal(t, "Early Morning", s.TimeOfDay)
	assert.Empty(t, s.Players)
	assert.NotNil(t, s.TurnActions)
}

func TestNormalize_FillsCollections(t *testing.T) {
	var s session.State
	require.NoError(t, json.Unmarshal([]byte(`{"turn": 4}`), &s))
	s.Normalize()
	assert.Equal(t, session.Exploration, s.Mode)
	assert.NotNil(t, s.Players)
	assert.NotNil(t, s.Enemies)
	assert.Equal(t, 4, s.Turn)
}

func TestPlayer_NotFoundListsAvailable(t *testing.T) {
	s := session.New("abc")
	_, err := s.Player("Ghost")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, []string{}, errors.GetMeta(err)["available_players"])
}

func TestPurgeDead(t *testing.T) {
	s := session.New("abc")
	s.Enemies["a"] = &npc.Enemy{HP: 0, MaxHP: 5, Status: npc.Dead}
	s.Enemies["b"] = &npc.Enemy{HP: 5, MaxHP: 5, Status: npc.Alive}
	assert.Equal(t, []string{"a"}, s.PurgeDead())
	assert.Equal(t, []string{"b"}, s.EnemyNames())
	assert.Equal(t, 5, s.AliveEnemyHP())
}

func TestFlags_Unique(t *testing.T) {
	s := session.New("abc")
	assert.True(t, s.AddFlag("met_trader"))
	assert.False(t, s.AddFlag("met_trader"))
	assert.Equal(t, []string{"met_trader"}, s.Flags)
	assert.True(t, s.RemoveFlag("met_trader"))
	assert.False(t, s.RemoveFlag("met_trader"))
}

func TestAppendLog_KeepsLast50(t *testing.T) {
	s := session.New("abc")
	for i := 0; i < 60; i++ {
		s.AppendLog(fmt.Sprintf("event %d", i))
	}
	require.Len(t, s.EventLog, session.MaxLogEntries)
	assert.Equal(t, "event 10", s.EventLog[0].Event)
}

func TestSet_ChapterMovesStartTurn(t *testing.T) {
	s := session.New("abc")
	s.Turn = 17
	old, val, err := s.Set("chapter", "2")
	require.NoError(t, err)
	assert.Equal(t, 1, old)
	assert.Equal(t, 2, val)
	assert.Equal(t, 17, s.ChapterStartTurn)
}

func TestSet_Rejections(t *testing.T) {
	s := session.New("abc")
	_, _, err := s.Set("chapter", "two")
	assert.True(t, errors.IsInvalidInput(err))
	_, _, err = s.Set("time_of_day", "Teatime")
	assert.True(t, errors.IsInvalidInput(err))
	_, _, err = s.Set("hp", "10")
	assert.True(t, errors.IsInvalidInput(err))
}
