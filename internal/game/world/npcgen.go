package world

import (
	"fmt"

	"github.com/cory-johannsen/wasteland/internal/game/dice"
)

// MaxGeneratedNPCs bounds one npc-gen call.
const MaxGeneratedNPCs = 5

// NPC is a generated non-combatant.
type NPC struct {
	Name        string `json:"name"`
	Appearance  string `json:"appearance"`
	Motive      string `json:"motive"`
	Knowledge   string `json:"knowledge"`
	SpeechStyle string `json:"speech_style"`
}

// GenerateNPCs assembles count NPCs from the word lists.
//
// Precondition: count is already clamped to [1, MaxGeneratedNPCs].
func (t *Tables) GenerateNPCs(count int, src dice.Source) []NPC {
	pick := func(list []string) string { return list[src.Intn(len(list))] }
	out := make([]NPC, 0, count)
	for i := 0; i < count; i++ {
		name := pick(t.NPC.Surnames) + " " + pick(t.NPC.Names)
		build := pick(t.NPC.Builds)
		feature := pick(t.NPC.Features)
		clothes := pick(t.NPC.Clothes)
		out = append(out, NPC{
			Name:        name,
			Appearance:  fmt.Sprintf("%s, %s, wearing %s", build, feature, clothes),
			Motive:      pick(t.NPC.Motives),
			Knowledge:   pick(t.NPC.Knowledge),
			SpeechStyle: pick(t.NPC.Speech),
		})
	}
	return out
}
