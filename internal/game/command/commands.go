// Package command provides the command registry and the handlers behind every
// wasteland command.
package command

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/wasteland/internal/game/condition"
	"github.com/cory-johannsen/wasteland/internal/game/dice"
	"github.com/cory-johannsen/wasteland/internal/game/npc"
	"github.com/cory-johannsen/wasteland/internal/game/session"
	"github.com/cory-johannsen/wasteland/internal/game/world"
)

// Categories for organizing commands.
const (
	CategorySetup     = "setup"
	CategoryCharacter = "character"
	CategoryDice      = "dice"
	CategoryCombat    = "combat"
	CategoryEnemy     = "enemy"
	CategoryWorld     = "world"
	CategorySystem    = "system"
)

// StateUse declares how a command touches the session document.
type StateUse int

const (
	// StateNone commands never load or save.
	StateNone StateUse = iota
	// StateRead commands load the document and never save it.
	StateRead
	// StateWrite commands load the document and save it on success.
	StateWrite
	// StateCreate commands build a new document and save it.
	StateCreate
	// StateRestore commands promote the backup before running.
	StateRestore
)

// Env carries the session document and the collaborators a handler may use.
type Env struct {
	// State is the loaded document; nil for StateNone commands.
	State       *session.State
	Roller      *dice.Roller
	Tables      *world.Tables
	Templates   *npc.Registry
	Loot        *npc.LootTables
	Consumables *condition.Registry
	Registry    *Registry
	// EventChance is the percent chance of a flavor event per quiet turn.
	EventChance int
	// NewSessionID mints the id of a freshly initialised game.
	NewSessionID func() string
	Logger       *zap.Logger
}

// HandlerFunc runs one command. The returned payload must encode as a JSON
// object; the runner adds "ok": true to it.
type HandlerFunc func(env *Env, args []string) (any, error)

// Command defines an invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage is the argument synopsis shown by help.
	Usage string
	// Help is the short help text.
	Help string
	// Category groups the command.
	Category string
	// State is the command's default use of the session document.
	State StateUse
	// StateFunc, when set, overrides State based on the arguments.
	StateFunc func(args []string) StateUse
	// Handler runs the command.
	Handler HandlerFunc
}

// StateUseFor returns how the command touches state for the given arguments.
func (c *Command) StateUseFor(args []string) StateUse {
	if c.StateFunc != nil {
		return c.StateFunc(args)
	}
	return c.State
}

// Payload is an ad hoc response object.
type Payload map[string]any

// BuiltinCommands returns every built-in command.
func BuiltinCommands() []Command {
	return []Command{
		// Setup
		{Name: "init", Usage: "init", Help: "Initialize a new game", Category: CategorySetup, State: StateCreate, Handler: HandleInit},
		{Name: "status", Usage: "status [player]", Help: "View game or player status", Category: CategorySetup, State: StateRead, Handler: HandleStatus},
		{Name: "recover", Usage: "recover", Help: "Restore the previous save from backup", Category: CategorySetup, State: StateRestore, Handler: HandleRecover},

		// Character
		{Name: "add-player", Usage: "add-player <player_id> <name> <character> <background> S P E C I A L <tag1> <tag2> <tag3>", Help: "Add a player character", Category: CategoryCharacter, State: StateWrite, Handler: HandleAddPlayer},
		{Name: "remove-player", Usage: "remove-player <name>", Help: "Remove a player", Category: CategoryCharacter, State: StateWrite, Handler: HandleRemovePlayer},
		{Name: "hurt", Usage: "hurt <player> <amount>", Help: "Deal damage to a player", Category: CategoryCharacter, State: StateWrite, Handler: HandleHurt},
		{Name: "heal", Usage: "heal <player> <amount>", Help: "Heal a player", Category: CategoryCharacter, State: StateWrite, Handler: HandleHeal},
		{Name: "rads", Usage: "rads <player> <amount>", Help: "Modify radiation (negative to reduce)", Category: CategoryCharacter, State: StateWrite, Handler: HandleRads},
		{Name: "caps", Usage: "caps <player> <amount>", Help: "Modify caps (negative to spend)", Category: CategoryCharacter, State: StateWrite, Handler: HandleCaps},
		{Name: "ap", Usage: "ap <player> <amount>", Help: "Modify action points", Category: CategoryCharacter, State: StateWrite, Handler: HandleAP},
		{Name: "inventory", Aliases: []string{"inv"}, Usage: "inventory <player> add|remove <item> [qty]", Help: "Manage inventory (stacks, qty default 1)", Category: CategoryCharacter, State: StateWrite, Handler: HandleInventory},
		{Name: "use-item", Usage: "use-item <player> <item>", Help: "Use a consumable", Category: CategoryCharacter, State: StateWrite, Handler: HandleUseItem},
		{Name: "effect", Usage: "effect <player> add|remove|list <name> [duration]", Help: "Manage status effects", Category: CategoryCharacter, State: StateWrite, Handler: HandleEffect},
		{Name: "skill-up", Usage: "skill-up <player> <skill> [amount]", Help: "Increase a skill level", Category: CategoryCharacter, State: StateWrite, Handler: HandleSkillUp},
		{Name: "rest", Usage: "rest [hours]", Help: "Rest and recover (default 8h)", Category: CategoryCharacter, State: StateWrite, Handler: HandleRest},

		// Dice
		{Name: "roll", Usage: "roll <NdM>", Help: "Roll dice (e.g. 2d20, 3d6)", Category: CategoryDice, State: StateNone, Handler: HandleRoll},
		{Name: "check", Usage: "check <p1[,p2...]> <attr> <skill> <difficulty> [ap_spend]", Help: "Skill check (solo, assisted or group)", Category: CategoryDice, State: StateWrite, Handler: HandleCheck},
		{Name: "assist-check", Usage: "assist-check", Help: "Removed; use check A,B", Category: CategoryDice, State: StateNone, Handler: HandleAssistCheck},
		{Name: "oracle", Usage: "oracle", Help: "Oracle D6 narrative judgment", Category: CategoryDice, State: StateNone, Handler: HandleOracle},

		// Combat
		{Name: "damage", Usage: "damage <player> <count> [bonus] [ap_spend]", Help: "Roll combat damage dice", Category: CategoryCombat, State: StateWrite, Handler: HandleDamage},
		{Name: "initiative", Usage: "initiative", Help: "Calculate initiative order", Category: CategoryCombat, State: StateRead, Handler: HandleInitiative},
		{Name: "turn", Usage: "turn", Help: "Advance the turn or combat round", Category: CategoryCombat, State: StateWrite, Handler: HandleTurn},
		{Name: "act", Usage: "act <actor>", Help: "Mark an actor as having acted this round", Category: CategoryCombat, State: StateWrite, Handler: HandleAct},

		// Enemy
		{Name: "enemy-add", Usage: "enemy-add <template> | <name> <template> | <name> <hp> <damage> <attack_skill> <drops> [special]", Help: "Add an enemy (encounter budget enforced)", Category: CategoryEnemy, State: StateWrite, Handler: HandleEnemyAdd},
		{Name: "enemy-hurt", Usage: "enemy-hurt <name> <amount>", Help: "Damage an enemy (negative heals)", Category: CategoryEnemy, State: StateWrite, Handler: HandleEnemyHurt},
		{Name: "enemy-attack", Usage: "enemy-attack <enemy> <target>", Help: "Enemy attacks a player (1d20, auto-damage)", Category: CategoryEnemy, State: StateWrite, Handler: HandleEnemyAttack},
		{Name: "enemy-list", Usage: "enemy-list", Help: "List all enemies", Category: CategoryEnemy, State: StateRead, Handler: HandleEnemyList},
		{Name: "enemy-clear", Usage: "enemy-clear [all]", Help: "Remove dead (or all) enemies", Category: CategoryEnemy, State: StateWrite, Handler: HandleEnemyClear},

		// World
		{Name: "set", Usage: "set <field> <value>", Help: "Set a game state field (including mode)", Category: CategoryWorld, State: StateWrite, Handler: HandleSet},
		{Name: "flag", Usage: "flag add|remove|list [name]", Help: "Manage story flags", Category: CategoryWorld, State: StateWrite, Handler: HandleFlag},
		{Name: "log", Usage: "log <event>", Help: "Log an event", Category: CategoryWorld, State: StateWrite, Handler: HandleLog},
		{Name: "event", Usage: "event [category]", Help: "Random encounter or flavor event", Category: CategoryWorld, State: StateNone, Handler: HandleEvent},
		{Name: "loot", Usage: "loot [tier] [count]", Help: "Random loot", Category: CategoryWorld, State: StateNone, Handler: HandleLoot},
		{Name: "trade", Usage: "trade <player> <price> buy|sell", Help: "Calculate a trade price", Category: CategoryWorld, State: StateRead, Handler: HandleTrade},
		{Name: "npc-gen", Usage: "npc-gen [count]", Help: "Generate random NPCs", Category: CategoryWorld, State: StateNone, Handler: HandleNPCGen},
		{Name: "weather", Usage: "weather [set]", Help: "Roll weather, optionally saving it", Category: CategoryWorld, StateFunc: weatherState, Handler: HandleWeather},

		// System
		{Name: "help", Aliases: []string{"?"}, Usage: "help", Help: "Show this help", Category: CategorySystem, State: StateNone, Handler: HandleHelp},
	}
}
