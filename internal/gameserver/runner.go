// Package gameserver runs one command invocation: it loads the session
// document, runs the command, saves on success and renders the JSON payload.
package gameserver

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/command"
	"github.com/cory-johannsen/wasteland/internal/game/condition"
	"github.com/cory-johannsen/wasteland/internal/game/dice"
	"github.com/cory-johannsen/wasteland/internal/game/npc"
	"github.com/cory-johannsen/wasteland/internal/game/world"
	"github.com/cory-johannsen/wasteland/internal/storage"
)

// DefaultTimeout bounds the storage calls of one invocation.
const DefaultTimeout = 10 * time.Second

// ExitUnknownCommand is the process status for an unrecognised command name.
const ExitUnknownCommand = 1

// Deps are the collaborators shared by every command a Runner executes.
type Deps struct {
	Roller       *dice.Roller
	Tables       *world.Tables
	Templates    *npc.Registry
	Loot         *npc.LootTables
	Consumables  *condition.Registry
	EventChance  int
	NewSessionID func() string
	// Timeout bounds each storage call; DefaultTimeout when zero.
	Timeout time.Duration
}

// Runner executes commands against a Store.
type Runner struct {
	store    storage.Store
	registry *command.Registry
	deps     Deps
	logger   *zap.Logger
}

// NewRunner creates a Runner.
//
// Precondition: store, registry, logger and every field of deps except
// Timeout must be non-nil.
func NewRunner(store storage.Store, registry *command.Registry, deps Deps, logger *zap.Logger) *Runner {
	if deps.Timeout <= 0 {
		deps.Timeout = DefaultTimeout
	}
	return &Runner{store: store, registry: registry, deps: deps, logger: logger}
}

// Response is the outcome of one invocation.
type Response struct {
	Payload  map[string]any
	ExitCode int
}

// OK reports whether the command succeeded.
func (r Response) OK() bool {
	ok, _ := r.Payload["ok"].(bool)
	return ok
}

// Run resolves name and executes it with args. Domain failures become an
// error payload with exit code 0; only an unknown command name exits non-zero.
// The document is saved only after the handler succeeds.
func (r *Runner) Run(ctx context.Context, name string, args []string) Response {
	name = strings.ToLower(name)
	cmd, ok := r.registry.Resolve(name)
	if !ok {
		return Response{
			Payload: map[string]any{
				"error": "Unknown command: " + name,
				"code":  errors.CodeInvalidInput.String(),
				"hint":  "Run 'help' to see available commands",
			},
			ExitCode: ExitUnknownCommand,
		}
	}

	logger := r.logger.With(zap.String("command", cmd.Name))
	env := &command.Env{
		Roller:       r.deps.Roller,
		Tables:       r.deps.Tables,
		Templates:    r.deps.Templates,
		Loot:         r.deps.Loot,
		Consumables:  r.deps.Consumables,
		Registry:     r.registry,
		EventChance:  r.deps.EventChance,
		NewSessionID: r.deps.NewSessionID,
		Logger:       logger,
	}

	use := cmd.StateUseFor(args)
	if err := r.acquire(ctx, use, env); err != nil {
		return r.failure(logger, err)
	}
	if env.State != nil {
		env.Logger = logger.With(zap.String("session_id", env.State.SessionID))
	}

	start := time.Now()
	out, err := cmd.Handler(env, args)
	if err != nil {
		return r.failure(env.Logger, err)
	}

	if use == command.StateWrite || use == command.StateCreate {
		if err := r.save(ctx, env); err != nil {
			return r.failure(env.Logger, err)
		}
	}
	env.Logger.Debug("command complete", zap.Duration("elapsed", time.Since(start)))

	payload, err := toPayload(out)
	if err != nil {
		return r.failure(env.Logger, errors.Wrap(err, "encoding command result"))
	}
	payload["ok"] = true
	return Response{Payload: payload}
}

// acquire loads or restores the document as the command requires.
func (r *Runner) acquire(ctx context.Context, use command.StateUse, env *command.Env) error {
	if use != command.StateRead && use != command.StateWrite && use != command.StateRestore {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.deps.Timeout)
	defer cancel()

	var err error
	if use == command.StateRestore {
		env.State, err = r.store.Restore(ctx)
		if err == nil {
			env.Logger.Info("state restored from backup")
		}
	} else {
		env.State, err = r.store.Load(ctx)
	}
	return err
}

func (r *Runner) save(ctx context.Context, env *command.Env) error {
	ctx, cancel := context.WithTimeout(ctx, r.deps.Timeout)
	defer cancel()
	if err := r.store.Save(ctx, env.State); err != nil {
		return err
	}
	env.Logger.Debug("state saved", zap.Int("turn", env.State.Turn))
	return nil
}

// failure renders err as an error payload. Internal failures are logged.
func (r *Runner) failure(logger *zap.Logger, err error) Response {
	code := errors.GetCode(err)
	if code == errors.CodeInternal {
		logger.Error("command failed", zap.Error(err))
	} else {
		logger.Debug("command rejected", zap.String("code", code.String()), zap.Error(err))
	}
	payload := make(map[string]any, len(errors.GetMeta(err))+2)
	for k, v := range errors.GetMeta(err) {
		payload[k] = v
	}
	payload["error"] = errors.GetMessage(err)
	payload["code"] = code.String()
	return Response{Payload: payload}
}

// toPayload flattens a handler result into a JSON object.
func toPayload(out any) (map[string]any, error) {
	data, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Write renders resp as one indented JSON object.
func Write(w io.Writer, resp Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp.Payload)
}
