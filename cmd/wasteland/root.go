package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wasteland/internal/config"
	"github.com/cory-johannsen/wasteland/internal/game/command"
	"github.com/cory-johannsen/wasteland/internal/game/condition"
	"github.com/cory-johannsen/wasteland/internal/game/dice"
	"github.com/cory-johannsen/wasteland/internal/game/npc"
	"github.com/cory-johannsen/wasteland/internal/game/world"
	"github.com/cory-johannsen/wasteland/internal/gameserver"
	"github.com/cory-johannsen/wasteland/internal/observability"
)

// exitStartupFailure is returned when configuration, logging or the state
// backend cannot be brought up.
const exitStartupFailure = 2

// configEnv names the environment variable that selects the config file.
const configEnv = "WASTELAND_CONFIG"

type app struct {
	stdout     io.Writer
	stderr     io.Writer
	configPath string
	exitCode   int
	registry   *command.Registry
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, registry: command.DefaultRegistry()}
}

// execute runs the CLI with args and returns the process exit status.
func (a *app) execute(args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitStartupFailure
	}
	return a.exitCode
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wasteland <command> [args...]",
		Short:         "Wasteland tabletop rules engine",
		Long:          `Wasteland resolves skill checks, tracks combat and persists one session document between invocations.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.run(c.Context(), "help", nil)
			}
			return a.run(c.Context(), args[0], args[1:])
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv(configEnv), "path to configuration file (env "+configEnv+")")
	root.CompletionOptions.DisableDefaultCmd = true

	for _, cmd := range a.registry.Commands() {
		name := cmd.Name
		sub := &cobra.Command{
			Use:                cmd.Usage,
			Aliases:            cmd.Aliases,
			Short:              cmd.Help,
			DisableFlagParsing: true,
			SilenceUsage:       true,
			RunE: func(c *cobra.Command, args []string) error {
				path, rest := splitConfigFlag(args)
				if path != "" {
					a.configPath = path
				}
				return a.run(c.Context(), name, rest)
			},
		}
		// The registry's help replaces cobra's so it also answers in JSON.
		if name == "help" {
			root.SetHelpCommand(sub)
			continue
		}
		root.AddCommand(sub)
	}
	return root
}

// splitConfigFlag removes a leading --config flag from args. Sub-commands
// disable flag parsing so negative numbers pass through, which leaves a
// --config given before the command name in their arguments.
func splitConfigFlag(args []string) (string, []string) {
	if len(args) == 0 {
		return "", args
	}
	if v, ok := strings.CutPrefix(args[0], "--config="); ok {
		return v, args[1:]
	}
	if args[0] == "--config" && len(args) > 1 {
		return args[1], args[2:]
	}
	return "", args
}

// run executes one command and writes its payload.
func (a *app) run(ctx context.Context, name string, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging, a.stderr)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := gameserver.OpenStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("opening state store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing state store", zap.Error(err))
		}
	}()

	runner := gameserver.NewRunner(store, a.registry, gameserver.Deps{
		Roller:       dice.NewLoggedRoller(dice.NewCryptoSource(), logger),
		Tables:       world.DefaultTables(),
		Templates:    npc.DefaultTemplates(),
		Loot:         npc.DefaultLootTables(),
		Consumables:  condition.DefaultRegistry(),
		EventChance:  cfg.Rules.EventChance,
		NewSessionID: uuid.NewString,
		Timeout:      cfg.State.Timeout,
	}, logger)

	resp := runner.Run(ctx, name, args)
	a.exitCode = resp.ExitCode
	return gameserver.Write(a.stdout, resp)
}
