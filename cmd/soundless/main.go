// soundless is a stealth survival game where whatever hunts you is blind
// and only hears.
//
// Usage:
//
//	soundless list               - List the variants
//	soundless play [variant]     - Play in the terminal
//	soundless serve              - Start the SSH server for remote play
//	soundless web                - Start the websocket bridge for browsers
//	soundless simulate [variant] - Run a scripted headless session
//	soundless runs [variant]     - Show the run history
//	soundless config show|schema - Print the effective config or its schema
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set run log path (default: ~/.soundless/runs.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/soundless/internal/config"
	"github.com/vovakirdan/soundless/internal/engine"
	"github.com/vovakirdan/soundless/internal/games/soundless"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "soundless",
	Short: "Soundless - survive the dark by keeping quiet",
	Long: `Soundless is a stealth survival game. Every step makes noise; noise
draws whatever hunts in the dark. Collect what you came for, then hold
perfectly still until the silence ritual completes.

Available commands:
  list      - Show the variants
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  web       - Start the websocket bridge for browser renderers
  simulate  - Run a scripted session without a screen
  runs      - View the run history
  config    - Print the effective config or its JSON schema

Examples:
  soundless play
  soundless play soundless_swarm --difficulty hard
  soundless serve --ssh :2222
  soundless simulate --pattern pulse --seconds 120 --seed 7`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.soundless/runs.db", "Path to the run log database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the logger from the global flags. Full-screen commands
// pass quiet so that logs without a --log-file are discarded instead of
// tearing the alt screen. The returned func closes the log file.
func newLogger(quiet bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		path := expandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case quiet:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "soundless",
		Level:           level,
	})
	return logger, closeFn, nil
}

// playerName is recorded with local runs.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// variantArg resolves the optional variant argument, falling back to --mode.
func variantArg(args []string, mode string) (string, error) {
	if len(args) > 0 {
		if _, ok := soundless.ModeFor(args[0]); !ok {
			return "", fmt.Errorf("unknown variant %q, run 'soundless list' to see them", args[0])
		}
		return args[0], nil
	}
	switch config.Mode(mode) {
	case "":
		return "", nil
	case config.ModeStages:
		return soundless.IDStages, nil
	case config.ModeSwarm:
		return soundless.IDSwarm, nil
	}
	return "", fmt.Errorf("unknown mode %q (stages or swarm)", mode)
}

// gameSettings are the config flags shared by every command that builds a
// game.
type gameSettings struct {
	configPath string
	difficulty string
}

func (s *gameSettings) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.configPath, "config", "", "Path to custom config YAML")
	cmd.Flags().StringVar(&s.difficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// load returns the config for a variant with the difficulty preset applied.
func (s *gameSettings) load(variantID string) (config.SoundlessConfig, error) {
	mode, ok := soundless.ModeFor(variantID)
	if !ok {
		return config.SoundlessConfig{}, fmt.Errorf("unknown variant %q", variantID)
	}
	cfg, err := config.LoadSoundless(s.configPath, mode)
	if err != nil {
		return cfg, err
	}
	if s.difficulty != "" {
		preset := config.ParsePreset(s.difficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q", s.difficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// factory builds games with these settings and the given engine options.
func (s *gameSettings) factory(opts ...engine.Option) func(string) (*soundless.Game, error) {
	return func(variantID string) (*soundless.Game, error) {
		cfg, err := s.load(variantID)
		if err != nil {
			return nil, err
		}
		return soundless.New(variantID, soundless.TitleFor(variantID), cfg, opts...), nil
	}
}
