package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/soundless/internal/audio"
	"github.com/vovakirdan/soundless/internal/audio/cues"
	"github.com/vovakirdan/soundless/internal/core"
	"github.com/vovakirdan/soundless/internal/engine"
	"github.com/vovakirdan/soundless/internal/games/soundless"
	"github.com/vovakirdan/soundless/internal/platform/tui"
	"github.com/vovakirdan/soundless/internal/storage"
)

var (
	playSettings gameSettings
	flagMode     string
	flagMicWAV   string
	flagSound    bool
	flagVolume   float64
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play in the terminal",
	Long: `Play Soundless in this terminal. Without a variant, a menu lets you
pick one and browse the run history.

Controls:
  WASD/Arrows        - Walk
  Shift+WASD/Arrows  - Run (louder)
  Mouse click        - Walk to the clicked spot
  Enter              - Start
  P                  - Pause
  R                  - Restart after the run ends
  Esc/B              - Back to the menu
  Q/Ctrl+C           - Quit

Difficulty options:
  easy   - Start at the lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression

Examples:
  soundless play
  soundless play soundless_swarm
  soundless play --mode swarm --difficulty hard
  soundless play --mic-wav ./breathing.wav --sound`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playSettings.register(playCmd)
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Rule set when no variant is given: stages or swarm")
	playCmd.Flags().StringVar(&flagMicWAV, "mic-wav", "", "Replay a WAV file as the microphone")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.4, "Sound cue volume (0-1)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	variant, err := variantArg(args, flagMode)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	opts := []engine.Option{engine.WithLogger(logger)}
	if flagMicWAV != "" {
		// The meter is shared by every game of the session.
		cfgVariant := variant
		if cfgVariant == "" {
			cfgVariant = soundless.IDStages
		}
		cfg, err := playSettings.load(cfgVariant)
		if err != nil {
			return err
		}
		meter, stop, err := audio.OpenWAV(cmd.Context(), flagMicWAV, cfg.Audio, logger)
		if err != nil {
			return err
		}
		defer stop()
		opts = append(opts, engine.WithAudio(meter))
	}
	newGame := playSettings.factory(opts...)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run log: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	tuiOpts := tui.Options{
		Store:  store,
		Player: playerName(),
		Logger: logger,
	}
	if flagSound {
		player := cues.NewPlayer(flagVolume, logger)
		if err := player.Start(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			defer player.Close()
			tuiOpts.Cues = player
		}
	}

	if variant == "" {
		return tui.RunSession(rc, newGame, tuiOpts)
	}

	game, err := newGame(variant)
	if err != nil {
		return err
	}
	return tui.Run(game, rc, tuiOpts)
}
