package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/soundless/internal/engine"
	"github.com/vovakirdan/soundless/internal/games/soundless"
	"github.com/vovakirdan/soundless/internal/platform/web"
	"github.com/vovakirdan/soundless/internal/storage"
)

var (
	webSettings gameSettings
	flagWebAddr string
	flagVariant string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the websocket bridge for browser renderers",
	Long: `Serve GET /ws for browser renderers. Each connection owns one game,
ticked at --fps. Clients send

  {"type":"start"}
  {"type":"input","move":{"x":1,"y":0},"running":false}
  {"type":"reset"}

and receive {"type":"frame","snapshot":{...},"events":[...]} every tick.
Query parameters variant, seed and player override the defaults.
GET /variants lists the variants.

Examples:
  soundless web
  soundless web --addr :9000 --variant soundless_swarm --fps 30`,
	RunE: runWeb,
}

func init() {
	webSettings.register(webCmd)
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address")
	webCmd.Flags().StringVar(&flagVariant, "variant", soundless.IDStages, "Variant for clients that do not pick one")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	if _, ok := soundless.ModeFor(flagVariant); !ok {
		return fmt.Errorf("unknown variant %q", flagVariant)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run log", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	srv := web.NewServer(web.Config{
		Address:  flagWebAddr,
		TickRate: flagFPS,
		Variant:  flagVariant,
		Seed:     flagSeed,
		Store:    store,
		NewGame:  webSettings.factory(engine.WithLogger(logger)),
		Logger:   logger,
	})
	return srv.ListenAndServe(cmd.Context())
}
