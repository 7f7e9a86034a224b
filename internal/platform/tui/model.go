package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/soundless/internal/core"
	"github.com/vovakirdan/soundless/internal/games/soundless"
	"github.com/vovakirdan/soundless/internal/storage"
)

// DefaultHoldWindow is how long a movement key counts as held after a press.
// Terminal autorepeat refreshes it while the key stays down.
const DefaultHoldWindow = 180 * time.Millisecond

// CuePlayer plays the sound cue for an engine event name.
type CuePlayer interface {
	Play(name string)
}

// Options configure a game model.
type Options struct {
	Store      *storage.Store // Optional run log
	Player     string         // Recorded with each run
	Logger     *log.Logger
	Cues       CuePlayer // Optional
	HoldWindow time.Duration
}

// GameModel is the Bubble Tea model for one Soundless game.
type GameModel struct {
	game       *soundless.Game
	screen     *core.Screen
	footer     Footer
	config     core.RuntimeConfig
	opts       Options
	keyMapper  *KeyMapper
	held       *HeldKeys
	pointer    *[2]int // Click target in screen cells
	gameState  core.GameState
	runSaved   bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for the game. A zero seed is replaced with
// one from the clock so each run differs.
func NewGameModel(game *soundless.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.HoldWindow <= 0 {
		opts.HoldWindow = DefaultHoldWindow
	}

	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH-FooterRows),
		footer:    NewFooter(cfg.ScreenW),
		config:    cfg,
		opts:      opts,
		keyMapper: NewKeyMapper(),
		held:      NewHeldKeys(holdTicks(cfg.TickRate, opts.HoldWindow)),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft &&
			(msg.Action == tea.MouseActionPress || msg.Action == tea.MouseActionMotion) {
			m.pointer = &[2]int{msg.X, msg.Y}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height-FooterRows)
		m.footer.SetWidth(msg.Width)
		// The world is resolution independent, so a resize only changes
		// the projection of the next frame.
		m.game.Resize(msg.Width, msg.Height-FooterRows)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// gameConfig is the runtime config with the footer rows taken off.
func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-FooterRows, 0)
	return cfg
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	actions, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.recordRun()
		m.quitting = true
		return m, tea.Quit
	}

	for _, a := range actions {
		if a == core.ActionBack {
			if m.gameState.Finished || m.gameState.Paused || !m.gameState.Started {
				m.recordRun()
				m.backToMenu = true
			}
			continue
		}
		m.held.Press(a)
	}
	if m.held.Moving() {
		m.pointer = nil
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	frame := core.NewInputFrame()
	m.held.Apply(&frame)
	if m.pointer != nil {
		frame.SetPointer(m.pointer[0], m.pointer[1])
	}

	if frame.Has(core.ActionRestart) && m.gameState.Finished {
		m.pointer = nil
		m.held.Release()
		m.runSaved = false
	}

	result := m.game.Step(frame)
	m.gameState = result.State
	for _, cue := range result.Cues {
		if m.opts.Cues != nil {
			m.opts.Cues.Play(cue)
		}
		m.opts.Logger.Debug("event", "name", cue, "tick", m.game.Snapshot().Tick)
	}

	if m.gameState.Finished {
		m.recordRun()
	}

	return m, tickCmd(m.config.TickRate)
}

// recordRun writes the current run to the log once. Runs that never left
// the menu are skipped.
func (m *GameModel) recordRun() {
	if m.runSaved || !m.gameState.Started {
		return
	}
	m.runSaved = true

	out := m.game.Outcome()
	m.opts.Logger.Info("run ended",
		"variant", out.Variant,
		"result", out.Result,
		"stage", out.Stage,
		"score", out.Score,
		"seconds", fmt.Sprintf("%.1f", out.Duration),
	)
	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveRun(out.Run(m.opts.Player)); err != nil {
		m.opts.Logger.Warn("could not save run", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".soundless", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.footer.View(m.game.Snapshot())
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game in the local terminal.
func Run(game *soundless.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if m, ok := final.(GameModel); ok {
		m.recordRun()
	}
	return err
}
