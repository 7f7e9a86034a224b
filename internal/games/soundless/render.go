package soundless

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/soundless/internal/config"
	"github.com/vovakirdan/soundless/internal/core"
	"github.com/vovakirdan/soundless/internal/engine"
	"github.com/vovakirdan/soundless/internal/progression"
	"github.com/vovakirdan/soundless/internal/threat"
)

// HUDRows is the number of screen rows above the playfield.
const HUDRows = 1

// Visual characters
const (
	PlayerChar     = '@'
	LanternChar    = '✦'
	DoorChar       = '▐'
	CheckpointChar = '◆'
	StalkerChar    = 'x'
	RitualChar     = '·'
	noiseBarWidth  = 20
)

// projection maps world units onto the cells inside the playfield border.
type projection struct {
	field core.Rect // Inner playfield, border excluded
	world config.WorldConfig
}

func newProjection(screenW, screenH int, world config.WorldConfig) projection {
	return projection{
		field: core.NewRect(1, HUDRows+1, max(screenW-2, 1), max(screenH-HUDRows-2, 1)),
		world: world,
	}
}

func (p projection) toCell(v core.Vec2) (int, int) {
	x := p.field.X + int(v.X/p.world.Width*float64(p.field.W))
	y := p.field.Y + int(v.Y/p.world.Height*float64(p.field.H))
	return core.Clamp(x, p.field.X, p.field.Right()-1), core.Clamp(y, p.field.Y, p.field.Bottom()-1)
}

// toWorld returns the world point at the center of a cell.
func (p projection) toWorld(x, y int) core.Vec2 {
	return core.V(
		(float64(x-p.field.X)+0.5)/float64(p.field.W)*p.world.Width,
		(float64(y-p.field.Y)+0.5)/float64(p.field.H)*p.world.Height,
	)
}

// Render draws the last snapshot. Overlays cover the playfield in the menu,
// during transitions, when paused and after the run ends.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	s := g.eng.Snapshot()
	proj := newProjection(dst.Width(), dst.Height(), s.World)

	dst.DrawBox(core.NewRect(0, HUDRows, dst.Width(), dst.Height()-HUDRows), core.ColorGray)
	g.drawHUD(dst, s)

	if s.State != engine.StateMenu && s.State != engine.StateTransition {
		drawRitual(dst, proj, s.Ritual)
		for _, o := range s.Objectives {
			drawObjective(dst, proj, o)
		}
		for _, e := range s.Threats {
			drawThreat(dst, proj, e, g.cfg.Ghost.VisibleAt)
		}
		x, y := proj.toCell(s.Player.Pos)
		dst.SetColor(x, y, PlayerChar, playerColor(s))
	}

	switch {
	case s.State == engine.StateMenu:
		drawMessage(dst, g.title, s.StageFlavor, "Press Enter to begin")
	case s.State == engine.StateTransition:
		drawMessage(dst, "The path opens...", "Leaving "+s.StageName, "")
	case s.State == engine.StateGameOver:
		drawMessage(dst, "THEY HEARD YOU", fmt.Sprintf("Reached %s", s.StageName), "Press R to try again")
	case s.State == engine.StateWin:
		drawMessage(dst, "THE SILENCE HOLDS", fmt.Sprintf("%.0f seconds in the dark", s.Elapsed), "Press R to play again")
	case g.paused:
		drawMessage(dst, "PAUSED", "", "Press P to resume")
	}
}

func (g *Game) drawHUD(dst *core.Screen, s engine.Snapshot) {
	dst.DrawTextColor(1, 0, s.StageName, core.ColorBrightWhite)

	label := s.Alert.Label(s.Mode)
	dst.DrawTextColor(dst.Width()-len(label)-1, 0, label, alertColor(s.Alert))

	filled := int(math.Round(s.Noise / 100 * noiseBarWidth))
	bar := fmt.Sprintf("NOISE %s%s %3.0f",
		strings.Repeat("█", filled), strings.Repeat("░", noiseBarWidth-filled), s.Noise)
	x := (dst.Width() - len([]rune(bar))) / 2
	dst.DrawTextColor(x, 0, bar, noiseColor(s.Noise))

	var status string
	switch {
	case s.State == engine.StateBoss:
		status = fmt.Sprintf(" SILENCE %4.1f/%.0fs ", s.Ritual.Elapsed, s.Ritual.Required)
	case s.Mode == config.ModeSwarm:
		status = fmt.Sprintf(" WARDS %d/%d ", s.Score, s.Target)
	default:
		status = fmt.Sprintf(" LANTERNS %d/%d ", s.Score, s.Target)
	}
	dst.DrawTextColor(2, HUDRows, status, core.ColorYellow)

	if s.Whispering {
		dst.DrawTextColor(dst.Width()-12, HUDRows, " whisper ", core.ColorCyan)
	}
}

func drawObjective(dst *core.Screen, proj projection, o progression.Objective) {
	if o.Collected {
		return
	}
	switch o.Kind {
	case progression.KindLantern:
		x, y := proj.toCell(o.Pos)
		dst.SetColor(x, y, LanternChar, core.ColorYellow)
	case progression.KindDoor:
		x, _ := proj.toCell(o.Pos)
		dst.DrawVLine(x, proj.field.Y, proj.field.H, DoorChar, core.ColorCyan)
	case progression.KindCheckpoint:
		x, y := proj.toCell(o.Pos)
		dst.SetColor(x, y, CheckpointChar, core.ColorBrightCyan)
	}
}

// drawRitual outlines the ritual zone. A zone without a radius covers the
// whole field and is shown in the HUD only.
func drawRitual(dst *core.Screen, proj projection, r engine.RitualView) {
	if !r.Active || r.Radius <= 0 {
		return
	}
	c := core.ColorMagenta
	if r.Progress > 0 {
		c = core.ColorWhite
	}
	const steps = 48
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		x, y := proj.toCell(core.Polar(r.Anchor, a, r.Radius))
		if dst.Get(x, y) == ' ' {
			dst.SetColor(x, y, RitualChar, c)
		}
	}
}

func drawThreat(dst *core.Screen, proj projection, e threat.Entity, visibleAt float64) {
	if !e.Active {
		return
	}
	x, y := proj.toCell(e.Pos)
	if e.Kind == threat.KindStalker {
		c := core.ColorRed
		if e.State == threat.Pursuing {
			c = core.ColorBrightRed
		}
		dst.SetColor(x, y, StalkerChar, c)
		return
	}

	switch {
	case e.Opacity >= visibleAt:
		dst.SetColor(x, y, '█', core.ColorBrightWhite)
	case e.Opacity >= visibleAt/2:
		dst.SetColor(x, y, '▒', core.ColorWhite)
	case e.Opacity > 0:
		dst.SetColor(x, y, '░', core.ColorDim)
	}
}

// drawMessage draws a message box in the center of the playfield.
func drawMessage(dst *core.Screen, title, subtitle, hint string) {
	w := max(len([]rune(title)), len([]rune(subtitle)), len([]rune(hint))) + 6
	h := 7
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorGray)
	dst.DrawTextCentered(box.Y+2, title, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorGray)
	dst.DrawTextCentered(box.Y+4, hint, core.ColorDim)
}

func alertColor(a engine.Alert) core.Color {
	switch a {
	case engine.AlertPursuit, engine.AlertDanger:
		return core.ColorBrightRed
	case engine.AlertNoisy:
		return core.ColorOrange
	default:
		return core.ColorGray
	}
}

func noiseColor(level float64) core.Color {
	switch {
	case level > 70:
		return core.ColorRed
	case level > 40:
		return core.ColorOrange
	case level > 10:
		return core.ColorYellow
	default:
		return core.ColorGreen
	}
}

func playerColor(s engine.Snapshot) core.Color {
	if s.Player.Running {
		return core.ColorBrightWhite
	}
	return core.ColorGreen
}
