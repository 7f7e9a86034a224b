// Package tui runs Soundless in a terminal, locally or over SSH.
// It owns the fixed-rate tick loop, key latching, mouse targeting and the
// styled rendering of the game's cell screen.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// holdTicks converts the key latch window into ticks at the given rate.
func holdTicks(tickRate int, window time.Duration) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	return max(int(window.Seconds()*float64(tickRate)+0.5), 1)
}
