// Package tui provides the Bubble Tea frontend for the snake game.
// It owns the frame loop, maps keys to actions, renders the screen buffer
// with lipgloss and serves the same model over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent once per rendered frame.
type FrameMsg time.Time

// frameCmd schedules the next frame at the given rate.
// Simulation ticks are derived from frame timestamps, so the two rates are independent.
func frameCmd(frameRate int) tea.Cmd {
	interval := time.Second / time.Duration(max(frameRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
