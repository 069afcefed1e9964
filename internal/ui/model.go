// ABOUTME: Bubbletea model for the voice monitor TUI
// ABOUTME: Renders pool state and forwards key commands to the control loop
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/noxengine/nox-audio/pkg/audio"
)

// StatusMsg carries a fresh control-loop snapshot into the TUI.
type StatusMsg struct {
	File       string
	SampleRate int
	Gain       float64
	Voices     []audio.VoiceState
}

// Model represents the TUI state.
type Model struct {
	file       string
	sampleRate int
	gain       float64
	voices     []audio.VoiceState

	control *Control

	width  int
	height int
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.file = msg.File
		m.sampleRate = msg.SampleRate
		m.gain = msg.Gain
		m.voices = msg.Voices
	}

	return m, nil
}

// handleKey handles keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.control.requestQuit()
		return m, tea.Quit
	case "up", "+":
		m.control.requestGain(m.gain + 0.05)
	case "down", "-":
		m.control.requestGain(m.gain - 0.05)
	case "s":
		m.control.requestStop()
	}
	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := fmt.Sprintf(`┌─ Nox Audio ──────────────────────────────────────────┐
│ File:   %-44s │
│ Output: %dHz stereo float32%-25s │
│ Gain:   [%s] %3.0f%%%-26s │
├──────────────────────────────────────────────────────┤
`, truncate(m.file, 44), m.sampleRate, "", renderBar(m.gain, 10), m.gain*100, "")

	active := 0
	for _, v := range m.voices {
		if !v.Playing && !v.Finished {
			continue
		}
		active++
		state := "playing"
		if v.Finished {
			state = "finished"
		}
		loop := " "
		if v.Looping {
			loop = "∞"
		}
		s += fmt.Sprintf("│ voice %2d  %-8s pos %10.1f  pitch %.2f %s%-6s │\n",
			v.Index, state, v.Position, v.Pitch, loop, "")
	}
	if active == 0 {
		s += "│ (no active voices)                                   │\n"
	}

	s += fmt.Sprintf(`├──────────────────────────────────────────────────────┤
│ Voices: %2d/%d active%-33s │
│ ↑/↓:Gain  s:Stop all  q:Quit%-25s │
└──────────────────────────────────────────────────────┘
`, active, audio.NumVoices, "", "")

	return s
}

// renderBar renders a simple progress bar for a [0,1] value.
func renderBar(value float64, width int) string {
	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

// truncate shortens a string with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max < 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
