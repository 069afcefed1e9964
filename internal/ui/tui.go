// ABOUTME: TUI initialization and control channels
// ABOUTME: Wraps the bubbletea program for the player
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Control carries user commands from the TUI back to the control loop.
// The TUI never touches the engine directly; all engine mutation stays on
// the control thread.
type Control struct {
	Gain chan float64  // absolute global gain requests
	Stop chan struct{} // stop all voices
	Quit chan struct{}
}

// NewControl creates the control channel set.
func NewControl() *Control {
	return &Control{
		Gain: make(chan float64, 10),
		Stop: make(chan struct{}, 1),
		Quit: make(chan struct{}, 1),
	}
}

func (c *Control) requestGain(g float64) {
	select {
	case c.Gain <- g:
	default:
	}
}

func (c *Control) requestStop() {
	select {
	case c.Stop <- struct{}{}:
	default:
	}
}

func (c *Control) requestQuit() {
	select {
	case c.Quit <- struct{}{}:
	default:
	}
}

// NewModel creates a TUI model wired to the given control channels.
func NewModel(control *Control) Model {
	return Model{
		gain:    1.0,
		control: control,
	}
}

// Run starts the TUI program.
func Run(control *Control) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(control), tea.WithAltScreen())
	return p, nil
}
