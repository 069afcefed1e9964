// ABOUTME: Tests for the voice monitor TUI model
// ABOUTME: Verifies status updates and key handling
package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/noxengine/nox-audio/pkg/audio"
)

func TestModelAppliesStatus(t *testing.T) {
	m := NewModel(NewControl())

	updated, _ := m.Update(StatusMsg{
		File:       "boom.wav",
		SampleRate: 48000,
		Gain:       0.5,
		Voices: []audio.VoiceState{
			{Index: 1, Playing: true, Pitch: 1.0},
		},
	})
	m = updated.(Model)

	if m.file != "boom.wav" || m.sampleRate != 48000 || m.gain != 0.5 {
		t.Errorf("status not applied: %+v", m)
	}
	if len(m.voices) != 1 {
		t.Fatalf("voices: got %d, want 1", len(m.voices))
	}
}

func TestModelViewShowsActiveVoices(t *testing.T) {
	m := NewModel(NewControl())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	updated, _ = m.Update(StatusMsg{
		File:       "boom.wav",
		SampleRate: 48000,
		Gain:       1.0,
		Voices: []audio.VoiceState{
			{Index: 3, Playing: true, Pitch: 1.5, Looping: true},
		},
	})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "voice  3") {
		t.Errorf("view missing voice row:\n%s", view)
	}
	if !strings.Contains(view, "boom.wav") {
		t.Errorf("view missing file name:\n%s", view)
	}
}

func TestModelQuitKey(t *testing.T) {
	ctrl := NewControl()
	m := NewModel(ctrl)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	select {
	case <-ctrl.Quit:
	default:
		t.Error("quit not signaled to the control loop")
	}
}

func TestModelGainKeys(t *testing.T) {
	ctrl := NewControl()
	m := NewModel(ctrl)

	updated, _ := m.Update(StatusMsg{Gain: 0.5})
	m = updated.(Model)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})

	select {
	case g := <-ctrl.Gain:
		if g < 0.54 || g > 0.56 {
			t.Errorf("gain request: got %v, want about 0.55", g)
		}
	default:
		t.Error("no gain request sent")
	}
}

func TestModelStopKey(t *testing.T) {
	ctrl := NewControl()
	m := NewModel(ctrl)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

	select {
	case <-ctrl.Stop:
	default:
		t.Error("stop not signaled to the control loop")
	}
}
