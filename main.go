// ABOUTME: Entry point for the nox audio player
// ABOUTME: Parses CLI flags, drives the control loop and per-frame Purge
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/noxengine/nox-audio/internal/device"
	"github.com/noxengine/nox-audio/internal/ui"
	"github.com/noxengine/nox-audio/pkg/audio"
)

var (
	rate    = flag.Int("rate", 48000, "Output sample rate in Hz")
	gain    = flag.Float64("gain", 1.0, "Per-voice gain [0,1]")
	pitch   = flag.Float64("pitch", 1.0, "Playback pitch [0.5,2]")
	pan     = flag.Float64("pan", 0.0, "Stereo pan [-1,1] (stored, not yet applied)")
	loop    = flag.Bool("loop", false, "Loop playback")
	noTUI   = flag.Bool("no-tui", false, "Disable TUI, exit when playback finishes")
	logFile = flag.String("log-file", "", "Log file path (default: stderr)")
)

func main() {
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		log.Fatalf("usage: %s [flags] file...", os.Args[0])
	}

	useTUI := !*noTUI

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("error opening log file: %v", err)
		}
		defer func() { _ = f.Close() }()

		if useTUI {
			log.SetOutput(f)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, f))
		}
	} else if useTUI {
		// Keep log noise off the TUI's screen.
		log.SetOutput(io.Discard)
	}

	engine := audio.NewEngine(*rate)

	out, err := device.Open(engine)
	if err != nil {
		log.Fatalf("Failed to open audio device: %v", err)
	}
	defer out.Close()

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", path, err)
		}

		sample, err := engine.LoadSample(data)
		if err != nil {
			log.Fatalf("Failed to decode %s: %v", path, err)
		}

		index, err := engine.Play(sample, audio.PlayOptions{
			Gain:    *gain,
			Pitch:   *pitch,
			Pan:     *pan,
			Looping: *loop,
		})
		if err != nil {
			log.Fatalf("Failed to play %s: %v", path, err)
		}
		log.Printf("Playing %s on voice %d", path, index)
	}

	out.Start()

	var tuiProg *tea.Program
	control := ui.NewControl()
	if useTUI {
		tuiProg, err = ui.Run(control)
		if err != nil {
			log.Fatalf("Failed to start TUI: %v", err)
		}
		go func() {
			if _, err := tuiProg.Run(); err != nil {
				log.Printf("TUI error: %v", err)
			}
			select {
			case control.Quit <- struct{}{}:
			default:
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Control loop. Purge runs first on every tick, before any other
	// per-frame work, so finished voices are returned to the pool promptly.
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	fileLabel := files[0]
	if len(files) > 1 {
		fileLabel = files[0] + " (+more)"
	}

	for {
		select {
		case <-ticker.C:
			engine.Purge()

			if useTUI {
				tuiProg.Send(ui.StatusMsg{
					File:       fileLabel,
					SampleRate: engine.SampleRate(),
					Gain:       engine.Gain(),
					Voices:     engine.Voices(),
				})
			} else if idle(engine) {
				log.Printf("Playback finished")
				return
			}

		case g := <-control.Gain:
			engine.SetGain(g)

		case <-control.Stop:
			engine.StopAll()

		case <-control.Quit:
			log.Printf("Quit requested")
			return

		case <-sigChan:
			log.Printf("Shutdown signal received")
			if tuiProg != nil {
				tuiProg.Quit()
			}
			return
		}
	}
}

// idle reports whether no voice is playing or awaiting reclamation.
func idle(engine *audio.Engine) bool {
	for _, v := range engine.Voices() {
		if v.Playing || v.Finished {
			return false
		}
	}
	return true
}
