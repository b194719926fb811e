package services

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"barcodereader/internal/camera"
	"barcodereader/internal/console"
	"barcodereader/internal/dto"
	"barcodereader/internal/frame"
	"barcodereader/internal/logger"
	"barcodereader/internal/services/annotator"
	"barcodereader/internal/services/decoder"
	"barcodereader/internal/services/tracker"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"
)

// State is the lifecycle phase of the capture loop.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateDraining
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Stats summarizes one run.
type Stats struct {
	Frames         int
	DecodeFailures int
	Reported       int
}

// Manager drives camera -> decode -> annotate -> dedup -> display + report,
// one frame at a time.
type Manager struct {
	decoder    *decoder.Adapter
	annotator  *annotator.Annotator
	seen       tracker.SeenStore
	cooldown   time.Duration
	console    *console.Console
	logger     *logger.Logger
	clock      clock.Clock
	newDisplay func() camera.Display
	quitKey    int

	tracker *tracker.Tracker
	state   State
	stats   Stats
}

type ManagerConfig struct {
	Cooldown   time.Duration
	QuitKey    int
	NewDisplay func() camera.Display
	Clock      clock.Clock
}

func NewManager(dec *decoder.Adapter, ann *annotator.Annotator, seen tracker.SeenStore, con *console.Console, logger *logger.Logger, cfg ManagerConfig) *Manager {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	newDisplay := cfg.NewDisplay
	if newDisplay == nil {
		newDisplay = func() camera.Display { return camera.HeadlessDisplay{} }
	}

	return &Manager{
		decoder:    dec,
		annotator:  ann,
		seen:       seen,
		cooldown:   cfg.Cooldown,
		console:    con,
		logger:     logger,
		clock:      clk,
		newDisplay: newDisplay,
		quitKey:    cfg.QuitKey,
		state:      StateIdle,
	}
}

// State returns the current lifecycle phase.
func (m *Manager) State() State {
	return m.state
}

// Stats returns counters of the current or last run.
func (m *Manager) Stats() Stats {
	return m.stats
}

// Seen returns how many distinct payloads were reported so far.
func (m *Manager) Seen() int {
	if m.tracker == nil {
		return 0
	}
	return m.tracker.Seen()
}

// Run opens camera index and processes frames until the quit key, a
// capture failure, a panic inside the loop or ctx cancellation. All of
// them are graceful stops and return nil once the camera is released.
// A camera that cannot be opened returns an error wrapping ErrDeviceOpen
// without entering the loop.
func (m *Manager) Run(ctx context.Context, opener camera.Opener, index int) error {
	m.state = StateIdle
	m.stats = Stats{}

	source, openErr := opener.Open(index)
	if openErr != nil {
		m.console.Error("Error: Could not open camera %d.", index)
		m.logger.Error("Failed to open camera %d: %v", index, openErr)
		m.state = StateStopped
		return fmt.Errorf("%w: camera %d: %v", ErrDeviceOpen, index, openErr)
	}
	display := m.newDisplay()

	m.console.Println("Barcode Reader Started. Press '%c' to quit.", rune(m.quitKey))
	m.console.Println("Place a barcode in front of the camera...")
	m.console.Info("Using camera %d", index)
	m.logger.Info("🎬 Capture loop started on camera %d", index)

	m.tracker = tracker.New(m.seen, m.cooldown, m.clock.Now())
	m.state = StateRunning

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("capture loop panic: %v\n%s", r, debug.Stack())
			m.console.Error("Error: %v", r)
		}
		m.drain(source, display)
	}()

	for {
		if ctx.Err() != nil {
			m.logger.Info("Capture loop cancelled: %v", ctx.Err())
			return nil
		}

		f, readErr := source.Read()
		if readErr != nil {
			m.console.Error("Error: Failed to capture image")
			m.logger.Warning("%v: %v", ErrCapture, readErr)
			return nil
		}

		quit := m.processFrame(f, display)
		if quit {
			m.logger.Info("Quit key pressed")
			return nil
		}
	}
}

// processFrame runs one iteration and reports whether quit was requested.
func (m *Manager) processFrame(f frame.Frame, display camera.Display) bool {
	defer f.Close()
	m.stats.Frames++

	normalized := m.detect(f)

	if err := display.Show(f); err != nil {
		m.logger.Warning("Failed to show frame: %v", err)
	}

	report, err := m.tracker.Consider(normalized, m.clock.Now())
	for _, d := range report {
		m.console.Info("Barcode detected: %s (Type: %s)", d.Text, d.Symbology)
		m.logger.Info("Reported %s payload %q", d.Symbology, d.Text)
	}
	m.stats.Reported += len(report)
	if err != nil {
		m.console.Error("Error: %v", err)
		m.logger.Error("Seen-set failure: %v", err)
	}

	return display.WaitKey(1)&0xFF == m.quitKey
}

// detect decodes and annotates f. Failures leave the frame as it is and
// yield no detections.
func (m *Manager) detect(f frame.Frame) (normalized []dto.NormalizedDetection) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("annotate panic: %v\n%s", r, debug.Stack())
			m.console.Error("Error decoding barcode: %v", r)
			normalized = nil
		}
	}()

	raw := m.decoder.Decode(f)
	if errors.Is(m.decoder.LastErr(), decoder.ErrDecode) {
		m.stats.DecodeFailures++
	}
	_, normalized = m.annotator.Annotate(f, raw)
	return normalized
}

// drain releases the camera and the display exactly once.
func (m *Manager) drain(source camera.Source, display camera.Display) {
	m.state = StateDraining
	m.console.Info("Closing barcode reader...")

	if err := multierr.Combine(source.Close(), display.Close()); err != nil {
		m.logger.Warning("Failed to release capture resources: %v", err)
	}

	m.logger.Info("🛑 Capture loop stopped: %d frames, %d decode failures, %d reported",
		m.stats.Frames, m.stats.DecodeFailures, m.stats.Reported)
	m.state = StateStopped
}
