package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"barcodereader/internal/camera"
	"barcodereader/internal/camera/webcam"
	"barcodereader/internal/config"
	"barcodereader/internal/console"
	"barcodereader/internal/diag"
	"barcodereader/internal/logger"
	"barcodereader/internal/repository"
	"barcodereader/internal/repository/sqlite"
	"barcodereader/internal/services"
	"barcodereader/internal/services/annotator"
	"barcodereader/internal/services/decoder"
	"barcodereader/internal/services/tracker"

	"github.com/benbjohnson/clock"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
)

// probeSpinner is the part of a pterm spinner the device probe uses.
type probeSpinner interface {
	Success(...any)
	Fail(...any)
}

type spinnerFactory func(text string) (probeSpinner, error)

var defaultSpinnerFactory spinnerFactory = func(text string) (probeSpinner, error) {
	spinner, err := pterm.DefaultSpinner.
		WithRemoveWhenDone(false).
		WithText(text).
		Start()
	if err != nil {
		return nil, err
	}
	return spinner, nil
}

// App owns everything one reader run needs: configuration, the run ID,
// operator I/O and the capture hardware.
type App struct {
	config  *config.Config
	clock   clock.Clock
	runID   string
	in      io.Reader
	out     io.Writer
	colored bool

	opener     camera.Opener
	newDisplay func() camera.Display
	spinner    spinnerFactory

	manager *services.Manager
}

func NewApp(cfg *config.Config) *App {
	a := &App{
		config:  cfg,
		clock:   clock.New(),
		runID:   uuid.NewString(),
		in:      os.Stdin,
		out:     os.Stdout,
		colored: !color.NoColor,
		spinner: defaultSpinnerFactory,
	}

	switch {
	case cfg.ReplayDirectory != "":
		a.opener = camera.ReplayOpener{Dir: cfg.ReplayDirectory}
		a.newDisplay = func() camera.Display { return camera.HeadlessDisplay{} }
	case cfg.Headless:
		a.opener = webcam.Opener{}
		a.newDisplay = func() camera.Display { return camera.HeadlessDisplay{} }
	default:
		a.opener = webcam.Opener{}
		a.newDisplay = func() camera.Display { return webcam.NewWindow(cfg.WindowTitle) }
	}

	return a
}

// RunID identifies this run in the log files.
func (a *App) RunID() string {
	return a.runID
}

// Run executes one reader session. Startup problems the operator can act on
// (no camera, camera busy, aborted selection) are reported on the console
// and return nil; only broken local setup returns an error.
func (a *App) Run(ctx context.Context) error {
	con := console.New(a.out, a.clock, a.colored)
	con.Banner()

	sink, err := diag.Open(a.config.DiagnosticLog)
	if err != nil {
		return err
	}
	defer sink.Close()

	log, err := logger.NewLogger(a.config, a.runID, sink)
	if err != nil {
		return err
	}
	defer log.Close()
	log.Info("🚀 Barcode reader run %s started", log.RunID())
	log.Info("Decoder diagnostics redirected to %s", sink.Name())

	seen, summarize, closeSeen, err := a.openSeenStore()
	if err != nil {
		log.Error("Failed to open seen-set store: %v", err)
		return err
	}
	defer closeSeen()

	backend, err := decoder.NewZXingBackend(a.config.Symbologies)
	if err != nil {
		log.Error("Invalid symbology configuration: %v", err)
		return err
	}

	devices := a.probe(log)
	if len(devices) == 0 {
		con.Error("No cameras detected on your system.")
		log.Warning("%v", services.ErrNoDevice)
		return nil
	}

	index := a.config.CameraIndex
	if index < 0 {
		index, err = camera.Select(a.in, con.Writer(), devices)
		if errors.Is(err, camera.ErrSelectionAborted) {
			con.Error("Camera selection aborted.")
			log.Warning("%v", err)
			return nil
		}
		if err != nil {
			return err
		}
	}

	a.manager = services.NewManager(
		decoder.NewAdapter(backend, con, log),
		annotator.NewAnnotator(log),
		seen,
		con,
		log,
		services.ManagerConfig{
			Cooldown:   a.config.Cooldown,
			QuitKey:    a.config.QuitKeyCode(),
			NewDisplay: a.newDisplay,
			Clock:      a.clock,
		},
	)

	err = a.manager.Run(ctx, a.opener, index)
	if errors.Is(err, services.ErrDeviceOpen) {
		return nil
	}

	stats := a.manager.Stats()
	con.Info("Processed %d frames, %d decode failures, %d barcodes reported", stats.Frames, stats.DecodeFailures, stats.Reported)
	summarize(con)

	return err
}

// probe lists the cameras that open, behind a spinner.
func (a *App) probe(log *logger.Logger) []int {
	spinner, err := a.spinner("Searching for cameras...")
	if err != nil {
		log.Warning("Spinner unavailable: %v", err)
		spinner = nil
	}

	devices := camera.ListDevices(a.opener, a.config.ProbeLimit)
	log.Info("Probe found %d camera(s): %v", len(devices), devices)

	if spinner != nil {
		if len(devices) == 0 {
			spinner.Fail("No cameras found")
		} else {
			spinner.Success(fmt.Sprintf("Found %d camera(s)", len(devices)))
		}
	}
	return devices
}

// openSeenStore returns the configured seen-set, a per-symbology summary
// printer and a release func.
func (a *App) openSeenStore() (tracker.SeenStore, func(*console.Console), func(), error) {
	switch a.config.SeenStore {
	case config.SeenStoreMemory, "":
		return tracker.NewMemoryStore(), func(*console.Console) {}, func() {}, nil

	case config.SeenStoreSQLite:
		db, err := sqlite.NewMemory()
		if err != nil {
			return nil, nil, nil, err
		}
		var repo repository.SeenRepository = sqlite.NewSeenRepository(db)
		summarize := func(con *console.Console) {
			counts, err := repo.CountBySymbology()
			if err != nil || len(counts) == 0 {
				return
			}
			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				con.Println("  %s: %d", name, counts[name])
			}
		}
		return repo, summarize, func() { db.Close() }, nil
	}

	return nil, nil, nil, fmt.Errorf("unknown seen store %q", a.config.SeenStore)
}
