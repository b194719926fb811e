package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"barcodereader/internal/app"
	"barcodereader/internal/config"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
)

const (
	flagCamera      = "camera"
	flagCooldown    = "cooldown"
	flagProbeLimit  = "probe-limit"
	flagLogDir      = "log-dir"
	flagDiagLog     = "diag-log"
	flagSymbologies = "symbologies"
	flagSeenStore   = "seen-store"
	flagReplay      = "replay"
	flagHeadless    = "headless"
)

func main() {
	if err := newCLI(runReader).Run(os.Args); err != nil {
		log.Fatalf("Barcode reader failed: %v", err)
	}
}

func runReader(ctx context.Context, cfg *config.Config) error {
	return app.NewApp(cfg).Run(ctx)
}

// newCLI builds the command line. Flags override values from the
// environment and .env; unset flags leave them alone.
func newCLI(run func(context.Context, *config.Config) error) *cli.App {
	return &cli.App{
		Name:            "barcode-reader",
		Usage:           "read barcodes and QR codes from a camera",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    flagCamera,
				Aliases: []string{"c"},
				Usage:   "camera `INDEX` to use instead of asking",
			},
			&cli.DurationFlag{
				Name:  flagCooldown,
				Usage: "minimum time between two reports",
			},
			&cli.IntFlag{
				Name:  flagProbeLimit,
				Usage: "probe at most `N` camera indices",
			},
			&cli.StringFlag{
				Name:  flagLogDir,
				Usage: "write log files to `DIR`",
			},
			&cli.StringFlag{
				Name:  flagDiagLog,
				Usage: "redirect decoder diagnostics to `FILE`",
			},
			&cli.StringSliceFlag{
				Name:  flagSymbologies,
				Usage: "only decode these symbologies (e.g. QRCODE,EAN13)",
			},
			&cli.StringFlag{
				Name:  flagSeenStore,
				Usage: "seen-set backend: memory or sqlite",
			},
			&cli.StringFlag{
				Name:  flagReplay,
				Usage: "play back images from `DIR` instead of a camera",
			},
			&cli.BoolFlag{
				Name:  flagHeadless,
				Usage: "do not open a preview window",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			applyFlags(c, cfg)

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}
}

func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet(flagCamera) {
		cfg.CameraIndex = c.Int(flagCamera)
	}
	if c.IsSet(flagCooldown) {
		cfg.Cooldown = c.Duration(flagCooldown)
	}
	if c.IsSet(flagProbeLimit) {
		cfg.ProbeLimit = c.Int(flagProbeLimit)
	}
	if c.IsSet(flagLogDir) {
		cfg.LogDirectory = c.String(flagLogDir)
	}
	if c.IsSet(flagDiagLog) {
		cfg.DiagnosticLog = c.String(flagDiagLog)
	}
	if c.IsSet(flagSymbologies) {
		names := lo.FlatMap(c.StringSlice(flagSymbologies), func(v string, _ int) []string {
			return strings.Split(v, ",")
		})
		names = lo.Map(names, func(v string, _ int) string { return strings.ToUpper(strings.TrimSpace(v)) })
		cfg.Symbologies = lo.Compact(names)
	}
	if c.IsSet(flagSeenStore) {
		cfg.SeenStore = c.String(flagSeenStore)
	}
	if c.IsSet(flagReplay) {
		cfg.ReplayDirectory = c.String(flagReplay)
	}
	if c.IsSet(flagHeadless) {
		cfg.Headless = c.Bool(flagHeadless)
	}
}
