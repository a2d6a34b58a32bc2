package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"trip-planner-service/internal/adapters/desktop"
	"trip-planner-service/internal/app"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/export"
	"trip-planner-service/internal/platform/logger"
	"trip-planner-service/internal/services"

	"go.uber.org/zap"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// The CLI keeps a single plan on this device.
const localSessionID = "local"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &cli{ctx: ctx, out: os.Stdout}
	defer c.close()

	registry := NewCommandRegistry(VersionInfo{Version: version, Commit: commit, Date: date})
	registerCommands(registry, c)

	if err := registry.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		c.close()
		os.Exit(1)
	}
}

// cli builds the application lazily so commands that need no backend stay
// offline.
type cli struct {
	ctx context.Context
	out io.Writer

	app  *app.App
	sess *services.Session
	log  *zap.Logger
}

func (c *cli) load() (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	cfg, _, err := config.Load()
	if err != nil {
		return nil, err
	}
	c.log = logger.New(cfg.LoggerLevel, cfg.LoggerFormat, cfg.Environment)

	a, err := app.New(c.ctx, cfg, c.log, app.StoreSQLite)
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *cli) session() (*services.Session, error) {
	if c.sess != nil {
		return c.sess, nil
	}
	a, err := c.load()
	if err != nil {
		return nil, err
	}
	sharer := &export.Sharer{Clipboard: desktop.NewCommandClipboard(), Log: c.log}
	c.sess = a.NewSession(c.ctx, localSessionID, sharer)
	return c.sess, nil
}

func (c *cli) close() {
	if c.app != nil {
		c.app.Close()
		c.app = nil
	}
	if c.log != nil {
		_ = c.log.Sync()
	}
}

func registerCommands(r *CommandRegistry, c *cli) {
	r.Register(&Command{
		Name:        "plan",
		Description: "Generate an itinerary and make it the current plan",
		Usage:       "tripctl plan --destination <place> [flags]",
		Examples: []string{
			`tripctl plan --destination "Paris, France" --days 3 --budget 2000`,
			`tripctl plan --destination Tokyo --interests "Food & Dining,Nightlife"`,
			"tripctl plan --surprise",
		},
		Run: c.planCommand,
	})
	r.Register(&Command{
		Name:        "show",
		Description: "Print the current plan",
		Usage:       "tripctl show [--format summary|text|json]",
		Examples:    []string{"tripctl show", "tripctl show --format json"},
		Run:         c.showCommand,
	})
	r.Register(&Command{
		Name:        "reset",
		Description: "Discard the current plan",
		Usage:       "tripctl reset",
		Run:         c.resetCommand,
	})
	r.Register(&Command{
		Name:        "export",
		Description: "Write the current plan as text, PDF, share QR code or postcard",
		Usage:       "tripctl export <text|pdf|qr|postcard> [flags]",
		Examples: []string{
			"tripctl export text",
			"tripctl export pdf --out ./downloads",
			"tripctl export postcard --theme halloween --ai=false",
		},
		Run: c.exportCommand,
	})
	r.Register(&Command{
		Name:        "share",
		Description: "Copy the trip summary to the clipboard",
		Usage:       "tripctl share",
		Run:         c.shareCommand,
	})
	r.Register(&Command{
		Name:        "import",
		Description: "Make an itinerary JSON file the current plan",
		Usage:       "tripctl import <file.json>",
		Examples:    []string{"tripctl import ./paris.json"},
		Run:         c.importCommand,
	})
	r.Register(&Command{
		Name:        "search",
		Description: "Show flights, hotels, weather and events for a destination",
		Usage:       "tripctl search --destination <place> [--origin <place>]",
		Examples:    []string{`tripctl search --destination "Rome, Italy" --origin London`},
		Run:         c.searchCommand,
	})
	r.Register(&Command{
		Name:        "detect-origin",
		Description: "Resolve coordinates to a departure city",
		Usage:       "tripctl detect-origin --lat <lat> --lon <lon>",
		Examples:    []string{"tripctl detect-origin --lat 40.7128 --lon -74.0060"},
		Run:         c.detectOriginCommand,
	})
	r.Register(&Command{
		Name:        "photo",
		Description: "Place a photo of yourself at a landmark",
		Usage:       "tripctl photo --image <file> --landmark <id> [--ai=false]",
		Examples:    []string{"tripctl photo --image me.jpg --landmark eiffel-tower"},
		Run:         c.photoCommand,
	})
	r.Register(&Command{
		Name:        "themes",
		Description: "List postcard themes and landmarks",
		Usage:       "tripctl themes",
		Run:         c.themesCommand,
	})
	r.Register(&Command{
		Name:        "version",
		Description: "Show version information",
		Usage:       "tripctl version",
		Run: func(args []string) error {
			fmt.Fprintf(c.out, "tripctl %s (commit %s, built %s)\n", r.version.Version, r.version.Commit, r.version.Date)
			return nil
		},
	})
}
