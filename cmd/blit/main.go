package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/avico/go-blit/blit"
	"github.com/avico/go-blit/blit/backend"
	"github.com/avico/go-blit/blit/backend/headless"
	"github.com/avico/go-blit/blit/backend/sdl2"
	"github.com/avico/go-blit/blit/backend/terminal"
	"github.com/avico/go-blit/blit/demo"
)

func main() {
	app := cli.NewApp()
	app.Name = "blit"
	app.Description = "A software-rendered 2D sprite engine demo"
	app.Usage = "blit [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Usage: "Display buffer width in pixels",
			Value: 320,
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "Display buffer height in pixels",
			Value: 180,
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Integer pixel magnification",
			Value: 4,
		},
		cli.Float64Flag{
			Name:  "fps",
			Usage: "Target frame rate",
			Value: 60,
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Display backend: terminal, sdl2 or headless",
			Value: "terminal",
		},
		cli.StringFlag{
			Name:  "assets",
			Usage: "Directory of sprite sheets to load (optional)",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.BoolFlag{
			Name:  "webp",
			Usage: "Encode snapshots as WebP instead of PNG",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running demo", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := blit.Config{
		Title:  "blit demo",
		Width:  c.Int("width"),
		Height: c.Int("height"),
		Scale:  c.Int("scale"),
		FPS:    c.Float64("fps"),
	}

	var b backend.Backend
	switch c.String("backend") {
	case "terminal":
		b = terminal.New()
	case "sdl2":
		b = sdl2.New()
	case "headless":
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames with a positive value")
		}
		snapshots, err := headless.CreateSnapshotConfig(
			c.Int("snapshot-interval"), c.String("snapshot-dir"), "demo", c.Bool("webp"))
		if err != nil {
			return err
		}
		b = headless.New(frames, snapshots)
		cfg.Unlimited = true
	default:
		return fmt.Errorf("unknown backend %q", c.String("backend"))
	}

	engine, err := blit.New(cfg, b)
	if err != nil {
		return err
	}

	if dir := c.String("assets"); dir != "" {
		n, err := engine.LoadSprites(dir)
		if err != nil {
			return err
		}
		slog.Info("Loaded sprite sheets", "count", n, "dir", dir)
	}

	scene := demo.New(engine)
	status, err := engine.Run(blit.Callbacks{
		Entry:  scene.Entry,
		Update: scene.Update,
		Exit:   scene.Exit,
	}, c.Args())
	if err != nil {
		return err
	}
	if status != 0 {
		return cli.NewExitError("", status)
	}
	return nil
}
