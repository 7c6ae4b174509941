// Package headless implements a display-less backend for automated
// testing and batch rendering. It counts frames, optionally writes
// periodic snapshots, and signals quit once a frame budget is spent.
package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avico/go-blit/blit/backend"
	"github.com/avico/go-blit/blit/buffer"
	"github.com/avico/go-blit/blit/codec"
	"github.com/avico/go-blit/blit/input"
)

// Backend implements backend.Backend without any display surface.
type Backend struct {
	config         backend.Config
	frameCount     int
	maxFrames      int
	snapshotConfig SnapshotConfig
}

// SnapshotConfig holds configuration for frame snapshots.
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
	BaseName  string // Base name for snapshot filenames
	WebP      bool   // Encode WebP instead of PNG
}

// New creates a headless backend that quits after maxFrames frames.
// maxFrames <= 0 runs unbounded.
func New(maxFrames int, snapshotConfig SnapshotConfig) *Backend {
	return &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
	}
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(handler))

	return nil
}

// Poll reports a quit event once the frame budget is exhausted.
func (h *Backend) Poll() ([]input.Event, error) {
	if h.maxFrames > 0 && h.frameCount >= h.maxFrames {
		if h.snapshotConfig.Enabled {
			slog.Info("Headless execution completed",
				"frames", h.maxFrames, "snapshots_saved_to", h.snapshotConfig.Directory)
		} else {
			slog.Info("Headless execution completed", "frames", h.maxFrames)
		}
		return []input.Event{{Action: input.ActionQuit, Type: input.Press}}, nil
	}
	return nil, nil
}

// Present counts the frame and writes a snapshot when one is due.
func (h *Backend) Present(frame *buffer.Buffer) (time.Duration, error) {
	start := time.Now()
	h.frameCount++

	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval == 0 {
		h.saveSnapshot(frame)
	}

	if h.frameCount%10 == 0 {
		slog.Info("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	return time.Since(start), nil
}

func (h *Backend) Focused() bool { return true }

func (h *Backend) Cleanup() error { return nil }

// FrameCount returns the number of frames presented so far.
func (h *Backend) FrameCount() int { return h.frameCount }

// CreateSnapshotConfig builds a snapshot configuration from CLI
// parameters, creating the target directory as needed.
func CreateSnapshotConfig(interval int, directory, baseName string, webp bool) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
		WebP:     webp,
	}

	if !config.Enabled {
		return config, nil
	}

	if directory == "" {
		tempDir, err := os.MkdirTemp("", "blit-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %v", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %v", err)
		}
		config.Directory = directory
	}

	config.BaseName = strings.TrimSuffix(filepath.Base(baseName), filepath.Ext(baseName))
	if config.BaseName == "" || config.BaseName == "." {
		config.BaseName = "frame"
	}

	return config, nil
}

// saveSnapshot writes the frame at presentation scale, so snapshots
// match what a windowed backend would have shown.
func (h *Backend) saveSnapshot(frame *buffer.Buffer) {
	ext := "png"
	if h.snapshotConfig.WebP {
		ext = "webp"
	}
	path := filepath.Join(h.snapshotConfig.Directory,
		fmt.Sprintf("%s_%d.%s", h.snapshotConfig.BaseName, h.frameCount, ext))

	img := codec.Upscale(codec.ToImage(frame), h.config.Scale)
	if err := codec.SaveImage(img, path); err != nil {
		slog.Error("Failed to save snapshot", "frame", h.frameCount, "error", err)
		return
	}
	slog.Debug("Snapshot saved", "frame", h.frameCount, "path", path)
}
