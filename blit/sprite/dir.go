package sprite

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/avico/go-blit/blit/buffer"
)

// imageExts lists the asset extensions a directory scan will load.
var imageExts = map[string]bool{
	".png": true,
	".tga": true,
}

// LoadDirectory registers a sprite for every image file found directly
// in dir, in lexical order so ids are stable across runs. Files that
// fail to decode are logged and skipped. Returns the number of sprites
// loaded.
func (r *Registry) LoadDirectory(decode func(string) (*buffer.Buffer, error), dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	loaded := 0
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		path := filepath.Join(dir, e.Name())
		id, err := r.LoadSheet(decode, path)
		if err != nil {
			slog.Warn("Skipping unloadable sprite sheet", "path", path, "error", err)
			continue
		}
		slog.Debug("Loaded sprite sheet", "id", id, "path", path)
		loaded++
	}
	return loaded, nil
}
