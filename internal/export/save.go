package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileSaver persists exported bytes under a name with a declared
// content type. The mechanism is platform-specific; the contract is
// only that the exact bytes requested are what gets saved.
type FileSaver interface {
	Save(content []byte, filename, contentType string) error
}

// DirSaver writes exports into a directory on the local filesystem.
type DirSaver struct {
	// Dir is the target directory. Created on first save if absent.
	Dir string

	// Log receives one entry per saved file. Zero value discards.
	Log zerolog.Logger
}

// Save writes content to Dir/filename. The filename must be a bare
// name; anything carrying a path component is rejected rather than
// silently escaping the directory.
func (d DirSaver) Save(content []byte, filename, contentType string) error {
	if filename == "" || filename != filepath.Base(filename) {
		return fmt.Errorf("save export: invalid filename %q", filename)
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("save export: %w", err)
	}

	path := filepath.Join(d.Dir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("save export: %w", err)
	}

	d.Log.Debug().
		Str("path", path).
		Str("content_type", contentType).
		Int("bytes", len(content)).
		Msg("export saved")
	return nil
}
