package savefile

import (
	"fmt"
	"os"
	"path/filepath"
)

// AutoDialog accepts the proposed name without asking.
type AutoDialog struct {
	// Ext is appended to the name; ".png" when empty.
	Ext string
}

// SaveFile returns dir/name+Ext. The directory must exist.
func (d AutoDialog) SaveFile(name, dir string) (string, bool, error) {
	if info, err := os.Stat(dir); err != nil {
		return "", false, fmt.Errorf("save dialog: %w", err)
	} else if !info.IsDir() {
		return "", false, fmt.Errorf("save dialog: %s is not a directory", dir)
	}
	ext := d.Ext
	if ext == "" {
		ext = ".png"
	}
	return filepath.Join(dir, name+ext), true, nil
}

// FixedDialog answers with a preset path. A path naming an existing
// directory receives the proposed name. An empty path cancels.
type FixedDialog struct {
	Path string
}

// SaveFile implements the session save dialog.
func (d FixedDialog) SaveFile(name, dir string) (string, bool, error) {
	if d.Path == "" {
		return "", false, nil
	}
	if info, err := os.Stat(d.Path); err == nil && info.IsDir() {
		return filepath.Join(d.Path, name+".png"), true, nil
	}
	return d.Path, true, nil
}
