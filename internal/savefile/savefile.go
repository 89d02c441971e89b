// Package savefile picks default names and locations for saved captures and
// writes them in the format their extension asks for.
package savefile

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/sync/errgroup"
)

const (
	// Prefix starts every default file name.
	Prefix = "screenshot_"
	// MaxNameLen bounds the default name.
	MaxNameLen = 27
	// DefaultDir is used when no save directory is configured.
	DefaultDir = "~"
)

// Filter is a file type offered by the save dialog.
type Filter struct {
	Name       string
	Extensions []string
}

// Filters lists the supported output formats. The first one is the default.
var Filters = []Filter{
	{Name: "PNG", Extensions: []string{"png"}},
	{Name: "JPEG", Extensions: []string{"jpg", "jpeg"}},
	{Name: "GIF", Extensions: []string{"gif"}},
}

// DefaultName returns screenshot_YYYYMMDD_HHMMSS for t in UTC.
func DefaultName(t time.Time) string {
	name := Prefix + t.UTC().Format("20060102_150405")
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
	}
	return name
}

// DefaultNameAsync computes DefaultName on a worker and waits for it.
func DefaultNameAsync(ctx context.Context, now func() time.Time) (string, error) {
	g, ctx := errgroup.WithContext(ctx)
	var name string
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		name = DefaultName(now())
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("default name: %w", err)
	}
	return name, nil
}

// HomeDir returns the user's home directory, or "." when it is unknown.
func HomeDir() string {
	home, err := homedir.Dir()
	if err != nil || home == "" {
		return "."
	}
	return home
}

// ResolveDir expands a leading ~ and falls back to the home directory when
// dir is empty or does not name an existing directory.
func ResolveDir(dir string) string {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDir
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		log.Printf("save dir %q: %v", dir, err)
		return HomeDir()
	}
	if info, err := os.Stat(expanded); err != nil || !info.IsDir() {
		return HomeDir()
	}
	return expanded
}

// FormatFor returns the filter matching the extension of path, defaulting
// to PNG.
func FormatFor(path string) Filter {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, f := range Filters {
		for _, e := range f.Extensions {
			if e == ext {
				return f
			}
		}
	}
	return Filters[0]
}

// Write stores img at path. For PNG output the already encoded bytes are
// written as is when provided.
func Write(path string, img image.Image, encoded []byte) (err error) {
	if img == nil && len(encoded) == 0 {
		return errors.New("nothing to write")
	}
	format := FormatFor(path)
	if format.Name == "PNG" && len(encoded) > 0 {
		if err := os.WriteFile(path, encoded, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	}
	if img == nil {
		return fmt.Errorf("write %s: no pixels to encode as %s", path, format.Name)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	switch format.Name {
	case "JPEG":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case "GIF":
		err = gif.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
