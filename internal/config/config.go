package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/snapmark/internal/action"
	"github.com/example/snapmark/internal/shortcut"
)

const (
	// Off in the [shortcuts] section deactivates the chord's binding.
	Off = "off"

	defaultSettleDelay  = 300 * time.Millisecond
	defaultRestoreDelay = 100 * time.Millisecond
)

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Shortcut is one line of the [shortcuts] section.
type Shortcut struct {
	Chord  string
	Action string
}

// Config holds the application configuration.
type Config struct {
	SaveDir      string
	Screen       string
	Backend      string
	SettleDelay  time.Duration
	RestoreDelay time.Duration
	Notify       Notify
	Shortcuts    []Shortcut
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		SettleDelay:  defaultSettleDelay,
		RestoreDelay: defaultRestoreDelay,
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Screen != "" {
		fmt.Fprintf(&sb, "screen = %s\n", c.Screen)
	}
	if c.Backend != "" {
		fmt.Fprintf(&sb, "backend = %s\n", c.Backend)
	}
	fmt.Fprintf(&sb, "settle_delay = %s\n", c.SettleDelay)
	fmt.Fprintf(&sb, "restore_delay = %s\n", c.RestoreDelay)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	if len(c.Shortcuts) > 0 {
		sb.WriteString("\n[shortcuts]\n")
		for _, s := range c.Shortcuts {
			fmt.Fprintf(&sb, "%s = %s\n", s.Chord, s.Action)
		}
	}
	return sb.String()
}

// ApplyShortcuts adds or deactivates bindings in t. A chord that is already
// bound is rebound to the configured action.
func (c *Config) ApplyShortcuts(t *shortcut.Table) error {
	for _, s := range c.Shortcuts {
		chord, err := shortcut.ParseChord(s.Chord)
		if err != nil {
			return fmt.Errorf("shortcut %q: %w", s.Chord, err)
		}
		if strings.EqualFold(s.Action, Off) {
			if !t.SetActive(chord, false) {
				return fmt.Errorf("shortcut %s: nothing bound to turn off", chord)
			}
			continue
		}
		a, err := action.Parse(s.Action)
		if err != nil {
			return fmt.Errorf("shortcut %s: %w", chord, err)
		}
		t.Delete(chord)
		if _, err := t.Insert(chord, a); err != nil {
			return fmt.Errorf("shortcut %s: %w", chord, err)
		}
	}
	return nil
}
