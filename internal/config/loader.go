package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "SNAPMARK_"

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
	// EnvFiles are loaded with godotenv before overrides are read. Missing
	// files are ignored.
	EnvFiles []string
	// Getenv reads overrides; os.Getenv when nil.
	Getenv func(string) string
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
		EnvFiles:     []string{".env"},
	}
}

// Load reads the config file, if any, then applies environment overrides.
func (l *Loader) Load() (*Config, error) {
	l.loadEnvFiles()

	cfg := New()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		parsed, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cfg = parsed
	}
	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) loadEnvFiles() {
	for _, p := range l.EnvFiles {
		// godotenv.Load never overrides variables that are already set
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("env file %s: %v", p, err)
		}
	}
}

func (l *Loader) getenv(name string) string {
	if l.Getenv != nil {
		return l.Getenv(name)
	}
	return os.Getenv(name)
}

func (l *Loader) applyEnv(cfg *Config) error {
	if v := l.getenv(EnvPrefix + "SAVE_DIR"); v != "" {
		cfg.SaveDir = v
	}
	if v := l.getenv(EnvPrefix + "SCREEN"); v != "" {
		cfg.Screen = v
	}
	if v := l.getenv(EnvPrefix + "BACKEND"); v != "" {
		cfg.Backend = v
	}
	for name, dst := range map[string]*bool{
		"NOTIFY_CAPTURE": &cfg.Notify.Capture,
		"NOTIFY_SAVE":    &cfg.Notify.Save,
		"NOTIFY_COPY":    &cfg.Notify.Copy,
	} {
		v := strings.TrimSpace(l.getenv(EnvPrefix + name))
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
	}
	return nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	// 1. Variable override path
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// 2. Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".snapmarkrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	// 3. XDG Config Path
	if p := UserConfigPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// UserConfigPath is where `config save` writes, ~/.config/snapmark/config.rc.
func UserConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "snapmark", "config.rc")
}

// Save writes cfg to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(cfg.String()), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
