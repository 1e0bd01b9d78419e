// Package config defines the ScopeView configuration format and the store that
// owns the live configuration between load and save.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

const (
	// AppID is the stable application identifier used by the GUI framework.
	AppID = "scopeview"
	// AppConfigSubdir is the directory under the XDG config/state homes.
	AppConfigSubdir = "ScopeView"
	// AppConfigName is the JSON file stored on disk.
	AppConfigName = "config.json"

	// DefaultWidth is the preferred window width when no persisted value exists.
	DefaultWidth = 1024
	// DefaultHeight is the preferred window height when no persisted value exists.
	DefaultHeight = 640
	// MinWindowWidth keeps the toolbar fully visible.
	MinWindowWidth = 480
	// MinWindowHeight keeps the status line visible.
	MinWindowHeight = 240

	// MinFontSize is the smallest selectable UI font size in points.
	MinFontSize = 7
	// MaxFontSize is the largest selectable UI font size in points.
	MaxFontSize = 12
	// DefaultFontSize is the UI font size used when nothing valid is stored.
	DefaultFontSize = 9

	// DefaultLogLevel is used when neither the flag nor the file names a level.
	DefaultLogLevel = "info"
)

// ErrInvalidConfig reports a config file that exists but cannot be parsed.
var ErrInvalidConfig = errors.New("invalid config")

// AppOptions holds the display options edited in the options dialog.
type AppOptions struct {
	QuickScroll          bool    `json:"quickScroll" yaml:"quickScroll"`
	TrigPosDisplayInMid  bool    `json:"trigPosDisplayInMid" yaml:"trigPosDisplayInMid"`
	DisplayProfileInBar  bool    `json:"displayProfileInBar" yaml:"displayProfileInBar"`
	SwapBackBufferAlways bool    `json:"swapBackBufferAlways" yaml:"swapBackBufferAlways"`
	AutoScrollLatestData bool    `json:"autoScrollLatestData" yaml:"autoScrollLatestData"`
	FontSize             float64 `json:"fontSize" yaml:"fontSize"`
	TooltipFontSize      float64 `json:"tooltipFontSize" yaml:"tooltipFontSize"`
	// FontName is the UI font family; empty selects the toolkit default.
	FontName string `json:"fontName,omitempty" yaml:"fontName,omitempty"`
}

// Config aggregates every preference persisted between sessions.
type Config struct {
	Options        AppOptions `json:"options"`
	WindowW        int        `json:"windowW"`
	WindowH        int        `json:"windowH"`
	WindowX        int        `json:"windowX,omitempty"`
	WindowY        int        `json:"windowY,omitempty"`
	WindowPosValid bool       `json:"windowPosValid,omitempty"`
	LogLevel       string     `json:"logLevel,omitempty"`
}

// FontSizeRange reports the inclusive bounds of selectable font sizes.
func FontSizeRange() (min, max float64) {
	return MinFontSize, MaxFontSize
}

// DefaultOptions returns the options used on first launch.
func DefaultOptions() AppOptions {
	return AppOptions{
		QuickScroll:          true,
		TrigPosDisplayInMid:  true,
		DisplayProfileInBar:  false,
		SwapBackBufferAlways: false,
		AutoScrollLatestData: true,
		FontSize:             DefaultFontSize,
		TooltipFontSize:      DefaultFontSize,
	}
}

// DefaultPath resolves the config file location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppConfigSubdir, AppConfigName)
}

// StateDir resolves the directory for logs and other runtime state.
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppConfigSubdir)
}

// newDefaultConfig builds an in-memory config populated with safe defaults.
func newDefaultConfig() *Config {
	cfg := &Config{
		Options:  DefaultOptions(),
		WindowW:  DefaultWidth,
		WindowH:  DefaultHeight,
		LogLevel: DefaultLogLevel,
	}
	cfg.applyRuntimeDefaults()
	return cfg
}

// applyRuntimeDefaults normalizes config values after a load so the UI and the
// reconciler only ever see sizes from the selectable range.
func (c *Config) applyRuntimeDefaults() {
	if c.WindowW == 0 {
		c.WindowW = DefaultWidth
	}
	if c.WindowW < MinWindowWidth {
		c.WindowW = MinWindowWidth
	}
	if c.WindowH == 0 {
		c.WindowH = DefaultHeight
	}
	if c.WindowH < MinWindowHeight {
		c.WindowH = MinWindowHeight
	}
	if !c.WindowPosValid && (c.WindowX != 0 || c.WindowY != 0) {
		c.WindowPosValid = true
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.Options.FontSize = NormalizeFontSize(c.Options.FontSize)
	c.Options.TooltipFontSize = NormalizeFontSize(c.Options.TooltipFontSize)
	c.Options.FontName = strings.TrimSpace(c.Options.FontName)
}

// NormalizeFontSize snaps v to the nearest whole size inside the range.
// Zero and NaN (missing or garbage values) become DefaultFontSize.
func NormalizeFontSize(v float64) float64 {
	if v == 0 || math.IsNaN(v) {
		return DefaultFontSize
	}
	v = math.Round(v)
	if v < MinFontSize {
		return MinFontSize
	}
	if v > MaxFontSize {
		return MaxFontSize
	}
	return v
}

// Store owns the live configuration and its backing file.
type Store struct {
	fs   afero.Fs
	path string
	cfg  *Config
}

// NewStore wraps an already built config. Callers normally use Load.
func NewStore(fs afero.Fs, path string, cfg *Config) *Store {
	if cfg == nil {
		cfg = newDefaultConfig()
	}
	return &Store{fs: fs, path: path, cfg: cfg}
}

// Load reads the config at path, applying defaults when the file is missing.
// A corrupt file yields an error wrapping ErrInvalidConfig.
func Load(fs afero.Fs, path string) (*Store, error) {
	s := &Store{fs: fs, path: path}
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.cfg = newDefaultConfig()
			// Try saving an initial config, but still return defaults even if it fails.
			_ = s.Save()
			return s, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{Options: DefaultOptions()}
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	cfg.applyRuntimeDefaults()
	s.cfg = cfg
	return s, nil
}

// Path returns the file the store persists to.
func (s *Store) Path() string { return s.path }

// Config exposes the live config for fields outside the options dialog, such
// as window geometry.
func (s *Store) Config() *Config { return s.cfg }

// Options returns a copy of the live display options.
func (s *Store) Options() AppOptions { return s.cfg.Options }

// SetOptions overwrites the live display options. It does not persist.
func (s *Store) SetOptions(o AppOptions) { s.cfg.Options = o }

// Save persists the configuration, creating directories as needed.
func (s *Store) Save() error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := json.MarshalIndent(s.cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, b, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", s.path, err)
	}
	return nil
}
