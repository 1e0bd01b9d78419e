package config

import (
	"errors"
	"math"
	"testing"

	"github.com/spf13/afero"
)

const testPath = "/cfg/ScopeView/config.json"

func TestLoadDefaultConfig(t *testing.T) {
	fs := afero.NewMemMapFs()

	s, err := Load(fs, testPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s == nil || s.Config() == nil {
		t.Fatal("Load returned nil config")
	}
	cfg := s.Config()
	if cfg.Options != DefaultOptions() {
		t.Errorf("Options = %+v, want %+v", cfg.Options, DefaultOptions())
	}
	if cfg.WindowW != DefaultWidth {
		t.Errorf("WindowW = %d, want %d", cfg.WindowW, DefaultWidth)
	}
	if cfg.WindowH != DefaultHeight {
		t.Errorf("WindowH = %d, want %d", cfg.WindowH, DefaultHeight)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if ok, _ := afero.Exists(fs, testPath); !ok {
		t.Fatalf("expected config file at %s", testPath)
	}
}

func TestSaveThenLoadRoundTripsOptions(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewStore(fs, testPath, nil)
	o := s.Options()
	o.QuickScroll = false
	o.SwapBackBufferAlways = true
	o.FontSize = 11
	o.TooltipFontSize = 7
	o.FontName = "DejaVu Sans"
	s.SetOptions(o)
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(fs, testPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Options() != o {
		t.Fatalf("loaded %+v, want %+v", loaded.Options(), o)
	}
}

func TestLoadNormalizesFontSizes(t *testing.T) {
	fs := afero.NewMemMapFs()
	raw := `{"options":{"quickScroll":false,"fontSize":9.6,"tooltipFontSize":40},"windowW":10,"windowX":5}`
	if err := afero.WriteFile(fs, testPath, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(fs, testPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	o := s.Options()
	if o.QuickScroll {
		t.Error("QuickScroll should keep the stored false")
	}
	if o.FontSize != 10 {
		t.Errorf("FontSize = %v, want 10", o.FontSize)
	}
	if o.TooltipFontSize != MaxFontSize {
		t.Errorf("TooltipFontSize = %v, want %v", o.TooltipFontSize, MaxFontSize)
	}
	cfg := s.Config()
	if cfg.WindowW != MinWindowWidth {
		t.Errorf("WindowW = %d, want %d", cfg.WindowW, MinWindowWidth)
	}
	if !cfg.WindowPosValid {
		t.Error("WindowPosValid should be inferred from a stored position")
	}
}

func TestLoadMissingOptionsKeepsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, testPath, []byte(`{"windowW":900}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(fs, testPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Options() != DefaultOptions() {
		t.Fatalf("Options = %+v, want defaults", s.Options())
	}
}

func TestLoadCorruptConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, testPath, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(fs, testPath)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestSaveReadOnlyFs(t *testing.T) {
	s := NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), testPath, nil)
	if err := s.Save(); err == nil {
		t.Fatal("expected Save to fail on a read-only filesystem")
	}
}

func TestNormalizeFontSize(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "zero uses default", in: 0, want: DefaultFontSize},
		{name: "nan uses default", in: math.NaN(), want: DefaultFontSize},
		{name: "in range kept", in: 8, want: 8},
		{name: "fraction rounded", in: 10.4, want: 10},
		{name: "below min clamped", in: 3, want: MinFontSize},
		{name: "above max clamped", in: 30, want: MaxFontSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFontSize(tt.in); got != tt.want {
				t.Fatalf("NormalizeFontSize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFontSizeRange(t *testing.T) {
	min, max := FontSizeRange()
	if min != MinFontSize || max != MaxFontSize {
		t.Fatalf("FontSizeRange() = (%v, %v)", min, max)
	}
	if DefaultFontSize < min || DefaultFontSize > max {
		t.Fatalf("DefaultFontSize %v outside range", float64(DefaultFontSize))
	}
}
