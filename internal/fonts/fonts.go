// Package fonts enumerates installed font families for the options dialog and
// loads the file behind a chosen family.
package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/image/font/sfnt"
)

// maxFontFileSize skips files too large to be a single face.
const maxFontFileSize = 32 << 20

// ErrUnknownFamily is returned by Data for families not found during the scan.
var ErrUnknownFamily = errors.New("unknown font family")

// Provider supplies installed font families.
type Provider interface {
	Families() []string
	Data(family string) ([]byte, error)
}

type face struct {
	path    string
	regular bool
}

// System scans font directories once, on first use.
type System struct {
	fs   afero.Fs
	dirs []string
	log  zerolog.Logger

	once     sync.Once
	byFamily map[string]face
}

// NewSystem returns a provider over dirs, usually xdg.FontDirs.
func NewSystem(fs afero.Fs, dirs []string, log zerolog.Logger) *System {
	return &System{fs: fs, dirs: dirs, log: log}
}

// Scan walks the font dirs unless that already happened. Families and Data
// wait for a scan running on another goroutine.
func (s *System) Scan() {
	s.once.Do(s.scan)
}

// Families returns the sorted family names found under the font dirs.
func (s *System) Families() []string {
	s.Scan()
	out := make([]string, 0, len(s.byFamily))
	for name := range s.byFamily {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Data reads the font file for family, preferring its regular face.
func (s *System) Data(family string) ([]byte, error) {
	s.Scan()
	f, ok := s.byFamily[family]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}
	b, err := afero.ReadFile(s.fs, f.path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", f.path, err)
	}
	return b, nil
}

func (s *System) scan() {
	s.byFamily = map[string]face{}
	for _, dir := range s.dirs {
		err := afero.Walk(s.fs, dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				// Missing or unreadable dirs are common; skip them.
				return nil
			}
			if info.IsDir() || info.Size() > maxFontFileSize || !isFontFile(path) {
				return nil
			}
			s.add(path)
			return nil
		})
		if err != nil {
			s.log.Warn().Err(err).Str("dir", dir).Msg("font scan failed")
		}
	}
	s.log.Debug().Int("families", len(s.byFamily)).Msg("font scan complete")
}

// add records the family of the font at path, reading only its sfnt tables.
func (s *System) add(path string) {
	file, err := s.fs.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	f, err := sfnt.ParseReaderAt(file)
	if err != nil {
		s.log.Debug().Err(err).Str("path", path).Msg("skipping unparsable font")
		return
	}
	family, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil || strings.TrimSpace(family) == "" {
		return
	}
	family = strings.TrimSpace(family)
	sub, _ := f.Name(nil, sfnt.NameIDSubfamily)
	regular := strings.EqualFold(strings.TrimSpace(sub), "Regular")

	prev, seen := s.byFamily[family]
	if !seen || (regular && !prev.regular) {
		s.byFamily[family] = face{path: path, regular: regular}
	}
}

// isFontFile accepts single-face TrueType and OpenType files. Collections are
// skipped because the theme needs one face per resource.
func isFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}
