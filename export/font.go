package export

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/andareed/siftly-chart/logging"
)

// fontDirs are searched, in order, for a family name.
var fontDirs = systemFontDirs()

var genericFamilies = map[string]bool{
	"":           true,
	"sans-serif": true,
	"serif":      true,
	"monospace":  true,
	"system-ui":  true,
}

func systemFontDirs() []string {
	dirs := []string{"/usr/share/fonts", "/usr/local/share/fonts", "/Library/Fonts", "/System/Library/Fonts"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".fonts"), filepath.Join(home, ".local", "share", "fonts"))
	}
	if win := os.Getenv("WINDIR"); win != "" {
		dirs = append(dirs, filepath.Join(win, "Fonts"))
	}
	return dirs
}

// LoadFont resolves the font setting for the exported image. name is either
// a path to a TrueType file or a family name such as "DejaVu Sans". Generic
// and unknown families use the renderer's bundled Roboto.
func LoadFont(name string) (*truetype.Font, error) {
	name = strings.TrimSpace(name)
	if isFontFile(name) {
		return parseFontFile(name)
	}
	if !genericFamilies[strings.ToLower(name)] {
		if path, ok := findFamily(name); ok {
			return parseFontFile(path)
		}
		logging.Debugf("font %q not found, using default", name)
	}
	return chart.GetDefaultFont()
}

func isFontFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".ttf")
}

func parseFontFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return f, nil
}

// findFamily looks for "<family>.ttf" or "<family>-Regular.ttf", ignoring
// case and spaces.
func findFamily(family string) (string, bool) {
	want := normalizeFamily(family)
	var found string
	for _, dir := range fontDirs {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !isFontFile(path) {
				return nil
			}
			base := normalizeFamily(strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())))
			if base == want || base == want+"-regular" {
				found = path
				return fs.SkipAll
			}
			return nil
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}

func normalizeFamily(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}
