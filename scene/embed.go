package scene

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scenes/*.yaml
var ScenesFS embed.FS

// DiskDir is searched before the embedded scenes so edits show up without a
// rebuild.
var DiskDir = filepath.Join("scene", "scenes")

func Load(name string) ([]byte, error) {
	clean := cleanScenePath(name)
	if data, err := os.ReadFile(diskScenePath(clean)); err == nil {
		return data, nil
	}
	return ScenesFS.ReadFile("scenes/" + clean)
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanScenePath(name)
	info, err := os.Stat(diskScenePath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanScenePath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "scene/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scenes/"); ok {
		s = after
	}
	return s
}

func diskScenePath(clean string) string {
	return filepath.Join(DiskDir, filepath.FromSlash(clean))
}
