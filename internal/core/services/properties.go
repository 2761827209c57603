package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mcompose/mcc/internal/config"
	"github.com/mcompose/mcc/internal/core/ports"
)

const (
	dataDirName        = "data"
	propertiesFileName = "server.properties"
)

// Files maintains the instance's on-disk state: the data directory,
// server.properties, and the installed datapacks.
type Files struct {
	fs             ports.Filesystem
	dataPath       string
	propertiesPath string
}

func NewFiles(fs ports.Filesystem) *Files {
	return &Files{
		fs:             fs,
		dataPath:       dataDirName,
		propertiesPath: filepath.Join(dataDirName, propertiesFileName),
	}
}

// DataPath resolves the data directory to an absolute path for the
// container bind mount.
func (f *Files) DataPath() (string, error) {
	return f.fs.Canonicalize(f.dataPath)
}

// EnsureDataDir creates the data directory if it does not exist yet.
func (f *Files) EnsureDataDir() error {
	if f.fs.DirExists(f.dataPath) {
		return nil
	}
	return f.fs.MakeDir(f.dataPath)
}

// WriteServerProperties merges the managed keys into server.properties,
// preserving everything the file contains that this system does not
// manage.
func (f *Files) WriteServerProperties(cfg *config.Config) error {
	prior := ""
	if f.fs.FileExists(f.propertiesPath) {
		contents, err := f.fs.ReadFile(f.propertiesPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.propertiesPath, err)
		}
		prior = contents
	}

	set, remove := managedProperties(cfg)
	merged := MergeProperties(prior, set, remove)

	if err := f.fs.WriteFile(f.propertiesPath, merged); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.propertiesPath, err)
	}
	return nil
}

// managedProperties builds the desired key set for one config: fixed
// operational defaults, overlaid with world-derived keys, overlaid
// with the seed key when a seed is configured. Without a seed the seed
// key goes to the removal set instead.
func managedProperties(cfg *config.Config) (set map[string]string, remove map[string]struct{}) {
	set = map[string]string{
		"server-port":           "25565",
		"enable-rcon":           "true",
		"rcon.port":             "25575",
		"rcon.password":         "minecraft",
		"broadcast-rcon-to-ops": "true",

		"level-name":   cfg.World.Name,
		"gamemode":     cfg.World.Gamemode,
		"difficulty":   cfg.World.Difficulty,
		"allow-flight": fmt.Sprintf("%t", cfg.World.AllowFlight),
	}
	remove = map[string]struct{}{}
	if cfg.World.Seed != "" {
		set["level-seed"] = cfg.World.Seed
	} else {
		remove["level-seed"] = struct{}{}
	}
	return set, remove
}

// MergeProperties rewrites a properties file in a single forward scan.
// Lines without '=' (comments, blanks) pass through unchanged. A
// key=value line is rewritten when the key is in set, dropped when it
// is in remove, and preserved verbatim otherwise. Keys from set that
// never appeared are appended at the end; their relative order is
// unspecified. Applying the merge to its own output is idempotent.
func MergeProperties(prior string, set map[string]string, remove map[string]struct{}) string {
	pending := make(map[string]struct{}, len(set))
	for key := range set {
		pending[key] = struct{}{}
	}

	var merged []string
	for _, line := range splitLines(prior) {
		i := strings.Index(line, "=")
		if i < 0 {
			merged = append(merged, line)
			continue
		}
		key := line[:i]
		if _, ok := pending[key]; ok {
			delete(pending, key)
			merged = append(merged, fmt.Sprintf("%s=%s", key, set[key]))
			continue
		}
		if _, drop := remove[key]; drop {
			continue
		}
		merged = append(merged, line)
	}

	for key := range pending {
		merged = append(merged, fmt.Sprintf("%s=%s", key, set[key]))
	}

	return strings.Join(merged, "\n")
}

// splitLines splits on newlines without producing a phantom empty line
// for a trailing newline; interior blank lines survive.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
