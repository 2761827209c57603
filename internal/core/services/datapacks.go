package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcompose/mcc/internal/config"
)

// datapackSourceDir is the root datapack sources are resolved against,
// relative to the config file's directory.
const datapackSourceDir = "datapacks"

// SyncDatapacks makes the world's installed datapack files match the
// manifest in the config: files not in the manifest are removed, every
// manifest entry is copied in as <name>.zip. A manifest entry whose
// source cannot be found is skipped with a warning instead of failing
// the whole sync.
func (f *Files) SyncDatapacks(cfg *config.Config) error {
	installedDir := filepath.Join(f.dataPath, cfg.World.Name, "datapacks")
	if !f.fs.DirExists(installedDir) {
		if err := f.fs.MakeDir(installedDir); err != nil {
			return fmt.Errorf("failed to create datapacks directory: %w", err)
		}
	}
	installedDir, err := f.fs.Canonicalize(installedDir)
	if err != nil {
		return fmt.Errorf("failed to resolve datapacks directory: %w", err)
	}

	installed, err := f.fs.ListDir(installedDir)
	if err != nil {
		return fmt.Errorf("failed to list installed datapacks: %w", err)
	}
	for _, path := range installed {
		if _, wanted := cfg.Datapacks[fileStem(path)]; wanted {
			continue
		}
		log.Trace().Str("path", path).Msg("uninstalling datapack")
		if err := f.fs.DeleteFile(path); err != nil {
			return fmt.Errorf("failed to uninstall datapack %s: %w", path, err)
		}
	}

	for name, source := range cfg.Datapacks {
		srcPath, err := f.fs.Canonicalize(filepath.Join(datapackSourceDir, source))
		if err != nil {
			log.Warn().Str("datapack", name).Str("source", source).
				Msg("unable to find the source for the datapack, skipping")
			continue
		}
		dstPath := filepath.Join(installedDir, name+".zip")
		log.Trace().Str("datapack", name).Str("from", srcPath).Str("to", dstPath).
			Msg("installing datapack")
		if err := f.fs.CopyFile(srcPath, dstPath); err != nil {
			return fmt.Errorf("failed to install datapack %q: %w", name, err)
		}
	}

	return nil
}

// fileStem is the file name without its extension.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
