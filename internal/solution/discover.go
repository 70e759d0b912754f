package solution

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/jmecosta/sonar-visual-studio/internal/filesystem"
	"github.com/jmecosta/sonar-visual-studio/internal/settings"
)

// Find locates the solution file for baseDir. A configured solution path
// wins over auto-discovery. Auto-discovery first scans baseDir itself for
// .sln files, then falls back to a recursive walk that honors the root
// .gitignore (build output directories are conventionally ignored).
//
// Returns "" with no error when nothing was found. Finding several solution
// files without a configured override is a fatal configuration error.
func Find(fsys filesystem.FileSystem, log *slog.Logger, cfg *settings.Settings, baseDir string) (string, error) {
	if configured := cfg.Get(settings.SolutionKey); configured != "" {
		return filepath.Join(baseDir, strings.ReplaceAll(configured, "\\", "/")), nil
	}

	found, err := topLevelSolutionFiles(fsys, baseDir)
	if err != nil {
		return "", err
	}

	if len(found) == 0 {
		found, err = walkForSolutionFiles(fsys, log, baseDir)
		if err != nil {
			return "", err
		}
	}

	switch len(found) {
	case 0:
		return "", nil
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("found several .sln files in %s, set %q to explicitly tell which one to use",
			baseDir, settings.SolutionKey)
	}
}

func topLevelSolutionFiles(fsys filesystem.FileSystem, baseDir string) ([]string, error) {
	entries, err := fsys.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", baseDir, err)
	}

	var found []string
	for _, entry := range entries {
		if !entry.IsDir() && isSolutionFile(entry.Name()) {
			found = append(found, filepath.Join(baseDir, entry.Name()))
		}
	}
	return found, nil
}

func walkForSolutionFiles(fsys filesystem.FileSystem, log *slog.Logger, baseDir string) ([]string, error) {
	ignore, err := loadRootGitIgnore(fsys, baseDir)
	if err != nil {
		return nil, err
	}

	var found []string
	err = fsys.WalkDir(baseDir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == baseDir {
			return nil
		}

		rel, relErr := filepath.Rel(baseDir, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if ignore != nil {
			if match := ignore.Relative(rel, entry.IsDir()); match != nil && match.Ignore() {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if !entry.IsDir() && isSolutionFile(entry.Name()) {
			log.Debug("found solution file below the base directory", "path", path)
			found = append(found, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for solution files: %w", baseDir, err)
	}

	return found, nil
}

func loadRootGitIgnore(fsys filesystem.FileSystem, baseDir string) (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(baseDir, ".gitignore")
	if !fsys.Exists(ignorePath) {
		return nil, nil
	}

	data, err := fsys.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), baseDir, nil), nil
}

func isSolutionFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".sln")
}
