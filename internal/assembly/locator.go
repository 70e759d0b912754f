// Package assembly locates the built artifact of a Visual Studio project
// among the output paths its project file declares, or among
// operator-configured output directories.
package assembly

import (
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jmecosta/sonar-visual-studio/internal/filesystem"
	"github.com/jmecosta/sonar-visual-studio/internal/msbuild"
	"github.com/jmecosta/sonar-visual-studio/internal/settings"
)

// Locator searches for the most recently built assembly of a project.
type Locator struct {
	fs  filesystem.FileSystem
	cfg *settings.Settings
	log *slog.Logger
}

// NewLocator creates a Locator reading its configuration from cfg.
func NewLocator(fs filesystem.FileSystem, cfg *settings.Settings, log *slog.Logger) *Locator {
	return &Locator{fs: fs, cfg: cfg, log: log}
}

// candidate is a possible assembly location, captured together with its
// last-modified time.
type candidate struct {
	path    string
	modTime time.Time
}

// Locate returns the path of the project's built assembly, or "" when it
// could not be determined. With several existing candidates the most
// recently modified one wins; exact mod-time ties are resolved in
// enumeration order.
func (l *Locator) Locate(projectName, projectFilePath string, project *msbuild.Project) string {
	l.log.Info("locating the assembly for the project", "project", projectName)

	if project.OutputType == "" || project.AssemblyName == "" {
		l.log.Info("unable to locate the assembly as either the output type or the assembly name is missing",
			"project", projectName)
		return ""
	}

	extension := Extension(project.OutputType)
	if extension == "" {
		l.log.Error("unable to locate the assembly of an unsupported output type",
			"project", projectFilePath, "outputType", project.OutputType, "supported", "Library, Exe, WinExe")
		return ""
	}

	assemblyFileName := project.AssemblyName + "." + extension
	candidates := l.candidates(assemblyFileName, projectFilePath, project)

	if len(candidates) == 0 {
		l.log.Warn("unable to locate the assembly of project", "project", projectFilePath)
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].modTime.After(candidates[j].modTime)
	})

	if len(candidates) > 1 {
		l.log.Info("picking the most recently generated assembly file", "path", candidates[0].path)
	}

	return candidates[0].path
}

// Extension maps a declared output type to the artifact file extension, or
// "" for unsupported types. Matching is case-insensitive.
func Extension(outputType string) string {
	switch strings.ToLower(outputType) {
	case "library":
		return "dll"
	case "exe", "winexe":
		return "exe"
	default:
		return ""
	}
}

func (l *Locator) candidates(assemblyFileName, projectFilePath string, project *msbuild.Project) []candidate {
	if configured := l.cfg.Get(settings.OutputPathsKey); configured != "" {
		return l.configuredCandidates(configured, assemblyFileName)
	}
	return l.declaredCandidates(assemblyFileName, projectFilePath, project)
}

// configuredCandidates searches operator-supplied output directories. No
// build-configuration filtering applies here: the operator already picked
// the directories.
func (l *Locator) configuredCandidates(configured, assemblyFileName string) []candidate {
	var candidates []candidate
	for _, dir := range strings.Split(configured, ",") {
		path := filepath.Join(normalizeSeparators(dir), assemblyFileName)
		l.log.Info("trying to locate assembly", "path", path)
		if c, ok := l.statCandidate(path); ok {
			l.log.Info("candidate assembly found", "path", path)
			candidates = append(candidates, c)
		}
	}
	return candidates
}

func (l *Locator) declaredCandidates(assemblyFileName, projectFilePath string, project *msbuild.Project) []candidate {
	projectDir := filepath.Dir(projectFilePath)

	var candidates []candidate
	for i, outputPath := range project.OutputPaths {
		path := filepath.Join(projectDir, normalizeSeparators(outputPath), assemblyFileName)

		c, ok := l.statCandidate(path)
		if !ok {
			l.log.Info("candidate assembly was not built", "path", path)
		} else if l.matchesBuildConfigurationAndPlatform(project.PropertyGroupConditions[i]) {
			l.log.Info("candidate assembly found", "path", path)
			candidates = append(candidates, c)
		} else {
			l.log.Info("candidate assembly rejected, it does not match the requested build configuration and platform",
				"path", path)
		}
	}
	return candidates
}

func (l *Locator) statCandidate(path string) (candidate, bool) {
	info, err := l.fs.Stat(path)
	if err != nil || info.IsDir() {
		return candidate{}, false
	}
	return candidate{path: path, modTime: info.ModTime()}, true
}

// matchesBuildConfigurationAndPlatform applies the deprecated build
// configuration/platform filter: when both are configured, the condition
// text must contain both as substrings. The conventional
// '$(Configuration)|$(Platform)'=='X|Y' shape is never parsed.
func (l *Locator) matchesBuildConfigurationAndPlatform(condition string) bool {
	buildConfiguration := l.cfg.Get(settings.OldBuildConfigurationKey)
	buildPlatform := l.cfg.Get(settings.OldBuildPlatformKey)

	if buildConfiguration != "" && buildPlatform != "" {
		l.log.Warn("deprecated properties are set",
			"properties", settings.OldBuildConfigurationKey+", "+settings.OldBuildPlatformKey)
		return strings.Contains(condition, buildConfiguration) && strings.Contains(condition, buildPlatform)
	}

	return true
}

func normalizeSeparators(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}
