// Package bootstrap assembles the module tree of a Visual Studio solution:
// it discovers the solution file, parses the referenced project files and
// emits one module per surviving project into the host model.
package bootstrap

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/jmecosta/sonar-visual-studio/internal/assembly"
	"github.com/jmecosta/sonar-visual-studio/internal/filesystem"
	"github.com/jmecosta/sonar-visual-studio/internal/models"
	"github.com/jmecosta/sonar-visual-studio/internal/msbuild"
	"github.com/jmecosta/sonar-visual-studio/internal/settings"
	"github.com/jmecosta/sonar-visual-studio/internal/solution"
	"golang.org/x/text/unicode/norm"
)

// webApplicationProjectTypeGUID marks ASP.NET web-application projects.
const webApplicationProjectTypeGUID = "{349C5851-65DF-11DA-9384-00065B846F21}"

// Builder orchestrates the scan of one solution.
type Builder struct {
	fs      filesystem.FileSystem
	cfg     *settings.Settings
	log     *slog.Logger
	locator *assembly.Locator
}

// NewBuilder creates a Builder reading its configuration from cfg.
func NewBuilder(fs filesystem.FileSystem, cfg *settings.Settings, log *slog.Logger) *Builder {
	return &Builder{
		fs:      fs,
		cfg:     cfg,
		log:     log,
		locator: assembly.NewLocator(fs, cfg, log),
	}
}

// Build scans the solution under root.BaseDir and attaches one sub-module
// per surviving project to root. It returns the solution file that was
// used, or "" when the pipeline was disabled or no solution was found.
// Per-project failures are logged and skipped; configuration conflicts and
// a scan yielding zero modules are fatal.
func (b *Builder) Build(root *models.Module) (string, error) {
	if !b.cfg.GetBool(settings.EnableKey) {
		b.log.Info("visual studio bootstrapping is disabled",
			"hint", fmt.Sprintf("set the property %q to \"true\" to enable it", settings.EnableKey))
		return "", nil
	}

	solutionFile, err := solution.Find(b.fs, b.log, b.cfg, root.BaseDir)
	if err != nil {
		return "", err
	}
	if solutionFile == "" {
		b.log.Info("no Visual Studio solution file found", "baseDir", root.BaseDir)
		return "", nil
	}

	b.log.Info("using Visual Studio solution", "path", solutionFile)

	if b.cfg.Has(settings.ModulesKey) {
		return "", fmt.Errorf("do not use the Visual Studio bootstrapper and set the %q property at the same time",
			settings.ModulesKey)
	}

	skipPattern, err := b.skippedProjectPattern()
	if err != nil {
		return "", err
	}
	skippedNames := b.skippedProjectsByNames()

	sln, err := solution.Parse(b.fs, solutionFile)
	if err != nil {
		return "", err
	}

	root.ResetSourceDirs()

	hasModules := false
	for _, sp := range sln.Projects {
		switch {
		case !isSupportedProjectType(sp.Path):
			b.logSkippedProject(sp, "because its project type is unsupported: "+sp.Path)
		case skippedNames[sp.Name]:
			b.logSkippedProject(sp, fmt.Sprintf("because it is listed in the property %q", settings.OldSkippedProjectsKey))
		case skipPattern != nil && skipPattern.MatchString(sp.Name):
			b.logSkippedProject(sp, fmt.Sprintf("because it matches the property %q", settings.SkippedProjectPatternKey))
		default:
			projectFile := relativePathFile(filepath.Dir(solutionFile), sp.Path)
			if !b.fs.IsFile(projectFile) {
				b.log.Warn("unable to find the Visual Studio project file", "path", projectFile)
				continue
			}

			project, err := msbuild.ParseProject(b.fs, projectFile)
			if err != nil {
				// The input itself is broken: surface loudly, but keep
				// scanning the remaining projects.
				b.log.Error("failed to parse the Visual Studio project file", "path", projectFile, "error", err)
				continue
			}

			assemblyPath := b.locator.Locate(sp.Name, projectFile, project)
			if b.cfg.GetBool(settings.SkipIfNotBuiltKey) && assemblyPath == "" {
				b.logSkippedProject(sp, fmt.Sprintf("because it is not built and %q is set", settings.SkipIfNotBuiltKey))
				continue
			}

			project.AssessTestProject(b.cfg.Get(settings.UnitTestPatternsKey), b.cfg.Get(settings.IntegTestPatternsKey))

			hasModules = true
			b.buildModule(root, sp, projectFile, project, assemblyPath, solutionFile)
		}
	}

	if !hasModules {
		return "", fmt.Errorf("no Visual Studio projects were found")
	}

	return solutionFile, nil
}

func (b *Builder) buildModule(root *models.Module, sp solution.Project, projectFile string,
	project *msbuild.Project, assemblyPath, solutionFile string) {

	escapedName := EscapeProjectName(sp.Name)
	projectDir := filepath.Dir(projectFile)

	module := models.NewModule(b.projectKey(root.Key)+":"+escapedName, sp.Name)
	root.AddSubModule(module)

	module.BaseDir = projectDir
	if root.WorkDir != "" {
		module.WorkDir = filepath.Join(root.WorkDir, strings.ReplaceAll(root.Key, ":", "_")+"_"+escapedName)
	}

	isTest := project.IsTest()
	kind := "project"
	if isTest {
		kind = "test project"
	}
	b.log.Info("adding the Visual Studio "+kind, "project", sp.Name, "path", projectFile)

	if isTest {
		module.AddTestDir(projectDir)
	} else {
		module.AddSourceDir(projectDir)
	}

	for _, filePath := range project.Files {
		file := relativePathFile(projectDir, filePath)
		if !b.fs.IsFile(file) {
			b.log.Warn("cannot find a file of the project", "file", file, "project", sp.Name)
		} else if !isInSourceDir(file, projectDir) {
			b.log.Warn("skipping a file located outside of the source directory", "file", file, "project", sp.Name)
		} else if isTest {
			module.AddTestFile(file)
		} else {
			module.AddSourceFile(file)
		}
	}

	b.forwardModuleProperties(module)
	b.setFxCopProperties(module, sp, assemblyPath)
	setReSharperProperties(module, sp.Name, solutionFile)
	setStyleCopProperties(module, projectFile)
}

// forwardModuleProperties copies settings entries prefixed with the module
// name onto the module, with the prefix stripped.
func (b *Builder) forwardModuleProperties(module *models.Module) {
	for key, value := range b.cfg.WithPrefix(module.Name + ".") {
		module.SetProperty(key, value)
	}
}

func (b *Builder) setFxCopProperties(module *models.Module, sp solution.Project, assemblyPath string) {
	if assemblyPath == "" {
		return
	}

	if isWebApplication(sp) {
		module.SetProperty("sonar.cs.fxcop.aspnet", "true")
	}

	module.SetProperty("sonar.cs.fxcop.assembly", assemblyPath)
	module.SetProperty("sonar.vbnet.fxcop.assembly", assemblyPath)
}

func setReSharperProperties(module *models.Module, projectName, solutionFile string) {
	module.SetProperty("sonar.resharper.solutionFile", solutionFile)
	module.SetProperty("sonar.resharper.projectName", projectName)
}

func setStyleCopProperties(module *models.Module, projectFile string) {
	module.SetProperty("sonar.stylecop.projectFilePath", projectFile)
}

func isWebApplication(sp solution.Project) bool {
	return strings.Contains(strings.ToUpper(sp.TypeGUIDs), webApplicationProjectTypeGUID)
}

func isSupportedProjectType(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".csproj") ||
		strings.HasSuffix(lower, ".vbproj") ||
		strings.HasSuffix(lower, ".vcxproj")
}

func (b *Builder) logSkippedProject(sp solution.Project, reason string) {
	b.log.Info("skipping the project \""+sp.Name+"\" "+reason, "project", sp.Name)
}

// projectKey applies the deprecated "unsafe" module key strategy when
// configured: the root key is truncated at its first colon.
func (b *Builder) projectKey(rootKey string) string {
	if b.cfg.Get(settings.ProjectKeyStrategyKey) != "unsafe" {
		return rootKey
	}

	i := strings.Index(rootKey, ":")
	if i == -1 {
		b.log.Warn("unset the deprecated unnecessary property used to analyze this project, unsetting it will not affect this particular project",
			"property", settings.ProjectKeyStrategyKey)
		return rootKey
	}

	unsafeKey := rootKey[:i]
	b.log.Warn("unset the deprecated unnecessary property used to analyze this project, the module keys will change",
		"property", settings.ProjectKeyStrategyKey, "unsafeKey", unsafeKey, "key", rootKey)
	return unsafeKey
}

func (b *Builder) skippedProjectPattern() (*regexp.Regexp, error) {
	pattern := b.cfg.Get(settings.SkippedProjectPatternKey)
	if pattern == "" {
		return nil, nil
	}

	// The pattern must match the whole project name.
	compiled, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("invalid regular expression in the %q property: %w", settings.SkippedProjectPatternKey, err)
	}
	return compiled, nil
}

func (b *Builder) skippedProjectsByNames() map[string]bool {
	configured := b.cfg.Get(settings.OldSkippedProjectsKey)
	if configured == "" {
		return nil
	}

	b.log.Warn("replace the deprecated skipped-projects property by the skipped-project pattern",
		"deprecated", settings.OldSkippedProjectsKey, "replacement", settings.SkippedProjectPatternKey)

	names := make(map[string]bool)
	for _, name := range strings.Split(configured, ",") {
		if name != "" {
			names[name] = true
		}
	}
	return names
}

// EscapeProjectName turns a project name into a key-safe form: combining
// marks are stripped after NFD decomposition, spaces and '+' become '_'.
func EscapeProjectName(projectName string) string {
	decomposed := norm.NFD.String(projectName)

	var builder strings.Builder
	for _, r := range decomposed {
		switch {
		case unicode.IsMark(r):
			// dropped
		case r == ' ' || r == '+':
			builder.WriteRune('_')
		default:
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

func isInSourceDir(file, dir string) bool {
	rel, err := filepath.Rel(dir, file)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func relativePathFile(base, relative string) string {
	return filepath.Join(base, strings.ReplaceAll(relative, "\\", "/"))
}
