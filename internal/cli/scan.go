package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/jmecosta/sonar-visual-studio/internal/bootstrap"
	"github.com/jmecosta/sonar-visual-studio/internal/filesystem"
	"github.com/jmecosta/sonar-visual-studio/internal/models"
	"github.com/jmecosta/sonar-visual-studio/internal/report"
	"github.com/jmecosta/sonar-visual-studio/internal/settings"
	"github.com/spf13/cobra"
)

// ScanCommand handles the scan command
type ScanCommand struct {
	fs filesystem.FileSystem
}

// NewScanCommand creates a new scan command
func NewScanCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &ScanCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Scan a Visual Studio solution and emit its module tree",
		Long: `Discovers the solution file under the given directory (the working
directory by default), parses the referenced project files and prints the
resulting module tree.

Per-project problems (missing project file, broken project XML, missing
build output) are logged and the project is skipped; the scan fails only on
configuration conflicts or when no module could be produced at all.`,
		Example: `  # Scan the current directory, print the module tree as JSON
  vsscan scan

  # Use analysis properties from a file, force a specific solution
  vsscan scan --settings sonar-project.properties --set sonar.visualstudio.solution=My.sln C:\src\app

  # Human-readable summary
  vsscan scan --format markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	addSettingsFlags(cobraCmd)

	return cobraCmd
}

// Run executes the scan command
func (c *ScanCommand) Run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString(formatFlag)

	baseDir, err := baseDirFromArgs(c.fs, args)
	if err != nil {
		return fmt.Errorf("failed to determine the base directory: %w", err)
	}

	cfg, err := settingsFromCmd(c.fs, cmd)
	if err != nil {
		return err
	}

	root := rootModule(cfg, baseDir)

	builder := bootstrap.NewBuilder(c.fs, cfg, loggerFromCmd(cmd))
	solutionFile, err := builder.Build(root)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(root, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal the module tree: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))

	case "text":
		printTree(cmd, solutionFile, root)

	case "markdown":
		rendered, err := report.RenderMarkdown(report.Data{SolutionFile: solutionFile, Root: root})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)

	default:
		return fmt.Errorf("unknown format: %s (must be json, text or markdown)", format)
	}

	return nil
}

func rootModule(cfg *settings.Settings, baseDir string) *models.Module {
	key := cfg.Get(settings.ProjectKeyKey)
	if key == "" {
		key = bootstrap.EscapeProjectName(filepath.Base(baseDir))
	}

	name := cfg.Get(settings.ProjectNameKey)
	if name == "" {
		name = key
	}

	root := models.NewModule(key, name)
	root.BaseDir = baseDir
	return root
}

func printTree(cmd *cobra.Command, solutionFile string, root *models.Module) {
	out := cmd.OutOrStdout()

	if solutionFile == "" {
		fmt.Fprintln(out, "No modules produced.")
		return
	}

	fmt.Fprintf(out, "%s (%s)\n", root.Name, solutionFile)
	for _, module := range root.SubModules {
		kind := "production"
		files := len(module.SourceFiles)
		if len(module.TestDirs) > 0 {
			kind = "test"
			files = len(module.TestFiles)
		}

		fmt.Fprintf(out, "  %s [%s] %d file(s)\n", module.Name, kind, files)
		if assembly := module.GetProperty("sonar.cs.fxcop.assembly"); assembly != "" {
			fmt.Fprintf(out, "    assembly: %s\n", assembly)
		}
	}
}
