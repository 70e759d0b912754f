package cli

import (
	"encoding/json"
	"fmt"

	"github.com/jmecosta/sonar-visual-studio/internal/filesystem"
	"github.com/jmecosta/sonar-visual-studio/internal/solution"
	"github.com/spf13/cobra"
)

// ProjectsCommand handles the projects command
type ProjectsCommand struct {
	fs filesystem.FileSystem
}

// NewProjectsCommand creates a new projects command
func NewProjectsCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &ProjectsCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "projects [dir]",
		Short: "List the project declarations of a solution file",
		Long: `Parses only the solution file and lists its project declarations in
declaration order, without opening the project files themselves.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	addSettingsFlags(cobraCmd)

	return cobraCmd
}

// Run executes the projects command
func (c *ProjectsCommand) Run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString(formatFlag)

	baseDir, err := baseDirFromArgs(c.fs, args)
	if err != nil {
		return fmt.Errorf("failed to determine the base directory: %w", err)
	}

	cfg, err := settingsFromCmd(c.fs, cmd)
	if err != nil {
		return err
	}

	solutionFile, err := solution.Find(c.fs, loggerFromCmd(cmd), cfg, baseDir)
	if err != nil {
		return err
	}
	if solutionFile == "" {
		return fmt.Errorf("no Visual Studio solution file found in %s", baseDir)
	}

	sln, err := solution.Parse(c.fs, solutionFile)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(sln, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal the solution: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))

	case "text":
		fmt.Fprintln(cmd.OutOrStdout(), sln.Path)
		for _, project := range sln.Projects {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s (%s) %s\n", project.Name, project.TypeGUID, project.Path)
		}

	default:
		return fmt.Errorf("unknown format: %s (must be json or text)", format)
	}

	return nil
}
