package cli

import (
	"fmt"

	"github.com/jmecosta/sonar-visual-studio/internal/filesystem"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vsscan",
		Short: "Discover the module structure of Visual Studio solutions",
		Long: `A tool that reads a Visual Studio solution and its project files and
reconstructs the module tree an external static-analysis tool needs:
which source files belong to which buildable unit, which units are
tests, and where each unit's compiled output lives.`,
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `vsscan scan` when no subcommand is provided.
			return (&ScanCommand{fs: fs}).Run(cmd, args)
		},
	}

	addSettingsFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(NewScanCommand(fs))
	rootCmd.AddCommand(NewProjectsCommand(fs))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()

	rootCmd := NewRootCommand(fs)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
