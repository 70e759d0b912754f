package cli

import (
	"log/slog"

	"github.com/jmecosta/sonar-visual-studio/internal/filesystem"
	"github.com/jmecosta/sonar-visual-studio/internal/settings"
	"github.com/spf13/cobra"
)

const (
	settingsFileFlag = "settings"
	setPropertyFlag  = "set"
	verboseFlag      = "verbose"
	formatFlag       = "format"
)

func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().String(settingsFileFlag, "", "Path to a key=value analysis settings file")
	cmd.Flags().StringArray(setPropertyFlag, nil, "Set an analysis property (key=value, repeatable)")
	cmd.Flags().Bool(verboseFlag, false, "Enable debug logging")
	cmd.Flags().String(formatFlag, "json", "Output format: json, text or markdown")
}

// settingsFromCmd builds the analysis settings for a command invocation:
// defaults, then the settings file, then --set overrides. Running the
// scanner is an explicit act, so the enable gate defaults to true here and
// can still be switched off via file or flag.
func settingsFromCmd(fs filesystem.FileSystem, cmd *cobra.Command) (*settings.Settings, error) {
	values := map[string]string{
		settings.EnableKey: "true",
	}

	if path, _ := cmd.Flags().GetString(settingsFileFlag); path != "" {
		loaded, err := settings.LoadValues(fs, path)
		if err != nil {
			return nil, err
		}
		for k, v := range loaded {
			values[k] = v
		}
	}

	pairs, _ := cmd.Flags().GetStringArray(setPropertyFlag)
	overrides, err := settings.ParsePairs(pairs)
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		values[k] = v
	}

	return settings.New(values), nil
}

func loggerFromCmd(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool(verboseFlag); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func baseDirFromArgs(fs filesystem.FileSystem, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return fs.Getwd()
}
