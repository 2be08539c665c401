package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/idelchi/mirrorcount/internal/mirrorcount"
)

// ErrDiscrepancies is returned in strict mode when the trees do not match.
// The report has already been printed, so callers only need to set the exit code.
var ErrDiscrepancies = errors.New("discrepancies found")

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var configPath string

	allowedOutputs := []string{"table", "json"}
	defaults := mirrorcount.DefaultRoots()

	cmd := &cobra.Command{
		Use:   "mirrorcount [flags]",
		Short: "Check that preview and thumbnail trees mirror the original tree",
		Long: heredoc.Doc(`
			mirrorcount verifies that the preview and thumbnail trees mirror the original tree.

			For every directory under the original tree, the matching preview and thumbnail
			directories must exist and hold the same number of files. Hidden files and
			subdirectories are not counted. Directories without files in any tree are skipped.

			Only problems are listed:
			  MISMATCH      the three counts differ
			  MISSING_DIR   the preview or thumbnail directory is missing or unreadable (-1)

			Without flags the trees are read from the current directory:
			  wallpaper/desktop, preview/desktop, thumbnail/desktop

			Flags can also be given in a YAML file passed with --config.
			Flags set on the command line take precedence over the file.
		`),
		Args:          cobra.NoArgs,
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			options, err := loadSettings(cmd.Flags(), configPath)
			if err != nil {
				return err
			}

			if !slices.Contains(allowedOutputs, options.Output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
			}

			return logic(cmd.Context(), options, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.String("original", defaults.Original, "Original tree, walked as ground truth")
	flags.String("preview", defaults.Preview, "Preview tree mirroring the original")
	flags.String("thumbnail", defaults.Thumbnail, "Thumbnail tree mirroring the original")
	flags.StringVarP(&configPath, "config", "c", "", "YAML file with flag values")
	flags.StringP("output", "o", "table", "Output format: json or table")
	flags.BoolP("all", "a", false, "Also list directories that match")
	flags.Bool("strict", false, "Exit with status 1 when discrepancies are found")
	flags.Bool("debug", false, "Enable debug output")

	return cmd
}
