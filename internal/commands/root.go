package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/districtfs/internal/buildinfo"
)

// rootOptions are the flags shared by every workspace command.
type rootOptions struct {
	dir string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "districtfs",
		Short:   "School district financial statements from a trial balance",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.dir, "workspace", "w", ".", "workspace directory")

	rootCmd.AddCommand(
		newInitCommand(),
		newImportCommand(opts),
		newMapCommand(opts),
		newGenerateCommand(opts),
		newAuditCommand(opts),
		newLogCommand(opts),
	)

	return rootCmd
}
