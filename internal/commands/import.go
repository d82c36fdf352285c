package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/districtfs/internal/trialbalance"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var format string
	var autoMap bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a trial balance export",
		Long: "Import a trial balance export. Without a file, the single export " +
			"waiting in import/ is used and moved to import/processed/ afterwards.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, opts)
			if err != nil {
				return err
			}
			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			return runImport(e, file, format, autoMap)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format: csv, tsv, pipe or whitespace (default from config)")
	cmd.Flags().BoolVar(&autoMap, "auto-map", true, "classify new account codes after import")

	return cmd
}

func runImport(e *env, file, format string, autoMap bool) error {
	start := time.Now()

	fromDrop := false
	if file == "" {
		files, err := trialbalance.Scan(e.ws.Root)
		if err != nil {
			return err
		}
		switch len(files) {
		case 0:
			return errors.New("no trial balance export in import/; pass a file")
		case 1:
			file = files[0].Path
			fromDrop = true
		default:
			return fmt.Errorf("%d exports in import/; pass the one to import", len(files))
		}
	}

	ds, rows, err := e.ws.Import(file, format)
	if err != nil {
		return err
	}
	log := e.log().With().Str("dataset", ds.ID).Logger()
	log.Info().Str("file", ds.SourceFile).Str("format", ds.Format).Int("rows", ds.RowCount).
		Dur("elapsed", time.Since(start)).Msg("imported trial balance")

	if fromDrop {
		if err := trialbalance.MarkProcessed(e.ws.Root, filepath.Base(file)); err != nil {
			return err
		}
	}

	mapped := 0
	if autoMap {
		store, err := e.ws.Mappings()
		if err != nil {
			return err
		}
		mapped = len(store.AutoMapRows(rows))
		if err := e.ws.SaveMappings(store); err != nil {
			return err
		}
		log.Info().Int("accounts", mapped).Msg("auto-mapped accounts")
	}

	fmt.Fprintf(e.out, "Imported %d rows from %s (dataset %s)\n", ds.RowCount, ds.SourceFile, ds.ID)
	if autoMap {
		fmt.Fprintf(e.out, "Auto-mapped %d accounts\n", mapped)
	}

	return e.record("import", "import_trial_balance", fmt.Sprintf("%d rows from %s", ds.RowCount, ds.SourceFile))
}
