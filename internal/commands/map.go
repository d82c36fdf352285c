package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/districtfs/internal/mapping"
	"github.com/cleared-dev/districtfs/internal/model"
	"github.com/cleared-dev/districtfs/internal/workspace"
)

func newMapCommand(opts *rootOptions) *cobra.Command {
	mapCmd := &cobra.Command{
		Use:   "map",
		Short: "Manage account classifications",
	}
	mapCmd.AddCommand(
		newMapAutoCommand(opts),
		newMapListCommand(opts),
		newMapSetCommand(opts),
		newMapDeleteCommand(opts),
		newMapImportCommand(opts),
		newMapExportCommand(opts),
		newMapResetCommand(opts),
		newMapValidateCommand(opts),
	)
	return mapCmd
}

func newMapAutoCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "auto",
		Short: "Classify every trial balance account, keeping manual overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, opts)
			if err != nil {
				return err
			}
			rows, err := e.ws.TrialBalance()
			if err != nil {
				return err
			}
			store, err := e.ws.Mappings()
			if err != nil {
				return err
			}

			result := store.AutoMapRows(rows)
			manual := 0
			for _, c := range result {
				if c.MappingMethod == model.MappingManual {
					manual++
				}
			}
			if err := e.ws.SaveMappings(store); err != nil {
				return err
			}
			e.log().Info().Int("accounts", len(result)).Int("manual", manual).Msg("auto-mapped accounts")
			fmt.Fprintf(e.out, "Mapped %d accounts (%d manual overrides kept)\n", len(result), manual)
			return e.record("map", "auto_map", fmt.Sprintf("auto-mapped %d accounts", len(result)))
		},
	}
}

func newMapListCommand(opts *rootOptions) *cobra.Command {
	var page, pageSize int
	var search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List account classifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, opts)
			if err != nil {
				return err
			}
			store, err := e.ws.Mappings()
			if err != nil {
				return err
			}

			p := store.Get(page, pageSize, search)
			if asJSON {
				return writeJSON(e.out, p)
			}
			return writeMappingTable(e.out, p)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "accounts per page (default from config)")
	cmd.Flags().StringVar(&search, "search", "", "filter by code, description or category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func writeMappingTable(w io.Writer, p mapping.Page) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACCOUNT\tREPORTING\tSECONDARY\tFUND\tLINE\tMETHOD\tCONFIDENCE\tDESCRIPTION")
	for _, c := range p.Mappings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.AccountCode, c.ReportingCategory, c.SecondaryCategory, c.FundCategory,
			c.StatementLineCode, c.MappingMethod, c.Confidence.StringFixed(2), c.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "page %d of %d (%d accounts)\n", p.Page, p.TotalPages, p.TotalItems)
	return err
}

func newMapSetCommand(opts *rootOptions) *cobra.Command {
	var patch mapping.Patch

	cmd := &cobra.Command{
		Use:   "set <account-code>",
		Short: "Set a manual classification for one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, opts)
			if err != nil {
				return err
			}
			store, err := e.ws.Mappings()
			if err != nil {
				return err
			}

			res := store.Upsert(map[string]*mapping.Patch{args[0]: &patch})
			if len(res.Rejections) > 0 {
				return res.Rejections[0]
			}
			if err := e.ws.SaveMappings(store); err != nil {
				return err
			}

			c, _ := store.Lookup(args[0])
			fmt.Fprintf(e.out, "%s: %s / %s (%s)\n", c.AccountCode, c.ReportingCategory, c.SecondaryCategory, c.MappingMethod)
			return e.record("map", "set_mapping", "set "+c.AccountCode)
		},
	}

	f := cmd.Flags()
	f.StringVar(&patch.Description, "description", "", "account description")
	f.StringVar(&patch.ReportingCategory, "reporting", "", "reporting category")
	f.StringVar(&patch.SecondaryCategory, "secondary", "", "secondary category")
	f.StringVar(&patch.FundCategory, "fund", "", "fund category")
	f.StringVar(&patch.StatementLineCode, "line", "", "statement line code or key")
	f.StringVar(&patch.Notes, "notes", "", "notes")
	f.StringVar(&patch.Confidence, "confidence", "", "confidence between 0 and 1")

	return cmd
}

func newMapDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <account-code>...",
		Short: "Delete account classifications",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, opts)
			if err != nil {
				return err
			}
			store, err := e.ws.Mappings()
			if err != nil {
				return err
			}

			patches := make(map[string]*mapping.Patch, len(args))
			for _, code := range args {
				patches[code] = nil
			}
			res := store.Upsert(patches)
			if err := e.ws.SaveMappings(store); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Deleted %d of %d accounts\n", res.Deleted, len(args))
			return e.record("map", "delete_mappings", fmt.Sprintf("deleted %d accounts", res.Deleted))
		},
	}
}

func newMapImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge classifications from a mapping CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, opts)
			if err != nil {
				return err
			}
			store, err := e.ws.Mappings()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening mapping file: %w", err)
			}
			defer f.Close()
			patches, err := mapping.ReadPatches(f)
			if err != nil {
				return fmt.Errorf("reading mapping file: %w", err)
			}

			res := store.Upsert(patches)
			if err := e.ws.SaveMappings(store); err != nil {
				return err
			}
			for _, r := range res.Rejections {
				e.log().Warn().Str("account", r.AccountCode).Str("reason", r.Reason).Msg("mapping rejected")
				fmt.Fprintf(e.out, "rejected %s\n", r)
			}
			fmt.Fprintf(e.out, "Applied %d, rejected %d\n", res.Applied, len(res.Rejections))
			return e.record("map", "import_mappings", fmt.Sprintf("applied %d mappings", res.Applied))
		},
	}
}

func newMapExportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write classifications as a mapping CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, opts)
			if err != nil {
				return err
			}
			store, err := e.ws.Mappings()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return mapping.WriteMappings(e.out, store.All())
			}
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			defer f.Close()
			if err := mapping.WriteMappings(f, store.All()); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Exported %d mappings to %s\n", store.Len(), args[0])
			return nil
		},
	}
}

func newMapResetCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every classification and the exports built from them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to reset mappings without --yes")
			}
			e, err := openEnv(cmd, opts)
			if err != nil {
				return err
			}
			store, err := e.ws.Mappings()
			if err != nil {
				return err
			}

			n := store.Len()
			store.ResetAll()
			if err := e.ws.SaveMappings(store); err != nil {
				return err
			}
			if err := e.ws.ClearExports(); err != nil {
				return err
			}
			e.log().Info().Int("deleted", n).Uint64("version", store.Version()).Msg("reset mappings")
			fmt.Fprintf(e.out, "Deleted %d mappings and cleared exports\n", n)
			return e.record("map", "reset_mappings", fmt.Sprintf("deleted %d mappings", n))
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newMapValidateCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that every trial balance account is classified",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, opts)
			if err != nil {
				return err
			}
			store, err := e.ws.Mappings()
			if err != nil {
				return err
			}

			var summary mapping.ValidationSummary
			rows, err := e.ws.TrialBalance()
			switch {
			case err == nil:
				codes := make([]string, 0, len(rows))
				for _, r := range rows {
					codes = append(codes, r.AccountCode)
				}
				summary = store.ValidateCodes(codes)
			case errors.Is(err, workspace.ErrNoTrialBalance):
				summary = store.Validate()
			default:
				return err
			}

			if asJSON {
				return writeJSON(e.out, summary)
			}
			writeValidation(e.out, summary)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeValidation(w io.Writer, s mapping.ValidationSummary) {
	status := "valid"
	if !s.Valid {
		status = "INVALID"
	}
	fmt.Fprintf(w, "Mappings %s\n", status)
	fmt.Fprintf(w, "  unmapped: %d %s\n", s.TotalUnmapped, strings.Join(s.UnmappedAccounts, " "))
	fmt.Fprintf(w, "  invalid:  %d %s\n", s.TotalInvalid, strings.Join(s.InvalidAccounts, " "))
	for _, warn := range s.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warn)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
