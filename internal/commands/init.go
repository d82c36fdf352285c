package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/districtfs/internal/config"
	"github.com/cleared-dev/districtfs/internal/gitops"
	"github.com/cleared-dev/districtfs/internal/workspace"
)

func newInitCommand() *cobra.Command {
	var name string
	var number string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new district workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, name, number, !noGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "district name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&number, "number", "", "county-district number")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not create a git repository")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name, number string, useGit bool) error {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("%s already contains %s", dir, config.FileName)
	}

	cfg := config.Default(name, number)
	cfg.Git.AutoCommit = useGit
	ws, err := workspace.Create(dir, cfg)
	if err != nil {
		return err
	}

	// Exports are rebuilt from data/ and mappings/.
	gitignore := "exports/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	hash := ""
	if useGit {
		if err := gitops.Init(dir); err != nil {
			return err
		}
		hash, err = gitops.CommitAll(dir, "init: Initialize "+name, ws.Author())
		if err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
	}
	if err := ws.Log("init", "init_workspace", name, hash); err != nil {
		return err
	}

	if hash != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized districtfs workspace at %s (%s)\n", dir, hash)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized districtfs workspace at %s\n", dir)
	}
	return nil
}
