package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/districtfs/internal/logger"
	"github.com/cleared-dev/districtfs/internal/workspace"
)

// env is what a workspace command runs against.
type env struct {
	ws  *workspace.Workspace
	ctx context.Context
	out io.Writer
}

func openEnv(cmd *cobra.Command, opts *rootOptions) (*env, error) {
	abs, err := filepath.Abs(opts.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	ws, err := workspace.Open(abs)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(ws.Config.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	log = logger.WithFields(log, map[string]any{"command": cmd.CommandPath()})

	return &env{
		ws:  ws,
		ctx: logger.WithContext(cmd.Context(), log),
		out: cmd.OutOrStdout(),
	}, nil
}

// log returns the command logger carried by the env context.
func (e *env) log() *zerolog.Logger {
	l := logger.FromContext(e.ctx)
	return &l
}

// record commits the workspace and appends a run log entry.
func (e *env) record(command, action, details string) error {
	hash, err := e.ws.Commit(fmt.Sprintf("%s: %s", command, details))
	if err != nil {
		return fmt.Errorf("committing workspace: %w", err)
	}
	if err := e.ws.Log(command, action, details, hash); err != nil {
		e.log().Warn().Err(err).Msg("failed to write run log")
	}
	if hash != "" {
		e.log().Debug().Str("commit", hash).Msg("committed workspace")
	}
	return nil
}
