package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/districtfs/internal/audit"
	"github.com/cleared-dev/districtfs/internal/commands"
	"github.com/cleared-dev/districtfs/internal/config"
	"github.com/cleared-dev/districtfs/internal/mapping"
	"github.com/cleared-dev/districtfs/internal/runlog"
	"github.com/cleared-dev/districtfs/internal/workspace"
)

const sample = "../../testdata/trial-balance.csv"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "districtfs %v", args)
	return out
}

// newWorkspace initializes a workspace without git and returns its path.
func newWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	mustRun(t, "init", dir, "--name", "Lone Star ISD", "--no-git")
	return dir
}

func importedWorkspace(t *testing.T) string {
	t.Helper()
	dir := newWorkspace(t)
	mustRun(t, "-w", dir, "import", sample)
	return dir
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, "init", dir, "--name", "Lone Star ISD", "--number", "101912", "--no-git")
	assert.Contains(t, out, "Initialized districtfs workspace")

	for _, d := range workspace.Layout {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir())
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "Lone Star ISD", cfg.District.Name)
	assert.Equal(t, "101912", cfg.District.Number)
	assert.False(t, cfg.Git.AutoCommit)

	gitignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(gitignore), "exports/")

	entries, err := runlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "init", entries[0].Command)
}

func TestInit_RequiresName(t *testing.T) {
	_, err := run(t, "init", t.TempDir(), "--no-git")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestInit_Twice(t *testing.T) {
	dir := newWorkspace(t)
	_, err := run(t, "init", dir, "--name", "Again", "--no-git")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already contains")
}

func TestCommand_NotWorkspace(t *testing.T) {
	_, err := run(t, "-w", t.TempDir(), "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a districtfs workspace")
}

func TestImport(t *testing.T) {
	dir := newWorkspace(t)
	out := mustRun(t, "-w", dir, "import", sample)
	assert.Contains(t, out, "Imported 32 rows from trial-balance.csv")
	assert.Contains(t, out, "Auto-mapped 32 accounts")

	_, err := os.Stat(filepath.Join(dir, workspace.DatasetFile))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, mapping.File))
	require.NoError(t, err)
}

func TestImport_NoAutoMap(t *testing.T) {
	dir := newWorkspace(t)
	mustRun(t, "-w", dir, "import", sample, "--auto-map=false")
	_, err := os.Stat(filepath.Join(dir, mapping.File))
	assert.True(t, os.IsNotExist(err))
}

func TestImport_FromDropDirectory(t *testing.T) {
	dir := newWorkspace(t)
	data, err := os.ReadFile(sample)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "tb-2025.csv"), data, 0o644))

	out := mustRun(t, "-w", dir, "import")
	assert.Contains(t, out, "from tb-2025.csv")

	_, err = os.Stat(filepath.Join(dir, "import", "processed", "tb-2025.csv"))
	require.NoError(t, err, "export should move to import/processed")
	_, err = os.Stat(filepath.Join(dir, "import", "tb-2025.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestImport_EmptyDropDirectory(t *testing.T) {
	dir := newWorkspace(t)
	_, err := run(t, "-w", dir, "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no trial balance export")
}

func TestGenerate_NoTrialBalance(t *testing.T) {
	dir := newWorkspace(t)
	_, err := run(t, "-w", dir, "generate")
	require.Error(t, err)
	assert.ErrorIs(t, err, workspace.ErrNoTrialBalance)
}

func TestGenerate(t *testing.T) {
	dir := importedWorkspace(t)
	out := mustRun(t, "-w", dir, "generate")

	assert.Contains(t, out, "net_position balanced (2730000.00 = 2730000.00)")
	assert.Contains(t, out, "balance_sheet out of balance")
	assert.Contains(t, out, "difference 290000.00")
	assert.Contains(t, out, "Change in net position: 0.00")

	data, err := os.ReadFile(filepath.Join(dir, workspace.StatementsFile))
	require.NoError(t, err)
	var stmts map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &stmts))
	for _, key := range []string{"net_position", "activities", "balance_sheet", "revenues_expenditures"} {
		assert.Contains(t, stmts, key)
	}

	again := mustRun(t, "-w", dir, "generate")
	assert.Equal(t, out, again)
	data2, err := os.ReadFile(filepath.Join(dir, workspace.StatementsFile))
	require.NoError(t, err)
	assert.Equal(t, data, data2, "generation is deterministic")
}

func TestGenerate_BadFlag(t *testing.T) {
	dir := importedWorkspace(t)
	_, err := run(t, "-w", dir, "generate", "--sign-convention", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign_convention")
}

func TestMapSet_LineOverride(t *testing.T) {
	dir := importedWorkspace(t)
	out := mustRun(t, "-w", dir, "map", "set", "199-00-5742-00-000000", "--line", "chapter_313_payments")
	assert.Contains(t, out, "19900574200000000")
	assert.Contains(t, out, "manual")

	mustRun(t, "-w", dir, "generate")
	data, err := os.ReadFile(filepath.Join(dir, workspace.StatementsFile))
	require.NoError(t, err)

	var stmts struct {
		Activities struct {
			GeneralRevenues map[string]struct {
				Amount string `json:"amount"`
			} `json:"general_revenues"`
		} `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(data, &stmts))
	assert.Equal(t, "15000", stmts.Activities.GeneralRevenues["chapter_313_payments"].Amount)
	assert.Equal(t, "0", stmts.Activities.GeneralRevenues["investment_earnings"].Amount)
}

func TestMapSet_Rejected(t *testing.T) {
	dir := importedWorkspace(t)
	_, err := run(t, "-w", dir, "map", "set", "199001110", "--confidence", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confidence")
}

func TestMapList(t *testing.T) {
	dir := importedWorkspace(t)

	out := mustRun(t, "-w", dir, "map", "list", "--search", "inventories")
	assert.Contains(t, out, "19900131000000000")
	assert.Contains(t, out, "page 1 of 1 (1 accounts)")

	out = mustRun(t, "-w", dir, "map", "list", "--page-size", "10", "--page", "2", "--json")
	var page mapping.Page
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 32, page.TotalItems)
	assert.Equal(t, 4, page.TotalPages)
	assert.Len(t, page.Mappings, 10)
}

func TestMapDeleteAndValidate(t *testing.T) {
	dir := importedWorkspace(t)

	out := mustRun(t, "-w", dir, "map", "validate")
	assert.Contains(t, out, "Mappings valid")

	out = mustRun(t, "-w", dir, "map", "delete", "199-00-1110-00-000000", "19999999")
	assert.Contains(t, out, "Deleted 1 of 2 accounts")

	out = mustRun(t, "-w", dir, "map", "validate", "--json")
	var summary mapping.ValidationSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.False(t, summary.Valid)
	assert.Equal(t, 1, summary.TotalUnmapped)
	assert.Equal(t, []string{"19900111000000000"}, summary.UnmappedAccounts)
}

func TestMapExportImport(t *testing.T) {
	dir := importedWorkspace(t)
	file := filepath.Join(t.TempDir(), "mappings.csv")

	out := mustRun(t, "-w", dir, "map", "export", file)
	assert.Contains(t, out, "Exported 32 mappings")

	stdout := mustRun(t, "-w", dir, "map", "export")
	assert.Contains(t, stdout, mapping.Header)

	other := importedWorkspace(t)
	mustRun(t, "-w", other, "map", "reset", "--yes")
	out = mustRun(t, "-w", other, "map", "import", file)
	assert.Contains(t, out, "Applied 32, rejected 0")

	out = mustRun(t, "-w", other, "map", "validate")
	assert.Contains(t, out, "Mappings valid")
}

func TestMapReset(t *testing.T) {
	dir := importedWorkspace(t)
	mustRun(t, "-w", dir, "generate")

	_, err := run(t, "-w", dir, "map", "reset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out := mustRun(t, "-w", dir, "map", "reset", "--yes")
	assert.Contains(t, out, "Deleted 32 mappings")

	_, err = os.Stat(filepath.Join(dir, workspace.StatementsFile))
	assert.True(t, os.IsNotExist(err), "statements are removed with their mappings")

	_, err = run(t, "-w", dir, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no account classifications")
}

func TestMapAuto_KeepsManual(t *testing.T) {
	dir := importedWorkspace(t)
	mustRun(t, "-w", dir, "map", "set", "199-00-1110-00-000000", "--notes", "checked by auditor")

	out := mustRun(t, "-w", dir, "map", "auto")
	assert.Contains(t, out, "Mapped 32 accounts (1 manual overrides kept)")
}

func TestAudit(t *testing.T) {
	dir := importedWorkspace(t)
	out := mustRun(t, "-w", dir, "audit")
	assert.Contains(t, out, "Records: 32 (mapped 32, unmapped 0")
	assert.Contains(t, out, "Debits: 4330000.00  Credits: 4330000.00  Difference: 0.00")

	records, err := audit.Load(dir)
	require.NoError(t, err)
	require.Len(t, records, 32)
	assert.Equal(t, "19900111000000000", records[0].AccountCode)

	out = mustRun(t, "-w", dir, "audit", "--json")
	var summary audit.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.True(t, summary.Balanced)
}

func TestLog(t *testing.T) {
	dir := importedWorkspace(t)
	mustRun(t, "-w", dir, "generate")

	out := mustRun(t, "-w", dir, "log")
	assert.Contains(t, out, "init_workspace")
	assert.Contains(t, out, "import_trial_balance")
	assert.Contains(t, out, "generate_statements")

	out = mustRun(t, "-w", dir, "log", "-n", "1")
	assert.NotContains(t, out, "init_workspace")
	assert.Contains(t, out, "generate_statements")
}

func TestGitAutoCommit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	out := mustRun(t, "init", dir, "--name", "Lone Star ISD")
	assert.Contains(t, out, "(")

	mustRun(t, "-w", dir, "import", sample)

	entries, err := runlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEmpty(t, entries[0].CommitHash)
	assert.NotEmpty(t, entries[1].CommitHash)
	assert.NotEqual(t, entries[0].CommitHash, entries[1].CommitHash)
	assert.NotEmpty(t, entries[1].DatasetID)

	subject := exec.Command("git", "log", "--format=%s", "-1")
	subject.Dir = dir
	msg, err := subject.Output()
	require.NoError(t, err)
	assert.Contains(t, string(msg), "import: 32 rows from trial-balance.csv")
}

func TestGenerate_LogsThroughConfiguredLogger(t *testing.T) {
	dir := importedWorkspace(t)
	path := filepath.Join(dir, config.FileName)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	cfg.Logging.Format = "json"
	require.NoError(t, config.Save(path, cfg))

	cmd := commands.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"-w", dir, "generate"})
	require.NoError(t, cmd.Execute())

	var entry map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(errOut.Bytes()), []byte("\n")) {
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m), "log line %q", line)
		if m["message"] == "generated statements" {
			entry = m
		}
	}
	require.NotNil(t, entry, "stderr: %s", errOut.String())
	assert.Equal(t, "districtfs generate", entry["command"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, float64(32), entry["rows"])
}
