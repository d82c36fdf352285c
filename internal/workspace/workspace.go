// Package workspace ties the on-disk layout of a district workspace to the
// engines: configuration, the imported trial balance and its manifest, the
// mapping store, exports, the run log and git auto-commit.
package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/districtfs/internal/audit"
	"github.com/cleared-dev/districtfs/internal/config"
	"github.com/cleared-dev/districtfs/internal/gitops"
	"github.com/cleared-dev/districtfs/internal/mapping"
	"github.com/cleared-dev/districtfs/internal/model"
	"github.com/cleared-dev/districtfs/internal/runlog"
	"github.com/cleared-dev/districtfs/internal/statement"
	"github.com/cleared-dev/districtfs/internal/trialbalance"
)

// ErrNoTrialBalance is returned when a command needs an imported trial
// balance and none exists.
var ErrNoTrialBalance = errors.New("no trial balance imported; run `districtfs import` first")

// Workspace-relative paths.
const (
	DatasetFile    = "data/dataset.yaml"
	StatementsFile = "exports/statements.json"
)

// Layout lists the directories created by Create.
var Layout = []string{
	"data",
	"mappings",
	"exports",
	"logs",
	"import",
	filepath.Join("import", "processed"),
}

// Dataset describes the imported trial balance.
type Dataset struct {
	ID         string    `yaml:"id"`
	SourceFile string    `yaml:"source_file"`
	Format     string    `yaml:"format"`
	RowCount   int       `yaml:"row_count"`
	ImportedAt time.Time `yaml:"imported_at"`
}

// Workspace is an opened district workspace.
type Workspace struct {
	Root    string
	Config  *config.Config
	Parsers *trialbalance.Registry

	stores *mapping.Registry
	now    func() time.Time
}

// Open loads the configuration of the workspace at root.
func Open(root string) (*Workspace, error) {
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s is not a districtfs workspace (missing %s)", root, config.FileName)
		}
		return nil, err
	}
	return newWorkspace(root, cfg), nil
}

// Create lays out a new workspace at root and writes cfg.
func Create(root string, cfg *config.Config) (*Workspace, error) {
	for _, d := range Layout {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", d, err)
		}
	}
	if err := config.Save(filepath.Join(root, config.FileName), cfg); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(root, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return nil, fmt.Errorf("writing .gitkeep: %w", err)
	}
	return newWorkspace(root, cfg), nil
}

func newWorkspace(root string, cfg *config.Config) *Workspace {
	return &Workspace{
		Root:    root,
		Config:  cfg,
		Parsers: trialbalance.DefaultRegistry(),
		stores:  mapping.NewRegistry(mapping.Options{PageSize: cfg.Mapping.PageSize}),
		now:     time.Now,
	}
}

// Path joins rel onto the workspace root.
func (w *Workspace) Path(rel string) string {
	return filepath.Join(w.Root, rel)
}

// Import parses the trial balance at path, stores the normalized rows and
// writes a fresh dataset manifest. An empty format uses the configured one.
func (w *Workspace) Import(path, format string) (Dataset, []model.TrialBalanceRow, error) {
	if format == "" {
		format = w.Config.Import.Format
	}
	if format == "" {
		format = "csv"
	}

	rows, err := trialbalance.ParseFile(w.Parsers, format, path)
	if err != nil {
		return Dataset{}, nil, err
	}
	if prev, err := w.Dataset(); err == nil {
		w.stores.Drop(prev.ID)
	}
	if err := trialbalance.Save(w.Root, rows); err != nil {
		return Dataset{}, nil, err
	}

	ds := Dataset{
		ID:         uuid.NewString(),
		SourceFile: filepath.Base(path),
		Format:     format,
		RowCount:   len(rows),
		ImportedAt: w.now().UTC().Truncate(time.Second),
	}
	if err := w.saveDataset(ds); err != nil {
		return Dataset{}, nil, err
	}
	return ds, rows, nil
}

// Dataset reads the dataset manifest.
func (w *Workspace) Dataset() (Dataset, error) {
	data, err := os.ReadFile(w.Path(DatasetFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Dataset{}, ErrNoTrialBalance
		}
		return Dataset{}, fmt.Errorf("reading dataset manifest: %w", err)
	}
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parsing dataset manifest: %w", err)
	}
	return ds, nil
}

func (w *Workspace) saveDataset(ds Dataset) error {
	data, err := yaml.Marshal(ds)
	if err != nil {
		return fmt.Errorf("marshaling dataset manifest: %w", err)
	}
	path := w.Path(DatasetFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing dataset manifest: %w", err)
	}
	return nil
}

// TrialBalance reads the imported rows.
func (w *Workspace) TrialBalance() ([]model.TrialBalanceRow, error) {
	rows, err := trialbalance.Load(w.Root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoTrialBalance
		}
		return nil, err
	}
	return rows, nil
}

// Mappings returns the mapping store of the current dataset. The persisted
// store is loaded once per dataset scope and shared by later calls. Without
// a dataset the store is loaded fresh each time.
func (w *Workspace) Mappings() (*mapping.Store, error) {
	load := func() (*mapping.Store, error) {
		return mapping.Load(w.Root, mapping.Options{PageSize: w.Config.Mapping.PageSize})
	}
	ds, err := w.Dataset()
	if err != nil {
		return load()
	}
	return w.stores.LoadOrStore(ds.ID, load)
}

// SaveMappings persists the mapping store.
func (w *Workspace) SaveMappings(s *mapping.Store) error {
	return s.Save(w.Root)
}

// SaveStatements writes the statements as indented JSON.
func (w *Workspace) SaveStatements(s *statement.Statements) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling statements: %w", err)
	}
	path := w.Path(StatementsFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating exports dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing statements: %w", err)
	}
	return nil
}

// ClearExports removes generated statements and the audit trail, which are
// stale once the mappings they were built from are gone.
func (w *Workspace) ClearExports() error {
	for _, rel := range []string{StatementsFile, audit.File} {
		if err := os.Remove(w.Path(rel)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", rel, err)
		}
	}
	return nil
}

// Commit records the workspace in git when auto-commit is enabled and the
// workspace is a repository. It returns the commit hash, or "" when nothing
// was committed.
func (w *Workspace) Commit(message string) (string, error) {
	if !w.Config.Git.AutoCommit || !gitops.IsRepo(w.Root) {
		return "", nil
	}
	return gitops.CommitAll(w.Root, message, w.Author())
}

// Author is the configured commit identity.
func (w *Workspace) Author() gitops.Author {
	return gitops.Author{Name: w.Config.Git.AuthorName, Email: w.Config.Git.AuthorEmail}
}

// Log appends a run log entry stamped with the current dataset id.
func (w *Workspace) Log(command, action, details, commit string) error {
	e := runlog.Entry{
		Timestamp:  w.now(),
		Command:    command,
		Action:     action,
		Details:    details,
		CommitHash: commit,
	}
	if ds, err := w.Dataset(); err == nil {
		e.DatasetID = ds.ID
	}
	return runlog.Append(w.Root, e)
}
