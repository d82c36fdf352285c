package trialbalance

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/districtfs/internal/model"
)

// Header is the CSV header of the normalized data/trial-balance.csv.
const Header = "account_code,description,current_year_actual,budget,prior_year_actual"

// File is the workspace-relative path of the normalized trial balance.
const File = "data/trial-balance.csv"

// importDir is the subdirectory for raw exports.
const importDir = "import"

// processedDir is the subdirectory for ingested exports.
const processedDir = "import/processed"

var importExts = map[string]bool{".csv": true, ".tsv": true, ".txt": true}

// FileInfo describes an export waiting in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Scan returns trial balance exports in <root>/import/.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !importExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, importDir, fileName)
	dstDir := filepath.Join(root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	if err := os.Rename(src, filepath.Join(dstDir, fileName)); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// ParseFile opens path and parses it with the named format.
func ParseFile(reg *Registry, format, path string) ([]model.TrialBalanceRow, error) {
	p := reg.Get(format)
	if p == nil {
		return nil, fmt.Errorf("unknown trial balance format %q", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trial balance: %w", err)
	}
	defer f.Close()

	rows, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

// WriteRows writes rows in the normalized layout.
func WriteRows(w io.Writer, rows []model.TrialBalanceRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rows {
		rec := []string{
			r.AccountCode,
			r.Description,
			r.CurrentYearActual.String(),
			r.Budget.String(),
			r.PriorYearActual.String(),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes rows to <root>/data/trial-balance.csv.
func Save(root string, rows []model.TrialBalanceRow) error {
	path := filepath.Join(root, File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trial balance file: %w", err)
	}
	defer f.Close()

	if err := WriteRows(f, rows); err != nil {
		return fmt.Errorf("writing trial balance: %w", err)
	}
	return nil
}

// Load reads <root>/data/trial-balance.csv. A missing file returns an error
// satisfying os.IsNotExist.
func Load(root string) ([]model.TrialBalanceRow, error) {
	f, err := os.Open(filepath.Join(root, File))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := &DelimitedParser{Name: "csv", Comma: ','}
	rows, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading trial balance: %w", err)
	}
	return rows, nil
}
