package mapping

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/cleared-dev/districtfs/internal/acctcode"
	"github.com/cleared-dev/districtfs/internal/classify"
	"github.com/cleared-dev/districtfs/internal/model"
)

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = 100

// Options configures a Store.
type Options struct {
	PageSize int
	Clock    func() time.Time
}

// Store holds the classifications of one scope, ordered by account code.
// Writes are serialized; reads run concurrently.
type Store struct {
	mu       sync.RWMutex
	entries  *redblacktree.Tree // account code -> model.AccountClassification
	version  uint64
	pageSize int
	now      func() time.Time
}

// NewStore creates a Store seeded with entries.
func NewStore(opts Options, entries ...model.AccountClassification) *Store {
	s := &Store{
		entries:  redblacktree.NewWithStringComparator(),
		pageSize: opts.PageSize,
		now:      opts.Clock,
	}
	if s.pageSize < 1 {
		s.pageSize = DefaultPageSize
	}
	if s.now == nil {
		s.now = time.Now
	}
	for _, e := range entries {
		s.entries.Put(e.AccountCode, e)
	}
	return s
}

// Page is one page of a classification listing.
type Page struct {
	Mappings   []model.AccountClassification `json:"mappings"`
	Page       int                           `json:"page"`
	PageSize   int                           `json:"page_size"`
	TotalItems int                           `json:"total_items"`
	TotalPages int                           `json:"total_pages"`
}

// Get returns a page of classifications ordered by account code, filtered by a
// case-insensitive substring match on code, description and category names.
func (s *Store) Get(page, pageSize int, search string) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.pageSize
	}
	needle := strings.ToLower(strings.TrimSpace(search))
	offset := (page - 1) * pageSize

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := Page{Mappings: []model.AccountClassification{}, Page: page, PageSize: pageSize}
	it := s.entries.Iterator()
	for it.Next() {
		c := it.Value().(model.AccountClassification)
		if needle != "" && !matches(c, needle) {
			continue
		}
		if result.TotalItems >= offset && len(result.Mappings) < pageSize {
			result.Mappings = append(result.Mappings, c)
		}
		result.TotalItems++
	}
	result.TotalPages = (result.TotalItems + pageSize - 1) / pageSize
	return result
}

func matches(c model.AccountClassification, needle string) bool {
	fields := []string{
		c.AccountCode,
		c.Description,
		string(c.ReportingCategory),
		string(c.SecondaryCategory),
		c.SecondaryCategory.DisplayName(),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Lookup returns the classification for code.
func (s *Store) Lookup(code string) (model.AccountClassification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(acctcode.Normalize(code))
}

func (s *Store) lookup(code string) (model.AccountClassification, bool) {
	v, ok := s.entries.Get(code)
	if !ok {
		return model.AccountClassification{}, false
	}
	return v.(model.AccountClassification), true
}

// All returns every classification ordered by account code.
func (s *Store) All() []model.AccountClassification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.AccountClassification, 0, s.entries.Size())
	for _, v := range s.entries.Values() {
		out = append(out, v.(model.AccountClassification))
	}
	return out
}

// Snapshot returns an immutable copy keyed by account code.
func (s *Store) Snapshot() model.Classifications {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(model.Classifications, s.entries.Size())
	it := s.entries.Iterator()
	for it.Next() {
		snap[it.Key().(string)] = it.Value().(model.AccountClassification)
	}
	return snap
}

// Len returns the number of stored classifications.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.Size()
}

// Version increases on every mutation. Artifacts derived from an older
// version are stale.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Upsert merges patches into the store. A nil patch deletes the code.
// Invalid entries are rejected one by one; the rest of the batch applies.
func (s *Store) Upsert(patches map[string]*Patch) UpsertResult {
	result := UpsertResult{Rejections: []Rejection{}}
	if len(patches) == 0 {
		return result
	}

	keys := make([]string, 0, len(patches))
	for k := range patches {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, raw := range keys {
		code := acctcode.Normalize(raw)
		if code == "" {
			result.Rejections = append(result.Rejections, Rejection{AccountCode: raw, Reason: "account code is empty"})
			continue
		}

		p := patches[raw]
		if p == nil {
			if _, ok := s.entries.Get(code); ok {
				s.entries.Remove(code)
				result.Deleted++
			}
			continue
		}

		if err := p.Validate(); err != nil {
			result.Rejections = append(result.Rejections, Rejection{AccountCode: code, Reason: err.Error()})
			continue
		}

		base, ok := s.lookup(code)
		if !ok {
			base = derive(code, "")
		}
		base.Confidence = classify.ConfidenceManual

		merged, err := p.apply(base)
		if err != nil {
			result.Rejections = append(result.Rejections, Rejection{AccountCode: code, Reason: err.Error()})
			continue
		}
		merged.MappingMethod = model.MappingManual
		merged.UpdatedAt = now
		s.entries.Put(code, merged)
		result.Applied++
	}

	if result.Applied > 0 || result.Deleted > 0 {
		s.version++
	}
	return result
}

// ResetAll deletes every classification.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries.Clear()
	s.version++
}

// AutoMap classifies codes with the classification engine and stores the
// results. Manual entries are left as they are; everything derived is
// recomputed, so repeated calls yield the same classifications.
func (s *Store) AutoMap(codes []string) map[string]model.AccountClassification {
	return s.autoMap(codes, nil)
}

// AutoMapRows runs AutoMap over the codes of a trial balance, using row
// descriptions for accounts the store has not seen.
func (s *Store) AutoMapRows(rows []model.TrialBalanceRow) map[string]model.AccountClassification {
	codes := make([]string, 0, len(rows))
	descriptions := make(map[string]string, len(rows))
	for _, r := range rows {
		code := acctcode.Normalize(r.AccountCode)
		codes = append(codes, code)
		if r.Description != "" {
			descriptions[code] = r.Description
		}
	}
	return s.autoMap(codes, descriptions)
}

func (s *Store) autoMap(codes []string, descriptions map[string]string) map[string]model.AccountClassification {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make(map[string]model.AccountClassification, len(codes))
	changed := false
	for _, raw := range codes {
		code := acctcode.Normalize(raw)
		if code == "" {
			continue
		}

		existing, ok := s.lookup(code)
		if ok && existing.IsManual() {
			if fund := classify.FundCategoryOf(acctcode.Decode(code)); fund != existing.FundCategory {
				existing.FundCategory = fund
				existing.UpdatedAt = now
				s.entries.Put(code, existing)
				changed = true
			}
			out[code] = existing
			continue
		}

		var next model.AccountClassification
		if ok {
			next = derive(code, existing.Description)
			next.Notes = existing.Notes
		} else {
			next = derive(code, descriptions[code])
		}

		if ok && sameClassification(existing, next) {
			next = existing
		} else {
			next.UpdatedAt = now
			s.entries.Put(code, next)
			changed = true
		}
		out[code] = next
	}

	if changed {
		s.version++
	}
	return out
}

// derive builds an automatic classification for code.
func derive(code, description string) model.AccountClassification {
	r := classify.ClassifyCode(code, nil)
	if description == "" {
		description = "Account " + code
	}
	return model.AccountClassification{
		AccountCode:       code,
		Description:       description,
		ReportingCategory: r.Reporting,
		SecondaryCategory: r.Secondary,
		FundCategory:      r.Fund,
		StatementLineCode: model.DefaultStatementLine,
		MappingMethod:     model.MappingAutomatic,
		Confidence:        r.Confidence,
	}
}

func sameClassification(a, b model.AccountClassification) bool {
	return a.AccountCode == b.AccountCode &&
		a.Description == b.Description &&
		a.ReportingCategory == b.ReportingCategory &&
		a.SecondaryCategory == b.SecondaryCategory &&
		a.FundCategory == b.FundCategory &&
		a.StatementLineCode == b.StatementLineCode &&
		a.Notes == b.Notes &&
		a.MappingMethod == b.MappingMethod &&
		a.Confidence.Equal(b.Confidence)
}
