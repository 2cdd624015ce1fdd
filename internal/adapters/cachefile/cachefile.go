// Package cachefile is a TTL file cache for discovery results.
// One JSON file per seed plus a single index file mapping seeds to entries.
// All writes are atomic (temp file then rename) and reads self-heal: missing,
// corrupt, or expired entries are dropped instead of surfacing errors
package cachefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"keywordscout/internal/core/keynorm"
	perr "keywordscout/internal/platform/errors"
	"keywordscout/internal/platform/logger"
)

const (
	// DefaultDir holds cache files when Options leaves Dir unset
	DefaultDir = ".cache"

	// DefaultTTL is the entry lifetime when Options leaves TTL unset
	DefaultTTL = 24 * time.Hour

	indexFile  = "cache_index.json"
	maxNameLen = 50
)

// Options configures a Store
type Options struct {
	Dir string
	TTL time.Duration
}

// Entry is the on-disk payload for one cached seed
type Entry struct {
	Seed      string          `json:"seed_keyword"`
	CachedAt  time.Time       `json:"cached_at"`
	ExpiresAt time.Time       `json:"expires_at"`
	Metadata  map[string]any  `json:"metadata,omitempty"`
	Result    json.RawMessage `json:"result"`
}

// Decode unmarshals the cached result into v
func (e *Entry) Decode(v any) error {
	return perr.WrapIf(json.Unmarshal(e.Result, v), perr.ErrorCodeJSON, "cache entry decode failed")
}

// indexEntry is one row of the index file
type indexEntry struct {
	File      string    `json:"file"`
	CachedAt  time.Time `json:"cached_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Stats summarizes cache state for admin surfaces
type Stats struct {
	Total   int           `json:"total"`
	Valid   int           `json:"valid"`
	Expired int           `json:"expired"`
	Dir     string        `json:"dir"`
	TTL     time.Duration `json:"ttl"`
}

// Store is a seed-keyed TTL cache. Safe for concurrent use within one process;
// multi-process writers are not coordinated
type Store struct {
	dir  string
	ttl  time.Duration
	mu   sync.Mutex
	norm *keynorm.Normalizer
	log  logger.Logger
	now  func() time.Time
}

// New builds a Store and ensures its directory exists
func New(o Options) (*Store, error) {
	if o.Dir == "" {
		o.Dir = DefaultDir
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if err := os.MkdirAll(o.Dir, 0o755); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "cache dir create failed")
	}
	return &Store{
		dir:  o.Dir,
		ttl:  o.TTL,
		norm: keynorm.New(),
		log:  *logger.Named("cachefile"),
		now:  time.Now,
	}, nil
}

// Save caches result under seed, replacing any prior entry for the same
// normalized seed. Metadata rides along for admin introspection
func (s *Store) Save(seed string, result any, metadata map[string]any) error {
	key := s.norm.Key(seed)
	if key == "" {
		return perr.Validationf("seed keyword must not be empty")
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "cache result marshal failed")
	}

	now := s.now().UTC()
	entry := Entry{
		Seed:      key,
		CachedAt:  now,
		ExpiresAt: now.Add(s.ttl),
		Metadata:  metadata,
		Result:    raw,
	}
	name := fmt.Sprintf("%s_%d.json", sanitizeFilename(key), now.Unix())

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeJSON(filepath.Join(s.dir, name), entry); err != nil {
		return err
	}

	idx := s.loadIndex()
	if old, ok := idx[key]; ok && old.File != name {
		_ = os.Remove(filepath.Join(s.dir, old.File))
	}
	idx[key] = indexEntry{File: name, CachedAt: entry.CachedAt, ExpiresAt: entry.ExpiresAt}
	if err := s.writeJSON(filepath.Join(s.dir, indexFile), idx); err != nil {
		return err
	}

	s.log.Debug().Str("seed", key).Str("file", name).Time("expires_at", entry.ExpiresAt).Msg("cache saved")
	return nil
}

// Load returns the fresh entry for seed, or (nil, false) on any miss.
// Broken state heals in place: dangling index rows and expired entries are
// removed during the lookup
func (s *Store) Load(seed string) (*Entry, bool, error) {
	key := s.norm.Key(seed)
	if key == "" {
		return nil, false, perr.Validationf("seed keyword must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.loadIndex()
	row, ok := idx[key]
	if !ok {
		return nil, false, nil
	}

	path := filepath.Join(s.dir, row.File)
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warn().Str("seed", key).Str("file", row.File).Msg("cache entry unreadable, healing index")
		s.dropRow(idx, key, path)
		return nil, false, nil
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		s.log.Warn().Str("seed", key).Str("file", row.File).Msg("cache entry corrupt, healing index")
		s.dropRow(idx, key, path)
		return nil, false, nil
	}

	// strictly after: an entry at exactly expires_at is still fresh
	if s.now().UTC().After(entry.ExpiresAt) {
		s.log.Debug().Str("seed", key).Time("expired_at", entry.ExpiresAt).Msg("cache entry expired")
		s.dropRow(idx, key, path)
		return nil, false, nil
	}

	return &entry, true, nil
}

// ClearExpired removes expired entries and returns how many went away
func (s *Store) ClearExpired() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.loadIndex()
	now := s.now().UTC()
	removed := 0
	for key, row := range idx {
		if !now.After(row.ExpiresAt) {
			continue
		}
		_ = os.Remove(filepath.Join(s.dir, row.File))
		delete(idx, key)
		removed++
	}
	if removed > 0 {
		if err := s.writeJSON(filepath.Join(s.dir, indexFile), idx); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// ClearAll removes every entry and resets the index
func (s *Store) ClearAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.loadIndex()
	removed := 0
	for key, row := range idx {
		_ = os.Remove(filepath.Join(s.dir, row.File))
		delete(idx, key)
		removed++
	}
	if err := s.writeJSON(filepath.Join(s.dir, indexFile), idx); err != nil {
		return removed, err
	}
	return removed, nil
}

// Stats counts entries by freshness without mutating anything
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.loadIndex()
	now := s.now().UTC()
	st := Stats{Total: len(idx), Dir: s.dir, TTL: s.ttl}
	for _, row := range idx {
		if now.After(row.ExpiresAt) {
			st.Expired++
		} else {
			st.Valid++
		}
	}
	return st
}

// loadIndex reads the index file; a missing or corrupt index is an empty one
func (s *Store) loadIndex() map[string]indexEntry {
	data, err := os.ReadFile(filepath.Join(s.dir, indexFile))
	if err != nil {
		return map[string]indexEntry{}
	}
	var idx map[string]indexEntry
	if err := json.Unmarshal(data, &idx); err != nil || idx == nil {
		s.log.Warn().Msg("cache index corrupt, starting fresh")
		return map[string]indexEntry{}
	}
	return idx
}

// dropRow removes an index row and its file, then persists the index.
// Caller holds the lock
func (s *Store) dropRow(idx map[string]indexEntry, key, path string) {
	_ = os.Remove(path)
	delete(idx, key)
	_ = s.writeJSON(filepath.Join(s.dir, indexFile), idx)
}

// writeJSON marshals v and writes it atomically via temp file + rename
func (s *Store) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "cache marshal failed")
	}
	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "cache temp write failed")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return perr.Wrapf(err, perr.ErrorCodeIO, "cache rename failed")
	}
	return nil
}

// sanitizeFilename folds path-hostile runes and whitespace to underscores and
// truncates to a safe length
func sanitizeFilename(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case strings.ContainsRune(`<>:"/\|?*`, r):
			b.WriteByte('_')
		case r == ' ' || r == '\t':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	out := []rune(b.String())
	if len(out) > maxNameLen {
		out = out[:maxNameLen]
	}
	return string(out)
}
