package resource

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
)

// Index holds the asset tables for every category. Reads are lock-free
// against atomically swapped tables; reloads are serialized by mu so
// two concurrent refreshes of the same category cannot interleave.
//
// Layout under dir: <dir>/<category>.json is the source file and
// <dir>/<category>/ holds that category's image files.
type Index struct {
	log    *slog.Logger
	dir    string
	mu     sync.Mutex
	tables map[Category]*atomic.Pointer[table]
}

func New(dir string, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	idx := &Index{
		log:    logger.With(slog.String("component", "resource")),
		dir:    dir,
		tables: make(map[Category]*atomic.Pointer[table], len(Categories())),
	}
	for _, cat := range Categories() {
		p := new(atomic.Pointer[table])
		p.Store(&table{})
		idx.tables[cat] = p
	}
	return idx
}

// Dir returns the root the index reads from.
func (idx *Index) Dir() string {
	return idx.dir
}

// Reload re-reads every category source. A category that fails to read
// or parse keeps its previous contents and the others still refresh;
// the return value is true only when all categories loaded cleanly.
func (idx *Index) Reload() bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	ok := true
	for _, cat := range Categories() {
		if !idx.reloadLocked(cat) {
			ok = false
		}
	}
	return ok
}

// ReloadCategory refreshes a single category, leaving the previous
// table in place on failure.
func (idx *Index) ReloadCategory(cat Category) bool {
	if _, known := idx.tables[cat]; !known {
		idx.log.Warn("reload of unknown category", slog.String("category", string(cat)))
		return false
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.reloadLocked(cat)
}

func (idx *Index) reloadLocked(cat Category) bool {
	path := idx.sourcePath(cat)

	f, err := os.Open(path)
	if err != nil {
		idx.log.Error("open category source",
			slog.String("category", string(cat)),
			slog.String("path", path),
			slog.Any("error", err))
		return false
	}
	defer f.Close()

	pairs, err := decodeOrdered(f)
	if err != nil {
		idx.log.Error("decode category source",
			slog.String("category", string(cat)),
			slog.String("path", path),
			slog.Any("error", err))
		return false
	}

	t, err := buildTable(pairs)
	if err != nil {
		idx.log.Error("build category table",
			slog.String("category", string(cat)),
			slog.Any("error", err))
		return false
	}

	idx.tables[cat].Store(t)
	idx.log.Info("category loaded",
		slog.String("category", string(cat)),
		slog.Int("entries", len(t.entries)))
	return true
}

// Find resolves a query within one category. The query is trimmed and
// lowercased, then matched exact-first and fuzzy-second in stored
// order. A miss is an ordinary absent result, not an error.
func (idx *Index) Find(cat Category, query string) (Resource, bool) {
	q := normalize(query)
	if q == "" {
		return Resource{}, false
	}
	t := idx.table(cat)
	if t == nil {
		return Resource{}, false
	}
	e := t.match(q)
	if e == nil {
		return Resource{}, false
	}
	return idx.view(cat, e), true
}

// List returns every entry of a category in stored order.
func (idx *Index) List(cat Category) []Resource {
	t := idx.table(cat)
	if t == nil || len(t.entries) == 0 {
		return nil
	}
	out := make([]Resource, 0, len(t.entries))
	for i := range t.entries {
		out = append(out, idx.view(cat, &t.entries[i]))
	}
	return out
}

// Count reports how many entries a category currently holds.
func (idx *Index) Count(cat Category) int {
	t := idx.table(cat)
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// FindWeapon resolves a weapon query without a level choice. For a
// leveled weapon the resolution asks the caller to pick a level.
func (idx *Index) FindWeapon(query string) (LeveledResolution, bool) {
	return idx.resolveWeapon(query, 0, false)
}

// FindWeaponAtLevel resolves a weapon query with an explicit level. An
// unavailable level is flagged on the resolution together with the
// valid choices; it does not hide the weapon itself.
func (idx *Index) FindWeaponAtLevel(query string, level int) (LeveledResolution, bool) {
	return idx.resolveWeapon(query, level, true)
}

func (idx *Index) resolveWeapon(query string, level int, haveLevel bool) (LeveledResolution, bool) {
	q := normalize(query)
	if q == "" {
		return LeveledResolution{}, false
	}
	t := idx.table(CategoryWeapons)
	if t == nil {
		return LeveledResolution{}, false
	}
	e := t.match(q)
	if e == nil {
		return LeveledResolution{}, false
	}

	res := LeveledResolution{Weapon: idx.view(CategoryWeapons, e)}
	if len(e.levelList) == 0 {
		return res, true
	}

	res.HasLevels = true
	res.LevelsAvailable = append([]int(nil), e.levelList...)
	if !haveLevel {
		res.NeedsSelection = true
		return res, true
	}

	filename, ok := e.levels[level]
	if !ok {
		requested := level
		res.NeedsSelection = true
		res.InvalidLevel = &requested
		return res, true
	}

	path := filepath.Join(idx.categoryDir(CategoryWeapons), filename)
	res.File = &LevelFile{
		Level:    level,
		Filename: filename,
		FilePath: path,
		Exists:   fileExists(path),
	}
	return res, true
}

func (idx *Index) table(cat Category) *table {
	p, ok := idx.tables[cat]
	if !ok {
		return nil
	}
	return p.Load()
}

func (idx *Index) view(cat Category, e *storedEntry) Resource {
	r := Resource{
		Key:         e.key,
		Category:    cat,
		Name:        e.name,
		Description: e.description,
		Type:        e.typ,
		HasLevels:   len(e.levelList) > 0,
	}
	if len(e.aliases) > 0 {
		r.Aliases = append([]string(nil), e.aliases...)
	}
	if e.filename != "" {
		r.Filename = e.filename
		r.FilePath = filepath.Join(idx.categoryDir(cat), e.filename)
		r.Exists = fileExists(r.FilePath)
	}
	return r
}

func (idx *Index) sourcePath(cat Category) string {
	return filepath.Join(idx.dir, string(cat)+".json")
}

func (idx *Index) categoryDir(cat Category) string {
	return filepath.Join(idx.dir, string(cat))
}

func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
