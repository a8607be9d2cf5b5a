package resource

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// entryFile mirrors one entry object in a category source file.
type entryFile struct {
	Name        string                  `json:"name"`
	Aliases     []string                `json:"aliases"`
	Filename    string                  `json:"filename"`
	Description string                  `json:"description"`
	Type        string                  `json:"type"`
	Levels      map[string]levelFileRef `json:"levels"`
}

type levelFileRef struct {
	Filename string `json:"filename"`
}

type keyedEntry struct {
	key   string
	entry entryFile
}

// storedEntry is the immutable in-memory form of one entry. Lowercased
// copies are precomputed so every lookup phase compares without
// re-folding the same strings.
type storedEntry struct {
	key          string
	lowerKey     string
	name         string
	lowerName    string
	aliases      []string
	lowerAliases []string
	filename     string
	description  string
	typ          string
	levels       map[int]string
	levelList    []int
}

// table is one category's entry set in source-file order. Lookups walk
// the slice so first-found wins exactly as the file orders the keys; a
// reload swaps the whole table in a single pointer store.
type table struct {
	entries []storedEntry
}

// decodeOrdered reads a top-level JSON object while keeping key order,
// which encoding/json's map decoding would destroy.
func decodeOrdered(r io.Reader) ([]keyedEntry, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected top-level object, got %v", tok)
	}

	var out []keyedEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", tok)
		}
		var ef entryFile
		if err := dec.Decode(&ef); err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		out = append(out, keyedEntry{key: key, entry: ef})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func buildTable(pairs []keyedEntry) (*table, error) {
	t := &table{entries: make([]storedEntry, 0, len(pairs))}
	for _, p := range pairs {
		e := storedEntry{
			key:         p.key,
			lowerKey:    strings.ToLower(p.key),
			name:        p.entry.Name,
			filename:    p.entry.Filename,
			description: p.entry.Description,
			typ:         p.entry.Type,
		}
		if e.name == "" {
			e.name = p.key
		}
		e.lowerName = strings.ToLower(e.name)
		if len(p.entry.Aliases) > 0 {
			e.aliases = append([]string(nil), p.entry.Aliases...)
			e.lowerAliases = make([]string, len(e.aliases))
			for i, a := range e.aliases {
				e.lowerAliases[i] = strings.ToLower(a)
			}
		}
		if len(p.entry.Levels) > 0 {
			levels, list, err := parseLevels(p.entry.Levels)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", p.key, err)
			}
			e.levels = levels
			e.levelList = list
		}
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// parseLevels converts stringified level keys to integers. Keys must be
// distinct non-negative integers; "1" and "01" colliding on the same
// level is a source-file mistake, not something to resolve silently.
func parseLevels(raw map[string]levelFileRef) (map[int]string, []int, error) {
	levels := make(map[int]string, len(raw))
	list := make([]int, 0, len(raw))
	for key, ref := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, nil, fmt.Errorf("level key %q is not an integer", key)
		}
		if n < 0 {
			return nil, nil, fmt.Errorf("level key %q is negative", key)
		}
		if _, dup := levels[n]; dup {
			return nil, nil, fmt.Errorf("duplicate level %d", n)
		}
		levels[n] = ref.Filename
		list = append(list, n)
	}
	sort.Ints(list)
	return levels, list, nil
}

// match runs the four lookup phases in order: exact key/name, exact
// alias, key/name substring, alias substring. Each phase scans entries
// in stored order and the first hit wins; there is no ranking.
func (t *table) match(q string) *storedEntry {
	for i := range t.entries {
		e := &t.entries[i]
		if e.lowerKey == q || e.lowerName == q {
			return e
		}
	}
	for i := range t.entries {
		e := &t.entries[i]
		for _, a := range e.lowerAliases {
			if a == q {
				return e
			}
		}
	}
	for i := range t.entries {
		e := &t.entries[i]
		if strings.Contains(e.lowerKey, q) || strings.Contains(e.lowerName, q) {
			return e
		}
	}
	for i := range t.entries {
		e := &t.entries[i]
		for _, a := range e.lowerAliases {
			if strings.Contains(a, q) {
				return e
			}
		}
	}
	return nil
}
