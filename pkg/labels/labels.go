// Package labels loads the external flood-label tables (S1list.json /
// S2list.json) and resolves the boolean flood flag for an image by matching
// its base name against the table keys.
package labels

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Table is the immutable base-name -> flooding lookup shared read-only by all
// workers.
type Table struct {
	flags map[string]bool

	// keys is kept sorted so substring lookups are deterministic
	keys []string
}

// Load parses the given label files and merges their entries into one table.
// Files that do not exist are skipped; a file that exists but cannot be read
// or parsed is a fatal error for the run.
func Load(paths ...string) (*Table, error) {
	t := &Table{flags: make(map[string]bool)}

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read label file %s: %w", path, err)
		}
		var root interface{}
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("failed to parse label file %s: %w", path, err)
		}
		collect(root, t.flags)
	}

	t.keys = make([]string, 0, len(t.flags))
	for k := range t.flags {
		t.keys = append(t.keys, k)
	}
	sort.Strings(t.keys)
	return t, nil
}

// collect walks the decoded JSON tree and records every object that carries a
// "filename" entry, pairing it with the sibling "FLOODING" flag (false when
// absent). The file extension is stripped from the recorded name.
func collect(node interface{}, flags map[string]bool) {
	switch v := node.(type) {
	case map[string]interface{}:
		if name, ok := v["filename"].(string); ok && name != "" {
			flooding, _ := v["FLOODING"].(bool)
			flags[stripExtension(strings.TrimSpace(name))] = flooding
		}
		for _, child := range v {
			collect(child, flags)
		}
	case []interface{}:
		for _, child := range v {
			collect(child, flags)
		}
	}
}

// Len returns the number of label entries.
func (t *Table) Len() int {
	return len(t.flags)
}

// Lookup resolves the flood flag for an image base name. The table key has to
// appear as a substring of the base name; with several matching keys the
// lexicographically smallest wins.
func (t *Table) Lookup(baseName string) (flooding, ok bool) {
	for _, key := range t.keys {
		if strings.Contains(baseName, key) {
			return t.flags[key], true
		}
	}
	return false, false
}

func stripExtension(name string) string {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return name
	}
	return name[:dot]
}
