package proof

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"proofsite/internal/logging"
)

// Decode parses a single theorem record from JSON. Optional fields are
// defaulted; unknown status or hypothesis type values are errors, matching
// the wire format contract.
func Decode(data []byte) (*Theorem, error) {
	var t Theorem
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse theorem JSON: %w", err)
	}

	t.applyDefaults()

	if !t.Status.IsValid() {
		return nil, fmt.Errorf("theorem %q: unknown status %q", t.ID, t.Status)
	}
	for _, h := range t.Hypotheses {
		if !h.Type.IsValid() {
			return nil, fmt.Errorf("theorem %q: hypothesis %q has unknown type %q", t.ID, h.Name, h.Type)
		}
	}

	return &t, nil
}

// Encode marshals a theorem back to indented JSON, the same shape Decode reads.
func Encode(t *Theorem) ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal theorem %q: %w", t.ID, err)
	}
	return data, nil
}

// LoadFile reads and decodes one theorem record from a JSON file.
func LoadFile(path string) (*Theorem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read proof file %s: %w", path, err)
	}

	t, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.LoaderDebug("loaded theorem %q from %s", t.ID, path)
	return t, nil
}

// LoadDir loads every *.json file under dir into a Registry. Files are read
// in lexical order so the site index is stable across runs.
func LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read proofs directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	reg := NewRegistry()
	for _, name := range files {
		t, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if err := reg.Add(t); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	logging.Loader("loaded %d theorems from %s", reg.Len(), dir)
	return reg, nil
}

// ExportFile writes a theorem as indented JSON, creating parent directories.
func ExportFile(t *Theorem, path string) error {
	data, err := Encode(t)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	logging.Loader("exported theorem %q to %s", t.ID, path)
	return nil
}
