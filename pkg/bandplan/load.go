package bandplan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk layout of a table. JSON documents decode the
// same way.
type fileFormat struct {
	Name  string        `yaml:"name"`
	Bands []interface{} `yaml:"bands"`
}

// Decode parses a table document
func Decode(data []byte) (*Table, []error, error) {
	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, nil, fmt.Errorf("failed to parse band plan: %w", err)
	}
	if ff.Name == "" {
		return nil, nil, ErrNoName
	}

	t, skipped := DecodeTable(ff.Name, ff.Bands)
	return t, skipped, nil
}

// LoadFile reads a table from a YAML or JSON file
func LoadFile(path string) (*Table, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read band plan: %w", err)
	}
	t, skipped, err := Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return t, skipped, nil
}

// LoadDir loads every .yaml, .yml and .json file of a directory into the
// registry, in file name order. Files that fail to load are reported along
// with skipped bands; loading continues with the next file.
func (r *Registry) LoadDir(dir string) ([]error, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read band plan directory: %w", err)
	}

	var names []string
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var problems []error
	for _, name := range names {
		t, skipped, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			problems = append(problems, err)
			continue
		}
		problems = append(problems, skipped...)
		if err := r.Add(t); err != nil {
			problems = append(problems, err)
		}
	}

	return problems, nil
}
