// Package dataset loads, joins and deduplicates the transaction and property
// tables that feed the feature transformer.
package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evcraddock/parcelprep/internal/table"
)

// ErrNotFound is returned when a dataset name does not resolve to a file.
var ErrNotFound = errors.New("dataset not found")

const fileExt = ".csv"

// Store reads named datasets from a directory of CSV files.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the file path a dataset name resolves to.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// Read loads the named dataset.
func (s *Store) Read(name string) (*table.Table, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: invalid name %q", ErrNotFound, name)
	}

	path := s.Path(name)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("closing dataset file", "path", path, "error", cerr)
		}
	}()

	t, err := table.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	slog.Debug("read dataset",
		"name", name,
		"rows", t.Len(),
		"columns", t.Width(),
	)

	return t, nil
}

// Names lists the datasets available in the store, sorted.
func (s *Store) Names() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: directory %s", ErrNotFound, s.dir)
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), fileExt))
	}
	sort.Strings(names)
	return names, nil
}
