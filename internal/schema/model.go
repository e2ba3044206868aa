// Package schema persists frozen feature schemas so a transformer fitted in
// one run can be restored in another.
package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/evcraddock/parcelprep/internal/feature"
)

// Source records a dataset a schema was fitted on.
type Source struct {
	Dataset string `json:"dataset"`
	Rows    int    `json:"rows"`
}

// Record is a named, stored schema.
type Record struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Seed      uint64         `json:"seed"`
	Schema    feature.Schema `json:"schema"`
	Sources   []Source       `json:"sources,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Transformer restores a fitted transformer from the record.
func (r *Record) Transformer() *feature.Transformer {
	return feature.Restore(r.Schema)
}

// scanRecord scans a record from a database row.
func scanRecord(row interface{ Scan(...interface{}) error }) (*Record, error) {
	var r Record
	var seed int64
	var drop, dates, categorical, columns string

	err := row.Scan(&r.ID, &r.Name, &seed, &drop, &dates, &categorical, &columns, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	r.Seed = uint64(seed)

	fields := []struct {
		name string
		raw  string
		dst  *[]string
	}{
		{"drop_columns", drop, &r.Schema.DropColumns},
		{"date_columns", dates, &r.Schema.DateColumns},
		{"categorical", categorical, &r.Schema.Categorical},
		{"columns", columns, &r.Schema.Columns},
	}
	for _, f := range fields {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", f.name, err)
		}
	}

	return &r, nil
}

// encodeList renders a column list for storage. A nil list is stored as [].
func encodeList(cols []string) (string, error) {
	if cols == nil {
		cols = []string{}
	}
	b, err := json.Marshal(cols)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
