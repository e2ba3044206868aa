package schema

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/evcraddock/parcelprep/internal/feature"
)

// ErrNotFound is returned when no schema has the requested name.
var ErrNotFound = errors.New("schema not found")

// Repository provides storage for named schemas.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a schema repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, name, seed, drop_columns, date_columns, categorical, columns, created_at`

// Save stores s under name, replacing any schema already saved with that name.
func (r *Repository) Save(name string, s feature.Schema, seed uint64, sources []Source) (*Record, error) {
	if name == "" {
		return nil, errors.New("schema name is required")
	}

	lists := make([]string, 0, 4)
	for _, cols := range [][]string{s.DropColumns, s.DateColumns, s.Categorical, s.Columns} {
		enc, err := encodeList(cols)
		if err != nil {
			return nil, fmt.Errorf("encoding schema: %w", err)
		}
		lists = append(lists, enc)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec("DELETE FROM schemas WHERE name = ?", name); err != nil {
		return nil, fmt.Errorf("replacing schema %q: %w", name, err)
	}

	id := uuid.NewString()
	_, err = tx.Exec(
		`INSERT INTO schemas (id, name, seed, drop_columns, date_columns, categorical, columns)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, int64(seed), lists[0], lists[1], lists[2], lists[3],
	)
	if err != nil {
		return nil, fmt.Errorf("inserting schema: %w", err)
	}

	for _, src := range sources {
		_, err := tx.Exec(
			"INSERT INTO schema_sources (schema_id, dataset, row_count) VALUES (?, ?, ?)",
			id, src.Dataset, src.Rows,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting source %s: %w", src.Dataset, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing schema: %w", err)
	}

	return r.GetByName(name)
}

// GetByName returns the schema saved under name.
func (r *Repository) GetByName(name string) (*Record, error) {
	query := fmt.Sprintf("SELECT %s FROM schemas WHERE name = ?", selectColumns)
	rec, err := scanRecord(r.db.QueryRow(query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("querying schema %q: %w", name, err)
	}

	rec.Sources, err = r.sources(rec.ID)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns all saved schemas, newest first.
func (r *Repository) List() (recs []*Record, err error) {
	query := fmt.Sprintf("SELECT %s FROM schemas ORDER BY created_at DESC, name", selectColumns)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing schemas: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning schema: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schemas: %w", err)
	}

	return recs, nil
}

// Delete removes the schema saved under name.
func (r *Repository) Delete(name string) error {
	result, err := r.db.Exec("DELETE FROM schemas WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting schema: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// sources returns the datasets recorded for a schema.
func (r *Repository) sources(id string) (srcs []Source, err error) {
	rows, err := r.db.Query(
		"SELECT dataset, row_count FROM schema_sources WHERE schema_id = ? ORDER BY dataset", id,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var s Source
		if err := rows.Scan(&s.Dataset, &s.Rows); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		srcs = append(srcs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}
	return srcs, nil
}
