package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV reads a delimited table with a header row, inferring each cell's type.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("reading header: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	t, err := New(header...)
	if err != nil {
		return nil, fmt.Errorf("parsing header: %w", err)
	}

	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		row := make([]Value, len(rec))
		for j, s := range rec {
			row[j] = Parse(s)
		}
		t.rows = append(t.rows, row)
	}

	return t, nil
}

// WriteCSV writes the table with a header row. Missing cells are written empty.
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	rec := make([]string, len(t.columns))
	for i, row := range t.rows {
		for j, v := range row {
			rec[j] = v.Text()
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
