package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/parcelprep/internal/schema"
	"github.com/evcraddock/parcelprep/internal/table"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSchemaSummary prints a single stored schema in text format.
func printSchemaSummary(w io.Writer, r *schema.Record) {
	fmt.Fprintf(w, "Schema %s\n", r.Name)
	fmt.Fprintf(w, "  ID:          %s\n", r.ID)
	fmt.Fprintf(w, "  Created:     %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "  Seed:        %d\n", r.Seed)
	fmt.Fprintf(w, "  Columns:     %d\n", len(r.Schema.Columns))
	fmt.Fprintf(w, "  Outputs:     %d\n", len(r.Schema.OutputColumns()))
	if len(r.Schema.Categorical) > 0 {
		fmt.Fprintf(w, "  Categorical: %s\n", truncate(strings.Join(r.Schema.Categorical, ", "), 60))
	}
	if len(r.Schema.DropColumns) > 0 {
		fmt.Fprintf(w, "  Dropped:     %s\n", truncate(strings.Join(r.Schema.DropColumns, ", "), 60))
	}
	if len(r.Schema.DateColumns) > 0 {
		fmt.Fprintf(w, "  Dates:       %s\n", strings.Join(r.Schema.DateColumns, ", "))
	}
	for _, s := range r.Sources {
		fmt.Fprintf(w, "  Source:      %s (%s rows)\n", s.Dataset, formatCount(int64(s.Rows)))
	}
}

// printSchemaTable prints stored schemas as a formatted table.
func printSchemaTable(w io.Writer, recs []*schema.Record) error {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No schemas found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "NAME\tCOLUMNS\tCATEGORICAL\tDATES\tCREATED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "----\t-------\t-----------\t-----\t-------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, r := range recs {
		dates := "-"
		if len(r.Schema.DateColumns) > 0 {
			dates = strings.Join(r.Schema.DateColumns, ",")
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n",
			truncate(r.Name, 30), len(r.Schema.Columns), len(r.Schema.Categorical),
			truncate(dates, 30), r.CreatedAt.Format("2006-01-02 15:04")); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(w, "\nTotal: %d schemas\n", len(recs))
	return nil
}

// tableSummary describes a table for JSON output.
type tableSummary struct {
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

func summarize(t *table.Table) tableSummary {
	return tableSummary{Rows: t.Len(), Columns: t.Columns()}
}

// writeTable writes t as CSV to path, or to w when path is empty or "-".
func writeTable(w io.Writer, path string, t *table.Table) (err error) {
	if path == "" || path == "-" {
		return table.WriteCSV(w, t)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	return table.WriteCSV(f, t)
}

// readTable reads a CSV table from path.
func readTable(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	t, err := table.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// formatCount formats an integer with thousands separators.
func formatCount(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
