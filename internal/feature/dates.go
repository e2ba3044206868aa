package feature

import (
	"fmt"
	"strings"
	"time"

	"github.com/evcraddock/parcelprep/internal/table"
)

// dateLayouts are tried in order when parsing date strings.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"2006/01/02",
}

// ParseDate parses a calendar date in any of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// splitDate replaces column c with <c>_month and <c>_year integer columns.
// Missing dates become MissingSentinel in both rather than being read as a
// timestamp, so they stay distinguishable from real dates.
func splitDate(t *table.Table, c string) (*table.Table, error) {
	values, err := t.Column(c)
	if err != nil {
		return nil, err
	}

	months := make([]table.Value, len(values))
	years := make([]table.Value, len(values))
	for i, v := range values {
		var d time.Time
		switch v.Kind() {
		case table.MissingKind:
			months[i] = table.Int(MissingSentinel)
			years[i] = table.Int(MissingSentinel)
			continue
		case table.DateKind:
			d, _ = v.Time()
		case table.StringKind:
			d, err = ParseDate(v.Text())
			if err != nil {
				return nil, &DateParseError{Column: c, Row: i, Value: v.Text()}
			}
		default:
			return nil, &DateParseError{Column: c, Row: i, Value: v.Text()}
		}
		months[i] = table.Int(int64(d.Month()))
		years[i] = table.Int(int64(d.Year()))
	}

	out, err := t.Drop(c)
	if err != nil {
		return nil, err
	}
	if err := out.AddColumn(c+"_month", months); err != nil {
		return nil, err
	}
	if err := out.AddColumn(c+"_year", years); err != nil {
		return nil, err
	}
	return out, nil
}
