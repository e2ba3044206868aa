package table

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		text string
	}{
		{"", MissingKind, ""},
		{"NA", MissingKind, ""},
		{"NaN", MissingKind, ""},
		{"null", MissingKind, ""},
		{"42", IntKind, "42"},
		{"-7", IntKind, "-7"},
		{"0.25", FloatKind, "0.25"},
		{"1e3", FloatKind, "1000"},
		{"Y", StringKind, "Y"},
		{"2016-03-15", StringKind, "2016-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v := Parse(tt.in)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.text, v.Text())
		})
	}
}

func TestValueKey(t *testing.T) {
	assert.Equal(t, Int(3).Key(), Float(3).Key(), "int and float keys should match")
	assert.NotEqual(t, Int(3).Key(), String("3").Key())
	assert.Equal(t, Null().Key(), Null().Key())
}

func TestDateValue(t *testing.T) {
	d := Date(time.Date(2016, time.March, 15, 0, 0, 0, 0, time.UTC))
	got, ok := d.Time()
	require.True(t, ok)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, "2016-03-15", d.Text())

	_, ok = Int(1).Time()
	assert.False(t, ok)
}

func TestNewDuplicateColumn(t *testing.T) {
	_, err := New("a", "b", "a")
	require.Error(t, err)
}

func TestAppendWidth(t *testing.T) {
	tbl := mustTable(t, "a", "b")
	require.NoError(t, tbl.Append(Int(1), Int(2)))
	require.Error(t, tbl.Append(Int(1)))
	assert.Equal(t, 1, tbl.Len())
}

func TestDropAndSelect(t *testing.T) {
	tbl := mustTable(t, "a", "b", "c")
	require.NoError(t, tbl.Append(Int(1), String("x"), Float(0.5)))

	dropped, err := tbl.Drop("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, dropped.Columns())
	assert.Equal(t, 3, tbl.Width(), "drop must not mutate the source")

	sel, err := tbl.Select("c", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, sel.Columns())
	assert.Equal(t, Float(0.5), sel.Row(0)[0])

	_, err = tbl.Drop("missing")
	assert.True(t, errors.Is(err, ErrColumnNotFound))

	var cnf *ColumnNotFoundError
	require.True(t, errors.As(err, &cnf))
	assert.Equal(t, "missing", cnf.Column)
}

func TestPop(t *testing.T) {
	tbl := mustTable(t, "id", "logerror")
	require.NoError(t, tbl.Append(Int(1), Float(0.1)))
	require.NoError(t, tbl.Append(Int(2), Float(-0.2)))

	rest, col, err := tbl.Pop("logerror")
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, rest.Columns())
	assert.Equal(t, []Value{Float(0.1), Float(-0.2)}, col)

	_, _, err = tbl.Pop("nope")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestAddColumn(t *testing.T) {
	tbl := mustTable(t, "a")
	require.NoError(t, tbl.Append(Int(1)))
	require.NoError(t, tbl.Append(Int(2)))

	require.NoError(t, tbl.AddColumn("b", []Value{Int(3), Int(4)}))
	assert.Equal(t, Int(4), tbl.Value(1, "b"))

	assert.Error(t, tbl.AddColumn("b", []Value{Int(0), Int(0)}), "duplicate")
	assert.Error(t, tbl.AddColumn("c", []Value{Int(0)}), "short column")
}

func TestIsCategorical(t *testing.T) {
	tbl := mustTable(t, "num", "str", "empty")
	require.NoError(t, tbl.Append(Int(1), Null(), Null()))
	require.NoError(t, tbl.Append(Float(2), String("Y"), Null()))

	assert.False(t, tbl.IsCategorical("num"))
	assert.True(t, tbl.IsCategorical("str"))
	assert.False(t, tbl.IsCategorical("empty"))
	assert.False(t, tbl.IsCategorical("absent"))
}

func TestFloat64s(t *testing.T) {
	tbl := mustTable(t, "a", "b")
	require.NoError(t, tbl.Append(Int(1), Null()))

	m, err := tbl.Float64s()
	require.NoError(t, err)
	assert.Equal(t, 1.0, m[0][0])
	assert.True(t, math.IsNaN(m[0][1]))

	require.NoError(t, tbl.Append(String("x"), Int(0)))
	_, err = tbl.Float64s()
	assert.Error(t, err)
}

func TestReadWriteCSV(t *testing.T) {
	in := "parcelid,logerror,transactiondate,flag\n" +
		"10754147,0.0276,2016-01-01,\n" +
		"10759547,-0.1684,2016-01-02,Y\n"

	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, IntKind, tbl.Value(0, "parcelid").Kind())
	assert.Equal(t, FloatKind, tbl.Value(1, "logerror").Kind())
	assert.Equal(t, StringKind, tbl.Value(0, "transactiondate").Kind())
	assert.True(t, tbl.Value(0, "flag").IsMissing())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	assert.Equal(t, in, buf.String())
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty input", ""},
		{"ragged row", "a,b\n1\n"},
		{"duplicate header", "a,a\n1,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

// mustTable creates an empty table or fails the test.
func mustTable(t *testing.T, columns ...string) *Table {
	t.Helper()
	tbl, err := New(columns...)
	require.NoError(t, err)
	return tbl
}
