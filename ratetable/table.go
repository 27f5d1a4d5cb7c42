/*
Package ratetable provides clamped lookup tables over small integer key
spaces.

PURPOSE:
  The published legal tables the compensation engine consults
  (consolation money by treatment duration, loss rate by disability
  grade) are small, sparse, integer-keyed tables with a fixed boundary
  convention: keys outside the defined range are clamped to the nearest
  defined key, never interpolated and never extended. This package
  implements that convention once, domain-agnostically; the domain
  package supplies the data and interprets the values.

KEY CONCEPTS IN THIS FILE:
  - Table1D: ordered single-key table with flat extrapolation at both ends
  - Table2D: row/column table (hospital x outpatient months) where each
    row defines its own column range - the published matrix is
    triangular, so the column clamp is per-row
  - Lookup results carry the clamp decision so callers can surface it
    in the human-readable derivation

DESIGN PRINCIPLES:
  1. Immutability: tables are built once and never mutated; lookups are
     safe for concurrent use without locking
  2. Clamping is flat: lookup(below min) == lookup(min),
     lookup(above max) == lookup(max)
  3. Validation errors (negative or undefined 1D keys) are errors;
     clamping is not - a clamped lookup is a valid answer with a note

USAGE:
  table := ratetable.New1D(map[int]int64{1: 2800, 2: 2370, ...})
  res, err := table.Lookup(16)  // res.Value == value at 14, res.Clamped

SEE ALSO:
  - compensation/tables.go: the published data loaded into these tables
*/
package ratetable

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNegativeKey is returned for lookup keys below zero. Published
	// tables have no negative key space; a negative key is bad input,
	// not a clampable boundary case.
	ErrNegativeKey = errors.New("negative table key")

	// ErrEmptyTable is returned when a lookup hits a table with no rows.
	ErrEmptyTable = errors.New("empty table")
)

// =============================================================================
// ONE-DIMENSIONAL TABLE
// =============================================================================

// Table1D maps an integer key to an integral value in the table's
// native unit (man-yen, basis points - the table doesn't care).
type Table1D struct {
	keys   []int
	values map[int]int64
}

// Lookup1D is the outcome of a 1D lookup.
type Lookup1D struct {
	Value   int64
	Key     int  // the key actually used after clamping
	Clamped bool // true when Key differs from the requested key
	Note    string
}

// New1D builds an immutable table from a key/value map.
func New1D(values map[int]int64) *Table1D {
	keys := make([]int, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	copied := make(map[int]int64, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Table1D{keys: keys, values: copied}
}

// MinKey returns the smallest defined key.
func (t *Table1D) MinKey() int { return t.keys[0] }

// MaxKey returns the largest defined key.
func (t *Table1D) MaxKey() int { return t.keys[len(t.keys)-1] }

// Lookup resolves a key with flat extrapolation at both boundaries.
func (t *Table1D) Lookup(key int) (Lookup1D, error) {
	if len(t.keys) == 0 {
		return Lookup1D{}, ErrEmptyTable
	}
	if key < 0 {
		return Lookup1D{}, fmt.Errorf("%w: %d", ErrNegativeKey, key)
	}

	if v, ok := t.values[key]; ok {
		return Lookup1D{Value: v, Key: key}, nil
	}
	if key < t.MinKey() {
		min := t.MinKey()
		return Lookup1D{
			Value:   t.values[min],
			Key:     min,
			Clamped: true,
			Note:    fmt.Sprintf("key %d below table minimum; value at %d substituted", key, min),
		}, nil
	}
	if key > t.MaxKey() {
		max := t.MaxKey()
		return Lookup1D{
			Value:   t.values[max],
			Key:     max,
			Clamped: true,
			Note:    fmt.Sprintf("key %d above table maximum; value at %d substituted", key, max),
		}, nil
	}
	// Inside the key range but not defined: interior gaps are undefined
	// keys, same error class as negative input.
	return Lookup1D{}, fmt.Errorf("undefined table key %d", key)
}

// =============================================================================
// TWO-DIMENSIONAL TABLE (triangular rows)
// =============================================================================

// Table2D maps (row, column) to an integral value. Rows may define
// different column ranges; the published consolation matrix is
// triangular, with long combined durations absent.
type Table2D struct {
	rows   map[int]map[int]int64
	maxRow int
	rowMax map[int]int // per-row maximum defined column
}

// Lookup2D is the outcome of a 2D lookup.
type Lookup2D struct {
	Value      int64
	Row, Col   int // keys actually used after clamping
	RowClamped bool
	ColClamped bool
	Found      bool // false when no cell (direct or fallback) exists
	Note       string
}

// New2D builds an immutable table from row -> column -> value data.
func New2D(rows map[int]map[int]int64) *Table2D {
	copied := make(map[int]map[int]int64, len(rows))
	rowMax := make(map[int]int, len(rows))
	maxRow := 0
	for r, cols := range rows {
		cc := make(map[int]int64, len(cols))
		max := 0
		for c, v := range cols {
			cc[c] = v
			if c > max {
				max = c
			}
		}
		copied[r] = cc
		rowMax[r] = max
		if r > maxRow {
			maxRow = r
		}
	}
	return &Table2D{rows: copied, maxRow: maxRow, rowMax: rowMax}
}

// MaxRow returns the largest defined row key.
func (t *Table2D) MaxRow() int { return t.maxRow }

// MaxColForRow returns the largest defined column in a row.
func (t *Table2D) MaxColForRow(row int) int { return t.rowMax[row] }

// Lookup resolves (row, col) under the published convention:
//  1. clamp row to [0, MaxRow]
//  2. clamp col to [0, max column defined for that row]
//  3. return the cell if present
//  4. sparse fallback: row 0 falls back to (0, col), col 0 falls back
//     to (row, 0); otherwise no entry (Found == false, Value 0)
func (t *Table2D) Lookup(row, col int) (Lookup2D, error) {
	if len(t.rows) == 0 {
		return Lookup2D{}, ErrEmptyTable
	}

	res := Lookup2D{Row: row, Col: col}
	if row < 0 {
		res.Row = 0
	}
	if row > t.maxRow {
		res.Row = t.maxRow
	}
	res.RowClamped = res.Row != row

	max := t.rowMax[res.Row]
	if col < 0 {
		res.Col = 0
	}
	if col > max {
		res.Col = max
	}
	res.ColClamped = res.Col != col
	if res.RowClamped || res.ColClamped {
		res.Note = fmt.Sprintf("entry (%d, %d) outside table; (%d, %d) substituted", row, col, res.Row, res.Col)
	}

	if v, ok := t.cell(res.Row, res.Col); ok {
		res.Value = v
		res.Found = true
		return res, nil
	}
	if res.Row == 0 {
		if v, ok := t.cell(0, res.Col); ok {
			res.Value = v
			res.Found = true
			return res, nil
		}
	}
	if res.Col == 0 {
		if v, ok := t.cell(res.Row, 0); ok {
			res.Value = v
			res.Found = true
			return res, nil
		}
	}
	res.Note = fmt.Sprintf("no table entry for (%d, %d)", res.Row, res.Col)
	return res, nil
}

func (t *Table2D) cell(row, col int) (int64, bool) {
	cols, ok := t.rows[row]
	if !ok {
		return 0, false
	}
	v, ok := cols[col]
	return v, ok
}

// Scaled derives a new table with every cell multiplied by num/den and
// rounded half-up in the table's native unit. Used for the
// reduced-table variant (no objective findings), which is published as
// 2/3-scale of the primary table.
func (t *Table2D) Scaled(num, den int64) *Table2D {
	rows := make(map[int]map[int]int64, len(t.rows))
	for r, cols := range t.rows {
		cc := make(map[int]int64, len(cols))
		for c, v := range cols {
			cc[c] = (v*num + den/2) / den
		}
		rows[r] = cc
	}
	return New2D(rows)
}
