package ratetable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/compensation-engine/ratetable"
)

// =============================================================================
// 1D TABLE
// =============================================================================

func grades() *ratetable.Table1D {
	return ratetable.New1D(map[int]int64{1: 2800, 2: 2370, 13: 180, 14: 110})
}

func TestTable1D_ExactKey(t *testing.T) {
	res, err := grades().Lookup(2)
	require.NoError(t, err)
	assert.Equal(t, int64(2370), res.Value)
	assert.False(t, res.Clamped)
	assert.Empty(t, res.Note)
}

func TestTable1D_ClampsAboveMax(t *testing.T) {
	// GIVEN: a key above the largest defined key
	// THEN: the value at the maximum key is substituted, flagged
	res, err := grades().Lookup(20)
	require.NoError(t, err)
	assert.Equal(t, int64(110), res.Value)
	assert.Equal(t, 14, res.Key)
	assert.True(t, res.Clamped)
	assert.Contains(t, res.Note, "above table maximum")
}

func TestTable1D_ClampsBelowMin(t *testing.T) {
	res, err := grades().Lookup(0)
	require.NoError(t, err)
	assert.Equal(t, int64(2800), res.Value)
	assert.Equal(t, 1, res.Key)
	assert.True(t, res.Clamped)
}

func TestTable1D_ClampMonotonicity(t *testing.T) {
	// Flat extrapolation: every out-of-range key equals the boundary value.
	tbl := grades()
	atMax, err := tbl.Lookup(tbl.MaxKey())
	require.NoError(t, err)
	for _, k := range []int{15, 30, 100} {
		res, err := tbl.Lookup(k)
		require.NoError(t, err)
		assert.Equal(t, atMax.Value, res.Value, "key %d", k)
	}
}

func TestTable1D_NegativeKeyIsError(t *testing.T) {
	_, err := grades().Lookup(-1)
	assert.ErrorIs(t, err, ratetable.ErrNegativeKey)
}

func TestTable1D_UndefinedInteriorKeyIsError(t *testing.T) {
	// 1..14 table with a hole at 3..12 in this fixture
	_, err := grades().Lookup(5)
	assert.Error(t, err)
}

// =============================================================================
// 2D TABLE
// =============================================================================

func triangular() *ratetable.Table2D {
	// Small triangular fixture in the shape of the published matrix:
	// row = hospital months, col = outpatient months.
	return ratetable.New2D(map[int]map[int]int64{
		0: {1: 28, 2: 52, 3: 73},
		1: {0: 53, 1: 77, 2: 98, 3: 115},
		2: {0: 101, 1: 122, 2: 139},
		3: {0: 145, 1: 162},
	})
}

func TestTable2D_ExactPair(t *testing.T) {
	res, err := triangular().Lookup(1, 2)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, int64(98), res.Value)
	assert.False(t, res.RowClamped)
	assert.False(t, res.ColClamped)
}

func TestTable2D_RowClampedToMax(t *testing.T) {
	res, err := triangular().Lookup(10, 1)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, int64(162), res.Value, "row clamps to 3, then (3,1)")
	assert.True(t, res.RowClamped)
	assert.Contains(t, res.Note, "substituted")
}

func TestTable2D_ColClampedPerRow(t *testing.T) {
	// GIVEN: outpatient months beyond the row's triangular edge
	// THEN: the column clamps to that row's own maximum, not the global one
	res, err := triangular().Lookup(3, 9)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, int64(162), res.Value)
	assert.Equal(t, 1, res.Col)
	assert.True(t, res.ColClamped)
}

func TestTable2D_ClampMonotonicity(t *testing.T) {
	tbl := triangular()
	edge, err := tbl.Lookup(3, 1)
	require.NoError(t, err)
	for _, probe := range [][2]int{{3, 2}, {7, 12}, {100, 100}} {
		res, err := tbl.Lookup(probe[0], probe[1])
		require.NoError(t, err)
		assert.Equal(t, edge.Value, res.Value, "probe %v", probe)
	}
}

func TestTable2D_NegativeKeysClampToZero(t *testing.T) {
	res, err := triangular().Lookup(-2, 2)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, int64(52), res.Value, "(0, 2)")
}

func TestTable2D_SparseFallbackToZeroColumn(t *testing.T) {
	// A row with a hole at col 0 is not part of the published data, but
	// the fallback contract must still hold for sparse inputs.
	tbl := ratetable.New2D(map[int]map[int]int64{
		0: {1: 28},
		2: {0: 101},
	})
	res, err := tbl.Lookup(2, 0)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, int64(101), res.Value)
}

func TestTable2D_NoEntry(t *testing.T) {
	tbl := ratetable.New2D(map[int]map[int]int64{
		0: {1: 28},
		2: {1: 122, 2: 139},
	})
	// (1, x) clamps to row 1... row 1 missing entirely means rowMax 0, so
	// col clamps to 0 and no cell nor fallback exists.
	res, err := tbl.Lookup(1, 2)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, int64(0), res.Value)
	assert.Contains(t, res.Note, "no table entry")
}

func TestTable2D_ScaledRoundsHalfUpPerCell(t *testing.T) {
	tbl := ratetable.New2D(map[int]map[int]int64{
		0: {1: 28, 2: 52},
		1: {0: 53},
	})
	scaled := tbl.Scaled(67, 100)

	res, err := scaled.Lookup(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(19), res.Value, "28*0.67 = 18.76 -> 19")

	res, err = scaled.Lookup(1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(36), res.Value, "53*0.67 = 35.51 -> 36")

	res, err = scaled.Lookup(0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(35), res.Value, "52*0.67 = 34.84 -> 35")
}
