package parquetcore

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-columnar/parquetcore/format"
)

func TestInterleaveNullsRequiredColumnHasNoNulls(t *testing.T) {
	out, err := interleaveNulls([]int32{1, 2, 3}, nil, 0)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i, v := range []int32{1, 2, 3} {
		require.NotNil(t, out[i])
		require.Equal(t, v, *out[i])
	}
}

func TestInterleaveNullsOptionalColumnScenario6(t *testing.T) {
	// spec.md section 8 scenario 6: passenger_count -> [Some(1), Some(1), Some(1)],
	// all three rows present; absent slots are covered by
	// TestInterleaveNullsMarksAbsentSlotsNil.
	values := []int64{1, 1, 1}
	defLevels := []uint16{1, 1, 1}
	out, err := interleaveNulls(values, defLevels, 1)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for _, v := range out {
		require.NotNil(t, v)
		require.EqualValues(t, 1, *v)
	}
}

func TestInterleaveNullsMarksAbsentSlotsNil(t *testing.T) {
	values := []int64{7, 9}
	defLevels := []uint16{1, 0, 1}
	out, err := interleaveNulls(values, defLevels, 1)
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.NotNil(t, out[0])
	require.EqualValues(t, 7, *out[0])
	require.Nil(t, out[1])
	require.NotNil(t, out[2])
	require.EqualValues(t, 9, *out[2])
}

func TestInterleaveNullsDetectsDesync(t *testing.T) {
	values := []int64{1}
	defLevels := []uint16{1, 1}
	_, err := interleaveNulls(values, defLevels, 1)
	require.ErrorIs(t, err, ErrDecode)
}

func TestReadOptionalColumnRejectsRepeatedLeaf(t *testing.T) {
	f := &File{
		ra:     bytes.NewReader([]byte{0}),
		leaves: []leaf{{maxDef: 1, maxRep: 1}},
	}
	rg := &RowGroup{
		file: f,
		rg: &format.RowGroup{Columns: []format.ColumnChunk{
			{MetaData: &format.ColumnMetaData{Type: format.TypeInt64, DataPageOffset: 0}},
		}},
	}
	_, err := ReadOptionalColumn[int64](rg, 0)
	require.ErrorIs(t, err, ErrUnsupportedFeature)
}
