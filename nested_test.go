package parquetcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegroupByRepetitionSingleLevelLists(t *testing.T) {
	// Three rows: [1,2], [], [3]. maxDef=1 (list element is non-null),
	// def=0 marks an empty/absent list slot.
	values := []int32{1, 2, 3}
	defLevels := []uint16{1, 1, 0, 1}
	repLevels := []uint16{0, 1, 0, 0}

	rows, consumed, err := regroupByRepetition(values, defLevels, repLevels, 1)
	require.NoError(t, err)
	require.Equal(t, 3, consumed)
	require.Equal(t, [][]int32{{1, 2}, nil, {3}}, rows)
}

func TestRegroupByRepetitionDetectsDesync(t *testing.T) {
	values := []int32{1}
	defLevels := []uint16{1, 1}
	repLevels := []uint16{0, 0}

	_, _, err := regroupByRepetition(values, defLevels, repLevels, 1)
	require.ErrorIs(t, err, ErrDecode)
}
