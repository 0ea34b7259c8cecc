package parquetcore

import (
	"github.com/pkg/errors"
)

// ReadListColumn reconstructs a repeated leaf column into one slice per row,
// using its decoded definition/repetition levels: repetition level 0 starts
// a new row, and a value is consumed from the compacted value array only at
// slots where the definition level reaches the leaf's maximum (spec.md
// section 4.6(f), applied one level up by this helper). It assumes a single
// level of repetition (the common LIST/MAP case); a leaf nested under more
// than one REPEATED ancestor needs the raw level arrays from
// ReadColumnWithLevels instead.
func ReadListColumn[T Physical](rg *RowGroup, columnIndex int) ([][]T, error) {
	raw, defLevels, repLevels, err := readColumnRaw(rg, columnIndex)
	if err != nil {
		return nil, err
	}
	values, ok := raw.([]T)
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "column %d holds %T, requested %T", columnIndex, raw, values)
	}
	if columnIndex >= len(rg.file.leaves) {
		return nil, errors.Wrapf(ErrMalformedMetadata, "column %d has no schema leaf", columnIndex)
	}
	maxDef := rg.file.leaves[columnIndex].maxDef

	rows, _, err := regroupByRepetition(values, defLevels, repLevels, maxDef)
	return rows, err
}

func regroupByRepetition[T any](values []T, defLevels, repLevels []uint16, maxDef int) ([][]T, int, error) {
	var rows [][]T
	var current []T
	vi := 0
	for i, rep := range repLevels {
		if rep == 0 && i != 0 {
			rows = append(rows, current)
			current = nil
		}
		if len(defLevels) == 0 || int(defLevels[i]) == maxDef {
			if vi >= len(values) {
				return nil, 0, errors.Wrap(ErrDecode, "repetition/value stream desync: ran out of values")
			}
			current = append(current, values[vi])
			vi++
		}
	}
	rows = append(rows, current)
	return rows, vi, nil
}

// MapEntry is one key/value pair of a reconstructed MAP row.
type MapEntry[K, V Physical] struct {
	Key   K
	Value V
}

// ReadMapColumn reconstructs a MAP column from its separately-stored key and
// value leaf columns, which Parquet's three-level MAP encoding guarantees
// share an identical repetition structure (same number of levels, same
// boundaries), into one entry slice per row.
func ReadMapColumn[K, V Physical](rg *RowGroup, keyColumnIndex, valueColumnIndex int) ([][]MapEntry[K, V], error) {
	keys, keyDef, keyRep, err := ReadColumnWithLevels[K](rg, keyColumnIndex)
	if err != nil {
		return nil, err
	}
	values, _, _, err := ReadColumnWithLevels[V](rg, valueColumnIndex)
	if err != nil {
		return nil, err
	}
	if len(keys) != len(values) {
		return nil, errors.Wrapf(ErrMalformedMetadata, "map columns %d and %d disagree on entry count (%d vs %d)", keyColumnIndex, valueColumnIndex, len(keys), len(values))
	}

	maxDef := rg.file.leaves[keyColumnIndex].maxDef
	entries := make([]MapEntry[K, V], len(keys))
	for i := range keys {
		entries[i] = MapEntry[K, V]{Key: keys[i], Value: values[i]}
	}

	rows, _, err := regroupByRepetition(entries, keyDef, keyRep, maxDef)
	return rows, err
}
