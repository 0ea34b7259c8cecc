package parquetcore

import (
	"github.com/pkg/errors"

	"github.com/go-columnar/parquetcore/format"
)

// RowGroup is a reader bound to one row group of a File.
type RowGroup struct {
	file *File
	rg   *format.RowGroup
}

// NumRows reports the row count of this row group.
func (rg *RowGroup) NumRows() int64 {
	return rg.rg.NumRows
}

// NumColumns reports the column chunk count of this row group.
func (rg *RowGroup) NumColumns() int {
	return len(rg.rg.Columns)
}

// Physical enumerates the Go types ReadColumn and ReadColumnWithLevels may
// be instantiated with. It mirrors the Parquet physical type set: bool,
// int32, int64, a 12-byte INT96, float32, float64, and []byte for both
// BYTE_ARRAY and FIXED_LEN_BYTE_ARRAY.
type Physical interface {
	bool | int32 | int64 | [12]byte | float32 | float64 | []byte
}

// ReadColumn decodes every non-null value of column columnIndex across all
// pages of this row group, in row order. Go has no generic methods, so this
// and ReadColumnWithLevels are free functions over *RowGroup rather than
// methods.
func ReadColumn[T Physical](rg *RowGroup, columnIndex int) ([]T, error) {
	values, _, _, err := readColumnRaw(rg, columnIndex)
	if err != nil {
		return nil, err
	}
	typed, ok := values.([]T)
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "column %d holds %T, requested %T", columnIndex, values, typed)
	}
	return typed, nil
}

// ReadColumnWithLevels is ReadColumn plus the decoded definition and
// repetition level streams, for callers reconstructing null slots and
// repeated/nested structure themselves. The values are the same compacted
// non-null array ReadColumn returns. Beyond the single-level LIST/MAP
// reassembly of ReadListColumn and ReadMapColumn, this package performs no
// nested assembly of its own.
func ReadColumnWithLevels[T Physical](rg *RowGroup, columnIndex int) (values []T, defLevels, repLevels []uint16, err error) {
	raw, def, rep, err := readColumnRaw(rg, columnIndex)
	if err != nil {
		return nil, nil, nil, err
	}
	typed, ok := raw.([]T)
	if !ok {
		return nil, nil, nil, errors.Wrapf(ErrTypeMismatch, "column %d holds %T, requested %T", columnIndex, raw, typed)
	}
	return typed, def, rep, nil
}

// ReadOptionalColumn decodes column columnIndex into one slot per row,
// length NumRows, interleaving a nil at every row whose definition level
// falls short of the leaf's maximum (spec.md section 4.6(f)). Unlike
// ReadColumn, which returns only the compacted non-null values, this is the
// entry point for an OPTIONAL leaf where the caller needs the full N-length
// materialisation (a present-or-absent value per row) rather than the raw
// level streams. It rejects columns nested under a REPEATED ancestor, whose
// slots are list elements rather than one-per-row; use ReadListColumn there.
func ReadOptionalColumn[T Physical](rg *RowGroup, columnIndex int) ([]*T, error) {
	raw, defLevels, _, err := readColumnRaw(rg, columnIndex)
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
	lf := rg.file.leaves[columnIndex]
	if lf.maxRep > 0 {
		return nil, errors.Wrapf(ErrUnsupportedFeature, "column %d is repeated; use ReadListColumn instead", columnIndex)
	}
	return interleaveNulls(values, defLevels, lf.maxDef)
}

// interleaveNulls expands a compacted non-null value array back out to one
// slot per definition level, consuming a value wherever the definition
// level reaches maxDef and leaving a nil everywhere else. A required column
// (maxDef == 0) carries no definition levels at all, since every slot is
// necessarily present.
func interleaveNulls[T any](values []T, defLevels []uint16, maxDef int) ([]*T, error) {
	if maxDef == 0 {
		out := make([]*T, len(values))
		for i := range values {
			v := values[i]
			out[i] = &v
		}
		return out, nil
	}

	out := make([]*T, len(defLevels))
	vi := 0
	for i, d := range defLevels {
		if int(d) == maxDef {
			if vi >= len(values) {
				return nil, errors.Wrap(ErrDecode, "definition-level/value stream desync: ran out of values")
			}
			v := values[vi]
			out[i] = &v
			vi++
		}
	}
	if vi != len(values) {
		return nil, errors.Wrap(ErrDecode, "definition-level/value stream desync: leftover values")
	}
	return out, nil
}
