package parquetcore

import (
	"github.com/pkg/errors"

	"github.com/go-columnar/parquetcore/format"
)

// Value is a dynamically-typed column read: exactly one of its fields is
// populated, selected by Kind. FixedLen additionally carries the declared
// byte width (1..16) for FIXED_LEN_BYTE_ARRAY columns (spec.md section 4.7).
type Value struct {
	Kind     format.Type
	FixedLen int

	Bool   []bool
	Int32  []int32
	Int64  []int64
	Int96  [][12]byte
	Float  []float32
	Double []float64
	Bytes  [][]byte
}

// ReadColumnDynamic reads column columnIndex using the physical type
// recorded in its chunk metadata, wrapping the result in the matching Value
// variant without requiring the caller to know the type ahead of time.
func ReadColumnDynamic(rg *RowGroup, columnIndex int) (Value, error) {
	if columnIndex < 0 || columnIndex >= len(rg.rg.Columns) {
		return Value{}, errors.Wrapf(ErrMalformedMetadata, "column index %d out of range [0,%d)", columnIndex, len(rg.rg.Columns))
	}
	chunk := &rg.rg.Columns[columnIndex]
	if chunk.MetaData == nil {
		return Value{}, errors.Wrapf(ErrMalformedMetadata, "column %d missing ColumnMetaData", columnIndex)
	}
	physType := chunk.MetaData.Type

	raw, _, _, err := readColumnRaw(rg, columnIndex)
	if err != nil {
		return Value{}, err
	}

	v := Value{Kind: physType}
	switch physType {
	case format.TypeBoolean:
		v.Bool = raw.([]bool)
	case format.TypeInt32:
		v.Int32 = raw.([]int32)
	case format.TypeInt64:
		v.Int64 = raw.([]int64)
	case format.TypeInt96:
		v.Int96 = raw.([][12]byte)
	case format.TypeFloat:
		v.Float = raw.([]float32)
	case format.TypeDouble:
		v.Double = raw.([]float64)
	case format.TypeByteArray:
		v.Bytes = raw.([][]byte)
	case format.TypeFixedLenByteArray:
		if columnIndex >= len(rg.file.leaves) {
			return Value{}, errors.Wrapf(ErrMalformedMetadata, "column %d has no schema leaf", columnIndex)
		}
		length := 0
		if elem := rg.file.leaves[columnIndex].element; elem.TypeLength != nil {
			length = int(*elem.TypeLength)
		}
		if length < 1 || length > 16 {
			return Value{}, errors.Wrapf(ErrUnsupportedFeature, "FIXED_LEN_BYTE_ARRAY width %d outside 1..16", length)
		}
		v.FixedLen = length
		v.Bytes = raw.([][]byte)
	default:
		return Value{}, errors.Wrapf(ErrUnsupportedFeature, "physical type %s", physType)
	}
	return v, nil
}
