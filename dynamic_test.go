package parquetcore

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-columnar/parquetcore/format"
)

func TestReadColumnDynamicRejectsOutOfRangeIndex(t *testing.T) {
	rg := &RowGroup{file: &File{}, rg: &format.RowGroup{Columns: nil}}
	_, err := ReadColumnDynamic(rg, 0)
	require.ErrorIs(t, err, ErrMalformedMetadata)
}

func TestReadColumnDynamicRejectsMissingColumnMetaData(t *testing.T) {
	rg := &RowGroup{
		file: &File{},
		rg:   &format.RowGroup{Columns: []format.ColumnChunk{{MetaData: nil}}},
	}
	_, err := ReadColumnDynamic(rg, 0)
	require.ErrorIs(t, err, ErrMalformedMetadata)
}

func TestReadColumnDynamicRejectsFixedLenWidthOutOfRange(t *testing.T) {
	badLen := int32(32) // outside the 1..16 FIXED_LEN_BYTE_ARRAY range
	f := &File{
		ra: bytes.NewReader([]byte{0}),
		leaves: []leaf{
			{element: &format.SchemaElement{Name: "blob", TypeLength: &badLen}},
		},
	}
	rg := &RowGroup{
		file: f,
		rg: &format.RowGroup{Columns: []format.ColumnChunk{
			{MetaData: &format.ColumnMetaData{
				Type:           format.TypeFixedLenByteArray,
				DataPageOffset: 0,
			}},
		}},
	}
	_, err := ReadColumnDynamic(rg, 0)
	require.ErrorIs(t, err, ErrUnsupportedFeature)
}
