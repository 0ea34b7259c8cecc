package thrift_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-columnar/parquetcore/thrift"
)

// buildCompactStruct hand-encodes a tiny Thrift Compact struct with one i32
// field (id=1, value=42) followed by the stop byte, for exercising the
// decoder without going through a full FileMetaData.
func buildCompactStruct() []byte {
	// field header: delta=1 (id 0+1=1), type=TypeI32(5) -> 0x15
	// value: zigzag varint of 42 -> 84 -> 0x54
	return []byte{0x15, 0x54, 0x00}
}

func TestDecodeStructKnownField(t *testing.T) {
	d := thrift.NewDecoder(buildCompactStruct())

	var got int32
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			got = v
			return err
		}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 42, got)
}

func TestDecodeStructSkipsUnknownField(t *testing.T) {
	d := thrift.NewDecoder(buildCompactStruct())

	err := thrift.DecodeStruct(d, nil)
	require.NoError(t, err)
	require.Equal(t, 3, d.Pos())
}

func TestDecodeStructMissingRequiredField(t *testing.T) {
	d := thrift.NewDecoder([]byte{0x00}) // empty struct: just the stop byte

	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindI32, Required: true, Set: func(*thrift.Decoder, thrift.Type) error { return nil }},
	})
	require.ErrorIs(t, err, thrift.ErrMissingRequiredField)
}

func TestDecodeStructTypeMismatch(t *testing.T) {
	d := thrift.NewDecoder(buildCompactStruct()) // field 1 is encoded as I32

	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindBinary, Required: true, Set: func(*thrift.Decoder, thrift.Type) error { return nil }},
	})
	require.ErrorIs(t, err, thrift.ErrTypeMismatch)
}

func TestReadListHeaderShortForm(t *testing.T) {
	// size=3, elemType=TypeI32(5) -> (3<<4)|5 = 0x35
	d := thrift.NewDecoder([]byte{0x35})
	size, elemType, err := d.ReadListHeader()
	require.NoError(t, err)
	require.Equal(t, 3, size)
	require.Equal(t, thrift.TypeI32, elemType)
}

func TestReadListHeaderExtended(t *testing.T) {
	// size_short=15 (0xF), elemType=TypeBinary(8) -> 0xF8, then varint(20)=0x14
	d := thrift.NewDecoder([]byte{0xF8, 0x14})
	size, elemType, err := d.ReadListHeader()
	require.NoError(t, err)
	require.Equal(t, 20, size)
	require.Equal(t, thrift.TypeBinary, elemType)
}

func TestSkipStructNested(t *testing.T) {
	// Outer struct: field 1 (id delta 1) is itself a struct containing one
	// i32 field, followed by outer stop.
	inner := buildCompactStruct() // consumes 3 bytes when skipped
	outer := append([]byte{0x1C}, inner...) // 0x1C = delta 1, type Struct(12)
	outer = append(outer, 0x00)             // outer stop

	d := thrift.NewDecoder(outer)
	err := d.SkipStruct()
	require.NoError(t, err)
	require.Equal(t, len(outer), d.Pos())
}
