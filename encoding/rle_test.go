package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-columnar/parquetcore/encoding"
)

func TestDecodeHybridRawBitPacked(t *testing.T) {
	// spec.md section 8 scenario 4: header byte 0x03 (bit 0 set -> 1 group
	// of 8 bit-packed values), payload 0x88,0xc6,0xfa at width 3 decodes
	// to [0..7].
	data := []byte{0x03, 0x88, 0xc6, 0xfa}
	got, consumed, err := encoding.DecodeHybridRaw(data, 3, 8)
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 1, 2, 3, 4, 5, 6, 7}, got)
	require.Equal(t, 4, consumed)
}

func TestDecodeHybridRawRLERun(t *testing.T) {
	// header = (4<<1)|0 = 8 -> RLE run of length 4; width 5 -> byteWidth 1;
	// repeated value byte 0x07.
	data := []byte{0x08, 0x07}
	got, consumed, err := encoding.DecodeHybridRaw(data, 5, 4)
	require.NoError(t, err)
	require.Equal(t, []uint64{7, 7, 7, 7}, got)
	require.Equal(t, 2, consumed)
}

func TestDecodeHybridRawZeroWidth(t *testing.T) {
	got, consumed, err := encoding.DecodeHybridRaw(nil, 0, 5)
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 0, 0, 0, 0}, got)
	require.Zero(t, consumed)
}

func TestDecodeHybridWithLength(t *testing.T) {
	inner := []byte{0x03, 0x88, 0xc6, 0xfa}
	data := append([]byte{byte(len(inner)), 0, 0, 0}, inner...)
	got, consumed, err := encoding.DecodeHybridWithLength(data, 3, 8)
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 1, 2, 3, 4, 5, 6, 7}, got)
	require.Equal(t, 4+len(inner), consumed)
}

func TestDecodeDictionaryIndices(t *testing.T) {
	// bit-width byte 3, then the same run as scenario 4.
	data := []byte{3, 0x03, 0x88, 0xc6, 0xfa}
	got, consumed, err := encoding.DecodeDictionaryIndices(data, 8)
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 1, 2, 3, 4, 5, 6, 7}, got)
	require.Equal(t, 5, consumed)
}

func TestMaxLevelBitWidth(t *testing.T) {
	require.EqualValues(t, 0, encoding.MaxLevelBitWidth(0))
	require.EqualValues(t, 1, encoding.MaxLevelBitWidth(1))
	require.EqualValues(t, 2, encoding.MaxLevelBitWidth(2))
	require.EqualValues(t, 2, encoding.MaxLevelBitWidth(3))
	require.EqualValues(t, 3, encoding.MaxLevelBitWidth(4))
}

func TestDecodeBitPackedRawMSB(t *testing.T) {
	// MSB-first, width 3: values [5, 3] -> byte 0xAC (see bitio tests).
	got, err := encoding.DecodeBitPackedRaw([]byte{0xAC}, 3, 2)
	require.NoError(t, err)
	require.Equal(t, []uint64{5, 3}, got)
}
