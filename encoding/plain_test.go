package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-columnar/parquetcore/encoding"
)

func TestDecodeInt32PlainSingleValue(t *testing.T) {
	// spec.md section 8 scenario 1: bytes 0x03,0x08,0xff,0xff,0xff is a
	// page header varint prefix (0x03, 0x08) followed by the plain int32
	// payload 0xff,0xff,0xff,?? — the full page-level byte sequence is not
	// tested in this repository; here we check the core little-endian
	// layout directly.
	data := []byte{0xff, 0xff, 0xff, 0x00}
	got, err := encoding.DecodeInt32Plain(data, 1)
	require.NoError(t, err)
	require.Equal(t, []int32{0x00ffffff}, got)
}

func TestDecodeBoolPlain(t *testing.T) {
	got, err := encoding.DecodeBoolPlain([]byte{0b0000_0101}, 3)
	require.NoError(t, err)
	require.Equal(t, []bool{true, false, true}, got)
}

func TestDecodeByteArrayPlain(t *testing.T) {
	data := []byte{3, 0, 0, 0, 'f', 'o', 'o', 2, 0, 0, 0, 'h', 'i'}
	got, err := encoding.DecodeByteArrayPlain(data, 2)
	require.NoError(t, err)
	require.Equal(t, "foo", string(got[0]))
	require.Equal(t, "hi", string(got[1]))
}

func TestDecodeByteArrayPlainTruncated(t *testing.T) {
	data := []byte{5, 0, 0, 0, 'a'}
	_, err := encoding.DecodeByteArrayPlain(data, 1)
	require.ErrorIs(t, err, encoding.ErrDecode)
}

func TestDecodeFixedLenByteArrayPlain(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6}
	got, err := encoding.DecodeFixedLenByteArrayPlain(data, 2, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, got[0])
	require.Equal(t, []byte{4, 5, 6}, got[1])
}
