package bitio_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-columnar/parquetcore/bitio"
)

func TestLSBReadBitsWidth3(t *testing.T) {
	// RLE/bit-packed hybrid payload from spec.md section 8 scenario 4:
	// width 3, values [0,1,2,3,4,5,6,7] packed LSB-first.
	data := []byte{0x88, 0xc6, 0xfa}
	r := bitio.NewLSB(bytes.NewReader(data))

	want := []uint64{0, 1, 2, 3, 4, 5, 6, 7}
	for i, w := range want {
		got, err := r.ReadBits(3)
		require.NoError(t, err)
		require.Equalf(t, w, got, "value %d", i)
	}
}

func TestLSBReadBitsWidth0(t *testing.T) {
	r := bitio.NewLSB(bytes.NewReader(nil))
	v, err := r.ReadBits(0)
	require.NoError(t, err)
	require.Zero(t, v)
}

func TestLSBShortInput(t *testing.T) {
	r := bitio.NewLSB(bytes.NewReader([]byte{0x01}))
	_, err := r.ReadBits(32)
	require.ErrorIs(t, err, bitio.ErrShortInput)
}

func TestMSBReadBits(t *testing.T) {
	// MSB-first packing of two 3-bit values 0b101, 0b011 -> byte 0b10101100.
	// Build explicitly: values [5, 3] at width 3, MSB-first packed.
	// bits written MSB->LSB: 101 011 xx -> byte = 1010 1100 = 0xAC
	data := []byte{0xAC}
	r := bitio.NewMSB(bytes.NewReader(data))

	v1, err := r.ReadBits(3)
	require.NoError(t, err)
	require.EqualValues(t, 5, v1)

	v2, err := r.ReadBits(3)
	require.NoError(t, err)
	require.EqualValues(t, 3, v2)
}

func TestLSBReadBitsWidth64WithBufferedResidual(t *testing.T) {
	// Leaves a 7-bit residual buffered (from byte0's upper bits) before a
	// 64-bit read, which used to overflow nbit past 64 and silently drop
	// the high bits of the last byte consumed (reachable via
	// DELTA_BINARY_PACKED miniblock widths up to 64).
	data := []byte{0x01, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	r := bitio.NewLSB(bytes.NewReader(data))

	v1, err := r.ReadBits(1)
	require.NoError(t, err)
	require.EqualValues(t, 1, v1)

	v2, err := r.ReadBits(64)
	require.NoError(t, err)
	require.EqualValues(t, 0xFFFFFFFFFFFFFF80, v2)

	// The remaining 7 bits of the last byte are still buffered; this must
	// not require reading past the end of data.
	v3, err := r.ReadBits(7)
	require.NoError(t, err)
	require.EqualValues(t, 0x7F, v3)
}

func TestMSBCrossesByteBoundary(t *testing.T) {
	// Two consecutive 5-bit values spanning a byte boundary.
	// value1 = 0b10110 (22), value2 = 0b01101 (13)
	// bit stream MSB-first: 10110 01101 (10 bits) padded to 2 bytes:
	// byte0 = 1011 0011 = 0xB3, byte1 = 01xxxxxx -> 0x40
	data := []byte{0xB3, 0x40}
	r := bitio.NewMSB(bytes.NewReader(data))

	v1, err := r.ReadBits(5)
	require.NoError(t, err)
	require.EqualValues(t, 22, v1)

	v2, err := r.ReadBits(5)
	require.NoError(t, err)
	require.EqualValues(t, 13, v2)
}
