package compress_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-columnar/parquetcore/compress"
	"github.com/go-columnar/parquetcore/format"
)

func readAll(t *testing.T, r compress.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return b
}

func TestSnappyLiteralAndCopy(t *testing.T) {
	// spec.md section 8 scenario 2: literal "abcd" then a copy expanding it
	// to "abcdabcdabcda" (13 bytes).
	payload := []byte("\x0d\x0cabcd\x15\x04")
	r, err := compress.NewReader(format.CodecSnappy, payload, 13)
	require.NoError(t, err)
	require.Equal(t, "abcdabcdabcda", string(readAll(t, r)))
}

func TestSnappyInvalidOffset(t *testing.T) {
	// varint length=1, then a 2-byte-offset copy tag referencing an offset
	// with nothing written yet.
	payload := []byte{0x01, 0x06, 0x01, 0x00}
	_, err := compress.NewReader(format.CodecSnappy, payload, 1)
	require.ErrorIs(t, err, compress.ErrDecode)
}

func TestLZ4RawLiteralOnly(t *testing.T) {
	// spec.md section 8 scenario 3: token 0x20 (literal length 2, no
	// match), literal bytes "AB".
	payload := []byte("\x20AB")
	r, err := compress.NewReader(format.CodecLZ4Raw, payload, 2)
	require.NoError(t, err)
	require.Equal(t, "AB", string(readAll(t, r)))
}

func TestLZ4RawZeroOffsetRejected(t *testing.T) {
	// token 0x10 (literal len 1, match len nibble 0), literal "A", then a
	// 2-byte offset of 0.
	payload := []byte{0x10, 'A', 0x00, 0x00}
	_, err := compress.NewReader(format.CodecLZ4Raw, payload, 5)
	require.ErrorIs(t, err, compress.ErrDecode)
}

func TestLZ4HadoopFrame(t *testing.T) {
	inner := []byte("\x20AB")
	frame := []byte{0, 0, 0, 2, 0, 0, 0, byte(len(inner))}
	frame = append(frame, inner...)
	r, err := compress.NewReader(format.CodecLZ4, frame, 2)
	require.NoError(t, err)
	require.Equal(t, "AB", string(readAll(t, r)))
}

func TestUncompressedPassthrough(t *testing.T) {
	r, err := compress.NewReader(format.CodecUncompressed, []byte("raw"), 3)
	require.NoError(t, err)
	require.Equal(t, "raw", string(readAll(t, r)))
}
