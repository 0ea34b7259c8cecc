package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-columnar/parquetcore/encoding"
)

// deltaBinaryPackedFixture hand-builds a single-block DELTA_BINARY_PACKED
// stream: block_size=128, miniblock_count=4 (32 values/miniblock), the
// given total_count/first_value/min_delta, and a single miniblock whose
// bit_width covers the needed deltas (remaining slots zero-padded, matching
// what a real encoder leaves behind once total_count stops short of a full
// block).
func deltaBinaryPackedFixture(totalCount, firstValue, minDelta int64, width byte, encodedDeltas []byte) []byte {
	buf := []byte{0x80, 0x01, 0x04, byte(totalCount)}
	buf = append(buf, zigzagVarint(firstValue)...)
	buf = append(buf, zigzagVarint(minDelta)...)
	buf = append(buf, width, 0, 0, 0)
	payload := make([]byte, 4)
	for i, d := range encodedDeltas {
		payload[i/8] |= d << (uint(i) % 8)
	}
	buf = append(buf, payload...)
	return buf
}

func zigzagVarint(v int64) []byte {
	u := uint64((v << 1) ^ (v >> 63))
	var out []byte
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			break
		}
	}
	return out
}

func TestDecodeDeltaBinaryPacked(t *testing.T) {
	// first_value=1, min_delta=1, encoded deltas [0,1,0,1] -> values
	// [1,2,4,5,7].
	data := deltaBinaryPackedFixture(5, 1, 1, 1, []byte{0, 1, 0, 1})
	got, consumed, err := encoding.DecodeDeltaBinaryPacked(data, 5)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 4, 5, 7}, got)
	require.Equal(t, len(data), consumed)
}

func TestDecodeDeltaBinaryPackedRejectsBadBlockSize(t *testing.T) {
	data := []byte{0x01, 0x04, 0x01, 0x00}
	_, _, err := encoding.DecodeDeltaBinaryPacked(data, 1)
	require.ErrorIs(t, err, encoding.ErrDecode)
}

func TestDecodeDeltaLengthByteArray(t *testing.T) {
	lengths := deltaBinaryPackedFixture(2, 3, -1, 1, []byte{0})
	data := append(append([]byte{}, lengths...), []byte("foohi")...)
	got, consumed, err := encoding.DecodeDeltaLengthByteArray(data, 2)
	require.NoError(t, err)
	require.Equal(t, "foo", string(got[0]))
	require.Equal(t, "hi", string(got[1]))
	require.Equal(t, len(data), consumed)
}

func TestDecodeDeltaByteArray(t *testing.T) {
	prefixes := deltaBinaryPackedFixture(2, 0, 0, 1, []byte{1})
	suffixLengths := deltaBinaryPackedFixture(2, 2, -1, 1, []byte{0})
	suffixes := append(append([]byte{}, suffixLengths...), []byte("abc")...)
	data := append(append([]byte{}, prefixes...), suffixes...)

	got, consumed, err := encoding.DecodeDeltaByteArray(data, 2)
	require.NoError(t, err)
	require.Equal(t, "ab", string(got[0]))
	require.Equal(t, "ac", string(got[1]))
	require.Equal(t, len(data), consumed)
}

func TestDecodeDeltaByteArrayRejectsNonzeroFirstPrefix(t *testing.T) {
	prefixes := deltaBinaryPackedFixture(1, 1, 0, 0, nil)
	suffixLengths := deltaBinaryPackedFixture(1, 1, 0, 0, nil)
	suffixes := append(append([]byte{}, suffixLengths...), []byte("a")...)
	data := append(append([]byte{}, prefixes...), suffixes...)

	_, _, err := encoding.DecodeDeltaByteArray(data, 1)
	require.ErrorIs(t, err, encoding.ErrDecode)
}

func TestDecodeByteStreamSplitFloat32(t *testing.T) {
	// Two elements, LE bytes 0x11223344 and 0x55667788, split so byte j of
	// element i sits at position i + j*n (n=2).
	split := []byte{0x11, 0x55, 0x22, 0x66, 0x33, 0x77, 0x44, 0x88}
	got, err := encoding.DecodeByteStreamSplit(split, 4, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88}, got)
}
