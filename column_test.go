package parquetcore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-columnar/parquetcore/format"
)

func TestDecodeBoolValuesPlain(t *testing.T) {
	// Three bits packed LSB-first into one byte: true, false, true.
	data := []byte{0b101}
	got, err := decodeBoolValues(format.EncodingPlain, data, 3)
	require.NoError(t, err)
	require.Equal(t, []bool{true, false, true}, got)
}

func TestDecodeBoolValuesRejectsUnsupportedEncoding(t *testing.T) {
	_, err := decodeBoolValues(format.EncodingDeltaBinaryPacked, nil, 1)
	require.ErrorIs(t, err, ErrUnsupportedFeature)
}

func TestDecodeInt32ValuesDictionary(t *testing.T) {
	dict := []int32{10, 20, 30}
	// bit-width byte 2, RLE/bit-packed header 0x03 (one group of 8
	// bit-packed values), payload 0x24,0x00 -> index stream
	// [0,1,2,0,0,0,0,0] at width 2, LSB-first.
	data := []byte{2, 0x03, 0x24, 0x00}
	got, err := decodeInt32Values(format.EncodingRLEDictionary, data, 3, any(dict))
	require.NoError(t, err)
	require.Equal(t, []int32{10, 20, 30}, got)
}

func TestDecodeInt32ValuesMissingDictionary(t *testing.T) {
	_, err := decodeInt32Values(format.EncodingPlainDictionary, []byte{1, 0, 0, 0}, 1, nil)
	require.ErrorIs(t, err, ErrMissingDictionary)
}

func TestDecodeByteArrayValuesPlain(t *testing.T) {
	data := []byte{3, 0, 0, 0, 'f', 'o', 'o'}
	got, err := decodeByteArrayValues(format.EncodingPlain, data, 1, nil, 0, false)
	require.NoError(t, err)
	require.Equal(t, "foo", string(got[0]))
}

func TestColumnAccumulatorRoundTripsInt64(t *testing.T) {
	acc := newColumnAccumulator(format.TypeInt64)
	data := make([]byte, 8)
	data[0] = 42
	require.NoError(t, acc.decodeAndAppend(format.EncodingPlain, data, 1, nil, nil))
	require.Equal(t, []int64{42}, acc.result())
}

func TestColumnAccumulatorUnsupportedPhysicalType(t *testing.T) {
	acc := newColumnAccumulator(format.Type(99))
	err := acc.decodeAndAppend(format.EncodingPlain, nil, 0, nil, nil)
	require.ErrorIs(t, err, ErrUnsupportedFeature)
}
