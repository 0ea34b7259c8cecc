package parquetcore

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenReaderRejectsUndersizedFile(t *testing.T) {
	_, err := OpenReader(bytes.NewReader([]byte("PAR1PAR1")), 8)
	require.ErrorIs(t, err, ErrMalformedFile)
}

func TestOpenReaderRejectsMissingLeadingMagic(t *testing.T) {
	data := append([]byte("XXXX"), make([]byte, 8)...)
	copy(data[len(data)-4:], "PAR1")
	_, err := OpenReader(bytes.NewReader(data), int64(len(data)))
	require.ErrorIs(t, err, ErrMalformedFile)
}

func TestOpenReaderRejectsMissingTrailingMagic(t *testing.T) {
	data := append([]byte("PAR1"), make([]byte, 8)...)
	_, err := OpenReader(bytes.NewReader(data), int64(len(data)))
	require.ErrorIs(t, err, ErrMalformedFile)
}

func TestOpenReaderRejectsFooterLengthOutOfRange(t *testing.T) {
	data := make([]byte, 16)
	copy(data[0:4], "PAR1")
	data[8] = 0xff // absurd footer length
	data[9] = 0xff
	data[10] = 0xff
	data[11] = 0x7f
	copy(data[12:16], "PAR1")
	_, err := OpenReader(bytes.NewReader(data), int64(len(data)))
	require.ErrorIs(t, err, ErrMalformedFile)
}
