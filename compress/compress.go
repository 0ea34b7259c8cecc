// Package compress implements the page-payload decompressors: hand-written
// decoders for SNAPPY raw block format and LZ4 (raw and Hadoop-framed),
// plus adapters onto GZIP/ZSTD from an ecosystem crate. SNAPPY and LZ4
// payloads are decoded in full when the Reader is created and then served
// from memory; they do not decompress incrementally as bytes are read.
//
// Grounded on timmyb32r-kaitai_based_parquet_parser/main/compress.go's codec
// dispatch (which only covers UNCOMPRESSED/SNAPPY by delegating to
// klauspost/compress/snappy); this package keeps klauspost/compress as the
// teacher's own dependency for GZIP/ZSTD but hand-writes SNAPPY and LZ4
// itself, since spec.md names the streaming block decompressors as core,
// hard-part work.
package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/go-columnar/parquetcore/format"
)

// ErrDecode reports a malformed compressed payload: a bad tag, an invalid
// back-reference, a zero offset, or a truncated block.
var ErrDecode = errors.New("compress: malformed compressed payload")

// Reader is the decompressed byte stream every codec is read through. For
// UNCOMPRESSED, SNAPPY and LZ4 it is a bytes.Reader over an already fully
// decoded buffer; for GZIP and ZSTD it is the library decoder itself.
type Reader interface {
	io.Reader
}

// NewReader returns a Reader yielding the decompressed bytes of payload
// under codec. uncompressedSize is the size declared by the page header and
// is used to presize the SNAPPY/LZ4 output buffers; it is not trusted
// beyond that (decoders still bounds-check every write).
func NewReader(codec format.CompressionCodec, payload []byte, uncompressedSize int) (Reader, error) {
	switch codec {
	case format.CodecUncompressed:
		return bytes.NewReader(payload), nil
	case format.CodecSnappy:
		out, err := decodeSnappyBlock(payload, uncompressedSize)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(out), nil
	case format.CodecLZ4Raw:
		out, err := decodeLZ4Block(payload, uncompressedSize)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(out), nil
	case format.CodecLZ4:
		out, err := decodeLZ4Hadoop(payload, uncompressedSize)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(out), nil
	case format.CodecGzip:
		zr, err := gzip.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, errors.Wrap(err, "compress: gzip")
		}
		return zr, nil
	case format.CodecZstd:
		zr, err := zstd.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, errors.Wrap(err, "compress: zstd")
		}
		return &zstdReader{dec: zr}, nil
	default:
		return nil, errors.Errorf("compress: unsupported codec %s", codec)
	}
}

// zstdReader adapts *zstd.Decoder's Read to io.Reader while releasing its
// background goroutines once the caller is done, since zstd.Decoder.Read
// alone satisfies io.Reader but leaks resources if never Close()d.
type zstdReader struct {
	dec *zstd.Decoder
}

func (z *zstdReader) Read(p []byte) (int, error) {
	n, err := z.dec.Read(p)
	if err == io.EOF {
		z.dec.Close()
	}
	return n, err
}

// readUvarint reads an unsigned LEB128 varint from the front of data,
// returning the value and the number of bytes consumed.
func readUvarint(data []byte) (uint64, int, error) {
	var x uint64
	var s uint
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b < 0x80 {
			if i > 9 || (i == 9 && b > 1) {
				return 0, 0, errors.Wrap(ErrDecode, "varint overflow")
			}
			return x | uint64(b)<<s, i + 1, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return 0, 0, errors.Wrap(ErrDecode, "truncated varint")
}

// decodeSnappyBlock decodes the raw Snappy block format: a leading varint
// of the decompressed length, then literal/copy tags (spec.md section 4.3).
func decodeSnappyBlock(data []byte, sizeHint int) ([]byte, error) {
	length, n, err := readUvarint(data)
	if err != nil {
		return nil, err
	}
	data = data[n:]

	out := make([]byte, 0, maxInt(int(length), sizeHint))
	for len(data) > 0 {
		tag := data[0]
		switch tag & 0x03 {
		case 0x00: // literal
			raw := int(tag >> 2)
			consumed := 1
			var litLen int
			if raw < 60 {
				litLen = raw + 1
			} else {
				extra := raw - 59
				if extra > 4 || len(data) < 1+extra {
					return nil, errors.Wrap(ErrDecode, "snappy: truncated literal length")
				}
				litLen = 0
				for i := 0; i < extra; i++ {
					litLen |= int(data[1+i]) << (8 * i)
				}
				litLen++
				consumed = 1 + extra
			}
			if len(data) < consumed+litLen {
				return nil, errors.Wrap(ErrDecode, "snappy: truncated literal")
			}
			out = append(out, data[consumed:consumed+litLen]...)
			data = data[consumed+litLen:]

		case 0x01: // copy, 1-byte offset
			if len(data) < 2 {
				return nil, errors.Wrap(ErrDecode, "snappy: truncated copy1")
			}
			copyLen := int((tag>>2)&0x07) + 4
			offset := int(tag&0xe0)<<3 | int(data[1])
			if err := snappyCopy(&out, offset, copyLen); err != nil {
				return nil, err
			}
			data = data[2:]

		case 0x02: // copy, 2-byte offset
			if len(data) < 3 {
				return nil, errors.Wrap(ErrDecode, "snappy: truncated copy2")
			}
			copyLen := int(tag>>2) + 1
			offset := int(data[1]) | int(data[2])<<8
			if err := snappyCopy(&out, offset, copyLen); err != nil {
				return nil, err
			}
			data = data[3:]

		case 0x03: // copy, 4-byte offset
			if len(data) < 5 {
				return nil, errors.Wrap(ErrDecode, "snappy: truncated copy4")
			}
			copyLen := int(tag>>2) + 1
			offset := int(data[1]) | int(data[2])<<8 | int(data[3])<<16 | int(data[4])<<24
			if err := snappyCopy(&out, offset, copyLen); err != nil {
				return nil, err
			}
			data = data[5:]
		}
	}
	return out, nil
}

// snappyCopy appends a back-reference copy to out. When offset < length the
// source region overlaps the destination and must be copied byte-at-a-time.
func snappyCopy(out *[]byte, offset, length int) error {
	if offset < 1 || offset > len(*out) {
		return errors.Wrapf(ErrDecode, "snappy: invalid offset %d (have %d bytes)", offset, len(*out))
	}
	start := len(*out) - offset
	if offset < length {
		for i := 0; i < length; i++ {
			*out = append(*out, (*out)[start+i])
		}
		return nil
	}
	*out = append(*out, (*out)[start:start+length]...)
	return nil
}

// decodeLZ4Block decodes an LZ4 raw block: token/literal/offset/match
// sequences with no outer framing (spec.md section 4.3).
func decodeLZ4Block(data []byte, sizeHint int) ([]byte, error) {
	out := make([]byte, 0, sizeHint)
	pos := 0
	for pos < len(data) {
		token := data[pos]
		pos++

		litLen := int(token >> 4)
		if litLen == 15 {
			for {
				if pos >= len(data) {
					return nil, errors.Wrap(ErrDecode, "lz4: truncated literal length")
				}
				b := data[pos]
				pos++
				litLen += int(b)
				if b != 255 {
					break
				}
			}
		}
		if pos+litLen > len(data) {
			return nil, errors.Wrap(ErrDecode, "lz4: truncated literal")
		}
		out = append(out, data[pos:pos+litLen]...)
		pos += litLen

		if pos == len(data) {
			// Final sequence: no match part.
			break
		}
		if pos+2 > len(data) {
			return nil, errors.Wrap(ErrDecode, "lz4: truncated match offset")
		}
		offset := int(data[pos]) | int(data[pos+1])<<8
		pos += 2
		if offset == 0 {
			return nil, errors.Wrap(ErrDecode, "lz4: zero match offset")
		}

		matchLen := int(token & 0x0f)
		if matchLen == 15 {
			for {
				if pos >= len(data) {
					return nil, errors.Wrap(ErrDecode, "lz4: truncated match length")
				}
				b := data[pos]
				pos++
				matchLen += int(b)
				if b != 255 {
					break
				}
			}
		}
		matchLen += 4

		if offset > len(out) {
			return nil, errors.Wrapf(ErrDecode, "lz4: invalid match offset %d (have %d bytes)", offset, len(out))
		}
		start := len(out) - offset
		if offset < matchLen {
			for i := 0; i < matchLen; i++ {
				out = append(out, out[start+i])
			}
		} else {
			out = append(out, out[start:start+matchLen]...)
		}
	}
	return out, nil
}

// decodeLZ4Hadoop strips the Hadoop LZ4 outer framing (a 4-byte big-endian
// uncompressed length and a 4-byte big-endian compressed length ahead of
// each raw LZ4 block, possibly repeated) and concatenates the decoded
// blocks.
func decodeLZ4Hadoop(data []byte, sizeHint int) ([]byte, error) {
	out := make([]byte, 0, sizeHint)
	for len(data) > 0 {
		if len(data) < 8 {
			return nil, errors.Wrap(ErrDecode, "lz4: truncated Hadoop frame header")
		}
		uncompressedLen := beUint32(data[0:4])
		compressedLen := beUint32(data[4:8])
		data = data[8:]
		if int(compressedLen) > len(data) {
			return nil, errors.Wrap(ErrDecode, "lz4: truncated Hadoop frame body")
		}
		block, err := decodeLZ4Block(data[:compressedLen], int(uncompressedLen))
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
		data = data[compressedLen:]
	}
	return out, nil
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
