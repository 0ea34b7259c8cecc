package encoding

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/go-columnar/parquetcore/bitio"
)

// cursor is a position-tracking byte source shared by the varint-header loop
// and the bit-packed runs of the RLE/bit-packed hybrid, so that a single
// decode can freely alternate between byte-level and bit-level reads while
// keeping an exact consumed-byte count.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) ReadByte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, bitio.ErrShortInput
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) readUvarint() (uint64, error) {
	var x uint64
	var s uint
	for i := 0; ; i++ {
		b, err := c.ReadByte()
		if err != nil {
			return 0, err
		}
		if b < 0x80 {
			return x | uint64(b)<<s, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
}

// DecodeHybridRaw decodes n values of a headerless RLE/bit-packed hybrid
// stream at the given bit width (spec.md section 4.4), used for Data-Page-v1
// repetition/definition levels and as the payload format of the
// length-prefixed and dictionary-index variants below.
func DecodeHybridRaw(data []byte, bitWidth uint, n int) (values []uint64, consumed int, err error) {
	if bitWidth == 0 {
		out := make([]uint64, n)
		return out, 0, nil
	}

	cur := &cursor{data: data}
	br := bitio.NewLSB(cur)
	out := make([]uint64, 0, n)

	for len(out) < n {
		header, err := cur.readUvarint()
		if err != nil {
			return nil, 0, errors.Wrap(err, "rle: header")
		}

		if header&1 == 1 {
			groups := int(header >> 1)
			count := groups * 8
			for i := 0; i < count; i++ {
				v, err := br.ReadBits(bitWidth)
				if err != nil {
					return nil, 0, errors.Wrap(err, "rle: bit-packed value")
				}
				if len(out) < n {
					out = append(out, v)
				}
			}
		} else {
			runLen := int(header >> 1)
			byteWidth := int((bitWidth + 7) / 8)
			buf := make([]byte, 8)
			raw, err := readBytesFromCursor(cur, byteWidth)
			if err != nil {
				return nil, 0, errors.Wrap(err, "rle: run value")
			}
			copy(buf, raw)
			v := binary.LittleEndian.Uint64(buf)
			for i := 0; i < runLen; i++ {
				if len(out) < n {
					out = append(out, v)
				}
			}
		}
	}
	return out, cur.pos, nil
}

func readBytesFromCursor(cur *cursor, n int) ([]byte, error) {
	if cur.pos+n > len(cur.data) {
		return nil, bitio.ErrShortInput
	}
	b := cur.data[cur.pos : cur.pos+n]
	cur.pos += n
	return b, nil
}

// DecodeHybridWithLength decodes the Data-Page-v2 variant: a leading 4-byte
// little-endian byte length bounds a DecodeHybridRaw payload.
func DecodeHybridWithLength(data []byte, bitWidth uint, n int) (values []uint64, consumed int, err error) {
	if len(data) < 4 {
		return nil, 0, errors.Wrap(ErrDecode, "rle: truncated length prefix")
	}
	length := int(binary.LittleEndian.Uint32(data))
	if 4+length > len(data) {
		return nil, 0, errors.Wrap(ErrDecode, "rle: length prefix exceeds payload")
	}
	out, _, err := DecodeHybridRaw(data[4:4+length], bitWidth, n)
	if err != nil {
		return nil, 0, err
	}
	return out, 4 + length, nil
}

// DecodeDictionaryIndices decodes PLAIN_DICTIONARY/RLE_DICTIONARY indices: a
// leading bit-width byte followed by a headerless RLE/bit-packed hybrid
// stream at that width.
func DecodeDictionaryIndices(data []byte, n int) (indices []uint64, consumed int, err error) {
	if len(data) < 1 {
		return nil, 0, errors.Wrap(ErrDecode, "dictionary indices: missing bit-width byte")
	}
	bitWidth := uint(data[0])
	out, used, err := DecodeHybridRaw(data[1:], bitWidth, n)
	if err != nil {
		return nil, 0, err
	}
	return out, 1 + used, nil
}

// DecodeBitPackedRaw decodes n values of the deprecated raw bit-packed
// encoding: MSB-first packing with no run-length structure at all.
func DecodeBitPackedRaw(data []byte, bitWidth uint, n int) ([]uint64, error) {
	cur := &cursor{data: data}
	br := bitio.NewMSB(cur)
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		v, err := br.ReadBits(bitWidth)
		if err != nil {
			return nil, errors.Wrap(err, "bit_packed: value")
		}
		out[i] = v
	}
	return out, nil
}

// MaxLevelBitWidth returns ceil(log2(maxLevel+1)), the bit width used to
// RLE/bit-pack a definition or repetition level stream whose values range
// over [0, maxLevel].
func MaxLevelBitWidth(maxLevel int) uint {
	if maxLevel <= 0 {
		return 0
	}
	width := uint(0)
	for (1 << width) <= maxLevel {
		width++
	}
	return width
}
