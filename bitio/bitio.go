// Package bitio implements the bit-level readers the Parquet page encodings
// are built on: an LSB-first reader for the RLE/bit-packed hybrid and
// dictionary-index streams, and an MSB-first reader for the raw (deprecated)
// BIT_PACKED encoding.
//
// Grounded on the manual bit/byte index arithmetic in
// timmyb32r-kaitai_based_parquet_parser/main/rle_decoder.go
// (decodeBitPackedBytes), generalized from a one-shot byte-at-a-time decode
// of widths <= 8 into a stateful reader supporting widths up to 64 and
// arbitrary byte-boundary crossing.
package bitio

import (
	"io"

	"github.com/pkg/errors"
)

// ErrShortInput is returned when the underlying byte source runs out of
// bytes before a requested read is satisfied.
var ErrShortInput = errors.New("bitio: short input")

// Reader pulls fixed-width unsigned integers from an underlying byte
// stream, either LSB-first (bit 0 of each byte consumed first) or
// MSB-first (bit 7 consumed first).
type Reader struct {
	r    io.ByteReader
	msb  bool
	cur  uint64 // buffered bits, right-justified for LSB mode
	nbit uint   // number of valid bits currently buffered in cur

	// pending holds bits read from the underlying byte stream (LSB mode)
	// that did not fit into cur because nbit+8 would have exceeded 64;
	// pendingBits of it, right-justified, are still unconsumed.
	pending     byte
	pendingBits uint
}

// NewLSB returns a Reader that consumes bits LSB-first, the order used by
// Parquet's RLE/bit-packed hybrid encoding.
func NewLSB(r io.ByteReader) *Reader {
	return &Reader{r: r, msb: false}
}

// NewMSB returns a Reader that consumes bits MSB-first, the order used by
// Parquet's raw (deprecated) BIT_PACKED encoding.
func NewMSB(r io.ByteReader) *Reader {
	return &Reader{r: r, msb: true}
}

// ReadBits reads width bits (0 <= width <= 64) and returns them as an
// unsigned integer. For the LSB reader, the first bit read becomes bit 0 of
// the result; for the MSB reader, the first bit read becomes the
// most-significant of the width requested.
func (r *Reader) ReadBits(width uint) (uint64, error) {
	if width > 64 {
		return 0, errors.Errorf("bitio: width %d exceeds 64", width)
	}
	if width == 0 {
		return 0, nil
	}

	if r.msb {
		return r.readBitsMSB(width)
	}
	return r.readBitsLSB(width)
}

func (r *Reader) readBitsLSB(width uint) (uint64, error) {
	for r.nbit < width {
		var b byte
		var bits uint
		if r.pendingBits > 0 {
			b, bits = r.pending, r.pendingBits
			r.pendingBits = 0
		} else {
			rb, err := r.r.ReadByte()
			if err != nil {
				return 0, shortInput(err)
			}
			b, bits = rb, 8
		}

		fit := 64 - r.nbit
		if fit >= bits {
			r.cur |= uint64(b) << r.nbit
			r.nbit += bits
		} else {
			// Only the low `fit` bits fit into cur; the rest (now
			// right-justified) are consumed on the next iteration.
			r.cur |= uint64(b&((1<<fit)-1)) << r.nbit
			r.pending = b >> fit
			r.pendingBits = bits - fit
			r.nbit = 64
		}
	}

	var mask uint64
	if width == 64 {
		mask = ^uint64(0)
	} else {
		mask = (uint64(1) << width) - 1
	}
	v := r.cur & mask
	r.cur >>= width
	r.nbit -= width
	return v, nil
}

func (r *Reader) readBitsMSB(width uint) (uint64, error) {
	var v uint64
	remaining := width
	for remaining > 0 {
		if r.nbit == 0 {
			b, err := r.r.ReadByte()
			if err != nil {
				return 0, shortInput(err)
			}
			// Buffer holds up to 8 bits, MSB-aligned in the low 8 bits,
			// consumed starting from bit 7.
			r.cur = uint64(b)
			r.nbit = 8
		}
		take := remaining
		if take > r.nbit {
			take = r.nbit
		}
		shift := r.nbit - take
		chunk := (r.cur >> shift) & ((uint64(1) << take) - 1)
		v = (v << take) | chunk
		r.nbit -= take
		remaining -= take
	}
	return v, nil
}

// Align discards any bits buffered from the current byte, so the next read
// starts at a byte boundary. Bit-packed runs in Parquet are always a
// multiple of 8 values, so a run of any width already ends on a byte
// boundary; the decoders in this module do not call Align.
func (r *Reader) Align() {
	r.cur = 0
	r.nbit = 0
	r.pendingBits = 0
}

func shortInput(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrShortInput
	}
	return errors.Wrap(err, "bitio: read byte")
}
