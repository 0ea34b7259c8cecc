package encoding

import (
	"github.com/pkg/errors"

	"github.com/go-columnar/parquetcore/bitio"
)

func bitioLSBFromCursor(cur *cursor) *bitio.Reader {
	return bitio.NewLSB(cur)
}

// DecodeDeltaBinaryPacked decodes a DELTA_BINARY_PACKED stream of n INT32 or
// INT64 values (spec.md section 4.4). Values are returned as int64; callers
// narrow to int32 themselves since the wire format is identical for both
// widths (only the carried range differs).
//
// This is a from-scratch implementation of the block/miniblock/bit-width
// algorithm: timmyb32r-kaitai_based_parquet_parser/main/delta_decode.go's
// decodeDeltaBinaryPacked skips the miniblock and bit-width structure
// entirely and does not implement this encoding correctly, so nothing in
// the pack grounds the body of this function beyond the specification text
// itself.
func DecodeDeltaBinaryPacked(data []byte, n int) (values []int64, consumed int, err error) {
	cur := &cursor{data: data}

	blockSize, err := cur.readUvarint()
	if err != nil {
		return nil, 0, errors.Wrap(err, "delta: block size")
	}
	miniblockCount, err := cur.readUvarint()
	if err != nil {
		return nil, 0, errors.Wrap(err, "delta: miniblock count")
	}
	totalCount, err := cur.readUvarint()
	if err != nil {
		return nil, 0, errors.Wrap(err, "delta: total count")
	}
	firstValueZigzag, err := cur.readUvarint()
	if err != nil {
		return nil, 0, errors.Wrap(err, "delta: first value")
	}

	if blockSize == 0 || blockSize%128 != 0 {
		return nil, 0, errors.Wrapf(ErrDecode, "delta: block size %d is not a positive multiple of 128", blockSize)
	}
	if miniblockCount == 0 || blockSize%miniblockCount != 0 {
		return nil, 0, errors.Wrapf(ErrDecode, "delta: block size %d not a multiple of miniblock count %d", blockSize, miniblockCount)
	}
	valuesPerMiniblock := blockSize / miniblockCount
	if valuesPerMiniblock%32 != 0 {
		return nil, 0, errors.Wrapf(ErrDecode, "delta: values per miniblock %d not a multiple of 32", valuesPerMiniblock)
	}
	if int(totalCount) != n {
		return nil, 0, errors.Wrapf(ErrDecode, "delta: header total_count %d does not match requested %d", totalCount, n)
	}

	out := make([]int64, 0, n)
	prev := zigzagDecode(firstValueZigzag)
	if n > 0 {
		out = append(out, prev)
	}

	for len(out) < n {
		minDeltaZigzag, err := cur.readUvarint()
		if err != nil {
			return nil, 0, errors.Wrap(err, "delta: block min delta")
		}
		minDelta := zigzagDecode(minDeltaZigzag)

		bitWidths := make([]uint, miniblockCount)
		for i := range bitWidths {
			b, err := cur.ReadByte()
			if err != nil {
				return nil, 0, errors.Wrap(err, "delta: miniblock bit width")
			}
			if b > 64 {
				return nil, 0, errors.Wrapf(ErrDecode, "delta: miniblock bit width %d out of range", b)
			}
			bitWidths[i] = uint(b)
		}

		for mb := 0; mb < int(miniblockCount) && len(out) < n; mb++ {
			width := bitWidths[mb]
			deltas, consumedBits, err := decodeMiniblockDeltas(cur, width, int(valuesPerMiniblock))
			if err != nil {
				return nil, 0, err
			}
			_ = consumedBits
			for _, d := range deltas {
				if len(out) >= n {
					break
				}
				prev = prev + minDelta + int64(d)
				out = append(out, prev)
			}
		}
	}

	return out, cur.pos, nil
}

// decodeMiniblockDeltas reads exactly count bit-packed unsigned deltas of
// the given width, LSB-first, advancing cur a whole number of bytes
// (bit-packed groups in this encoding are always byte-aligned since
// valuesPerMiniblock is a multiple of 32, hence of 8).
func decodeMiniblockDeltas(cur *cursor, width uint, count int) ([]uint64, int, error) {
	if width == 0 {
		return make([]uint64, count), 0, nil
	}
	startPos := cur.pos
	values, _, err := DecodeHybridRawFixedWidth(cur, width, count)
	if err != nil {
		return nil, 0, err
	}
	return values, cur.pos - startPos, nil
}

// DecodeHybridRawFixedWidth reads count values of a pure bit-packed (no
// run-length headers) LSB-first stream directly from cur, used for
// DELTA_BINARY_PACKED miniblocks, which have no per-run header of their
// own — the bit width is already known from the block preamble.
func DecodeHybridRawFixedWidth(cur *cursor, width uint, count int) ([]uint64, int, error) {
	out := make([]uint64, count)
	br := bitioLSBFromCursor(cur)
	for i := 0; i < count; i++ {
		v, err := br.ReadBits(width)
		if err != nil {
			return nil, 0, errors.Wrap(err, "delta: miniblock value")
		}
		out[i] = v
	}
	return out, cur.pos, nil
}

func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// DecodeDeltaLengthByteArray decodes a DELTA_LENGTH_BYTE_ARRAY stream: a
// DELTA_BINARY_PACKED stream of n INT32 lengths followed by the
// concatenated value bytes (spec.md section 4.4).
func DecodeDeltaLengthByteArray(data []byte, n int) (values [][]byte, consumed int, err error) {
	lengths, used, err := DecodeDeltaBinaryPacked(data, n)
	if err != nil {
		return nil, 0, err
	}
	payload := data[used:]
	out := make([][]byte, n)
	pos := 0
	for i, l := range lengths {
		if l < 0 || pos+int(l) > len(payload) {
			return nil, 0, errors.Wrapf(ErrDecode, "delta_length_byte_array %d: truncated value", i)
		}
		out[i] = payload[pos : pos+int(l)]
		pos += int(l)
	}
	return out, used + pos, nil
}

// DecodeDeltaByteArray decodes a DELTA_BYTE_ARRAY stream: a
// DELTA_BINARY_PACKED stream of n prefix lengths followed by a
// DELTA_LENGTH_BYTE_ARRAY stream of n suffixes (spec.md section 4.4).
// Element 0 is suffix[0]; element i (i>=1) is the first prefix_len[i] bytes
// of element i-1 followed by suffix[i].
func DecodeDeltaByteArray(data []byte, n int) (values [][]byte, consumed int, err error) {
	prefixLens, used, err := DecodeDeltaBinaryPacked(data, n)
	if err != nil {
		return nil, 0, err
	}
	if n > 0 && prefixLens[0] != 0 {
		return nil, 0, errors.Wrapf(ErrDecode, "delta_byte_array: first prefix length %d must be zero", prefixLens[0])
	}

	suffixes, usedSuffix, err := DecodeDeltaLengthByteArray(data[used:], n)
	if err != nil {
		return nil, 0, err
	}

	out := make([][]byte, n)
	var prev []byte
	for i := 0; i < n; i++ {
		pl := int(prefixLens[i])
		if pl < 0 || pl > len(prev) {
			return nil, 0, errors.Wrapf(ErrDecode, "delta_byte_array %d: prefix length %d exceeds previous element length %d", i, pl, len(prev))
		}
		v := make([]byte, 0, pl+len(suffixes[i]))
		v = append(v, prev[:pl]...)
		v = append(v, suffixes[i]...)
		out[i] = v
		prev = v
	}
	return out, used + usedSuffix, nil
}

// DecodeByteStreamSplit reinterprets a byte-stream-split payload of k*n
// bytes (k = 4 for FLOAT, 8 for DOUBLE) back into n contiguous k-byte
// little-endian elements: element i's byte j was stored at position
// i + j*n.
func DecodeByteStreamSplit(data []byte, k, n int) ([]byte, error) {
	need := k * n
	if len(data) < need {
		return nil, errors.Wrapf(ErrDecode, "byte_stream_split: need %d bytes, have %d", need, len(data))
	}
	out := make([]byte, need)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			out[i*k+j] = data[i+j*n]
		}
	}
	return out, nil
}
