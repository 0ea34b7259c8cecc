package parquetcore

import (
	"io"

	"github.com/pkg/errors"

	"github.com/go-columnar/parquetcore/compress"
	"github.com/go-columnar/parquetcore/encoding"
	"github.com/go-columnar/parquetcore/format"
	"github.com/go-columnar/parquetcore/thrift"
)

// readColumnRaw walks one column chunk's dictionary and data pages (spec.md
// section 4.6), decoding every page in file order (dictionary dependency and
// definition-level continuity require it) and returns the compacted
// non-null value array plus the concatenated definition/repetition level
// streams.
func readColumnRaw(rg *RowGroup, columnIndex int) (any, []uint16, []uint16, error) {
	f := rg.file
	if columnIndex < 0 || columnIndex >= len(rg.rg.Columns) {
		return nil, nil, nil, errors.Wrapf(ErrMalformedMetadata, "column index %d out of range [0,%d)", columnIndex, len(rg.rg.Columns))
	}
	if columnIndex >= len(f.leaves) {
		return nil, nil, nil, errors.Wrapf(ErrMalformedMetadata, "column index %d has no schema leaf", columnIndex)
	}
	chunk := &rg.rg.Columns[columnIndex]
	lf := &f.leaves[columnIndex]
	meta := chunk.MetaData
	if meta == nil {
		return nil, nil, nil, errors.Wrapf(ErrMalformedMetadata, "column %d missing ColumnMetaData", columnIndex)
	}

	start := meta.DataPageOffset
	if meta.DictionaryPageOffset != nil && *meta.DictionaryPageOffset != 0 && *meta.DictionaryPageOffset < start {
		start = *meta.DictionaryPageOffset
	}
	buf, err := f.readAt(start, int(meta.TotalCompressedSize))
	if err != nil {
		return nil, nil, nil, err
	}

	var dict any
	var defLevels, repLevels []uint16
	acc := newColumnAccumulator(meta.Type)

	cur := 0
	for cur < len(buf) {
		d := thrift.NewDecoder(buf[cur:])
		hdr, err := format.DecodePageHeader(d)
		if err != nil {
			return nil, nil, nil, errors.Wrapf(ErrMalformedMetadata, "column %d: decode page header: %v", columnIndex, err)
		}
		payloadStart := cur + d.Pos()
		payloadEnd := payloadStart + int(hdr.CompressedPageSize)
		if payloadEnd > len(buf) || payloadStart > payloadEnd {
			return nil, nil, nil, errors.Wrapf(ErrShortInput, "column %d: page payload extends past chunk", columnIndex)
		}
		payload := buf[payloadStart:payloadEnd]
		cur = payloadEnd

		switch hdr.Type {
		case format.PageTypeDictionaryPage:
			if dict != nil {
				return nil, nil, nil, errors.Wrapf(ErrDuplicateDictionary, "column %d", columnIndex)
			}
			if hdr.DictionaryPageHeader == nil {
				return nil, nil, nil, errors.Wrapf(ErrMalformedMetadata, "column %d: DICTIONARY_PAGE missing header", columnIndex)
			}
			plain, err := decompressPage(meta.Codec, payload, int(hdr.UncompressedPageSize))
			if err != nil {
				return nil, nil, nil, err
			}
			dict, err = decodePlainValues(meta.Type, lf.element, plain, int(hdr.DictionaryPageHeader.NumValues))
			if err != nil {
				return nil, nil, nil, err
			}

		case format.PageTypeDataPage:
			if err := decodeDataPageV1(hdr, payload, meta, lf, acc, dict, &defLevels, &repLevels); err != nil {
				return nil, nil, nil, err
			}

		case format.PageTypeDataPageV2:
			if err := decodeDataPageV2(hdr, payload, meta, lf, acc, dict, &defLevels, &repLevels); err != nil {
				return nil, nil, nil, err
			}

		case format.PageTypeIndexPage:
			// Page indexes live in the column chunk's offset/column index
			// locations, not inline in the page stream; nothing to decode.
		}
	}

	return acc.result(), defLevels, repLevels, nil
}

func decodeDataPageV1(hdr *format.PageHeader, payload []byte, meta *format.ColumnMetaData, lf *leaf, acc *columnAccumulator, dict any, defLevels, repLevels *[]uint16) error {
	dh := hdr.DataPageHeader
	if dh == nil {
		return errors.Wrap(ErrMalformedMetadata, "DATA_PAGE missing DataPageHeader")
	}
	plain, err := decompressPage(meta.Codec, payload, int(hdr.UncompressedPageSize))
	if err != nil {
		return err
	}

	pos := 0
	var rep, def []uint64
	if lf.maxRep > 0 {
		var consumed int
		rep, consumed, err = encoding.DecodeHybridRaw(plain[pos:], encoding.MaxLevelBitWidth(lf.maxRep), int(dh.NumValues))
		if err != nil {
			return errors.Wrap(ErrDecode, "repetition levels: "+err.Error())
		}
		pos += consumed
	}
	if lf.maxDef > 0 {
		var consumed int
		def, consumed, err = encoding.DecodeHybridRaw(plain[pos:], encoding.MaxLevelBitWidth(lf.maxDef), int(dh.NumValues))
		if err != nil {
			return errors.Wrap(ErrDecode, "definition levels: "+err.Error())
		}
		pos += consumed
	}

	numNonNull := int(dh.NumValues)
	if lf.maxDef > 0 {
		numNonNull = 0
		for _, v := range def {
			if int(v) == lf.maxDef {
				numNonNull++
			}
		}
	}

	if err := acc.decodeAndAppend(dh.Encoding, plain[pos:], numNonNull, dict, lf); err != nil {
		return err
	}
	*defLevels = appendLevels(*defLevels, def)
	*repLevels = appendLevels(*repLevels, rep)
	return nil
}

func decodeDataPageV2(hdr *format.PageHeader, payload []byte, meta *format.ColumnMetaData, lf *leaf, acc *columnAccumulator, dict any, defLevels, repLevels *[]uint16) error {
	dh := hdr.DataPageHeaderV2
	if dh == nil {
		return errors.Wrap(ErrMalformedMetadata, "DATA_PAGE_V2 missing DataPageHeaderV2")
	}
	repLen := int(dh.RepetitionLevelsByteLength)
	defLen := int(dh.DefinitionLevelsByteLength)
	if repLen+defLen > len(payload) {
		return errors.Wrap(ErrShortInput, "DATA_PAGE_V2 level lengths exceed page payload")
	}
	repBytes := payload[:repLen]
	defBytes := payload[repLen : repLen+defLen]
	valuesPayload := payload[repLen+defLen:]

	var rep, def []uint64
	var err error
	if lf.maxRep > 0 {
		rep, _, err = encoding.DecodeHybridRaw(repBytes, encoding.MaxLevelBitWidth(lf.maxRep), int(dh.NumValues))
		if err != nil {
			return errors.Wrap(ErrDecode, "repetition levels: "+err.Error())
		}
	}
	if lf.maxDef > 0 {
		def, _, err = encoding.DecodeHybridRaw(defBytes, encoding.MaxLevelBitWidth(lf.maxDef), int(dh.NumValues))
		if err != nil {
			return errors.Wrap(ErrDecode, "definition levels: "+err.Error())
		}
	}

	numNonNull := int(dh.NumValues) - int(dh.NumNulls)

	var decoded []byte
	if dh.IsCompressedEffective() {
		decoded, err = decompressPage(meta.Codec, valuesPayload, int(hdr.UncompressedPageSize)-repLen-defLen)
		if err != nil {
			return err
		}
	} else {
		decoded = valuesPayload
	}

	if err := acc.decodeAndAppend(dh.Encoding, decoded, numNonNull, dict, lf); err != nil {
		return err
	}
	*defLevels = appendLevels(*defLevels, def)
	*repLevels = appendLevels(*repLevels, rep)
	return nil
}

func appendLevels(dst []uint16, src []uint64) []uint16 {
	for _, v := range src {
		dst = append(dst, uint16(v))
	}
	return dst
}

func decompressPage(codec format.CompressionCodec, payload []byte, uncompressedSize int) ([]byte, error) {
	r, err := compress.NewReader(codec, payload, uncompressedSize)
	if err != nil {
		return nil, errors.Wrap(ErrDecode, err.Error())
	}
	out := make([]byte, uncompressedSize)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, errors.Wrap(ErrDecode, err.Error())
	}
	return out, nil
}

func wrapDecode(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(ErrDecode, err.Error())
}

// columnAccumulator collects decoded page values for one column chunk into
// the typed slice matching its physical type, so the final result can be
// returned as a single `any` without a per-page type switch at the caller.
type columnAccumulator struct {
	physType format.Type

	boolVals []bool
	i32Vals  []int32
	i64Vals  []int64
	i96Vals  [][12]byte
	f32Vals  []float32
	f64Vals  []float64
	baVals   [][]byte
}

func newColumnAccumulator(t format.Type) *columnAccumulator {
	return &columnAccumulator{physType: t}
}

func (a *columnAccumulator) decodeAndAppend(enc format.Encoding, data []byte, n int, dict any, lf *leaf) error {
	switch a.physType {
	case format.TypeBoolean:
		vals, err := decodeBoolValues(enc, data, n)
		if err != nil {
			return err
		}
		a.boolVals = append(a.boolVals, vals...)

	case format.TypeInt32:
		vals, err := decodeInt32Values(enc, data, n, dict)
		if err != nil {
			return err
		}
		a.i32Vals = append(a.i32Vals, vals...)

	case format.TypeInt64:
		vals, err := decodeInt64Values(enc, data, n, dict)
		if err != nil {
			return err
		}
		a.i64Vals = append(a.i64Vals, vals...)

	case format.TypeInt96:
		vals, err := decodeInt96Values(enc, data, n, dict)
		if err != nil {
			return err
		}
		a.i96Vals = append(a.i96Vals, vals...)

	case format.TypeFloat:
		vals, err := decodeFloat32Values(enc, data, n, dict)
		if err != nil {
			return err
		}
		a.f32Vals = append(a.f32Vals, vals...)

	case format.TypeDouble:
		vals, err := decodeFloat64Values(enc, data, n, dict)
		if err != nil {
			return err
		}
		a.f64Vals = append(a.f64Vals, vals...)

	case format.TypeByteArray:
		vals, err := decodeByteArrayValues(enc, data, n, dict, 0, false)
		if err != nil {
			return err
		}
		a.baVals = append(a.baVals, vals...)

	case format.TypeFixedLenByteArray:
		length := 0
		if lf.element.TypeLength != nil {
			length = int(*lf.element.TypeLength)
		}
		vals, err := decodeByteArrayValues(enc, data, n, dict, length, true)
		if err != nil {
			return err
		}
		a.baVals = append(a.baVals, vals...)

	default:
		return errors.Wrapf(ErrUnsupportedFeature, "physical type %s", a.physType)
	}
	return nil
}

func (a *columnAccumulator) result() any {
	switch a.physType {
	case format.TypeBoolean:
		return a.boolVals
	case format.TypeInt32:
		return a.i32Vals
	case format.TypeInt64:
		return a.i64Vals
	case format.TypeInt96:
		return a.i96Vals
	case format.TypeFloat:
		return a.f32Vals
	case format.TypeDouble:
		return a.f64Vals
	case format.TypeByteArray, format.TypeFixedLenByteArray:
		return a.baVals
	default:
		return nil
	}
}

// decodePlainValues decodes a full dictionary page (always PLAIN-encoded,
// spec.md section 4.6 step 2) into the typed slice for physical type t.
func decodePlainValues(t format.Type, elem *format.SchemaElement, data []byte, n int) (any, error) {
	switch t {
	case format.TypeBoolean:
		v, err := encoding.DecodeBoolPlain(data, n)
		return v, wrapDecode(err)
	case format.TypeInt32:
		v, err := encoding.DecodeInt32Plain(data, n)
		return v, wrapDecode(err)
	case format.TypeInt64:
		v, err := encoding.DecodeInt64Plain(data, n)
		return v, wrapDecode(err)
	case format.TypeInt96:
		v, err := encoding.DecodeInt96Plain(data, n)
		return v, wrapDecode(err)
	case format.TypeFloat:
		v, err := encoding.DecodeFloat32Plain(data, n)
		return v, wrapDecode(err)
	case format.TypeDouble:
		v, err := encoding.DecodeFloat64Plain(data, n)
		return v, wrapDecode(err)
	case format.TypeByteArray:
		v, err := encoding.DecodeByteArrayPlain(data, n)
		return v, wrapDecode(err)
	case format.TypeFixedLenByteArray:
		length := 0
		if elem.TypeLength != nil {
			length = int(*elem.TypeLength)
		}
		v, err := encoding.DecodeFixedLenByteArrayPlain(data, n, length)
		return v, wrapDecode(err)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFeature, "physical type %s", t)
	}
}

func decodeDictionaryLookup[T any](dict any, data []byte, n int) ([]T, error) {
	typedDict, ok := dict.([]T)
	if !ok {
		return nil, errors.Wrapf(ErrDecode, "dictionary type %T does not match column's physical type", dict)
	}
	idx, _, err := encoding.DecodeDictionaryIndices(data, n)
	if err != nil {
		return nil, wrapDecode(err)
	}
	out := make([]T, len(idx))
	for i, ix := range idx {
		if int(ix) >= len(typedDict) {
			return nil, errors.Wrapf(ErrDecode, "dictionary index %d out of range [0,%d)", ix, len(typedDict))
		}
		out[i] = typedDict[ix]
	}
	return out, nil
}

func decodeBoolValues(enc format.Encoding, data []byte, n int) ([]bool, error) {
	switch enc {
	case format.EncodingPlain:
		v, err := encoding.DecodeBoolPlain(data, n)
		return v, wrapDecode(err)
	case format.EncodingRLE:
		raw, _, err := encoding.DecodeHybridWithLength(data, 1, n)
		if err != nil {
			return nil, wrapDecode(err)
		}
		out := make([]bool, len(raw))
		for i, v := range raw {
			out[i] = v != 0
		}
		return out, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFeature, "encoding %s not supported for BOOLEAN", enc)
	}
}

func decodeInt32Values(enc format.Encoding, data []byte, n int, dict any) ([]int32, error) {
	switch enc {
	case format.EncodingPlain:
		v, err := encoding.DecodeInt32Plain(data, n)
		return v, wrapDecode(err)
	case format.EncodingPlainDictionary, format.EncodingRLEDictionary:
		if dict == nil {
			return nil, errors.Wrap(ErrMissingDictionary, "int32 column")
		}
		return decodeDictionaryLookup[int32](dict, data, n)
	case format.EncodingDeltaBinaryPacked:
		v64, _, err := encoding.DecodeDeltaBinaryPacked(data, n)
		if err != nil {
			return nil, wrapDecode(err)
		}
		out := make([]int32, len(v64))
		for i, v := range v64 {
			out[i] = int32(v)
		}
		return out, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFeature, "encoding %s not supported for INT32", enc)
	}
}

func decodeInt64Values(enc format.Encoding, data []byte, n int, dict any) ([]int64, error) {
	switch enc {
	case format.EncodingPlain:
		v, err := encoding.DecodeInt64Plain(data, n)
		return v, wrapDecode(err)
	case format.EncodingPlainDictionary, format.EncodingRLEDictionary:
		if dict == nil {
			return nil, errors.Wrap(ErrMissingDictionary, "int64 column")
		}
		return decodeDictionaryLookup[int64](dict, data, n)
	case format.EncodingDeltaBinaryPacked:
		v, _, err := encoding.DecodeDeltaBinaryPacked(data, n)
		return v, wrapDecode(err)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFeature, "encoding %s not supported for INT64", enc)
	}
}

func decodeInt96Values(enc format.Encoding, data []byte, n int, dict any) ([][12]byte, error) {
	switch enc {
	case format.EncodingPlain:
		v, err := encoding.DecodeInt96Plain(data, n)
		return v, wrapDecode(err)
	case format.EncodingPlainDictionary, format.EncodingRLEDictionary:
		if dict == nil {
			return nil, errors.Wrap(ErrMissingDictionary, "int96 column")
		}
		return decodeDictionaryLookup[[12]byte](dict, data, n)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFeature, "encoding %s not supported for INT96", enc)
	}
}

func decodeFloat32Values(enc format.Encoding, data []byte, n int, dict any) ([]float32, error) {
	switch enc {
	case format.EncodingPlain:
		v, err := encoding.DecodeFloat32Plain(data, n)
		return v, wrapDecode(err)
	case format.EncodingPlainDictionary, format.EncodingRLEDictionary:
		if dict == nil {
			return nil, errors.Wrap(ErrMissingDictionary, "float column")
		}
		return decodeDictionaryLookup[float32](dict, data, n)
	case format.EncodingByteStreamSplit:
		raw, err := encoding.DecodeByteStreamSplit(data, 4, n)
		if err != nil {
			return nil, wrapDecode(err)
		}
		v, err := encoding.DecodeFloat32Plain(raw, n)
		return v, wrapDecode(err)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFeature, "encoding %s not supported for FLOAT", enc)
	}
}

func decodeFloat64Values(enc format.Encoding, data []byte, n int, dict any) ([]float64, error) {
	switch enc {
	case format.EncodingPlain:
		v, err := encoding.DecodeFloat64Plain(data, n)
		return v, wrapDecode(err)
	case format.EncodingPlainDictionary, format.EncodingRLEDictionary:
		if dict == nil {
			return nil, errors.Wrap(ErrMissingDictionary, "double column")
		}
		return decodeDictionaryLookup[float64](dict, data, n)
	case format.EncodingByteStreamSplit:
		raw, err := encoding.DecodeByteStreamSplit(data, 8, n)
		if err != nil {
			return nil, wrapDecode(err)
		}
		v, err := encoding.DecodeFloat64Plain(raw, n)
		return v, wrapDecode(err)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFeature, "encoding %s not supported for DOUBLE", enc)
	}
}

func decodeByteArrayValues(enc format.Encoding, data []byte, n int, dict any, typeLength int, fixedLen bool) ([][]byte, error) {
	switch enc {
	case format.EncodingPlain:
		if fixedLen {
			v, err := encoding.DecodeFixedLenByteArrayPlain(data, n, typeLength)
			return v, wrapDecode(err)
		}
		v, err := encoding.DecodeByteArrayPlain(data, n)
		return v, wrapDecode(err)
	case format.EncodingPlainDictionary, format.EncodingRLEDictionary:
		if dict == nil {
			return nil, errors.Wrap(ErrMissingDictionary, "byte array column")
		}
		return decodeDictionaryLookup[[]byte](dict, data, n)
	case format.EncodingDeltaLengthByteArray:
		v, _, err := encoding.DecodeDeltaLengthByteArray(data, n)
		return v, wrapDecode(err)
	case format.EncodingDeltaByteArray:
		v, _, err := encoding.DecodeDeltaByteArray(data, n)
		return v, wrapDecode(err)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFeature, "encoding %s not supported for BYTE_ARRAY", enc)
	}
}
