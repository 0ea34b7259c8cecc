package format

import (
	"github.com/pkg/errors"

	"github.com/go-columnar/parquetcore/thrift"
)

// DecodeFileMetaData decodes a FileMetaData struct from Thrift Compact
// Protocol bytes, as found between the footer-length field and the trailing
// magic of a Parquet file (spec.md section 4.5).
//
// Grounded on timmyb32r-kaitai_based_parquet_parser/main/thrift_compact_decode.go's
// decodeFileMetaData/decodeSchemaElement/decodeRowGroup/decodeColumnChunk/
// decodeColumnMetaData, rewritten against the generic thrift.DecodeStruct
// walker instead of a hand-rolled Kaitai AST walk.
func DecodeFileMetaData(data []byte) (*FileMetaData, error) {
	d := thrift.NewDecoder(data)
	m := &FileMetaData{}
	if err := decodeFileMetaData(d, m); err != nil {
		return nil, errors.Wrap(err, "format: decode FileMetaData")
	}
	return m, nil
}

func decodeFileMetaData(d *thrift.Decoder, m *FileMetaData) error {
	return thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			m.Version = v
			return err
		}},
		{ID: 2, Kind: thrift.KindList, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				var se SchemaElement
				if err := decodeSchemaElement(d, &se); err != nil {
					return err
				}
				m.Schema = append(m.Schema, se)
				return nil
			})
		}},
		{ID: 3, Kind: thrift.KindI64, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI64()
			m.NumRows = v
			return err
		}},
		{ID: 4, Kind: thrift.KindList, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				var rg RowGroup
				if err := decodeRowGroup(d, &rg); err != nil {
					return err
				}
				m.RowGroups = append(m.RowGroups, rg)
				return nil
			})
		}},
		{ID: 5, Kind: thrift.KindList, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				kv, err := decodeKeyValue(d)
				if err != nil {
					return err
				}
				m.KeyValueMetadata = append(m.KeyValueMetadata, kv)
				return nil
			})
		}},
		{ID: 6, Kind: thrift.KindBinary, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			s, err := d.ReadString()
			m.CreatedBy = &s
			return err
		}},
		{ID: 7, Kind: thrift.KindList, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				co, err := decodeColumnOrder(d)
				if err != nil {
					return err
				}
				m.ColumnOrders = append(m.ColumnOrders, co)
				return nil
			})
		}},
		{ID: 8, Kind: thrift.KindUnion, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			ea, err := decodeEncryptionAlgorithm(d)
			m.EncryptionAlgorithm = ea
			return err
		}},
		{ID: 9, Kind: thrift.KindBinary, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			b, err := d.ReadBinary()
			m.FooterSigningKeyMeta = append([]byte(nil), b...)
			return err
		}},
	})
}

// decodeList reads a Thrift Compact list/set header and invokes elem once
// per element; elem is responsible for consuming exactly one encoded value
// of the element's declared type.
func decodeList(d *thrift.Decoder, elem func(d *thrift.Decoder) error) error {
	size, _, err := d.ReadListHeader()
	if err != nil {
		return err
	}
	for i := 0; i < size; i++ {
		if err := elem(d); err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
	}
	return nil
}

func decodeSchemaElement(d *thrift.Decoder, out *SchemaElement) error {
	return thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindI32, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			t := Type(v)
			out.Type = &t
			return err
		}},
		{ID: 2, Kind: thrift.KindI32, Set: intPtrField(&out.TypeLength)},
		{ID: 3, Kind: thrift.KindI32, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			r := FieldRepetitionType(v)
			out.RepetitionType = &r
			return err
		}},
		{ID: 4, Kind: thrift.KindBinary, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			s, err := d.ReadString()
			out.Name = s
			return err
		}},
		{ID: 5, Kind: thrift.KindI32, Set: intPtrField(&out.NumChildren)},
		{ID: 6, Kind: thrift.KindI32, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			c := ConvertedType(v)
			out.ConvertedType = &c
			return err
		}},
		{ID: 7, Kind: thrift.KindI32, Set: intPtrField(&out.Scale)},
		{ID: 8, Kind: thrift.KindI32, Set: intPtrField(&out.Precision)},
		{ID: 9, Kind: thrift.KindI32, Set: intPtrField(&out.FieldID)},
		{ID: 10, Kind: thrift.KindUnion, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			lt, err := decodeLogicalType(d)
			out.LogicalType = lt
			return err
		}},
	})
}

func intPtrField(dst **int32) func(d *thrift.Decoder, t thrift.Type) error {
	return func(d *thrift.Decoder, _ thrift.Type) error {
		v, err := d.ReadI32()
		*dst = &v
		return err
	}
}

func i64PtrField(dst **int64) func(d *thrift.Decoder, t thrift.Type) error {
	return func(d *thrift.Decoder, _ thrift.Type) error {
		v, err := d.ReadI64()
		*dst = &v
		return err
	}
}

func boolPtrField(dst **bool) func(d *thrift.Decoder, t thrift.Type) error {
	return func(d *thrift.Decoder, t thrift.Type) error {
		v, err := d.ReadBool(t)
		*dst = &v
		return err
	}
}

// emptyStruct decodes (and discards) a nullary Thrift struct, used for
// logical-type tag structs that carry no fields of their own.
func emptyStruct(d *thrift.Decoder) error {
	return thrift.DecodeStruct(d, nil)
}

func decodeLogicalType(d *thrift.Decoder) (*LogicalType, error) {
	lt := &LogicalType{}
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			lt.String = &StringType{}
			return emptyStruct(d)
		}},
		{ID: 2, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			lt.Map = &MapType{}
			return emptyStruct(d)
		}},
		{ID: 3, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			lt.List = &ListType{}
			return emptyStruct(d)
		}},
		{ID: 4, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			lt.Enum = &EnumType{}
			return emptyStruct(d)
		}},
		{ID: 5, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			dec, err := decodeDecimalType(d)
			lt.Decimal = dec
			return err
		}},
		{ID: 6, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			lt.Date = &DateType{}
			return emptyStruct(d)
		}},
		{ID: 7, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			tt, err := decodeTimeType(d)
			lt.Time = tt
			return err
		}},
		{ID: 8, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			ts, err := decodeTimestampType(d)
			lt.Timestamp = ts
			return err
		}},
		{ID: 10, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			it, err := decodeIntType(d)
			lt.Integer = it
			return err
		}},
		{ID: 11, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			lt.Unknown = &NullType{}
			return emptyStruct(d)
		}},
		{ID: 12, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			lt.JSON = &JSONType{}
			return emptyStruct(d)
		}},
		{ID: 13, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			lt.BSON = &BSONType{}
			return emptyStruct(d)
		}},
		{ID: 14, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			lt.UUID = &UUIDType{}
			return emptyStruct(d)
		}},
		{ID: 15, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			lt.Float16 = &Float16Type{}
			return emptyStruct(d)
		}},
		{ID: 16, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			lt.Variant = &VariantType{}
			return emptyStruct(d)
		}},
	})
	return lt, err
}

func decodeDecimalType(d *thrift.Decoder) (*DecimalType, error) {
	out := &DecimalType{}
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.Scale = v
			return err
		}},
		{ID: 2, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.Precision = v
			return err
		}},
	})
	return out, err
}

func decodeTimeUnit(d *thrift.Decoder) (TimeUnit, error) {
	var out TimeUnit
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			out.Millis = &struct{}{}
			return emptyStruct(d)
		}},
		{ID: 2, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			out.Micros = &struct{}{}
			return emptyStruct(d)
		}},
		{ID: 3, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			out.Nanos = &struct{}{}
			return emptyStruct(d)
		}},
	})
	return out, err
}

func decodeTimeType(d *thrift.Decoder) (*TimeType, error) {
	out := &TimeType{}
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindBool, Required: true, Set: func(d *thrift.Decoder, t thrift.Type) error {
			v, err := d.ReadBool(t)
			out.IsAdjustedToUTC = v
			return err
		}},
		{ID: 2, Kind: thrift.KindUnion, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			u, err := decodeTimeUnit(d)
			out.Unit = u
			return err
		}},
	})
	return out, err
}

func decodeTimestampType(d *thrift.Decoder) (*TimestampType, error) {
	out := &TimestampType{}
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindBool, Required: true, Set: func(d *thrift.Decoder, t thrift.Type) error {
			v, err := d.ReadBool(t)
			out.IsAdjustedToUTC = v
			return err
		}},
		{ID: 2, Kind: thrift.KindUnion, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			u, err := decodeTimeUnit(d)
			out.Unit = u
			return err
		}},
	})
	return out, err
}

func decodeIntType(d *thrift.Decoder) (*IntType, error) {
	out := &IntType{}
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindI8, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI8()
			out.BitWidth = v
			return err
		}},
		{ID: 2, Kind: thrift.KindBool, Required: true, Set: func(d *thrift.Decoder, t thrift.Type) error {
			v, err := d.ReadBool(t)
			out.IsSigned = v
			return err
		}},
	})
	return out, err
}

func decodeKeyValue(d *thrift.Decoder) (KeyValue, error) {
	var out KeyValue
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindBinary, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			s, err := d.ReadString()
			out.Key = s
			return err
		}},
		{ID: 2, Kind: thrift.KindBinary, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			s, err := d.ReadString()
			out.Value = &s
			return err
		}},
	})
	return out, err
}

func decodeColumnOrder(d *thrift.Decoder) (ColumnOrder, error) {
	var out ColumnOrder
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			out.TypeOrder = &struct{}{}
			return emptyStruct(d)
		}},
	})
	return out, err
}

func decodeEncryptionAlgorithm(d *thrift.Decoder) (*EncryptionAlgorithm, error) {
	out := &EncryptionAlgorithm{}
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			out.AesGcmV1 = &struct{}{}
			return emptyStruct(d)
		}},
		{ID: 2, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			out.AesGcmCtrV1 = &struct{}{}
			return emptyStruct(d)
		}},
	})
	return out, err
}

func decodeRowGroup(d *thrift.Decoder, out *RowGroup) error {
	return thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindList, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				var cc ColumnChunk
				if err := decodeColumnChunk(d, &cc); err != nil {
					return err
				}
				out.Columns = append(out.Columns, cc)
				return nil
			})
		}},
		{ID: 2, Kind: thrift.KindI64, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI64()
			out.TotalByteSize = v
			return err
		}},
		{ID: 3, Kind: thrift.KindI64, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI64()
			out.NumRows = v
			return err
		}},
		{ID: 4, Kind: thrift.KindList, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				sc, err := decodeSortingColumn(d)
				if err != nil {
					return err
				}
				out.SortingColumns = append(out.SortingColumns, sc)
				return nil
			})
		}},
		{ID: 5, Kind: thrift.KindI64, Set: i64PtrField(&out.FileOffset)},
		{ID: 6, Kind: thrift.KindI64, Set: i64PtrField(&out.TotalCompressedSize)},
		{ID: 7, Kind: thrift.KindI16, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI16()
			out.Ordinal = &v
			return err
		}},
	})
}

func decodeSortingColumn(d *thrift.Decoder) (SortingColumn, error) {
	var out SortingColumn
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.ColumnIdx = v
			return err
		}},
		{ID: 2, Kind: thrift.KindBool, Required: true, Set: func(d *thrift.Decoder, t thrift.Type) error {
			v, err := d.ReadBool(t)
			out.Descending = v
			return err
		}},
		{ID: 3, Kind: thrift.KindBool, Required: true, Set: func(d *thrift.Decoder, t thrift.Type) error {
			v, err := d.ReadBool(t)
			out.NullsFirst = v
			return err
		}},
	})
	return out, err
}

func decodeColumnChunk(d *thrift.Decoder, out *ColumnChunk) error {
	return thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindBinary, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			s, err := d.ReadString()
			out.FilePath = &s
			return err
		}},
		{ID: 2, Kind: thrift.KindI64, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI64()
			out.FileOffset = v
			return err
		}},
		{ID: 3, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			md := &ColumnMetaData{}
			if err := decodeColumnMetaData(d, md); err != nil {
				return err
			}
			out.MetaData = md
			return nil
		}},
		{ID: 4, Kind: thrift.KindI64, Set: i64PtrField(&out.OffsetIndexOffset)},
		{ID: 5, Kind: thrift.KindI32, Set: intPtrField(&out.OffsetIndexLength)},
		{ID: 6, Kind: thrift.KindI64, Set: i64PtrField(&out.ColumnIndexOffset)},
		{ID: 7, Kind: thrift.KindI32, Set: intPtrField(&out.ColumnIndexLength)},
		// 8 (crypto_metadata) and 9 (encrypted_column_metadata) are
		// encryption-related; spec.md section 1 says encryption is parsed
		// where present but not otherwise acted on, so they are left for
		// the unknown-field skip path.
	})
}

func decodeColumnMetaData(d *thrift.Decoder, out *ColumnMetaData) error {
	return thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.Type = Type(v)
			return err
		}},
		{ID: 2, Kind: thrift.KindList, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				v, err := d.ReadI32()
				out.Encodings = append(out.Encodings, Encoding(v))
				return err
			})
		}},
		{ID: 3, Kind: thrift.KindList, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				s, err := d.ReadString()
				out.PathInSchema = append(out.PathInSchema, s)
				return err
			})
		}},
		{ID: 4, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.Codec = CompressionCodec(v)
			return err
		}},
		{ID: 5, Kind: thrift.KindI64, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI64()
			out.NumValues = v
			return err
		}},
		{ID: 6, Kind: thrift.KindI64, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI64()
			out.TotalUncompressedSize = v
			return err
		}},
		{ID: 7, Kind: thrift.KindI64, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI64()
			out.TotalCompressedSize = v
			return err
		}},
		{ID: 8, Kind: thrift.KindList, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				kv, err := decodeKeyValue(d)
				out.KeyValueMetadata = append(out.KeyValueMetadata, kv)
				return err
			})
		}},
		{ID: 9, Kind: thrift.KindI64, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI64()
			out.DataPageOffset = v
			return err
		}},
		{ID: 10, Kind: thrift.KindI64, Set: i64PtrField(&out.IndexPageOffset)},
		{ID: 11, Kind: thrift.KindI64, Set: i64PtrField(&out.DictionaryPageOffset)},
		{ID: 12, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			st, err := decodeStatistics(d)
			out.Statistics = st
			return err
		}},
		{ID: 13, Kind: thrift.KindList, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				pes, err := decodePageEncodingStats(d)
				out.EncodingStats = append(out.EncodingStats, pes)
				return err
			})
		}},
		{ID: 14, Kind: thrift.KindI64, Set: i64PtrField(&out.BloomFilterOffset)},
		{ID: 15, Kind: thrift.KindI32, Set: intPtrField(&out.BloomFilterLength)},
		{ID: 16, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			ss, err := decodeSizeStatistics(d)
			out.SizeStatistics = ss
			return err
		}},
	})
}

func decodeStatistics(d *thrift.Decoder) (*Statistics, error) {
	out := &Statistics{}
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindBinary, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			b, err := d.ReadBinary()
			out.Max = append([]byte(nil), b...)
			return err
		}},
		{ID: 2, Kind: thrift.KindBinary, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			b, err := d.ReadBinary()
			out.Min = append([]byte(nil), b...)
			return err
		}},
		{ID: 3, Kind: thrift.KindI64, Set: i64PtrField(&out.NullCount)},
		{ID: 4, Kind: thrift.KindI64, Set: i64PtrField(&out.DistinctCount)},
		{ID: 5, Kind: thrift.KindBinary, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			b, err := d.ReadBinary()
			out.MaxValue = append([]byte(nil), b...)
			return err
		}},
		{ID: 6, Kind: thrift.KindBinary, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			b, err := d.ReadBinary()
			out.MinValue = append([]byte(nil), b...)
			return err
		}},
	})
	return out, err
}

func decodePageEncodingStats(d *thrift.Decoder) (PageEncodingStats, error) {
	var out PageEncodingStats
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.PageType = PageType(v)
			return err
		}},
		{ID: 2, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.Encoding = Encoding(v)
			return err
		}},
		{ID: 3, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.Count = v
			return err
		}},
	})
	return out, err
}

func decodeSizeStatistics(d *thrift.Decoder) (*SizeStatistics, error) {
	out := &SizeStatistics{}
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindI64, Set: i64PtrField(&out.UnencodedByteArrayDataBytes)},
		{ID: 2, Kind: thrift.KindList, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				v, err := d.ReadI64()
				out.RepetitionLevelHistogram = append(out.RepetitionLevelHistogram, v)
				return err
			})
		}},
		{ID: 3, Kind: thrift.KindList, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				v, err := d.ReadI64()
				out.DefinitionLevelHistogram = append(out.DefinitionLevelHistogram, v)
				return err
			})
		}},
	})
	return out, err
}

// DecodePageHeader decodes a PageHeader struct, as found immediately before
// each page's payload within a column chunk (spec.md section 4.6).
//
// Grounded on other_examples/aeac3f20_parquet-go-parquet-go__format-thriftdecode-decode.go.go's
// struct-table style, applied to PageHeader rather than OffsetIndex/ColumnIndex.
func DecodePageHeader(d *thrift.Decoder) (*PageHeader, error) {
	out := &PageHeader{}
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.Type = PageType(v)
			return err
		}},
		{ID: 2, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.UncompressedPageSize = v
			return err
		}},
		{ID: 3, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.CompressedPageSize = v
			return err
		}},
		{ID: 4, Kind: thrift.KindI32, Set: intPtrField(&out.CRC)},
		{ID: 5, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			dph, err := decodeDataPageHeader(d)
			out.DataPageHeader = dph
			return err
		}},
		{ID: 6, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			out.IndexPageHeader = &IndexPageHeader{}
			return emptyStruct(d)
		}},
		{ID: 7, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			dph, err := decodeDictionaryPageHeader(d)
			out.DictionaryPageHeader = dph
			return err
		}},
		{ID: 8, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			dph, err := decodeDataPageHeaderV2(d)
			out.DataPageHeaderV2 = dph
			return err
		}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "format: decode PageHeader")
	}
	return out, nil
}

func decodeDataPageHeader(d *thrift.Decoder) (*DataPageHeader, error) {
	out := &DataPageHeader{}
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.NumValues = v
			return err
		}},
		{ID: 2, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.Encoding = Encoding(v)
			return err
		}},
		{ID: 3, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.DefinitionLevelEncoding = Encoding(v)
			return err
		}},
		{ID: 4, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.RepetitionLevelEncoding = Encoding(v)
			return err
		}},
		{ID: 5, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			st, err := decodeStatistics(d)
			out.Statistics = st
			return err
		}},
	})
	return out, err
}

func decodeDataPageHeaderV2(d *thrift.Decoder) (*DataPageHeaderV2, error) {
	out := &DataPageHeaderV2{}
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.NumValues = v
			return err
		}},
		{ID: 2, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.NumNulls = v
			return err
		}},
		{ID: 3, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.NumRows = v
			return err
		}},
		{ID: 4, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.Encoding = Encoding(v)
			return err
		}},
		{ID: 5, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.DefinitionLevelsByteLength = v
			return err
		}},
		{ID: 6, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.RepetitionLevelsByteLength = v
			return err
		}},
		{ID: 7, Kind: thrift.KindBool, Set: boolPtrField(&out.IsCompressed)},
		{ID: 8, Kind: thrift.KindStruct, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			st, err := decodeStatistics(d)
			out.Statistics = st
			return err
		}},
	})
	return out, err
}

func decodeDictionaryPageHeader(d *thrift.Decoder) (*DictionaryPageHeader, error) {
	out := &DictionaryPageHeader{}
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.NumValues = v
			return err
		}},
		{ID: 2, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.Encoding = Encoding(v)
			return err
		}},
		{ID: 3, Kind: thrift.KindBool, Set: boolPtrField(&out.IsSorted)},
	})
	return out, err
}

// DecodeOffsetIndex decodes an OffsetIndex struct. Parsed where present but
// not otherwise acted on by the core (spec.md section 1).
//
// Grounded on other_examples/aeac3f20_parquet-go-parquet-go__format-thriftdecode-decode.go.go's
// DecodeOffsetIndex.
func DecodeOffsetIndex(d *thrift.Decoder) (*OffsetIndex, error) {
	out := &OffsetIndex{}
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindList, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				pl, err := decodePageLocation(d)
				out.PageLocations = append(out.PageLocations, pl)
				return err
			})
		}},
		{ID: 2, Kind: thrift.KindList, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				v, err := d.ReadI64()
				out.UnencodedByteArrayDataBytes = append(out.UnencodedByteArrayDataBytes, v)
				return err
			})
		}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "format: decode OffsetIndex")
	}
	return out, nil
}

func decodePageLocation(d *thrift.Decoder) (PageLocation, error) {
	var out PageLocation
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindI64, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI64()
			out.Offset = v
			return err
		}},
		{ID: 2, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.CompressedPageSize = v
			return err
		}},
		{ID: 3, Kind: thrift.KindI64, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI64()
			out.FirstRowIndex = v
			return err
		}},
	})
	return out, err
}

// DecodeColumnIndex decodes a ColumnIndex struct. Parsed where present but
// not otherwise acted on by the core (spec.md section 1).
func DecodeColumnIndex(d *thrift.Decoder) (*ColumnIndex, error) {
	out := &ColumnIndex{}
	err := thrift.DecodeStruct(d, []thrift.Field{
		{ID: 1, Kind: thrift.KindList, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				v, err := d.ReadBoolElem()
				out.NullPages = append(out.NullPages, v)
				return err
			})
		}},
		{ID: 2, Kind: thrift.KindList, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				b, err := d.ReadBinary()
				out.MinValues = append(out.MinValues, append([]byte(nil), b...))
				return err
			})
		}},
		{ID: 3, Kind: thrift.KindList, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				b, err := d.ReadBinary()
				out.MaxValues = append(out.MaxValues, append([]byte(nil), b...))
				return err
			})
		}},
		{ID: 4, Kind: thrift.KindI32, Required: true, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			v, err := d.ReadI32()
			out.BoundaryOrder = BoundaryOrder(v)
			return err
		}},
		{ID: 5, Kind: thrift.KindList, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				v, err := d.ReadI64()
				out.NullCounts = append(out.NullCounts, v)
				return err
			})
		}},
		{ID: 6, Kind: thrift.KindList, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				v, err := d.ReadI64()
				out.RepetitionLevelHistogram = append(out.RepetitionLevelHistogram, v)
				return err
			})
		}},
		{ID: 7, Kind: thrift.KindList, Set: func(d *thrift.Decoder, _ thrift.Type) error {
			return decodeList(d, func(d *thrift.Decoder) error {
				v, err := d.ReadI64()
				out.DefinitionLevelHistogram = append(out.DefinitionLevelHistogram, v)
				return err
			})
		}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "format: decode ColumnIndex")
	}
	return out, nil
}
