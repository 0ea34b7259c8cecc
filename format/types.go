// Package format transcribes the Parquet Thrift schema (parquet.thrift) into
// Go types: physical/logical type enums, SchemaElement, FileMetaData,
// RowGroup, ColumnChunk, ColumnMetaData, PageHeader and its three
// sub-headers, Statistics, and the index structures that are parsed but not
// otherwise acted on.
//
// Grounded on timmyb32r-kaitai_based_parquet_parser/main/parquet_types.go,
// widened with the fields other_examples/aeac3f20_parquet-go-parquet-go
// touches (OffsetIndex, ColumnIndex, PageLocation, SizeStatistics) and with
// the logical-type union spec.md section 3 requires.
package format

// Type is the physical (primitive) storage type of a schema leaf.
type Type int32

const (
	TypeBoolean             Type = 0
	TypeInt32               Type = 1
	TypeInt64               Type = 2
	TypeInt96                Type = 3
	TypeFloat               Type = 4
	TypeDouble              Type = 5
	TypeByteArray           Type = 6
	TypeFixedLenByteArray   Type = 7
)

func (t Type) String() string {
	switch t {
	case TypeBoolean:
		return "BOOLEAN"
	case TypeInt32:
		return "INT32"
	case TypeInt64:
		return "INT64"
	case TypeInt96:
		return "INT96"
	case TypeFloat:
		return "FLOAT"
	case TypeDouble:
		return "DOUBLE"
	case TypeByteArray:
		return "BYTE_ARRAY"
	case TypeFixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN_TYPE"
	}
}

// FieldRepetitionType records how many times a schema element may occur in
// a valid value set.
type FieldRepetitionType int32

const (
	Required FieldRepetitionType = 0
	Optional FieldRepetitionType = 1
	Repeated FieldRepetitionType = 2
)

func (r FieldRepetitionType) String() string {
	switch r {
	case Required:
		return "REQUIRED"
	case Optional:
		return "OPTIONAL"
	case Repeated:
		return "REPEATED"
	default:
		return "UNKNOWN_REPETITION"
	}
}

// ConvertedType is the legacy (pre-LogicalType) semantic-type annotation.
type ConvertedType int32

const (
	ConvertedUTF8            ConvertedType = 0
	ConvertedMap             ConvertedType = 1
	ConvertedMapKeyValue     ConvertedType = 2
	ConvertedList            ConvertedType = 3
	ConvertedEnum            ConvertedType = 4
	ConvertedDecimal         ConvertedType = 5
	ConvertedDate            ConvertedType = 6
	ConvertedTimeMillis      ConvertedType = 7
	ConvertedTimeMicros      ConvertedType = 8
	ConvertedTimestampMillis ConvertedType = 9
	ConvertedTimestampMicros ConvertedType = 10
	ConvertedUint8           ConvertedType = 11
	ConvertedUint16          ConvertedType = 12
	ConvertedUint32          ConvertedType = 13
	ConvertedUint64          ConvertedType = 14
	ConvertedInt8            ConvertedType = 15
	ConvertedInt16           ConvertedType = 16
	ConvertedInt32           ConvertedType = 17
	ConvertedInt64           ConvertedType = 18
	ConvertedJSON            ConvertedType = 19
	ConvertedBSON            ConvertedType = 20
	ConvertedInterval        ConvertedType = 21
)

// Encoding identifies a page's physical value encoding.
type Encoding int32

const (
	EncodingPlain                Encoding = 0
	EncodingPlainDictionary      Encoding = 2
	EncodingRLE                  Encoding = 3
	EncodingBitPacked            Encoding = 4
	EncodingDeltaBinaryPacked    Encoding = 5
	EncodingDeltaLengthByteArray Encoding = 6
	EncodingDeltaByteArray       Encoding = 7
	EncodingRLEDictionary        Encoding = 8
	EncodingByteStreamSplit      Encoding = 9
)

func (e Encoding) String() string {
	switch e {
	case EncodingPlain:
		return "PLAIN"
	case EncodingPlainDictionary:
		return "PLAIN_DICTIONARY"
	case EncodingRLE:
		return "RLE"
	case EncodingBitPacked:
		return "BIT_PACKED"
	case EncodingDeltaBinaryPacked:
		return "DELTA_BINARY_PACKED"
	case EncodingDeltaLengthByteArray:
		return "DELTA_LENGTH_BYTE_ARRAY"
	case EncodingDeltaByteArray:
		return "DELTA_BYTE_ARRAY"
	case EncodingRLEDictionary:
		return "RLE_DICTIONARY"
	case EncodingByteStreamSplit:
		return "BYTE_STREAM_SPLIT"
	default:
		return "UNKNOWN_ENCODING"
	}
}

// CompressionCodec identifies a column chunk's page-payload compression.
type CompressionCodec int32

const (
	CodecUncompressed CompressionCodec = 0
	CodecSnappy       CompressionCodec = 1
	CodecGzip         CompressionCodec = 2
	CodecLZO          CompressionCodec = 3
	CodecBrotli       CompressionCodec = 4
	CodecLZ4          CompressionCodec = 5
	CodecZstd         CompressionCodec = 6
	CodecLZ4Raw       CompressionCodec = 7
)

func (c CompressionCodec) String() string {
	switch c {
	case CodecUncompressed:
		return "UNCOMPRESSED"
	case CodecSnappy:
		return "SNAPPY"
	case CodecGzip:
		return "GZIP"
	case CodecLZO:
		return "LZO"
	case CodecBrotli:
		return "BROTLI"
	case CodecLZ4:
		return "LZ4"
	case CodecZstd:
		return "ZSTD"
	case CodecLZ4Raw:
		return "LZ4_RAW"
	default:
		return "UNKNOWN_CODEC"
	}
}

// PageType identifies a page header's sub-header variant.
type PageType int32

const (
	PageTypeDataPage       PageType = 0
	PageTypeIndexPage      PageType = 1
	PageTypeDictionaryPage PageType = 2
	PageTypeDataPageV2     PageType = 3
)

func (p PageType) String() string {
	switch p {
	case PageTypeDataPage:
		return "DATA_PAGE"
	case PageTypeIndexPage:
		return "INDEX_PAGE"
	case PageTypeDictionaryPage:
		return "DICTIONARY_PAGE"
	case PageTypeDataPageV2:
		return "DATA_PAGE_V2"
	default:
		return "UNKNOWN_PAGE_TYPE"
	}
}

// BoundaryOrder describes the ordering of min/max values across a column
// index's pages. Parsed but not acted on by the core (spec.md section 1).
type BoundaryOrder int32

const (
	BoundaryUnordered  BoundaryOrder = 0
	BoundaryAscending  BoundaryOrder = 1
	BoundaryDescending BoundaryOrder = 2
)

// LogicalType is the tagged-union overlay of a schema leaf's semantic type.
// Exactly one field should be non-nil on a well-formed element; which field
// is set acts as the tag.
type LogicalType struct {
	String        *StringType
	Map           *MapType
	List          *ListType
	Enum          *EnumType
	Decimal       *DecimalType
	Date          *DateType
	Time          *TimeType
	Timestamp     *TimestampType
	Integer       *IntType
	Unknown       *NullType
	JSON          *JSONType
	BSON          *BSONType
	UUID          *UUIDType
	Float16       *Float16Type
	Variant       *VariantType
}

type StringType struct{}
type MapType struct{}
type ListType struct{}
type EnumType struct{}
type NullType struct{}
type JSONType struct{}
type BSONType struct{}
type UUIDType struct{}
type Float16Type struct{}
type VariantType struct{}

type DecimalType struct {
	Scale     int32
	Precision int32
}

type DateType struct{}

type TimeUnit struct {
	Millis *struct{}
	Micros *struct{}
	Nanos  *struct{}
}

type TimeType struct {
	IsAdjustedToUTC bool
	Unit            TimeUnit
}

type TimestampType struct {
	IsAdjustedToUTC bool
	Unit            TimeUnit
}

type IntType struct {
	BitWidth int8
	IsSigned bool
}

// SchemaElement is one node of the pre-order flattened schema tree.
type SchemaElement struct {
	Type           *Type
	TypeLength     *int32
	RepetitionType *FieldRepetitionType
	Name           string
	NumChildren    *int32
	ConvertedType  *ConvertedType
	Scale          *int32
	Precision      *int32
	FieldID        *int32
	LogicalType    *LogicalType
}

// IsGroup reports whether this element is an internal (non-leaf) node.
func (s *SchemaElement) IsGroup() bool {
	return s.NumChildren != nil
}

type KeyValue struct {
	Key   string
	Value *string
}

type SortingColumn struct {
	ColumnIdx  int32
	Descending bool
	NullsFirst bool
}

type Statistics struct {
	Max           []byte
	Min           []byte
	NullCount     *int64
	DistinctCount *int64
	MaxValue      []byte
	MinValue      []byte
}

type PageEncodingStats struct {
	PageType PageType
	Encoding Encoding
	Count    int32
}

type SizeStatistics struct {
	UnencodedByteArrayDataBytes *int64
	RepetitionLevelHistogram    []int64
	DefinitionLevelHistogram    []int64
}

type ColumnMetaData struct {
	Type                  Type
	Encodings             []Encoding
	PathInSchema          []string
	Codec                 CompressionCodec
	NumValues             int64
	TotalUncompressedSize int64
	TotalCompressedSize   int64
	KeyValueMetadata      []KeyValue
	DataPageOffset        int64
	IndexPageOffset       *int64
	DictionaryPageOffset  *int64
	Statistics            *Statistics
	EncodingStats         []PageEncodingStats
	BloomFilterOffset     *int64
	BloomFilterLength     *int32
	SizeStatistics        *SizeStatistics
}

type ColumnChunk struct {
	FilePath          *string
	FileOffset        int64
	MetaData          *ColumnMetaData
	OffsetIndexOffset *int64
	OffsetIndexLength *int32
	ColumnIndexOffset *int64
	ColumnIndexLength *int32
}

type RowGroup struct {
	Columns             []ColumnChunk
	TotalByteSize       int64
	NumRows             int64
	SortingColumns      []SortingColumn
	FileOffset          *int64
	TotalCompressedSize *int64
	Ordinal             *int16
}

type EncryptionAlgorithm struct {
	AesGcmV1   *struct{}
	AesGcmCtrV1 *struct{}
}

type FileMetaData struct {
	Version              int32
	Schema               []SchemaElement
	NumRows              int64
	RowGroups            []RowGroup
	KeyValueMetadata     []KeyValue
	CreatedBy            *string
	ColumnOrders         []ColumnOrder
	EncryptionAlgorithm  *EncryptionAlgorithm
	FooterSigningKeyMeta []byte
}

// ColumnOrder is a tagged union; TypeOrder being non-nil means "use the
// natural ordering of the physical type".
type ColumnOrder struct {
	TypeOrder *struct{}
}

type DataPageHeader struct {
	NumValues               int32
	Encoding                Encoding
	DefinitionLevelEncoding Encoding
	RepetitionLevelEncoding Encoding
	Statistics              *Statistics
}

type DataPageHeaderV2 struct {
	NumValues                  int32
	NumNulls                   int32
	NumRows                    int32
	Encoding                   Encoding
	DefinitionLevelsByteLength int32
	RepetitionLevelsByteLength int32
	IsCompressed               *bool
	Statistics                 *Statistics
}

type DictionaryPageHeader struct {
	NumValues int32
	Encoding  Encoding
	IsSorted  *bool
}

type IndexPageHeader struct{}

type PageHeader struct {
	Type                 PageType
	UncompressedPageSize int32
	CompressedPageSize   int32
	CRC                  *int32
	DataPageHeader       *DataPageHeader
	IndexPageHeader      *IndexPageHeader
	DictionaryPageHeader *DictionaryPageHeader
	DataPageHeaderV2     *DataPageHeaderV2
}

// IsCompressedEffective reports whether a DATA_PAGE_V2 payload is compressed. Per
// the Parquet spec (and spec.md section 9 open question (a)), an absent
// field means "compressed".
func (h *DataPageHeaderV2) IsCompressedEffective() bool {
	return h.IsCompressed == nil || *h.IsCompressed
}

type PageLocation struct {
	Offset             int64
	CompressedPageSize int32
	FirstRowIndex      int64
}

type OffsetIndex struct {
	PageLocations               []PageLocation
	UnencodedByteArrayDataBytes []int64
}

type ColumnIndex struct {
	NullPages                []bool
	MinValues                [][]byte
	MaxValues                [][]byte
	BoundaryOrder            BoundaryOrder
	NullCounts               []int64
	RepetitionLevelHistogram []int64
	DefinitionLevelHistogram []int64
}
