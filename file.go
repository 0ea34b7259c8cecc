// Package parquetcore is a read-only decoder for the Apache Parquet
// columnar file format: footer parsing, schema derivation, and per-column
// value materialisation.
//
// Grounded on timmyb32r-kaitai_based_parquet_parser/main/main.go's
// open-footer-schema-column shape, rebuilt without the Kaitai-generated
// grammar layer (see DESIGN.md) and widened into the File/RowGroup API
// spec.md section 6 describes, plus the columnChunkReader structuring of
// Moonshile-parquet-go/chunk_reader.go for the page-walking internals in
// column.go.
package parquetcore

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/go-columnar/parquetcore/format"
)

const magic = "PAR1"

// minFileSize is PAR1 + footer length + PAR1.
const minFileSize = 4 + 4 + 4

// File is an opened Parquet file: its footer metadata and derived schema
// leaves. All read methods are blocking and synchronous (spec.md section
// 5); a File is not safe for concurrent use.
type File struct {
	ra     io.ReaderAt
	closer io.Closer
	size   int64

	meta   *format.FileMetaData
	leaves []leaf
	logger *zap.SugaredLogger
}

// Open opens the Parquet file at path and parses its footer.
func Open(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedFile, "open %s: %v", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(ErrMalformedFile, "stat %s: %v", path, err)
	}
	file, err := openReaderAt(f, info.Size(), opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	file.closer = f
	return file, nil
}

// OpenReader opens a Parquet file from an in-memory or otherwise seekable
// byte source of the given size, for callers that don't have a path (e.g.
// an object-storage range reader).
func OpenReader(ra io.ReaderAt, size int64, opts ...Option) (*File, error) {
	return openReaderAt(ra, size, opts)
}

func openReaderAt(ra io.ReaderAt, size int64, opts []Option) (*File, error) {
	o := resolveOptions(opts)
	if size < minFileSize {
		return nil, errors.Wrapf(ErrMalformedFile, "file size %d below minimum %d", size, minFileSize)
	}

	var head [4]byte
	if _, err := ra.ReadAt(head[:], 0); err != nil {
		return nil, shortOrMalformed(err, "read leading magic")
	}
	if string(head[:]) != magic {
		return nil, errors.Wrapf(ErrMalformedFile, "leading magic %q != %q", head[:], magic)
	}

	var tail [8]byte
	if _, err := ra.ReadAt(tail[:], size-8); err != nil {
		return nil, shortOrMalformed(err, "read trailer")
	}
	if string(tail[4:]) != magic {
		return nil, errors.Wrapf(ErrMalformedFile, "trailing magic %q != %q", tail[4:], magic)
	}
	footerLength := int64(leUint32(tail[:4]))
	if footerLength < 0 || footerLength > size-minFileSize {
		return nil, errors.Wrapf(ErrMalformedFile, "footer length %d out of range for file size %d", footerLength, size)
	}

	footerBytes := make([]byte, footerLength)
	if footerLength > 0 {
		if _, err := ra.ReadAt(footerBytes, size-8-footerLength); err != nil {
			return nil, shortOrMalformed(err, "read footer")
		}
	}

	meta, err := format.DecodeFileMetaData(footerBytes)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedMetadata, "decode FileMetaData: %v", err)
	}

	leaves, err := deriveLeaves(meta.Schema)
	if err != nil {
		return nil, err
	}

	o.logger.Debugw("parquetcore: opened file", "numRowGroups", len(meta.RowGroups), "numLeaves", len(leaves), "numRows", meta.NumRows)

	return &File{ra: ra, size: size, meta: meta, leaves: leaves, logger: o.logger}, nil
}

func shortOrMalformed(err error, context string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Wrap(ErrShortInput, context)
	}
	return errors.Wrapf(ErrMalformedFile, "%s: %v", context, err)
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// Close releases the underlying file handle, if Open (not OpenReader)
// created it. All slices previously returned by this File become invalid.
func (f *File) Close() error {
	if f.closer != nil {
		return f.closer.Close()
	}
	return nil
}

// Metadata returns the parsed footer FileMetaData.
func (f *File) Metadata() *format.FileMetaData {
	return f.meta
}

// NumRowGroups returns the number of row groups in the file.
func (f *File) NumRowGroups() int {
	return len(f.meta.RowGroups)
}

// RowGroup returns a reader for row group i.
func (f *File) RowGroup(i int) (*RowGroup, error) {
	if i < 0 || i >= len(f.meta.RowGroups) {
		return nil, errors.Wrapf(ErrMalformedMetadata, "row group index %d out of range [0,%d)", i, len(f.meta.RowGroups))
	}
	return &RowGroup{file: f, rg: &f.meta.RowGroups[i]}, nil
}

// FindSchemaElement looks up a leaf by its path-in-schema (leaf names from
// the root's children down to the leaf itself, root excluded).
func (f *File) FindSchemaElement(path []string) (columnIndex, maxDef, maxRep int, elem *format.SchemaElement, err error) {
	for _, l := range f.leaves {
		if pathsEqual(l.path, path) {
			return l.columnIndex, l.maxDef, l.maxRep, l.element, nil
		}
	}
	return 0, 0, 0, nil, errors.Wrapf(ErrMalformedMetadata, "no schema leaf at path %v", path)
}

func pathsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (f *File) readAt(pos int64, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := f.ra.ReadAt(buf, pos); err != nil {
		return nil, shortOrMalformed(err, "read page payload")
	}
	return buf, nil
}
