package parquetcore

import (
	"github.com/pkg/errors"

	"github.com/go-columnar/parquetcore/format"
)

// leaf is one physical column of the schema: its flattened path from the
// message root, derived repetition/definition level ceilings, and a back
// pointer to the SchemaElement describing its physical/logical type.
type leaf struct {
	element     *format.SchemaElement
	path        []string
	columnIndex int
	maxDef      int
	maxRep      int
}

// deriveLeaves walks the pre-order flattened schema (root message element
// first, spec.md section 3) and reconstructs, for every leaf, its maximum
// definition and repetition level: the count of OPTIONAL and REPEATED
// ancestors (plus itself if OPTIONAL or REPEATED) is its definition level,
// and the count of REPEATED ancestors (plus itself if REPEATED) is its
// repetition level.
func deriveLeaves(schema []format.SchemaElement) ([]leaf, error) {
	if len(schema) == 0 {
		return nil, errors.Wrap(ErrMalformedMetadata, "empty schema")
	}
	root := &schema[0]
	if !root.IsGroup() {
		return nil, errors.Wrap(ErrMalformedMetadata, "schema root must be a group")
	}

	w := &schemaWalker{schema: schema, pos: 1}
	var leaves []leaf
	for i := 0; i < int(*root.NumChildren); i++ {
		if err := w.walk(nil, 0, 0, &leaves); err != nil {
			return nil, err
		}
	}
	if w.pos != len(schema) {
		return nil, errors.Wrapf(ErrMalformedMetadata, "schema tree left %d trailing elements unconsumed", len(schema)-w.pos)
	}
	return leaves, nil
}

type schemaWalker struct {
	schema []format.SchemaElement
	pos    int
}

func (w *schemaWalker) walk(parentPath []string, def, rep int, out *[]leaf) error {
	if w.pos >= len(w.schema) {
		return errors.Wrap(ErrMalformedMetadata, "schema tree truncated")
	}
	elem := &w.schema[w.pos]
	w.pos++

	rt := format.Required
	if elem.RepetitionType != nil {
		rt = *elem.RepetitionType
	}
	if rt == format.Optional {
		def++
	} else if rt == format.Repeated {
		def++
		rep++
	}

	path := append(append([]string{}, parentPath...), elem.Name)

	if !elem.IsGroup() {
		*out = append(*out, leaf{
			element:     elem,
			path:        path,
			columnIndex: len(*out),
			maxDef:      def,
			maxRep:      rep,
		})
		return nil
	}

	for i := 0; i < int(*elem.NumChildren); i++ {
		if err := w.walk(path, def, rep, out); err != nil {
			return err
		}
	}
	return nil
}
