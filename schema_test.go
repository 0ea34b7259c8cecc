package parquetcore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-columnar/parquetcore/format"
)

func i32p(v int32) *int32 { return &v }
func repP(r format.FieldRepetitionType) *format.FieldRepetitionType { return &r }
func typeP(t format.Type) *format.Type { return &t }

func TestDeriveLeavesFlatSchema(t *testing.T) {
	schema := []format.SchemaElement{
		{Name: "schema", NumChildren: i32p(2)},
		{Name: "id", Type: typeP(format.TypeInt32), RepetitionType: repP(format.Required)},
		{Name: "name", Type: typeP(format.TypeByteArray), RepetitionType: repP(format.Optional)},
	}

	leaves, err := deriveLeaves(schema)
	require.NoError(t, err)
	require.Len(t, leaves, 2)

	require.Equal(t, []string{"id"}, leaves[0].path)
	require.Equal(t, 0, leaves[0].maxDef)
	require.Equal(t, 0, leaves[0].maxRep)

	require.Equal(t, []string{"name"}, leaves[1].path)
	require.Equal(t, 1, leaves[1].maxDef)
	require.Equal(t, 0, leaves[1].maxRep)
}

func TestDeriveLeavesNestedRepeatedGroup(t *testing.T) {
	schema := []format.SchemaElement{
		{Name: "schema", NumChildren: i32p(2)},
		{Name: "id", Type: typeP(format.TypeInt32), RepetitionType: repP(format.Required)},
		{Name: "scores", RepetitionType: repP(format.Repeated), NumChildren: i32p(1)},
		{Name: "value", Type: typeP(format.TypeInt32), RepetitionType: repP(format.Required)},
	}

	leaves, err := deriveLeaves(schema)
	require.NoError(t, err)
	require.Len(t, leaves, 2)

	require.Equal(t, []string{"id"}, leaves[0].path)
	require.Equal(t, 0, leaves[0].columnIndex)

	require.Equal(t, []string{"scores", "value"}, leaves[1].path)
	require.Equal(t, 1, leaves[1].columnIndex)
	require.Equal(t, 1, leaves[1].maxDef)
	require.Equal(t, 1, leaves[1].maxRep)
}

func TestDeriveLeavesRejectsEmptySchema(t *testing.T) {
	_, err := deriveLeaves(nil)
	require.ErrorIs(t, err, ErrMalformedMetadata)
}

func TestDeriveLeavesRejectsNonGroupRoot(t *testing.T) {
	schema := []format.SchemaElement{
		{Name: "not_a_group", Type: typeP(format.TypeInt32)},
	}
	_, err := deriveLeaves(schema)
	require.ErrorIs(t, err, ErrMalformedMetadata)
}
