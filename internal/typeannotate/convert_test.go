package typeannotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentsgo/gents/internal/ast"
	"github.com/gentsgo/gents/internal/jsdoc"
)

func identity(name string) string { return name }

func TestConvertVoidIsReturnPositionSensitive(t *testing.T) {
	voidExpr := jsdoc.ParseTypeExpr("void")

	ret, err := ConvertType(voidExpr, true, identity)
	require.NoError(t, err)
	assert.Equal(t, ast.TVoid, ret.Token)

	nonRet, err := ConvertType(voidExpr, false, identity)
	require.NoError(t, err)
	assert.Equal(t, ast.TUndefinedType, nonRet.Token)
}

func TestConvertNullableProducesUnionWithNullFirst(t *testing.T) {
	converted, err := ConvertType(jsdoc.ParseTypeExpr("?string"), false, identity)
	require.NoError(t, err)

	require.Equal(t, ast.TUnionType, converted.Token)
	require.Len(t, converted.Children, 2)
	assert.Equal(t, ast.TNull, converted.Children[0].Token)
	assert.Equal(t, ast.TStringType, converted.Children[1].Token)
}

func TestFlattenUnionDedupesRepeatedMemberAndPreservesFirstOccurrenceOrder(t *testing.T) {
	// (A | (B | A)) -> A once, B once, in that order.
	a := ast.NamedType("A")
	b := ast.NamedType("B")
	nested := ast.UnionType([]*ast.Node{b, a})
	flat := FlattenUnion([]*ast.Node{a, nested})

	require.Len(t, flat.Children, 2)
	assert.Equal(t, "A", flat.Children[0].Payload)
	assert.Equal(t, "B", flat.Children[1].Payload)
}

func TestFlattenUnionKeepsAtMostOneNull(t *testing.T) {
	flat := FlattenUnion([]*ast.Node{ast.NullType(), ast.NamedType("T"), ast.NullType()})
	require.Len(t, flat.Children, 2)
	assert.Equal(t, ast.TNull, flat.Children[0].Token)
	assert.Equal(t, "T", flat.Children[1].Payload)
}

func TestConvertArrayNamedType(t *testing.T) {
	converted, err := ConvertType(jsdoc.ParseTypeExpr("Array<string>"), false, identity)
	require.NoError(t, err)
	require.Equal(t, ast.TArrayType, converted.Token)
	assert.Equal(t, ast.TStringType, converted.FirstChild().Token)
}

func TestConvertParameterizedNamedType(t *testing.T) {
	converted, err := ConvertType(jsdoc.ParseTypeExpr("Map<string, number>"), false, identity)
	require.NoError(t, err)
	require.Equal(t, ast.TNamedType, converted.Token)
	require.Len(t, converted.Children, 2)
	assert.Equal(t, ast.TStringType, converted.Children[0].Token)
	assert.Equal(t, ast.TNumberType, converted.Children[1].Token)
}

func TestConvertRecordStripsQuotesFromFieldNames(t *testing.T) {
	converted, err := ConvertType(jsdoc.ParseTypeExpr(`{'a': number, b: string}`), false, identity)
	require.NoError(t, err)
	require.Equal(t, ast.TRecordType, converted.Token)
	require.Len(t, converted.Children, 2)
	assert.Equal(t, "a", converted.Children[0].Payload)
	assert.Equal(t, "b", converted.Children[1].Payload)
}

func TestConvertFunctionTypeNumbersParamsAndHandlesRestAndOptional(t *testing.T) {
	converted, err := ConvertType(jsdoc.ParseTypeExpr("function(number, ...string): boolean"), false, identity)
	require.NoError(t, err)
	require.Equal(t, ast.TFunctionType, converted.Token)

	ret := ast.ReturnTypeOf(converted)
	assert.Equal(t, ast.TBooleanType, ret.Token)

	params := ast.ParamsOf(converted)
	require.Len(t, params, 2)
	assert.Equal(t, "p1", params[0].Payload)
	assert.Equal(t, ast.TName, params[0].Token)
	assert.Equal(t, "p2", params[1].Payload)
	assert.Equal(t, ast.TRest, params[1].Token)
}

func TestConvertUnknownTokenFailsLoud(t *testing.T) {
	bogus := &ast.Node{Token: ast.TColon}
	_, err := ConvertType(bogus, false, identity)
	require.Error(t, err)
	var unsupported *UnsupportedTypeError
	assert.ErrorAs(t, err, &unsupported)
}

func TestConvertRewritesNamedTypeThroughCallback(t *testing.T) {
	rewrite := func(name string) string {
		if name == "ns.T" {
			return "T"
		}
		return name
	}
	converted, err := ConvertType(jsdoc.ParseTypeExpr("ns.T"), false, rewrite)
	require.NoError(t, err)
	assert.Equal(t, "T", converted.Payload)
}
