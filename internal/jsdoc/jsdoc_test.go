package jsdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentsgo/gents/internal/ast"
)

func TestParseExtractsParamReturnVisibilityAndExternsFlag(t *testing.T) {
	parsed := Parse(`/**
	 * @param {number} x
	 * @return {string}
	 * @private
	 */`)

	require.NotNil(t, parsed.Doc.ParamTypes["x"])
	assert.Equal(t, ast.TString, parsed.Doc.ParamTypes["x"].Token)
	assert.Equal(t, "number", parsed.Doc.ParamTypes["x"].Payload)
	assert.Equal(t, "string", parsed.Doc.ReturnType.Payload)
	assert.Equal(t, ast.VisibilityPrivate, parsed.Doc.Visibility)
	assert.False(t, parsed.Externs)
}

func TestParseConstTagWithTypeSetsBothConstAndType(t *testing.T) {
	parsed := Parse(`/** @const {string} */`)
	assert.True(t, parsed.Doc.Const)
	require.NotNil(t, parsed.Doc.Type)
	assert.Equal(t, "string", parsed.Doc.Type.Payload)
}

func TestParseExternsTagSetsExternsFlag(t *testing.T) {
	parsed := Parse(`/** @externs */`)
	assert.True(t, parsed.Externs)
}

func TestParseUnknownTagIsIgnored(t *testing.T) {
	parsed := Parse(`/** @customTag something */`)
	assert.Nil(t, parsed.Doc.Type)
	assert.False(t, parsed.Externs)
}

func TestStripStarsRemovesLeadingStarsFromEachLine(t *testing.T) {
	text := "/**\n * line one\n * line two\n */"
	assert.Equal(t, "line one\nline two", StripStars(text))
}

func TestParseTypeExprEmptyStringReturnsEmptyLeaf(t *testing.T) {
	n := ParseTypeExpr("")
	assert.Equal(t, ast.TEmpty, n.Token)
}

func TestParseTypeExprUnionSplitsOnPipe(t *testing.T) {
	n := ParseTypeExpr("string|number")
	require.Equal(t, ast.TPipe, n.Token)
	require.Len(t, n.Children, 2)
	assert.Equal(t, "string", n.Children[0].Payload)
	assert.Equal(t, "number", n.Children[1].Payload)
}

func TestParseTypeExprBangStripsNonNullPrefix(t *testing.T) {
	n := ParseTypeExpr("!Foo")
	require.Equal(t, ast.TBang, n.Token)
	require.Len(t, n.Children, 1)
	assert.Equal(t, "Foo", n.Children[0].Payload)
}

func TestParseTypeExprQMarkWithNoOperandIsBareUnknown(t *testing.T) {
	n := ParseTypeExpr("?")
	assert.Equal(t, ast.TQMark, n.Token)
	assert.Empty(t, n.Children)
}

func TestParseTypeExprQMarkWithOperandWrapsNullableType(t *testing.T) {
	n := ParseTypeExpr("?Foo")
	require.Equal(t, ast.TQMark, n.Token)
	require.Len(t, n.Children, 1)
	assert.Equal(t, "Foo", n.Children[0].Payload)
}

func TestParseTypeExprEllipsisWrapsRestType(t *testing.T) {
	n := ParseTypeExpr("...string")
	require.Equal(t, ast.TEllipsis, n.Token)
	require.Len(t, n.Children, 1)
	assert.Equal(t, "string", n.Children[0].Payload)
}

func TestParseTypeExprGenericParsesAngleBracketArgs(t *testing.T) {
	n := ParseTypeExpr("Array<string>")
	assert.Equal(t, ast.TString, n.Token)
	assert.Equal(t, "Array", n.Payload)
	require.Len(t, n.Children, 1)
	block := n.Children[0]
	assert.Equal(t, ast.TBlock, block.Token)
	require.Len(t, block.Children, 1)
	assert.Equal(t, "string", block.Children[0].Payload)
}

func TestParseTypeExprRecordParsesTypedAndBareFields(t *testing.T) {
	n := ParseTypeExpr("{a: number, b}")
	require.Equal(t, ast.TLC, n.Token)
	require.Len(t, n.Children, 2)

	a := n.Children[0]
	assert.Equal(t, ast.TColon, a.Token)
	assert.Equal(t, "a", a.Payload)
	require.Len(t, a.Children, 1)
	assert.Equal(t, "number", a.Children[0].Payload)

	b := n.Children[1]
	assert.Equal(t, ast.TColon, b.Token)
	assert.Equal(t, "b", b.Payload)
	assert.Empty(t, b.Children)
}

func TestParseTypeExprFunctionWithRestAndReturnType(t *testing.T) {
	n := ParseTypeExpr("function(number, ...string): number")
	require.Equal(t, ast.TFunction, n.Token)
	require.Len(t, n.Children, 2)

	paramList := n.Children[0]
	assert.Equal(t, ast.TParamList, paramList.Token)
	require.Len(t, paramList.Children, 2)
	assert.Equal(t, "number", paramList.Children[0].Payload)
	assert.Equal(t, ast.TEllipsis, paramList.Children[1].Token)
	assert.Equal(t, "string", paramList.Children[1].Children[0].Payload)

	ret := n.Children[1]
	assert.Equal(t, "number", ret.Payload)
}

func TestParseTypeExprParenthesizedUnionStripsOuterParens(t *testing.T) {
	n := ParseTypeExpr("(string|number)")
	require.Equal(t, ast.TPipe, n.Token)
	require.Len(t, n.Children, 2)
}
