package tsprinter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gentsgo/gents/internal/ast"
)

func scriptOf(stmts ...*ast.Node) *ast.Node {
	return &ast.Node{Token: ast.TScript, Children: stmts}
}

func TestCastIsPrintedAsParenthesizedAsExpression(t *testing.T) {
	cast := &ast.Node{
		Token:        ast.TCast,
		DeclaredType: ast.NumberType(),
		Children:     []*ast.Node{ast.NewLeaf(ast.TName, "y")},
	}
	nameNode := ast.NewLeaf(ast.TName, "x")
	nameNode.Children = append(nameNode.Children, cast)
	decl := &ast.Node{Token: ast.TLet, Children: []*ast.Node{nameNode}}

	out := New(ast.NewComments()).Print(scriptOf(decl))
	assert.Equal(t, "let x = (y as number);\n", out)
}

func TestUndefinedTypeOverrideEmitsUndefinedKeyword(t *testing.T) {
	nameNode := ast.NewLeaf(ast.TName, "x")
	nameNode.DeclaredType = ast.UndefinedType()
	decl := &ast.Node{Token: ast.TLet, Children: []*ast.Node{nameNode}}

	out := New(ast.NewComments()).Print(scriptOf(decl))
	assert.Equal(t, "let x: undefined;\n", out)
}

func TestBareConstructorReferenceGetsParensRestored(t *testing.T) {
	// `new Foo` with no call arguments — the base printer's printNew
	// deliberately omits "()" for a lone constructor reference; tsprinter's
	// post-hook restores it.
	newExpr := &ast.Node{Token: ast.TNew, Children: []*ast.Node{ast.NewLeaf(ast.TName, "Foo")}}
	out := New(ast.NewComments()).Print(scriptOf(newExpr))
	assert.Equal(t, "new Foo();\n", out)
}

func TestConstructorCallWithArgumentsIsNotDoubled(t *testing.T) {
	newExpr := &ast.Node{Token: ast.TNew, Children: []*ast.Node{
		ast.NewLeaf(ast.TName, "Foo"),
		ast.NewLeaf(ast.TNumber, "1"),
	}}
	out := New(ast.NewComments()).Print(scriptOf(newExpr))
	assert.Equal(t, "new Foo(1);\n", out)
}

func TestMemberVariableDefaultValueIsAppendedByPostHook(t *testing.T) {
	member := &ast.Node{
		Token:        ast.TMemberVariableDef,
		Payload:      "count",
		DeclaredType: ast.NumberType(),
		Children:     []*ast.Node{ast.NewLeaf(ast.TNumber, "0")},
	}
	class := &ast.Node{Token: ast.TClass, Payload: "Counter", Children: []*ast.Node{member}}

	out := New(ast.NewComments()).Print(scriptOf(class))
	assert.Equal(t, "class Counter {\n  count: number = 0;\n}\n", out)
}

func TestAttachedCommentIsEmittedVerbatimBeforeItsNode(t *testing.T) {
	decl := &ast.Node{Token: ast.TLet, Children: []*ast.Node{ast.NewLeaf(ast.TName, "x")}}
	comments := ast.NewComments()
	comments.Set(decl, "// keep this")

	out := New(comments).Print(scriptOf(decl))
	assert.Equal(t, "// keep this\nlet x;\n", out)
}
