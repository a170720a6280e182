// Package tsprinter implements the typed code generator. It extends
// internal/jsprinter with exactly three kinds of hook — a pre-hook for
// comments and casts, an override for the synthetic UNDEFINED_TYPE leaf,
// and post-hooks for default field values and restoring constructor-call
// parens — and nothing else.
package tsprinter

import (
	"github.com/gentsgo/gents/internal/ast"
	"github.com/gentsgo/gents/internal/jsprinter"
)

// Generator emits TypeScript source for one script.
type Generator struct {
	comments *ast.Comments
}

func New(comments *ast.Comments) *Generator {
	return &Generator{comments: comments}
}

// Print renders script to TypeScript source text.
func (g *Generator) Print(script *ast.Node) string {
	p := jsprinter.New(g)
	p.PrintScript(script)
	return p.String()
}

// Pre implements jsprinter.Hooks. It emits any attached comment verbatim,
// then handles CAST completely — casts are never passed to the base
// emitter.
func (g *Generator) Pre(p *jsprinter.Printer, n *ast.Node) bool {
	if text, ok := g.comments.Get(n); ok {
		p.Write(text)
		p.Write("\n")
	}

	if n.Token == ast.TCast {
		p.Write("(")
		p.PrintExpr(n.FirstChild())
		p.Write(" as ")
		p.PrintType(n.DeclaredType)
		p.Write(")")
		return true
	}

	if n.Token == ast.TUndefinedType {
		p.Write("undefined")
		return true
	}

	return false
}

// Post implements jsprinter.Hooks: default field initializers and the
// restored "()" after a bare constructor reference.
func (g *Generator) Post(p *jsprinter.Printer, n *ast.Node) {
	switch n.Token {
	case ast.TMemberVariableDef:
		if len(n.Children) > 0 {
			p.Write(" = ")
			p.PrintExpr(n.Children[0])
		}
	case ast.TNew:
		if len(n.Children) == 1 {
			p.Write("()")
		}
	}
}
