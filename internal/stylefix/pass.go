// Package stylefix implements the style-fix pass. It reshapes lowered
// declaration forms into their natural declaration forms (`var x = class
// {...}` -> `class x {...}`) and relaxes `var` to `let`.
package stylefix

import "github.com/gentsgo/gents/internal/ast"

// Options configures the pass. RewriteVarToLet is a configurable rule,
// default on.
type Options struct {
	RewriteVarToLet bool
}

func DefaultOptions() Options {
	return Options{RewriteVarToLet: true}
}

// Run applies the pass to every script.
func Run(scripts []*ast.Node, opts Options) {
	for _, script := range scripts {
		fixStatementContainer(script, opts)
	}
}

func isStatementContainer(n *ast.Node) bool {
	switch n.Token {
	case ast.TBlock, ast.TScript, ast.TModuleBody:
		return true
	default:
		return false
	}
}

// fixStatementContainer walks n looking for statement-list containers and,
// within each, applies fixStatement to every statement in place — a
// statement may be *replaced* (lifted), which is why this can't reuse the
// read-only postOrder walker in internal/typeannotate.
func fixStatementContainer(n *ast.Node, opts Options) {
	if n == nil {
		return
	}
	if isStatementContainer(n) {
		for i, stmt := range n.Children {
			n.Children[i] = fixStatement(stmt, opts)
		}
	}
	for _, c := range n.Children {
		fixStatementContainer(c, opts)
	}
}

// fixStatement applies the three reshaping rules to a single statement
// and returns its replacement (itself, if unchanged).
func fixStatement(n *ast.Node, opts Options) *ast.Node {
	switch n.Token {
	case ast.TVar:
		if opts.RewriteVarToLet {
			n.Token = ast.TLet
		}
		if hasGrandchildren(n) {
			rhs := n.FirstChild().FirstChild()
			if rhs != nil && rhs.Token == ast.TClass {
				return liftClassOrFunction(n)
			}
		}
		return n

	case ast.TLet:
		if hasGrandchildren(n) {
			rhs := n.FirstChild().FirstChild()
			if rhs != nil && rhs.Token == ast.TClass {
				return liftClassOrFunction(n)
			}
		}
		return n

	case ast.TConst:
		if hasGrandchildren(n) {
			rhs := n.FirstChild().FirstChild()
			if rhs == nil {
				return n
			}
			switch rhs.Token {
			case ast.TClass:
				return liftClassOrFunction(n)
			case ast.TFunction:
				return fixConstFunction(n, rhs)
			}
		}
		return n

	default:
		return n
	}
}

// hasGrandchildren mirrors the original gents check: the binding's first
// child (the NAME being declared) must itself have a child (the
// initializer) for a lift to even be considered.
func hasGrandchildren(n *ast.Node) bool {
	first := n.FirstChild()
	return first != nil && len(first.Children) > 0
}

// liftClassOrFunction replaces `var/let/const x = class/function {...}`
// with `class/function x {...}`, renaming the literal to the binding's
// name.
func liftClassOrFunction(n *ast.Node) *ast.Node {
	binding := n.FirstChild()       // NAME node being declared
	literal := binding.FirstChild() // CLASS or FUNCTION node

	// Mutate the literal in place (rather than building a fresh node) so any
	// comment already attached to it in the comment registry — keyed by
	// node identity — survives the lift.
	literal.Payload = binding.Payload
	return literal
}

// fixConstFunction implements the arity-checked splice-then-lift rule for
// `const f = function(...) {...}` with a declared function type.
func fixConstFunction(n *ast.Node, fn *ast.Node) *ast.Node {
	binding := n.FirstChild()
	declaredType := binding.DeclaredType

	if declaredType == nil {
		// Untyped case is safely liftable.
		return liftClassOrFunction(n)
	}

	params := functionParams(fn)
	typeParams := ast.ParamsOf(declaredType)
	if len(params) != len(typeParams) {
		// Inconsistent parameter arity: skip the lift, proceed unchanged.
		// Prefer correctness to prettification.
		return n
	}

	fn.DeclaredType = ast.ReturnTypeOf(declaredType)
	paramList := functionParamList(fn)
	for i, typed := range typeParams {
		orig := params[i]
		if typed.Token == ast.TRest {
			typed.Payload = orig.Payload
			if typed.DeclaredType == nil {
				typed.DeclaredType = ast.ArrayType(ast.AnyType())
			}
		} else {
			typed.Payload = orig.Payload
		}
		paramList.Children[i] = typed
	}

	binding.DeclaredType = nil
	return liftClassOrFunction(n)
}

func functionParamList(fn *ast.Node) *ast.Node {
	for _, c := range fn.Children {
		if c.Token == ast.TParamList {
			return c
		}
	}
	return nil
}

func functionParams(fn *ast.Node) []*ast.Node {
	if pl := functionParamList(fn); pl != nil {
		return pl.Children
	}
	return nil
}
