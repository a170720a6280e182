// Package jsprinter is the base JavaScript/typed-declaration emitter that
// internal/tsprinter extends. It is a minimal stand-in for the full
// Closure-compiler printer this module never receives: a buffer-backed
// struct with one dispatch method per node keyed by token, and no
// visitor-base-class inheritance.
package jsprinter

import (
	"strconv"
	"strings"

	"github.com/gentsgo/gents/internal/ast"
)

// Hooks lets a caller (internal/tsprinter) intercept emission around every
// node without the base printer knowing anything about TypeScript syntax.
// This mirrors a printer having a handful of targeted extension points
// rather than a generic plugin system.
type Hooks interface {
	// Pre runs before the base printer emits n. Returning true means the
	// base printer must not emit n at all (the hook already did).
	Pre(p *Printer, n *ast.Node) (handled bool)
	// Post runs after the base printer emits n, unless Pre already
	// short-circuited it.
	Post(p *Printer, n *ast.Node)
}

type noopHooks struct{}

func (noopHooks) Pre(*Printer, *ast.Node) bool { return false }
func (noopHooks) Post(*Printer, *ast.Node)     {}

// Printer accumulates emitted text for one script.
type Printer struct {
	sb     strings.Builder
	indent int
	hooks  Hooks
}

func New(hooks Hooks) *Printer {
	if hooks == nil {
		hooks = noopHooks{}
	}
	return &Printer{hooks: hooks}
}

func (p *Printer) String() string { return p.sb.String() }

func (p *Printer) Write(s string) { p.sb.WriteString(s) }

func (p *Printer) WriteIndent() {
	p.sb.WriteString(strings.Repeat("  ", p.indent))
}

// PrintScript emits every top-level statement of a SCRIPT (or
// MODULE_BODY-wrapped SCRIPT) node.
func (p *Printer) PrintScript(script *ast.Node) {
	body := script
	if first := script.FirstChild(); first != nil && first.Token == ast.TModuleBody {
		body = first
	}
	for _, stmt := range body.Children {
		p.PrintStatement(stmt)
	}
}

// PrintStatement prints one statement followed by the statement terminator
// it needs (";\n" for simple statements, "\n" for block-shaped ones).
func (p *Printer) PrintStatement(n *ast.Node) {
	if p.dispatch(n) {
		return
	}
	switch n.Token {
	case ast.TVar, ast.TLet, ast.TConst:
		p.printBinding(n)
		p.Write(";\n")
	case ast.TImport:
		p.printImport(n)
		p.Write(";\n")
	case ast.TClass:
		p.printClass(n)
		p.Write("\n")
	case ast.TFunction:
		p.printFunction(n)
		p.Write("\n")
	case ast.TBlock:
		p.printBlock(n)
		p.Write("\n")
	case ast.TMemberVariableDef:
		p.printMemberVariableDef(n)
		p.hooks.Post(p, n)
		p.Write(";\n")
	case ast.TReturn:
		p.Write("return")
		if expr := n.FirstChild(); expr != nil {
			p.Write(" ")
			p.PrintExpr(expr)
		}
		p.Write(";\n")
	default:
		p.PrintExpr(n)
		p.Write(";\n")
	}
}

// dispatch runs the Pre hook, and if it didn't handle n, returns false so
// the caller proceeds with base emission. It does not run Post; the
// callers that emit a node call Post themselves.
func (p *Printer) dispatch(n *ast.Node) (shortCircuited bool) {
	if p.hooks.Pre(p, n) {
		return true
	}
	return false
}

func (p *Printer) printBinding(n *ast.Node) {
	switch n.Token {
	case ast.TVar:
		p.Write("var ")
	case ast.TLet:
		p.Write("let ")
	case ast.TConst:
		p.Write("const ")
	}
	name := n.FirstChild()
	p.Write(name.Payload)
	if name.DeclaredType != nil {
		p.Write(": ")
		p.PrintType(name.DeclaredType)
	}
	if init := name.FirstChild(); init != nil {
		p.Write(" = ")
		p.PrintExpr(init)
	}
}

// printMemberVariableDef emits "<vis>? <name>: <type>" — the initializer,
// if any, is appended by tsprinter's post-hook, keeping generic field
// declaration separate from TS-specific default values.
func (p *Printer) printMemberVariableDef(n *ast.Node) {
	switch n.AccessModifier {
	case ast.VisibilityPrivate:
		p.Write("private ")
	case ast.VisibilityProtected:
		p.Write("protected ")
	}
	p.Write(n.Payload)
	if n.DeclaredType != nil {
		p.Write(": ")
		p.PrintType(n.DeclaredType)
	}
}

func (p *Printer) printImport(n *ast.Node) {
	p.Write("import ")
	specs := n.Children[1]
	p.Write("{")
	for i, spec := range specs.Children {
		if i > 0 {
			p.Write(", ")
		}
		p.Write(spec.FirstChild().Payload)
	}
	p.Write("} from '")
	p.Write(n.Payload)
	p.Write("'")
}

func (p *Printer) printClass(n *ast.Node) {
	p.Write("class ")
	p.Write(n.Payload)
	p.Write(" {\n")
	p.indent++
	for _, member := range n.Children {
		p.WriteIndent()
		p.PrintStatement(member)
	}
	p.indent--
	p.WriteIndent()
	p.Write("}")
}

func (p *Printer) printFunction(n *ast.Node) {
	p.Write("function ")
	p.Write(n.Payload)
	p.printParamListAndReturn(n)
	if body := functionBody(n); body != nil {
		p.Write(" ")
		p.printBlock(body)
	} else {
		p.Write(" {}")
	}
}

func functionBody(fn *ast.Node) *ast.Node {
	for _, c := range fn.Children {
		if c.Token == ast.TBlock {
			return c
		}
	}
	return nil
}

func functionParamList(fn *ast.Node) *ast.Node {
	for _, c := range fn.Children {
		if c.Token == ast.TParamList {
			return c
		}
	}
	return nil
}

func (p *Printer) printParamListAndReturn(fn *ast.Node) {
	p.Write("(")
	if pl := functionParamList(fn); pl != nil {
		for i, param := range pl.Children {
			if i > 0 {
				p.Write(", ")
			}
			p.printParam(param)
		}
	}
	p.Write(")")
	if fn.DeclaredType != nil {
		p.Write(": ")
		p.PrintType(fn.DeclaredType)
	}
}

func (p *Printer) printParam(n *ast.Node) {
	switch n.Token {
	case ast.TRest:
		p.Write("...")
		p.Write(n.Payload)
		if n.DeclaredType != nil {
			p.Write(": ")
			p.PrintType(n.DeclaredType)
		}
	default:
		p.Write(n.Payload)
		if n.HasProp(ast.PropOptES6Typed) {
			p.Write("?")
		}
		if n.DeclaredType != nil {
			p.Write(": ")
			p.PrintType(n.DeclaredType)
		}
	}
}

func (p *Printer) printBlock(n *ast.Node) {
	p.Write("{\n")
	p.indent++
	for _, stmt := range n.Children {
		p.WriteIndent()
		p.PrintStatement(stmt)
	}
	p.indent--
	p.WriteIndent()
	p.Write("}")
}

// PrintExpr prints an expression-position node. The grammar this module
// needs to emit expressions for is deliberately tiny (casts, member
// access, constructor calls, literals, identifiers) — everything else
// that real JavaScript can do lives in the real base emitter this stands
// in for.
func (p *Printer) PrintExpr(n *ast.Node) {
	if p.dispatch(n) {
		return
	}
	switch n.Token {
	case ast.TName:
		p.Write(n.Payload)
	case ast.TGetProp:
		if len(n.Children) > 0 {
			p.PrintExpr(n.Children[0])
			p.Write(".")
		}
		p.Write(n.Payload)
	case ast.TString:
		p.Write(strconv.Quote(n.Payload))
	case ast.TNumber:
		p.Write(n.Payload)
	case ast.TThis:
		p.Write("this")
	case ast.TNew:
		p.printNew(n)
	case ast.TClass:
		p.printClass(n)
	case ast.TFunction:
		p.printFunction(n)
	case ast.TEmpty:
		// Nothing to emit.
	default:
		p.Write(n.Payload)
	}
	p.hooks.Post(p, n)
}

func (p *Printer) printNew(n *ast.Node) {
	p.Write("new ")
	p.PrintExpr(n.Children[0])
	if len(n.Children) > 1 {
		p.Write("(")
		for i, arg := range n.Children[1:] {
			if i > 0 {
				p.Write(", ")
			}
			p.PrintExpr(arg)
		}
		p.Write(")")
	}
	// A lone constructor reference is intentionally left without "()" here;
	// the historical Closure-compiler code generator this is grounded on
	// drops them, which is why internal/tsprinter restores them in its
	// post-hook.
}

// PrintType prints a typed-declaration node, implementing the emission
// conventions that are not TypeScript-specific overrides (those —
// UNDEFINED_TYPE — are handled by tsprinter's hook).
func (p *Printer) PrintType(n *ast.Node) {
	if p.dispatch(n) {
		return
	}
	switch n.Token {
	case ast.TAnyType:
		p.Write("any")
	case ast.TVoid:
		p.Write("void")
	case ast.TBooleanType:
		p.Write("boolean")
	case ast.TNumberType:
		p.Write("number")
	case ast.TStringType:
		p.Write("string")
	case ast.TNull:
		p.Write("null")
	case ast.TNamedType:
		p.Write(n.Payload)
		if len(n.Children) > 0 {
			p.Write("<")
			for i, arg := range n.Children {
				if i > 0 {
					p.Write(", ")
				}
				p.PrintType(arg)
			}
			p.Write(">")
		}
	case ast.TArrayType:
		p.printArrayElementType(n.FirstChild())
		p.Write("[]")
	case ast.TRecordType:
		p.printRecordType(n)
	case ast.TUnionType:
		for i, t := range n.Children {
			if i > 0 {
				p.Write(" | ")
			}
			p.PrintType(t)
		}
	case ast.TFunctionType:
		p.printFunctionType(n)
	default:
		p.hooks.Post(p, n)
		return
	}
	p.hooks.Post(p, n)
}

// printArrayElementType wraps union/function element types in parens so
// "(A | B)[]" and "((x: any) => any)[]" round-trip unambiguously.
func (p *Printer) printArrayElementType(elem *ast.Node) {
	needsParens := elem.Token == ast.TUnionType || elem.Token == ast.TFunctionType
	if needsParens {
		p.Write("(")
	}
	p.PrintType(elem)
	if needsParens {
		p.Write(")")
	}
}

func (p *Printer) printRecordType(n *ast.Node) {
	p.Write("{")
	for i, field := range n.Children {
		if i > 0 {
			p.Write(", ")
		}
		p.Write(field.Payload)
		if len(field.Children) > 0 {
			p.Write(": ")
			p.PrintType(field.Children[0])
		}
	}
	p.Write("}")
}

func (p *Printer) printFunctionType(n *ast.Node) {
	p.Write("(")
	params := ast.ParamsOf(n)
	for i, param := range params {
		if i > 0 {
			p.Write(", ")
		}
		p.printParam(param)
	}
	p.Write(") => ")
	p.PrintType(ast.ReturnTypeOf(n))
}
