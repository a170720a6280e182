package miniparse

import (
	"github.com/cockroachdb/errors"

	"github.com/gentsgo/gents/internal/ast"
	"github.com/gentsgo/gents/internal/jsdoc"
)

// Parse lexes and parses one source file into a SCRIPT node. Doc comments
// recognized as carrying at least one tag (@type, @param, @return, @const,
// visibility, @externs) are consumed into the DocInfo of the node they
// precede; comments with no recognized tag are treated as plain comments
// and registered into comments for verbatim re-emission. The returned bool
// reports whether the file carries a file-level @externs marker.
func Parse(file, src string, comments *ast.Comments) (*ast.Node, bool, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, false, errors.Wrapf(err, "%s", file)
	}
	p := &parser{file: file, toks: toks, comments: comments}
	script := &ast.Node{Token: ast.TScript}

	for !p.at(tokEOF) {
		pending := p.collectDoc()
		if p.at(tokEOF) {
			break
		}
		stmt, err := p.parseStatement(pending)
		if err != nil {
			return nil, false, errors.Wrapf(err, "%s", file)
		}
		script.Children = append(script.Children, stmt)
	}

	stampSourceFile(script, file)
	return script, p.sawExterns, nil
}

type parser struct {
	file     string
	toks     []token
	pos      int
	comments *ast.Comments

	// pendingPlain holds an untagged comment awaiting attachment to the next
	// parsed node; set by collectDoc, consumed by attachPlain.
	pendingPlain string
	// sawExterns is set once any comment in the file carries @externs — the
	// marker is file-scoped, not tied to any one statement.
	sawExterns bool
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) at(k tokKind) bool { return p.cur().kind == k }
func (p *parser) atPunct(s string) bool {
	return p.cur().kind == tokPunct && p.cur().text == s
}
func (p *parser) atIdent(s string) bool {
	return p.cur().kind == tokIdent && p.cur().text == s
}
func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expectPunct(s string) error {
	if !p.atPunct(s) {
		return errors.Newf("expected %q, got %q", s, p.cur().text)
	}
	p.advance()
	return nil
}

// collectDoc consumes zero or more consecutive comment tokens, parsing
// each and returning the Parsed info of the last one carrying a tag (or
// nil if none did). An untagged comment is stashed in p.pendingPlain for
// attachPlain to register against whatever node follows; @externs is
// sticky for the whole file regardless of which comment in a run carries
// it, so a leading "/** @externs */ /** @const ... */" pair still marks
// the file as externs-only.
func (p *parser) collectDoc() *jsdoc.Parsed {
	var lastTagged *jsdoc.Parsed
	var lastPlain string
	for p.at(tokComment) {
		text := p.advance().text
		parsed := jsdoc.Parse(text)
		if parsed.Externs {
			p.sawExterns = true
		}
		if isTagged(parsed) {
			lastTagged = parsed
		} else {
			lastPlain = text
		}
	}
	p.pendingPlain = lastPlain
	return lastTagged
}

func isTagged(p *jsdoc.Parsed) bool {
	d := p.Doc
	return p.Externs || d.Type != nil || d.ReturnType != nil || len(d.ParamTypes) > 0 || d.Const || d.Visibility != ast.VisibilityNone
}

func (p *parser) attachPlain(n *ast.Node) {
	if p.pendingPlain != "" {
		p.comments.Set(n, p.pendingPlain)
		p.pendingPlain = ""
	}
}

func (p *parser) parseStatement(doc *jsdoc.Parsed) (*ast.Node, error) {
	switch {
	case p.atIdent("var"), p.atIdent("let"), p.atIdent("const"):
		return p.parseVarStatement(doc)
	case p.atIdent("function"):
		return p.parseFunction(doc, true)
	case p.atIdent("class"):
		return p.parseClass(doc, true)
	case p.atIdent("return"):
		p.advance()
		var expr *ast.Node
		if !p.atPunct(";") {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			expr = e
		}
		if err := p.expectPunct(";"); err != nil {
			return nil, err
		}
		n := &ast.Node{Token: ast.TReturn}
		if expr != nil {
			n.Children = append(n.Children, expr)
		}
		return n, nil
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(";"); err != nil {
			return nil, err
		}
		p.attachPlain(expr)
		return expr, nil
	}
}

func declToken(kw string) ast.Token {
	switch kw {
	case "var":
		return ast.TVar
	case "let":
		return ast.TLet
	default:
		return ast.TConst
	}
}

func (p *parser) parseVarStatement(doc *jsdoc.Parsed) (*ast.Node, error) {
	kw := p.advance().text
	if !p.at(tokIdent) {
		return nil, errors.Newf("expected identifier after %q", kw)
	}
	name := p.advance().text
	nameNode := ast.NewLeaf(ast.TName, name)
	if p.atPunct("=") {
		p.advance()
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		nameNode.Children = append(nameNode.Children, init)
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	decl := &ast.Node{Token: declToken(kw), Children: []*ast.Node{nameNode}}
	if doc != nil {
		decl.Doc = doc.Doc
	}
	p.attachPlain(decl)
	return decl, nil
}

// parseFunction parses a function declaration or expression. named
// controls whether a name is required (declarations) or optional
// (expressions) — an anonymous function literal still needs the FUNCTION
// token to carry an empty Payload so jsprinter prints "function () {}".
func (p *parser) parseFunction(doc *jsdoc.Parsed, named bool) (*ast.Node, error) {
	p.advance() // "function"
	name := ""
	if p.at(tokIdent) && !p.atPunct("(") {
		name = p.advance().text
	} else if named {
		return nil, errors.New("expected function name")
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn := &ast.Node{Token: ast.TFunction, Payload: name, Children: []*ast.Node{params, body}}
	if doc != nil {
		fn.Doc = doc.Doc
	}
	p.attachPlain(fn)
	return fn, nil
}

func (p *parser) parseParamList() (*ast.Node, error) {
	list := &ast.Node{Token: ast.TParamList}
	for !p.atPunct(")") {
		if p.atPunct("...") {
			p.advance()
			name := p.advance().text
			list.Children = append(list.Children, &ast.Node{Token: ast.TRest, Payload: name})
		} else {
			name := p.advance().text
			list.Children = append(list.Children, ast.NewLeaf(ast.TName, name))
		}
		if p.atPunct(",") {
			p.advance()
		}
	}
	return list, nil
}

func (p *parser) parseBlock() (*ast.Node, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	block := &ast.Node{Token: ast.TBlock}
	for !p.atPunct("}") {
		doc := p.collectDoc()
		stmt, err := p.parseStatement(doc)
		if err != nil {
			return nil, err
		}
		block.Children = append(block.Children, stmt)
	}
	p.advance() // "}"
	return block, nil
}

// parseClass parses a class declaration or expression. Its body is a
// sequence of member variable definitions: `name;` or `name = expr;`,
// each optionally preceded by its own doc comment.
func (p *parser) parseClass(doc *jsdoc.Parsed, named bool) (*ast.Node, error) {
	p.advance() // "class"
	name := ""
	if p.at(tokIdent) && !p.atPunct("{") {
		name = p.advance().text
	} else if named {
		return nil, errors.New("expected class name")
	}
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	class := &ast.Node{Token: ast.TClass, Payload: name}
	for !p.atPunct("}") {
		memberDoc := p.collectDoc()
		member, err := p.parseMember(memberDoc)
		if err != nil {
			return nil, err
		}
		class.Children = append(class.Children, member)
	}
	p.advance() // "}"
	if doc != nil {
		class.Doc = doc.Doc
	}
	p.attachPlain(class)
	return class, nil
}

func (p *parser) parseMember(doc *jsdoc.Parsed) (*ast.Node, error) {
	name := p.advance().text
	member := &ast.Node{Token: ast.TMemberVariableDef, Payload: name}
	if p.atPunct("=") {
		p.advance()
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		member.Children = append(member.Children, init)
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	if doc != nil {
		member.Doc = doc.Doc
	}
	p.attachPlain(member)
	return member, nil
}

// parseExpr parses the small expression grammar this module needs to
// round-trip: casts, `new`, member access chains, literals, and
// anonymous class/function literals.
func (p *parser) parseExpr() (*ast.Node, error) {
	if p.at(tokComment) {
		text := p.advance().text
		parsed := jsdoc.Parse(text)
		if err := p.expectPunct("("); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return &ast.Node{Token: ast.TCast, Doc: parsed.Doc, Children: []*ast.Node{inner}}, nil
	}

	switch {
	case p.atIdent("new"):
		p.advance()
		callee, err := p.parseMemberChain()
		if err != nil {
			return nil, err
		}
		children := []*ast.Node{callee}
		if p.atPunct("(") {
			p.advance()
			for !p.atPunct(")") {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				children = append(children, arg)
				if p.atPunct(",") {
					p.advance()
				}
			}
			p.advance() // ")"
		}
		return &ast.Node{Token: ast.TNew, Children: children}, nil

	case p.atIdent("function"):
		return p.parseFunction(nil, false)

	case p.atIdent("class"):
		return p.parseClass(nil, false)

	default:
		return p.parseMemberChain()
	}
}

func (p *parser) parseMemberChain() (*ast.Node, error) {
	var expr *ast.Node
	switch {
	case p.at(tokString):
		expr = ast.NewLeaf(ast.TString, p.advance().text)
	case p.at(tokNumber):
		expr = ast.NewLeaf(ast.TNumber, p.advance().text)
	case p.atIdent("this"):
		p.advance()
		expr = ast.NewNode(ast.TThis)
	case p.at(tokIdent):
		expr = ast.NewLeaf(ast.TName, p.advance().text)
	default:
		return nil, errors.Newf("unexpected token %q", p.cur().text)
	}
	for p.atPunct(".") {
		p.advance()
		field := p.advance().text
		expr = &ast.Node{Token: ast.TGetProp, Payload: field, Children: []*ast.Node{expr}}
	}
	return expr, nil
}

func stampSourceFile(n *ast.Node, file string) {
	if n == nil {
		return
	}
	n.SourceFile = file
	for _, c := range n.Children {
		stampSourceFile(c, file)
	}
	if n.DeclaredType != nil {
		stampSourceFile(n.DeclaredType, file)
	}
}
