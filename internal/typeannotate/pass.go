package typeannotate

import (
	"github.com/cockroachdb/errors"

	"github.com/gentsgo/gents/internal/ast"
	"github.com/gentsgo/gents/internal/externs"
	"github.com/gentsgo/gents/internal/modulemeta"
)

// Pass is the type-annotation pass. It is constructed once per compilation
// by the driver and run over every script; the Rewrite table and Pending
// imports it accumulates are shared across all scripts in the
// compilation, owned by the type-annotation pass for its duration.
type Pass struct {
	Index    *modulemeta.Index
	Externs  externs.Map
	Comments *ast.Comments

	Rewrite *RewriteTable
	Pending *PendingImports
}

func NewPass(index *modulemeta.Index, ex externs.Map, comments *ast.Comments) *Pass {
	return &Pass{
		Index:    index,
		Externs:  ex,
		Comments: comments,
		Rewrite:  NewRewriteTable(),
		Pending:  NewPendingImports(),
	}
}

// Run executes three traversals in order over every script: the
// type-annotation conversion, the access-modifier sub-pass, and finally
// import injection for every script that accumulated pending imports. A
// conversion failure in one script is isolated to that script — Run
// keeps processing the rest and returns every failure keyed by source
// file, rather than aborting the whole batch on the first one.
func (p *Pass) Run(scripts []*ast.Node) map[string]error {
	failed := map[string]error{}
	for _, script := range scripts {
		if err := p.convertTypes(script); err != nil {
			failed[script.SourceFile] = err
		}
	}
	for _, script := range scripts {
		applyAccessModifiers(script)
	}
	for _, script := range scripts {
		p.injectImports(script)
	}
	return failed
}

func (p *Pass) rewriterFor(sourceFile string) func(string) string {
	r := &Rewriter{Index: p.Index, Externs: p.Externs, Rewrite: p.Rewrite, Pending: p.Pending}
	return func(name string) string {
		return r.RewriteTypeName(sourceFile, name)
	}
}

func (p *Pass) convertTypes(script *ast.Node) error {
	var walkErr error
	postOrder(script, nil, func(n *ast.Node, ancestors []*ast.Node) {
		if walkErr != nil {
			return
		}
		if err := p.visitTypeAnnotation(n, ancestors); err != nil {
			walkErr = err
		}
	})
	return walkErr
}

func (p *Pass) visitTypeAnnotation(n *ast.Node, ancestors []*ast.Node) error {
	rewrite := p.rewriterFor(n.SourceFile)

	switch n.Token {
	case ast.TMemberVariableDef:
		doc := bestDocInfo(n, ancestors)
		if doc != nil && doc.Type != nil {
			return attachType(n, doc.Type, false, rewrite)
		}
		n.DeclaredType = ast.AnyType()

	case ast.TFunction:
		doc := bestDocInfo(n, ancestors)
		if doc != nil && doc.ReturnType != nil {
			return attachType(n, doc.ReturnType, true, rewrite)
		}

	case ast.TName, ast.TGetProp:
		if len(ancestors) == 0 {
			return nil
		}
		parent := ancestors[len(ancestors)-1]
		switch {
		case isNameDeclaration(parent):
			doc := bestDocInfo(n, ancestors)
			if doc != nil && doc.Type != nil {
				return attachType(n, doc.Type, false, rewrite)
			}
		case parent.Token == ast.TParamList:
			return p.visitParam(n, ancestors, rewrite)
		}

	case ast.TCast:
		if n.Doc != nil && n.Doc.Type != nil {
			return attachType(n, n.Doc.Type, false, rewrite)
		}
	}
	return nil
}

func (p *Pass) visitParam(n *ast.Node, ancestors []*ast.Node, rewrite func(string) string) error {
	if len(ancestors) < 2 {
		return nil
	}
	paramList := ancestors[len(ancestors)-1]
	fn := ancestors[len(ancestors)-2]
	fnDoc := bestDocInfo(fn, ancestors[:len(ancestors)-2])
	if fnDoc == nil || fnDoc.ParamTypes == nil {
		return nil
	}
	paramType, ok := fnDoc.ParamTypes[n.Payload]
	if !ok || paramType == nil {
		return nil
	}

	attachNode := n
	switch paramType.Token {
	case ast.TEllipsis:
		attachNode = &ast.Node{Token: ast.TRest, Payload: n.Payload, SourceFile: n.SourceFile}
		p.Comments.ReplaceWithComment(n, attachNode)
		replaceInParent(paramList, n, attachNode)
	case ast.TEquals:
		attachNode = &ast.Node{Token: ast.TName, Payload: n.Payload, SourceFile: n.SourceFile}
		attachNode.SetProp(ast.PropOptES6Typed, true)
		p.Comments.ReplaceWithComment(n, attachNode)
		replaceInParent(paramList, n, attachNode)
	}

	return attachType(attachNode, paramType, false, rewrite)
}

func attachType(n *ast.Node, raw *ast.Node, isReturnType bool, rewrite func(string) string) error {
	converted, err := ConvertType(raw, isReturnType, rewrite)
	if err != nil {
		return errors.Wrapf(err, "%s", n.SourceFile)
	}
	if converted != nil {
		n.DeclaredType = converted
	}
	return nil
}

func replaceInParent(parent, old, replacement *ast.Node) {
	if idx := parent.IndexOfChild(old); idx >= 0 {
		parent.ReplaceChild(idx, replacement)
	}
}

func isNameDeclaration(n *ast.Node) bool {
	switch n.Token {
	case ast.TVar, ast.TLet, ast.TConst:
		return true
	default:
		return false
	}
}

// applyAccessModifiers is the second post-order traversal: it copies
// visibility into a structural property and retokens @const var/let
// bindings to CONST.
func applyAccessModifiers(script *ast.Node) {
	postOrder(script, nil, func(n *ast.Node, ancestors []*ast.Node) {
		if n.Doc == nil {
			return
		}
		switch n.Doc.Visibility {
		case ast.VisibilityPrivate:
			n.AccessModifier = ast.VisibilityPrivate
		case ast.VisibilityProtected:
			n.AccessModifier = ast.VisibilityProtected
		}
		if n.Doc.Const && (n.Token == ast.TVar || n.Token == ast.TLet) {
			n.Token = ast.TConst
		}
	})
}

// injectImports splices every pending import for script's source file in
// front of the first existing import, or at the top if there are none.
func (p *Pass) injectImports(script *ast.Node) {
	pending := p.Pending.For(script.SourceFile)
	if len(pending) == 0 {
		return
	}

	body := script
	if first := script.FirstChild(); first != nil && first.Token == ast.TModuleBody {
		body = first
	}

	insertAt := 0
	for i, child := range body.Children {
		if child.Token == ast.TImport {
			insertAt = i
			break
		}
	}
	newChildren := make([]*ast.Node, 0, len(body.Children)+len(pending))
	newChildren = append(newChildren, body.Children[:insertAt]...)
	newChildren = append(newChildren, pending...)
	newChildren = append(newChildren, body.Children[insertAt:]...)
	body.Children = newChildren
}

// bestDocInfo implements "the best available documentation info from that
// node or the nearest enclosing declaration": it climbs the ancestor chain
// from n outward until it finds a node carrying Doc.
func bestDocInfo(n *ast.Node, ancestors []*ast.Node) *ast.DocInfo {
	if n.Doc != nil {
		return n.Doc
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if ancestors[i].Doc != nil {
			return ancestors[i].Doc
		}
	}
	return nil
}

// postOrder walks n depth-first, visiting every child before n itself, and
// calls visit(n, ancestors) where ancestors is the chain from the root
// (inclusive) down to n's parent (inclusive); it is empty for the root. Children are snapshotted
// before recursion so a visit callback that replaces one of n's own
// children mid-walk (as visitParam does) cannot desynchronize the
// traversal.
func postOrder(n *ast.Node, ancestors []*ast.Node, visit func(n *ast.Node, ancestors []*ast.Node)) {
	if n == nil {
		return
	}
	children := make([]*ast.Node, len(n.Children))
	copy(children, n.Children)

	childAncestors := append(append([]*ast.Node{}, ancestors...), n)
	for _, c := range children {
		postOrder(c, childAncestors, visit)
	}
	visit(n, ancestors)
}
