package typeannotate

import (
	"fmt"

	"github.com/gentsgo/gents/internal/ast"
	"github.com/gentsgo/gents/internal/externs"
	"github.com/gentsgo/gents/internal/modulemeta"
	"github.com/gentsgo/gents/internal/pathutil"
)

// RewriteTable is the Type Rewrite Table: per-file memo of namespace ->
// local-symbol substitutions already committed for that file. It is what
// invariant I1 is checked against.
type RewriteTable struct {
	byFile map[string]map[string]string
}

func NewRewriteTable() *RewriteTable {
	return &RewriteTable{byFile: map[string]map[string]string{}}
}

func (t *RewriteTable) row(file string) map[string]string {
	row, ok := t.byFile[file]
	if !ok {
		row = map[string]string{}
		t.byFile[file] = row
	}
	return row
}

func (t *RewriteTable) Lookup(file, namespace string) (string, bool) {
	row, ok := t.byFile[file]
	if !ok {
		return "", false
	}
	symbol, ok := row[namespace]
	return symbol, ok
}

func (t *RewriteTable) Set(file, namespace, symbol string) {
	t.row(file)[namespace] = symbol
}

func (t *RewriteTable) Namespaces(file string) map[string]bool {
	out := map[string]bool{}
	for ns := range t.byFile[file] {
		out[ns] = true
	}
	return out
}

// PendingImports is the per-file queue of IMPORT nodes to splice into each
// script before emission.
type PendingImports struct {
	byFile map[string][]*ast.Node
}

func NewPendingImports() *PendingImports {
	return &PendingImports{byFile: map[string][]*ast.Node{}}
}

func (p *PendingImports) Add(file string, imp *ast.Node) {
	p.byFile[file] = append(p.byFile[file], imp)
}

func (p *PendingImports) For(file string) []*ast.Node {
	return p.byFile[file]
}

// Rewriter implements the cross-file name rewriting algorithm: given a
// source file and a dotted type name, it returns the name to emit,
// queuing a new import the first time a given (file, namespace) pair is
// seen and reusing the same local symbol for every subsequent reference
// in that file (invariant I1).
type Rewriter struct {
	Index    *modulemeta.Index
	Externs  externs.Map
	Rewrite  *RewriteTable
	Pending  *PendingImports
}

// RewriteTypeName is the function passed as ConvertType's `rewrite`
// callback. It performs the namespace substitution against the longest
// matching dotted prefix and then, if no namespace matches, consults the
// externs map before giving up and returning the name unchanged.
func (r *Rewriter) RewriteTypeName(sourceFile, typeName string) string {
	allNamespaces := r.Rewrite.Namespaces(sourceFile)
	for ns := range r.Index.Namespaces() {
		allNamespaces[ns] = true
	}

	prefix := pathutil.FindLongestNamePrefix(typeName, allNamespaces)
	if prefix == "" {
		return r.Externs.Resolve(typeName)
	}

	if symbol, ok := r.Rewrite.Lookup(sourceFile, prefix); ok {
		return pathutil.ReplacePrefixInName(typeName, prefix, symbol)
	}

	record := r.Index.ByNamespace[prefix]
	if record == nil {
		// The prefix came from this file's own rewrite table but somehow isn't
		// in the global index — nothing to import, leave the name as-is.
		return typeName
	}
	symbol := record.LocalSymbols[prefix]

	var moduleSpecifier string
	switch record.Kind {
	case modulemeta.LegacyNamespace:
		moduleSpecifier = fmt.Sprintf("goog:%s", prefix)
	default: // modulemeta.ECMAScriptModule
		moduleSpecifier = pathutil.ImportPath(sourceFile, record.File)
	}
	importSpecs := &ast.Node{Token: ast.TImportSpecs, Children: []*ast.Node{
		{Token: ast.TImportSpec, Children: []*ast.Node{ast.NewLeaf(ast.TName, symbol)}},
	}}
	importNode := &ast.Node{
		Token:    ast.TImport,
		Payload:  moduleSpecifier,
		Children: []*ast.Node{ast.NewLeaf(ast.TEmpty, ""), importSpecs},
	}
	r.Pending.Add(sourceFile, importNode)
	r.Rewrite.Set(sourceFile, prefix, symbol)

	return pathutil.ReplacePrefixInName(typeName, prefix, symbol)
}
