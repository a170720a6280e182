package typeannotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentsgo/gents/internal/ast"
	"github.com/gentsgo/gents/internal/externs"
	"github.com/gentsgo/gents/internal/modulemeta"
)

func TestRewriteTableLookupMissReturnsFalse(t *testing.T) {
	table := NewRewriteTable()
	_, ok := table.Lookup("a.js", "ns.T")
	assert.False(t, ok)
}

func TestRewriteTableSetThenLookupRoundTrips(t *testing.T) {
	table := NewRewriteTable()
	table.Set("a.js", "ns.T", "T")

	symbol, ok := table.Lookup("a.js", "ns.T")
	require.True(t, ok)
	assert.Equal(t, "T", symbol)

	// A different file never sees another file's row.
	_, ok = table.Lookup("b.js", "ns.T")
	assert.False(t, ok)
}

func TestPendingImportsAddAccumulatesPerFile(t *testing.T) {
	pending := NewPendingImports()
	assert.Empty(t, pending.For("a.js"))

	first := ast.NewLeaf(ast.TImport, "goog:ns.T")
	second := ast.NewLeaf(ast.TImport, "goog:ns.U")
	pending.Add("a.js", first)
	pending.Add("a.js", second)

	require.Equal(t, []*ast.Node{first, second}, pending.For("a.js"))
	assert.Empty(t, pending.For("b.js"))
}

func newLegacyIndex(file, namespace, symbol string) *modulemeta.Index {
	idx := modulemeta.NewIndex()
	idx.Add(&modulemeta.Record{
		File:         file,
		Kind:         modulemeta.LegacyNamespace,
		LocalSymbols: map[string]string{namespace: symbol},
	})
	return idx
}

func newEsModuleIndex(file, exportedName string) *modulemeta.Index {
	idx := modulemeta.NewIndex()
	idx.Add(&modulemeta.Record{
		File:         file,
		Kind:         modulemeta.ECMAScriptModule,
		LocalSymbols: map[string]string{exportedName: exportedName},
	})
	return idx
}

// TestRewriteTypeNameQueuesImportOnceThenReusesSymbol exercises invariant
// I1: the same (file, namespace) pair is only ever queued for import once,
// no matter how many times that namespace is referenced from that file.
func TestRewriteTypeNameQueuesImportOnceThenReusesSymbol(t *testing.T) {
	r := &Rewriter{
		Index:   newLegacyIndex("ns_t.js", "ns.T", "T"),
		Externs: externs.Map{},
		Rewrite: NewRewriteTable(),
		Pending: NewPendingImports(),
	}

	first := r.RewriteTypeName("a.js", "ns.T")
	second := r.RewriteTypeName("a.js", "ns.T")

	assert.Equal(t, "T", first)
	assert.Equal(t, "T", second)
	assert.Len(t, r.Pending.For("a.js"), 1)

	imp := r.Pending.For("a.js")[0]
	assert.Equal(t, "goog:ns.T", imp.Payload)
}

func TestRewriteTypeNameRewritesDottedSubmemberThroughPrefix(t *testing.T) {
	r := &Rewriter{
		Index:   newLegacyIndex("ns_t.js", "ns.T", "T"),
		Externs: externs.Map{},
		Rewrite: NewRewriteTable(),
		Pending: NewPendingImports(),
	}

	result := r.RewriteTypeName("a.js", "ns.T.Sub")
	assert.Equal(t, "T.Sub", result)
}

func TestRewriteTypeNameFallsBackToExternsWhenNoNamespaceMatches(t *testing.T) {
	r := &Rewriter{
		Index:   modulemeta.NewIndex(),
		Externs: externs.Map{"MyExternType": "MyTsType"},
		Rewrite: NewRewriteTable(),
		Pending: NewPendingImports(),
	}

	result := r.RewriteTypeName("a.js", "MyExternType")
	assert.Equal(t, "MyTsType", result)
	assert.Empty(t, r.Pending.For("a.js"))
}

func TestRewriteTypeNameLeavesUnmatchedUnknownNameUnchanged(t *testing.T) {
	r := &Rewriter{
		Index:   modulemeta.NewIndex(),
		Externs: externs.Map{},
		Rewrite: NewRewriteTable(),
		Pending: NewPendingImports(),
	}

	result := r.RewriteTypeName("a.js", "Unrelated")
	assert.Equal(t, "Unrelated", result)
}

func TestRewriteTypeNameEmitsRelativeImportForEcmaScriptModule(t *testing.T) {
	r := &Rewriter{
		Index:   newEsModuleIndex("shapes.js", "Foo"),
		Externs: externs.Map{},
		Rewrite: NewRewriteTable(),
		Pending: NewPendingImports(),
	}

	result := r.RewriteTypeName("a.js", "Foo")
	assert.Equal(t, "Foo", result)

	require.Len(t, r.Pending.For("a.js"), 1)
	imp := r.Pending.For("a.js")[0]
	assert.Equal(t, "./shapes", imp.Payload)
}
