package modulemeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectLegacyModuleWithExplicitDefaultExport(t *testing.T) {
	idx := Collect([]Source{
		{Name: "ns_t.js", Text: "goog.module('ns.T');\nexports = T;\n"},
	})
	record, ok := idx.ByNamespace["ns.T"]
	require.True(t, ok)
	assert.Equal(t, LegacyNamespace, record.Kind)
	assert.Equal(t, "T", record.LocalSymbols["ns.T"])
}

func TestCollectLegacyModuleWithNoExportsFallsBackToLastDottedSegment(t *testing.T) {
	idx := Collect([]Source{
		{Name: "ns_t.js", Text: "goog.module('ns.T');\n"},
	})
	record, ok := idx.ByNamespace["ns.T"]
	require.True(t, ok)
	assert.Equal(t, "T", record.LocalSymbols["ns.T"])
}

func TestCollectLegacyModuleWithNamedMemberExports(t *testing.T) {
	idx := Collect([]Source{
		{Name: "ns_t.js", Text: "goog.module('ns');\nexports.Foo = Foo;\nexports.Bar = Bar;\n"},
	})
	fooRecord, ok := idx.ByNamespace["ns.Foo"]
	require.True(t, ok)
	assert.Equal(t, "Foo", fooRecord.LocalSymbols["ns.Foo"])

	barRecord, ok := idx.ByNamespace["ns.Bar"]
	require.True(t, ok)
	assert.Equal(t, "Bar", barRecord.LocalSymbols["ns.Bar"])

	_, hasBareNamespace := idx.ByNamespace["ns"]
	assert.False(t, hasBareNamespace)
}

func TestCollectGoogProvideIsTreatedAsLegacyNamespace(t *testing.T) {
	idx := Collect([]Source{
		{Name: "ns_t.js", Text: "goog.provide('ns.T');\nexports = T;\n"},
	})
	record, ok := idx.ByNamespace["ns.T"]
	require.True(t, ok)
	assert.Equal(t, LegacyNamespace, record.Kind)
}

func TestCollectEcmaScriptModuleRegistersExportedNames(t *testing.T) {
	idx := Collect([]Source{
		{Name: "a.js", Text: "export class Foo {}\n"},
	})
	record, ok := idx.ByNamespace["Foo"]
	require.True(t, ok)
	assert.Equal(t, ECMAScriptModule, record.Kind)
	assert.Equal(t, "Foo", record.LocalSymbols["Foo"])
}

func TestCollectPlainScriptWithNoModuleMarkersAddsNoRecord(t *testing.T) {
	idx := Collect([]Source{
		{Name: "plain.js", Text: "var x = 4;\n"},
	})
	assert.Empty(t, idx.ByNamespace)
}

func TestIndexNamespacesReturnsEveryRegisteredNamespace(t *testing.T) {
	idx := Collect([]Source{
		{Name: "ns_t.js", Text: "goog.module('ns.T');\nexports = T;\n"},
		{Name: "a.js", Text: "export class Foo {}\n"},
	})
	ns := idx.Namespaces()
	assert.True(t, ns["ns.T"])
	assert.True(t, ns["Foo"])
	assert.Len(t, ns, 2)
}
