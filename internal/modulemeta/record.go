// Package modulemeta defines the Module Record / Symbol Index data model.
// The richer collector that normally produces this data from a fully
// resolved Closure compilation is out of scope; Collect here is a
// minimal, self-contained stand-in so the pipeline in internal/transpile
// is runnable end-to-end on plain source text, grounded on the shape of
// CollectModuleMetadata.FileModule in the original gents implementation.
package modulemeta

// Kind distinguishes how a module's exports are addressed.
type Kind uint8

const (
	LegacyNamespace Kind = iota
	ECMAScriptModule
)

// Record is the per-file metadata the type-annotation pass consumes
// read-only: which module form the file uses, which namespaces it exports
// and under what local symbol name, and its own canonical path.
type Record struct {
	File string
	Kind Kind

	// LocalSymbols maps a namespace string this file exports to the local
	// symbol name that namespace is bound to — both within the file itself
	// and in any import statement a consumer generates to reach it.
	LocalSymbols map[string]string
}

// Index is the Symbol Index: every namespace visible anywhere in the
// compilation, mapped to the Record of the module that exports it.
type Index struct {
	ByNamespace map[string]*Record
}

func NewIndex() *Index {
	return &Index{ByNamespace: map[string]*Record{}}
}

// Namespaces returns the set of every namespace string registered in the
// index, suitable for pathutil.FindLongestNamePrefix.
func (idx *Index) Namespaces() map[string]bool {
	out := make(map[string]bool, len(idx.ByNamespace))
	for ns := range idx.ByNamespace {
		out[ns] = true
	}
	return out
}

func (idx *Index) Add(r *Record) {
	for ns := range r.LocalSymbols {
		idx.ByNamespace[ns] = r
	}
}
