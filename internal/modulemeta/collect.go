package modulemeta

import "regexp"

var (
	googModuleRe = regexp.MustCompile(`goog\.module\(\s*['"]([\w.]+)['"]\s*\)`)
	googProvideRe = regexp.MustCompile(`goog\.provide\(\s*['"]([\w.]+)['"]\s*\)`)
	namedExportRe  = regexp.MustCompile(`exports\.(\w+)\s*=`)
	defaultExportRe = regexp.MustCompile(`exports\s*=\s*(?:class|function)?\s*(\w+)`)
	esModuleRe     = regexp.MustCompile(`(?m)^\s*(export|import)\s`)
)

// Source is a (name, text) pair, matching the ordered sequence pkg.gents'
// public Transpile takes.
type Source struct {
	Name string
	Text string
}

// Collect builds a Symbol Index from a set of source files by a light
// textual scan. It recognizes the two module forms a classifier needs to
// tell apart: files that call goog.module()/goog.provide() (legacy
// namespace form) and files that use native `import`/`export` statements
// (ECMAScript module form).
func Collect(sources []Source) *Index {
	idx := NewIndex()
	for _, src := range sources {
		if ns := googModuleRe.FindStringSubmatch(src.Text); ns != nil {
			idx.Add(legacyRecord(src.Name, ns[1], src.Text))
			continue
		}
		if ns := googProvideRe.FindStringSubmatch(src.Text); ns != nil {
			idx.Add(legacyRecord(src.Name, ns[1], src.Text))
			continue
		}
		if esModuleRe.MatchString(src.Text) {
			idx.Add(esRecord(src.Name, src.Text))
		}
	}
	return idx
}

func legacyRecord(file, namespace, text string) *Record {
	r := &Record{File: file, Kind: LegacyNamespace, LocalSymbols: map[string]string{}}
	hasMember := false
	for _, m := range namedExportRe.FindAllStringSubmatch(text, -1) {
		r.LocalSymbols[namespace+"."+m[1]] = m[1]
		hasMember = true
	}
	if m := defaultExportRe.FindStringSubmatch(text); m != nil && m[1] != "" {
		r.LocalSymbols[namespace] = m[1]
	} else if !hasMember {
		// Fall back to the namespace's last dotted segment as the local name,
		// the common case for a goog.module that exports a single symbol
		// under the namespace itself without an explicit `exports = Name`.
		r.LocalSymbols[namespace] = lastSegment(namespace)
	}
	return r
}

func esRecord(file, text string) *Record {
	r := &Record{File: file, Kind: ECMAScriptModule, LocalSymbols: map[string]string{}}
	for _, m := range regexp.MustCompile(`export\s+(?:class|function|const|let|var)\s+(\w+)`).FindAllStringSubmatch(text, -1) {
		r.LocalSymbols[m[1]] = m[1]
	}
	return r
}

func lastSegment(namespace string) string {
	last := namespace
	for i := len(namespace) - 1; i >= 0; i-- {
		if namespace[i] == '.' {
			last = namespace[i+1:]
			break
		}
	}
	return last
}
