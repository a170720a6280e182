package pathutil

import (
	"path"
	"strings"
)

// StripExtension removes a single trailing ".js"/".ts"/etc. extension from
// a file path, if present.
func StripExtension(p string) string {
	ext := path.Ext(p)
	if ext == "" {
		return p
	}
	return strings.TrimSuffix(p, ext)
}

// ImportPath computes the module specifier that `from` should use to import
// `to`, as a relative path with no extension, always beginning with "./"
// or "../".
func ImportPath(from, to string) string {
	fromDir := path.Dir(from)
	rel := relPath(fromDir, StripExtension(to))
	if !strings.HasPrefix(rel, "./") && !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel
}

// relPath computes a lexical (string-only, no filesystem access) relative
// path from base to target, mirroring path.Rel-style resolution without
// requiring a filesystem.
func relPath(base, target string) string {
	baseParts := splitClean(base)
	targetParts := splitClean(target)

	common := 0
	for common < len(baseParts) && common < len(targetParts) && baseParts[common] == targetParts[common] {
		common++
	}

	upCount := len(baseParts) - common
	var out []string
	for i := 0; i < upCount; i++ {
		out = append(out, "..")
	}
	out = append(out, targetParts[common:]...)
	if len(out) == 0 {
		return "."
	}
	return strings.Join(out, "/")
}

func splitClean(p string) []string {
	p = path.Clean(p)
	if p == "." || p == "" {
		return nil
	}
	p = strings.TrimPrefix(p, "/")
	return strings.Split(p, "/")
}
