// Package pathutil implements the name- and path-manipulation helpers the
// type-annotation pass needs to rewrite cross-file type references:
// longest-prefix namespace matching, prefix substitution in dotted names,
// extension stripping, and relative-import-path computation. Every
// function here is string-only and pure; none touch the filesystem.
package pathutil

import "strings"

// FindLongestNamePrefix returns the longest dotted prefix of name that is a
// member of candidates, or "" if none matches. "ns.T.Sub" with candidates
// {"ns", "ns.T"} returns "ns.T" — the longer of the two matching prefixes.
func FindLongestNamePrefix(name string, candidates map[string]bool) string {
	parts := strings.Split(name, ".")
	for end := len(parts); end >= 1; end-- {
		prefix := strings.Join(parts[:end], ".")
		if candidates[prefix] {
			return prefix
		}
	}
	return ""
}

// ReplacePrefixInName substitutes replacement for prefix at the start of
// name. prefix must be name itself or a dotted prefix of it (as returned by
// FindLongestNamePrefix); the caller is responsible for that invariant.
func ReplacePrefixInName(name, prefix, replacement string) string {
	if name == prefix {
		return replacement
	}
	return replacement + name[len(prefix):]
}
