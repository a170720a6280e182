// Package jsdoc parses the doc-comment type grammar out of structured
// comment text. Parsing the surrounding JavaScript itself is explicitly
// out of scope ("the underlying JavaScript parser/AST library" is an
// external collaborator this module never receives); this package is
// the minimal stand-in
// internal/miniparse uses to turn a /** ... */ block into the raw
// ast.Node type-expression trees the type-annotation pass consumes — it
// is not a general Closure-compiler JSDoc parser.
package jsdoc

import (
	"strings"

	"github.com/gentsgo/gents/internal/ast"
)

// ParseTypeExpr parses a single type-expression string (the text inside a
// `{...}` doc tag, without the outer braces) into the raw type-expression
// grammar.
func ParseTypeExpr(s string) *ast.Node {
	s = strings.TrimSpace(s)
	if s == "" {
		return ast.NewLeaf(ast.TEmpty, "")
	}
	p := &typeParser{s: s}
	return p.parseUnion()
}

type typeParser struct {
	s string
}

func (p *typeParser) parseUnion() *ast.Node {
	s := strings.TrimSpace(p.s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && matchingParen(s) {
		s = s[1 : len(s)-1]
	}
	parts := splitTopLevel(s, '|')
	if len(parts) == 1 {
		return parseUnary(parts[0])
	}
	children := make([]*ast.Node, 0, len(parts))
	for _, part := range parts {
		children = append(children, parseUnary(part))
	}
	return &ast.Node{Token: ast.TPipe, Children: children}
}

func matchingParen(s string) bool {
	depth := 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}
	return depth == 0
}

func parseUnary(s string) *ast.Node {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return ast.NewLeaf(ast.TEmpty, "")
	case s == "*":
		return ast.NewNode(ast.TStar)
	case strings.HasSuffix(s, "="):
		return &ast.Node{Token: ast.TEquals, Children: []*ast.Node{parseUnary(s[:len(s)-1])}}
	case strings.HasPrefix(s, "..."):
		return &ast.Node{Token: ast.TEllipsis, Children: []*ast.Node{parseUnary(s[3:])}}
	case strings.HasPrefix(s, "!"):
		return &ast.Node{Token: ast.TBang, Children: []*ast.Node{parseUnary(s[1:])}}
	case strings.HasPrefix(s, "?"):
		rest := strings.TrimSpace(s[1:])
		if rest == "" {
			return &ast.Node{Token: ast.TQMark}
		}
		return &ast.Node{Token: ast.TQMark, Children: []*ast.Node{parseUnary(rest)}}
	case s == "void":
		return ast.NewNode(ast.TVoid)
	case strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && matchingParen(s):
		tp := &typeParser{s: s}
		return tp.parseUnion()
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		return parseRecord(s[1 : len(s)-1])
	case strings.HasPrefix(s, "function("):
		return parseFunction(s)
	default:
		return parseNamed(s)
	}
}

// parseRecord builds the LC node's children directly as field nodes —
// one per record entry, Payload holding the (possibly quoted) field name
// and, for typed fields, a single child holding the value type —
// matching what typeannotate.convertRecord reads back out.
func parseRecord(body string) *ast.Node {
	lc := &ast.Node{Token: ast.TLC}
	for _, field := range splitTopLevel(body, ',') {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		idx := strings.Index(field, ":")
		if idx < 0 {
			lc.Children = append(lc.Children, ast.NewLeaf(ast.TColon, field))
			continue
		}
		name := strings.TrimSpace(field[:idx])
		valueType := strings.TrimSpace(field[idx+1:])
		fieldNode := &ast.Node{Token: ast.TColon, Payload: name, Children: []*ast.Node{parseUnary(valueType)}}
		lc.Children = append(lc.Children, fieldNode)
	}
	return lc
}

func parseFunction(s string) *ast.Node {
	open := strings.Index(s, "(")
	end := findMatching(s, open, '(', ')')
	paramsStr := s[open+1 : end]
	rest := strings.TrimSpace(s[end+1:])

	paramList := &ast.Node{Token: ast.TParamList}
	for _, raw := range splitTopLevel(paramsStr, ',') {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "new:") {
			paramList.Children = append(paramList.Children, &ast.Node{Token: ast.TNew, Children: []*ast.Node{parseUnary(raw[4:])}})
			continue
		}
		if strings.HasPrefix(raw, "this:") {
			paramList.Children = append(paramList.Children, &ast.Node{Token: ast.TThis, Children: []*ast.Node{parseUnary(raw[5:])}})
			continue
		}
		paramList.Children = append(paramList.Children, parseUnary(raw))
	}

	children := []*ast.Node{paramList}
	if strings.HasPrefix(rest, ":") {
		children = append(children, parseUnary(rest[1:]))
	}
	return &ast.Node{Token: ast.TFunction, Children: children}
}

func parseNamed(s string) *ast.Node {
	lt := strings.Index(s, "<")
	if lt < 0 {
		return ast.NewLeaf(ast.TString, strings.TrimSpace(s))
	}
	end := findMatching(s, lt, '<', '>')
	if end < 0 {
		return ast.NewLeaf(ast.TString, strings.TrimSpace(s))
	}
	name := strings.TrimSpace(s[:lt])
	argsStr := s[lt+1 : end]
	block := &ast.Node{Token: ast.TBlock}
	for _, a := range splitTopLevel(argsStr, ',') {
		block.Children = append(block.Children, parseUnary(strings.TrimSpace(a)))
	}
	return &ast.Node{Token: ast.TString, Payload: name, Children: []*ast.Node{block}}
}

// splitTopLevel splits s on sep, ignoring occurrences nested inside
// (), {}, <>.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{', '<':
			depth++
		case ')', '}', '>':
			depth--
		default:
			if s[i] == sep && depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// findMatching returns the index of the bracket that closes the one at
// openIdx, or -1.
func findMatching(s string, openIdx int, open, close byte) int {
	depth := 0
	for i := openIdx; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

