// Package miniparse is the minimal stand-in for the real "underlying
// JavaScript parser/AST library" external collaborator this module never
// receives. It understands only the narrow surface the three compiler
// passes care about — doc-commented var/let/const bindings, function and
// class declarations, member variable definitions, and a handful of
// expression forms (casts, `new`, member access, literals) — not general
// JavaScript.
package miniparse

import (
	"strings"

	"github.com/cockroachdb/errors"
)

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokIdent
	tokNumber
	tokString
	tokComment
	tokPunct
)

type token struct {
	kind tokKind
	text string
}

// lex tokenizes src into a flat token list. Line comments and whitespace
// are dropped; block comments are kept as tokComment so the parser can
// attach them to whatever follows.
func lex(src string) ([]token, error) {
	var toks []token
	i, n := 0, len(src)
	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '/' && i+1 < n && src[i+1] == '/':
			for i < n && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < n && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return nil, errors.New("miniparse: unterminated block comment")
			}
			toks = append(toks, token{kind: tokComment, text: src[i : i+2+end+2]})
			i += 2 + end + 2
		case c == '\'' || c == '"':
			j := i + 1
			for j < n && src[j] != c {
				if src[j] == '\\' {
					j++
				}
				j++
			}
			if j >= n {
				return nil, errors.New("miniparse: unterminated string literal")
			}
			toks = append(toks, token{kind: tokString, text: src[i+1 : j]})
			i = j + 1
		case isDigit(c):
			j := i
			for j < n && (isDigit(src[j]) || src[j] == '.') {
				j++
			}
			toks = append(toks, token{kind: tokNumber, text: src[i:j]})
			i = j
		case isIdentStart(c):
			j := i
			for j < n && isIdentPart(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: src[i:j]})
			i = j
		case strings.HasPrefix(src[i:], "..."):
			toks = append(toks, token{kind: tokPunct, text: "..."})
			i += 3
		default:
			toks = append(toks, token{kind: tokPunct, text: string(c)})
			i++
		}
	}
	toks = append(toks, token{kind: tokEOF})
	return toks, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
