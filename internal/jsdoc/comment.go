package jsdoc

import (
	"regexp"
	"strings"

	"github.com/gentsgo/gents/internal/ast"
)

// Parsed is the result of reading one /** ... */ block: the structured
// DocInfo the type-annotation pass consumes, plus the file-level @externs
// marker this module also cares about.
type Parsed struct {
	Doc      *ast.DocInfo
	Externs  bool
	RawText  string // the comment verbatim, including delimiters, for passthrough re-emission
}

var (
	// tagRe matches one @tag anywhere in the comment body, not anchored to
	// line start: a doc comment may pack several tags onto one physical
	// line (a run of @param/@param/@return tags packed together) just as
	// easily as one per line.
	tagRe      = regexp.MustCompile(`@(\w+)(\s*\{([^}]*)\})?(\s+\[?([A-Za-z_$][\w$]*)\]?)?`)
	starPrefix = regexp.MustCompile(`(?m)^\s*\*\s?`)
)

// Parse reads a single doc-comment block (text between /** and */,
// delimiters included) into a Parsed result. Tags it doesn't recognize
// are ignored, matching the "explicit dispatch over a fixed set of known
// forms" design this module favors elsewhere.
func Parse(commentText string) *Parsed {
	body := strings.TrimPrefix(commentText, "/**")
	body = strings.TrimSuffix(body, "*/")

	doc := &ast.DocInfo{ParamTypes: map[string]*ast.Node{}}
	result := &Parsed{Doc: doc, RawText: commentText}

	for _, m := range tagRe.FindAllStringSubmatch(body, -1) {
		tag, typeExpr, name := m[1], m[3], m[5]

		switch tag {
		case "type":
			doc.Type = ParseTypeExpr(typeExpr)
		case "return", "returns":
			doc.ReturnType = ParseTypeExpr(typeExpr)
		case "param":
			if name != "" {
				doc.ParamTypes[name] = ParseTypeExpr(typeExpr)
			}
		case "const":
			doc.Const = true
			if typeExpr != "" {
				doc.Type = ParseTypeExpr(typeExpr)
			}
		case "private":
			doc.Visibility = ast.VisibilityPrivate
		case "protected":
			doc.Visibility = ast.VisibilityProtected
		case "public":
			doc.Visibility = ast.VisibilityPublic
		case "externs":
			result.Externs = true
		}
	}

	return result
}

// StripStars removes the leading " * " from every continuation line of a
// doc comment, leaving the bare tag/description text — used when
// synthesizing a fresh comment rather than re-emitting one verbatim.
func StripStars(commentText string) string {
	body := strings.TrimPrefix(commentText, "/**")
	body = strings.TrimSuffix(body, "*/")
	return strings.TrimSpace(starPrefix.ReplaceAllString(body, ""))
}
