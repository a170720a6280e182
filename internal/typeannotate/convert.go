// Package typeannotate implements the type-annotation pass. It lifts
// doc-comment type expressions onto AST nodes as typed
// declarations and rewrites cross-file type references into module-local
// names, synthesizing the imports that justify them.
package typeannotate

import (
	"fmt"

	"github.com/gentsgo/gents/internal/ast"
)

// UnsupportedTypeError is the "unsupported type construct" error kind:
// the converter hit a token outside its grammar and fails loudly rather
// than guessing, per invariant I3.
type UnsupportedTypeError struct {
	Token ast.Token
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type construct: %s", e.Token)
}

// ConvertType translates a raw doc-comment type-expression node into the
// typed-declaration grammar. rewrite is called on every named type's
// dotted name so the caller can apply cross-file rewriting and externs
// substitution (kept as an injected function rather than a field so
// ConvertType stays a pure, independently testable function).
func ConvertType(n *ast.Node, isReturnType bool, rewrite func(name string) string) (*ast.Node, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Token {
	case ast.TEmpty:
		return nil, nil

	case ast.TStar:
		return ast.AnyType(), nil

	case ast.TVoid:
		if isReturnType {
			return ast.VoidType(), nil
		}
		return ast.UndefinedType(), nil

	case ast.TBang:
		// Non-null is TypeScript's default; the bang is simply dropped.
		return ConvertType(n.FirstChild(), isReturnType, rewrite)

	case ast.TQMark:
		child := n.FirstChild()
		if child == nil {
			return ast.AnyType(), nil
		}
		converted, err := ConvertType(child, isReturnType, rewrite)
		if err != nil {
			return nil, err
		}
		return FlattenUnion([]*ast.Node{ast.NullType(), converted}), nil

	case ast.TString:
		return convertNamedOrPrimitive(n, isReturnType, rewrite)

	case ast.TLC:
		return convertRecord(n, rewrite)

	case ast.TPipe:
		return convertUnion(n, isReturnType, rewrite)

	case ast.TFunction:
		return convertFunction(n, rewrite)

	case ast.TEllipsis:
		elem, err := ConvertType(n.FirstChild(), false, rewrite)
		if err != nil {
			return nil, err
		}
		if elem == nil {
			elem = ast.AnyType()
		}
		return ast.ArrayType(elem), nil

	case ast.TEquals:
		// Optional-ness is carried on the parameter node, not the type.
		return ConvertType(n.FirstChild(), isReturnType, rewrite)

	default:
		return nil, &UnsupportedTypeError{Token: n.Token}
	}
}

func convertNamedOrPrimitive(n *ast.Node, isReturnType bool, rewrite func(string) string) (*ast.Node, error) {
	switch n.Payload {
	case "boolean":
		return ast.BooleanType(), nil
	case "number":
		return ast.NumberType(), nil
	case "string":
		return ast.StringType(), nil
	case "null":
		return ast.NullType(), nil
	case "undefined", "void":
		if isReturnType {
			return ast.VoidType(), nil
		}
		return ast.UndefinedType(), nil
	default:
		newName := n.Payload
		if rewrite != nil {
			newName = rewrite(n.Payload)
		}
		root := ast.NamedType(newName)
		block := n.FirstChild()
		if block == nil || block.Token != ast.TBlock {
			return root, nil
		}
		if n.Payload == "Array" {
			elem, err := ConvertType(block.FirstChild(), false, rewrite)
			if err != nil {
				return nil, err
			}
			return ast.ArrayType(elem), nil
		}
		args := make([]*ast.Node, 0, len(block.Children))
		for _, c := range block.Children {
			converted, err := ConvertType(c, false, rewrite)
			if err != nil {
				return nil, err
			}
			args = append(args, converted)
		}
		return ast.ParameterizedType(root, args), nil
	}
}

func convertRecord(n *ast.Node, rewrite func(string) string) (*ast.Node, error) {
	fields := make([]ast.Field, 0, len(n.Children))
	for _, field := range n.Children {
		name := field.Payload
		name = stripQuotes(name)
		var fieldType *ast.Node
		if len(field.Children) > 0 {
			converted, err := ConvertType(field.Children[0], false, rewrite)
			if err != nil {
				return nil, err
			}
			fieldType = converted
		}
		fields = append(fields, ast.Field{Name: name, Type: fieldType})
	}
	return ast.RecordType(fields), nil
}

func stripQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func convertUnion(n *ast.Node, isReturnType bool, rewrite func(string) string) (*ast.Node, error) {
	converted := make([]*ast.Node, 0, len(n.Children))
	for _, c := range n.Children {
		t, err := ConvertType(c, isReturnType, rewrite)
		if err != nil {
			return nil, err
		}
		if t != nil {
			converted = append(converted, t)
		}
	}
	switch len(converted) {
	case 0:
		return nil, nil
	case 1:
		return converted[0], nil
	default:
		return FlattenUnion(converted), nil
	}
}

func convertFunction(n *ast.Node, rewrite func(string) string) (*ast.Node, error) {
	returnType := ast.AnyType()
	var params []*ast.FuncTypeParam

	for _, child := range n.Children {
		switch {
		case child.Token == ast.TParamList:
			idx := 1
			for _, param := range child.Children {
				name := fmt.Sprintf("p%d", idx)
				idx++
				switch param.Token {
				case ast.TEllipsis:
					var restType *ast.Node
					if param.FirstChild() != nil {
						t, err := ConvertType(param, false, rewrite)
						if err != nil {
							return nil, err
						}
						restType = t
					}
					params = append(params, &ast.FuncTypeParam{Name: name, Type: restType, Rest: true})
				case ast.TEquals:
					t, err := ConvertType(param, false, rewrite)
					if err != nil {
						return nil, err
					}
					params = append(params, &ast.FuncTypeParam{Name: name, Type: t, Optional: true})
				default:
					t, err := ConvertType(param, false, rewrite)
					if err != nil {
						return nil, err
					}
					params = append(params, &ast.FuncTypeParam{Name: name, Type: t})
				}
			}
		case child.Token == ast.TNew:
			// Constructor-signature position; not expressible in the typed-
			// declaration grammar this module emits, so it is dropped.
		case child.Token == ast.TThis:
			// `this` position; also dropped.
		default:
			t, err := ConvertType(child, true, rewrite)
			if err != nil {
				return nil, err
			}
			if t != nil {
				returnType = t
			}
		}
	}
	return ast.FunctionType(returnType, params), nil
}

// FlattenUnion recursively expands nested UNION_TYPE children, keeping at
// most one null, in first-occurrence order. A repeated member without
// children (a primitive or a named type with no type arguments) is kept
// only once; repeated compound members (arrays, parameterized, record and
// function types) are all kept. A nested union's children are copied
// before recursing and a fresh result slice is built, so no input node is
// detached.
func FlattenUnion(types []*ast.Node) *ast.Node {
	flat := flatten(types, nil, false)
	return ast.UnionType(flat)
}

func flatten(types []*ast.Node, result []*ast.Node, hasNull bool) []*ast.Node {
	for _, t := range types {
		if t == nil {
			continue
		}
		switch t.Token {
		case ast.TNull:
			if !hasNull {
				result = append(result, ast.NullType())
				hasNull = true
			}
		case ast.TUnionType:
			children := make([]*ast.Node, len(t.Children))
			copy(children, t.Children)
			result = flatten(children, result, hasNull)
			hasNull = containsNull(result)
		default:
			dup := false
			for _, r := range result {
				dup = dup || (len(t.Children) == 0 && len(r.Children) == 0 && r.Token == t.Token && r.Payload == t.Payload)
			}
			if !dup {
				result = append(result, t)
			}
		}
	}
	return result
}

func containsNull(types []*ast.Node) bool {
	for _, t := range types {
		if t.Token == ast.TNull {
			return true
		}
	}
	return false
}
