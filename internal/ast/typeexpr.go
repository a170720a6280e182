package ast

// Constructors for typed-declaration nodes. Named after the static helpers
// on the original TypeDeclarationsIR counterpart so the conversion table
// in internal/typeannotate reads the same way the pass it is grounded on
// does.

func AnyType() *Node       { return NewNode(TAnyType) }
func VoidType() *Node      { return NewNode(TVoid) }
func UndefinedType() *Node { return NewNode(TUndefinedType) }
func BooleanType() *Node   { return NewNode(TBooleanType) }
func NumberType() *Node    { return NewNode(TNumberType) }
func StringType() *Node    { return NewNode(TStringType) }
func NullType() *Node      { return NewNode(TNull) }

func NamedType(name string) *Node {
	return &Node{Token: TNamedType, Payload: name}
}

// ParameterizedType attaches type arguments to a named type, e.g. Map<K, V>.
// Nil arguments are dropped, matching the doc-comment conversion rule that
// drops unconvertible type arguments rather than failing the whole type.
func ParameterizedType(root *Node, args []*Node) *Node {
	filtered := make([]*Node, 0, len(args))
	for _, a := range args {
		if a != nil {
			filtered = append(filtered, a)
		}
	}
	root.Children = filtered
	return root
}

func ArrayType(elem *Node) *Node {
	if elem == nil {
		elem = AnyType()
	}
	return NewNode(TArrayType, elem)
}

// Field is one entry of a record type. A nil Type means the field carries
// no declared type and is emitted without a colon.
type Field struct {
	Name string
	Type *Node
}

func RecordType(fields []Field) *Node {
	n := &Node{Token: TRecordType}
	for _, f := range fields {
		field := &Node{Token: TField, Payload: f.Name}
		if f.Type != nil {
			field.Children = []*Node{f.Type}
		}
		n.Children = append(n.Children, field)
	}
	return n
}

func UnionType(types []*Node) *Node {
	return &Node{Token: TUnionType, Children: types}
}

// FunctionType builds a function-type node. Children are, in order: the
// return type, then one child per parameter (a NAME leaf carrying the
// parameter's DeclaredType, tagged PropOptES6Typed when optional, or a REST
// leaf whose DeclaredType is p.Type as given, or any[] when p.Type is nil).
func FunctionType(ret *Node, params []*FuncTypeParam) *Node {
	if ret == nil {
		ret = AnyType()
	}
	n := &Node{Token: TFunctionType}
	n.Children = append(n.Children, ret)
	for _, p := range params {
		var leaf *Node
		if p.Rest {
			leaf = &Node{Token: TRest, Payload: p.Name}
			if p.Type == nil {
				leaf.DeclaredType = ArrayType(AnyType())
			} else {
				leaf.DeclaredType = p.Type
			}
		} else {
			leaf = &Node{Token: TName, Payload: p.Name, DeclaredType: p.Type}
			if p.Optional {
				leaf.SetProp(PropOptES6Typed, true)
			}
		}
		n.Children = append(n.Children, leaf)
	}
	return n
}

type FuncTypeParam struct {
	Name     string
	Type     *Node
	Optional bool
	Rest     bool
}

// ReturnTypeOf and ParamsOf unpack a FUNCTION_TYPE node back into pieces,
// used by internal/stylefix when splicing a function type onto a lifted
// function literal.
func ReturnTypeOf(fnType *Node) *Node {
	return fnType.FirstChild()
}

func ParamsOf(fnType *Node) []*Node {
	if len(fnType.Children) == 0 {
		return nil
	}
	return fnType.Children[1:]
}
