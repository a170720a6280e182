// Package ast defines the abstract syntax tree shared by every pass in this
// module: the program AST produced upstream, the doc-comment type-expression
// grammar, and the typed-declaration grammar the type-annotation pass
// produces from it. All three share one Node representation, carried
// across parse and transform stages without a separate tree per stage.
package ast

// Token is the tag of an AST node. The set is deliberately small and fixed:
// this module never needs the full JavaScript grammar, only the node kinds
// the three compiler passes read or produce.
type Token uint8

const (
	TInvalid Token = iota

	// Program-level statement/expression tokens.
	TVar
	TLet
	TConst
	TFunction
	TClass
	TName
	TGetProp
	TMemberVariableDef
	TCast
	TImport
	TImportSpecs
	TImportSpec
	TParamList
	TRest
	TScript
	TModuleBody
	TBlock
	TNew
	TThis
	TReturn
	TNumber

	// Doc-comment type-expression grammar tokens (raw, pre-conversion).
	TColon
	TPipe
	TBang
	TQMark
	TStar
	TVoid
	TString
	TLC
	TEllipsis
	TEquals
	TEmpty
	TNull

	// Typed-declaration grammar tokens (post-conversion).
	TUnionType
	TUndefinedType
	TAnyType
	TBooleanType
	TNumberType
	TStringType
	TNamedType
	TArrayType
	TRecordType
	TFunctionType
	TField
)

var tokenNames = map[Token]string{
	TInvalid:           "INVALID",
	TVar:               "VAR",
	TLet:               "LET",
	TConst:             "CONST",
	TFunction:          "FUNCTION",
	TClass:             "CLASS",
	TName:              "NAME",
	TGetProp:           "GETPROP",
	TMemberVariableDef: "MEMBER_VARIABLE_DEF",
	TCast:              "CAST",
	TImport:            "IMPORT",
	TImportSpecs:       "IMPORT_SPECS",
	TImportSpec:        "IMPORT_SPEC",
	TParamList:         "PARAM_LIST",
	TRest:              "REST",
	TScript:            "SCRIPT",
	TModuleBody:        "MODULE_BODY",
	TBlock:             "BLOCK",
	TNew:               "NEW",
	TThis:              "THIS",
	TReturn:            "RETURN",
	TNumber:            "NUMBER",
	TColon:             "COLON",
	TPipe:              "PIPE",
	TBang:              "BANG",
	TQMark:             "QMARK",
	TStar:              "STAR",
	TVoid:              "VOID",
	TString:            "STRING",
	TLC:                "LC",
	TEllipsis:          "ELLIPSIS",
	TEquals:            "EQUALS",
	TEmpty:             "EMPTY",
	TNull:              "NULL",
	TUnionType:         "UNION_TYPE",
	TUndefinedType:     "UNDEFINED_TYPE",
	TAnyType:           "ANY_TYPE",
	TBooleanType:       "BOOLEAN_TYPE",
	TNumberType:        "NUMBER_TYPE",
	TStringType:        "STRING_TYPE",
	TNamedType:         "NAMED_TYPE",
	TArrayType:         "ARRAY_TYPE",
	TRecordType:        "RECORD_TYPE",
	TFunctionType:      "FUNCTION_TYPE",
	TField:             "FIELD",
}

func (t Token) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}
