package models

// ParamKind represents how an argument is bound to a parameter
type ParamKind int

const (
	ParamPositionalOnly ParamKind = iota
	ParamPositionalOrKeyword
	ParamVarPositional
	ParamKeywordOnly
	ParamVarKeyword
)

// String returns the string representation of the parameter kind
func (k ParamKind) String() string {
	switch k {
	case ParamPositionalOnly:
		return "positional-only"
	case ParamPositionalOrKeyword:
		return "positional-or-keyword"
	case ParamVarPositional:
		return "var-positional"
	case ParamKeywordOnly:
		return "keyword-only"
	case ParamVarKeyword:
		return "var-keyword"
	default:
		return "unknown"
	}
}

// CallableKind classifies a callable for documentation cross-referencing
type CallableKind int

const (
	KindUnknown CallableKind = iota
	KindFunction
	KindMethod
	KindType
)

// String returns the string representation of the callable kind
func (k CallableKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindType:
		return "type"
	default:
		return "unknown"
	}
}

// Reserved parameter names appended to every derived signature
const (
	ParamInvert      = "invert"
	ParamException   = "exception"
	ParamPostProcess = "post_process"
	ParamMessage     = "message"
)

// ReservedParams lists the reserved control parameters in their
// canonical order
var ReservedParams = []string{ParamInvert, ParamException, ParamPostProcess, ParamMessage}
