package signature

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/attest/internal/errors"
	"github.com/toyz/attest/internal/models"
)

// Textual signature declarations describe a callable's native
// parameter list the way it is displayed, e.g.
//
//	(a, b, rtol=1e-07)
//	(obj, target: string, use_repr=true)
//	(a, /, *values, key=nil, **extra)
//
// A bare * makes everything after it keyword-only, a / makes
// everything before it positional-only, and defaults may be numbers,
// quoted strings, true/false, or nil.

// sigDecl is the grammar root for a signature declaration
type sigDecl struct {
	Items []*sigItem `parser:"'(' ( @@ ( ',' @@ )* ','? )? ')'"`
}

// sigItem is a single comma-separated element of the declaration
type sigItem struct {
	VarKeyword    *string    `parser:"  StarStar @Ident"`
	VarPositional *string    `parser:"| Star @Ident"`
	KwOnlyMarker  bool       `parser:"| @Star"`
	PosOnlyMarker bool       `parser:"| @Slash"`
	Named         *namedItem `parser:"| @@"`
}

// namedItem is a plain parameter with optional annotation and default
type namedItem struct {
	Name    string        `parser:"@Ident"`
	Type    *string       `parser:"( ':' @Ident )?"`
	Default *defaultValue `parser:"( '=' @@ )?"`
}

// defaultValue is a literal default
type defaultValue struct {
	Number *string `parser:"  @Number"`
	Str    *string `parser:"| @String"`
	Ident  *string `parser:"| @Ident"`
}

var sigLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Number", Pattern: `-?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "StarStar", Pattern: `\*\*`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Slash", Pattern: `/`},
	{Name: "Punct", Pattern: `[(),=:]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var sigParser = participle.MustBuild[sigDecl](
	participle.Lexer(sigLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse parses a textual signature declaration into a parameter list
func Parse(text string) ([]models.Parameter, error) {
	decl, err := sigParser.ParseString("", text)
	if err != nil {
		return nil, errors.WrapParseError(fmt.Sprintf("signature declaration %q", text), err)
	}

	var params []models.Parameter
	seen := make(map[string]bool)
	keywordOnly := false

	appendNamed := func(name string) error {
		if seen[name] {
			return errors.Newf(errors.SyntaxErrorCode,
				"duplicate parameter %q in signature declaration %q", name, text)
		}
		seen[name] = true
		return nil
	}

	for _, item := range decl.Items {
		switch {
		case item.VarKeyword != nil:
			if err := appendNamed(*item.VarKeyword); err != nil {
				return nil, err
			}
			params = append(params, models.Parameter{Name: *item.VarKeyword, Kind: models.ParamVarKeyword})
			keywordOnly = true

		case item.VarPositional != nil:
			if err := appendNamed(*item.VarPositional); err != nil {
				return nil, err
			}
			params = append(params, models.Parameter{Name: *item.VarPositional, Kind: models.ParamVarPositional})
			keywordOnly = true

		case item.KwOnlyMarker:
			keywordOnly = true

		case item.PosOnlyMarker:
			for i := range params {
				if params[i].Kind == models.ParamPositionalOrKeyword {
					params[i].Kind = models.ParamPositionalOnly
				}
			}

		case item.Named != nil:
			named := item.Named
			if err := appendNamed(named.Name); err != nil {
				return nil, err
			}
			prm := models.Parameter{Name: named.Name, Kind: models.ParamPositionalOrKeyword}
			if keywordOnly {
				prm.Kind = models.ParamKeywordOnly
			}
			if named.Type != nil {
				prm.Annotation = *named.Type
			}
			if named.Default != nil {
				value, err := named.Default.value()
				if err != nil {
					return nil, errors.WrapParseError(
						fmt.Sprintf("default for parameter %q", named.Name), err)
				}
				prm.Default = value
				prm.HasDefault = true
			}
			params = append(params, prm)
		}
	}

	return params, nil
}

// MustParse is like Parse but panics on malformed declarations. It is
// intended for statically declared catalog signatures.
func MustParse(text string) []models.Parameter {
	params, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return params
}

// value converts the captured literal into its Go value
func (d *defaultValue) value() (any, error) {
	switch {
	case d.Number != nil:
		raw := *d.Number
		if strings.ContainsAny(raw, ".eE") {
			return strconv.ParseFloat(raw, 64)
		}
		return strconv.Atoi(raw)

	case d.Str != nil:
		return strconv.Unquote(*d.Str)

	case d.Ident != nil:
		switch *d.Ident {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "nil":
			return nil, nil
		default:
			return *d.Ident, nil
		}
	}
	return nil, fmt.Errorf("empty default value")
}
