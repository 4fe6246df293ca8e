// Package signature derives, renders, and parses the augmented
// signatures behind synthesized assertion methods.
//
// Deriving takes the native parameter list of a callable and produces a
// new one with a leading self-like receiver parameter, guaranteed
// variadic slots, and the reserved keyword-only control parameters
// (invert, exception, post_process, message) appended.
package signature

import (
	"strings"

	"github.com/toyz/attest/internal/models"
)

// Warner receives the non-fatal diagnostics emitted while deriving
// signatures. *utils.DiagnosticSystem satisfies it.
type Warner interface {
	Warn(format string, args ...interface{})
}

type nopWarner struct{}

func (nopWarner) Warn(string, ...interface{}) {}

// reservedParameters returns fresh copies of the four reserved
// keyword-only control parameters with their documented defaults
func reservedParameters() []models.Parameter {
	return []models.Parameter{
		{Name: models.ParamInvert, Kind: models.ParamKeywordOnly, Default: false, HasDefault: true, Annotation: "bool", Reserved: true},
		{Name: models.ParamException, Kind: models.ParamKeywordOnly, Default: nil, HasDefault: true, Annotation: "error", Reserved: true},
		{Name: models.ParamPostProcess, Kind: models.ParamKeywordOnly, Default: nil, HasDefault: true, Annotation: "func(any) any", Reserved: true},
		{Name: models.ParamMessage, Kind: models.ParamKeywordOnly, Default: nil, HasDefault: true, Annotation: "string", Reserved: true},
	}
}

// Fallback returns the fixed backup signature used for callables whose
// native signature cannot be read: a self-like parameter, a variadic
// positional parameter, the four reserved keyword-only parameters, and
// a variadic keyword parameter.
func Fallback() *models.Signature {
	params := []models.Parameter{
		{Name: "self", Kind: models.ParamPositionalOrKeyword},
		{Name: "args", Kind: models.ParamVarPositional},
	}
	params = append(params, reservedParameters()...)
	params = append(params, models.Parameter{Name: "kwargs", Kind: models.ParamVarKeyword})
	return &models.Signature{Parameters: params}
}

// Derive produces the augmented signature for c. It never fails: when
// the callable's native signature is unreadable the fixed Fallback
// signature is returned instead.
//
// The derived parameter order is: self-like, positional-or-keyword,
// variadic positional, keyword-only (original then reserved), variadic
// keyword. Positional-only parameters are promoted to
// positional-or-keyword and defaulted positional parameters to
// keyword-only, so every source argument stays addressable after the
// variadic slot is guaranteed. Reserved parameter names and the
// synthesized args/kwargs slots that collide with source parameters
// are suffixed with underscores until unique; each rename emits a
// warning through w.
func Derive(c *models.Callable, w Warner) *models.Signature {
	if w == nil {
		w = nopWarner{}
	}
	if c == nil || !c.SignatureOK {
		return Fallback()
	}

	var (
		pok, ko  []models.Parameter
		varPos   *models.Parameter
		varKw    *models.Parameter
	)
	for _, prm := range c.Params {
		prm := prm
		switch prm.Kind {
		case models.ParamVarPositional:
			varPos = &prm
		case models.ParamVarKeyword:
			varKw = &prm
		case models.ParamKeywordOnly:
			ko = append(ko, prm)
		case models.ParamPositionalOnly:
			prm.Kind = models.ParamPositionalOrKeyword
			pok = append(pok, prm)
		default:
			if prm.HasDefault {
				prm.Kind = models.ParamKeywordOnly
				ko = append(ko, prm)
			} else {
				pok = append(pok, prm)
			}
		}
	}
	used := make(map[string]bool, len(c.Params)+8)
	used[selfName(c)] = true
	for _, prm := range pok {
		used[prm.Name] = true
	}
	for _, prm := range ko {
		used[prm.Name] = true
	}
	if varPos != nil {
		used[varPos.Name] = true
	}
	if varKw != nil {
		used[varKw.Name] = true
	}

	// The synthesized variadic slots must not shadow a source parameter
	// that happens to be called args or kwargs.
	if varPos == nil {
		varPos = &models.Parameter{Name: uniqueName("args", used, c, w), Kind: models.ParamVarPositional}
	}
	if varKw == nil {
		varKw = &models.Parameter{Name: uniqueName("kwargs", used, c, w), Kind: models.ParamVarKeyword}
	}

	params := make([]models.Parameter, 0, len(c.Params)+7)
	params = append(params, models.Parameter{Name: selfName(c), Kind: models.ParamPositionalOrKeyword})
	params = append(params, pok...)
	params = append(params, *varPos)
	params = append(params, ko...)

	for _, reserved := range reservedParameters() {
		reserved.Name = uniqueName(reserved.Name, used, c, w)
		params = append(params, reserved)
	}
	params = append(params, *varKw)

	return &models.Signature{Parameters: params}
}

// uniqueName suffixes name with underscores until it collides with no
// parameter chosen so far, warning through w on every rename
func uniqueName(name string, used map[string]bool, c *models.Callable, w Warner) string {
	renamed := name
	for used[renamed] {
		renamed += "_"
	}
	if renamed != name {
		w.Warn("parameter %q of %s collides with an existing name; renamed to %q",
			name, c.DisplayName(), renamed)
	}
	used[renamed] = true
	return renamed
}

// selfName picks the name of the synthetic receiver parameter: the
// lower-cased receiver type when one is discoverable, "self" otherwise
func selfName(c *models.Callable) string {
	if c.Receiver != "" {
		return strings.ToLower(c.Receiver)
	}
	return "self"
}
