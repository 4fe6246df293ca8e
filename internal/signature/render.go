package signature

import (
	"strings"

	"github.com/toyz/attest/internal/models"
)

// Render converts an augmented signature into the literal textual
// parameter list of a call expression. The self-like parameter is
// replaced by displayName verbatim, variadic parameters render as
// *name/**name, and defaulted parameters render in keyword-forwarding
// form (name=name) rather than with their literal default values.
func Render(sig *models.Signature, displayName string) string {
	parts := make([]string, 0, len(sig.Parameters))
	for i, prm := range sig.Parameters {
		switch {
		case i == 0:
			parts = append(parts, displayName)
		case prm.Kind == models.ParamVarPositional:
			parts = append(parts, "*"+prm.Name)
		case prm.Kind == models.ParamVarKeyword:
			parts = append(parts, "**"+prm.Name)
		case prm.HasDefault:
			parts = append(parts, prm.Name+"="+prm.Name)
		default:
			parts = append(parts, prm.Name)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// RenderDoc returns the documentation-facing copy of the rendered
// signature: the self-like parameter, the variadic markers, and the
// reserved control parameters are omitted so only the source
// callable's own arguments remain visible.
func RenderDoc(sig *models.Signature) string {
	parts := make([]string, 0, len(sig.Parameters))
	for i, prm := range sig.Parameters {
		if i == 0 || prm.Reserved {
			continue
		}
		if prm.Kind == models.ParamVarPositional || prm.Kind == models.ParamVarKeyword {
			continue
		}
		if prm.HasDefault {
			parts = append(parts, prm.Name+"="+prm.Name)
		} else {
			parts = append(parts, prm.Name)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
