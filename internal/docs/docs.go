// Package docs synthesizes the documentation text attached to
// generated assertion methods.
package docs

import (
	"fmt"
	"strings"

	"github.com/toyz/attest/internal/errors"
	"github.com/toyz/attest/internal/models"
)

// BaseTemplate is the documentation skeleton. Its verbs are, in order:
// name, signature, name, signature, cross-reference, summary.
const BaseTemplate = `Perform the following assertion: assert %s%s

Parameters
----------
invert : bool
    Invert the output of the assertion: assert not %s%s

exception : error, optional
    Assert that exception is raised during/before the assertion operation.

See also
--------
%s:
%s
`

// DefaultPlaceholder substitutes for callables that carry no
// documentation text of their own
const DefaultPlaceholder = "No description."

// Config carries the explicit configuration of the documentation
// synthesizer. The zero value behaves like DefaultConfig.
type Config struct {
	// ModuleMapping rewrites runtime-internal module names to their
	// public-facing display prefixes before they are embedded in
	// cross-references. An empty-string value yields an unqualified
	// reference.
	ModuleMapping map[string]string

	// FullParagraph selects the whole first paragraph of the source
	// callable's documentation instead of only its first line
	FullParagraph bool

	// Placeholder overrides DefaultPlaceholder
	Placeholder string

	// Template overrides BaseTemplate
	Template string
}

// DefaultModuleMapping maps the pseudo-modules and internal package
// paths used by this repository to their public-facing prefixes
func DefaultModuleMapping() map[string]string {
	return map[string]string{
		"builtin":                          "",
		"github.com/toyz/attest/pkg/attest": "attest.",
	}
}

// DefaultConfig returns the configuration used when callers pass the
// zero Config
func DefaultConfig() Config {
	return Config{
		ModuleMapping: DefaultModuleMapping(),
		Placeholder:   DefaultPlaceholder,
	}
}

// normalize fills in the defaults for unset fields
func (cfg Config) normalize() Config {
	if cfg.ModuleMapping == nil {
		cfg.ModuleMapping = DefaultModuleMapping()
	}
	if cfg.Placeholder == "" {
		cfg.Placeholder = DefaultPlaceholder
	}
	if cfg.Template == "" {
		cfg.Template = BaseTemplate
	}
	return cfg
}

// Build composes the documentation text for an assertion method
// synthesized from c, embedding the documentation-facing rendered
// signature. It fails when c cannot be classified as a function,
// method, or type.
func Build(cfg Config, c *models.Callable, rendered string) (string, error) {
	cfg = cfg.normalize()

	ref, err := CrossRef(cfg, c)
	if err != nil {
		return "", err
	}

	name := c.DisplayName()
	summary := indent(summaryOf(cfg, c), "    ")
	return fmt.Sprintf(cfg.Template, name, rendered, name, rendered, ref, summary), nil
}

// CrossRef renders a cross-reference tag for the source callable,
// classified as a function, method, or type. The callable's module is
// rewritten through the configured module mapping; unmapped modules
// are used as-is with a trailing dot.
func CrossRef(cfg Config, c *models.Callable) (string, error) {
	cfg = cfg.normalize()

	name := c.DisplayName()
	module := c.Module
	if mapped, ok := cfg.ModuleMapping[module]; ok {
		module = mapped
	} else if module != "" {
		module += "."
	}

	switch c.Kind {
	case models.KindFunction:
		return fmt.Sprintf(":func:`%s<%s%s>`", name, module, name), nil
	case models.KindMethod:
		return fmt.Sprintf(":meth:`%s<%s%s>`", name, module, name), nil
	case models.KindType:
		return fmt.Sprintf(":class:`%s<%s%s>`", name, module, name), nil
	}
	return "", errors.ClassificationError(name)
}

// summaryOf extracts the summary of the source callable's own
// documentation: its first line, or its first paragraph when the
// configuration asks for one
func summaryOf(cfg Config, c *models.Callable) string {
	doc := strings.TrimSpace(c.Doc)
	if doc == "" {
		return cfg.Placeholder
	}
	if cfg.FullParagraph {
		if end := strings.Index(doc, "\n\n"); end >= 0 {
			doc = doc[:end]
		}
		return doc
	}
	if end := strings.IndexByte(doc, '\n'); end >= 0 {
		doc = doc[:end]
	}
	return strings.TrimSpace(doc)
}

// indent prefixes every non-empty line of text with the given prefix
func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
