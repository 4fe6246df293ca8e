package cli

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"text/template"

	"github.com/toyz/attest/internal/errors"
	"github.com/toyz/attest/internal/signature"
	"github.com/toyz/attest/internal/utils"
)

// bindingsTemplate renders one registration file per annotated package
var bindingsTemplate = template.Must(template.New("bindings").Parse(`// Code generated by attest. DO NOT EDIT.

package {{.PackageName}}

import (
	"github.com/toyz/attest/pkg/attest"
)

func init() {
{{- range .Bindings}}
	attest.MustBind({{$.Target}}, {{.FuncName}}, {{printf "%q" .MethodName}},
		attest.WithName({{printf "%q" .MethodName}}),
		attest.WithModule({{printf "%q" .Module}}),
{{- if .Signature}}
		attest.WithSignature({{printf "%q" .Signature}}),
{{- end}}
{{- if .Doc}}
		attest.WithDoc({{printf "%q" .Doc}}),
{{- end}}
	)
{{- end}}
}
`))

// Summary reports what a generation run did
type Summary struct {
	PackagesProcessed int
	BindingsFound     int
	GeneratedFiles    []string
}

// Generator scans directories for bind directives and writes the
// per-package registration files
type Generator struct {
	config      *Config
	scanner     *DirectoryScanner
	resolver    *ModuleResolver
	diagnostics *utils.DiagnosticSystem
	summary     Summary
}

// NewGenerator creates a generator for the given configuration
func NewGenerator(cfg *Config) *Generator {
	return NewGeneratorWithDiagnostics(cfg, utils.NewDiagnosticSystem(utils.DiagnosticInfo))
}

// NewGeneratorWithDiagnostics creates a generator reporting through
// the given diagnostic system
func NewGeneratorWithDiagnostics(cfg *Config, diagnostics *utils.DiagnosticSystem) *Generator {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.ApplyDefaults()
	return &Generator{
		config:      cfg,
		scanner:     NewDirectoryScanner(),
		resolver:    NewModuleResolver(cfg.ModuleName),
		diagnostics: diagnostics,
	}
}

// Summary returns the statistics of the last Generate run
func (g *Generator) Summary() Summary {
	return g.summary
}

// Generate runs the full pipeline over the configured directories:
// scan, validate directives, render, format, write. Failing packages
// do not stop the run; their errors are collected and reported
// together.
func (g *Generator) Generate() error {
	g.summary = Summary{}

	dirs, err := g.scanner.ScanDirectories(g.config.Directories)
	if err != nil {
		return err
	}
	g.diagnostics.Verbose("Found %d candidate package directories", len(dirs))

	failures := errors.NewMultipleErrors()
	for _, dir := range dirs {
		pkg, err := g.scanner.ScanPackage(dir)
		if err != nil {
			failures.Add(asAttestError(err))
			continue
		}
		if pkg == nil {
			continue
		}
		g.summary.PackagesProcessed++
		g.summary.BindingsFound += len(pkg.Bindings)

		if err := g.generatePackage(pkg); err != nil {
			failures.Add(asAttestError(err))
		}
	}

	switch failures.Count() {
	case 0:
		return nil
	case 1:
		return failures.Errors[0]
	default:
		return failures
	}
}

// asAttestError keeps the structured error when one is present so the
// reporter can surface codes, locations, and suggestions
func asAttestError(err error) errors.AttestError {
	var ae errors.AttestError
	if stderrors.As(err, &ae) {
		return ae
	}
	return errors.Wrap(errors.GenerationErrorCode, "code generation failed", err)
}

// generatePackage validates and writes the registration file for one
// package
func (g *Generator) generatePackage(pkg *PackageBindings) error {
	importPath, err := g.resolver.ResolveImportPath(pkg.Dir)
	if err != nil {
		return err
	}

	seen := make(map[string]string)
	for i := range pkg.Bindings {
		b := &pkg.Bindings[i]
		if b.Module == "" {
			b.Module = importPath
		}
		if prev, dup := seen[b.MethodName]; dup {
			return errors.Newf(errors.GenerationErrorCode,
				"%s: method name %q bound by both %s and %s", pkg.Dir, b.MethodName, prev, b.FuncName)
		}
		seen[b.MethodName] = b.FuncName

		// Malformed declarations surface here rather than as panics
		// inside the generated init.
		if b.Signature != "" {
			if _, err := signature.Parse(b.Signature); err != nil {
				return errors.Wrapf(errors.SyntaxErrorCode, err,
					"%s: invalid signature declaration for %s", pkg.Dir, b.FuncName)
			}
		}
	}

	var buf bytes.Buffer
	data := struct {
		*PackageBindings
		Target string
	}{pkg, g.config.Target}
	if err := bindingsTemplate.Execute(&buf, data); err != nil {
		return errors.WrapGenerateError(pkg.Dir, err)
	}

	outPath := filepath.Join(pkg.Dir, GeneratedFileName)
	formatted, err := utils.FormatGoSource(outPath, buf.Bytes())
	if err != nil {
		return errors.WrapGenerateError(outPath, err)
	}

	if err := os.WriteFile(outPath, formatted, 0644); err != nil {
		return errors.WrapFileSystemError("write", outPath, err)
	}

	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, outPath)
	g.diagnostics.Verbose("Generated %s (%d methods)", outPath, len(pkg.Bindings))
	return nil
}
