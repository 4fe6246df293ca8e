package cli

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/toyz/attest/internal/errors"
)

// DirectivePrefix marks a doc-comment line as a bind directive:
//
//	//attest::bind is_prime signature="(n)"
const DirectivePrefix = "attest::bind"

// Binding is one bind directive attached to a package-level function
type Binding struct {
	// FuncName is the Go identifier of the annotated function
	FuncName string

	// MethodName is the assertion method name to install; defaults to
	// the snake_cased function name
	MethodName string

	// Module overrides the cross-reference module; defaults to the
	// package import path
	Module string

	// Signature is the optional textual parameter declaration
	Signature string

	// Doc is the non-directive remainder of the doc comment
	Doc string
}

// PackageBindings collects the directives found in one package directory
type PackageBindings struct {
	Dir         string
	PackageName string
	Bindings    []Binding
}

// DirectoryScanner discovers package directories and their bind
// directives
type DirectoryScanner struct{}

func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories expands the provided directory arguments into the
// concrete list of package directories containing Go files. Go-style
// "./..." patterns scan recursively.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string

	add := func(dir string) error {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return errors.WrapFileSystemError("resolve", dir, err)
		}
		if !seen[abs] && hasGoFiles(abs) {
			seen[abs] = true
			dirs = append(dirs, abs)
		}
		return nil
	}

	for _, rootDir := range rootDirs {
		if !strings.HasSuffix(rootDir, "/...") {
			if err := add(rootDir); err != nil {
				return nil, err
			}
			continue
		}

		baseDir := strings.TrimSuffix(rootDir, "/...")
		if baseDir == "" {
			baseDir = "."
		}
		err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // skip unreadable entries
			}
			if !d.IsDir() {
				return nil
			}
			name := d.Name()
			if path != baseDir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata") {
				return filepath.SkipDir
			}
			return add(path)
		})
		if err != nil {
			return nil, errors.WrapFileSystemError("scan", baseDir, err)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

// ScanPackage parses the Go files of one directory and extracts its
// bind directives. A directory without directives yields nil. When a
// directory holds several packages, directives may live in only one of
// them; the packages are visited in name order so the result is stable.
func (s *DirectoryScanner) ScanPackage(dir string) (*PackageBindings, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, func(info fs.FileInfo) bool {
		return !strings.HasSuffix(info.Name(), "_test.go") && info.Name() != GeneratedFileName
	}, parser.ParseComments)
	if err != nil {
		return nil, errors.WrapParseError(dir, err)
	}

	names := make([]string, 0, len(pkgs))
	for name := range pkgs {
		if strings.HasSuffix(name, "_test") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	result := &PackageBindings{Dir: dir}
	for _, name := range names {
		// Walk files in a stable order so generated output is
		// deterministic.
		var files []string
		for filename := range pkgs[name].Files {
			files = append(files, filename)
		}
		sort.Strings(files)

		var bindings []Binding
		for _, filename := range files {
			for _, decl := range pkgs[name].Files[filename].Decls {
				fn, ok := decl.(*ast.FuncDecl)
				if !ok || fn.Recv != nil || fn.Doc == nil {
					continue
				}
				b, ok, err := parseDirective(fn)
				if err != nil {
					return nil, errors.WrapParseError(fn.Name.Name, err).
						WithLocation(sourceLocation(fset, fn.Pos()))
				}
				if !ok {
					continue
				}
				if err := validateBindable(fn); err != nil {
					return nil, errors.WrapParseError(fn.Name.Name, err).
						WithLocation(sourceLocation(fset, fn.Pos()))
				}
				bindings = append(bindings, b)
			}
		}
		if len(bindings) == 0 {
			continue
		}
		if result.PackageName != "" {
			return nil, errors.Newf(errors.SyntaxErrorCode,
				"%s: bind directives found in multiple packages (%s and %s)", dir, result.PackageName, name)
		}
		result.PackageName = name
		result.Bindings = bindings
	}
	if result.PackageName == "" {
		return nil, nil
	}
	return result, nil
}

// sourceLocation translates a token position into the structured
// location attached to scan errors
func sourceLocation(fset *token.FileSet, pos token.Pos) errors.SourceLocation {
	p := fset.Position(pos)
	return errors.SourceLocation{File: p.Filename, Line: p.Line, Column: p.Column}
}

// validateBindable rejects functions that cannot act as assertion
// predicates: they must produce at least one non-error result and must
// not be generic
func validateBindable(fn *ast.FuncDecl) error {
	if fn.Type.TypeParams != nil {
		return fmt.Errorf("generic functions cannot be bound")
	}
	results := 0
	if fn.Type.Results != nil {
		for _, field := range fn.Type.Results.List {
			n := len(field.Names)
			if n == 0 {
				n = 1
			}
			results += n
		}
		if last := fn.Type.Results.List[len(fn.Type.Results.List)-1]; results > 0 {
			if ident, ok := last.Type.(*ast.Ident); ok && ident.Name == "error" {
				results--
			}
		}
	}
	if results == 0 {
		return fmt.Errorf("bound functions must return a value to assert on")
	}
	return nil
}

// parseDirective extracts a Binding from a function's doc comment, if
// one of its lines carries the directive
func parseDirective(fn *ast.FuncDecl) (Binding, bool, error) {
	b := Binding{FuncName: fn.Name.Name}
	found := false
	var docLines []string

	for _, comment := range fn.Doc.List {
		line := strings.TrimSpace(strings.TrimPrefix(comment.Text, "//"))
		if !strings.HasPrefix(line, DirectivePrefix) {
			docLines = append(docLines, line)
			continue
		}
		if found {
			return b, false, fmt.Errorf("duplicate %s directive", DirectivePrefix)
		}
		found = true
		if err := parseDirectiveArgs(&b, strings.TrimSpace(strings.TrimPrefix(line, DirectivePrefix))); err != nil {
			return b, false, err
		}
	}
	if !found {
		return b, false, nil
	}

	if b.MethodName == "" {
		b.MethodName = snakeCase(fn.Name.Name)
	}
	if b.Doc == "" {
		b.Doc = docText(docLines, fn.Name.Name)
	}
	return b, true, nil
}

// parseDirectiveArgs handles the directive argument list: an optional
// leading method name followed by key=value pairs with optionally
// quoted values
func parseDirectiveArgs(b *Binding, args string) error {
	for _, field := range splitQuoted(args) {
		key, value, isPair := strings.Cut(field, "=")
		if !isPair {
			if b.MethodName != "" {
				return fmt.Errorf("unexpected argument %q", field)
			}
			b.MethodName = field
			continue
		}
		if unquoted, err := strconv.Unquote(value); err == nil {
			value = unquoted
		}
		switch key {
		case "name":
			b.MethodName = value
		case "module":
			b.Module = value
		case "signature":
			b.Signature = value
		case "doc":
			b.Doc = value
		default:
			return fmt.Errorf("unknown directive key %q", key)
		}
	}
	return nil
}

// splitQuoted splits on spaces while keeping double-quoted spans intact
func splitQuoted(s string) []string {
	var fields []string
	var cur strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == ' ' && !inQuote:
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields
}

// docText turns the non-directive doc lines into a summary, stripping
// the conventional "FuncName " prefix of the first line
func docText(lines []string, funcName string) string {
	text := strings.TrimSpace(strings.Join(lines, "\n"))
	text = strings.TrimPrefix(text, funcName+" ")
	return text
}

// snakeCase converts a Go identifier to the snake_case method naming
// convention of the catalog
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func hasGoFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".go") {
			return true
		}
	}
	return false
}
