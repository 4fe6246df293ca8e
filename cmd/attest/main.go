package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/toyz/attest/internal/cli"
	"github.com/toyz/attest/internal/utils"
)

func main() {
	var (
		moduleFlag  = flag.String("module", "", "Custom module name for imports (defaults to go.mod module)")
		configFlag  = flag.String("config", "", "Path to a .attest.yaml configuration file")
		targetFlag  = flag.String("target", "", "Registration target expression (defaults to attest.DefaultMethodSet)")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		cleanFlag   = flag.Bool("clean", false, "Delete all attest_bindings.go files from the specified directories")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Attest Binding Generator\n")
		fmt.Fprintf(os.Stderr, "Recursively scans directories for Go functions with attest::bind directives and generates registration files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for annotated Go files\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                                  # Scan everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s ./internal/predicates                  # Scan one directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --module github.com/myorg/myapp ./...  # Specify custom module name\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --config .attest.yaml                  # Load directories and options from a file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --clean ./...                          # Delete all attest_bindings.go files\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	reporter := cli.NewDiagnosticReporter(*verboseFlag)

	cfg := &cli.Config{}
	if *configFlag != "" {
		loaded, err := cli.LoadConfigFile(*configFlag)
		if err != nil {
			reporter.ReportError(err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags override the config file.
	if args := flag.Args(); len(args) > 0 {
		cfg.Directories = args
	}
	if *moduleFlag != "" {
		cfg.ModuleName = *moduleFlag
	}
	if *targetFlag != "" {
		cfg.Target = *targetFlag
	}
	if *verboseFlag {
		cfg.Verbose = true
	}
	cfg.ApplyDefaults()

	if len(flag.Args()) == 0 && *configFlag == "" {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	diagnostics.Section("Attest Binding Generator")

	if *cleanFlag {
		diagnostics.Progress("Cleaning generated files")

		cleaner := cli.NewCleaner()
		removed, err := cleaner.CleanGeneratedFiles(cfg.Directories)
		if err != nil {
			reporter.ReportError(err)
			os.Exit(1)
		}

		diagnostics.Success("Removed %d generated files", len(removed))
		return
	}

	if cfg.Verbose {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(cfg.Directories, ", "))
		if cfg.ModuleName != "" {
			diagnostics.List("Custom module: %s", cfg.ModuleName)
		}
		diagnostics.List("Registration target: %s", cfg.Target)
	}

	diagnostics.Subsection("Binding Generation")
	diagnostics.Progress("Processing directories")

	generator := cli.NewGeneratorWithDiagnostics(cfg, diagnostics)
	if err := generator.Generate(); err != nil {
		reporter.ReportError(err)
		os.Exit(1)
	}

	summary := generator.Summary()
	diagnostics.Summary("Generation Complete!", map[string]interface{}{
		"Packages processed": summary.PackagesProcessed,
		"Methods bound":      summary.BindingsFound,
		"Files generated":    len(summary.GeneratedFiles),
	})

	if cfg.Verbose && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}
}
