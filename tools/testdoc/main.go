// Command testdoc generates markdown documentation from rebump's test
// functions and their Scenario/Expected doc comments.
//
//	go run ./tools/testdoc -integration -out docs/TESTS.md
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/rebump/internal/storage"
)

func main() {
	var (
		rootDir         string
		outputFile      string
		integrationOnly bool
	)

	flag.StringVar(&rootDir, "root", ".", "root directory to scan for test files")
	flag.StringVar(&outputFile, "out", "docs/TESTS.md", "output markdown file")
	flag.BoolVar(&integrationOnly, "integration", false, "only include tests built with the integration tag")
	flag.Parse()

	if err := run(rootDir, outputFile, integrationOnly); err != nil {
		fmt.Fprintf(os.Stderr, "testdoc: %v\n", err)
		os.Exit(1)
	}
}

func run(rootDir, outputFile string, integrationOnly bool) error {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return fmt.Errorf("resolve root directory: %w", err)
	}

	packages, err := ParseTestFiles(absRoot, integrationOnly)
	if err != nil {
		return fmt.Errorf("parse test files: %w", err)
	}

	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, packages); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	if err := storage.WriteFileAtomic(outputFile, buf.Bytes(), 0o644); err != nil {
		return err
	}

	fmt.Printf("Generated %s with %d packages\n", outputFile, len(packages))
	return nil
}
