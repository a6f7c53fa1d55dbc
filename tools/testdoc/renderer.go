package main

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"
)

// CommandTests groups tests by command.
type CommandTests struct {
	Command string
	Tests   []TestFunc
}

// RenderMarkdown writes the test documentation as markdown.
func RenderMarkdown(w io.Writer, packages []TestPackage) error {
	// Header
	fmt.Fprintf(w, "# rebump Test Documentation\n\n")
	fmt.Fprintf(w, "Generated: %s\n\n", time.Now().Format("2006-01-02"))

	// Collect all tests and group by command
	commandMap := make(map[string][]TestFunc)

	for _, pkg := range packages {
		for _, file := range pkg.Files {
			for _, test := range file.Tests {
				cmd := extractCommand(test.Name)
				commandMap[cmd] = append(commandMap[cmd], test)
			}
		}
	}

	// Sort commands
	var commands []string
	for cmd := range commandMap {
		commands = append(commands, cmd)
	}
	sort.Strings(commands)

	// Summary
	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "| Command | Tests |\n")
	fmt.Fprintf(w, "|---------|-------|\n")

	totalTests := 0
	for _, cmd := range commands {
		tests := commandMap[cmd]
		fmt.Fprintf(w, "| [%s](#%s) | %d |\n", cmd, toAnchor(cmd), len(tests))
		totalTests += len(tests)
	}
	fmt.Fprintf(w, "| **Total** | **%d** |\n\n", totalTests)

	// Render each command section
	for _, cmd := range commands {
		tests := commandMap[cmd]
		renderCommandSection(w, cmd, tests)
	}

	return nil
}

func renderCommandSection(w io.Writer, cmd string, tests []TestFunc) {
	fmt.Fprintf(w, "## %s\n\n", cmd)
	fmt.Fprintf(w, "| Test | Description | Scenario | Expected |\n")
	fmt.Fprintf(w, "|------|-------------|----------|----------|\n")

	for _, test := range tests {
		doc := parseDoc(test.Doc, test.Name)
		name := "`" + test.Name + "`"
		if test.IsTable {
			name += " _(table)_"
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s |\n", name, cell(doc.Description), cell(doc.Scenario), cell(doc.Expected))
	}
	fmt.Fprintf(w, "\n")
}

// cell escapes pipes for a markdown table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// extractCommand extracts the command name from a test function name.
// Examples:
//   - TestRun_DryRunChangesNothing -> rebump run
//   - TestConfigShow_JSON -> rebump config
//   - TestBrokenConfig -> rebump config
func extractCommand(testName string) string {
	// Remove "Test" prefix
	name := strings.TrimPrefix(testName, "Test")

	// Find the command part (before first underscore)
	cmd, _, _ := strings.Cut(name, "_")

	// Map test prefixes to commands
	cmdMap := map[string]string{
		"Run":          "rebump run",
		"Files":        "rebump files",
		"Config":       "rebump config",
		"ConfigInit":   "rebump config",
		"ConfigShow":   "rebump config",
		"BrokenConfig": "rebump config",
		"Doctor":       "rebump doctor",
		"Completion":   "rebump completion",
	}

	if mapped, ok := cmdMap[cmd]; ok {
		return mapped
	}

	// Default: lowercase the command
	return strings.ToLower(cmd)
}

// testDoc is a test's doc comment split into its parts.
type testDoc struct {
	Description string
	Scenario    string
	Expected    string
}

// parseDoc splits a doc comment into the first line and its
// "Scenario:" and "Expected:" lines.
// It strips the test function name from the beginning of the description.
func parseDoc(doc string, testName string) testDoc {
	d := testDoc{Description: "_No documentation_"}
	first := true

	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "Scenario:"):
			d.Scenario = strings.TrimSpace(strings.TrimPrefix(line, "Scenario:"))
		case strings.HasPrefix(line, "Expected:"):
			d.Expected = strings.TrimSpace(strings.TrimPrefix(line, "Expected:"))
		case first:
			// "TestRun_Locked tests ..." -> "Tests ..."
			line = strings.TrimPrefix(line, testName+" ")
			d.Description = strings.ToUpper(line[:1]) + line[1:]
		}
		first = false
	}
	return d
}

var anchorRe = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// toAnchor converts a command name to a markdown anchor.
func toAnchor(cmd string) string {
	// Replace spaces with hyphens and lowercase
	anchor := strings.ReplaceAll(cmd, " ", "-")
	// Remove special characters
	anchor = anchorRe.ReplaceAllString(anchor, "")
	return strings.ToLower(anchor)
}
