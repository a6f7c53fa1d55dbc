package main

import (
	"go/ast"
	"go/build/constraint"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// TestFunc is one test function and its doc comment.
type TestFunc struct {
	Name    string // e.g. "TestRun_DryRunChangesNothing"
	Doc     string
	Line    int
	IsTable bool // loops over cases calling t.Run
}

// TestFile is one *_test.go file.
type TestFile struct {
	Name        string // e.g. "run_integration_test.go"
	Path        string
	Integration bool // guarded by the integration build tag
	Tests       []TestFunc
}

// TestPackage is the test files of one directory.
type TestPackage struct {
	Name       string // directory relative to root
	Files      []TestFile
	TotalTests int
}

// ParseTestFiles collects the test functions under root, skipping the
// directories the go tool ignores. With integrationOnly, only files built
// with the integration tag are included.
func ParseTestFiles(root string, integrationOnly bool) ([]TestPackage, error) {
	byDir := make(map[string]*TestPackage)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "vendor" || name == "testdata" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}

		tf, err := parseTestFile(path)
		if err != nil {
			return err
		}
		if len(tf.Tests) == 0 || (integrationOnly && !tf.Integration) {
			return nil
		}

		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil || rel == "." {
			rel = filepath.Base(root)
		}
		pkg, ok := byDir[rel]
		if !ok {
			pkg = &TestPackage{Name: rel}
			byDir[rel] = pkg
		}
		pkg.Files = append(pkg.Files, *tf)
		pkg.TotalTests += len(tf.Tests)
		return nil
	})
	if err != nil {
		return nil, err
	}

	packages := make([]TestPackage, 0, len(byDir))
	for _, pkg := range byDir {
		slices.SortFunc(pkg.Files, func(a, b TestFile) int { return strings.Compare(a.Name, b.Name) })
		packages = append(packages, *pkg)
	}
	slices.SortFunc(packages, func(a, b TestPackage) int { return strings.Compare(a.Name, b.Name) })
	return packages, nil
}

// parseTestFile extracts the Test functions of one file.
func parseTestFile(path string) (*TestFile, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	tf := &TestFile{
		Name:        filepath.Base(path),
		Path:        path,
		Integration: hasBuildTag(file, "integration"),
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !strings.HasPrefix(fn.Name.Name, "Test") || !isTestFunction(fn) {
			continue
		}

		test := TestFunc{
			Name:    fn.Name.Name,
			Line:    fset.Position(fn.Pos()).Line,
			IsTable: detectTableDriven(fn),
		}
		if fn.Doc != nil {
			test.Doc = strings.TrimSpace(fn.Doc.Text())
		}
		tf.Tests = append(tf.Tests, test)
	}

	return tf, nil
}

// hasBuildTag reports whether the file's //go:build line mentions tag.
func hasBuildTag(file *ast.File, tag string) bool {
	for _, group := range file.Comments {
		if group.Pos() >= file.Package {
			break
		}
		for _, c := range group.List {
			if !constraint.IsGoBuild(c.Text) {
				continue
			}
			expr, err := constraint.Parse(c.Text)
			if err != nil {
				continue
			}
			if expr.Eval(func(t string) bool { return t == tag }) {
				return true
			}
		}
	}
	return false
}

// isTestFunction checks if the function signature matches a test function.
func isTestFunction(fn *ast.FuncDecl) bool {
	if fn.Type.Params == nil || len(fn.Type.Params.List) != 1 {
		return false
	}

	param := fn.Type.Params.List[0]
	starExpr, ok := param.Type.(*ast.StarExpr)
	if !ok {
		return false
	}

	selExpr, ok := starExpr.X.(*ast.SelectorExpr)
	if !ok {
		return false
	}

	ident, ok := selExpr.X.(*ast.Ident)
	if !ok {
		return false
	}

	return ident.Name == "testing" && (selExpr.Sel.Name == "T" || selExpr.Sel.Name == "B")
}

// detectTableDriven attempts to detect if a test is table-driven.
func detectTableDriven(fn *ast.FuncDecl) bool {
	if fn.Body == nil {
		return false
	}

	isTable := false
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		// Look for range statements
		rangeStmt, ok := n.(*ast.RangeStmt)
		if !ok {
			return true
		}

		// Check if body contains t.Run
		ast.Inspect(rangeStmt.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			if sel.Sel.Name == "Run" {
				isTable = true
				return false
			}
			return true
		})

		return !isTable
	})

	return isTable
}
