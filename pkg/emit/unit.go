// Package emit builds the syntax trees of the generated command layer: one
// command group per API, the aggregator that wires them into a command
// tree, and the project's main function.
package emit

import (
	"go/ast"
	"go/token"
)

// Unit is one generated source file, ready to be handed to the writer.
type Unit struct {
	// Path is slash-separated and relative to the project root.
	Path string
	// Header is emitted as a line comment above the package clause.
	Header string
	Fset   *token.FileSet
	File   *ast.File
	// Docs maps a declaration name, as returned by DeclName, to its doc
	// comment text.
	Docs map[string]string
}

// DeclName names a top-level declaration: "T" for a type, variable or
// function, "T.M" for a method, "" for imports.
func DeclName(decl ast.Decl) string {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Recv != nil && len(d.Recv.List) > 0 {
			if recv := typeName(d.Recv.List[0].Type); recv != "" {
				return recv + "." + d.Name.Name
			}
		}
		return d.Name.Name
	case *ast.GenDecl:
		if d.Tok == token.IMPORT || len(d.Specs) == 0 {
			return ""
		}
		switch s := d.Specs[0].(type) {
		case *ast.TypeSpec:
			return s.Name.Name
		case *ast.ValueSpec:
			return s.Names[0].Name
		}
	}
	return ""
}

func typeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return typeName(t.X)
	}
	return ""
}
