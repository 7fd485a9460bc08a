package extract

import (
	"go/ast"
)

// DeclKind tags the variant of a top-level declaration.
type DeclKind int

const (
	// DeclType is a named type declaration.
	DeclType DeclKind = iota
	// DeclField is a named field of a top-level struct type.
	DeclField
	// DeclFunc is a function or method declaration.
	DeclFunc
)

func (k DeclKind) String() string {
	switch k {
	case DeclType:
		return "type"
	case DeclField:
		return "field"
	case DeclFunc:
		return "func"
	}
	return "unknown"
}

// Decl is one top-level declaration of a source unit.
type Decl struct {
	Kind DeclKind
	Name string
	// Parent is the enclosing struct type of a DeclField.
	Parent string
	// Receiver is the receiver base type name of a method, without the
	// pointer. Empty for plain functions.
	Receiver string
}

// Decls flattens the top-level declarations of file into tagged variants,
// in source order. Struct fields follow the type that declares them.
func Decls(file *ast.File) []Decl {
	var decls []Decl
	for _, d := range file.Decls {
		switch d := d.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				decls = append(decls, Decl{Kind: DeclType, Name: ts.Name.Name})
				st, ok := ts.Type.(*ast.StructType)
				if !ok || st.Fields == nil {
					continue
				}
				for _, field := range st.Fields.List {
					for _, name := range field.Names {
						decls = append(decls, Decl{Kind: DeclField, Name: name.Name, Parent: ts.Name.Name})
					}
				}
			}
		case *ast.FuncDecl:
			decls = append(decls, Decl{Kind: DeclFunc, Name: d.Name.Name, Receiver: receiverName(d)})
		}
	}
	return decls
}

func receiverName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	expr := fn.Recv.List[0].Type
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.ParenExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}
