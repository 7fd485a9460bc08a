package emit

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path"

	"github.com/CliForge/oascaffold/pkg/extract"
)

const (
	cobraImport = "github.com/spf13/cobra"
	// variants is the ordered operation set every command group declares.
	variants = "Variants"
)

// Emitter builds the units of the generated command layer.
type Emitter struct {
	// ModulePath is the import path of the generated project.
	ModulePath string
	// Dir is the slash-separated directory, relative to the project root,
	// that holds the aggregator. Command groups live in one subdirectory
	// per API.
	Dir string
	// Generator names the tool in the "Code generated" header.
	Generator string
}

// New returns an Emitter with the default layout.
func New(modulePath string) Emitter {
	return Emitter{ModulePath: modulePath, Dir: "internal/cli", Generator: "oascaffold"}
}

func (e Emitter) header() string {
	return fmt.Sprintf("Code generated by %s. DO NOT EDIT.", e.Generator)
}

// GroupPath returns the project-relative path of the command group of m.
func (e Emitter) GroupPath(m extract.APIModule) string {
	return path.Join(e.Dir, m.Package, m.Package+".go")
}

// RootPath returns the project-relative path of the aggregator.
func (e Emitter) RootPath() string {
	return path.Join(e.Dir, "commands.go")
}

// CommandGroup builds the command group of one API: a sealed interface
// implemented by one stub type per operation, and the ordered Variants
// slice. Every stub returns a "not implemented" error. A module without
// operations yields an empty Variants slice.
func (e Emitter) CommandGroup(m extract.APIModule) *Unit {
	fset := token.NewFileSet()
	u := &Unit{
		Path:   e.GroupPath(m),
		Header: e.header(),
		Fset:   fset,
		Docs:   make(map[string]string),
	}
	// the Variants braces, then one element and five stub lines per operation
	l := newLines(fset, u.Path, 2+6*len(m.Operations))
	marker := "is" + m.EnumName

	imports := []string{cobraImport}
	if len(m.Operations) > 0 {
		imports = []string{"errors", cobraImport}
	}

	file := &ast.File{Name: ident(m.Package)}
	file.Decls = append(file.Decls, importDecl(imports...))

	file.Decls = append(file.Decls, typeDecl(m.EnumName, &ast.InterfaceType{Methods: fields(
		field("Name", &ast.FuncType{Params: fields(), Results: fields(field("", ident("string")))}),
		field("Exec", execType()),
		field(marker, &ast.FuncType{Params: fields()}),
	)}))
	u.Docs[m.EnumName] = fmt.Sprintf("%s is implemented by every %s subcommand.", m.EnumName, m.Command)

	elts := make([]ast.Expr, 0, len(m.Operations))
	for _, op := range m.Operations {
		elts = append(elts, &ast.CompositeLit{Type: ident(op.Pascal)})
	}
	file.Decls = append(file.Decls, varDecl(variants, list(l, &ast.ArrayType{Elt: ident(m.EnumName)}, elts)))
	u.Docs[variants] = fmt.Sprintf("%s lists the %s subcommands in declaration order.", variants, m.Command)

	for _, op := range m.Operations {
		usage := m.Command + " " + op.Command
		file.Decls = append(file.Decls,
			typeDecl(op.Pascal, emptyStruct(l)),
			method(l, false, op.Pascal, marker, &ast.FuncType{Params: fields()}),
			method(l, false, op.Pascal, "Name", &ast.FuncType{Params: fields(), Results: fields(field("", ident("string")))},
				&ast.ReturnStmt{Results: []ast.Expr{str(op.Command)}}),
			method(l, true, op.Pascal, "Exec", execType(),
				&ast.ReturnStmt{Results: []ast.Expr{call(sel("errors", "New"), str(usage+": not implemented"))}}),
		)
		u.Docs[op.Pascal] = fmt.Sprintf("%s is the %q subcommand, bound to %s.", op.Pascal, usage, op.Ident)
		u.Docs[op.Pascal+".Name"] = "Name returns the subcommand name."
		u.Docs[op.Pascal+".Exec"] = fmt.Sprintf("Exec runs %q.", usage)
	}

	u.File = file
	return u
}

// rootSource holds the declarations of the aggregator that do not depend
// on the discovered APIs.
const rootSource = `package cli

type CliCommand interface {
	Name() string
	Exec(cmd *cobra.Command, args []string) error
}

type Group struct {
	Name     string
	Commands []CliCommand
}

func NewGroup[T CliCommand](name string, variants []T) Group {
	g := Group{Name: name, Commands: make([]CliCommand, 0, len(variants))}
	for _, v := range variants {
		g.Commands = append(g.Commands, v)
	}
	return g
}

func NewRootCommand(use string) *cobra.Command {
	root := &cobra.Command{
		Use:           use,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	for _, group := range Commands {
		groupCmd := &cobra.Command{Use: group.Name}
		for _, c := range group.Commands {
			groupCmd.AddCommand(&cobra.Command{
				Use:  c.Name(),
				RunE: c.Exec,
			})
		}
		root.AddCommand(groupCmd)
	}
	return root
}
`

var rootDocs = map[string]string{
	"CliCommand":     "CliCommand is implemented by every generated subcommand.",
	"Group":          "Group is one API and its subcommands.",
	"NewGroup":       "NewGroup wraps the subcommand set of one API.",
	"Commands":       "Commands lists every API in discovery order.",
	"NewRootCommand": "NewRootCommand builds the \"<use> <api> <operation>\" command tree.",
}

// CommandRoot builds the aggregator: the CliCommand dispatch interface and
// the Commands slice wrapping the Variants of every module, in order.
func (e Emitter) CommandRoot(modules []extract.APIModule) *Unit {
	fset := token.NewFileSet()
	u := &Unit{
		Path:   e.RootPath(),
		Header: e.header(),
		Fset:   fset,
		Docs:   make(map[string]string, len(rootDocs)),
	}
	for k, v := range rootDocs {
		u.Docs[k] = v
	}

	static, err := parser.ParseFile(fset, u.Path, rootSource, parser.SkipObjectResolution)
	if err != nil {
		panic(fmt.Sprintf("emit: invalid aggregator source: %v", err))
	}
	l := newLines(fset, u.Path+"#commands", 2+len(modules))

	imports := []string{cobraImport}
	groups := make([]ast.Expr, 0, len(modules))
	for _, m := range modules {
		imports = append(imports, path.Join(e.ModulePath, e.Dir, m.Package))
		groups = append(groups, call(ident("NewGroup"), str(m.Command), sel(m.Package, variants)))
	}

	file := &ast.File{Name: ident("cli")}
	file.Decls = append(file.Decls, importDecl(imports...))
	file.Decls = append(file.Decls, static.Decls[:2]...)
	file.Decls = append(file.Decls, varDecl("Commands", list(l, &ast.ArrayType{Elt: ident("Group")}, groups)))
	file.Decls = append(file.Decls, static.Decls[2:]...)

	u.File = file
	return u
}

// Main builds the project's main function running the command tree as name.
func (e Emitter) Main(name string) *Unit {
	fset := token.NewFileSet()
	u := &Unit{
		Path: "main.go",
		Fset: fset,
		Docs: map[string]string{},
	}
	l := newLines(fset, u.Path, 2)

	execute := call(&ast.SelectorExpr{
		X:   call(sel("cli", "NewRootCommand"), str(name)),
		Sel: ident("Execute"),
	})
	typ := &ast.FuncType{Func: l.next(), Params: fields()}
	body := &ast.BlockStmt{Lbrace: typ.Func}
	body.List = []ast.Stmt{&ast.IfStmt{
		Init: &ast.AssignStmt{Lhs: []ast.Expr{ident("err")}, Tok: token.DEFINE, Rhs: []ast.Expr{execute}},
		Cond: &ast.BinaryExpr{X: ident("err"), Op: token.NEQ, Y: ident("nil")},
		Body: &ast.BlockStmt{List: []ast.Stmt{
			&ast.ExprStmt{X: call(sel("fmt", "Fprintln"), sel("os", "Stderr"), ident("err"))},
			&ast.ExprStmt{X: call(sel("os", "Exit"), &ast.BasicLit{Kind: token.INT, Value: "1"})},
		}},
	}}
	body.Rbrace = l.next()

	u.File = &ast.File{
		Name: ident("main"),
		Decls: []ast.Decl{
			importDecl("fmt", "os", path.Join(e.ModulePath, e.Dir)),
			&ast.FuncDecl{Name: ident("main"), Type: typ, Body: body},
		},
	}
	return u
}
