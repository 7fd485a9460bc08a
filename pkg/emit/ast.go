package emit

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
)

// lineWidth is the byte width of one synthetic line.
const lineWidth = 64

// lines hands out positions on consecutive lines of a synthetic file. The
// printer only looks at line numbers to decide where composite literals
// and blocks break, so giving nodes increasing lines is enough to lay the
// output out one element per line.
type lines struct {
	file *token.File
	line int
}

// newLines allocates a synthetic file of n lines. Callers size n from the
// number of next calls their unit makes.
func newLines(fset *token.FileSet, name string, n int) *lines {
	f := fset.AddFile(name, -1, lineWidth*n)
	offsets := make([]int, n)
	for i := range offsets {
		offsets[i] = i * lineWidth
	}
	f.SetLines(offsets)
	return &lines{file: f}
}

func (l *lines) next() token.Pos {
	if l.line == l.file.LineCount() {
		panic(fmt.Sprintf("emit: %s needs more than %d synthetic lines", l.file.Name(), l.line))
	}
	l.line++
	return l.file.LineStart(l.line)
}

// place puts every node of n on the line starting at pos.
func place[N ast.Node](n N, pos token.Pos) N {
	ast.Inspect(n, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Ident:
			n.NamePos = pos
		case *ast.BasicLit:
			n.ValuePos = pos
		case *ast.CompositeLit:
			n.Lbrace, n.Rbrace = pos, pos
		case *ast.KeyValueExpr:
			n.Colon = pos
		case *ast.CallExpr:
			n.Lparen, n.Rparen = pos, pos
		}
		return true
	})
	return n
}

func ident(name string) *ast.Ident { return ast.NewIdent(name) }

func sel(x, name string) *ast.SelectorExpr {
	return &ast.SelectorExpr{X: ident(x), Sel: ident(name)}
}

func str(s string) *ast.BasicLit {
	return &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(s)}
}

func call(fn ast.Expr, args ...ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{Fun: fn, Args: args}
}

func field(name string, typ ast.Expr) *ast.Field {
	f := &ast.Field{Type: typ}
	if name != "" {
		f.Names = []*ast.Ident{ident(name)}
	}
	return f
}

func fields(list ...*ast.Field) *ast.FieldList {
	return &ast.FieldList{List: list}
}

// execType is func(cmd *cobra.Command, args []string) error.
func execType() *ast.FuncType {
	return &ast.FuncType{
		Params: fields(
			field("cmd", &ast.StarExpr{X: sel("cobra", "Command")}),
			field("args", &ast.ArrayType{Elt: ident("string")}),
		),
		Results: fields(field("", ident("error"))),
	}
}

func importDecl(paths ...string) *ast.GenDecl {
	d := &ast.GenDecl{Tok: token.IMPORT}
	for _, p := range paths {
		d.Specs = append(d.Specs, &ast.ImportSpec{Path: str(p)})
	}
	return d
}

func typeDecl(name string, typ ast.Expr) *ast.GenDecl {
	return &ast.GenDecl{
		Tok:   token.TYPE,
		Specs: []ast.Spec{&ast.TypeSpec{Name: ident(name), Type: typ}},
	}
}

func varDecl(name string, value ast.Expr) *ast.GenDecl {
	return &ast.GenDecl{
		Tok: token.VAR,
		Specs: []ast.Spec{&ast.ValueSpec{
			Names:  []*ast.Ident{ident(name)},
			Values: []ast.Expr{value},
		}},
	}
}

// method declares func (recv) name<typ> { body }. With spread set the body
// spans several lines, otherwise the whole declaration stays on one line.
func method(l *lines, spread bool, recv, name string, typ *ast.FuncType, body ...ast.Stmt) *ast.FuncDecl {
	typ.Func = l.next()
	block := &ast.BlockStmt{Lbrace: typ.Func, Rbrace: typ.Func, List: body}
	if spread {
		block.Rbrace = l.next()
	}
	return &ast.FuncDecl{
		Recv: fields(field("", ident(recv))),
		Name: ident(name),
		Type: typ,
		Body: block,
	}
}

// emptyStruct is struct{}.
func emptyStruct(l *lines) *ast.StructType {
	pos := l.next()
	return &ast.StructType{Struct: pos, Fields: &ast.FieldList{Opening: pos, Closing: pos}}
}

// list builds typ{elts...} with one element per line.
func list(l *lines, typ ast.Expr, elts []ast.Expr) *ast.CompositeLit {
	lit := &ast.CompositeLit{Type: typ, Lbrace: l.next()}
	for _, elt := range elts {
		lit.Elts = append(lit.Elts, place(elt, l.next()))
	}
	lit.Rbrace = l.next()
	if len(elts) == 0 {
		lit.Rbrace = lit.Lbrace
	}
	return lit
}
