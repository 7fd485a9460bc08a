// Package writer turns emitted syntax trees into canonical Go source and
// persists them.
package writer

import (
	"bytes"
	"fmt"
	"go/parser"
	"go/printer"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/CliForge/oascaffold/pkg/emit"
	"github.com/CliForge/oascaffold/pkg/errors"
)

// Status reports what Write did with a file.
type Status string

const (
	StatusCreated   Status = "created"
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
)

// Result describes one written unit.
type Result struct {
	Path   string `json:"path" yaml:"path"`
	Status Status `json:"status" yaml:"status"`
	Bytes  int    `json:"bytes" yaml:"bytes"`
}

var printConfig = printer.Config{Mode: printer.UseSpaces | printer.TabIndent, Tabwidth: 8}

// Render serializes u, checks that the text parses back and canonicalizes
// its formatting and import grouping. Any failure is an errors.ErrFormat:
// the tree itself was malformed.
func Render(u *emit.Unit) ([]byte, error) {
	var buf bytes.Buffer
	if u.Header != "" {
		writeComment(&buf, u.Header)
		buf.WriteByte('\n')
	}
	fmt.Fprintf(&buf, "package %s\n", u.File.Name.Name)

	for _, decl := range u.File.Decls {
		buf.WriteByte('\n')
		if doc := u.Docs[emit.DeclName(decl)]; doc != "" {
			writeComment(&buf, doc)
		}
		if err := printConfig.Fprint(&buf, u.Fset, decl); err != nil {
			return nil, errors.Format(err, u.Path)
		}
		buf.WriteByte('\n')
	}

	src := buf.Bytes()
	if _, err := parser.ParseFile(token.NewFileSet(), u.Path, src, parser.ParseComments); err != nil {
		return nil, errors.Format(err, u.Path)
	}

	out, err := imports.Process(u.Path, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, errors.Format(err, u.Path)
	}
	return out, nil
}

func writeComment(buf *bytes.Buffer, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if line == "" {
			buf.WriteString("//\n")
			continue
		}
		buf.WriteString("// ")
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}

// Writer renders units below Root.
type Writer struct {
	Root string
	// DryRun renders and compares without touching the filesystem.
	DryRun bool
}

// Write renders u and writes it to Root/u.Path in a single call. The parent
// directory must exist. Content identical to what is on disk is left alone.
func (w Writer) Write(u *emit.Unit) (Result, error) {
	out, err := Render(u)
	if err != nil {
		return Result{}, err
	}

	dest := filepath.Join(w.Root, filepath.FromSlash(u.Path))
	res := Result{Path: u.Path, Status: StatusCreated, Bytes: len(out)}

	existing, err := os.ReadFile(dest)
	switch {
	case err == nil && bytes.Equal(existing, out):
		res.Status = StatusUnchanged
		return res, nil
	case err == nil:
		res.Status = StatusUpdated
	case !os.IsNotExist(err):
		return Result{}, errors.IO(err, dest)
	}

	if w.DryRun {
		return res, nil
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		return Result{}, errors.IO(err, dest)
	}
	return res, nil
}
