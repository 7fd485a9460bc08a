package writer

import (
	"go/ast"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/imports"

	"github.com/CliForge/oascaffold/pkg/emit"
	"github.com/CliForge/oascaffold/pkg/errors"
	"github.com/CliForge/oascaffold/pkg/extract"
)

func unit() *emit.Unit {
	return emit.New("example.com/petstore").CommandGroup(extract.APIModule{
		Ident:      "PetAPI",
		Pascal:     "Pet",
		EnumName:   "PetAPI",
		Package:    "pet",
		Command:    "pet",
		Operations: []extract.Operation{{Ident: "AddPet", Pascal: "AddPet", Command: "add-pet"}},
	})
}

func brokenUnit() *emit.Unit {
	return &emit.Unit{
		Path: "broken.go",
		Fset: token.NewFileSet(),
		File: &ast.File{
			Name: ast.NewIdent("broken"),
			Decls: []ast.Decl{&ast.GenDecl{
				Tok:   token.TYPE,
				Specs: []ast.Spec{&ast.TypeSpec{Name: ast.NewIdent("not valid"), Type: ast.NewIdent("int")}},
			}},
		},
	}
}

func TestRender(t *testing.T) {
	out, err := Render(unit())
	require.NoError(t, err)

	src := string(out)
	assert.Regexp(t, `^// Code generated by oascaffold\. DO NOT EDIT\.\n\npackage pet\n`, src)
	assert.Contains(t, src, "// AddPet is the \"pet add-pet\" subcommand, bound to AddPet.\ntype AddPet struct{}")
	assert.Contains(t, src, "// Exec runs \"pet add-pet\".\nfunc (AddPet) Exec(cmd *cobra.Command, args []string) error {")
}

func TestRenderIsCanonical(t *testing.T) {
	out, err := Render(unit())
	require.NoError(t, err)

	again, err := imports.Process("pet.go", out, &imports.Options{Comments: true, TabIndent: true, TabWidth: 8, FormatOnly: true})
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again))
}

func TestRenderRejectsMalformedTree(t *testing.T) {
	_, err := Render(brokenUnit())
	require.Error(t, err)
	assert.True(t, errors.IsFormat(err))
	assert.Contains(t, err.Error(), "broken.go")
}

func TestWrite(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "internal", "cli", "pet"), 0o755))
	w := Writer{Root: root}

	res, err := w.Write(unit())
	require.NoError(t, err)
	assert.Equal(t, StatusCreated, res.Status)
	assert.Equal(t, "internal/cli/pet/pet.go", res.Path)

	dest := filepath.Join(root, "internal", "cli", "pet", "pet.go")
	written, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Len(t, written, res.Bytes)

	res, err = w.Write(unit())
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, res.Status)

	require.NoError(t, os.WriteFile(dest, []byte("package pet\n"), 0o644))
	res, err = w.Write(unit())
	require.NoError(t, err)
	assert.Equal(t, StatusUpdated, res.Status)

	again, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, written, again)
}

func TestWriteDryRun(t *testing.T) {
	root := t.TempDir()
	w := Writer{Root: root, DryRun: true}

	res, err := w.Write(unit())
	require.NoError(t, err)
	assert.Equal(t, StatusCreated, res.Status)

	_, err = os.Stat(filepath.Join(root, "internal", "cli", "pet", "pet.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteErrors(t *testing.T) {
	t.Run("missing parent directory", func(t *testing.T) {
		_, err := Writer{Root: t.TempDir()}.Write(unit())
		assert.True(t, errors.IsIO(err))
	})

	t.Run("malformed tree writes nothing", func(t *testing.T) {
		root := t.TempDir()
		_, err := Writer{Root: root}.Write(brokenUnit())
		assert.True(t, errors.IsFormat(err))

		_, statErr := os.Stat(filepath.Join(root, "broken.go"))
		assert.True(t, os.IsNotExist(statErr))
	})
}
