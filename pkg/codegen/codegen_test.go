package codegen

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CliForge/oascaffold/pkg/errors"
	"github.com/CliForge/oascaffold/pkg/extract"
	"github.com/CliForge/oascaffold/pkg/writer"
)

func petstoreConfig(t *testing.T) Config {
	t.Helper()
	bindings, err := filepath.Abs(filepath.Join("..", "extract", "testdata", "petstore"))
	require.NoError(t, err)

	cfg := DefaultConfig(t.TempDir())
	cfg.ModulePath = "example.com/petstore"
	cfg.Layout.Dir = bindings
	return cfg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testLogger(buf *bytes.Buffer) *pterm.Logger {
	return pterm.DefaultLogger.WithLevel(pterm.LogLevelTrace).WithWriter(buf).WithFormatter(pterm.LogFormatterJSON)
}

func TestGeneratePetstore(t *testing.T) {
	cfg := petstoreConfig(t)
	var logs bytes.Buffer

	report, err := New(cfg, testLogger(&logs)).Generate()
	require.NoError(t, err)

	require.Len(t, report.Modules, 3)
	assert.Equal(t, 5, report.Operations())

	// one file per API plus the aggregator, aggregator last
	var paths []string
	for _, f := range report.Files {
		paths = append(paths, f.Path)
		assert.Equal(t, writer.StatusCreated, f.Status)
	}
	assert.Equal(t, []string{
		"internal/cli/pet/pet.go",
		"internal/cli/store/store.go",
		"internal/cli/user/user.go",
		"internal/cli/commands.go",
	}, paths)

	for _, p := range paths {
		src, err := os.ReadFile(filepath.Join(cfg.Root, p))
		require.NoError(t, err)
		_, err = parser.ParseFile(token.NewFileSet(), p, src, parser.AllErrors)
		assert.NoError(t, err, p)
	}

	assert.Contains(t, logs.String(), "internal/cli/commands.go")
}

func TestGenerateIsIdempotent(t *testing.T) {
	cfg := petstoreConfig(t)
	cfg.MainName = "petstore"

	_, err := New(cfg, nil).Generate()
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(cfg.Root, "internal", "cli", "commands.go"))
	require.NoError(t, err)

	report, err := New(cfg, nil).Generate()
	require.NoError(t, err)
	for _, f := range report.Files {
		assert.Equal(t, writer.StatusUnchanged, f.Status, f.Path)
	}

	second, err := os.ReadFile(filepath.Join(cfg.Root, "internal", "cli", "commands.go"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateSnakeCaseBindings(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/snake\n\ngo 1.24\n")
	writeFile(t, filepath.Join(root, "openapi", "client.go"),
		"package openapi\n\ntype Client struct {\n\tpet_api int\n\tstore_api int\n}\n")
	writeFile(t, filepath.Join(root, "openapi", "pet_api.go"),
		"package openapi\n\nfunc add_pet() {}\n\nfunc get_pet() {}\n")
	writeFile(t, filepath.Join(root, "openapi", "store_api.go"),
		"package openapi\n\nfunc place_order() {}\n")

	cfg := DefaultConfig(root)
	cfg.Layout = extract.Layout{
		Dir:         "openapi",
		ClientFile:  "client.go",
		ClientType:  "Client",
		Suffix:      "_api",
		UnitPattern: "{ident}.go",
	}

	report, err := New(cfg, nil).Generate()
	require.NoError(t, err)
	require.Len(t, report.Files, 3)

	pet, err := os.ReadFile(filepath.Join(root, "internal", "cli", "pet", "pet.go"))
	require.NoError(t, err)
	assert.Regexp(t, `(?s)var Variants = \[\]PetAPI\{\s*AddPet\{\},\s*GetPet\{\},?\s*\}`, string(pet))

	_, err = os.Stat(filepath.Join(root, "internal", "cli", "store", "store.go"))
	assert.NoError(t, err)

	commands, err := os.ReadFile(filepath.Join(root, "internal", "cli", "commands.go"))
	require.NoError(t, err)
	assert.Regexp(t, `(?s)NewGroup\("pet", pet\.Variants\),\s*NewGroup\("store", store\.Variants\)`, string(commands))
	assert.Contains(t, string(commands), `"example.com/snake/internal/cli/pet"`)
}

func TestGenerateStopsAtFirstFailure(t *testing.T) {
	cfg := petstoreConfig(t)
	// a file where the store command group directory should be
	writeFile(t, filepath.Join(cfg.Root, "internal", "cli", "store"), "")

	report, err := New(cfg, nil).Generate()
	require.Error(t, err)
	assert.True(t, errors.IsIO(err))

	require.Len(t, report.Files, 1)
	assert.Equal(t, "internal/cli/pet/pet.go", report.Files[0].Path)
	_, err = os.Stat(filepath.Join(cfg.Root, "internal", "cli", "commands.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateDryRun(t *testing.T) {
	cfg := petstoreConfig(t)
	cfg.DryRun = true

	report, err := New(cfg, nil).Generate()
	require.NoError(t, err)
	assert.Len(t, report.Files, 4)

	_, err = os.Stat(filepath.Join(cfg.Root, "internal"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateErrors(t *testing.T) {
	t.Run("missing bindings", func(t *testing.T) {
		cfg := DefaultConfig(t.TempDir())
		cfg.ModulePath = "example.com/x"

		_, err := New(cfg, nil).Generate()
		assert.True(t, errors.IsIO(err))
	})

	t.Run("missing go.mod", func(t *testing.T) {
		_, err := New(DefaultConfig(t.TempDir()), nil).Generate()
		require.Error(t, err)
		assert.True(t, errors.IsIO(err))
		assert.NotEmpty(t, errors.GetAllHints(err))
	})

	t.Run("bad filter", func(t *testing.T) {
		cfg := petstoreConfig(t)
		cfg.Filter = "command +"

		_, err := New(cfg, nil).Generate()
		assert.Error(t, err)
	})
}

func TestModulePathFromGoMod(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module github.com/acme/petstore-cli\n\ngo 1.24\n")

	mod, err := New(DefaultConfig(root), nil).ModulePath()
	require.NoError(t, err)
	assert.Equal(t, "github.com/acme/petstore-cli", mod)
}
