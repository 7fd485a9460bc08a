package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CliForge/oascaffold/pkg/errors"
)

func writeUnits(t *testing.T, units map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range units {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
	}
	return dir
}

// snakeLayout reads bindings that name modules pet_api and declare plain
// functions in <ident>.go.
func snakeLayout(dir string) Layout {
	return Layout{
		Dir:         dir,
		ClientFile:  "client.go",
		ClientType:  "Client",
		Suffix:      "_api",
		UnitPattern: "{ident}.go",
	}
}

func TestExtractPetstore(t *testing.T) {
	modules, err := Extract(DefaultLayout("testdata/petstore"), nil)
	require.NoError(t, err)
	require.Len(t, modules, 3)

	pet := modules[0]
	assert.Equal(t, "PetAPI", pet.Ident)
	assert.Equal(t, "Pet", pet.Base)
	assert.Equal(t, "PetAPI", pet.EnumName)
	assert.Equal(t, "pet", pet.Package)
	assert.Equal(t, filepath.Join("testdata", "petstore", "api_pet.go"), pet.Source)
	assert.Equal(t, []Operation{
		{Ident: "AddPet", Pascal: "AddPet", Command: "add-pet"},
		{Ident: "GetPetById", Pascal: "GetPetById", Command: "get-pet-by-id"},
		{Ident: "FindPetsByStatus", Pascal: "FindPetsByStatus", Command: "find-pets-by-status"},
	}, pet.Operations)

	assert.Equal(t, "StoreAPI", modules[1].Ident)
	require.Len(t, modules[1].Operations, 2)
	assert.Equal(t, "GetInventory", modules[1].Operations[0].Pascal)
	assert.Equal(t, "DeleteOrder", modules[1].Operations[1].Pascal)

	assert.Equal(t, "UserAPI", modules[2].Ident)
	assert.Empty(t, modules[2].Operations)
}

func TestExtractSnakeCaseBindings(t *testing.T) {
	dir := writeUnits(t, map[string]string{
		"client.go": "package openapi\n\ntype Client struct {\n\tpet_api int\n}\n",
		"pet_api.go": "package openapi\n\nfunc add_pet() {}\n\nfunc get_pet() {}\n",
	})

	modules, err := Extract(snakeLayout(dir), nil)
	require.NoError(t, err)
	require.Len(t, modules, 1)

	m := modules[0]
	assert.Equal(t, "pet_api", m.Ident)
	assert.Equal(t, "pet", m.Base)
	assert.Equal(t, "PetAPI", m.EnumName)
	require.Len(t, m.Operations, 2)
	assert.Equal(t, "AddPet", m.Operations[0].Pascal)
	assert.Equal(t, "add-pet", m.Operations[0].Command)
	assert.Equal(t, "GetPet", m.Operations[1].Pascal)
}

func TestParseModules(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "non suffixed fields are ignored",
			src:  "package x\n\ntype APIClient struct {\n\tcfg *int\n\tmodels int\n\tPetAPI int\n}\n",
			want: []string{"PetAPI"},
		},
		{
			name: "bare suffix is not a module",
			src:  "package x\n\ntype APIClient struct {\n\tAPI int\n\tStoreAPI int\n}\n",
			want: []string{"StoreAPI"},
		},
		{
			name: "fields of other structs are ignored",
			src:  "package x\n\ntype Other struct {\n\tPetAPI int\n}\n\ntype APIClient struct {\n\tUserAPI int\n}\n",
			want: []string{"UserAPI"},
		},
		{
			name: "declaration order is kept",
			src:  "package x\n\ntype APIClient struct {\n\tZooAPI, AnimalAPI int\n\tBirdAPI int\n}\n",
			want: []string{"ZooAPI", "AnimalAPI", "BirdAPI"},
		},
		{
			name: "no modules",
			src:  "package x\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modules, err := ParseModules("client.go", []byte(tt.src), DefaultLayout("."))
			require.NoError(t, err)

			var got []string
			for _, m := range modules {
				got = append(got, m.Ident)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseModulesDuplicates(t *testing.T) {
	src := "package x\n\ntype APIClient struct {\n\tDefaultAPI int\n\tDefault_API int\n}\n"

	_, err := ParseModules("client.go", []byte(src), DefaultLayout("."))
	assert.True(t, errors.Is(err, errors.ErrDuplicate))
}

func TestParseOperations(t *testing.T) {
	module := APIModule{Ident: "PetAPI", EnumName: "PetAPI"}

	t.Run("only service methods", func(t *testing.T) {
		src := `package x

func helper() {}

func (a *PetAPIService) AddPet() {}

func (a *PetAPIService) AddPetExecute() {}

func (r ApiAddPetRequest) Execute() {}

func (a *StoreAPIService) GetInventory() {}

func (a PetAPIService) UpdatePet() {}
`
		ops, err := ParseOperations("api_pet.go", []byte(src), module, DefaultLayout("."))
		require.NoError(t, err)
		require.Len(t, ops, 2)
		assert.Equal(t, "AddPet", ops[0].Ident)
		assert.Equal(t, "UpdatePet", ops[1].Ident)
	})

	t.Run("operations ending with the skip suffix", func(t *testing.T) {
		src := `package x

func (a *PetAPIService) BulkExecute() {}

func (a *PetAPIService) BulkExecuteExecute() {}

func (a *PetAPIService) Execute() {}

func (a *PetAPIService) ReExecute() {}
`
		ops, err := ParseOperations("api_pet.go", []byte(src), module, DefaultLayout("."))
		require.NoError(t, err)
		var got []string
		for _, op := range ops {
			got = append(got, op.Ident)
		}
		assert.Equal(t, []string{"BulkExecute", "Execute", "ReExecute"}, got)
	})

	t.Run("zero functions", func(t *testing.T) {
		ops, err := ParseOperations("api_pet.go", []byte("package x\n"), module, DefaultLayout("."))
		require.NoError(t, err)
		assert.Empty(t, ops)
	})

	t.Run("colliding pascal names", func(t *testing.T) {
		src := "package x\n\nfunc add_pet() {}\n\nfunc addPet() {}\n"
		_, err := ParseOperations("pet_api.go", []byte(src), APIModule{Ident: "pet_api", EnumName: "PetAPI"}, snakeLayout("."))
		assert.True(t, errors.Is(err, errors.ErrDuplicate))
	})

	t.Run("collision with generated names", func(t *testing.T) {
		src := "package x\n\nfunc (s *PetAPIService) Variants() {}\n"
		_, err := ParseOperations("api_pet.go", []byte(src), module, DefaultLayout("."))
		assert.True(t, errors.Is(err, errors.ErrDuplicate))
	})
}

func TestExtractErrors(t *testing.T) {
	t.Run("missing aggregator", func(t *testing.T) {
		_, err := Extract(DefaultLayout(t.TempDir()), nil)
		assert.True(t, errors.IsIO(err))
	})

	t.Run("missing module unit", func(t *testing.T) {
		dir := writeUnits(t, map[string]string{
			"client.go": "package x\n\ntype APIClient struct {\n\tPetAPI int\n}\n",
		})
		_, err := Extract(DefaultLayout(dir), nil)
		assert.True(t, errors.IsIO(err))
		assert.Contains(t, err.Error(), "api_pet.go")
	})

	t.Run("invalid aggregator", func(t *testing.T) {
		dir := writeUnits(t, map[string]string{
			"client.go": "package x\n\ntype APIClient struct {\n",
		})
		_, err := Extract(DefaultLayout(dir), nil)
		assert.True(t, errors.IsParse(err))
	})

	t.Run("invalid module unit", func(t *testing.T) {
		dir := writeUnits(t, map[string]string{
			"client.go":  "package x\n\ntype APIClient struct {\n\tPetAPI int\n}\n",
			"api_pet.go": "package x\n\nfunc (a *PetAPIService) AddPet( {\n",
		})
		_, err := Extract(DefaultLayout(dir), nil)
		assert.True(t, errors.IsParse(err))
	})
}

func TestDecls(t *testing.T) {
	src := `package x

type Client struct {
	A, B int
}

func (c *Client) Do() {}

func (l List[T]) Len() int { return 0 }

func Free() {}
`
	file, err := parse("x.go", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, []Decl{
		{Kind: DeclType, Name: "Client"},
		{Kind: DeclField, Name: "A", Parent: "Client"},
		{Kind: DeclField, Name: "B", Parent: "Client"},
		{Kind: DeclFunc, Name: "Do", Receiver: "Client"},
		{Kind: DeclFunc, Name: "Len", Receiver: "List"},
		{Kind: DeclFunc, Name: "Free"},
	}, Decls(file))
}
