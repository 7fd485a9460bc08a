package extract

import (
	"path/filepath"
	"strings"

	"github.com/CliForge/oascaffold/pkg/naming"
)

// Layout describes where and how the binding generator laid out its output.
// The defaults match openapi-generator's "go" generator.
type Layout struct {
	// Dir is the directory holding the generated bindings.
	Dir string
	// ClientFile is the aggregator unit that declares every API.
	ClientFile string
	// ClientType is the struct type in ClientFile whose fields are the APIs.
	ClientType string
	// Suffix marks a field as an API module.
	Suffix string
	// ServiceSuffix is appended to a module identifier to get the receiver
	// type of its operations. Empty selects plain functions.
	ServiceSuffix string
	// UnitPattern names the per-module unit. {base} expands to the snake
	// case base name, {ident} to the raw module identifier.
	UnitPattern string
	// SkipSuffixes excludes helper functions: a name ending with one of them
	// is skipped when the name without it is declared too, so AddPetExecute
	// goes while BulkExecute stays.
	SkipSuffixes []string
}

// DefaultLayout returns the openapi-generator "go" layout rooted at dir.
func DefaultLayout(dir string) Layout {
	return Layout{
		Dir:           dir,
		ClientFile:    "client.go",
		ClientType:    "APIClient",
		Suffix:        "API",
		ServiceSuffix: "Service",
		UnitPattern:   "api_{base}.go",
		SkipSuffixes:  []string{"Execute"},
	}
}

// ClientPath returns the path of the aggregator unit.
func (l Layout) ClientPath() string {
	return filepath.Join(l.Dir, l.ClientFile)
}

// UnitPath returns the path of the unit declaring the operations of the
// module ident with base name base.
func (l Layout) UnitPath(ident, base string) string {
	name := strings.NewReplacer("{base}", naming.Snake(base), "{ident}", ident).Replace(l.UnitPattern)
	return filepath.Join(l.Dir, name)
}

// skipped reports whether name is the helper of another function in
// declared.
func (l Layout) skipped(name string, declared map[string]bool) bool {
	for _, s := range l.SkipSuffixes {
		if s != "" && naming.HasSuffix(name, s) && declared[strings.TrimSuffix(name, s)] {
			return true
		}
	}
	return false
}
