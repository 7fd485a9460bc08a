// Package extract discovers API modules and their operations in the Go
// source produced by an OpenAPI binding generator.
//
// The aggregator unit (client.go by default) declares one field per API on
// the client struct; every field whose name ends with the suffix marker is
// an API module. Each module's unit then declares one method per operation
// on the module's service type.
package extract

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"

	"github.com/CliForge/oascaffold/pkg/errors"
	"github.com/CliForge/oascaffold/pkg/naming"
)

// APIModule is one API discovered in the aggregator unit.
type APIModule struct {
	// Ident is the raw identifier, suffix marker included.
	Ident string `json:"ident" yaml:"ident"`
	// Base is Ident with the marker stripped.
	Base string `json:"base" yaml:"base"`
	// Pascal is the PascalCase form of Base.
	Pascal string `json:"pascal" yaml:"pascal"`
	// EnumName names the generated subcommand set of this module.
	EnumName string `json:"enum" yaml:"enum"`
	// Package is the Go package the command group is emitted into.
	Package string `json:"package" yaml:"package"`
	// Command is the kebab-case group name on the command line.
	Command string `json:"command" yaml:"command"`
	// Source is the path of the unit declaring the operations.
	Source     string      `json:"source" yaml:"source"`
	Operations []Operation `json:"operations" yaml:"operations"`
}

// Operation is one API function of a module.
type Operation struct {
	Ident   string `json:"ident" yaml:"ident"`
	Pascal  string `json:"pascal" yaml:"pascal"`
	Command string `json:"command" yaml:"command"`
}

// variantsName is the identifier every command group declares for its
// ordered operation set.
const variantsName = "Variants"

// ParseModules parses the aggregator unit src and returns the API modules
// it declares, in declaration order. Operations are left empty.
func ParseModules(path string, src []byte, layout Layout) ([]APIModule, error) {
	file, err := parse(path, src)
	if err != nil {
		return nil, err
	}

	var (
		modules  []APIModule
		pascals  = make(map[string]string)
		packages = make(map[string]string)
	)
	for _, d := range Decls(file) {
		if d.Kind != DeclField || d.Parent != layout.ClientType {
			continue
		}
		base, err := naming.StripSuffix(d.Name, layout.Suffix)
		if err != nil {
			continue
		}
		m := APIModule{
			Ident:   d.Name,
			Base:    base,
			Pascal:  naming.Pascal(base),
			Package: naming.PackageName(base),
			Command: naming.Kebab(base),
			Source:  layout.UnitPath(d.Name, base),
		}
		m.EnumName = m.Pascal + "API"

		if prev, ok := pascals[m.Pascal]; ok {
			return nil, errors.Duplicatef("APIs %q and %q both map to %q", prev, m.Ident, m.Pascal)
		}
		if prev, ok := packages[m.Package]; ok {
			return nil, errors.Duplicatef("APIs %q and %q both map to package %q", prev, m.Ident, m.Package)
		}
		pascals[m.Pascal] = m.Ident
		packages[m.Package] = m.Ident
		modules = append(modules, m)
	}

	return modules, nil
}

// ParseOperations parses the unit src of module and returns its
// operations, in declaration order.
func ParseOperations(path string, src []byte, module APIModule, layout Layout) ([]Operation, error) {
	file, err := parse(path, src)
	if err != nil {
		return nil, err
	}

	receiver := ""
	if layout.ServiceSuffix != "" {
		receiver = module.Ident + layout.ServiceSuffix
	}

	var funcs []Decl
	declared := make(map[string]bool)
	for _, d := range Decls(file) {
		if d.Kind == DeclFunc && d.Receiver == receiver {
			funcs = append(funcs, d)
			declared[d.Name] = true
		}
	}

	seen := map[string]string{
		module.EnumName: module.EnumName,
		variantsName:    variantsName,
	}
	var ops []Operation
	for _, d := range funcs {
		if layout.skipped(d.Name, declared) {
			continue
		}
		op := Operation{
			Ident:   d.Name,
			Pascal:  naming.Pascal(d.Name),
			Command: naming.Kebab(d.Name),
		}
		if op.Pascal == "" {
			continue
		}
		if prev, ok := seen[op.Pascal]; ok {
			return nil, errors.Duplicatef("%s: operation %q collides with %q as %q", module.Ident, op.Ident, prev, op.Pascal)
		}
		seen[op.Pascal] = op.Ident
		ops = append(ops, op)
	}

	return ops, nil
}

// Extract reads the aggregator unit and every module unit below
// layout.Dir. Operations rejected by filter are dropped; a nil filter keeps
// everything.
func Extract(layout Layout, filter *Filter) ([]APIModule, error) {
	clientPath := layout.ClientPath()
	src, err := os.ReadFile(clientPath)
	if err != nil {
		return nil, errors.IO(err, clientPath)
	}

	modules, err := ParseModules(clientPath, src, layout)
	if err != nil {
		return nil, err
	}

	for i := range modules {
		m := &modules[i]
		src, err := os.ReadFile(m.Source)
		if err != nil {
			return nil, errors.WithHintf(errors.IO(err, m.Source),
				"%s declares %s but no unit was found for it", layout.ClientFile, m.Ident)
		}
		ops, err := ParseOperations(m.Source, src, *m, layout)
		if err != nil {
			return nil, err
		}
		if filter != nil {
			if ops, err = filter.Apply(*m, ops); err != nil {
				return nil, err
			}
		}
		m.Operations = ops
	}

	return modules, nil
}

func parse(path string, src []byte) (*ast.File, error) {
	file, err := parser.ParseFile(token.NewFileSet(), path, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, errors.Parse(err, path)
	}
	return file, nil
}
