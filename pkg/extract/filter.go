package extract

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/CliForge/oascaffold/pkg/errors"
)

// filterEnv is the environment an operation filter is evaluated against.
type filterEnv struct {
	API       string `expr:"api"`
	Module    string `expr:"module"`
	Operation string `expr:"operation"`
	Command   string `expr:"command"`
}

// Filter selects operations with a boolean expr expression such as
//
//	api != "store" && !(command startsWith "delete-")
type Filter struct {
	source  string
	program *vm.Program
}

// NewFilter compiles source. An empty source yields a nil filter that keeps
// every operation.
func NewFilter(source string) (*Filter, error) {
	if source == "" {
		return nil, nil
	}
	program, err := expr.Compile(source, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, errors.Wrapf(err, "compile operation filter %q", source)
	}
	return &Filter{source: source, program: program}, nil
}

// String returns the filter expression.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.source
}

// Apply returns the operations of module that satisfy the filter, keeping
// their order.
func (f *Filter) Apply(module APIModule, ops []Operation) ([]Operation, error) {
	if f == nil {
		return ops, nil
	}
	kept := make([]Operation, 0, len(ops))
	for _, op := range ops {
		out, err := expr.Run(f.program, filterEnv{
			API:       module.Command,
			Module:    module.Ident,
			Operation: op.Ident,
			Command:   op.Command,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "evaluate operation filter for %s.%s", module.Ident, op.Ident)
		}
		if keep, _ := out.(bool); keep {
			kept = append(kept, op)
		}
	}
	return kept, nil
}
