package builtin

import (
	"fmt"

	"github.com/Marohn-Group/mrfmsim-yaml/model"
)

// Modifier is a declarative transformation applied to an experiment. It is a
// factory product: the symbol registry stamps it with the factory path and
// keyword arguments so the codec can represent it back as a parameterized
// import.
type Modifier struct {
	model.Provenance
	name string
}

// FuncName returns the modifier's display name.
func (m *Modifier) FuncName() string { return m.name }

// LoopInput declares that a parameter is looped over a sequence of values.
// Required argument: "parameter".
func LoopInput(args *model.Attrs) (any, error) {
	param, ok := args.Get("parameter")
	if !ok {
		return nil, fmt.Errorf("builtin: loop_input requires a %q argument", "parameter")
	}
	name, ok := param.(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("builtin: loop_input parameter must be a non-empty string")
	}
	return &Modifier{name: "loop_input"}, nil
}

// PrintOutput declares that an output value is printed with a format.
// Required argument: "output"; optional: "format".
func PrintOutput(args *model.Attrs) (any, error) {
	output, ok := args.Get("output")
	if !ok {
		return nil, fmt.Errorf("builtin: print_output requires an %q argument", "output")
	}
	if name, isStr := output.(string); !isStr || name == "" {
		return nil, fmt.Errorf("builtin: print_output output must be a non-empty string")
	}
	if format, hasFormat := args.Get("format"); hasFormat {
		if _, isStr := format.(string); !isStr {
			return nil, fmt.Errorf("builtin: print_output format must be a string")
		}
	}
	return &Modifier{name: "print_output"}, nil
}
