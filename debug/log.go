package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/pbxproj/ir"
)

// Tree wraps a node so that %s prints it as indented JSON.  The
// encoder logs through this package, so it cannot be used here.
type Tree struct{ *ir.Node }

func (y Tree) String() string {
	d, err := y.Node.ToJSON("  ")
	if err != nil {
		return fmt.Sprintf("[raw *ir.Node] %v", y.Node)
	}
	return string(d)
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			args[i] = Tree{x}.String()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
