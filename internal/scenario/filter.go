package scenario

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
)

// Filter returns the devices for which expression is true. The expression
// sees the fields name, width, height and gridUnit, for example
// `gridUnit >= 18 && width < height`. An empty expression keeps every
// device.
func Filter(devices []Device, expression string) ([]Device, error) {
	if strings.TrimSpace(expression) == "" {
		return devices, nil
	}

	program, err := expr.Compile(expression, expr.Env(Device{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid device filter %q: %w", expression, err)
	}

	var out []Device
	for _, d := range devices {
		result, err := expr.Run(program, d)
		if err != nil {
			return nil, fmt.Errorf("device filter failed on %q: %w", d.Name, err)
		}
		if result.(bool) {
			out = append(out, d)
		}
	}
	return out, nil
}
