package report

import (
	"fmt"
	"io"
	"strings"

	"freemodels/pkg/types"
)

// FreeSuffix marks free-tier catalog identifiers.
const FreeSuffix = ":free"

// Match reports whether the model id ends with suffix.
func Match(m types.Model, suffix string) bool {
	return strings.HasSuffix(m.ID, suffix)
}

// Filter keeps the models whose id ends with suffix, preserving order.
func Filter(models []types.Model, suffix string) []types.Model {
	out := make([]types.Model, 0, len(models))
	for _, m := range models {
		if Match(m, suffix) {
			out = append(out, m)
		}
	}
	return out
}

// FormatLine renders one report line without the trailing newline. It fails
// only when the model's architecture is present but not an object.
func FormatLine(m types.Model) (string, error) {
	it, err := m.InstructType()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("- %s | Tools: %s", m.ID, it), nil
}

// Write prints one line per model and returns how many lines were written.
// Lines are written one at a time so output produced before a failure stays visible.
func Write(w io.Writer, models []types.Model) (int, error) {
	for i, m := range models {
		line, err := FormatLine(m)
		if err != nil {
			return i, fmt.Errorf("format line %d: %w", i+1, err)
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return i, fmt.Errorf("write line %d: %w", i+1, err)
		}
	}
	return len(models), nil
}
