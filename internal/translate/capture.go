package translate

import (
	"strings"

	"github.com/bimmerbailey/logalizer/internal/config"
)

// missingValue stands in for a variable whose start delimiter is absent.
const missingValue = " "

// Capture extracts one value per variable, in declaration order. Each
// variable is located independently of the others.
func Capture(line string, variables []config.Variable) []string {
	if len(variables) == 0 {
		return nil
	}
	values := make([]string, len(variables))
	for i, v := range variables {
		values[i] = captureOne(line, v)
	}
	return values
}

// captureOne returns the text between StartsWith and the next EndsWith.
// A missing or empty EndsWith captures to the end of the line.
func captureOne(line string, v config.Variable) string {
	start := strings.Index(line, v.StartsWith)
	if start < 0 {
		return missingValue
	}
	rest := line[start+len(v.StartsWith):]
	if v.EndsWith == "" {
		return rest
	}
	end := strings.Index(rest, v.EndsWith)
	if end < 0 {
		return rest
	}
	return rest[:end]
}
