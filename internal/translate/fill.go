package translate

import (
	"strconv"
	"strings"
)

// firstPlaceholder marks a template as using numbered placeholders.
const firstPlaceholder = "${1}"

// Fill renders values into template. Templates containing ${1} have every
// ${i} replaced by values[i-1]; other templates get the values appended as
// "(v1, v2, ...)". ${count} is left for Sequence.Finalize.
func Fill(values []string, template string) string {
	if strings.Contains(template, firstPlaceholder) {
		filled := template
		for i, v := range values {
			filled = strings.ReplaceAll(filled, "${"+strconv.Itoa(i+1)+"}", v)
		}
		return filled
	}
	if len(values) > 0 {
		return template + "(" + strings.Join(values, ", ") + ")"
	}
	return template
}
