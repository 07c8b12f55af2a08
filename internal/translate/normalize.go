package translate

import (
	"strings"

	"github.com/bimmerbailey/logalizer/internal/config"
)

// Normalize applies each replacement to every occurrence in line, in
// order. Later replacements see the output of earlier ones. Pairs with an
// empty search string are skipped.
func Normalize(line string, replacements []config.Replacement) string {
	for _, r := range replacements {
		if r.Search == "" {
			continue
		}
		line = strings.ReplaceAll(line, r.Search, r.Replace)
	}
	return line
}
