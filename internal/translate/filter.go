package translate

import (
	"regexp"
	"strings"
)

// IsDeleted reports whether line contains any literal or matches any
// pattern. Literals are checked first.
func IsDeleted(line string, literals []string, patterns []*regexp.Regexp) bool {
	for _, literal := range literals {
		if strings.Contains(line, literal) {
			return true
		}
	}
	for _, re := range patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
