package translate

import (
	"strings"

	"github.com/bimmerbailey/logalizer/internal/config"
)

// LineOutcome classifies what happened to one input line.
type LineOutcome string

const (
	LineDeleted     LineOutcome = "deleted"
	LineMatched     LineOutcome = "matched"
	LineUnmatched   LineOutcome = "unmatched"
	LineBlacklisted LineOutcome = "blacklisted"
)

// Match returns the index of the first rule whose patterns all occur in
// line. If that rule matches but line contains a blacklist entry, there is
// no match; later rules are not tried.
func Match(line string, rules []config.Translation, blacklist []string) (int, bool) {
	idx, outcome := match(line, rules, blacklist)
	return idx, outcome == LineMatched
}

func match(line string, rules []config.Translation, blacklist []string) (int, LineOutcome) {
	for i := range rules {
		if !containsAll(line, rules[i].Patterns) {
			continue
		}
		if IsBlacklisted(line, blacklist) {
			return -1, LineBlacklisted
		}
		return i, LineMatched
	}
	return -1, LineUnmatched
}

// IsBlacklisted reports whether line contains any blacklist entry.
func IsBlacklisted(line string, blacklist []string) bool {
	for _, bl := range blacklist {
		if strings.Contains(line, bl) {
			return true
		}
	}
	return false
}

func containsAll(line string, patterns []string) bool {
	for _, p := range patterns {
		if !strings.Contains(line, p) {
			return false
		}
	}
	return true
}
