package translate

import (
	"strconv"
	"strings"

	"github.com/bimmerbailey/logalizer/internal/config"
)

// CountPlaceholder is replaced by an entry's occurrence count on Finalize.
const CountPlaceholder = "${count}"

// Sequence is the ordered list of translation entries for one log. Entries
// are compared as exact strings before ${count} substitution.
type Sequence struct {
	entries []string
	counts  map[int]int    // entry index -> occurrences
	first   map[string]int // entry text -> index of first occurrence
}

// NewSequence returns a Sequence seeded with the given wrap entries.
// Seeded entries take part in duplicate detection like any other.
func NewSequence(pre []string) *Sequence {
	s := &Sequence{
		counts: make(map[int]int),
		first:  make(map[string]int),
	}
	for _, e := range pre {
		s.append(e)
	}
	return s
}

// Add offers candidate to the sequence under policy and reports whether it
// was appended. A suppressed candidate increments the count of the entry
// it duplicates. repeat forces an append whatever the policy.
func (s *Sequence) Add(candidate string, policy config.Duplicates, repeat bool) bool {
	if policy == config.DuplicatesAllowed {
		s.append(candidate)
		return true
	}

	idx, found := s.lookup(candidate, policy.Scoped())
	if !found || repeat {
		s.append(candidate)
		s.counts[len(s.entries)-1] = 1
		return true
	}

	if _, ok := s.counts[idx]; !ok {
		s.counts[idx] = 1
	}
	s.counts[idx]++
	return false
}

// lookup finds the entry candidate duplicates. Scoped policies only look
// at the last entry.
func (s *Sequence) lookup(candidate string, scoped bool) (int, bool) {
	if scoped {
		last := len(s.entries) - 1
		if last >= 0 && s.entries[last] == candidate {
			return last, true
		}
		return -1, false
	}
	idx, ok := s.first[candidate]
	return idx, ok
}

func (s *Sequence) append(entry string) {
	if _, ok := s.first[entry]; !ok {
		s.first[entry] = len(s.entries)
	}
	s.entries = append(s.entries, entry)
}

// count returns the occurrence count recorded for the entry at idx.
func (s *Sequence) count(idx int) (int, bool) {
	n, ok := s.counts[idx]
	return n, ok
}

// Finalize substitutes ${count} in every counted entry, appends post and
// returns the result. The sequence itself is left unchanged.
func (s *Sequence) Finalize(post []string) []string {
	out := make([]string, 0, len(s.entries)+len(post))
	for i, e := range s.entries {
		if n, ok := s.counts[i]; ok {
			e = strings.ReplaceAll(e, CountPlaceholder, strconv.Itoa(n))
		}
		out = append(out, e)
	}
	return append(out, post...)
}
