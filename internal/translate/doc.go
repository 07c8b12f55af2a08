// Package translate rewrites a raw log into a condensed translation.
//
// Each line goes through a fixed pipeline:
//
//  1. Filter - lines containing a delete literal or matching a delete
//     pattern are dropped outright
//  2. Normalize - replace_words pairs are applied in order; the result is
//     written to the trimmed copy of the log
//  3. Match - the first rule whose patterns all occur in the line wins,
//     unless the line is blacklisted
//  4. Capture and Fill - delimiter-bounded values are rendered into the
//     rule's print template
//  5. Deduplicate - the rendered entry is appended to a Sequence according
//     to the rule's duplicates policy
//
// After the last line the Sequence substitutes ${count} occurrences, wrap
// text is appended and the entries are written out.
//
// Basic usage:
//
//	t := translate.New(cfg, translate.Options{Fs: afero.NewOsFs()})
//	result, err := t.TranslateFile("trace.log")
package translate
