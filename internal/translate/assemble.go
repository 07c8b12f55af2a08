package translate

import (
	"bufio"
	"io"
)

// Assemble writes entries to w. With autoNewLine every entry is followed by
// a newline, including the last; otherwise entries are concatenated.
func Assemble(w io.Writer, entries []string, autoNewLine bool) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := bw.WriteString(e); err != nil {
			return err
		}
		if autoNewLine {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
