package output

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// ParseColorMode maps the --no-color flag onto a ColorMode.
func ParseColorMode(noColor bool) ColorMode {
	if noColor {
		return ColorNever
	}
	return ColorAuto
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldColorize determines if output should be colorized based on mode and TTY detection.
func shouldColorize(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
		return false
	}
	return false
}

// ColorizeLine applies color to a summary line based on its status.
func ColorizeLine(status Status, line string) string {
	switch status {
	case StatusEmpty:
		return colorYellow + line + colorReset
	case StatusFailed:
		return colorBold + colorRed + line + colorReset
	default:
		return line
	}
}
