package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

func TestColorizeLine(t *testing.T) {
	tests := []struct {
		name          string
		status        Status
		line          string
		expectColor   bool
		expectedColor string
	}{
		{
			name:        "ok - no color",
			status:      StatusOK,
			line:        "trace.log -> trace.log_seq.txt",
			expectColor: false,
		},
		{
			name:          "empty - yellow",
			status:        StatusEmpty,
			line:          "trace.log -> trace.log_seq.txt",
			expectColor:   true,
			expectedColor: colorYellow,
		},
		{
			name:          "failed - bold red",
			status:        StatusFailed,
			line:          "trace.log: [FILE_OPEN] open log",
			expectColor:   true,
			expectedColor: colorBold + colorRed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ColorizeLine(tt.status, tt.line)

			if !tt.expectColor {
				if result != tt.line {
					t.Errorf("Expected no color, got %q", result)
				}
				return
			}
			if !strings.HasPrefix(result, tt.expectedColor) {
				t.Errorf("Expected prefix %q, got %q", tt.expectedColor, result)
			}
			if !strings.HasSuffix(result, colorReset) {
				t.Errorf("Expected reset suffix, got %q", result)
			}
			if !strings.Contains(result, tt.line) {
				t.Errorf("Expected line content preserved, got %q", result)
			}
		})
	}
}

func TestParseColorMode(t *testing.T) {
	if got := ParseColorMode(true); got != ColorNever {
		t.Errorf("ParseColorMode(true) = %v, want ColorNever", got)
	}
	if got := ParseColorMode(false); got != ColorAuto {
		t.Errorf("ParseColorMode(false) = %v, want ColorAuto", got)
	}
}

func TestShouldColorize(t *testing.T) {
	tests := []struct {
		name     string
		mode     ColorMode
		writer   io.Writer
		expected bool
	}{
		{
			name:     "ColorAlways - any writer",
			mode:     ColorAlways,
			writer:   &bytes.Buffer{},
			expected: true,
		},
		{
			name:     "ColorNever - any writer",
			mode:     ColorNever,
			writer:   os.Stdout,
			expected: false,
		},
		{
			name:     "ColorAuto - non-file writer",
			mode:     ColorAuto,
			writer:   &bytes.Buffer{},
			expected: false,
		},
		{
			name:     "ColorAuto - file writer (stdout)",
			mode:     ColorAuto,
			writer:   os.Stdout,
			expected: isTerminal(os.Stdout), // Depends on test environment
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shouldColorize(tt.mode, tt.writer)
			if result != tt.expected {
				t.Errorf("shouldColorize() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestWithColor(t *testing.T) {
	failed := []Report{{File: "trace.log", Status: StatusFailed, Error: "boom"}}

	t.Run("ColorNever mode", func(t *testing.T) {
		buf := &bytes.Buffer{}
		if err := New(buf, FormatText).WithColor(ColorNever).WriteReports(failed); err != nil {
			t.Fatalf("WriteReports() error = %v", err)
		}
		if strings.Contains(buf.String(), "\033[") {
			t.Errorf("Expected no color codes, got: %s", buf.String())
		}
	})

	t.Run("ColorAlways mode", func(t *testing.T) {
		buf := &bytes.Buffer{}
		if err := New(buf, FormatText).WithColor(ColorAlways).WriteReports(failed); err != nil {
			t.Fatalf("WriteReports() error = %v", err)
		}
		if !strings.Contains(buf.String(), colorRed) {
			t.Errorf("Expected red color code, got: %s", buf.String())
		}
	})

	t.Run("ColorAuto mode with buffer (not TTY)", func(t *testing.T) {
		buf := &bytes.Buffer{}
		if err := New(buf, FormatText).WithColor(ColorAuto).WriteReports(failed); err != nil {
			t.Fatalf("WriteReports() error = %v", err)
		}
		if strings.Contains(buf.String(), "\033[") {
			t.Errorf("Expected no color codes for non-TTY, got: %s", buf.String())
		}
	})
}

func TestIsTerminal(t *testing.T) {
	// Actual value depends on the test environment.
	t.Logf("os.Stdout isTerminal: %v", isTerminal(os.Stdout))
	t.Logf("os.Stderr isTerminal: %v", isTerminal(os.Stderr))
}
