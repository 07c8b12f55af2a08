// Package output renders per-file run summaries. It supports text, JSON,
// and table formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bimmerbailey/logalizer/internal/errors"
	"github.com/bimmerbailey/logalizer/internal/translate"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Status classifies the outcome of one file.
type Status string

const (
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty" // translated, but no rule matched
	StatusFailed Status = "failed"
)

// Report is the outcome of processing one log file.
type Report struct {
	File            string          `json:"file"`
	Status          Status          `json:"status"`
	TranslationFile string          `json:"translation_file,omitempty"`
	Entries         int             `json:"entries"`
	Stats           translate.Stats `json:"stats"`
	Duration        time.Duration   `json:"duration_ns"`
	BackedUp        bool            `json:"backed_up,omitempty"`
	CommandFailures int             `json:"command_failures,omitempty"`
	Error           string          `json:"error,omitempty"`

	// ErrorCode and ErrorDetails are set for coded failures only.
	ErrorCode    errors.ErrorCode       `json:"error_code,omitempty"`
	ErrorDetails map[string]interface{} `json:"error_details,omitempty"`
}

// NewReport builds a Report from a translation outcome. result is ignored
// when err is non-nil.
func NewReport(file string, result *translate.Result, err error) Report {
	r := Report{File: file}
	if err != nil {
		r.Status = StatusFailed
		r.Error = err.Error()
		if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
			r.ErrorCode = code
			r.ErrorDetails = errors.GetErrorDetails(err)
		}
		return r
	}

	r.TranslationFile = result.TranslationFile
	r.Entries = len(result.Entries)
	r.Stats = result.Stats
	r.Duration = result.Duration
	r.Status = StatusOK
	if result.Stats.LinesMatched == 0 {
		r.Status = StatusEmpty
	}
	return r
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
	color  bool
}

// New creates a new output Writer.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// WithColor enables status colouring for text output according to mode.
func (wr *Writer) WithColor(mode ColorMode) *Writer {
	wr.color = shouldColorize(mode, wr.w)
	return wr
}

// WriteReports outputs reports in the configured format.
func (wr *Writer) WriteReports(reports []Report) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(reports)
	case FormatTable:
		return wr.writeTable(reports)
	default:
		return wr.writeText(reports)
	}
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (wr *Writer) writeText(reports []Report) error {
	for _, r := range reports {
		line := FormatReport(r)
		if wr.color {
			line = ColorizeLine(r.Status, line)
		}
		if _, err := fmt.Fprintln(wr.w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatReport renders r as a single line of text.
func FormatReport(r Report) string {
	if r.Status == StatusFailed {
		return fmt.Sprintf("%s: %s", r.File, r.Error)
	}

	s := r.Stats
	line := fmt.Sprintf("%s -> %s: %d entries from %d lines (%d deleted, %d matched, %d unmatched, %d blacklisted, %d suppressed) in %s",
		r.File, r.TranslationFile, r.Entries, s.LinesRead,
		s.LinesDeleted, s.LinesMatched, s.LinesUnmatched, s.LinesBlacklisted, s.EntriesSuppressed,
		r.Duration.Round(time.Microsecond))
	if r.CommandFailures > 0 {
		line += fmt.Sprintf(", %d command(s) failed", r.CommandFailures)
	}
	return line
}

func (wr *Writer) writeTable(reports []Report) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSTATUS\tENTRIES\tLINES\tDELETED\tMATCHED\tUNMATCHED\tBLACKLISTED\tSUPPRESSED\tDURATION\tERROR")
	fmt.Fprintln(tw, "----\t------\t-------\t-----\t-------\t-------\t---------\t-----------\t----------\t--------\t-----")

	for _, r := range reports {
		s := r.Stats
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%s\t%s\n",
			r.File, r.Status, r.Entries, s.LinesRead, s.LinesDeleted, s.LinesMatched,
			s.LinesUnmatched, s.LinesBlacklisted, s.EntriesSuppressed, r.Duration.Round(time.Microsecond),
			r.ErrorCode)
	}

	return tw.Flush()
}
