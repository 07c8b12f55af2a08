package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/bimmerbailey/logalizer/internal/errors"
	"github.com/bimmerbailey/logalizer/internal/translate"
)

func sampleResult() *translate.Result {
	return &translate.Result{
		LogFile:         "/logs/trace.log",
		TranslationFile: "/logs/trace/trace.log_seq.txt",
		Entries:         []string{"@startuml", "Temperature(45)", "@enduml"},
		Stats: translate.Stats{
			LinesRead:         10,
			LinesDeleted:      2,
			LinesMatched:      5,
			LinesUnmatched:    2,
			LinesBlacklisted:  1,
			EntriesAppended:   1,
			EntriesSuppressed: 4,
		},
		Duration: 1500 * time.Microsecond,
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"table", FormatTable},
		{"text", FormatText},
		{"", FormatText},
		{"xml", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewReport(t *testing.T) {
	r := NewReport("/logs/trace.log", sampleResult(), nil)
	if r.Status != StatusOK {
		t.Errorf("Status = %q, want ok", r.Status)
	}
	if r.Entries != 3 {
		t.Errorf("Entries = %d, want 3", r.Entries)
	}
	if r.TranslationFile != "/logs/trace/trace.log_seq.txt" {
		t.Errorf("TranslationFile = %q", r.TranslationFile)
	}

	empty := sampleResult()
	empty.Stats.LinesMatched = 0
	if r := NewReport("/logs/trace.log", empty, nil); r.Status != StatusEmpty {
		t.Errorf("Status = %q, want empty", r.Status)
	}

	failed := NewReport("/logs/trace.log", nil, errors.New("boom"))
	if failed.Status != StatusFailed || failed.Error != "boom" {
		t.Errorf("failed report = %+v", failed)
	}
	if failed.ErrorCode != "" || failed.ErrorDetails != nil {
		t.Errorf("uncoded error should leave code and details empty: %+v", failed)
	}
}

func TestNewReport_CodedError(t *testing.T) {
	err := apperrors.FileOp(errors.New("no such file"), apperrors.ErrFileOpen, "open log", "/logs/missing.log")
	r := NewReport("/logs/missing.log", nil, err)

	if r.ErrorCode != apperrors.ErrFileOpen {
		t.Errorf("ErrorCode = %q, want %q", r.ErrorCode, apperrors.ErrFileOpen)
	}
	if r.ErrorDetails["path"] != "/logs/missing.log" || r.ErrorDetails["op"] != "open log" {
		t.Errorf("ErrorDetails = %v", r.ErrorDetails)
	}

	buf := &bytes.Buffer{}
	if err := New(buf, FormatJSON).WriteReports([]Report{r}); err != nil {
		t.Fatalf("WriteReports() error = %v", err)
	}
	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if decoded[0]["error_code"] != "FILE_OPEN" {
		t.Errorf("error_code = %v", decoded[0]["error_code"])
	}
	details, ok := decoded[0]["error_details"].(map[string]interface{})
	if !ok || details["path"] != "/logs/missing.log" {
		t.Errorf("error_details = %v", decoded[0]["error_details"])
	}

	buf.Reset()
	if err := New(buf, FormatTable).WriteReports([]Report{r}); err != nil {
		t.Fatalf("WriteReports() error = %v", err)
	}
	if !strings.Contains(buf.String(), "FILE_OPEN") {
		t.Errorf("table missing error code:\n%s", buf.String())
	}
}

func TestWriteReports_Text(t *testing.T) {
	buf := &bytes.Buffer{}
	reports := []Report{
		NewReport("/logs/trace.log", sampleResult(), nil),
		NewReport("/logs/missing.log", nil, errors.New("open failed")),
	}

	if err := New(buf, FormatText).WriteReports(reports); err != nil {
		t.Fatalf("WriteReports() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	want := "/logs/trace.log -> /logs/trace/trace.log_seq.txt: 3 entries from 10 lines " +
		"(2 deleted, 5 matched, 2 unmatched, 1 blacklisted, 4 suppressed) in 1.5ms"
	if lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
	if lines[1] != "/logs/missing.log: open failed" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestWriteReports_CommandFailures(t *testing.T) {
	r := NewReport("/logs/trace.log", sampleResult(), nil)
	r.CommandFailures = 2
	if got := FormatReport(r); !strings.HasSuffix(got, ", 2 command(s) failed") {
		t.Errorf("FormatReport() = %q", got)
	}
}

func TestWriteReports_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	reports := []Report{NewReport("/logs/trace.log", sampleResult(), nil)}

	if err := New(buf, FormatJSON).WriteReports(reports); err != nil {
		t.Fatalf("WriteReports() error = %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 1 {
		t.Fatalf("Expected 1 report, got %d", len(decoded))
	}
	if decoded[0]["status"] != "ok" {
		t.Errorf("status = %v", decoded[0]["status"])
	}
	stats, ok := decoded[0]["stats"].(map[string]interface{})
	if !ok {
		t.Fatalf("stats missing: %v", decoded[0])
	}
	if stats["lines_read"] != float64(10) {
		t.Errorf("lines_read = %v", stats["lines_read"])
	}
	for _, key := range []string{"error", "error_code", "error_details"} {
		if _, ok := decoded[0][key]; ok {
			t.Errorf("%s should be omitted on success", key)
		}
	}
}

func TestWriteReports_Table(t *testing.T) {
	buf := &bytes.Buffer{}
	reports := []Report{NewReport("/logs/trace.log", sampleResult(), nil)}

	if err := New(buf, FormatTable).WriteReports(reports); err != nil {
		t.Fatalf("WriteReports() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"FILE", "STATUS", "SUPPRESSED", "/logs/trace.log", "ok"} {
		if !strings.Contains(output, want) {
			t.Errorf("table missing %q:\n%s", want, output)
		}
	}
	if lines := strings.Split(strings.TrimSpace(output), "\n"); len(lines) != 3 {
		t.Errorf("Expected header, separator and one row, got %d lines", len(lines))
	}
}
