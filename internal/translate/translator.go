package translate

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/bimmerbailey/logalizer/internal/config"
	"github.com/bimmerbailey/logalizer/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Recorder observes a translation as it runs. Implementations must not
// retain the arguments.
type Recorder interface {
	ObserveLine(outcome LineOutcome, rule string)
	ObserveEntry(appended bool)
	ObserveDuration(d time.Duration)
}

// Stats summarizes one translation.
type Stats struct {
	LinesRead         int `json:"lines_read"`
	LinesDeleted      int `json:"lines_deleted"`
	LinesMatched      int `json:"lines_matched"`
	LinesUnmatched    int `json:"lines_unmatched"`
	LinesBlacklisted  int `json:"lines_blacklisted"`
	EntriesAppended   int `json:"entries_appended"`
	EntriesSuppressed int `json:"entries_suppressed"`
}

// Result is the outcome of translating one log.
type Result struct {
	LogFile         string        `json:"log_file,omitempty"`
	TranslationFile string        `json:"translation_file,omitempty"`
	Entries         []string      `json:"entries"`
	Stats           Stats         `json:"stats"`
	Duration        time.Duration `json:"duration"`
}

// Options configures a Translator.
type Options struct {
	Fs       afero.Fs        // Filesystem for logs and translations; defaults to the OS
	Logger   *zerolog.Logger // Defaults to the global logger
	Recorder Recorder        // Optional
}

// Translator applies one Config to any number of logs, one at a time.
type Translator struct {
	cfg      *config.Config
	fs       afero.Fs
	logger   zerolog.Logger
	recorder Recorder
}

// New creates a Translator for cfg.
func New(cfg *config.Config, opts Options) *Translator {
	t := &Translator{
		cfg:      cfg,
		fs:       opts.Fs,
		recorder: opts.Recorder,
	}
	if t.fs == nil {
		t.fs = afero.NewOsFs()
	}
	if opts.Logger != nil {
		t.logger = *opts.Logger
	} else {
		t.logger = log.With().Str("component", "translate").Logger()
	}
	return t
}

// Translate reads lines from r, writes every surviving normalized line to
// trimmed and returns the finalized entries. Lines are split on '\n' only.
func (t *Translator) Translate(r io.Reader, trimmed io.Writer) (*Result, error) {
	start := time.Now()
	result := &Result{}
	seq := NewSequence(t.cfg.WrapTextPre)

	br := bufio.NewReader(r)
	bw := bufio.NewWriter(trimmed)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if werr := t.processLine(strings.TrimSuffix(line, "\n"), seq, bw, &result.Stats); werr != nil {
				return nil, werr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if err := bw.Flush(); err != nil {
		return nil, err
	}

	result.Entries = seq.Finalize(t.cfg.WrapTextPost)
	result.Duration = time.Since(start)
	if t.recorder != nil {
		t.recorder.ObserveDuration(result.Duration)
	}
	return result, nil
}

func (t *Translator) processLine(line string, seq *Sequence, trimmed *bufio.Writer, stats *Stats) error {
	stats.LinesRead++
	if IsDeleted(line, t.cfg.DeleteLines, t.cfg.DeleteLinesRegex) {
		stats.LinesDeleted++
		t.observeLine(LineDeleted, "")
		return nil
	}

	line = Normalize(line, t.cfg.ReplaceWords)
	if _, err := trimmed.WriteString(line); err != nil {
		return err
	}
	if err := trimmed.WriteByte('\n'); err != nil {
		return err
	}

	idx, outcome := match(line, t.cfg.Translations, t.cfg.Blacklist)
	switch outcome {
	case LineBlacklisted:
		stats.LinesBlacklisted++
		t.observeLine(outcome, "")
		return nil
	case LineUnmatched:
		stats.LinesUnmatched++
		t.observeLine(outcome, "")
		return nil
	}

	rule := &t.cfg.Translations[idx]
	stats.LinesMatched++
	t.observeLine(outcome, rule.Print)

	entry := Fill(Capture(line, rule.Variables), rule.Print)
	appended := seq.Add(entry, rule.Duplicates, rule.Repeat)
	if appended {
		stats.EntriesAppended++
	} else {
		stats.EntriesSuppressed++
	}
	if t.recorder != nil {
		t.recorder.ObserveEntry(appended)
	}
	return nil
}

func (t *Translator) observeLine(outcome LineOutcome, rule string) {
	if t.recorder != nil {
		t.recorder.ObserveLine(outcome, rule)
	}
}

// TrimmedPath returns where the trimmed copy of logPath is written before
// it replaces the log.
func TrimmedPath(logPath string) string {
	return logPath + config.TrimSuffix
}

// TranslateFile translates logPath in place. The trimmed copy replaces the
// log and the entries are written to the configured translation file.
func (t *Translator) TranslateFile(logPath string) (*Result, error) {
	logger := t.logger.With().Str("file", logPath).Logger()
	logger.Debug().Str("translation_file", t.cfg.TranslationFile).Msg("Translating log")

	in, err := t.fs.Open(logPath)
	if err != nil {
		return nil, errors.FileOp(err, errors.ErrFileOpen, "open log", logPath)
	}

	trimPath := TrimmedPath(logPath)
	out, err := t.fs.Create(trimPath)
	if err != nil {
		in.Close()
		return nil, errors.FileOp(err, errors.ErrFileWrite, "create trimmed log", trimPath)
	}

	result, err := t.Translate(in, out)
	in.Close()
	if err != nil {
		out.Close()
		t.discard(trimPath)
		return nil, errors.FileOp(err, errors.ErrFileRead, "translate log", logPath)
	}
	if err := out.Close(); err != nil {
		t.discard(trimPath)
		return nil, errors.FileOp(err, errors.ErrFileWrite, "close trimmed log", trimPath)
	}

	if err := t.writeTranslation(result.Entries); err != nil {
		t.discard(trimPath)
		return nil, err
	}

	if err := t.fs.Rename(trimPath, logPath); err != nil {
		t.discard(trimPath)
		return nil, errors.FileOp(err, errors.ErrFileRename, "replace log with trimmed copy", logPath)
	}

	result.LogFile = logPath
	result.TranslationFile = t.cfg.TranslationFile
	logger.Info().
		Int("lines", result.Stats.LinesRead).
		Int("entries", len(result.Entries)).
		Dur("duration", result.Duration).
		Msg("Translation written")
	return result, nil
}

func (t *Translator) writeTranslation(entries []string) error {
	path := t.cfg.TranslationFile
	dir := filepath.Dir(path)
	if err := t.fs.MkdirAll(dir, 0o755); err != nil {
		return errors.FileOp(err, errors.ErrDirCreate, "create translation directory", dir)
	}

	f, err := t.fs.Create(path)
	if err != nil {
		return errors.FileOp(err, errors.ErrFileWrite, "create translation file", path)
	}
	if err := Assemble(f, entries, t.cfg.AutoNewLine); err != nil {
		f.Close()
		return errors.FileOp(err, errors.ErrFileWrite, "write translation file", path)
	}
	if err := f.Close(); err != nil {
		return errors.FileOp(err, errors.ErrFileWrite, "close translation file", path)
	}
	return nil
}

func (t *Translator) discard(path string) {
	if err := t.fs.Remove(path); err != nil {
		t.logger.Debug().Err(err).Str("path", path).Msg("Could not remove trimmed copy")
	}
}
