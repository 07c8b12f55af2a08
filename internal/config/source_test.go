package config

import (
	"testing"

	"github.com/bimmerbailey/logalizer/internal/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testVars = PathVars{
	Dir:       "/logs",
	File:      "trace.log",
	FileNoExt: "trace",
	ExeDir:    "/opt/logalizer",
}

func writeConfig(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func loadString(t *testing.T, path, content string) (*Config, error) {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, path, content)
	return Open(fs, path).Load(testVars)
}

func TestOpen(t *testing.T) {
	fs := afero.NewMemMapFs()

	assert.IsType(t, &JSONSource{}, Open(fs, "config.json"))
	assert.IsType(t, &YAMLSource{}, Open(fs, "config.yaml"))
	assert.IsType(t, &YAMLSource{}, Open(fs, "config.YML"))
	assert.IsType(t, &TOMLSource{}, Open(fs, "config.toml"))
	assert.IsType(t, &JSONSource{}, Open(fs, "config"))
}

func TestLoadSamples(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			content, err := Sample(format)
			require.NoError(t, err)

			cfg, err := loadString(t, "/etc/logalizer/config."+format, content)
			require.NoError(t, err)

			require.Len(t, cfg.Translations, 2, "disabled rule must be dropped")
			assert.Equal(t, Translation{
				Category:   "temperature",
				Patterns:   []string{"TemperatureSensor", "temperature"},
				Print:      "Temperature(${1}) seen ${count} times",
				Variables:  []Variable{{StartsWith: "= ", EndsWith: "C"}},
				Duplicates: DuplicatesCount,
			}, cfg.Translations[0])
			assert.Equal(t, DuplicatesRemoveContinuous, cfg.Translations[1].Duplicates)
			assert.Equal(t, []Variable{{StartsWith: "state = ", EndsWith: ";"}}, cfg.Translations[1].Variables)

			assert.Equal(t, []string{"network"}, cfg.DisabledCategories)
			assert.Equal(t, []string{"[VERBOSE]"}, cfg.Blacklist)
			assert.Equal(t, []string{"heartbeat"}, cfg.DeleteLines)
			require.Len(t, cfg.DeleteLinesRegex, 1)
			assert.Equal(t, `^\s*$`, cfg.DeleteLinesRegex[0].String())
			assert.Equal(t, []Replacement{
				{Search: "TempSensor", Replace: "TemperatureSensor"},
				{Search: "st=", Replace: "state = "},
			}, cfg.ReplaceWords)
			assert.Equal(t, []string{"@startuml", "title trace.log"}, cfg.WrapTextPre)
			assert.Equal(t, []string{"@enduml"}, cfg.WrapTextPost)
			assert.True(t, cfg.AutoNewLine)
			assert.Equal(t, "/logs/trace/trace.log_seq.txt", cfg.TranslationFile)
			assert.Equal(t, "/logs/trace/trace.log.orig", cfg.BackupFile)
			assert.Equal(t, []string{"echo translated trace.log"}, cfg.Execute)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadString(t, "/config.json", `{"translations": []}`)
	require.NoError(t, err)

	assert.Empty(t, cfg.Translations)
	assert.Empty(t, cfg.Blacklist)
	assert.Empty(t, cfg.DeleteLines)
	assert.Empty(t, cfg.DeleteLinesRegex)
	assert.Empty(t, cfg.ReplaceWords)
	assert.Empty(t, cfg.WrapTextPre)
	assert.Empty(t, cfg.WrapTextPost)
	assert.Empty(t, cfg.Execute)
	assert.Empty(t, cfg.BackupFile)
	assert.True(t, cfg.AutoNewLine, "auto_new_line defaults to true")
	assert.Equal(t, "/logs/trace/trace.log_seq.txt", cfg.TranslationFile)
}

func TestLoadAutoNewLineFalse(t *testing.T) {
	cfg, err := loadString(t, "/config.json", `{"translations": [], "auto_new_line": false}`)
	require.NoError(t, err)
	assert.False(t, cfg.AutoNewLine)
}

func TestLoadDisableCategorySpelling(t *testing.T) {
	cfg, err := loadString(t, "/config.yaml", `
translations:
  - {group: a, patterns: [x], print: A}
  - {group: b, patterns: [y], print: B}
disable_category: [a]
`)
	require.NoError(t, err)
	require.Len(t, cfg.Translations, 1)
	assert.Equal(t, "B", cfg.Translations[0].Print)
}

func TestLoadMalformedOptionalSectionIsIgnored(t *testing.T) {
	cfg, err := loadString(t, "/config.json", `{
		"translations": [{"patterns": ["a"], "print": "A"}],
		"blacklist": "not-an-array",
		"auto_new_line": "yes",
		"delete_lines": ["ok", 3]
	}`)
	require.NoError(t, err)

	assert.Len(t, cfg.Translations, 1)
	assert.Empty(t, cfg.Blacklist)
	assert.True(t, cfg.AutoNewLine)
	assert.Empty(t, cfg.DeleteLines)
}

func TestLoadFatalErrors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		content  string
		wantCode errors.ErrorCode
	}{
		{"invalid json", "/config.json", `{"translations": [`, errors.ErrConfigParse},
		{"top level array", "/config.json", `[]`, errors.ErrConfigParse},
		{"no translations", "/config.json", `{"blacklist": []}`, errors.ErrConfigLoad},
		{"malformed translations", "/config.json", `{"translations": {"a": 1}}`, errors.ErrConfigParse},
		{"malformed patterns", "/config.json", `{"translations": [{"patterns": "x"}]}`, errors.ErrConfigParse},
		{"invalid yaml", "/config.yaml", "translations: [", errors.ErrConfigParse},
		{"invalid toml", "/config.toml", "translations = [", errors.ErrConfigParse},
		{"missing csv", "/config.json", `{"translations_csv": "missing.csv"}`, errors.ErrConfigLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadString(t, tt.path, tt.content)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetErrorCode(err))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Open(afero.NewMemMapFs(), "/nope.json").Load(testVars)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	assert.Equal(t, "/nope.json", errors.GetErrorDetails(err)["path"])
}

func TestLoadUnknownDuplicates(t *testing.T) {
	cfg, err := loadString(t, "/config.json", `{"translations": [{"patterns": ["a"], "print": "A", "duplicates": "dedupe"}]}`)
	require.NoError(t, err)
	assert.Equal(t, DuplicatesAllowed, cfg.Translations[0].Duplicates)
}

func TestLoadRepeat(t *testing.T) {
	cfg, err := loadString(t, "/config.json", `{"translations": [{"patterns": ["a"], "print": "A", "duplicates": "remove", "repeat": true}]}`)
	require.NoError(t, err)
	assert.True(t, cfg.Translations[0].Repeat)
}

func TestLoadReplaceWordsArray(t *testing.T) {
	cfg, err := loadString(t, "/config.json", `{
		"translations": [],
		"replace_words": [{"search": "b", "replace": "c"}, {"search": "a", "replace": "b"}]
	}`)
	require.NoError(t, err)
	assert.Equal(t, []Replacement{{Search: "b", Replace: "c"}, {Search: "a", Replace: "b"}}, cfg.ReplaceWords)
}

func TestLoadTOMLReplaceWordsTableRejected(t *testing.T) {
	cfg, err := loadString(t, "/config.toml", `
translations = []

[replace_words]
a = "b"
`)
	require.NoError(t, err)
	assert.Empty(t, cfg.ReplaceWords)
}

func TestSplitDeleteLines(t *testing.T) {
	literals, patterns := splitDeleteLines([]string{"dl1", "dl2", "dl_regex.*", "broken(", " _r.*x_ "})

	assert.Equal(t, []string{"dl1", "dl2", "broken("}, literals)
	require.Len(t, patterns, 2)
	assert.True(t, patterns[0].MatchString("dl_regex_anything"))
	assert.True(t, patterns[1].MatchString("text for _regex_ testing"))
}

func TestSampleUnknownFormat(t *testing.T) {
	_, err := Sample("xml")
	assert.Error(t, err)
	assert.Equal(t, []string{"csv", "json", "toml", "yaml"}, SampleFormats())
}
