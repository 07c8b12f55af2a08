package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bimmerbailey/logalizer/internal/errors"
	"github.com/bimmerbailey/logalizer/internal/logging"
	"github.com/spf13/afero"
)

// Source is anything that can produce a populated Config.
type Source interface {
	Load(vars PathVars) (*Config, error)
}

// Open returns the Source for path, chosen by file extension. Unknown
// extensions are read as JSON.
func Open(fs afero.Fs, path string) Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return &YAMLSource{Fs: fs, Path: path}
	case ".toml":
		return &TOMLSource{Fs: fs, Path: path}
	default:
		return &JSONSource{Fs: fs, Path: path}
	}
}

// ruleSpec is a translation rule as written in a config file.
type ruleSpec struct {
	Group      string     `yaml:"group" mapstructure:"group"`
	Patterns   []string   `yaml:"patterns" mapstructure:"patterns"`
	Print      string     `yaml:"print" mapstructure:"print"`
	Variables  []Variable `yaml:"variables" mapstructure:"variables"`
	Duplicates string     `yaml:"duplicates" mapstructure:"duplicates"`
	Repeat     bool       `yaml:"repeat" mapstructure:"repeat"`
	Enable     *bool      `yaml:"enable" mapstructure:"enable"`
}

// document is the format-neutral decode of a config file. Each key decodes
// independently so one malformed section does not discard the others.
type document struct {
	Translations       Field[[]ruleSpec]
	TranslationsCSV    Field[string]
	DisabledCategories Field[[]string]
	Blacklist          Field[[]string]
	DeleteLines        Field[[]string]
	ReplaceWords       Field[[]Replacement]
	WrapTextPre        Field[[]string]
	WrapTextPost       Field[[]string]
	AutoNewLine        Field[bool]
	TranslationFile    Field[string]
	BackupFile         Field[string]
	Execute            Field[[]string]
}

// Config file keys.
const (
	keyTranslations    = "translations"
	keyTranslationsCSV = "translations_csv"
	keyDisableGroup    = "disable_group"
	keyDisableCategory = "disable_category"
	keyBlacklist       = "blacklist"
	keyDeleteLines     = "delete_lines"
	keyReplaceWords    = "replace_words"
	keyWrapTextPre     = "wrap_text_pre"
	keyWrapTextPost    = "wrap_text_post"
	keyAutoNewLine     = "auto_new_line"
	keyTranslationFile = "translation_file"
	keyBackupFile      = "backup_file"
	keyExecute         = "execute"
)

// decodeFunc turns raw file bytes into a document. An error means the file
// as a whole is unusable.
type decodeFunc func(data []byte) (*document, error)

func load(fs afero.Fs, path string, vars PathVars, decode decodeFunc) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.FileOp(err, errors.ErrConfigLoad, "read config", path)
	}

	doc, err := decode(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "parse config").WithDetail("path", path)
	}

	return build(doc, buildContext{fs: fs, baseDir: filepath.Dir(path), vars: vars})
}

type buildContext struct {
	fs      afero.Fs
	baseDir string
	vars    PathVars
}

// build applies defaults, filters disabled rules, classifies delete lines
// and expands path variables. Only a missing or malformed translation
// source is fatal.
func build(doc *document, ctx buildContext) (*Config, error) {
	logger := logging.GetLogger("config")

	warn := func(key string, err error) {
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Ignoring malformed config section")
		}
	}
	warn(keyDisableGroup, doc.DisabledCategories.Err)
	warn(keyBlacklist, doc.Blacklist.Err)
	warn(keyDeleteLines, doc.DeleteLines.Err)
	warn(keyReplaceWords, doc.ReplaceWords.Err)
	warn(keyWrapTextPre, doc.WrapTextPre.Err)
	warn(keyWrapTextPost, doc.WrapTextPost.Err)
	warn(keyAutoNewLine, doc.AutoNewLine.Err)
	warn(keyTranslationFile, doc.TranslationFile.Err)
	warn(keyBackupFile, doc.BackupFile.Err)
	warn(keyExecute, doc.Execute.Err)

	specs, err := collectRules(doc, ctx)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DisabledCategories: doc.DisabledCategories.Or(nil),
		Blacklist:          doc.Blacklist.Or(nil),
		ReplaceWords:       doc.ReplaceWords.Or(nil),
		WrapTextPre:        ctx.vars.ExpandAll(doc.WrapTextPre.Or(nil)),
		WrapTextPost:       ctx.vars.ExpandAll(doc.WrapTextPost.Or(nil)),
		AutoNewLine:        doc.AutoNewLine.Or(DefaultAutoNewLine),
		TranslationFile:    ctx.vars.Expand(doc.TranslationFile.Or(DefaultTranslationFile)),
		BackupFile:         ctx.vars.Expand(doc.BackupFile.Or("")),
		Execute:            ctx.vars.ExpandAll(doc.Execute.Or(nil)),
	}
	cfg.DeleteLines, cfg.DeleteLinesRegex = splitDeleteLines(doc.DeleteLines.Or(nil))

	for i, spec := range specs {
		if spec.Enable != nil && !*spec.Enable {
			continue
		}
		if cfg.isDisabled(spec.Group) {
			continue
		}
		dup, ok := ParseDuplicates(spec.Duplicates)
		if !ok {
			logger.Warn().
				Int("rule", i).
				Str("duplicates", spec.Duplicates).
				Msg("Unknown duplicates policy, using allowed")
		}
		cfg.Translations = append(cfg.Translations, Translation{
			Category:   spec.Group,
			Patterns:   spec.Patterns,
			Print:      spec.Print,
			Variables:  spec.Variables,
			Duplicates: dup,
			Repeat:     spec.Repeat,
		})
	}

	logger.Debug().
		Int("translations", len(cfg.Translations)).
		Int("delete_lines", len(cfg.DeleteLines)).
		Int("delete_lines_regex", len(cfg.DeleteLinesRegex)).
		Int("replace_words", len(cfg.ReplaceWords)).
		Msg("Configuration loaded")

	return cfg, nil
}

// collectRules gathers inline translations followed by CSV translations.
func collectRules(doc *document, ctx buildContext) ([]ruleSpec, error) {
	if doc.Translations.Err != nil {
		return nil, errors.Wrap(doc.Translations.Err, errors.ErrConfigParse, "malformed "+keyTranslations)
	}
	if doc.TranslationsCSV.Err != nil {
		return nil, errors.Wrap(doc.TranslationsCSV.Err, errors.ErrConfigParse, "malformed "+keyTranslationsCSV)
	}
	if !doc.Translations.Set && !doc.TranslationsCSV.Set {
		return nil, errors.Newf(errors.ErrConfigLoad, "no %s or %s configured", keyTranslations, keyTranslationsCSV)
	}

	specs := doc.Translations.Value
	if doc.TranslationsCSV.Set {
		path := ctx.vars.Expand(doc.TranslationsCSV.Value)
		if !filepath.IsAbs(path) {
			path = filepath.Join(ctx.baseDir, path)
		}
		csvSpecs, err := readCSVRules(ctx.fs, path)
		if err != nil {
			return nil, err
		}
		specs = append(specs, csvSpecs...)
	}
	return specs, nil
}

func (c *Config) isDisabled(category string) bool {
	for _, disabled := range c.DisabledCategories {
		if category == disabled {
			return true
		}
	}
	return false
}

// regexMeta lists characters that mark a delete_lines entry as a pattern.
const regexMeta = `.*+?()[]{}|^$\`

// splitDeleteLines separates literal delete_lines entries from patterns.
func splitDeleteLines(entries []string) ([]string, []*regexp.Regexp) {
	var literals []string
	var patterns []*regexp.Regexp
	for _, entry := range entries {
		if !strings.ContainsAny(entry, regexMeta) {
			literals = append(literals, entry)
			continue
		}
		re, err := regexp.Compile(entry)
		if err != nil {
			logger := logging.GetLogger("config")
			logger.Warn().
				Err(err).
				Str("entry", entry).
				Msg("delete_lines entry is not a valid pattern, matching literally")
			literals = append(literals, entry)
			continue
		}
		patterns = append(patterns, re)
	}
	return literals, patterns
}

func errType(key, want string) error {
	return fmt.Errorf("%s: expected %s", key, want)
}
