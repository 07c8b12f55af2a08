// Package config provides the translation configuration model and the
// sources that populate it (JSON, YAML, TOML, CSV translation tables).
package config

import (
	"regexp"
	"strings"
)

// Settings holds the tool's own settings, populated by viper from flags,
// LOGALIZER_* environment variables and ~/.logalizer.yaml.
type Settings struct {
	Config      string `mapstructure:"config"`       // translation config file
	Format      string `mapstructure:"format"`       // run summary format
	Verbose     int    `mapstructure:"verbose"`      // -v count
	NoColor     bool   `mapstructure:"no_color"`     // disable colored output
	NoExec      bool   `mapstructure:"no_exec"`      // skip execute commands
	MetricsFile string `mapstructure:"metrics_file"` // prometheus textfile output
}

// Config is the read-only aggregate consumed by the translation engine.
type Config struct {
	// Translations in priority order; the first matching rule wins.
	// Disabled rules and rules of disabled categories are already removed.
	Translations []Translation

	DisabledCategories []string
	Blacklist          []string
	DeleteLines        []string
	DeleteLinesRegex   []*regexp.Regexp
	ReplaceWords       []Replacement
	WrapTextPre        []string
	WrapTextPost       []string
	AutoNewLine        bool

	TranslationFile string
	BackupFile      string
	Execute         []string
}

// Translation is one pattern-to-template rule.
type Translation struct {
	Category   string
	Patterns   []string
	Print      string
	Variables  []Variable
	Duplicates Duplicates
	Repeat     bool
}

// Variable is a delimiter pair bounding one captured value.
type Variable struct {
	StartsWith string `yaml:"startswith" mapstructure:"startswith"`
	EndsWith   string `yaml:"endswith" mapstructure:"endswith"`
}

// Replacement is a global search/replace pair applied to every line.
type Replacement struct {
	Search  string `yaml:"search" mapstructure:"search"`
	Replace string `yaml:"replace" mapstructure:"replace"`
}

// Duplicates selects how repeated translations are handled.
type Duplicates int

const (
	DuplicatesAllowed Duplicates = iota
	DuplicatesRemove
	DuplicatesRemoveContinuous
	DuplicatesCount
	DuplicatesCountContinuous
)

// String returns the configuration spelling of a Duplicates policy.
func (d Duplicates) String() string {
	switch d {
	case DuplicatesRemove:
		return "remove"
	case DuplicatesRemoveContinuous:
		return "remove_continuous"
	case DuplicatesCount:
		return "count"
	case DuplicatesCountContinuous:
		return "count_continuous"
	default:
		return "allowed"
	}
}

// Scoped reports whether the policy only compares against the last entry.
func (d Duplicates) Scoped() bool {
	return d == DuplicatesRemoveContinuous || d == DuplicatesCountContinuous
}

// ParseDuplicates converts a config string to a Duplicates policy. The empty
// string is allowed; unknown strings return DuplicatesAllowed and false.
func ParseDuplicates(s string) (Duplicates, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "allowed":
		return DuplicatesAllowed, true
	case "remove":
		return DuplicatesRemove, true
	case "remove_continuous":
		return DuplicatesRemoveContinuous, true
	case "count":
		return DuplicatesCount, true
	case "count_continuous":
		return DuplicatesCountContinuous, true
	default:
		return DuplicatesAllowed, false
	}
}

// Default values for optional keys.
const (
	DefaultTranslationFile = "${fileDirname}/${fileBasenameNoExtension}/${fileBasename}_seq.txt"
	DefaultAutoNewLine     = true
)
