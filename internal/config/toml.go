package config

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// TOMLSource loads a TOML configuration file. TOML tables are unordered,
// so replace_words must be an array of tables.
type TOMLSource struct {
	Fs   afero.Fs
	Path string
}

// Load implements Source.
func (s *TOMLSource) Load(vars PathVars) (*Config, error) {
	return load(s.Fs, s.Path, vars, decodeTOML)
}

func decodeTOML(data []byte) (*document, error) {
	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	disabled, ok := raw[keyDisableGroup]
	if !ok {
		disabled = raw[keyDisableCategory]
	}

	replace := mapField[[]Replacement](raw[keyReplaceWords])
	if _, isTable := raw[keyReplaceWords].(map[string]interface{}); isTable {
		replace = Failed[[]Replacement](errType(keyReplaceWords, "an array of tables"))
	}

	return &document{
		Translations:       mapField[[]ruleSpec](raw[keyTranslations]),
		TranslationsCSV:    mapField[string](raw[keyTranslationsCSV]),
		DisabledCategories: mapField[[]string](disabled),
		Blacklist:          mapField[[]string](raw[keyBlacklist]),
		DeleteLines:        mapField[[]string](raw[keyDeleteLines]),
		ReplaceWords:       replace,
		WrapTextPre:        mapField[[]string](raw[keyWrapTextPre]),
		WrapTextPost:       mapField[[]string](raw[keyWrapTextPost]),
		AutoNewLine:        mapField[bool](raw[keyAutoNewLine]),
		TranslationFile:    mapField[string](raw[keyTranslationFile]),
		BackupFile:         mapField[string](raw[keyBackupFile]),
		Execute:            mapField[[]string](raw[keyExecute]),
	}, nil
}

// mapField decodes one generic value into T without weak type conversion.
func mapField[T any](value interface{}) Field[T] {
	if value == nil {
		return Field[T]{}
	}
	var v T
	if err := mapstructure.Decode(value, &v); err != nil {
		return Failed[T](fmt.Errorf("decode: %w", err))
	}
	return Ok(v)
}
