package config

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// JSONSource loads a JSON configuration file. Object key order is kept, so
// replace_words may be written as an object.
type JSONSource struct {
	Fs   afero.Fs
	Path string
}

// Load implements Source.
func (s *JSONSource) Load(vars PathVars) (*Config, error) {
	return load(s.Fs, s.Path, vars, decodeJSON)
}

func decodeJSON(data []byte) (*document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("top level must be an object")
	}

	disabled := root.Get(keyDisableGroup)
	if !disabled.Exists() {
		disabled = root.Get(keyDisableCategory)
	}

	return &document{
		Translations:       jsonField(root.Get(keyTranslations), jsonRules),
		TranslationsCSV:    jsonField(root.Get(keyTranslationsCSV), jsonString(keyTranslationsCSV)),
		DisabledCategories: jsonField(disabled, jsonStrings(keyDisableGroup)),
		Blacklist:          jsonField(root.Get(keyBlacklist), jsonStrings(keyBlacklist)),
		DeleteLines:        jsonField(root.Get(keyDeleteLines), jsonStrings(keyDeleteLines)),
		ReplaceWords:       jsonField(root.Get(keyReplaceWords), jsonReplacements),
		WrapTextPre:        jsonField(root.Get(keyWrapTextPre), jsonStrings(keyWrapTextPre)),
		WrapTextPost:       jsonField(root.Get(keyWrapTextPost), jsonStrings(keyWrapTextPost)),
		AutoNewLine:        jsonField(root.Get(keyAutoNewLine), jsonBool(keyAutoNewLine)),
		TranslationFile:    jsonField(root.Get(keyTranslationFile), jsonString(keyTranslationFile)),
		BackupFile:         jsonField(root.Get(keyBackupFile), jsonString(keyBackupFile)),
		Execute:            jsonField(root.Get(keyExecute), jsonStrings(keyExecute)),
	}, nil
}

func jsonField[T any](r gjson.Result, conv func(gjson.Result) (T, error)) Field[T] {
	if !r.Exists() {
		return Field[T]{}
	}
	v, err := conv(r)
	if err != nil {
		return Failed[T](err)
	}
	return Ok(v)
}

func jsonString(key string) func(gjson.Result) (string, error) {
	return func(r gjson.Result) (string, error) {
		if r.Type != gjson.String {
			return "", errType(key, "a string")
		}
		return r.Str, nil
	}
}

func jsonBool(key string) func(gjson.Result) (bool, error) {
	return func(r gjson.Result) (bool, error) {
		if r.Type != gjson.True && r.Type != gjson.False {
			return false, errType(key, "a boolean")
		}
		return r.Bool(), nil
	}
}

func jsonStrings(key string) func(gjson.Result) ([]string, error) {
	return func(r gjson.Result) ([]string, error) {
		if !r.IsArray() {
			return nil, errType(key, "an array of strings")
		}
		var out []string
		for _, item := range r.Array() {
			if item.Type != gjson.String {
				return nil, errType(key, "an array of strings")
			}
			out = append(out, item.Str)
		}
		return out, nil
	}
}

func jsonReplacements(r gjson.Result) ([]Replacement, error) {
	var out []Replacement
	switch {
	case r.IsObject():
		var err error
		r.ForEach(func(key, value gjson.Result) bool {
			if value.Type != gjson.String {
				err = errType(keyReplaceWords+"."+key.Str, "a string")
				return false
			}
			out = append(out, Replacement{Search: key.Str, Replace: value.Str})
			return true
		})
		return out, err
	case r.IsArray():
		for _, item := range r.Array() {
			if !item.IsObject() {
				return nil, errType(keyReplaceWords, "an array of {search, replace} objects")
			}
			out = append(out, Replacement{
				Search:  item.Get("search").String(),
				Replace: item.Get("replace").String(),
			})
		}
		return out, nil
	default:
		return nil, errType(keyReplaceWords, "an object or an array")
	}
}

func jsonRules(r gjson.Result) ([]ruleSpec, error) {
	if !r.IsArray() {
		return nil, errType(keyTranslations, "an array of objects")
	}
	var out []ruleSpec
	for i, item := range r.Array() {
		if !item.IsObject() {
			return nil, fmt.Errorf("%s[%d]: expected an object", keyTranslations, i)
		}
		spec, err := jsonRule(item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", keyTranslations, i, err)
		}
		out = append(out, spec)
	}
	return out, nil
}

func jsonRule(item gjson.Result) (ruleSpec, error) {
	spec := ruleSpec{
		Group:      item.Get("group").String(),
		Print:      item.Get("print").String(),
		Duplicates: item.Get("duplicates").String(),
		Repeat:     item.Get("repeat").Bool(),
	}

	if patterns := item.Get("patterns"); patterns.Exists() {
		p, err := jsonStrings("patterns")(patterns)
		if err != nil {
			return spec, err
		}
		spec.Patterns = p
	}

	if variables := item.Get("variables"); variables.Exists() {
		if !variables.IsArray() {
			return spec, errType("variables", "an array of objects")
		}
		for _, v := range variables.Array() {
			spec.Variables = append(spec.Variables, Variable{
				StartsWith: v.Get("startswith").String(),
				EndsWith:   v.Get("endswith").String(),
			})
		}
	}

	if enable := item.Get("enable"); enable.Exists() {
		enabled := enable.Bool()
		spec.Enable = &enabled
	}

	return spec, nil
}
