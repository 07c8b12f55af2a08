package config

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// YAMLSource loads a YAML configuration file. Mapping order is kept, so
// replace_words may be written as a mapping.
type YAMLSource struct {
	Fs   afero.Fs
	Path string
}

// Load implements Source.
func (s *YAMLSource) Load(vars PathVars) (*Config, error) {
	return load(s.Fs, s.Path, vars, decodeYAML)
}

func decodeYAML(data []byte) (*document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	keys := make(map[string]*yaml.Node)
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		top := root.Content[0]
		if top.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("top level must be a mapping")
		}
		for i := 0; i+1 < len(top.Content); i += 2 {
			keys[top.Content[i].Value] = top.Content[i+1]
		}
	}

	disabled := keys[keyDisableGroup]
	if disabled == nil {
		disabled = keys[keyDisableCategory]
	}

	return &document{
		Translations:       yamlField[[]ruleSpec](keys[keyTranslations]),
		TranslationsCSV:    yamlField[string](keys[keyTranslationsCSV]),
		DisabledCategories: yamlField[[]string](disabled),
		Blacklist:          yamlField[[]string](keys[keyBlacklist]),
		DeleteLines:        yamlField[[]string](keys[keyDeleteLines]),
		ReplaceWords:       yamlReplacements(keys[keyReplaceWords]),
		WrapTextPre:        yamlField[[]string](keys[keyWrapTextPre]),
		WrapTextPost:       yamlField[[]string](keys[keyWrapTextPost]),
		AutoNewLine:        yamlField[bool](keys[keyAutoNewLine]),
		TranslationFile:    yamlField[string](keys[keyTranslationFile]),
		BackupFile:         yamlField[string](keys[keyBackupFile]),
		Execute:            yamlField[[]string](keys[keyExecute]),
	}, nil
}

func yamlField[T any](node *yaml.Node) Field[T] {
	if node == nil {
		return Field[T]{}
	}
	var v T
	if err := node.Decode(&v); err != nil {
		return Failed[T](err)
	}
	return Ok(v)
}

func yamlReplacements(node *yaml.Node) Field[[]Replacement] {
	if node == nil {
		return Field[[]Replacement]{}
	}
	if node.Kind != yaml.MappingNode {
		return yamlField[[]Replacement](node)
	}

	var out []Replacement
	for i := 0; i+1 < len(node.Content); i += 2 {
		var replace string
		if err := node.Content[i+1].Decode(&replace); err != nil {
			return Failed[[]Replacement](fmt.Errorf("%s.%s: %w", keyReplaceWords, node.Content[i].Value, err))
		}
		out = append(out, Replacement{Search: node.Content[i].Value, Replace: replace})
	}
	return Ok(out)
}
