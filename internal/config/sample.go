package config

import (
	"embed"
	"fmt"
	"sort"
)

//go:embed samples
var samples embed.FS

var sampleFiles = map[string]string{
	"json": "samples/config.json",
	"yaml": "samples/config.yaml",
	"toml": "samples/config.toml",
	"csv":  "samples/translations.csv",
}

// Sample returns an example configuration in the given format.
func Sample(format string) (string, error) {
	name, ok := sampleFiles[format]
	if !ok {
		return "", fmt.Errorf("unknown sample format %q (available: %v)", format, SampleFormats())
	}
	data, err := samples.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SampleFormats lists the formats Sample accepts.
func SampleFormats() []string {
	formats := make([]string, 0, len(sampleFiles))
	for f := range sampleFiles {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}
