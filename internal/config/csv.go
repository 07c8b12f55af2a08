package config

import (
	"encoding/csv"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/bimmerbailey/logalizer/internal/errors"
	"github.com/spf13/afero"
)

// CSV translation table columns. Patterns and variables may repeat with any
// number suffix: pattern1, pattern2, variable1_starts_with, ...
const (
	csvEnabled    = "enabled"
	csvGroup      = "group"
	csvPrint      = "print"
	csvDuplicates = "duplicates"
	csvRepeat     = "repeat"
)

var (
	csvPatternColumn  = regexp.MustCompile(`^pattern(\d+)$`)
	csvVariableColumn = regexp.MustCompile(`^variable(\d+)_(starts|ends)_with$`)
)

// csvLayout maps header names to column indexes.
type csvLayout struct {
	fixed     map[string]int
	patterns  []int
	variables map[int]*[2]int // variable number -> [starts, ends] column, -1 if absent
	order     []int           // variable numbers in header order
}

func readCSVRules(fs afero.Fs, path string) ([]ruleSpec, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.FileOp(err, errors.ErrConfigLoad, "open translations csv", path)
	}
	defer f.Close()

	specs, err := parseCSVRules(f)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "parse translations csv").WithDetail("path", path)
	}
	return specs, nil
}

func parseCSVRules(r io.Reader) ([]ruleSpec, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	layout := newCSVLayout(header)

	var specs []ruleSpec
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !csvYes(layout.cell(record, csvEnabled)) {
			continue
		}
		specs = append(specs, layout.rule(record))
	}
	return specs, nil
}

func newCSVLayout(header []string) *csvLayout {
	layout := &csvLayout{
		fixed:     make(map[string]int),
		variables: make(map[int]*[2]int),
	}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if csvPatternColumn.MatchString(name) {
			layout.patterns = append(layout.patterns, i)
			continue
		}
		if m := csvVariableColumn.FindStringSubmatch(name); m != nil {
			n, _ := strconv.Atoi(m[1])
			cols, ok := layout.variables[n]
			if !ok {
				cols = &[2]int{-1, -1}
				layout.variables[n] = cols
				layout.order = append(layout.order, n)
			}
			if m[2] == "starts" {
				cols[0] = i
			} else {
				cols[1] = i
			}
			continue
		}
		layout.fixed[name] = i
	}
	return layout
}

func (l *csvLayout) cell(record []string, name string) string {
	i, ok := l.fixed[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func (l *csvLayout) rule(record []string) ruleSpec {
	spec := ruleSpec{
		Group:      l.cell(record, csvGroup),
		Print:      l.cell(record, csvPrint),
		Duplicates: l.cell(record, csvDuplicates),
		Repeat:     csvYes(l.cell(record, csvRepeat)),
	}

	for _, i := range l.patterns {
		if i < len(record) && record[i] != "" {
			spec.Patterns = append(spec.Patterns, record[i])
		}
	}

	for _, n := range l.order {
		cols := l.variables[n]
		v := Variable{}
		if cols[0] >= 0 && cols[0] < len(record) {
			v.StartsWith = record[cols[0]]
		}
		if cols[1] >= 0 && cols[1] < len(record) {
			v.EndsWith = record[cols[1]]
		}
		if v.StartsWith == "" && v.EndsWith == "" {
			continue
		}
		spec.Variables = append(spec.Variables, v)
	}
	return spec
}

func csvYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return true
	default:
		return false
	}
}
