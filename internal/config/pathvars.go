package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Placeholders recognised in paths, commands and wrap text.
const (
	VarFileDirname             = "${fileDirname}"
	VarFileBasename            = "${fileBasename}"
	VarFileBasenameNoExtension = "${fileBasenameNoExtension}"
	VarExeDirname              = "${exeDirname}"
)

// PathVars holds the values substituted for path placeholders.
type PathVars struct {
	Dir       string // directory of the log file
	File      string // log file name with extension
	FileNoExt string // log file name without extension
	ExeDir    string // directory of the running executable
}

// NewPathVars derives path variables from the log file being translated.
func NewPathVars(logFile string) PathVars {
	file := filepath.Base(logFile)
	return PathVars{
		Dir:       filepath.Dir(logFile),
		File:      file,
		FileNoExt: strings.TrimSuffix(file, filepath.Ext(file)),
		ExeDir:    ExeDir(),
	}
}

// ExeDir returns the directory of the running executable, or "." if unknown.
func ExeDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// Expand replaces every placeholder in s.
func (v PathVars) Expand(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return strings.NewReplacer(
		VarFileDirname, v.Dir,
		VarFileBasenameNoExtension, v.FileNoExt,
		VarFileBasename, v.File,
		VarExeDirname, v.ExeDir,
	).Replace(s)
}

// ExpandAll returns a copy of ss with placeholders replaced.
func (v PathVars) ExpandAll(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = v.Expand(s)
	}
	return out
}
