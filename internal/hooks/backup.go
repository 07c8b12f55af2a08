// Package hooks runs the side effects around a translation: backing up the
// original log and executing post-translation commands. Hooks operate on
// the OS filesystem.
package hooks

import (
	"os"

	"github.com/bimmerbailey/logalizer/internal/errors"
	"github.com/otiai10/copy"
)

// Backup copies src to dst unless dst already exists. Parent directories
// of dst are created. It reports whether a copy was made.
func Backup(src, dst string) (bool, error) {
	if dst == "" {
		return false, nil
	}
	if _, err := os.Stat(dst); err == nil {
		return false, nil
	}

	if err := copy.Copy(src, dst, copy.Options{PreserveTimes: true, Sync: true}); err != nil {
		return false, errors.FileOp(err, errors.ErrBackup, "back up log", src).WithDetail("backup", dst)
	}
	return true, nil
}

// Restore copies a previous backup over dst so the log can be translated
// again from its original content. A missing backup is not an error; it
// reports whether a copy was made.
func Restore(backup, dst string) (bool, error) {
	if backup == "" {
		return false, nil
	}
	if _, err := os.Stat(backup); os.IsNotExist(err) {
		return false, nil
	}

	if err := copy.Copy(backup, dst, copy.Options{Sync: true}); err != nil {
		return false, errors.FileOp(err, errors.ErrBackup, "restore log", dst).WithDetail("backup", backup)
	}
	return true, nil
}
