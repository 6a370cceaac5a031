// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fileutil rewrites files in place, keeping the original beside them.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// BackupSuffix is appended to the original file name when a file is replaced.
const BackupSuffix = ".old"

// Replace writes content to a temporary file beside path. If changed, path
// is renamed to path+BackupSuffix and the temporary file takes its place;
// otherwise the temporary file is discarded. It returns the backup path, or
// "" when nothing was replaced.
func Replace(path, content string, changed bool) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing temporary file: %w", err)
	}

	if !changed {
		return "", os.Remove(tmpName)
	}

	if info, err := os.Stat(path); err == nil {
		os.Chmod(tmpName, info.Mode().Perm())
	}

	backup := path + BackupSuffix
	if err := os.Rename(path, backup); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("saving backup: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("replacing %s: %w", path, err)
	}
	return backup, nil
}
