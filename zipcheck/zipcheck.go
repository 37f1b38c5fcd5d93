// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package zipcheck inspects zip archives for required files.
package zipcheck

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/z5labs/hostconf/internal/try"
)

// EscapingEntryError occurs if an archive entry's name would resolve to
// a path outside of the extraction directory.
type EscapingEntryError struct {
	Name string
}

// Error implements the error interface.
func (e EscapingEntryError) Error() string {
	return fmt.Sprintf("archive entry escapes extraction directory: %s", e.Name)
}

// ContainsRequiredFiles reports whether every filename in required is
// present among the regular files at the top level of the archive at
// zipPath. The archive is extracted into a temporary directory which is
// always removed before returning, on success and failure alike.
func ContainsRequiredFiles(zipPath string, required []string) (_ bool, err error) {
	dir, err := os.MkdirTemp("", "zipcheck-")
	if err != nil {
		return false, err
	}
	defer func() {
		rerr := os.RemoveAll(dir)
		if err == nil {
			err = rerr
		}
	}()

	err = extract(zipPath, dir)
	if err != nil {
		return false, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}

	found := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		found[entry.Name()] = struct{}{}
	}

	for _, name := range required {
		if _, ok := found[name]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func extract(zipPath, dir string) (err error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer try.Close(&err, zr)

	for _, f := range zr.File {
		err := extractFile(f, dir)
		if err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, dir string) (err error) {
	name := filepath.Join(dir, filepath.FromSlash(f.Name))
	if !strings.HasPrefix(name, filepath.Clean(dir)+string(os.PathSeparator)) {
		return EscapingEntryError{Name: f.Name}
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(name, 0o755)
	}

	err = os.MkdirAll(filepath.Dir(name), 0o755)
	if err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer try.Close(&err, rc)

	w, err := os.Create(name)
	if err != nil {
		return err
	}
	defer try.Close(&err, w)

	_, err = io.Copy(w, rc)
	return err
}
