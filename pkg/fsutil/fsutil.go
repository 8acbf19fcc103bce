// Package fsutil provides filesystem convenience helpers over an afero
// filesystem, so callers (and tests) can swap the OS filesystem for an
// in-memory one.
package fsutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/kitmi/k-utils/pkg/errors"
)

// OsFs is the default filesystem used by the package-level helpers'
// callers; it is exposed so application code does not need to import
// afero just to get the real filesystem.
var OsFs = afero.NewOsFs()

// Exists reports whether a path exists at all.
func Exists(fs afero.Fs, path string) (bool, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path)
	}
	return exists, nil
}

// IsDir reports whether a path exists and is a directory.
func IsDir(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path)
	}
	return info.IsDir(), nil
}

// IsEmptyDir reports whether a directory exists and contains no entries.
func IsEmptyDir(fs afero.Fs, path string) (bool, error) {
	entries, err := afero.ReadDir(fs, path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read directory %s", path)
	}
	return len(entries) == 0, nil
}

// EnsureDir creates a directory and any missing parents.
func EnsureDir(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(path, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", path)
	}
	return nil
}

// EmptyDir removes every entry of a directory, creating it if missing.
func EmptyDir(fs afero.Fs, path string) error {
	if err := EnsureDir(fs, path); err != nil {
		return err
	}
	entries, err := afero.ReadDir(fs, path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read directory %s", path)
	}
	for _, entry := range entries {
		if err := fs.RemoveAll(filepath.Join(path, entry.Name())); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot remove %s", entry.Name())
		}
	}
	return nil
}

// CopyFile copies a regular file, creating the destination's parent
// directories as needed. The destination is overwritten if present.
func CopyFile(fs afero.Fs, src, dst string) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", src)
	}
	if err := EnsureDir(fs, filepath.Dir(dst)); err != nil {
		return err
	}
	if err := afero.WriteFile(fs, dst, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dst)
	}
	return nil
}

// WriteFileAtomic writes data to a temporary sibling file first and
// renames it into place, so readers never observe a partial write.
func WriteFileAtomic(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(fs, dir); err != nil {
		return err
	}

	tmp, err := afero.TempFile(fs, dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot close %s", tmpName)
	}
	if err := fs.Chmod(tmpName, perm); err != nil {
		_ = fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot chmod %s", tmpName)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot rename %s to %s", tmpName, path)
	}
	return nil
}

// ReadJSON decodes a JSON file into out.
func ReadJSON(fs afero.Fs, path string, out any) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "invalid JSON in %s", path)
	}
	return nil
}

// WriteJSON writes a value as indented JSON, atomically.
func WriteJSON(fs afero.Fs, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "cannot marshal value for %s", path)
	}
	return WriteFileAtomic(fs, path, append(data, '\n'), 0644)
}
