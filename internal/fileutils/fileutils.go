// Package fileutils holds the file operations shared by the reader and writers.
package fileutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileExists reports whether filePath exists and is not a directory.
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists reports whether dirPath exists and is a directory.
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates dirPath and its parents if needed.
func EnsureDirectoryExists(dirPath string, perm os.FileMode) error {
	if DirectoryExists(dirPath) {
		return nil
	}
	if err := os.MkdirAll(dirPath, perm); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// AtomicWriteOptions tunes AtomicWrite.
type AtomicWriteOptions struct {
	// CreateDirs creates the parent directory when it is missing.
	CreateDirs bool
	DirPerm    os.FileMode
	FilePerm   os.FileMode
}

// AtomicWrite streams content produced by write into a temporary file next to
// filePath and renames it into place once write and the flush to disk succeed.
// On any failure the temporary file is removed and an existing filePath is left
// untouched.
func AtomicWrite(filePath string, opts AtomicWriteOptions, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(filePath)
	if opts.CreateDirs {
		if err := EnsureDirectoryExists(dir, opts.DirPerm); err != nil {
			return err
		}
	} else if !DirectoryExists(dir) {
		return fmt.Errorf("directory does not exist: %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to flush temporary file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if opts.FilePerm != 0 {
		if err = os.Chmod(tmpName, opts.FilePerm); err != nil {
			return fmt.Errorf("failed to set file permissions: %w", err)
		}
	}
	if err = os.Rename(tmpName, filePath); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}
