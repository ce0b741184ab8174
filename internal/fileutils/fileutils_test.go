package fileutils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileAndDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.csv")))
	assert.True(t, DirectoryExists(dir))
	assert.False(t, DirectoryExists(file))
}

func TestAtomicWrite_CreatesFileAndDirs(t *testing.T) {
	target := filepath.Join(t.TempDir(), "processed", "out.csv")

	err := AtomicWrite(target, AtomicWriteOptions{CreateDirs: true, DirPerm: 0750, FilePerm: 0644},
		func(w io.Writer) error {
			_, err := io.WriteString(w, "hello")
			return err
		})
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
	assertNoTempFiles(t, filepath.Dir(target))
}

func TestAtomicWrite_MissingDirWithoutCreate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nope", "out.csv")

	err := AtomicWrite(target, AtomicWriteOptions{}, func(w io.Writer) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory does not exist")
	assert.False(t, FileExists(target))
}

func TestAtomicWrite_FailureKeepsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(target, []byte("previous"), 0644))

	boom := errors.New("boom")
	err := AtomicWrite(target, AtomicWriteOptions{CreateDirs: true}, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(content))
	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
