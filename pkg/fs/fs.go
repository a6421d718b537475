// Package fs adapts the local filesystem to ports.FileSystem.
package fs

import (
	"errors"
	"fmt"
	"os"

	"github.com/iamNilotpal/kit/internal/core/ports"
)

var _ ports.FileSystem = (*LocalFileSystem)(nil)

type LocalFileSystem struct{}

func NewLocalFileSystem() *LocalFileSystem {
	return &LocalFileSystem{}
}

// Opens a file for reading.
func (lfs *LocalFileSystem) Open(filePath string) (*os.File, error) {
	return os.Open(filePath)
}

// Creates a file. Returns an error if the file already exists and force is false.
func (lfs *LocalFileSystem) CreateFile(filePath string, force bool) (*os.File, error) {
	if !force {
		return os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	}
	return os.Create(filePath)
}

// Creates a directory and any missing parents. An existing directory is not an error.
func (lfs *LocalFileSystem) CreateDir(dirPath string, permission os.FileMode) error {
	stat, err := os.Stat(dirPath)
	if err == nil {
		if !stat.IsDir() {
			return fmt.Errorf("existing path %s isn't a directory", dirPath)
		}
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(dirPath, permission); err != nil {
		return fmt.Errorf("error in creating all directories %s: %w", dirPath, err)
	}
	return nil
}

// Renames a file, replacing the destination if present.
func (lfs *LocalFileSystem) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// Deletes a file.
func (lfs *LocalFileSystem) DeleteFile(filePath string) error {
	return os.Remove(filePath)
}

// Checks if a file exists or not.
func (lfs *LocalFileSystem) Exists(file string) (bool, error) {
	_, err := os.Stat(file)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
