package ports

import "os"

// FileSystem is the subset of filesystem operations the file helpers need.
type FileSystem interface {
	Open(filePath string) (*os.File, error)
	CreateFile(filePath string, force bool) (*os.File, error)
	CreateDir(dirPath string, permission os.FileMode) error
	Rename(oldPath, newPath string) error
	DeleteFile(filePath string) error
	Exists(filePath string) (bool, error)
}
