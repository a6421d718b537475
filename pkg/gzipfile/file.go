package gzipfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/iamNilotpal/kit/internal/core/ports"
	kerrors "github.com/iamNilotpal/kit/pkg/errors"
	"github.com/iamNilotpal/kit/pkg/fs"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Extension is the suffix CompressFile appends by default.
const Extension = ".gz"

var localFS ports.FileSystem = fs.NewLocalFileSystem()

// CompressFile gzips srcPath into dstPath and returns dstPath. An empty
// dstPath means srcPath + ".gz". The source file's base name and
// modification time are embedded unless opts sets them. An existing dstPath
// is left alone unless opts.Force is set.
func CompressFile(srcPath, dstPath string, opts Options) (string, error) {
	if srcPath == "" {
		return "", kerrors.InvalidArgument("srcPath", srcPath, "source path is required")
	}
	if dstPath == "" {
		dstPath = srcPath + Extension
	}

	src, err := localFS.Open(srcPath)
	if err != nil {
		return "", kerrors.NewOpError(kerrors.ErrorIO, "open source", err)
	}
	defer src.Close()

	if opts.Name == "" {
		opts.Name = filepath.Base(srcPath)
	}
	if opts.ModTime.IsZero() {
		if info, err := src.Stat(); err == nil {
			opts.ModTime = info.ModTime()
		}
	}

	err = writeAtomically(dstPath, opts.Force, func(dst *os.File) error {
		_, err := Compress(dst, src, opts)
		return err
	})
	if err != nil {
		return "", err
	}

	opts.logger().Info("compressed file", zap.String("src", srcPath), zap.String("dst", dstPath))
	return dstPath, nil
}

// DecompressFile gunzips srcPath into dir and returns the path written. The
// output name is the embedded filename or, failing that, the source name
// without its gzip suffix. An empty dir means the source's directory. An
// existing output file is left alone unless opts.Force is set.
func DecompressFile(srcPath, dir string, opts Options) (string, error) {
	if srcPath == "" {
		return "", kerrors.InvalidArgument("srcPath", srcPath, "source path is required")
	}
	if dir == "" {
		dir = filepath.Dir(srcPath)
	}
	if opts.Name == "" {
		opts.Name = filepath.Base(srcPath)
	}

	src, err := localFS.Open(srcPath)
	if err != nil {
		return "", kerrors.NewOpError(kerrors.ErrorIO, "open source", err)
	}
	defer src.Close()

	r, err := Open(src, opts)
	if err != nil {
		return "", err
	}
	defer r.Close()

	name := safeName(r.Name)
	if name == "" || name == filepath.Base(srcPath) {
		name = filepath.Base(srcPath) + ".out"
	}

	if err := localFS.CreateDir(dir, 0755); err != nil {
		return "", kerrors.NewOpError(kerrors.ErrorIO, "create output dir", err)
	}
	dstPath := filepath.Join(dir, name)

	err = writeAtomically(dstPath, opts.Force, func(dst *os.File) error {
		if _, err := io.Copy(dst, r); err != nil {
			if kerrors.CategoryOf(err) == 0 {
				return kerrors.NewOpError(kerrors.ErrorIO, "gunzip", err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if !r.ModTime.IsZero() {
		if err := os.Chtimes(dstPath, r.ModTime, r.ModTime); err != nil {
			opts.logger().Warn("could not set modification time", zap.String("path", dstPath), zap.Error(err))
		}
	}

	opts.logger().Info("decompressed file",
		zap.String("src", srcPath), zap.String("dst", dstPath), zap.Bool("embeddedName", r.Embedded))
	return dstPath, nil
}

// safeName reduces an embedded name to a single path element so a crafted
// header cannot write outside the target directory.
func safeName(name string) string {
	name = filepath.Base(filepath.FromSlash(name))
	switch name {
	case ".", "..", string(filepath.Separator):
		return ""
	}
	return name
}

// writeAtomically runs write against a temporary file next to dstPath and
// renames it into place only if write and close both succeed. An existing
// dstPath is only replaced when force is set.
func writeAtomically(dstPath string, force bool, write func(*os.File) error) (err error) {
	if !force {
		exists, err := localFS.Exists(dstPath)
		if err != nil {
			return kerrors.NewOpError(kerrors.ErrorIO, "stat output", err)
		}
		if exists {
			return kerrors.NewOpError(kerrors.ErrorIO, "write output", fmt.Errorf("%s: %w", dstPath, os.ErrExist))
		}
	}

	tmpPath := filepath.Join(filepath.Dir(dstPath), fmt.Sprintf(".%s.%s.tmp", filepath.Base(dstPath), uuid.NewString()))

	tmp, err := localFS.CreateFile(tmpPath, false)
	if err != nil {
		return kerrors.NewOpError(kerrors.ErrorIO, "create temp file", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, ignoreMissing(localFS.DeleteFile(tmpPath)))
		}
	}()

	if err := write(tmp); err != nil {
		return multierr.Append(err, tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return kerrors.NewOpError(kerrors.ErrorIO, "close temp file", err)
	}
	if err := localFS.Rename(tmpPath, dstPath); err != nil {
		return kerrors.NewOpError(kerrors.ErrorIO, "rename temp file", err)
	}
	return nil
}

func ignoreMissing(err error) error {
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
