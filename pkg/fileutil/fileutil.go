package fileutil

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/claudectl/claudectl/internal/errors"
)

// Exists returns true if the path exists (file or directory).
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir returns true if the path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsReadable returns true if the path can be opened for reading.
func IsReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// IsWritable returns true if the path can be written to.
// For directories this probes by creating and removing a temp file.
func IsWritable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		probe, err := os.CreateTemp(path, ".claudectl-probe-*")
		if err != nil {
			return false
		}
		name := probe.Name()
		probe.Close()
		os.Remove(name)
		return true
	}
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// CopyFile copies a single file from src to dst.
// If mode is zero, the source file's permissions are preserved;
// otherwise the destination is created with the given mode.
func CopyFile(src, dst string, mode fs.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	if mode == 0 {
		info, err := srcFile.Stat()
		if err != nil {
			return errors.Wrap(err, "stat source file")
		}
		mode = info.Mode().Perm()
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return errors.Wrap(err, "creating destination file")
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		return errors.Wrap(err, "closing destination file")
	}

	// OpenFile honors umask; chmod to make the requested mode stick
	if err := os.Chmod(dst, mode); err != nil {
		return errors.Wrap(err, "setting permissions")
	}

	return nil
}

// DirSize returns the total size in bytes of all regular files under dir,
// recursively. Entries that cannot be read are skipped; the returned size
// covers everything that could be summed.
func DirSize(dir string) (int64, error) {
	var total int64

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip unreadable entries rather than aborting the walk
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})

	return total, err
}

// Remove deletes the path, recursively if it is a directory.
func Remove(path string) error {
	return errors.Wrapf(os.RemoveAll(path), "removing %s", path)
}
