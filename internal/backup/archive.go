package backup

import (
	"archive/tar"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/claudectl/claudectl/internal/errors"
)

// writeArchive packs the contents of srcDir into a tar.gz at dstPath.
// Entries are stored relative to srcDir, so extraction reproduces the
// backup contents directly in the target directory.
func writeArchive(srcDir, dstPath string) (err error) {
	out, err := os.Create(dstPath)
	if err != nil {
		return errors.Wrap(err, "creating archive file")
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "closing archive file")
		}
		if err != nil {
			os.Remove(dstPath)
		}
	}()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == srcDir {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return errors.Wrap(err, "writing archive entries")
	}

	if err := tw.Close(); err != nil {
		return errors.Wrap(err, "closing tar stream")
	}
	if err := gz.Close(); err != nil {
		return errors.Wrap(err, "closing gzip stream")
	}
	return nil
}

// extractArchive unpacks a tar.gz into dstDir. Entries that would escape
// dstDir are rejected outright.
func extractArchive(srcPath, dstDir string) error {
	in, err := os.Open(srcPath)
	if err != nil {
		return errors.Wrap(err, "opening archive")
	}
	defer in.Close()

	gz, err := gzip.NewReader(in)
	if err != nil {
		return errors.Wrap(err, "reading gzip stream")
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading tar stream")
		}

		name := filepath.Clean(filepath.FromSlash(hdr.Name))
		if filepath.IsAbs(name) || name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) {
			return errors.Newf("archive entry escapes extraction root: %s", hdr.Name)
		}
		target := filepath.Join(dstDir, name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, fs.FileMode(hdr.Mode).Perm()); err != nil {
				return errors.Wrapf(err, "creating directory %s", name)
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return errors.Wrapf(err, "creating parent for %s", name)
			}
			f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fs.FileMode(hdr.Mode).Perm())
			if err != nil {
				return errors.Wrapf(err, "creating file %s", name)
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return errors.Wrapf(err, "extracting %s", name)
			}
			if err := f.Close(); err != nil {
				return errors.Wrapf(err, "closing %s", name)
			}

		default:
			// Symlinks and special files never appear in backups we write.
		}
	}
}
