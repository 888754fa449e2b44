// Package archive unpacks source tarballs.
package archive

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goplus/pasys/internal/errs"
	"github.com/ulikunitz/xz"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// Extract unpacks the tar archive at src into dir. Plain, gzip and xz
// compressed tarballs are recognised by content, not by file name. Entries
// that would land outside dir are rejected.
func Extract(src, dir string) error {
	f, err := os.Open(src)
	if err != nil {
		return errs.FS("extract", err)
	}
	defer f.Close()

	r, err := decompress(bufio.NewReader(f))
	if err != nil {
		return errs.FS("extract "+src, err)
	}
	if err := untar(r, dir); err != nil {
		return errs.FS("extract "+src, err)
	}
	return nil
}

func decompress(br *bufio.Reader) (io.Reader, error) {
	head, _ := br.Peek(len(xzMagic))
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return gzip.NewReader(br)
	case bytes.HasPrefix(head, xzMagic):
		return xz.NewReader(br)
	}
	return br, nil
}

func untar(r io.Reader, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if root, err = filepath.EvalSymlinks(root); err != nil {
		return err
	}
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		target, err := within(root, hdr.Name)
		if err != nil {
			return err
		}
		mode := os.FileMode(hdr.Mode).Perm()
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := inside(root, hdr.Name, target); err != nil {
				return err
			}
			if err := os.MkdirAll(target, mode|0o700); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := inside(root, hdr.Name, target); err != nil {
				return err
			}
			if err := writeFile(target, tr, mode); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := symlink(root, hdr, target); err != nil {
				return err
			}
		default:
			// pax headers, hard links and devices are not needed to build
		}
	}
}

// symlink creates target -> hdr.Linkname once both the link's directory and
// the place it points at resolve inside root on disk.
func symlink(root string, hdr *tar.Header, target string) error {
	if filepath.IsAbs(hdr.Linkname) {
		return fmt.Errorf("symlink %s points outside the archive", hdr.Name)
	}
	parent := filepath.Dir(target)
	if err := inside(root, hdr.Name, parent); err != nil {
		return err
	}
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}
	realParent, err := filepath.EvalSymlinks(parent)
	if err != nil {
		return err
	}
	if err := inside(root, hdr.Name, filepath.Join(realParent, filepath.FromSlash(hdr.Linkname))); err != nil {
		return err
	}
	os.Remove(target)
	return os.Symlink(hdr.Linkname, target)
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	// A regular entry replaces a link of the same name instead of writing
	// through it.
	if fi, err := os.Lstat(target); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(target); err != nil {
			return err
		}
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode|0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func within(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
		return "", fmt.Errorf("entry %q escapes %s", name, root)
	}
	return target, nil
}

// inside resolves the symlinks along path, as far as it exists, and
// rejects it unless the result stays under root.
func inside(root, name, path string) error {
	resolved, err := resolve(path)
	if err != nil {
		return err
	}
	if resolved != root && !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return fmt.Errorf("entry %q escapes %s through a symlink", name, root)
	}
	return nil
}

// resolve evaluates the symlinks in the longest existing prefix of path and
// appends the rest unchanged.
func resolve(path string) (string, error) {
	var rest []string
	for {
		resolved, err := filepath.EvalSymlinks(path)
		if err == nil {
			for i := len(rest) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, rest[i])
			}
			return resolved, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", err
		}
		rest = append(rest, filepath.Base(path))
		path = parent
	}
}
