// Package archivetest builds small source tarballs for tests.
package archivetest

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

// Files maps slash-separated archive paths to contents. Paths ending in "/"
// are directories.
type Files map[string]string

// WriteTarGz writes files as a gzip compressed tarball at path.
func WriteTarGz(t testing.TB, path string, files Files) {
	t.Helper()
	write(t, path, files, func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriter(w), nil
	})
}

// WriteTarXz writes files as an xz compressed tarball at path.
func WriteTarXz(t testing.TB, path string, files Files) {
	t.Helper()
	write(t, path, files, func(w io.Writer) (io.WriteCloser, error) {
		return xz.NewWriter(w)
	})
}

func write(t testing.TB, path string, files Files, compress func(io.Writer) (io.WriteCloser, error)) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cw, err := compress(f)
	if err != nil {
		t.Fatal(err)
	}
	tw := tar.NewWriter(cw)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		body := files[name]
		hdr := &tar.Header{Name: name, Mode: 0o644, Size: int64(len(body)), Typeflag: tar.TypeReg}
		if strings.HasSuffix(name, "/") {
			hdr = &tar.Header{Name: name, Mode: 0o755, Typeflag: tar.TypeDir}
		} else if strings.HasSuffix(name, "configure") {
			hdr.Mode = 0o755
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if hdr.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(body)); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := cw.Close(); err != nil {
		t.Fatal(err)
	}
}
