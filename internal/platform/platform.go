// Package platform holds the per-host ways of building a library from source
// and reporting how to link it. The strategy is chosen once, at run time,
// from the detected host.
package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goplus/pasys/formula"
	"github.com/goplus/pasys/internal/archive"
	"github.com/goplus/pasys/internal/errs"
	"github.com/goplus/pasys/internal/fetch"
	"github.com/goplus/pasys/internal/link"
	"github.com/goplus/pasys/internal/probe"
	"github.com/goplus/pasys/internal/runner"
)

// Host is the family of the machine running the build.
type Host int

const (
	UnixGeneric Host = iota
	Linux
	Windows
)

var hostNames = [...]string{
	UnixGeneric: "unix",
	Linux:       "linux",
	Windows:     "windows",
}

func (h Host) String() string {
	if h < 0 || int(h) >= len(hostNames) {
		return fmt.Sprintf("Host(%d)", int(h))
	}
	return hostNames[h]
}

// Detect maps a GOOS value to its host family.
func Detect(goos string) Host {
	switch goos {
	case "linux":
		return Linux
	case "windows":
		return Windows
	}
	return UnixGeneric
}

// ParseHost parses a name returned by Host.String.
func ParseHost(s string) (Host, error) {
	for h, name := range hostNames {
		if name == s {
			return Host(h), nil
		}
	}
	return 0, errs.Newf(errs.ErrMalformedInput, "platform", "unknown platform %q", s)
}

// Context is the immutable description of one resolution.
type Context struct {
	OutDir  string // absolute install prefix
	WorkDir string // absolute directory the archive is downloaded and unpacked in
	Host    Host
	Target  string // cross-compilation triple, empty for a native build
	Arch    string // GOARCH the artifact is built for
}

// Deps are the collaborators a Strategy uses.
type Deps struct {
	Runner    runner.Runner
	PkgConfig *probe.PkgConfig
	// Fetcher overrides the host's default download tool.
	Fetcher fetch.Fetcher
	// LookPath resolves download tools; nil means execabs.LookPath.
	LookPath fetch.LookPathFunc
}

// Strategy builds and emits link directives the way one host family does.
type Strategy interface {
	Host() Host
	// Fetcher returns the downloader for the source archive.
	Fetcher() fetch.Fetcher
	// StaticLibrary returns where the finished static library lives.
	StaticLibrary(outDir string) string
	// Build unpacks archivePath in bc.WorkDir and installs into bc.OutDir.
	Build(ctx context.Context, bc *Context, archivePath string) error
	// Emit returns the directives for linking the library in bc.OutDir.
	Emit(ctx context.Context, bc *Context) (*link.Directives, error)
}

// New returns the Strategy for h.
func New(h Host, f *formula.Formula, d Deps) Strategy {
	if d.PkgConfig == nil {
		d.PkgConfig = probe.NewPkgConfig(d.Runner)
	}
	u := &unix{f: f, d: d}
	switch h {
	case Linux:
		return &linux{unix: u}
	case Windows:
		return &windows{f: f, d: d}
	}
	return u
}

// unpack extracts archivePath into workDir and returns the source folder.
// A folder left behind by an earlier failed attempt is removed first.
func unpack(f *formula.Formula, workDir, archivePath string) (string, error) {
	src := filepath.Join(workDir, f.Source.Folder)
	if err := os.RemoveAll(src); err != nil {
		return "", errs.FS("clean "+src, err)
	}
	if err := archive.Extract(archivePath, workDir); err != nil {
		return "", err
	}
	if fi, err := os.Stat(src); err != nil || !fi.IsDir() {
		return "", errs.Newf(errs.ErrFilesystem, "extract", "%s did not contain %s/", filepath.Base(archivePath), f.Source.Folder)
	}
	return src, nil
}

// step tags a plain error returned by a build helper as a filesystem error.
// Errors that already carry a kind pass through.
func step(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *errs.Error
	if errors.As(err, &e) {
		return err
	}
	return errs.FS(op, err)
}

func requireFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return errs.New(errs.ErrFilesystem, "emit", fmt.Errorf("missing artifact %s, the build did not complete: %w", path, err))
	}
	return nil
}
