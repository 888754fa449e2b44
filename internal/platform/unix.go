package platform

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goplus/pasys/formula"
	"github.com/goplus/pasys/internal/errs"
	"github.com/goplus/pasys/internal/fetch"
	"github.com/goplus/pasys/internal/link"
	"github.com/goplus/pasys/internal/triple"
	"github.com/goplus/pasys/x/autotools"
	"github.com/qiniu/x/log"
)

// unix builds with configure/make on any Unix-like host.
type unix struct {
	f *formula.Formula
	d Deps
}

func (u *unix) Host() Host { return UnixGeneric }

func (u *unix) Fetcher() fetch.Fetcher {
	return u.fetcher(fetch.Curl(u.d.Runner), fetch.Wget(u.d.Runner))
}

func (u *unix) fetcher(tools ...*fetch.Tool) fetch.Fetcher {
	if u.d.Fetcher != nil {
		return u.d.Fetcher
	}
	return &fetch.Lazy{LookPath: u.d.LookPath, Tools: tools}
}

func (u *unix) StaticLibrary(outDir string) string {
	return filepath.Join(outDir, "lib", u.f.Archive())
}

func (u *unix) Build(ctx context.Context, bc *Context, archivePath string) error {
	src, err := unpack(u.f, bc.WorkDir, archivePath)
	if err != nil {
		return err
	}

	at := autotools.New(u.d.Runner, src, "", bc.OutDir)
	args := append(autotools.StaticPIC(), triple.ConfigureFlags(bc.Target)...)
	args = append(args, u.f.Configure...)
	log.Info("configure", u.f.Name, "prefix", bc.OutDir, "target", targetName(bc.Target))
	if err := at.Configure(ctx, args...); err != nil {
		return step("configure", err)
	}
	log.Info("make")
	if err := at.Build(ctx); err != nil {
		return step("make", err)
	}
	log.Info("make install")
	if err := at.Install(ctx); err != nil {
		return step("make install", err)
	}

	if err := os.RemoveAll(src); err != nil {
		return errs.FS("cleanup", err)
	}
	if err := os.Remove(archivePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errs.FS("cleanup", err)
	}
	return nil
}

// Emit returns an explicit search path and static library name.
func (u *unix) Emit(ctx context.Context, bc *Context) (*link.Directives, error) {
	if err := requireFile(u.StaticLibrary(bc.OutDir)); err != nil {
		return nil, err
	}
	return &link.Directives{
		SearchPaths: []string{filepath.Join(bc.OutDir, "lib")},
		Libraries:   []string{u.f.Name},
		Static:      true,
	}, nil
}

func targetName(t string) string {
	if t == "" {
		return "native"
	}
	return t
}
