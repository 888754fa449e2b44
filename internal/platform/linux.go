package platform

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goplus/pasys/internal/fetch"
	"github.com/goplus/pasys/internal/link"
	"github.com/qiniu/x/log"
)

// linux builds like any Unix but prefers wget and links through the
// installed pkg-config descriptor, which also lists the library's private
// dependencies such as ALSA.
type linux struct {
	*unix
}

func (l *linux) Host() Host { return Linux }

func (l *linux) Fetcher() fetch.Fetcher {
	return l.fetcher(fetch.Wget(l.d.Runner), fetch.Curl(l.d.Runner))
}

// Descriptor returns the pkg-config file make install writes.
func (l *linux) Descriptor(outDir string) string {
	return filepath.Join(outDir, "lib", "pkgconfig", l.f.Descriptor())
}

func (l *linux) Emit(ctx context.Context, bc *Context) (*link.Directives, error) {
	if err := requireFile(l.StaticLibrary(bc.OutDir)); err != nil {
		return nil, err
	}
	pc := l.Descriptor(bc.OutDir)
	if _, err := os.Stat(pc); err != nil {
		log.Warn("no pkg-config descriptor at", pc, "- emitting search path only")
		return l.unix.Emit(ctx, bc)
	}
	flags, err := l.d.PkgConfig.Libs(ctx, pc, true)
	if err != nil {
		return nil, err
	}
	return link.ParseFlags(flags, true), nil
}
