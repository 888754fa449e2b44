package platform

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/goplus/pasys/formula"
	"github.com/goplus/pasys/internal/errs"
	"github.com/goplus/pasys/internal/fetch"
	"github.com/goplus/pasys/internal/link"
	"github.com/goplus/pasys/x/cmake"
	"github.com/qiniu/x/log"
)

// windows builds the static CMake target and renames its arch-suffixed
// output to the canonical <name>.lib.
type windows struct {
	f *formula.Formula
	d Deps
}

func (w *windows) Host() Host { return Windows }

func (w *windows) Fetcher() fetch.Fetcher {
	if w.d.Fetcher != nil {
		return w.d.Fetcher
	}
	return &fetch.Lazy{LookPath: w.d.LookPath, Tools: []*fetch.Tool{fetch.Curl(w.d.Runner)}}
}

func (w *windows) StaticLibrary(outDir string) string {
	return filepath.Join(outDir, w.f.WindowsLibrary())
}

// Build leaves the extracted sources and the CMake build tree in place;
// CMake manages its own intermediate directory.
func (w *windows) Build(ctx context.Context, bc *Context, archivePath string) error {
	produced, ok := w.f.CMake.Outputs[bc.Arch]
	if !ok {
		return errs.Newf(errs.ErrMalformedInput, "cmake", "no %s library name known for arch %q", w.f.CMake.Target, bc.Arch)
	}
	if bc.Target != "" {
		log.Warn("cross target", bc.Target, "is ignored by the CMake build")
	}
	src, err := unpack(w.f, bc.WorkDir, archivePath)
	if err != nil {
		return err
	}

	c := cmake.New(w.d.Runner, src, filepath.Join(bc.OutDir, "build"), bc.OutDir)
	c.BuildType("Release")
	c.Define("CMAKE_ARCHIVE_OUTPUT_DIRECTORY_DEBUG", bc.OutDir)
	c.Define("CMAKE_ARCHIVE_OUTPUT_DIRECTORY_RELEASE", bc.OutDir)
	c.DefineBool("CMAKE_POSITION_INDEPENDENT_CODE", true)
	if len(w.f.CMake.CFlags) > 0 {
		c.Define("CMAKE_C_FLAGS", strings.Join(w.f.CMake.CFlags, " "))
	}
	log.Info("cmake configure", w.f.Name, "prefix", bc.OutDir)
	if err := c.Configure(ctx); err != nil {
		return step("cmake configure", err)
	}
	log.Info("cmake build", w.f.CMake.Target)
	if err := c.Build(ctx, w.f.CMake.Target); err != nil {
		return step("cmake build", err)
	}
	return w.rename(bc.OutDir, produced)
}

func (w *windows) rename(outDir, produced string) error {
	dst := w.StaticLibrary(outDir)
	for _, dir := range []string{outDir, filepath.Join(outDir, "Release"), filepath.Join(outDir, "Debug")} {
		src := filepath.Join(dir, produced)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := os.Rename(src, dst); err != nil {
			return errs.FS("rename", err)
		}
		return nil
	}
	return errs.Newf(errs.ErrFilesystem, "rename", "%s was not produced under %s", produced, outDir)
}

// Emit relies on the canonical file name produced by rename; only the
// search path is reported.
func (w *windows) Emit(ctx context.Context, bc *Context) (*link.Directives, error) {
	if err := requireFile(w.StaticLibrary(bc.OutDir)); err != nil {
		return nil, err
	}
	return &link.Directives{SearchPaths: []string{bc.OutDir}, Static: true}, nil
}
