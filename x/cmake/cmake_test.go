package cmake

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/goplus/pasys/internal/errs"
	"github.com/goplus/pasys/internal/runner"
	"github.com/goplus/pasys/internal/runner/runnertest"
)

func TestDefinesArgs(t *testing.T) {
	c := New(nil, "", "", "")
	c.Define("FOO", "BAR")
	c.DefineBool("ENABLE", true)
	c.DefineBool("DISABLE", false)

	want := []string{"-DDISABLE:BOOL=OFF", "-DENABLE:BOOL=ON", "-DFOO:STRING=BAR"}
	if got := c.definesArgs(); !slices.Equal(got, want) {
		t.Errorf("definesArgs = %v, want %v", got, want)
	}
}

func TestDefinesArgsEmpty(t *testing.T) {
	c := New(nil, "", "", "")
	if args := c.definesArgs(); args != nil {
		t.Errorf("definesArgs on empty = %v, want nil", args)
	}
}

func TestStaticTargetCommands(t *testing.T) {
	tmp := t.TempDir()
	buildDir := filepath.Join(tmp, "build")
	f := runnertest.New().OK("cmake")

	c := New(f, "/src/portaudio", buildDir, tmp)
	c.BuildType("Release")
	c.Define("CMAKE_C_FLAGS", "-DPA_WDMKS_NO_KSGUID_LIB")

	ctx := context.Background()
	if err := c.Configure(ctx); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := c.Build(ctx, "portaudio_static"); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if fi, err := os.Stat(buildDir); err != nil || !fi.IsDir() {
		t.Errorf("build dir not created: %v", err)
	}

	configure := strings.Join(f.Calls[0].Args, " ")
	for _, want := range []string{
		"-S /src/portaudio -B " + buildDir,
		"-DCMAKE_BUILD_TYPE:STRING=Release",
		"-DCMAKE_C_FLAGS:STRING=-DPA_WDMKS_NO_KSGUID_LIB",
		"-DCMAKE_INSTALL_PREFIX:STRING=" + tmp,
	} {
		if !strings.Contains(configure, want) {
			t.Errorf("configure %q missing %q", configure, want)
		}
	}
	want := []string{"--build", buildDir, "--config", "Release", "--target", "portaudio_static"}
	if got := f.Calls[1].Args; !slices.Equal(got, want) {
		t.Errorf("build args = %v, want %v", got, want)
	}
}

func TestBuildFailure(t *testing.T) {
	f := runnertest.New().Fail("cmake", 1)
	c := New(f, "", t.TempDir(), "")
	if err := c.Build(context.Background(), ""); !errors.Is(err, errs.ErrToolExit) {
		t.Fatalf("Build error = %v, want ErrToolExit", err)
	}
}

func TestConfigureBuildE2E(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("expects a Unix static library name")
	}
	for _, bin := range []string{"cmake", "cc"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not found in PATH", bin)
		}
	}

	tmp := t.TempDir()
	installDir := filepath.Join(tmp, "install")
	buildDir := filepath.Join(tmp, "build")

	source, err := filepath.Abs(filepath.Join("testdata", "project"))
	if err != nil {
		t.Fatal(err)
	}
	c := New(runner.New(), source, buildDir, installDir)
	c.BuildType("Release")
	c.Define("FOO", "BAR")
	c.DefineBool("ENABLE", true)
	c.DefineBool("DISABLE", false)

	ctx := context.Background()
	if err := c.Configure(ctx); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := c.Build(ctx, "dummy_static"); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := os.Stat(filepath.Join(buildDir, "libdummy.a")); err != nil {
		t.Errorf("static library not built: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(buildDir, "CMakeCache.txt"))
	if err != nil {
		t.Fatalf("read CMakeCache.txt: %v", err)
	}
	cache := string(data)
	for _, want := range []string{
		"FOO:STRING=BAR",
		"ENABLE:BOOL=ON",
		"DISABLE:BOOL=OFF",
		"CMAKE_BUILD_TYPE:STRING=Release",
		"CMAKE_INSTALL_PREFIX",
	} {
		if !strings.Contains(cache, want) {
			t.Errorf("cache missing %q", want)
		}
	}
}
