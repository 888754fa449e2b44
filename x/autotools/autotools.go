// Package autotools wraps the classic configure/make/make-install workflow.
package autotools

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goplus/pasys/internal/runner"
)

// StaticPIC returns the configure flags for a static-only, position
// independent build.
func StaticPIC() []string {
	return []string{"--disable-shared", "--enable-static", "--with-pic"}
}

// AutoTools drives Autotools-style builds.
type AutoTools struct {
	runner     runner.Runner
	sourceDir  string
	buildDir   string
	installDir string
}

// New returns a ready-to-use AutoTools. An empty buildDir builds in the
// source tree.
func New(r runner.Runner, sourceDir, buildDir, installDir string) *AutoTools {
	return &AutoTools{
		runner:     r,
		sourceDir:  sourceDir,
		buildDir:   buildDir,
		installDir: installDir,
	}
}

// Configure runs <sourceDir>/configure inside the build directory.
// --prefix is prepended automatically when installDir is set.
// Extra flags are appended after --prefix.
func (a *AutoTools) Configure(ctx context.Context, args ...string) error {
	dir := a.workDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	flags := make([]string, 0, 1+len(args))
	if a.installDir != "" {
		flags = append(flags, "--prefix="+a.installDir)
	}
	return a.run(ctx, filepath.Join(a.sourceDir, "configure"), append(flags, args...))
}

// Build runs "make" with optional extra arguments.
func (a *AutoTools) Build(ctx context.Context, args ...string) error {
	return a.run(ctx, "make", args)
}

// Install runs "make install" with optional extra arguments appended.
func (a *AutoTools) Install(ctx context.Context, args ...string) error {
	return a.run(ctx, "make", append([]string{"install"}, args...))
}

func (a *AutoTools) workDir() string {
	if a.buildDir == "" {
		return a.sourceDir
	}
	return a.buildDir
}

func (a *AutoTools) run(ctx context.Context, name string, args []string) error {
	return a.runner.Run(ctx, runner.Command(name, args...).InDir(a.workDir()))
}
