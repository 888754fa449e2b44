// Package probe asks the host's pkg-config whether a usable copy of a library
// is already installed.
package probe

import (
	"context"
	"strings"

	"github.com/goplus/pasys/internal/env"
	"github.com/goplus/pasys/internal/errs"
	"github.com/goplus/pasys/internal/runner"
)

// PkgConfig queries the host pkg-config.
type PkgConfig struct {
	Runner runner.Runner
	Bin    string
}

// NewPkgConfig returns a PkgConfig using $PKG_CONFIG, or "pkg-config".
func NewPkgConfig(r runner.Runner) *PkgConfig {
	return &PkgConfig{Runner: r, Bin: env.PkgConfig()}
}

// ModVersion returns the installed version of pkg.
func (p *PkgConfig) ModVersion(ctx context.Context, pkg string) (string, error) {
	out, err := p.Runner.Output(ctx, runner.Command(p.Bin, "--modversion", pkg))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Libs returns the linker flags for pkg, which may also be the path of a
// .pc file. With static set, private dependencies are included.
func (p *PkgConfig) Libs(ctx context.Context, pkg string, static bool) ([]string, error) {
	args := []string{"--libs"}
	if static {
		args = append(args, "--static")
	}
	out, err := p.Runner.Output(ctx, runner.Command(p.Bin, append(args, pkg)...))
	if err != nil {
		return nil, err
	}
	return strings.Fields(string(out)), nil
}

// Result is the outcome of a probe.
type Result struct {
	Found   bool
	Version string   // installed version, if pkg-config knows the package
	Flags   []string // --libs of the installed package when Found
}

// Prober looks for an installed package at or above a minimum version.
type Prober struct {
	PkgConfig *PkgConfig
}

// New returns a Prober backed by the host pkg-config.
func New(r runner.Runner) *Prober {
	return &Prober{PkgConfig: NewPkgConfig(r)}
}

// Probe reports whether pkg >= min is installed. Lookup failures are
// returned as errs.ErrProbe alongside a not-found Result; callers fall back to
// a source build.
func (p *Prober) Probe(ctx context.Context, pkg, min string) (Result, error) {
	version, err := p.PkgConfig.ModVersion(ctx, pkg)
	if err != nil {
		return Result{}, errs.New(errs.ErrProbe, "probe "+pkg, err)
	}
	if version == "" || strings.ContainsAny(version, " \n") {
		return Result{}, errs.Newf(errs.ErrProbe, "probe "+pkg, "ambiguous version %q", version)
	}
	if !AtLeast(version, min) {
		return Result{Version: version}, nil
	}
	flags, err := p.PkgConfig.Libs(ctx, pkg, false)
	if err != nil {
		return Result{Version: version}, errs.New(errs.ErrProbe, "probe "+pkg, err)
	}
	return Result{Found: true, Version: version, Flags: flags}, nil
}
