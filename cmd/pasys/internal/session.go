package internal

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/goplus/pasys/formula"
	"github.com/goplus/pasys/internal/env"
	"github.com/goplus/pasys/internal/errs"
	"github.com/goplus/pasys/internal/platform"
	"github.com/goplus/pasys/internal/recipe"
	"github.com/goplus/pasys/internal/runner"
	"github.com/goplus/pasys/internal/triple"
)

// session is everything a command resolves from flags and environment
// before doing any work.
type session struct {
	formula  *formula.Formula
	bc       *platform.Context
	runner   *runner.Exec
	strategy platform.Strategy
}

func (o *options) dir() (string, error) {
	dir := o.workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errs.FS("getwd", err)
		}
		dir = wd
	}
	return filepath.Abs(dir)
}

func (o *options) loadFormula() (*formula.Formula, error) {
	if o.formula == "" {
		return formula.PortAudio(), nil
	}
	return recipe.Load(o.formula)
}

func (o *options) host() (platform.Host, error) {
	if o.platform == "" {
		return platform.Detect(runtime.GOOS), nil
	}
	return platform.ParseHost(o.platform)
}

// variant names the build an output directory holds, e.g. "amd64-linux" or
// "arm-linux-arm-linux-gnueabihf" when cross compiling.
func variant(host platform.Host, arch, target string) string {
	m := formula.Matrix{Require: map[string][]string{
		"arch": {arch},
		"os":   {host.String()},
	}}
	if target != "" {
		m.Require["target"] = []string{target}
	}
	return m.String()
}

// newSession infers the target triple first, so a malformed linker name
// fails before anything else happens.
func (o *options) newSession() (*session, error) {
	target, err := triple.FromLinker(env.Linker())
	if err != nil {
		return nil, err
	}
	f, err := o.loadFormula()
	if err != nil {
		return nil, err
	}
	host, err := o.host()
	if err != nil {
		return nil, err
	}
	arch := o.arch
	if arch == "" {
		arch = runtime.GOARCH
	}
	workDir, err := o.dir()
	if err != nil {
		return nil, err
	}

	out := o.out
	if out == "" {
		out = env.OutDir()
	}
	if out == "" {
		out = filepath.Join(workDir, "build", f.Name, variant(host, arch, target))
	}
	if out, err = filepath.Abs(out); err != nil {
		return nil, err
	}

	r := runner.New()
	r.Stderr = o.stderr
	if o.verbose {
		r.Stdout = o.stderr
	} else {
		r.Stdout = io.Discard
	}
	return &session{
		formula: f,
		bc: &platform.Context{
			OutDir:  out,
			WorkDir: workDir,
			Host:    host,
			Target:  target,
			Arch:    arch,
		},
		runner:   r,
		strategy: platform.New(host, f, platform.Deps{Runner: r}),
	}, nil
}
