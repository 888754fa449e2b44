// Package runner launches external build tools and turns every failure into
// a fatal, diagnosable error.
package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/goplus/pasys/internal/errs"
	"github.com/qiniu/x/log"
	"golang.org/x/sys/execabs"
)

// Cmd describes a single tool invocation.
type Cmd struct {
	Dir  string            // working directory; empty means the caller's
	Name string            // program name or path
	Args []string          // arguments, without Name
	Env  map[string]string // overrides on top of the process environment
}

// Command returns a Cmd for name and args.
func Command(name string, args ...string) *Cmd {
	return &Cmd{Name: name, Args: args}
}

// InDir sets the working directory and returns c.
func (c *Cmd) InDir(dir string) *Cmd {
	c.Dir = dir
	return c
}

// String renders the full command line, quoting arguments that need it.
func (c *Cmd) String() string {
	parts := make([]string, 0, 1+len(c.Args))
	parts = append(parts, quote(c.Name))
	for _, a := range c.Args {
		parts = append(parts, quote(a))
	}
	s := strings.Join(parts, " ")
	if c.Dir != "" {
		s += " (in " + c.Dir + ")"
	}
	return s
}

func quote(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " \t\"'") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}

// Runner executes commands and waits for them to exit.
type Runner interface {
	// Run streams the child's output and fails on launch error or non-zero exit.
	Run(ctx context.Context, c *Cmd) error
	// Output is like Run but returns the child's stdout.
	Output(ctx context.Context, c *Cmd) ([]byte, error)
}

// Exec runs commands as child processes. Executables are resolved with
// execabs, so a program is never picked up from the current directory.
type Exec struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an Exec that streams child output to the process's stdout and stderr.
func New() *Exec {
	return &Exec{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (e *Exec) Run(ctx context.Context, c *Cmd) error {
	cmd := e.command(ctx, c)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	log.Debug("run:", c)
	return check(c, cmd.Run(), nil)
}

func (e *Exec) Output(ctx context.Context, c *Cmd) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := e.command(ctx, c)
	cmd.Stderr = &stderr
	log.Debug("run:", c)
	out, err := cmd.Output()
	if err != nil {
		return nil, check(c, err, stderr.Bytes())
	}
	return out, nil
}

func (e *Exec) command(ctx context.Context, c *Cmd) *exec.Cmd {
	cmd := execabs.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), c.Env)
	}
	return cmd
}

func check(c *Cmd, err error, stderr []byte) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := "`" + c.String() + "` did not execute successfully (exit status " + strconv.Itoa(exitErr.ExitCode()) + ")"
		if s := strings.TrimSpace(string(stderr)); s != "" {
			msg += ": " + s
		}
		return &errs.Error{Kind: errs.ErrToolExit, Op: c.Name, Msg: msg}
	}
	return &errs.Error{Kind: errs.ErrToolLaunch, Op: c.Name, Msg: "`" + c.String() + "` could not be started", Err: err}
}

// mergeEnv returns base with every key in overrides replaced or appended.
// The result is sorted so command environments are reproducible.
func mergeEnv(base []string, overrides map[string]string) []string {
	m := make(map[string]string, len(base)+len(overrides))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	for k, v := range overrides {
		m[k] = v
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+m[k])
	}
	return out
}
