// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"strings"

	"github.com/goplus/pasys/internal/errs"
	"github.com/goplus/pasys/internal/runner"
)

// Handler fakes one tool. It returns the tool's stdout and exit code.
type Handler func(c *runner.Cmd) (stdout string, code int)

// Fake records every command and dispatches it to the handler registered for
// the command's base name. Unregistered tools fail to launch.
type Fake struct {
	Handlers map[string]Handler
	Calls    []*runner.Cmd
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{Handlers: make(map[string]Handler)}
}

// Handle registers h for the tool called name ("./configure" and
// "/src/configure" both match "configure").
func (f *Fake) Handle(name string, h Handler) *Fake {
	f.Handlers[name] = h
	return f
}

// OK registers a tool that always succeeds with empty output.
func (f *Fake) OK(names ...string) *Fake {
	for _, name := range names {
		f.Handle(name, func(*runner.Cmd) (string, int) { return "", 0 })
	}
	return f
}

// Fail registers a tool that always exits with code.
func (f *Fake) Fail(name string, code int) *Fake {
	return f.Handle(name, func(*runner.Cmd) (string, int) { return "", code })
}

func (f *Fake) Run(ctx context.Context, c *runner.Cmd) error {
	_, err := f.Output(ctx, c)
	return err
}

func (f *Fake) Output(ctx context.Context, c *runner.Cmd) ([]byte, error) {
	f.Calls = append(f.Calls, c)
	h, ok := f.Handlers[base(c.Name)]
	if !ok {
		return nil, &errs.Error{Kind: errs.ErrToolLaunch, Op: c.Name, Msg: "`" + c.String() + "` could not be started"}
	}
	out, code := h(c)
	if code != 0 {
		return nil, &errs.Error{Kind: errs.ErrToolExit, Op: c.Name, Msg: "`" + c.String() + "` did not execute successfully"}
	}
	return []byte(out), nil
}

// Names returns the base names of the recorded commands, in order.
func (f *Fake) Names() []string {
	names := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		names[i] = base(c.Name)
	}
	return names
}

// Called reports whether a tool with the given base name was invoked.
func (f *Fake) Called(name string) bool {
	for _, c := range f.Calls {
		if base(c.Name) == name {
			return true
		}
	}
	return false
}

// Find returns the first recorded call of the named tool whose arguments
// contain arg, or nil.
func (f *Fake) Find(name, arg string) *runner.Cmd {
	for _, c := range f.Calls {
		if base(c.Name) != name {
			continue
		}
		for _, a := range c.Args {
			if a == arg {
				return c
			}
		}
	}
	return nil
}

func base(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".exe")
}
