// Package fetch downloads source archives.
package fetch

import (
	"context"
	"fmt"

	"github.com/goplus/pasys/internal/errs"
	"github.com/goplus/pasys/internal/runner"
	"golang.org/x/sys/execabs"
)

// Fetcher downloads url to the file dest.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// Tool downloads with an external program run through a runner.Runner.
type Tool struct {
	Name   string
	Runner runner.Runner
	args   func(url, dest string) []string
}

func (t *Tool) Fetch(ctx context.Context, url, dest string) error {
	return t.Runner.Run(ctx, runner.Command(t.Name, t.args(url, dest)...))
}

func (t *Tool) String() string { return t.Name }

// Curl returns a Tool using curl. -f turns HTTP errors into a non-zero exit.
func Curl(r runner.Runner) *Tool {
	return &Tool{Name: "curl", Runner: r, args: func(url, dest string) []string {
		return []string{"-fL", "-o", dest, url}
	}}
}

// Wget returns a Tool using wget.
func Wget(r runner.Runner) *Tool {
	return &Tool{Name: "wget", Runner: r, args: func(url, dest string) []string {
		return []string{"-O", dest, url}
	}}
}

// LookPathFunc resolves an executable name, like exec.LookPath.
type LookPathFunc func(file string) (string, error)

// Select returns the first tool in preferred order whose program is on PATH.
// When none is, it fails with errs.ErrToolLaunch naming every candidate.
func Select(lookPath LookPathFunc, tools ...*Tool) (*Tool, error) {
	if lookPath == nil {
		lookPath = execabs.LookPath
	}
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		if _, err := lookPath(t.Name); err == nil {
			return t, nil
		}
		names = append(names, t.Name)
	}
	return nil, errs.Newf(errs.ErrToolLaunch, "fetch", "no download tool found in PATH (tried %v)", names)
}

// Lazy defers tool selection to the first Fetch, so a pipeline that never
// downloads does not require a download tool.
type Lazy struct {
	LookPath LookPathFunc
	Tools    []*Tool
}

func (l *Lazy) Fetch(ctx context.Context, url, dest string) error {
	t, err := Select(l.LookPath, l.Tools...)
	if err != nil {
		return err
	}
	return t.Fetch(ctx, url, dest)
}

func (l *Lazy) String() string {
	return fmt.Sprint(l.Tools)
}
