package internal

import (
	"github.com/goplus/pasys/internal/build"
	"github.com/goplus/pasys/internal/env"
	"github.com/goplus/pasys/internal/errs"
	"github.com/goplus/pasys/internal/fetch"
	"github.com/goplus/pasys/internal/link"
	"github.com/goplus/pasys/internal/probe"
	"github.com/goplus/pasys/internal/runner"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

type buildOptions struct {
	*options
	fetcher string
	sha256  string
	force   bool
}

func newBuildCmd(o *options) *cobra.Command {
	bo := &buildOptions{options: o}
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Find or build the library and print its link directives",
		Long: `Build probes pkg-config for an installed library. When none is usable, or
the recipe's force variable (PORTAUDIO_ONLY_STATIC) is set, it downloads the
source, builds a static library into the output directory and prints the
directives to link it. An existing library in the output directory is reused.`,
		Args: cobra.NoArgs,
		RunE: bo.run,
	}
	buildCmd.Flags().StringVar(&bo.fetcher, "fetcher", "auto", "Download with auto, curl, wget or http")
	buildCmd.Flags().StringVar(&bo.sha256, "sha256", "", "Expected SHA-256 of the source archive")
	buildCmd.Flags().BoolVar(&bo.force, "force", false, "Skip the pkg-config probe")
	return buildCmd
}

func newFetcher(name string, r runner.Runner) (fetch.Fetcher, error) {
	switch name {
	case "", "auto":
		return nil, nil
	case "curl":
		return fetch.Curl(r), nil
	case "wget":
		return fetch.Wget(r), nil
	case "http":
		return fetch.NewHTTP(), nil
	}
	return nil, errs.Newf(errs.ErrMalformedInput, "fetcher", "unknown fetcher %q", name)
}

func (bo *buildOptions) run(cmd *cobra.Command, args []string) error {
	format, err := link.ParseFormat(bo.format)
	if err != nil {
		return err
	}
	s, err := bo.newSession()
	if err != nil {
		return err
	}
	fetcher, err := newFetcher(bo.fetcher, s.runner)
	if err != nil {
		return err
	}

	b := &build.Builder{
		Formula:  s.formula,
		Context:  s.bc,
		Strategy: s.strategy,
		Prober:   probe.New(s.runner),
		Fetcher:  fetcher,
		Force:    bo.force || env.IsSet(s.formula.ForceEnv),
		SHA256:   bo.sha256,
	}
	res, err := b.Build(cmd.Context())
	if err != nil {
		return err
	}
	log.Debug("states:", res.States)
	return bo.render(res.Directives, s.formula, format)
}
