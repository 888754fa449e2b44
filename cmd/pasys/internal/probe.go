package internal

import (
	"fmt"

	"github.com/goplus/pasys/internal/env"
	"github.com/goplus/pasys/internal/link"
	"github.com/goplus/pasys/internal/probe"
	"github.com/goplus/pasys/internal/runner"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

func newProbeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Report whether pkg-config finds a usable installed library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runProbe(cmd, runner.New())
		},
	}
}

func (o *options) runProbe(cmd *cobra.Command, r *runner.Exec) error {
	format, err := link.ParseFormat(o.format)
	if err != nil {
		return err
	}
	f, err := o.loadFormula()
	if err != nil {
		return err
	}
	if env.IsSet(f.ForceEnv) {
		log.Warn(f.ForceEnv, "is set, build will not use an installed library")
	}

	r.Stdout = o.stderr
	r.Stderr = o.stderr
	res, err := probe.New(r).Probe(cmd.Context(), f.Package, f.MinVersion)
	switch {
	case err != nil:
		log.Warn(err)
		fmt.Fprintln(o.stdout, f.Package, "not found")
		return nil
	case !res.Found:
		fmt.Fprintf(o.stdout, "%s %s is older than %s\n", f.Package, res.Version, f.MinVersion)
		return nil
	}
	fmt.Fprintln(o.stdout, f.Package, res.Version)
	return o.render(link.ParseFlags(res.Flags, false), f, format)
}
