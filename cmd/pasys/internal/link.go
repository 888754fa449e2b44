package internal

import (
	"path/filepath"

	"github.com/goplus/pasys/formula"
	"github.com/goplus/pasys/internal/env"
	"github.com/goplus/pasys/internal/link"
	"github.com/spf13/cobra"
)

func newLinkCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "link",
		Short: "Print link directives for an already built output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := link.ParseFormat(o.format)
			if err != nil {
				return err
			}
			s, err := o.newSession()
			if err != nil {
				return err
			}
			d, err := s.strategy.Emit(cmd.Context(), s.bc)
			if err != nil {
				return err
			}
			return o.render(d, s.formula, format)
		},
	}
}

// render writes d to stdout, telling cargo which inputs the directives were
// resolved from.
func (o *options) render(d *link.Directives, f *formula.Formula, format link.Format) error {
	d.RerunIfEnvChanged = env.Watched(f.ForceEnv)
	if o.formula != "" {
		path, err := filepath.Abs(o.formula)
		if err != nil {
			return err
		}
		d.RerunIfChanged = []string{path}
	}
	return link.Render(o.stdout, d, format)
}
