package internal

import (
	"fmt"

	"github.com/goplus/pasys/internal/env"
	"github.com/goplus/pasys/internal/triple"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

func newTripleCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "triple [linker]",
		Short: "Print the target triple inferred from a cross linker",
		Long: `Triple prints the target triple inferred from the linker's file name,
e.g. arm-linux-gnueabihf for /usr/bin/arm-linux-gnueabihf-gcc. Without an
argument the linker is read from $` + env.LinkerVar + `. Nothing is printed for a
native build.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			linker := env.Linker()
			if len(args) > 0 {
				linker = args[0]
			}
			t, err := triple.FromLinker(linker)
			if err != nil {
				return err
			}
			if t == "" {
				log.Info("no cross linker configured, building natively")
				return nil
			}
			_, err = fmt.Fprintln(o.stdout, t)
			return err
		},
	}
}
