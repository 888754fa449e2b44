package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/goplus/pasys/internal/env"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

// options holds the flag values of one invocation.
type options struct {
	out      string
	workDir  string
	formula  string
	format   string
	platform string
	arch     string
	verbose  bool

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(o *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pasys",
		Short: "pasys makes a native library available to a cgo or cargo build",
		Long: `pasys looks for an installed copy of a native library with pkg-config.
If none is found it downloads the library's source, builds a static,
position independent archive into an output directory and prints the
linker directives for it.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: o.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&o.out, "out", "", "Output directory (default $"+env.OutDirVar+", then $"+env.CargoOutDirVar+", then ./build/<name>/<variant>)")
	pf.StringVar(&o.workDir, "workdir", "", "Directory the source is downloaded and unpacked in (default current directory)")
	pf.StringVar(&o.formula, "formula", "", "YAML or *_pasys.gox recipe overriding the built-in PortAudio one")
	pf.StringVar(&o.format, "format", "ldflags", "Directive format: ldflags, cgo, cargo or json")
	pf.StringVar(&o.platform, "platform", "", "Build as this platform: unix, linux or windows (default detected)")
	pf.StringVar(&o.arch, "arch", "", "GOARCH the library is built for (default host)")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "Log every command and stream tool output")

	rootCmd.AddCommand(newBuildCmd(o), newProbeCmd(o), newTripleCmd(o), newLinkCmd(o))
	return rootCmd
}

// setup runs before every command: it loads .env from the working
// directory and picks the log level.
func (o *options) setup(cmd *cobra.Command, args []string) error {
	if o.verbose {
		log.SetOutputLevel(log.Ldebug)
	} else {
		log.SetOutputLevel(log.Linfo)
	}
	dir, err := o.dir()
	if err != nil {
		return err
	}
	return env.Load(dir)
}

// Main runs pasys with args and returns the process exit status.
func Main(args []string, stdout, stderr io.Writer) int {
	o := &options{stdout: stdout, stderr: stderr}
	rootCmd := newRootCmd(o)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(stderr, "pasys: ")
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main().
func Execute() {
	os.Exit(Main(os.Args[1:], os.Stdout, os.Stderr))
}
