// Package cmake wraps the cmake configure and build steps.
package cmake

import (
	"context"
	"os"
	"sort"

	"github.com/goplus/pasys/internal/runner"
)

type defineValue struct {
	value    string
	typeName string
}

// CMake drives CMake-based builds.
type CMake struct {
	runner     runner.Runner
	sourceDir  string
	buildDir   string
	installDir string
	buildType  string
	defines    map[string]defineValue
}

// New returns a ready-to-use CMake.
func New(r runner.Runner, sourceDir, buildDir, installDir string) *CMake {
	return &CMake{
		runner:     r,
		sourceDir:  sourceDir,
		buildDir:   buildDir,
		installDir: installDir,
		defines:    make(map[string]defineValue),
	}
}

// BuildType sets CMAKE_BUILD_TYPE and the --config of multi-config
// generators (e.g. "Release", "Debug").
func (c *CMake) BuildType(name string) { c.buildType = name }

// Define adds a -D<key>:STRING=<value> definition.
func (c *CMake) Define(key, value string) {
	c.defines[key] = defineValue{value: value, typeName: "STRING"}
}

// DefineBool adds a -D<key>:BOOL=ON/OFF definition.
func (c *CMake) DefineBool(key string, value bool) {
	v := "OFF"
	if value {
		v = "ON"
	}
	c.defines[key] = defineValue{value: v, typeName: "BOOL"}
}

// Configure runs "cmake -S <source> -B <build>" with all configured options.
// Extra args are appended at the end.
func (c *CMake) Configure(ctx context.Context, args ...string) error {
	if err := os.MkdirAll(c.buildDir, 0o755); err != nil {
		return err
	}
	cmakeArgs := []string{"-S", c.sourceDir, "-B", c.buildDir}
	if c.installDir != "" {
		c.Define("CMAKE_INSTALL_PREFIX", c.installDir)
	}
	if c.buildType != "" {
		c.Define("CMAKE_BUILD_TYPE", c.buildType)
	}
	cmakeArgs = append(cmakeArgs, c.definesArgs()...)
	cmakeArgs = append(cmakeArgs, args...)
	return c.run(ctx, cmakeArgs)
}

// Build runs "cmake --build <build>", restricted to target when it is not
// empty.
func (c *CMake) Build(ctx context.Context, target string, args ...string) error {
	cmakeArgs := []string{"--build", c.buildDir}
	if c.buildType != "" {
		cmakeArgs = append(cmakeArgs, "--config", c.buildType)
	}
	if target != "" {
		cmakeArgs = append(cmakeArgs, "--target", target)
	}
	cmakeArgs = append(cmakeArgs, args...)
	return c.run(ctx, cmakeArgs)
}

func (c *CMake) run(ctx context.Context, args []string) error {
	return c.runner.Run(ctx, runner.Command("cmake", args...))
}

func (c *CMake) definesArgs() []string {
	if len(c.defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.defines))
	for k := range c.defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		d := c.defines[k]
		args = append(args, "-D"+k+":"+d.typeName+"="+d.value)
	}
	return args
}
