package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/goplus/pasys/internal/errs"
)

// TestHelperProcess is not a real test. It is the child process started by
// the tests below.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("PASYS_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) > 0 {
		args = args[1:]
	}
	switch args[0] {
	case "echo":
		fmt.Fprint(os.Stdout, strings.Join(args[1:], " "))
		os.Exit(0)
	case "env":
		fmt.Fprint(os.Stdout, os.Getenv(args[1]))
		os.Exit(0)
	case "fail":
		fmt.Fprint(os.Stderr, "boom")
		os.Exit(1)
	}
	os.Exit(2)
}

func helper(t *testing.T, args ...string) *Cmd {
	t.Helper()
	exe, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}
	c := Command(exe, append([]string{"-test.run=TestHelperProcess", "--"}, args...)...)
	c.Env = map[string]string{"PASYS_HELPER_PROCESS": "1"}
	return c
}

func TestOutput(t *testing.T) {
	r := New()
	out, err := r.Output(context.Background(), helper(t, "echo", "hello", "world"))
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if got := string(out); got != "hello world" {
		t.Errorf("Output = %q, want %q", got, "hello world")
	}
}

func TestEnvOverride(t *testing.T) {
	r := New()
	c := helper(t, "env", "PASYS_TEST_VALUE")
	c.Env["PASYS_TEST_VALUE"] = "42"
	out, err := r.Output(context.Background(), c)
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if got := string(out); got != "42" {
		t.Errorf("PASYS_TEST_VALUE = %q, want %q", got, "42")
	}
}

func TestRunExitError(t *testing.T) {
	var stderr bytes.Buffer
	r := &Exec{Stdout: &bytes.Buffer{}, Stderr: &stderr}
	c := helper(t, "fail")
	err := r.Run(context.Background(), c)
	if !errors.Is(err, errs.ErrToolExit) {
		t.Fatalf("Run error = %v, want ErrToolExit", err)
	}
	if !strings.Contains(err.Error(), "fail") || !strings.Contains(err.Error(), "exit status 1") {
		t.Errorf("error %q does not carry the command line and status", err)
	}
	if stderr.String() != "boom" {
		t.Errorf("stderr = %q, want %q", stderr.String(), "boom")
	}
}

func TestOutputExitErrorCarriesStderr(t *testing.T) {
	_, err := New().Output(context.Background(), helper(t, "fail"))
	if !errors.Is(err, errs.ErrToolExit) {
		t.Fatalf("Output error = %v, want ErrToolExit", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q does not include stderr", err)
	}
}

func TestRunLaunchError(t *testing.T) {
	err := New().Run(context.Background(), Command("pasys-no-such-tool-xyz", "--version"))
	if !errors.Is(err, errs.ErrToolLaunch) {
		t.Fatalf("Run error = %v, want ErrToolLaunch", err)
	}
	if !strings.Contains(err.Error(), "pasys-no-such-tool-xyz --version") {
		t.Errorf("error %q does not include the command line", err)
	}
}

func TestCmdString(t *testing.T) {
	c := Command("./configure", "--prefix=/tmp/out dir", "--with-pic").InDir("/src")
	want := `./configure "--prefix=/tmp/out dir" --with-pic (in /src)`
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestMergeEnv(t *testing.T) {
	got := mergeEnv([]string{"A=1", "B=2", "C=3"}, map[string]string{"B": "X", "D": "4"})
	want := []string{"A=1", "B=X", "C=3", "D=4"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("mergeEnv = %v, want %v", got, want)
	}
}
