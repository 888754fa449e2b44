// Package triple infers a cross-compilation target from a linker program name.
package triple

import (
	"strings"

	"github.com/goplus/pasys/internal/errs"
)

// FromLinker derives the target triple from a cross linker path such as
// /usr/bin/arm-linux-gnueabihf-gcc. An empty path means a native build and
// yields "". A name without a '-' is malformed: silently building for the
// host would produce an artifact for the wrong architecture.
func FromLinker(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	name := path
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".exe")
	i := strings.LastIndexByte(name, '-')
	if i <= 0 {
		return "", errs.Newf(errs.ErrMalformedInput, "triple", "linker %q is not named <target-triple>-<tool>", path)
	}
	return name[:i], nil
}

// ConfigureFlags returns the autotools flags selecting target t.
func ConfigureFlags(t string) []string {
	if t == "" {
		return nil
	}
	return []string{"--target=" + t, "--host=" + t}
}
