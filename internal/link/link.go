// Package link describes and renders the linker directives a downstream
// build needs.
package link

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Directives is the final output of a resolution.
type Directives struct {
	SearchPaths []string `json:"search_paths"`
	Libraries   []string `json:"libraries"`
	Flags       []string `json:"flags,omitempty"` // anything that is neither -L nor -l
	Static      bool     `json:"static"`

	// Only a cargo build script reports what its output depends on.
	RerunIfChanged    []string `json:"-"` // files
	RerunIfEnvChanged []string `json:"-"` // environment variables
}

// ParseFlags splits pkg-config style linker flags into directives.
func ParseFlags(flags []string, static bool) *Directives {
	d := &Directives{Static: static}
	for _, f := range flags {
		switch {
		case strings.HasPrefix(f, "-L") && len(f) > 2:
			d.SearchPaths = appendUnique(d.SearchPaths, f[2:])
		case strings.HasPrefix(f, "-l") && len(f) > 2:
			d.Libraries = append(d.Libraries, f[2:])
		default:
			d.Flags = append(d.Flags, f)
		}
	}
	return d
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

// LDFlags returns the directives as compiler-driver flags, suitable for
// CGO_LDFLAGS.
func (d *Directives) LDFlags() []string {
	out := make([]string, 0, len(d.SearchPaths)+len(d.Libraries)+len(d.Flags))
	for _, p := range d.SearchPaths {
		out = append(out, "-L"+p)
	}
	for _, l := range d.Libraries {
		out = append(out, "-l"+l)
	}
	return append(out, d.Flags...)
}

// Format selects how Render writes directives.
type Format string

const (
	FormatLDFlags Format = "ldflags" // -L/-l flags on one line
	FormatCgo     Format = "cgo"     // a #cgo LDFLAGS line
	FormatCargo   Format = "cargo"   // cargo:rustc-link-* build script lines
	FormatJSON    Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatLDFlags, FormatCgo, FormatCargo, FormatJSON}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want one of %v)", s, Formats)
}

// Render writes d to w in format f.
func Render(w io.Writer, d *Directives, f Format) error {
	var err error
	switch f {
	case FormatLDFlags, "":
		_, err = fmt.Fprintln(w, strings.Join(d.LDFlags(), " "))
	case FormatCgo:
		_, err = fmt.Fprintln(w, "#cgo LDFLAGS: "+strings.Join(d.LDFlags(), " "))
	case FormatCargo:
		err = renderCargo(w, d)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(d)
	default:
		err = fmt.Errorf("unknown format %q", f)
	}
	return err
}

func renderCargo(w io.Writer, d *Directives) error {
	for _, f := range d.RerunIfChanged {
		if _, err := fmt.Fprintf(w, "cargo:rerun-if-changed=%s\n", f); err != nil {
			return err
		}
	}
	for _, v := range d.RerunIfEnvChanged {
		if _, err := fmt.Fprintf(w, "cargo:rerun-if-env-changed=%s\n", v); err != nil {
			return err
		}
	}
	kind := "dylib"
	if d.Static {
		kind = "static"
	}
	for _, p := range d.SearchPaths {
		if _, err := fmt.Fprintf(w, "cargo:rustc-link-search=native=%s\n", p); err != nil {
			return err
		}
	}
	for i, l := range d.Libraries {
		// Only the resolved library itself is static; the rest are its
		// system dependencies.
		k := kind
		if i > 0 {
			k = "dylib"
		}
		if _, err := fmt.Fprintf(w, "cargo:rustc-link-lib=%s=%s\n", k, l); err != nil {
			return err
		}
	}
	for _, f := range d.Flags {
		if _, err := fmt.Fprintf(w, "cargo:rustc-link-arg=%s\n", f); err != nil {
			return err
		}
	}
	return nil
}
