package link

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"testing"
)

func TestParseFlags(t *testing.T) {
	flags := strings.Fields("-L/tmp/out/lib -lportaudio -lasound -lm -pthread -L/tmp/out/lib -lpthread")
	d := ParseFlags(flags, true)

	if want := []string{"/tmp/out/lib"}; !slices.Equal(d.SearchPaths, want) {
		t.Errorf("SearchPaths = %v, want %v", d.SearchPaths, want)
	}
	if want := []string{"portaudio", "asound", "m", "pthread"}; !slices.Equal(d.Libraries, want) {
		t.Errorf("Libraries = %v, want %v", d.Libraries, want)
	}
	if want := []string{"-pthread"}; !slices.Equal(d.Flags, want) {
		t.Errorf("Flags = %v, want %v", d.Flags, want)
	}
	if !d.Static {
		t.Error("Static = false")
	}
}

func unixDirectives() *Directives {
	return &Directives{SearchPaths: []string{"/tmp/out/lib"}, Libraries: []string{"portaudio"}, Static: true}
}

func TestRender(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatLDFlags, "-L/tmp/out/lib -lportaudio\n"},
		{FormatCgo, "#cgo LDFLAGS: -L/tmp/out/lib -lportaudio\n"},
		{FormatCargo, "cargo:rustc-link-search=native=/tmp/out/lib\ncargo:rustc-link-lib=static=portaudio\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Render(&buf, unixDirectives(), tt.format); err != nil {
			t.Errorf("Render(%s): %v", tt.format, err)
			continue
		}
		if got := buf.String(); got != tt.want {
			t.Errorf("Render(%s) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestRenderCargoDependencies(t *testing.T) {
	d := ParseFlags([]string{"-L/out/lib", "-lportaudio", "-lasound", "-pthread"}, true)
	var buf bytes.Buffer
	if err := Render(&buf, d, FormatCargo); err != nil {
		t.Fatal(err)
	}
	want := "cargo:rustc-link-search=native=/out/lib\n" +
		"cargo:rustc-link-lib=static=portaudio\n" +
		"cargo:rustc-link-lib=dylib=asound\n" +
		"cargo:rustc-link-arg=-pthread\n"
	if got := buf.String(); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderCargoRerun(t *testing.T) {
	d := unixDirectives()
	d.RerunIfChanged = []string{"portaudio.yaml"}
	d.RerunIfEnvChanged = []string{"PORTAUDIO_ONLY_STATIC", "RUSTC_LINKER"}

	var buf bytes.Buffer
	if err := Render(&buf, d, FormatCargo); err != nil {
		t.Fatal(err)
	}
	want := "cargo:rerun-if-changed=portaudio.yaml\n" +
		"cargo:rerun-if-env-changed=PORTAUDIO_ONLY_STATIC\n" +
		"cargo:rerun-if-env-changed=RUSTC_LINKER\n" +
		"cargo:rustc-link-search=native=/tmp/out/lib\n" +
		"cargo:rustc-link-lib=static=portaudio\n"
	if got := buf.String(); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}

	buf.Reset()
	if err := Render(&buf, d, FormatLDFlags); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "-L/tmp/out/lib -lportaudio\n" {
		t.Errorf("ldflags output carries rerun lines: %q", got)
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, unixDirectives(), FormatJSON); err != nil {
		t.Fatal(err)
	}
	var got Directives
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if !slices.Equal(got.SearchPaths, []string{"/tmp/out/lib"}) || !slices.Equal(got.Libraries, []string{"portaudio"}) {
		t.Errorf("decoded = %+v", got)
	}
}

func TestRenderWindowsSearchPathOnly(t *testing.T) {
	d := &Directives{SearchPaths: []string{`C:\out`}, Static: true}
	var buf bytes.Buffer
	if err := Render(&buf, d, FormatCargo); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "cargo:rustc-link-search=native=C:\\out\n"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		if got, err := ParseFormat(string(f)); err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %q, %v", f, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) succeeded")
	}
}
