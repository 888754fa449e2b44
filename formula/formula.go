// Package formula describes how to obtain and build a native library: which
// pkg-config package satisfies it, where its source lives and what the
// build produces.
package formula

import (
	"os"
	"path/filepath"

	"github.com/goplus/pasys/internal/errs"
	"gopkg.in/yaml.v3"
)

// Formula is the recipe for one native library.
type Formula struct {
	// Name is the library's link name, e.g. "portaudio" for -lportaudio.
	Name string `yaml:"name"`
	// Package is the pkg-config package probed on the host.
	Package string `yaml:"package"`
	// MinVersion is the lowest installed version that is accepted.
	MinVersion string `yaml:"min_version"`
	// ForceEnv skips the host probe when set.
	ForceEnv string `yaml:"force_env"`

	Source Source `yaml:"source"`

	// Configure holds extra autotools flags.
	Configure []string `yaml:"configure"`

	CMake CMake `yaml:"cmake"`
}

// Source is the fixed source archive of a library version.
type Source struct {
	URL    string `yaml:"url"`
	File   string `yaml:"file"`   // local file name of the download
	Folder string `yaml:"folder"` // top-level folder inside the archive
	SHA256 string `yaml:"sha256"` // optional pinned digest
}

// CMake configures the Windows build.
type CMake struct {
	// Target is the static library target to build.
	Target string `yaml:"target"`
	// CFlags are passed as CMAKE_C_FLAGS.
	CFlags []string `yaml:"cflags"`
	// Outputs maps GOARCH to the file name the target produces.
	Outputs map[string]string `yaml:"outputs"`
}

// PortAudio returns the built-in PortAudio v19 recipe.
func PortAudio() *Formula {
	return &Formula{
		Name:       "portaudio",
		Package:    "portaudio-2.0",
		MinVersion: "19",
		ForceEnv:   "PORTAUDIO_ONLY_STATIC",
		Source: Source{
			URL:    "http://www.portaudio.com/archives/pa_stable_v19_20140130.tgz",
			File:   "pa_stable_v19_20140130.tgz",
			Folder: "portaudio",
		},
		CMake: CMake{
			Target: "portaudio_static",
			// Works around the WDM/KS driver model linking against ksguid.lib.
			CFlags: []string{"-DPA_WDMKS_NO_KSGUID_LIB"},
			Outputs: map[string]string{
				"386":   "portaudio_static_x86.lib",
				"amd64": "portaudio_static_x64.lib",
			},
		},
	}
}

// Load reads a YAML recipe from path. Fields missing from the file keep
// their PortAudio defaults.
func Load(path string) (*Formula, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.FS("formula", err)
	}
	f := new(Formula)
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, errs.New(errs.ErrMalformedInput, "formula "+path, err)
	}
	if err := f.complete(); err != nil {
		return nil, err
	}
	return f, nil
}

// complete fills the PortAudio defaults and validates the result.
func (f *Formula) complete() error {
	f.fillFrom(PortAudio())
	return f.Validate()
}

// fillFrom copies every field f leaves empty from d. A recipe that names its
// own source URL keeps its own file, folder and digest.
func (f *Formula) fillFrom(d *Formula) {
	setDefault(&f.Name, d.Name)
	setDefault(&f.Package, d.Package)
	setDefault(&f.MinVersion, d.MinVersion)
	setDefault(&f.ForceEnv, d.ForceEnv)
	if f.Source.URL == "" {
		f.Source.URL = d.Source.URL
		f.Source.File = d.Source.File
		f.Source.SHA256 = d.Source.SHA256
		setDefault(&f.Source.Folder, d.Source.Folder)
	}
	setDefault(&f.CMake.Target, d.CMake.Target)
	if f.CMake.CFlags == nil {
		f.CMake.CFlags = d.CMake.CFlags
	}
	if f.CMake.Outputs == nil {
		f.CMake.Outputs = d.CMake.Outputs
	}
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// Validate checks that f names everything a build needs.
func (f *Formula) Validate() error {
	missing := func(field string) error {
		return errs.Newf(errs.ErrMalformedInput, "formula", "%s is required", field)
	}
	switch {
	case f.Name == "":
		return missing("name")
	case f.Package == "":
		return missing("package")
	case f.Source.URL == "":
		return missing("source.url")
	case f.Source.Folder == "":
		return missing("source.folder")
	}
	if f.Source.File == "" {
		f.Source.File = filepath.Base(f.Source.URL)
	}
	if f.Source.File != filepath.Base(f.Source.File) || f.Source.Folder != filepath.Base(f.Source.Folder) {
		return errs.Newf(errs.ErrMalformedInput, "formula", "source file and folder must be plain names")
	}
	return nil
}

// Archive returns the static library file name on Unix, e.g. libportaudio.a.
func (f *Formula) Archive() string {
	return "lib" + f.Name + ".a"
}

// WindowsLibrary returns the canonical Windows library name, e.g. portaudio.lib.
func (f *Formula) WindowsLibrary() string {
	return f.Name + ".lib"
}

// Descriptor returns the pkg-config file name, e.g. portaudio-2.0.pc.
func (f *Formula) Descriptor() string {
	return f.Package + ".pc"
}
