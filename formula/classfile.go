package formula

import "maps"

const GopPackage = true

// -----------------------------------------------------------------------------

// RecipeF is the classfile a *_pasys.gox recipe is written in. Every call
// sets one field of the Formula; fields a recipe never sets keep their
// PortAudio defaults.
type RecipeF struct {
	f Formula
}

// Name sets the library's link name.
func (p *RecipeF) Name(name string) {
	p.f.Name = name
}

// PkgConfig sets the pkg-config package probed on the host.
func (p *RecipeF) PkgConfig(pkg string) {
	p.f.Package = pkg
}

// MinVersion sets the lowest installed version that is accepted.
func (p *RecipeF) MinVersion(ver string) {
	p.f.MinVersion = ver
}

// ForceEnv names the variable that skips the host probe.
func (p *RecipeF) ForceEnv(key string) {
	p.f.ForceEnv = key
}

// Source sets the archive URL.
func (p *RecipeF) Source(url string) {
	p.f.Source.URL = url
}

// Folder sets the top-level folder inside the archive.
func (p *RecipeF) Folder(name string) {
	p.f.Source.Folder = name
}

// SHA256 pins the archive digest.
func (p *RecipeF) SHA256(hex string) {
	p.f.Source.SHA256 = hex
}

// Configure appends autotools flags.
func (p *RecipeF) Configure(flags ...string) {
	p.f.Configure = append(p.f.Configure, flags...)
}

// CMakeTarget sets the static library target of the Windows build.
func (p *RecipeF) CMakeTarget(target string) {
	p.f.CMake.Target = target
}

// CFlags appends to CMAKE_C_FLAGS.
func (p *RecipeF) CFlags(flags ...string) {
	p.f.CMake.CFlags = append(p.f.CMake.CFlags, flags...)
}

// Output records the library file the CMake target produces for arch.
func (p *RecipeF) Output(arch, file string) {
	if p.f.CMake.Outputs == nil {
		p.f.CMake.Outputs = make(map[string]string)
	}
	p.f.CMake.Outputs[arch] = file
}

// Formula returns the completed recipe.
func (p *RecipeF) Formula() (*Formula, error) {
	f := p.f
	f.Configure = append([]string(nil), p.f.Configure...)
	f.CMake.CFlags = append([]string(nil), p.f.CMake.CFlags...)
	f.CMake.Outputs = maps.Clone(p.f.CMake.Outputs)
	if len(f.Configure) == 0 {
		f.Configure = nil
	}
	if len(f.CMake.CFlags) == 0 {
		f.CMake.CFlags = nil
	}
	if err := f.complete(); err != nil {
		return nil, err
	}
	return &f, nil
}

// -----------------------------------------------------------------------------

// Gopt_RecipeF_Main is main entry of this classfile.
func Gopt_RecipeF_Main(this interface {
	MainEntry()
}) {
	this.MainEntry()
}
