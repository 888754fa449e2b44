package build

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/goplus/pasys/internal/errs"
)

// Output directory layout after a vendored build:
//
//	outDir/
//	  .pasys.json          # build record
//	  lib/libportaudio.a   # Unix
//	  lib/pkgconfig/       # Linux descriptor
//	  portaudio.lib        # Windows
const recordFile = ".pasys.json"

// Record describes the build that populated an output directory.
type Record struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	SHA256    string    `json:"sha256,omitempty"`
	Host      string    `json:"host"`
	Target    string    `json:"target,omitempty"`
	Arch      string    `json:"arch"`
	BuildTime time.Time `json:"build_time"`
}

// mismatch describes how r differs from the given context, or returns "".
func (r *Record) mismatch(host, target, arch string) string {
	switch {
	case r.Host != host:
		return fmt.Sprintf("host %s, want %s", r.Host, host)
	case r.Target != target:
		return fmt.Sprintf("target %q, want %q", r.Target, target)
	case r.Arch != arch:
		return fmt.Sprintf("arch %s, want %s", r.Arch, arch)
	}
	return ""
}

// LoadRecord reads the record in outDir. A missing record returns nil, nil.
func LoadRecord(outDir string) (*Record, error) {
	data, err := os.ReadFile(filepath.Join(outDir, recordFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.FS("read build record", err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errs.New(errs.ErrFilesystem, "read build record", err)
	}
	return &r, nil
}

// SaveRecord writes r into outDir.
func SaveRecord(outDir string, r *Record) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, recordFile), data, 0o644); err != nil {
		return errs.FS("write build record", err)
	}
	return nil
}
