// Package build drives the resolution pipeline: probe for an installed
// library, otherwise fetch, build and install a static copy, then emit the
// linker directives for whichever one is used.
package build

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/goplus/pasys/formula"
	"github.com/goplus/pasys/internal/errs"
	"github.com/goplus/pasys/internal/fetch"
	"github.com/goplus/pasys/internal/link"
	"github.com/goplus/pasys/internal/platform"
	"github.com/goplus/pasys/internal/probe"
	"github.com/qiniu/x/log"
)

// Artifact is the static library a vendored build produces.
type Artifact struct {
	StaticLibrary string
	Prefix        string
}

// Result describes one pipeline run.
type Result struct {
	States     []State // every state visited, starting with Start
	Probe      probe.Result
	Artifact   *Artifact // nil when an installed library was used
	Directives *link.Directives
}

// Final returns the state the run ended in.
func (r *Result) Final() State {
	return r.States[len(r.States)-1]
}

// Resumed reports whether an existing artifact was linked without building.
func (r *Result) Resumed() bool {
	for i := 1; i < len(r.States); i++ {
		if r.States[i-1] == Inferring && r.States[i] == Emitting {
			return true
		}
	}
	return false
}

// Builder runs the pipeline for one library in one context.
type Builder struct {
	Formula  *formula.Formula
	Context  *platform.Context
	Strategy platform.Strategy
	Prober   *probe.Prober

	// Fetcher overrides Strategy.Fetcher.
	Fetcher fetch.Fetcher
	// Force skips the probe and always uses a vendored build.
	Force bool
	// SHA256 pins the archive digest, overriding the formula's.
	SHA256 string

	Now func() time.Time
}

// Build runs the pipeline to a terminal state. Every error other than a
// probe failure is fatal and returned as is; nothing is retried.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	m := newMachine()
	res := &Result{}
	defer func() { res.States = m.visited }()

	if err := m.to(Probing); err != nil {
		return res, err
	}
	if found, err := b.probe(ctx, res); err != nil || found {
		if err == nil {
			err = m.to(DoneFound)
		}
		return res, err
	}

	if err := m.to(Inferring); err != nil {
		return res, err
	}
	bc := b.Context
	log.Info("target:", targetName(bc.Target), "host:", bc.Host, "out:", bc.OutDir)
	art := &Artifact{StaticLibrary: b.Strategy.StaticLibrary(bc.OutDir), Prefix: bc.OutDir}
	res.Artifact = art

	if _, err := os.Stat(art.StaticLibrary); err == nil {
		log.Info("found", art.StaticLibrary, "- skipping build")
		if err := b.checkRecord(); err != nil {
			return res, err
		}
	} else {
		if err := m.to(Fetching); err != nil {
			return res, err
		}
		archivePath, digest, err := b.fetch(ctx)
		if err != nil {
			return res, err
		}
		if err := m.to(Building); err != nil {
			return res, err
		}
		if err := b.Strategy.Build(ctx, bc, archivePath); err != nil {
			return res, err
		}
		if err := b.saveRecord(digest); err != nil {
			return res, err
		}
	}

	if err := m.to(Emitting); err != nil {
		return res, err
	}
	d, err := b.Strategy.Emit(ctx, bc)
	if err != nil {
		return res, err
	}
	res.Directives = d
	return res, m.to(DoneBuilt)
}

// probe reports whether an installed library can be used. When it can,
// res.Directives are taken from its pkg-config flags.
func (b *Builder) probe(ctx context.Context, res *Result) (bool, error) {
	f := b.Formula
	if b.Force {
		log.Info(f.ForceEnv, "is set, skipping pkg-config probe")
		return false, nil
	}
	pr, err := b.Prober.Probe(ctx, f.Package, f.MinVersion)
	res.Probe = pr
	if err != nil {
		if errs.IsFatal(err) {
			return false, err
		}
		log.Warn(err, "- building from source")
		return false, nil
	}
	if !pr.Found {
		if pr.Version != "" {
			log.Infof("installed %s %s is older than %s, building from source", f.Package, pr.Version, f.MinVersion)
		}
		return false, nil
	}
	log.Infof("using installed %s %s", f.Package, pr.Version)
	res.Directives = link.ParseFlags(pr.Flags, false)
	return true, nil
}

func (b *Builder) fetch(ctx context.Context) (archivePath, digest string, err error) {
	bc, src := b.Context, b.Formula.Source
	for _, dir := range []string{bc.WorkDir, bc.OutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", "", errs.FS("mkdir", err)
		}
	}
	fetcher := b.Fetcher
	if fetcher == nil {
		fetcher = b.Strategy.Fetcher()
	}
	archivePath = filepath.Join(bc.WorkDir, src.File)
	log.Info("fetch", src.URL)
	if err := fetcher.Fetch(ctx, src.URL, archivePath); err != nil {
		return "", "", err
	}

	want := b.SHA256
	if want == "" {
		want = src.SHA256
	}
	if want == "" {
		log.Warn("no sha256 pinned for", src.File, "- archive is not verified")
	}
	digest, err = fetch.Verify(archivePath, want)
	if err != nil {
		return "", "", err
	}
	log.Debug("sha256", src.File, digest)
	return archivePath, digest, nil
}

func (b *Builder) checkRecord() error {
	bc := b.Context
	r, err := LoadRecord(bc.OutDir)
	if err != nil || r == nil {
		return err
	}
	if why := r.mismatch(bc.Host.String(), bc.Target, bc.Arch); why != "" {
		return errs.Newf(errs.ErrFilesystem, "resume", "%s was built for another context (%s); remove %s to rebuild", b.Strategy.StaticLibrary(bc.OutDir), why, bc.OutDir)
	}
	return nil
}

func (b *Builder) saveRecord(digest string) error {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	bc := b.Context
	return SaveRecord(bc.OutDir, &Record{
		Name:      b.Formula.Name,
		URL:       b.Formula.Source.URL,
		SHA256:    digest,
		Host:      bc.Host.String(),
		Target:    bc.Target,
		Arch:      bc.Arch,
		BuildTime: now().UTC(),
	})
}

func targetName(t string) string {
	if t == "" {
		return "native"
	}
	return t
}
