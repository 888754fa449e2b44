package build

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goplus/pasys/internal/errs"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{Start, Probing, true},
		{Probing, DoneFound, true},
		{Probing, Inferring, true},
		{Inferring, Fetching, true},
		{Inferring, Emitting, true},
		{Fetching, Building, true},
		{Building, Emitting, true},
		{Emitting, DoneBuilt, true},

		{Start, Fetching, false},
		{Probing, Fetching, false},
		{Building, Fetching, false},
		{Emitting, Building, false},
		{DoneFound, Inferring, false},
		{DoneBuilt, Start, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestMachine(t *testing.T) {
	m := newMachine()
	for _, s := range []State{Probing, Inferring, Fetching} {
		if err := m.to(s); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.to(Probing); err == nil {
		t.Error("revisiting Probing succeeded")
	}
	if m.current() != Fetching {
		t.Errorf("current = %v, want %v", m.current(), Fetching)
	}
}

func TestTerminal(t *testing.T) {
	for s := Start; s <= DoneBuilt; s++ {
		want := s == DoneFound || s == DoneBuilt
		if s.Terminal() != want {
			t.Errorf("%v.Terminal() = %v", s, s.Terminal())
		}
		if hasNext := len(transitions[s]) > 0; hasNext == want {
			t.Errorf("%v has transitions %v", s, transitions[s])
		}
	}
	if got := State(42).String(); got != "State(42)" {
		t.Errorf("String = %q", got)
	}
}

func TestSaveAndLoadRecord(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().UTC().Truncate(time.Second)
	rec := &Record{Name: "portaudio", URL: "http://example.com/pa.tgz", Host: "linux", Target: "arm-linux-gnueabihf", Arch: "arm", BuildTime: now}

	if err := SaveRecord(dir, rec); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}
	loaded, err := LoadRecord(dir)
	if err != nil {
		t.Fatalf("LoadRecord failed: %v", err)
	}
	if !loaded.BuildTime.Equal(now) {
		t.Errorf("BuildTime mismatch: got %v, want %v", loaded.BuildTime, now)
	}
	loaded.BuildTime = rec.BuildTime
	if *loaded != *rec {
		t.Errorf("LoadRecord = %+v, want %+v", loaded, rec)
	}
	if why := loaded.mismatch("linux", "arm-linux-gnueabihf", "arm"); why != "" {
		t.Errorf("mismatch = %q, want none", why)
	}
	if why := loaded.mismatch("linux", "", "arm"); why == "" {
		t.Error("native context matched a cross build")
	}
}

func TestLoadRecord_NotExist(t *testing.T) {
	rec, err := LoadRecord(t.TempDir())
	if rec != nil || err != nil {
		t.Fatalf("LoadRecord = %v, %v, want nil, nil", rec, err)
	}
}

func TestLoadRecord_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, recordFile), []byte("invalid json"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if _, err := LoadRecord(dir); !errors.Is(err, errs.ErrFilesystem) {
		t.Fatalf("LoadRecord err = %v, want ErrFilesystem", err)
	}
}
