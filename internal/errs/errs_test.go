package errs

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestErrorUnwrap(t *testing.T) {
	err := FS("rename", fs.ErrNotExist)
	if !errors.Is(err, ErrFilesystem) {
		t.Errorf("errors.Is(%v, ErrFilesystem) = false", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("errors.Is(%v, fs.ErrNotExist) = false", err)
	}
	if errors.Is(err, ErrToolExit) {
		t.Errorf("errors.Is(%v, ErrToolExit) = true", err)
	}
}

func TestErrorMessage(t *testing.T) {
	err := Newf(ErrMalformedInput, "triple", "linker name %q has no '-'", "gcc")
	got := err.Error()
	for _, want := range []string{"triple", "malformed input", `"gcc"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{New(ErrProbe, "probe", nil), false},
		{New(ErrToolExit, "make", nil), true},
		{errors.New("plain"), true},
	}
	for _, tt := range tests {
		if got := IsFatal(tt.err); got != tt.want {
			t.Errorf("IsFatal(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
