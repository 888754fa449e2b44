package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOutDir(t *testing.T) {
	t.Setenv(OutDirVar, "")
	t.Setenv(CargoOutDirVar, "/cargo/out")
	if got := OutDir(); got != "/cargo/out" {
		t.Errorf("OutDir() = %q, want %q", got, "/cargo/out")
	}
	t.Setenv(OutDirVar, "/pasys/out")
	if got := OutDir(); got != "/pasys/out" {
		t.Errorf("OutDir() = %q, want %q", got, "/pasys/out")
	}
}

func TestLinker(t *testing.T) {
	tests := []struct {
		pasys, cargo, want string
	}{
		{"", "", ""},
		{"", "/usr/bin/arm-linux-gnueabihf-gcc", "/usr/bin/arm-linux-gnueabihf-gcc"},
		{"aarch64-linux-gnu-gcc", "/usr/bin/arm-linux-gnueabihf-gcc", "aarch64-linux-gnu-gcc"},
	}
	for _, tt := range tests {
		t.Setenv(LinkerVar, tt.pasys)
		t.Setenv(CargoLinkerVar, tt.cargo)
		if got := Linker(); got != tt.want {
			t.Errorf("Linker() with %q, %q = %q, want %q", tt.pasys, tt.cargo, got, tt.want)
		}
	}
}

func TestPkgConfig(t *testing.T) {
	t.Setenv(PkgConfigVar, "")
	if got := PkgConfig(); got != "pkg-config" {
		t.Errorf("PkgConfig() = %q, want pkg-config", got)
	}
	t.Setenv(PkgConfigVar, "pkgconf")
	if got := PkgConfig(); got != "pkgconf" {
		t.Errorf("PkgConfig() = %q, want pkgconf", got)
	}
}

func TestIsSet(t *testing.T) {
	t.Setenv("PASYS_TEST_EMPTY", "")
	if !IsSet("PASYS_TEST_EMPTY") {
		t.Error("IsSet(empty var) = false, want true")
	}
	if IsSet("PASYS_TEST_SURELY_UNSET") {
		t.Error("IsSet(unset var) = true, want false")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := Load(dir); err != nil {
		t.Fatalf("Load without .env: %v", err)
	}

	content := "PASYS_TEST_FROM_FILE=file\nPASYS_TEST_PRESET=file\n"
	if err := os.WriteFile(filepath.Join(dir, DotEnv), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PASYS_TEST_PRESET", "process")
	t.Setenv("PASYS_TEST_FROM_FILE", "")
	os.Unsetenv("PASYS_TEST_FROM_FILE")

	if err := Load(dir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv("PASYS_TEST_FROM_FILE"); got != "file" {
		t.Errorf("PASYS_TEST_FROM_FILE = %q, want %q", got, "file")
	}
	if got := os.Getenv("PASYS_TEST_PRESET"); got != "process" {
		t.Errorf("PASYS_TEST_PRESET = %q, want %q", got, "process")
	}
}
