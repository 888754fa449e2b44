// Package env holds the environment variables pasys reads.
package env

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// OutDirVar selects the output directory when --out is not given.
	OutDirVar = "PASYS_OUT_DIR"
	// CargoOutDirVar is honoured as a fallback so pasys can run as a build script.
	CargoOutDirVar = "OUT_DIR"
	// LinkerVar names the cross linker the target triple is inferred from.
	LinkerVar = "PASYS_LINKER"
	// CargoLinkerVar is the linker cargo hands a build script, read when
	// LinkerVar is empty.
	CargoLinkerVar = "RUSTC_LINKER"
	// PkgConfigVar overrides the pkg-config executable.
	PkgConfigVar = "PKG_CONFIG"
	// DotEnv is the file loaded from the working directory.
	DotEnv = ".env"
)

// OutDir returns the output directory from the environment, or "".
func OutDir() string {
	if dir := os.Getenv(OutDirVar); dir != "" {
		return dir
	}
	return os.Getenv(CargoOutDirVar)
}

// Linker returns the configured cross linker path, or "" for a native build.
func Linker() string {
	if l := os.Getenv(LinkerVar); l != "" {
		return l
	}
	return os.Getenv(CargoLinkerVar)
}

// Watched lists the variables whose change invalidates a resolution, with
// forceVar, the recipe's force variable, first.
func Watched(forceVar string) []string {
	return []string{forceVar, LinkerVar, CargoLinkerVar, PkgConfigVar}
}

// PkgConfig returns the pkg-config executable to run.
func PkgConfig() string {
	if bin := os.Getenv(PkgConfigVar); bin != "" {
		return bin
	}
	return "pkg-config"
}

// IsSet reports whether key is present in the environment, even if empty.
func IsSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

// Load reads dir/.env into the process environment. Variables that are
// already set win. A missing file is not an error.
func Load(dir string) error {
	err := godotenv.Load(filepath.Join(dir, DotEnv))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
