package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/goplus/pasys/internal/errs"
)

// Digest returns the hex SHA-256 of the file at path.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errs.FS("digest", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errs.FS("digest", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify checks the file at path against a pinned hex SHA-256 and returns
// the file's digest. An empty want skips the comparison.
func Verify(path, want string) (string, error) {
	got, err := Digest(path)
	if err != nil {
		return "", err
	}
	want = strings.ToLower(strings.TrimSpace(want))
	if want != "" && got != want {
		return got, errs.Newf(errs.ErrIntegrity, "verify "+path, "sha256 %s, want %s", got, want)
	}
	return got, nil
}
