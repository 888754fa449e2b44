package probe

import (
	"strings"

	"github.com/goplus/pasys/x/gnu"
	"golang.org/x/mod/semver"
)

// CompareVersions orders two package versions. When both read as semantic
// versions ("19", "19.6", "v19.7.0-rc1") semver ordering is used; anything
// else ("19.6.0.1", "2.0~beta") falls back to GNU version ordering.
func CompareVersions(a, b string) int {
	if sa, sb := canonical(a), canonical(b); sa != "" && sb != "" {
		return semver.Compare(sa, sb)
	}
	return gnu.Compare(strings.TrimSpace(a), strings.TrimSpace(b))
}

// AtLeast reports whether version >= min.
func AtLeast(version, min string) bool {
	return CompareVersions(version, min) >= 0
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
