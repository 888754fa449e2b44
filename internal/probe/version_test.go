package probe

import "testing"

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"19", "19", 0},
		{"19.6.0", "19", 1},
		{"18.1", "19", -1},
		{"v19.7.0", "19", 1},
		{"19.6.0-devel", "19.6.0", -1},
		{"19.6.0.1", "19.6.0", 1},
		{"19.6.0.1", "19.10", -1},
		{"2.0~beta", "2.0", -1},
		{"1.2a", "1.2", 1},
		{"007", "7", 0},
	}
	for _, tt := range tests {
		if got := CompareVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := CompareVersions(tt.b, tt.a); got != -tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
		}
	}
}

func TestAtLeast(t *testing.T) {
	if !AtLeast("19", "19") {
		t.Error("AtLeast(19, 19) = false")
	}
	if AtLeast("18.9.9", "19") {
		t.Error("AtLeast(18.9.9, 19) = true")
	}
}
