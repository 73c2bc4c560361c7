package source

import "testing"

func TestBuildLineIndex(t *testing.T) {
	idx := buildLineIndex([]byte("a\nbb\n\nc"))
	want := []uint32{1, 4, 5}
	if len(idx) != len(want) {
		t.Fatalf("index = %v, want %v", idx, want)
	}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("index = %v, want %v", idx, want)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	if got := normalizePath("a//b/../c.go"); got != "a/c.go" {
		t.Errorf("normalizePath = %q", got)
	}
}
