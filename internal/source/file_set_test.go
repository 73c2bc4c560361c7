package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddAndGet(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.go", []byte("package a\n"))
	f := fs.Get(id)
	if f.Path != "a.go" {
		t.Errorf("Path = %q", f.Path)
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("virtual flag not set")
	}
	if fs.Len() != 1 {
		t.Errorf("Len = %d", fs.Len())
	}
}

func TestFileSetLoadKeepsBytes(t *testing.T) {
	// Spans are byte offsets into the on-disk file; CRLF and BOM bytes
	// must survive loading or every go/parser position drifts.
	raw := []byte("\xEF\xBB\xBFpackage a\r\n\r\nvar x int\r\n")
	path := filepath.Join(t.TempDir(), "a.go")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if string(f.Content) != string(raw) {
		t.Errorf("Content = %q, want the on-disk bytes %q", f.Content, raw)
	}
	if f.Flags&FileVirtual != 0 {
		t.Error("disk file flagged virtual")
	}
}

func TestFileSetLoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.go")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFileSetHashDiffers(t *testing.T) {
	fs := NewFileSet()
	a := fs.AddVirtual("a.go", []byte("package a\n"))
	b := fs.AddVirtual("b.go", []byte("package b\n"))
	if fs.Get(a).Hash == fs.Get(b).Hash {
		t.Error("distinct content must hash differently")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.go", []byte("abc\ndef\nghi"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{1, 4}}, // the newline ends line 1
		{4, LineCol{2, 1}},
		{6, LineCol{2, 3}},
		{8, LineCol{3, 1}},
		{10, LineCol{3, 3}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %v, want %v", tt.off, start, tt.want)
		}
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	// "α" is two bytes; columns are byte-based like go/token offsets.
	id := fs.AddVirtual("u.go", []byte("α\nβ"))
	start, _ := fs.Resolve(Span{File: id, Start: 3, End: 3})
	if (start != LineCol{2, 1}) {
		t.Errorf("Resolve = %v", start)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.go", []byte("abc\ndef\nghi"))
	f := fs.Get(id)
	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "abc"},
		{2, "def"},
		{3, "ghi"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
