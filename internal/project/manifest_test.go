package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(root, ManifestName)
	if err := os.WriteFile(manifest, []byte("[generate]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if path != manifest {
		t.Errorf("path = %q, want %q", path, manifest)
	}

	dir, ok, err := FindRoot(nested)
	if err != nil || !ok || dir != root {
		t.Errorf("root = %q ok=%v err=%v", dir, ok, err)
	}
}

func TestFindManifestMissing(t *testing.T) {
	_, ok, err := FindManifest(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("manifest reported found in empty tree")
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	content := `
[generate]
patterns = ["./internal/...", "./pkg/..."]
output_suffix = "_equality.go"
jobs = 4
max_diagnostics = 32
cache = true
cache_dir = "/tmp/eqgen-cache"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	g := m.Generate
	if len(g.Patterns) != 2 || g.Patterns[0] != "./internal/..." {
		t.Errorf("patterns = %v", g.Patterns)
	}
	if g.OutputSuffix != "_equality.go" || g.Jobs != 4 || g.MaxDiagnostics != 32 {
		t.Errorf("config = %+v", g)
	}
	if !g.Cache || g.CacheDir != "/tmp/eqgen-cache" {
		t.Errorf("cache config = %+v", g)
	}
}

func TestLoadFromDirMissingIsZero(t *testing.T) {
	m, path, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if path != "" || m == nil || len(m.Generate.Patterns) != 0 {
		t.Errorf("m=%+v path=%q", m, path)
	}
}

func TestWriteDefaultRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("starter manifest must parse: %v", err)
	}
	if err := WriteDefault(path); err == nil {
		t.Error("overwrite must be refused")
	}
}
