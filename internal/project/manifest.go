package project

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed eqgen.toml.
type Manifest struct {
	Generate GenerateConfig `toml:"generate"`
}

// GenerateConfig carries the defaults for eqgen gen; flags override
// every field.
type GenerateConfig struct {
	// Patterns are go/packages patterns, ./... when empty.
	Patterns []string `toml:"patterns"`
	// OutputSuffix names generated files, _eq.go when empty.
	OutputSuffix string `toml:"output_suffix"`
	// Jobs caps parallelism, GOMAXPROCS when zero.
	Jobs int `toml:"jobs"`
	// MaxDiagnostics caps the number reported per package.
	MaxDiagnostics int `toml:"max_diagnostics"`
	// Cache toggles the declaration cache.
	Cache bool `toml:"cache"`
	// CacheDir overrides the standard cache location.
	CacheDir string `toml:"cache_dir"`
}

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return &m, nil
}

// LoadFromDir discovers and parses the manifest above dir. A missing
// manifest is not an error: the zero manifest is returned.
func LoadFromDir(dir string) (*Manifest, string, error) {
	path, ok, err := FindManifest(dir)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return &Manifest{}, "", nil
	}
	m, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return m, path, nil
}

// DefaultManifest is the content eqgen init writes.
const DefaultManifest = `# eqgen configuration

[generate]
# patterns = ["./..."]
# output_suffix = "_eq.go"
# jobs = 0            # 0 = GOMAXPROCS
# max_diagnostics = 256
# cache = true
# cache_dir = ""      # empty = $XDG_CACHE_HOME/eqgen
`

// WriteDefault writes the starter manifest, refusing to overwrite.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	return os.WriteFile(path, []byte(DefaultManifest), 0o644)
}
