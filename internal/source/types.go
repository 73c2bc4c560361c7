package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a source file was acquired.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin,
	// or a buffer mirrored out of go/packages) rather than read from disk.
	FileVirtual FileFlags = 1 << iota
)

// File captures metadata and content for a single host source file.
// LineIdx holds the byte offsets of every '\n' in Content; Hash is the
// SHA-256 of Content and doubles as the memoization key for everything
// derived from this file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position, 1-based on both axes.
type LineCol struct {
	Line uint32
	Col  uint32
}
