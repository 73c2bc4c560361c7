package source

import (
	"path/filepath"

	"fortio.org/safecast"
)

// buildLineIndex records the byte offset of every '\n'.
func buildLineIndex(content []byte) []uint32 {
	var out []uint32
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(err)
			}
			out = append(out, off)
		}
	}
	return out
}

// toLineCol resolves a byte offset into a 1-based line/column pair.
// A '\n' belongs to the line it terminates.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// largest i with lineIdx[i] < off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if hi < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	line, err := safecast.Conv[uint32](hi + 2)
	if err != nil {
		panic(err)
	}
	return LineCol{Line: line, Col: off - lineIdx[hi]}
}

func normalizePath(p string) string {
	// one canonical spelling for cross-platform diffs
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath resolves p against the working directory.
func AbsolutePath(p string) (string, error) {
	return filepath.Abs(p)
}

// RelativePath rewrites p relative to base.
func RelativePath(p, base string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.Rel(base, abs)
}

// BaseName returns the last path element.
func BaseName(p string) string {
	return filepath.Base(p)
}
