package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"eqgen/internal/decl"
	"eqgen/internal/marker"
)

// packageDigest hashes the parts of a package that influence synthesis
// beyond a declaration's own source: marker-carrying type names, the
// method surface companions resolve against, and the named constants
// the enumeration tables are built from. Any of those changing must
// invalidate every cached declaration in the package.
func packageDigest(pkg *decl.Package) Digest {
	h := sha256.New()
	writeString(h, pkg.Path)
	var version [4]byte
	binary.LittleEndian.PutUint32(version[:], marker.CatalogVersion)
	h.Write(version[:])

	for _, t := range pkg.Types {
		if t.HasMarker("contract") || t.HasMarker("enum") {
			writeString(h, "type:"+t.Name)
		}
		for _, m := range t.Methods {
			writeString(h, fmt.Sprintf("method:%s.%s(%v)(%v)", t.Name, m.Name, m.Params, m.Results))
		}
	}
	for _, inst := range pkg.Instances {
		writeString(h, fmt.Sprintf("const:%s.%s=%v", inst.TypeName, inst.VarName, inst.Args))
	}
	return sha256.Sum256(h.Sum(nil))
}

// declKey derives the cache key for one host declaration.
func declKey(t *decl.Type, pkgDigest Digest) Digest {
	h := sha256.New()
	h.Write(t.SrcHash[:])
	h.Write(pkgDigest[:])
	return sha256.Sum256(h.Sum(nil))
}

func writeString(w io.Writer, s string) {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(s)))
	w.Write(n[:])
	io.WriteString(w, s)
}
