package eq

import (
	"hash/maphash"
	"math"
)

// FNV-1a constants.
const (
	fnvOffset64 uint64 = 14695981039346656037
	fnvPrime64  uint64 = 1099511628211
)

// inProcessSeed feeds HashOf. maphash seeds are random per process, so
// HashOf results are stable within one run but not across runs; the
// typed helpers below are stable across runs.
var inProcessSeed = maphash.MakeSeed()

// Seed derives the starting hash for a type from its qualified name,
// so structurally identical types still hash apart.
func Seed(qualifiedName string) uint64 {
	return HashString(qualifiedName)
}

// Fold mixes one member hash into an accumulator. Folding is order
// sensitive: Fold(Fold(h, a), b) != Fold(Fold(h, b), a) in general.
func Fold(h, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= fnvPrime64
		v >>= 8
	}
	return h
}

// HashString hashes a string with FNV-1a.
func HashString(s string) uint64 {
	h := fnvOffset64
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}

// HashBytes hashes a byte slice with FNV-1a.
func HashBytes(b []byte) uint64 {
	h := fnvOffset64
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime64
	}
	return h
}

// HashUint hashes an unsigned integer.
func HashUint(v uint64) uint64 {
	return Fold(fnvOffset64, v)
}

// HashInt hashes a signed integer.
func HashInt(v int64) uint64 {
	return HashUint(uint64(v))
}

// HashBool hashes a boolean.
func HashBool(v bool) uint64 {
	if v {
		return HashUint(1)
	}
	return HashUint(0)
}

// HashFloat hashes a float so that values equal under == hash alike:
// -0 collapses to +0, and every NaN gets one canonical hash even
// though NaN != NaN.
func HashFloat(v float64) uint64 {
	if v == 0 {
		v = 0 // drops the sign of -0
	}
	if math.IsNaN(v) {
		return HashUint(0x7ff8000000000001)
	}
	return HashUint(math.Float64bits(v))
}

// HashOf hashes any comparable value. Equal values always hash alike
// within a process; stability across processes is not guaranteed, so
// use the typed helpers when hashes must be persisted.
func HashOf[T comparable](v T) uint64 {
	return maphash.Comparable(inProcessSeed, v)
}
