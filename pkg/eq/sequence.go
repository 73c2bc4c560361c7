package eq

import "slices"

// nilTag separates a nil sequence from an empty one in hashes; the
// equality helpers make the same distinction.
const nilTag uint64 = 0x6e696c // "nil"

// SequenceEqual compares two slices element by element in order. A nil
// slice equals only another nil slice; nil and empty are distinct.
func SequenceEqual[T any](a, b []T, equal func(T, T) bool) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// MultisetEqual compares two slices ignoring order: every element of a
// must pair with a distinct equal element of b. Equality classes need
// nothing beyond the equal predicate, so the elements themselves never
// have to be comparable. Nil semantics match SequenceEqual.
func MultisetEqual[T any](a, b []T, equal func(T, T) bool) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	matched := make([]bool, len(b))
outer:
	for i := range a {
		for j := range b {
			if !matched[j] && equal(a[i], b[j]) {
				matched[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}

// HashSequence folds element hashes in order, starting from seed.
func HashSequence[T any](seed uint64, s []T, hash func(T) uint64) uint64 {
	if s == nil {
		return Fold(seed, nilTag)
	}
	h := Fold(seed, uint64(len(s)))
	for i := range s {
		h = Fold(h, hash(s[i]))
	}
	return h
}

// HashMultiset is the permutation-invariant counterpart of
// HashSequence. Elements are grouped into classes by their hash, and
// each (class hash, cardinality) pair is folded in ascending class
// hash order: any reordering of s produces the same hash, so it is
// consistent with MultisetEqual.
func HashMultiset[T any](seed uint64, s []T, hash func(T) uint64) uint64 {
	if s == nil {
		return Fold(seed, nilTag)
	}
	counts := make(map[uint64]uint64, len(s))
	for i := range s {
		counts[hash(s[i])]++
	}
	classes := make([]uint64, 0, len(counts))
	for k := range counts {
		classes = append(classes, k)
	}
	slices.Sort(classes)
	h := Fold(seed, uint64(len(s)))
	for _, k := range classes {
		h = Fold(h, k)
		h = Fold(h, counts[k])
	}
	return h
}
