package eq

// Predicate is a single-argument query over a value type.
type Predicate[T any] func(T) bool

// And satisfies when every predicate satisfies. With no predicates it
// is vacuously true.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Or satisfies when at least one predicate satisfies.
func Or[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if p(v) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(v T) bool { return !p(v) }
}
