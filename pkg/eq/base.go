package eq

// ValueObject marks a struct as a value object: equality is defined by
// the member contract, never by identity. The zero-width func array
// makes the embedding struct non-comparable, which forces every
// comparison through the generated Equal method instead of ==.
type ValueObject struct {
	_ [0]func()
}

// Wrapper wraps a single comparable value in a distinct nominal type.
// Equality and hashing are fixed: two wrappers are equal exactly when
// the wrapped values are, so the generator never needs member markers
// on a wrapper declaration.
type Wrapper[T comparable] struct {
	Value T
}

// Wrap is a convenience constructor.
func Wrap[T comparable](v T) Wrapper[T] {
	return Wrapper[T]{Value: v}
}

// Unwrap returns the wrapped value.
func (w Wrapper[T]) Unwrap() T { return w.Value }

// Equal reports whether both wrappers hold the same value.
func (w Wrapper[T]) Equal(other Wrapper[T]) bool {
	return w.Value == other.Value
}

// Hash folds the wrapped value into a stable hash.
func (w Wrapper[T]) Hash() uint64 {
	return HashOf(w.Value)
}

// Entity is the identity-equality counterpart of ValueObject: two
// entities are the same exactly when their identifiers match, no
// matter what the rest of the state says. Entities never participate
// in contract synthesis.
type Entity[ID comparable] struct {
	id ID
}

// NewEntity constructs an entity with a fixed identifier.
func NewEntity[ID comparable](id ID) Entity[ID] {
	return Entity[ID]{id: id}
}

// ID returns the entity identifier.
func (e Entity[ID]) ID() ID { return e.id }

// Same reports identity equality.
func (e Entity[ID]) Same(other Entity[ID]) bool {
	return e.id == other.id
}
