package model

// ResultSet is an append-only, insertion-ordered collection of accepted
// records. It is owned by a single run.
type ResultSet[T any] struct {
	items []T
}

func NewResultSet[T any]() *ResultSet[T] {
	return &ResultSet[T]{items: make([]T, 0)}
}

// Append adds item and returns the new length.
func (r *ResultSet[T]) Append(item T) int {
	r.items = append(r.items, item)
	return len(r.items)
}

func (r *ResultSet[T]) Len() int {
	return len(r.items)
}

func (r *ResultSet[T]) Items() []T {
	return r.items
}
