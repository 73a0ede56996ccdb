package dto

// Predicate reports whether a record passes one listing filter.
type Predicate[T any] func(T) bool

// And composes predicates with logical AND. Filters are commutative, so
// applying them in any order yields the same result set. An empty group
// passes everything.
func And[T any](predicates ...Predicate[T]) Predicate[T] {
	return func(record T) bool {
		for _, predicate := range predicates {
			if predicate == nil {
				continue
			}

			if !predicate(record) {
				return false
			}
		}

		return true
	}
}

// Apply filters a slice through the predicate, preserving order.
func Apply[T any](records []T, predicate Predicate[T]) []T {
	if predicate == nil {
		return records
	}

	filtered := make([]T, 0, len(records))

	for _, record := range records {
		if predicate(record) {
			filtered = append(filtered, record)
		}
	}

	return filtered
}
