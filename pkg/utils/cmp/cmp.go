package cmp

// SliceEq checks two slices have same values in same order.
func SliceEq[T comparable](a, b []T) bool {
	return SliceEqWith(a, b, func(x, y T) bool { return x == y })
}

// SliceEqWith checks two slices are equal with pred, element by element.
func SliceEqWith[T any, U any](as []T, bs []U, pred func(T, U) bool) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !pred(as[i], bs[i]) {
			return false
		}
	}
	return true
}

// SliceContentEq checks two slices have same values, ignoring order.
// Multiplicities count.
func SliceContentEq[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	rest := make(map[T]int, len(a))
	for _, v := range a {
		rest[v] += 1
	}
	for _, v := range b {
		rest[v] -= 1
		if rest[v] < 0 {
			return false
		}
	}
	return true
}

// MapEq checks two maps have same key-value pairs.
func MapEq[K comparable, V comparable](a, b map[K]V) bool {
	return MapEqWith(a, b, func(x, y V) bool { return x == y })
}

// MapEqWith checks two maps are equal, comparing values with pred.
func MapEqWith[K comparable, V any](a, b map[K]V, pred func(V, V) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !pred(av, bv) {
			return false
		}
	}
	return true
}

// MapGeqWith checks a contains every entry of b (a is superset of b),
// comparing values with pred.
func MapGeqWith[K comparable, V any](a, b map[K]V, pred func(V, V) bool) bool {
	for k, bv := range b {
		av, ok := a[k]
		if !ok || !pred(av, bv) {
			return false
		}
	}
	return true
}
