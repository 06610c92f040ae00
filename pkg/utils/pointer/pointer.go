package pointer

// Ref takes address of v. Handy for literals.
func Ref[T any](v T) *T {
	return &v
}

// Equal compares two pointers by pointee. Two nils are equal.
func Equal[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
