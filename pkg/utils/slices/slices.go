package slices

// Map applies mapper to each element and collects the results,
// keeping order.
func Map[T any, R any](sli []T, mapper func(T) R) []R {
	mapped := make([]R, len(sli))
	for i, v := range sli {
		mapped[i] = mapper(v)
	}
	return mapped
}
