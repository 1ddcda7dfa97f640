package util

// InPlaceFilter keeps only the elements of s for which p returns true,
// reusing the slice's backing array.
func InPlaceFilter[T any](s *[]T, p func(T) bool) {
	i := 0
	for _, e := range *s {
		if p(e) {
			(*s)[i] = e
			i++
		}
	}
	*s = (*s)[:i]
}
