package common

// Coalesce returns the first value that is not the zero value of T, or the
// zero value when every argument is zero. Used for defaulting optional
// labels and settings.
//
// Parameters:
//   - values: candidates in priority order
//
// Returns:
//   - T: the first non-zero candidate, or the zero value
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
