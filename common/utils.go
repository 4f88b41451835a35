package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
// Option defaults such as key paths and timing names are resolved with it.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Deref returns the value behind p, or def when p is nil.
// Optional fields decoded from presets are pointers so that an explicit zero can be told apart from an omitted value.
//
// Parameters:
//   - p: the optional value
//   - def: the fallback value
//
// Returns:
//   - T: *p or def
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
