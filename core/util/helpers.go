package util

// TransformOrNil returns nil if the value is nil, otherwise applies the transform function.
//
// This helper is commonly used when building optional response fields where
// a missing value should serialize as null.
//
// Example:
//
//	resp["price"] = util.TransformOrNil(listing.Price.Value, func(d apd.Decimal) any { return d.Text('f') })
func TransformOrNil[T any](value *T, transform func(T) any) any {
	if value == nil {
		return nil
	}
	return transform(*value)
}

// CopySlice returns a shallow copy of s that never aliases the input
func CopySlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
