package dto

// Ptr trả về con trỏ tới v, dùng khi dựng request trong code
func Ptr[T any](v T) *T {
	return &v
}

// Value dereferences p, returning the zero value for nil.
func Value[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
