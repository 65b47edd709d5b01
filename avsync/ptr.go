package avsync

func ptr[T any](v T) *T {
	return &v
}
