package usecase

import "errors"

var (
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrStructuralMismatch = errors.New("structural mismatch between match sides")
	ErrNotFound           = errors.New("resource not found")
	ErrDatasetUnavailable = errors.New("dataset unavailable")
)
