package common

import "errors"

var (
	// Upload validation errors.
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrFileTooLarge       = errors.New("file exceeds maximum size")
)
