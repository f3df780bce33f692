package util

import "errors"

var (
	ErrFileNotFound         = errors.New("file not found")
	ErrFileHandleNotInit    = errors.New("file handle not initialized")
	ErrReadNonExistingPage  = errors.New("read non-existing page")
	ErrWriteFailed          = errors.New("write failed")
	ErrInvalidPoolSize      = errors.New("invalid pool size")
	ErrStrategyNotSupported = errors.New("replacement strategy not supported")
)
