// Package common defines sentinel errors shared across the service layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// repository-level errors
	ErrorNotFound    = errors.New("not found")
	ErrorAlreadyGone = errors.New("already gone")

	// store-level errors
	ErrorUpload      = errors.New("object upload failed")
	ErrorPersistence = errors.New("persistence failed")

	// request validation errors
	ErrorBadRequest = errors.New("bad request")

	// catch-all
	ErrorInternal = errors.New("internal error")
)
