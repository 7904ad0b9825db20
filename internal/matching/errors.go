package matching

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingPrerequisite is returned when a resume has no processed text yet.
	ErrMissingPrerequisite = errors.New("missing prerequisite")

	// ErrBatchItemFailed tags a single failed pair inside a batch.
	ErrBatchItemFailed = errors.New("batch item failed")
)
