package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no object exists for a storage key.
var ErrNotFound = errors.New("object not found")

// Reader is the read side of the document byte source. Writes belong to the upload service.
type Reader interface {
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
