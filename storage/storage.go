package storage

import (
	"context"
	"io"
)

// Storage persists one uploaded object under name and returns its public URL.
// Delete removes an object saved under name; a missing object is not an error.
type Storage interface {
	Save(ctx context.Context, name, contentType string, content io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
}
