package driven

import "context"

// Archive keeps a copy of uploaded originals in object storage.
type Archive interface {
	// Put stores data under key and returns the object location.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Close releases resources.
	Close() error
}
