package storage

import "context"

// Provider is the durable store for the whole application state. The state
// is one named blob: Load returns the last saved serialization (nil when
// nothing has been saved yet) and Save overwrites it as a whole. There are
// no partial writes.
type Provider interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
