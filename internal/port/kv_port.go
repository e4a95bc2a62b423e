package port

import "context"

// KeyValueStore is an opaque string store. Get reports ok=false for a
// missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
