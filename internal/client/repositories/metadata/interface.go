// Package metadata stores small string-keyed values (the persisted session
// fields) in the local sqlite database.
package metadata

import "context"

type Repository interface {
	// Get returns the stored value, or ("", nil) when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
