// Package storage provides the key-value stores that notification settings can be persisted in.
package storage

import (
	"context"
	"io"
)

// Port describes the capabilities the preference store needs from a key-value store. Get returns false
// in its second return value if nothing has been stored under the key.
type Port interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Backend is a Port that holds resources that have to be released when it's no longer needed.
type Backend interface {
	Port
	io.Closer
}
