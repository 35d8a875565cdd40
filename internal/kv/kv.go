package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been written.
var ErrKeyNotFound = errors.New("kv: key not found")

// Store is a durable string key-value slot. The review collection lives
// under a single key as one serialized snapshot, so backends only need
// whole-value get/set semantics.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
